package geometry

import (
	"fmt"

	gmath "github.com/Faultbox/mymesh/pkg/math"
)

// ValidateUVLayers enforces exactly one UV layer per exported mesh.
func ValidateUVLayers(object string, layers []UVLayer) error {
	switch len(layers) {
	case 0:
		return &ObjectError{Object: object, Err: ErrMissingUVLayer}
	case 1:
		return nil
	default:
		names := make([]string, len(layers))
		for i, l := range layers {
			names[i] = l.Name
		}
		return &ObjectError{Object: object, Err: fmt.Errorf("%w: %q", ErrAmbiguousUVLayer, names)}
	}
}

// ValidateTopology checks that loops, polygons and UV layers agree with each
// other, so triangulation and vertex emission never index out of range.
func ValidateTopology(object string, positions []gmath.Vec3, loops []Loop, polys []Polygon, layers []UVLayer) error {
	for i, l := range loops {
		if l.Vertex < 0 || l.Vertex >= len(positions) {
			return &ObjectError{Object: object, Err: fmt.Errorf("%w: loop %d references vertex %d of %d",
				ErrInvalidMesh, i, l.Vertex, len(positions))}
		}
	}
	for i, p := range polys {
		if p.LoopStart < 0 || p.LoopTotal < 0 || p.LoopStart+p.LoopTotal > len(loops) {
			return &ObjectError{Object: object, Err: fmt.Errorf("%w: polygon %d spans loops [%d, %d) of %d",
				ErrInvalidMesh, i, p.LoopStart, p.LoopStart+p.LoopTotal, len(loops))}
		}
	}
	for _, layer := range layers {
		if len(layer.UVs) != len(loops) {
			return &ObjectError{Object: object, Err: fmt.Errorf("%w: UV layer %q has %d entries for %d loops",
				ErrInvalidMesh, layer.Name, len(layer.UVs), len(loops))}
		}
	}
	return nil
}
