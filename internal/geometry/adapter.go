package geometry

import (
	"fmt"

	"go.uber.org/multierr"

	gmath "github.com/Faultbox/mymesh/pkg/math"
)

// Read evaluates obj's mesh, validates it and returns it in export space:
// positions transformed by the world matrix with Y and Z swapped, every
// polygon triangulated, and the single UV layer copied out.
//
// The evaluated mesh is released before Read returns on every path. A
// release failure is reported together with any earlier failure.
//
// A mesh without polygons is returned empty and skips UV validation.
func Read(obj Object) (raw *RawMesh, err error) {
	name := obj.Name()
	if obj.Kind() != KindMesh {
		return nil, &ObjectError{Object: name, Err: fmt.Errorf("%w: kind %s", ErrIneligibleObject, obj.Kind())}
	}

	em, err := obj.EvaluateMesh()
	if err != nil {
		return nil, &ObjectError{Object: name, Err: fmt.Errorf("%w: %v", ErrEvaluate, err)}
	}
	defer func() {
		if rerr := em.Release(); rerr != nil {
			err = multierr.Append(err, &ObjectError{Object: name, Err: fmt.Errorf("%w: %v", ErrRelease, rerr)})
			raw = nil
		}
	}()

	polys := em.Polygons()
	if len(polys) == 0 {
		return &RawMesh{Object: name}, nil
	}

	positions, loops, layers := em.Positions(), em.Loops(), em.UVLayers()
	if err := ValidateUVLayers(name, layers); err != nil {
		return nil, err
	}
	if err := ValidateTopology(name, positions, loops, polys, layers); err != nil {
		return nil, err
	}

	world := toWorld(positions, obj.WorldTransform())

	raw = &RawMesh{
		Object:    name,
		Positions: make([]gmath.Vec3, len(world)),
		Loops:     append([]Loop(nil), loops...),
		Triangles: Triangulate(world, loops, polys),
		UVs:       append([]gmath.Vec2(nil), layers[0].UVs...),
	}
	for i, p := range world {
		raw.Positions[i] = p.SwapYZ()
	}
	return raw, nil
}

func toWorld(local []gmath.Vec3, m gmath.Mat4) []gmath.Vec3 {
	out := make([]gmath.Vec3, len(local))
	if m.IsIdentity() {
		copy(out, local)
		return out
	}
	for i, p := range local {
		out[i] = m.TransformVec3(p)
	}
	return out
}
