// Package scene loads YAML scene documents and exposes them as a
// geometry.Source.
//
// A document lists objects in export order:
//
//	objects:
//	  - name: Cube
//	    kind: mesh
//	    transform:            # row-major, translation in the last column
//	      - [1, 0, 0, 0]
//	      - [0, 1, 0, 0]
//	      - [0, 0, 1, 2]
//	      - [0, 0, 0, 1]
//	    mesh:
//	      positions: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 0]]
//	      polygons: [[0, 1, 2, 3]]     # vertex indices, one loop each
//	      uv_layers:
//	        - name: UVMap
//	          uvs: [[0, 0], [1, 0], [1, 1], [0, 1]]   # one per loop
//	  - name: Sun
//	    kind: light
//	    location: [0, 0, 10]  # alternative to transform
//	    rotation: [0, 0.5, 0] # Euler XYZ, radians
//	    scale: [1, 1, 1]
package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	gmath "github.com/Faultbox/mymesh/pkg/math"
)

// Scene document errors.
var (
	ErrUnknownKind = errors.New("unknown object kind")
	ErrNoObjects   = errors.New("scene document has no objects key")
	ErrTransform   = errors.New("transform conflicts with location/rotation/scale")
)

// Document is the on-disk scene description.
type Document struct {
	Objects []ObjectDoc `yaml:"objects"`
}

// ObjectDoc describes one scene object.
type ObjectDoc struct {
	Name      string         `yaml:"name"`
	Kind      string         `yaml:"kind"`
	Hidden    bool           `yaml:"hidden,omitempty"`
	Transform *[4][4]float32 `yaml:"transform,omitempty"` // Row-major, nil means identity
	Location  *[3]float32    `yaml:"location,omitempty"`
	Rotation  *[3]float32    `yaml:"rotation,omitempty"` // Euler XYZ, radians
	Scale     *[3]float32    `yaml:"scale,omitempty"`
	Mesh      *MeshDoc       `yaml:"mesh,omitempty"`
}

// WorldTransform returns the object's world matrix. A transform matrix and
// location/rotation/scale are mutually exclusive; the latter compose as
// T * Rz * Ry * Rx * S. Nothing set means identity.
func (od *ObjectDoc) WorldTransform() (gmath.Mat4, error) {
	trs := od.Location != nil || od.Rotation != nil || od.Scale != nil
	if od.Transform != nil {
		if trs {
			return gmath.Mat4{}, ErrTransform
		}
		return gmath.FromRows(*od.Transform), nil
	}
	if !trs {
		return gmath.Identity(), nil
	}

	m := gmath.Identity()
	if od.Location != nil {
		m = gmath.Translate(od.Location[0], od.Location[1], od.Location[2])
	}
	if r := od.Rotation; r != nil {
		m = m.Mul(gmath.RotateZ(r[2])).Mul(gmath.RotateY(r[1])).Mul(gmath.RotateX(r[0]))
	}
	if sc := od.Scale; sc != nil {
		m = m.Mul(gmath.Scale(sc[0], sc[1], sc[2]))
	}
	return m, nil
}

// MeshDoc holds object-local mesh data.
type MeshDoc struct {
	Positions [][3]float32 `yaml:"positions"`
	Polygons  [][]int      `yaml:"polygons"`
	UVLayers  []UVLayerDoc `yaml:"uv_layers,omitempty"`
}

// UVLayerDoc is a named UV layer with one coordinate per loop.
type UVLayerDoc struct {
	Name string       `yaml:"name"`
	UVs  [][2]float32 `yaml:"uvs"`
}

// LoopCount returns the number of loops the polygons define.
func (m *MeshDoc) LoopCount() int {
	n := 0
	for _, p := range m.Polygons {
		n += len(p)
	}
	return n
}

// Parse decodes a scene document.
func Parse(data []byte) (*Document, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if _, ok := raw["objects"]; !ok {
		return nil, ErrNoObjects
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFile reads and decodes a scene document.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scene %s: %w", path, err)
	}
	return doc, nil
}
