package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/mymesh/internal/geometry"
	gmath "github.com/Faultbox/mymesh/pkg/math"
)

// Evaluation cache errors.
var (
	ErrMeshHeld    = errors.New("another evaluated mesh is still held")
	ErrNotAcquired = errors.New("evaluated mesh already released")
)

// Scene is a loaded document bound to the geometry interfaces.
// Like a host evaluation cache it hands out at most one evaluated mesh at
// a time; acquiring a second one before releasing the first fails.
type Scene struct {
	objects []geometry.Object
	held    *evaluatedMesh

	acquired int
	released int
}

// New builds a scene from a document.
func New(doc *Document) (*Scene, error) {
	s := &Scene{}
	for i := range doc.Objects {
		od := &doc.Objects[i]
		kind, err := parseKind(od)
		if err != nil {
			return nil, fmt.Errorf("object %d (%q): %w", i, od.Name, err)
		}

		transform, err := od.WorldTransform()
		if err != nil {
			return nil, fmt.Errorf("object %d (%q): %w", i, od.Name, err)
		}

		name := od.Name
		if name == "" {
			name = fmt.Sprintf("%s.%03d", strings.ToLower(string(kind)), i)
		}

		s.objects = append(s.objects, &Object{
			scene:     s,
			name:      name,
			kind:      kind,
			hidden:    od.Hidden,
			transform: transform,
			mesh:      od.Mesh,
		})
	}
	return s, nil
}

// Load reads a document from path and builds a scene from it.
func Load(path string) (*Scene, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// Objects returns the objects in document order.
func (s *Scene) Objects() []geometry.Object {
	return s.objects
}

// Acquisitions returns how many meshes were evaluated and released so far.
func (s *Scene) Acquisitions() (acquired, released int) {
	return s.acquired, s.released
}

// Held reports whether an evaluated mesh is currently outstanding.
func (s *Scene) Held() bool {
	return s.held != nil
}

func parseKind(od *ObjectDoc) (geometry.Kind, error) {
	if od.Kind == "" {
		if od.Mesh != nil {
			return geometry.KindMesh, nil
		}
		return geometry.KindEmpty, nil
	}

	k := geometry.Kind(strings.ToUpper(od.Kind))
	switch k {
	case geometry.KindMesh, geometry.KindLight, geometry.KindCamera, geometry.KindEmpty, geometry.KindCurve:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, od.Kind)
	}
}

// Object is a scene object backed by a document entry.
type Object struct {
	scene     *Scene
	name      string
	kind      geometry.Kind
	hidden    bool
	transform gmath.Mat4
	mesh      *MeshDoc
}

func (o *Object) Name() string               { return o.name }
func (o *Object) Kind() geometry.Kind        { return o.kind }
func (o *Object) Hidden() bool               { return o.hidden }
func (o *Object) WorldTransform() gmath.Mat4 { return o.transform }

// EvaluateMesh expands the document's polygons into loops. Objects of
// mesh kind without mesh data evaluate to an empty mesh.
func (o *Object) EvaluateMesh() (geometry.EvaluatedMesh, error) {
	if o.kind != geometry.KindMesh {
		return nil, fmt.Errorf("object %q has kind %s", o.name, o.kind)
	}
	if o.scene.held != nil {
		return nil, ErrMeshHeld
	}

	em := &evaluatedMesh{scene: o.scene}
	if o.mesh != nil {
		em.fill(o.mesh)
	}

	o.scene.held = em
	o.scene.acquired++
	return em, nil
}

type evaluatedMesh struct {
	scene     *Scene
	positions []gmath.Vec3
	loops     []geometry.Loop
	polygons  []geometry.Polygon
	layers    []geometry.UVLayer
}

func (m *evaluatedMesh) fill(doc *MeshDoc) {
	m.positions = make([]gmath.Vec3, len(doc.Positions))
	for i, p := range doc.Positions {
		m.positions[i] = gmath.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}

	m.loops = make([]geometry.Loop, 0, doc.LoopCount())
	m.polygons = make([]geometry.Polygon, 0, len(doc.Polygons))
	for _, poly := range doc.Polygons {
		m.polygons = append(m.polygons, geometry.Polygon{LoopStart: len(m.loops), LoopTotal: len(poly)})
		for _, v := range poly {
			m.loops = append(m.loops, geometry.Loop{Vertex: v})
		}
	}

	for _, layer := range doc.UVLayers {
		uvs := make([]gmath.Vec2, len(layer.UVs))
		for i, uv := range layer.UVs {
			uvs[i] = gmath.Vec2{X: uv[0], Y: uv[1]}
		}
		m.layers = append(m.layers, geometry.UVLayer{Name: layer.Name, UVs: uvs})
	}
}

func (m *evaluatedMesh) Positions() []gmath.Vec3      { return m.positions }
func (m *evaluatedMesh) Loops() []geometry.Loop       { return m.loops }
func (m *evaluatedMesh) Polygons() []geometry.Polygon { return m.polygons }
func (m *evaluatedMesh) UVLayers() []geometry.UVLayer { return m.layers }

// Release returns the mesh to the scene.
func (m *evaluatedMesh) Release() error {
	if m.scene.held != m {
		return ErrNotAcquired
	}
	m.scene.held = nil
	m.scene.released++
	m.positions, m.loops, m.polygons, m.layers = nil, nil, nil, nil
	return nil
}
