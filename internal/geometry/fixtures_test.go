package geometry

import (
	"errors"

	gmath "github.com/Faultbox/mymesh/pkg/math"
)

// fakeMesh is an in-memory EvaluatedMesh that counts releases.
type fakeMesh struct {
	positions  []gmath.Vec3
	loops      []Loop
	polys      []Polygon
	layers     []UVLayer
	releases   int
	releaseErr error
}

func (m *fakeMesh) Positions() []gmath.Vec3 { return m.positions }
func (m *fakeMesh) Loops() []Loop           { return m.loops }
func (m *fakeMesh) Polygons() []Polygon     { return m.polys }
func (m *fakeMesh) UVLayers() []UVLayer     { return m.layers }

func (m *fakeMesh) Release() error {
	m.releases++
	return m.releaseErr
}

// fakeObject hands out its mesh on every evaluation.
type fakeObject struct {
	name      string
	kind      Kind
	hidden    bool
	transform gmath.Mat4
	mesh      *fakeMesh
	evalErr   error
}

func (o *fakeObject) Name() string               { return o.name }
func (o *fakeObject) Kind() Kind                 { return o.kind }
func (o *fakeObject) Hidden() bool               { return o.hidden }
func (o *fakeObject) WorldTransform() gmath.Mat4 { return o.transform }

func (o *fakeObject) EvaluateMesh() (EvaluatedMesh, error) {
	if o.evalErr != nil {
		return nil, o.evalErr
	}
	return o.mesh, nil
}

// quadMesh builds a single quad on the XY plane with one UV layer.
func quadMesh() *fakeMesh {
	return &fakeMesh{
		positions: []gmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}},
		loops:     []Loop{{0}, {1}, {2}, {3}},
		polys:     []Polygon{{LoopStart: 0, LoopTotal: 4}},
		layers: []UVLayer{{
			Name: "UVMap",
			UVs:  []gmath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		}},
	}
}

func meshObject(name string, mesh *fakeMesh) *fakeObject {
	return &fakeObject{name: name, kind: KindMesh, transform: gmath.Identity(), mesh: mesh}
}

var errCacheBusy = errors.New("mesh cache busy")
