// Package geometry reads mesh objects from a host scene into triangulated,
// world-space, UV-validated form.
//
// The host (an authoring tool, a scene document, a test fixture) binds to
// the Source, Object and EvaluatedMesh interfaces. Everything this package
// returns is owned by the caller and stays valid after the host mesh has
// been released.
package geometry

import (
	gmath "github.com/Faultbox/mymesh/pkg/math"
)

// Kind is the host's object type.
type Kind string

// Object kinds. Only KindMesh carries geometry.
const (
	KindMesh   Kind = "MESH"
	KindLight  Kind = "LIGHT"
	KindCamera Kind = "CAMERA"
	KindEmpty  Kind = "EMPTY"
	KindCurve  Kind = "CURVE"
)

// Loop is one (vertex, polygon) incidence.
type Loop struct {
	Vertex int // Index into the mesh positions
}

// Polygon is a contiguous run of loops.
type Polygon struct {
	LoopStart int
	LoopTotal int
}

// UVLayer is a named per-loop texture coordinate channel.
type UVLayer struct {
	Name string
	UVs  []gmath.Vec2 // One entry per loop
}

// Triangle references three loops of the same mesh.
type Triangle struct {
	Loops [3]uint32
}

// Source enumerates scene objects in a stable order.
type Source interface {
	Objects() []Object
}

// Object is a host scene object.
type Object interface {
	Name() string
	Kind() Kind
	Hidden() bool
	// WorldTransform maps object-local positions to world space.
	WorldTransform() gmath.Mat4
	// EvaluateMesh acquires the evaluated mesh. The caller must Release it.
	EvaluateMesh() (EvaluatedMesh, error)
}

// EvaluatedMesh is a host mesh held in the host's evaluation cache.
// Slices returned by its methods are only valid until Release.
type EvaluatedMesh interface {
	Positions() []gmath.Vec3 // Object-local space
	Loops() []Loop
	Polygons() []Polygon
	UVLayers() []UVLayer
	Release() error
}

// RawMesh is one object's geometry in export space.
// Positions are world-space with Y and Z swapped. UVs holds the object's
// single UV layer, indexed by loop like Loops.
type RawMesh struct {
	Object    string
	Positions []gmath.Vec3
	Loops     []Loop
	Triangles []Triangle
	UVs       []gmath.Vec2
}

// LoopCount returns the number of loops, which is also the number of
// vertices the mesh contributes to the export.
func (m *RawMesh) LoopCount() int {
	return len(m.Loops)
}

// Eligible reports whether obj contributes geometry to an export.
// Non-mesh objects never do; hidden meshes only when includeHidden is set.
func Eligible(obj Object, includeHidden bool) bool {
	if obj.Kind() != KindMesh {
		return false
	}
	return includeHidden || !obj.Hidden()
}
