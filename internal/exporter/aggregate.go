package exporter

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/mymesh/internal/geometry"
	"github.com/Faultbox/mymesh/pkg/formats"
)

// Stats are running totals over the meshes folded into an export.
// They are informational only and never change the encoded bytes.
type Stats struct {
	Meshes    int
	Triangles int
	Vertices  int
}

// Indices returns the header index_count for these totals.
func (s Stats) Indices() int {
	return 3 * s.Triangles
}

// Aggregate concatenates per-object meshes into one scene-wide mesh.
// Every loop becomes its own vertex; shared positions are not welded.
type Aggregate struct {
	mesh  formats.MyMesh
	stats Stats
}

// Add appends raw's loops as vertices and its triangles as indices offset
// by the number of vertices added so far.
func (a *Aggregate) Add(raw *geometry.RawMesh) error {
	base := len(a.mesh.Vertices)
	if uint64(base)+uint64(raw.LoopCount()) > gomath.MaxUint32 {
		return &geometry.ObjectError{Object: raw.Object, Err: fmt.Errorf("%w: vertex count overflows uint32",
			formats.ErrEncodingPrecondition)}
	}

	for i, loop := range raw.Loops {
		p, uv := raw.Positions[loop.Vertex], raw.UVs[i]
		a.mesh.Vertices = append(a.mesh.Vertices, formats.MyMeshVertex{
			Position: [3]float32{p.X, p.Y, p.Z},
			UV:       [2]float32{uv.X, uv.Y},
		})
	}
	for _, tri := range raw.Triangles {
		a.mesh.Indices = append(a.mesh.Indices,
			uint32(base)+tri.Loops[0],
			uint32(base)+tri.Loops[1],
			uint32(base)+tri.Loops[2],
		)
	}

	a.stats.Meshes++
	a.stats.Triangles += len(raw.Triangles)
	a.stats.Vertices += raw.LoopCount()
	return nil
}

// Mesh returns the accumulated mesh.
func (a *Aggregate) Mesh() *formats.MyMesh {
	return &a.mesh
}

// Stats returns the running totals.
func (a *Aggregate) Stats() Stats {
	return a.stats
}

// Collect reads every eligible object of src in enumeration order and
// folds it into one aggregate. The first failing object aborts the
// collection and nothing collected so far is returned.
func Collect(src geometry.Source, includeHidden bool, log *zap.Logger) (*Aggregate, error) {
	agg := &Aggregate{}
	for _, obj := range src.Objects() {
		if !geometry.Eligible(obj, includeHidden) {
			log.Debug("skipping object",
				zap.String("object", obj.Name()),
				zap.String("kind", string(obj.Kind())),
				zap.Bool("hidden", obj.Hidden()))
			continue
		}

		raw, err := geometry.Read(obj)
		if err != nil {
			return nil, err
		}
		if err := agg.Add(raw); err != nil {
			return nil, err
		}

		log.Debug("collected mesh",
			zap.String("object", raw.Object),
			zap.Int("loops", raw.LoopCount()),
			zap.Int("triangles", len(raw.Triangles)))
	}
	return agg, nil
}
