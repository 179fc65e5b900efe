// Package exporter turns a host scene into a single MY_MESH buffer.
//
// One export is a single synchronous unit of work: every eligible mesh is
// read, validated and folded into an aggregate, the aggregate is encoded in
// memory, and only then are bytes handed to the output. Any failure leaves
// the output untouched.
package exporter

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/renameio/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/mymesh/internal/geometry"
	"github.com/Faultbox/mymesh/pkg/formats"
)

// ErrSinkWrite wraps I/O failures on the export destination.
var ErrSinkWrite = errors.New("writing export output failed")

// DefaultFileMode is used by ExportFile when Options.FileMode is zero.
const DefaultFileMode os.FileMode = 0644

// Options control a single export.
type Options struct {
	// IncludeHidden exports hidden mesh objects too.
	IncludeHidden bool
	// FileMode is the permission of files written by ExportFile.
	FileMode os.FileMode
	// Reporter receives one error report per failure or one summary on
	// success. Nil discards reports.
	Reporter Reporter
	// Log receives diagnostics. Nil disables logging.
	Log *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Reporter == nil {
		o.Reporter = ReporterFunc(func(Report) {})
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	if o.FileMode == 0 {
		o.FileMode = DefaultFileMode
	}
	return o
}

// Encode collects src and returns the encoded bytes without writing them
// anywhere. Reports are emitted as for Export.
func Encode(src geometry.Source, opts Options) ([]byte, Stats, error) {
	opts = opts.withDefaults()

	mesh, stats, err := collect(src, opts)
	if err != nil {
		return nil, Stats{}, fail(opts, err)
	}
	data, err := formats.EncodeMyMesh(mesh)
	if err != nil {
		return nil, Stats{}, fail(opts, err)
	}

	succeed(opts, stats)
	return data, stats, nil
}

// Export encodes src and writes the result to w in one call.
// w receives nothing when collection or encoding fails.
func Export(src geometry.Source, w io.Writer, opts Options) (Stats, error) {
	opts = opts.withDefaults()

	mesh, stats, err := collect(src, opts)
	if err != nil {
		return Stats{}, fail(opts, err)
	}

	if _, err := formats.WriteMyMesh(w, mesh); err != nil {
		if !errors.Is(err, formats.ErrEncodingPrecondition) {
			err = fmt.Errorf("%w: %v", ErrSinkWrite, err)
		}
		return Stats{}, fail(opts, err)
	}

	succeed(opts, stats)
	return stats, nil
}

// ExportFile encodes src and replaces path atomically: the data goes to a
// temporary file in the same directory which is renamed over path once it
// is complete. A failed export never leaves a partial file at path.
func ExportFile(src geometry.Source, path string, opts Options) (Stats, error) {
	opts = opts.withDefaults()

	mesh, stats, err := collect(src, opts)
	if err != nil {
		return Stats{}, fail(opts, err)
	}
	data, err := formats.EncodeMyMesh(mesh)
	if err != nil {
		return Stats{}, fail(opts, err)
	}

	if err := renameio.WriteFile(path, data, opts.FileMode); err != nil {
		return Stats{}, fail(opts, fmt.Errorf("%w: %s: %v", ErrSinkWrite, path, err))
	}

	opts.Log.Debug("wrote mesh file", zap.String("path", path), zap.Int("bytes", len(data)))
	succeed(opts, stats)
	return stats, nil
}

// collect aggregates src and checks the aggregate against its own totals.
func collect(src geometry.Source, opts Options) (*formats.MyMesh, Stats, error) {
	agg, err := Collect(src, opts.IncludeHidden, opts.Log)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := agg.Stats()
	mesh := agg.Mesh()
	if mesh.TriangleCount() != stats.Triangles || len(mesh.Vertices) != stats.Vertices {
		return nil, Stats{}, fmt.Errorf("%w: aggregate holds %d triangles and %d vertices, totals say %d and %d",
			formats.ErrEncodingPrecondition, mesh.TriangleCount(), len(mesh.Vertices), stats.Triangles, stats.Vertices)
	}
	return mesh, stats, nil
}

// fail hands err to the reporter. The logger only gets a debug trace so a
// reporter writing to the same log does not print the failure twice.
func fail(opts Options, err error) error {
	r := failureReport(err)
	opts.Reporter.Report(r)
	opts.Log.Debug("export failed", zap.String("object", r.Object), zap.Error(err))
	return err
}

func succeed(opts Options, stats Stats) {
	opts.Reporter.Report(successReport(stats))
	opts.Log.Debug("export finished",
		zap.Int("meshes", stats.Meshes),
		zap.Int("triangles", stats.Triangles),
		zap.Int("indices", stats.Indices()),
		zap.Int("vertices", stats.Vertices))
}
