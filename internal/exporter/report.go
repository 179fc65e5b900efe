package exporter

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/mymesh/internal/geometry"
)

// Severity classifies a report.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the severity name as hosts usually display it.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Report is one message for the user.
type Report struct {
	Severity Severity
	Object   string // Offending object, empty for scene-wide reports
	Message  string
}

// Reporter receives user-facing reports. Rendering them is the host's job.
type Reporter interface {
	Report(r Report)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(r Report)

// Report calls f(r).
func (f ReporterFunc) Report(r Report) {
	f(r)
}

// Collector keeps every report in order. Useful for tests and batch tools.
type Collector struct {
	Reports []Report
}

// Report appends r.
func (c *Collector) Report(r Report) {
	c.Reports = append(c.Reports, r)
}

// LogReporter forwards reports to a zap logger.
type LogReporter struct {
	Log *zap.Logger
}

// Report logs r at the level matching its severity.
func (l LogReporter) Report(r Report) {
	var fields []zap.Field
	if r.Object != "" {
		fields = append(fields, zap.String("object", r.Object))
	}
	switch r.Severity {
	case SeverityError:
		l.Log.Error(r.Message, fields...)
	case SeverityWarning:
		l.Log.Warn(r.Message, fields...)
	default:
		l.Log.Info(r.Message, fields...)
	}
}

// failureReport turns an export error into the single report shown for it.
func failureReport(err error) Report {
	r := Report{Severity: SeverityError, Object: geometry.FailingObject(err)}
	switch {
	case errors.Is(err, geometry.ErrMissingUVLayer):
		r.Message = "There's a mesh without uv layers in this scene. We don't support that."
	case errors.Is(err, geometry.ErrAmbiguousUVLayer):
		r.Message = "There's a mesh with more than 1 uv layer in the scene. We don't support that."
	default:
		r.Message = fmt.Sprintf("Export failed: %v", err)
	}
	if r.Object != "" {
		r.Message = fmt.Sprintf("%s (object %q)", r.Message, r.Object)
	}
	return r
}

// successReport summarizes a finished export.
func successReport(s Stats) Report {
	return Report{
		Severity: SeverityInfo,
		Message: fmt.Sprintf("Exported %d meshes: %d triangles, %d indices, %d vertices",
			s.Meshes, s.Triangles, s.Indices(), s.Vertices),
	}
}
