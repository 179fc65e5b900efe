package geometry

import (
	"errors"
	"fmt"
)

// Mesh read errors. All of them abort the export.
var (
	ErrMissingUVLayer   = errors.New("mesh has no UV layer")
	ErrAmbiguousUVLayer = errors.New("mesh has more than one UV layer")
	ErrInvalidMesh      = errors.New("invalid mesh topology")
	ErrIneligibleObject = errors.New("object is not a mesh")
	ErrEvaluate         = errors.New("evaluating mesh failed")
	ErrRelease          = errors.New("releasing evaluated mesh failed")
)

// ObjectError ties a read failure to the scene object that caused it.
type ObjectError struct {
	Object string
	Err    error
}

func (e *ObjectError) Error() string {
	return fmt.Sprintf("object %q: %v", e.Object, e.Err)
}

func (e *ObjectError) Unwrap() error {
	return e.Err
}

// FailingObject returns the object named by the first ObjectError in err's
// chain, or "" if there is none.
func FailingObject(err error) string {
	var oe *ObjectError
	if errors.As(err, &oe) {
		return oe.Object
	}
	return ""
}
