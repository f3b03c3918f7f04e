package graphics

import "errors"

var (
	// ErrUnsupportedPointType is returned when a path contains a point type
	// other than start or line, such as a bezier control point.
	ErrUnsupportedPointType = errors.New("unsupported path point type")

	// ErrMalformedPath is returned when a path's point and type slices
	// disagree in length.
	ErrMalformedPath = errors.New("malformed path")

	// ErrAttributeConflict is returned by Vector.Optimize when merging two
	// groups would overwrite a non-transform attribute.
	ErrAttributeConflict = errors.New("conflicting attribute on merged group")

	// ErrEmptyImage is recorded when an image with no pixels is drawn.
	ErrEmptyImage = errors.New("image has no pixels")
)

// failure keeps the first error a backend hit while drawing. Draw calls
// have no error result, so the error surfaces when the output is encoded.
type failure struct {
	err error
}

func (f *failure) fail(err error) {
	if f.err == nil && err != nil {
		f.err = err
	}
}

// Err returns the first drawing error, or nil.
func (f *failure) Err() error { return f.err }
