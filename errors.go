package curve

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCounts indicates that the numbers of origins and handles
	// passed to [FromAnchors] don't describe a spline.
	ErrInvalidCounts = errors.New("curve: invalid origin/handle counts")
	// ErrEmptyCurveSet indicates an attempt to build a spline without
	// segments.
	ErrEmptyCurveSet = errors.New("curve: empty curve set")
	// ErrNumericRange indicates a parameter outside its domain, a
	// non-finite coordinate, or a value that can't be narrowed to float32.
	ErrNumericRange = errors.New("curve: numeric range exceeded")
)

// DegenerateCurveError is returned when two guarded control points of a
// segment are closer than [Epsilon].
type DegenerateCurveError struct {
	A, B ControlKind
}

func (err *DegenerateCurveError) Error() string {
	return fmt.Sprintf("curve: degenerate curve: %s and %s coincide", err.A, err.B)
}

// IndexOutOfRangeError is returned when a segment index doesn't exist.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (err *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("curve: segment index %d out of range [0, %d)", err.Index, err.Len)
}

func numericRange(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNumericRange}, args...)...)
}
