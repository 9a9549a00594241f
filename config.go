package curve

import (
	"fmt"
	"io"
	"math"

	"github.com/pelletier/go-toml/v2"
)

// Epsilon is the minimum distance between the guarded control point pairs of
// a [Segment].
const Epsilon = 1e-6

// DefaultAccuracy is a default value for methods that take an accuracy
// argument that isn't one of the [Tolerances], such as arc length and nearest
// point queries.
const DefaultAccuracy = 1e-6

// Tolerances holds the accuracy knobs of the derived operations. The defaults
// suit architectural and civil scale drawings in meters.
type Tolerances struct {
	// Maximum deviation of a flattened polyline from the curve.
	Flatten float64 `toml:"flatten"`
	// Maximum deviation of an offset spline from the true parallel curve.
	Offset float64 `toml:"offset"`
	// Flattening tolerance used for curve-curve intersection.
	Intersection float64 `toml:"intersection"`
}

// DefaultTolerances returns 10 mm flattening, 1 unit offsetting and 10 mm
// intersection tolerances.
func DefaultTolerances() Tolerances {
	return Tolerances{
		Flatten:      0.01,
		Offset:       1,
		Intersection: 0.01,
	}
}

// LoadTolerances reads tolerances from a TOML document. Keys that are absent
// keep their default values; unknown keys are rejected.
//
//	flatten = 0.005
//	offset = 0.5
func LoadTolerances(r io.Reader) (Tolerances, error) {
	tol := DefaultTolerances()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&tol); err != nil {
		return Tolerances{}, fmt.Errorf("curve: decoding tolerances: %w", err)
	}
	if err := tol.Validate(); err != nil {
		return Tolerances{}, err
	}
	return tol, nil
}

// Validate reports an error wrapping [ErrNumericRange] if any tolerance is
// not a positive finite number.
func (tol Tolerances) Validate() error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"flatten", tol.Flatten},
		{"offset", tol.Offset},
		{"intersection", tol.Intersection},
	} {
		if !validTolerance(v.val) {
			return numericRange("%s tolerance %v", v.name, v.val)
		}
	}
	return nil
}

func validTolerance(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// sanitizeAccuracy replaces accuracies that would make the numeric routines
// loop forever with [DefaultAccuracy].
func sanitizeAccuracy(accuracy float64) float64 {
	if !validTolerance(accuracy) {
		return DefaultAccuracy
	}
	return accuracy
}
