package junction

import (
	"fmt"
	"io"
	"math"

	"github.com/pelletier/go-toml/v2"

	"github.com/plotline/curve"
)

// MissPolicy decides how a corner is closed when the two edges meeting there
// don't intersect. This happens at reflex corners, such as the outside of an
// L-shaped junction.
type MissPolicy int

const (
	// MissFail fails the build with a [*CornerError].
	MissFail MissPolicy = iota
	// MissMiter extends both edges along their tangents to where they meet,
	// or connects them straight if they diverge.
	MissMiter
)

// AmbiguousPolicy decides what to do when the two edges meeting at a corner
// intersect more than once.
type AmbiguousPolicy int

const (
	// AmbiguousFail fails the build with a [*CornerError].
	AmbiguousFail AmbiguousPolicy = iota
	// AmbiguousNearestCenter uses the intersection closest to the junction's
	// center.
	AmbiguousNearestCenter
)

var missNames = map[MissPolicy]string{
	MissFail:  "fail",
	MissMiter: "miter",
}

var ambiguousNames = map[AmbiguousPolicy]string{
	AmbiguousFail:          "fail",
	AmbiguousNearestCenter: "nearest-center",
}

func (p MissPolicy) String() string {
	if s, ok := missNames[p]; ok {
		return s
	}
	return fmt.Sprintf("MissPolicy(%d)", int(p))
}

func (p MissPolicy) MarshalText() ([]byte, error) {
	if s, ok := missNames[p]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("junction: invalid miss policy %d", int(p))
}

func (p *MissPolicy) UnmarshalText(b []byte) error {
	for k, v := range missNames {
		if v == string(b) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("junction: unknown miss policy %q", b)
}

func (p AmbiguousPolicy) String() string {
	if s, ok := ambiguousNames[p]; ok {
		return s
	}
	return fmt.Sprintf("AmbiguousPolicy(%d)", int(p))
}

func (p AmbiguousPolicy) MarshalText() ([]byte, error) {
	if s, ok := ambiguousNames[p]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("junction: invalid ambiguity policy %d", int(p))
}

func (p *AmbiguousPolicy) UnmarshalText(b []byte) error {
	for k, v := range ambiguousNames {
		if v == string(b) {
			*p = k
			return nil
		}
	}
	return fmt.Errorf("junction: unknown ambiguity policy %q", b)
}

// Options configures [Build].
type Options struct {
	// Offset is the accuracy of the member edges. Intersection is both the
	// flattening tolerance for finding corners and the distance within which
	// end points are considered coincident.
	curve.Tolerances

	// Arc length along each member at which its direction is measured. It is
	// clamped to half the member's length.
	SampleDistance float64 `toml:"sample_distance"`

	Miss      MissPolicy      `toml:"miss"`
	Ambiguous AmbiguousPolicy `toml:"ambiguous"`
}

// DefaultOptions returns the default tolerances, a sample distance of one
// unit, and policies that fail on corners that can't be stitched
// unambiguously.
func DefaultOptions() Options {
	return Options{
		Tolerances:    curve.DefaultTolerances(),
		SampleDistance: 1,
	}
}

// LoadOptions reads options from a TOML document, on top of
// [DefaultOptions].
//
//	intersection = 0.001
//	sample_distance = 2.5
//	miss = "miter"
//	ambiguous = "nearest-center"
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&opts); err != nil {
		return Options{}, fmt.Errorf("junction: decoding options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate checks the tolerances and the sample distance.
func (opts Options) Validate() error {
	if err := opts.Tolerances.Validate(); err != nil {
		return err
	}
	if !(opts.SampleDistance > 0) || math.IsInf(opts.SampleDistance, 0) {
		return fmt.Errorf("%w: sample distance %v", curve.ErrNumericRange, opts.SampleDistance)
	}
	if _, ok := missNames[opts.Miss]; !ok {
		return fmt.Errorf("junction: invalid miss policy %d", int(opts.Miss))
	}
	if _, ok := ambiguousNames[opts.Ambiguous]; !ok {
		return fmt.Errorf("junction: invalid ambiguity policy %d", int(opts.Ambiguous))
	}
	return nil
}
