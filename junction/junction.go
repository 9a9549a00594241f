// Package junction merges paths that meet at a shared point into the outline
// of the area they cover, such as the footprint of a street intersection.
package junction

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/plotline/curve"
)

// ErrInsufficientMembers is returned by [Build] for fewer than two members.
var ErrInsufficientMembers = errors.New("junction: need at least two members")

// MismatchError is returned when a member doesn't start or end at the
// junction's shared point.
type MismatchError struct {
	// Index into the members passed to [Build].
	Index int
}

func (err *MismatchError) Error() string {
	return fmt.Sprintf("junction: member %d doesn't touch the shared point", err.Index)
}

// CornerError is returned when the edges of two adjacent members can't be
// stitched under the configured policy.
type CornerError struct {
	// IDs of the members, in counter-clockwise order.
	Left, Right string
	// Number of intersections found between the edges.
	Intersections int
}

func (err *CornerError) Error() string {
	if err.Intersections == 0 {
		return fmt.Sprintf("junction: edges of %q and %q don't intersect", err.Left, err.Right)
	}
	return fmt.Sprintf("junction: edges of %q and %q intersect %d times", err.Left, err.Right, err.Intersections)
}

// Member is a path taking part in a junction.
type Member struct {
	ID     string
	Spline curve.Spline
	// Full width of the path. Its edges run at half the width on either side.
	Width float64
}

// Junction is the result of [Build].
type Junction struct {
	// The shared point.
	Center curve.Point
	// The members, oriented to start at Center and sorted counter-clockwise
	// by direction.
	Members []Member
	// Closed counter-clockwise outline of the junction.
	Boundary curve.Spline
}

// Build stitches the edges of the members into a closed boundary.
//
// One end of every member must lie at a common point, within the
// intersection tolerance. Members are reversed as needed so that all start
// there, and are ordered counter-clockwise. Between each pair of adjacent
// members the left edge of the first is cut where it meets the right edge of
// the second, and the boundary follows both up to the cut. The far ends of
// each member are closed with a straight cap.
func Build(members []Member, opts Options) (Junction, error) {
	if len(members) < 2 {
		return Junction{}, ErrInsufficientMembers
	}
	if err := opts.Validate(); err != nil {
		return Junction{}, err
	}
	for i, m := range members {
		if m.Spline.Len() == 0 {
			return Junction{}, fmt.Errorf("junction: member %d: %w", i, curve.ErrEmptyCurveSet)
		}
		if !(m.Width > 0) || math.IsInf(m.Width, 0) {
			return Junction{}, fmt.Errorf("%w: member %d width %v", curve.ErrNumericRange, i, m.Width)
		}
	}

	center, oriented, err := orient(members, opts.Intersection)
	if err != nil {
		return Junction{}, err
	}
	sorted, err := sortByAngle(center, oriented, opts)
	if err != nil {
		return Junction{}, err
	}

	corners := make([]curve.Spline, len(sorted))
	for i := range sorted {
		c, err := stitch(center, sorted[i], sorted[(i+1)%len(sorted)], opts)
		if err != nil {
			return Junction{}, err
		}
		corners[i] = c
	}
	boundary, err := curve.Join(opts.Intersection, corners...)
	if err != nil {
		return Junction{}, err
	}
	if boundary, err = boundary.Close(opts.Intersection); err != nil {
		return Junction{}, err
	}
	return Junction{
		Center:   center,
		Members:  sorted,
		Boundary: boundary,
	}, nil
}

// orient finds the shared point and reverses members so that they all start
// there.
func orient(members []Member, tolerance float64) (curve.Point, []Member, error) {
	near := func(a, b curve.Point) bool { return a.Distance(b) <= tolerance }
	touches := func(p curve.Point) bool {
		for _, m := range members[1:] {
			if near(m.Spline.Start(), p) || near(m.Spline.End(), p) {
				return true
			}
		}
		return false
	}

	out := slices.Clone(members)
	var center curve.Point
	switch ref := out[0].Spline; {
	case touches(ref.Start()):
		center = ref.Start()
	case touches(ref.End()):
		center = ref.End()
		out[0].Spline = ref.Reverse()
		curve.Logger().Debug("reversed junction member", "index", 0, "id", out[0].ID)
	default:
		return curve.Point{}, nil, &MismatchError{Index: 1}
	}

	for i := 1; i < len(out); i++ {
		sp := out[i].Spline
		switch {
		case near(sp.Start(), center):
		case near(sp.End(), center):
			out[i].Spline = sp.Reverse()
			curve.Logger().Debug("reversed junction member", "index", i, "id", out[i].ID)
		default:
			return curve.Point{}, nil, &MismatchError{Index: i}
		}
	}
	return center, out, nil
}

// sortByAngle orders members counter-clockwise by the direction from center
// to a point a short distance along each.
func sortByAngle(center curve.Point, members []Member, opts Options) ([]Member, error) {
	type keyed struct {
		m     Member
		angle float64
	}
	keys := make([]keyed, len(members))
	for i, m := range members {
		sample := min(opts.SampleDistance, 0.5*m.Spline.Length(curve.DefaultAccuracy))
		t, err := m.Spline.ParamAtLength(sample, curve.DefaultAccuracy)
		if err != nil {
			return nil, fmt.Errorf("junction: member %d: %w", i, err)
		}
		p, err := m.Spline.PointAt(t)
		if err != nil {
			return nil, fmt.Errorf("junction: member %d: %w", i, err)
		}
		a := p.Sub(center).Angle()
		if a < 0 {
			a += 2 * math.Pi
		}
		keys[i] = keyed{m, a}
	}
	slices.SortStableFunc(keys, func(a, b keyed) int {
		return cmp.Compare(a.angle, b.angle)
	})
	out := make([]Member, len(keys))
	for i, k := range keys {
		out[i] = k.m
	}
	return out, nil
}

// stitch returns the corner between member a and the next member b
// counter-clockwise. It runs inwards along the left edge of a and outwards
// along the right edge of b.
func stitch(center curve.Point, a, b Member, opts Options) (curve.Spline, error) {
	left, err := a.Spline.Offset(0.5*a.Width, opts.Offset)
	if err != nil {
		return curve.Spline{}, fmt.Errorf("junction: left edge of %q: %w", a.ID, err)
	}
	left = left.Reverse()
	right, err := b.Spline.Offset(-0.5*b.Width, opts.Offset)
	if err != nil {
		return curve.Spline{}, fmt.Errorf("junction: right edge of %q: %w", b.ID, err)
	}
	tol := opts.Intersection
	log := curve.Logger().With("left", a.ID, "right", b.ID)

	if left.End().Distance(right.Start()) <= tol {
		log.Debug("junction corner: edges meet")
		return curve.Join(tol, left, right)
	}

	xs, err := left.Intersections(right, tol)
	if err != nil {
		return curve.Spline{}, err
	}
	var x curve.Intersection
	switch {
	case len(xs) == 1:
		x = xs[0]
	case len(xs) > 1 && opts.Ambiguous == AmbiguousNearestCenter:
		x = slices.MinFunc(xs, func(p, q curve.Intersection) int {
			return cmp.Compare(p.Point.PlanarDistance(center), q.Point.PlanarDistance(center))
		})
		log.Debug("junction corner: picked intersection nearest to center", "candidates", len(xs), "point", x.Point)
	case len(xs) == 0 && opts.Miss == MissMiter:
		return miter(left, right, tol, log)
	default:
		return curve.Spline{}, &CornerError{Left: a.ID, Right: b.ID, Intersections: len(xs)}
	}

	log.Debug("junction corner: edges intersect", "point", x.Point, "t0", x.T0, "t1", x.T1)
	l, err := left.Trim(0, x.T0)
	if err != nil {
		return curve.Spline{}, fmt.Errorf("junction: cutting left edge of %q: %w", a.ID, err)
	}
	r, err := right.Trim(x.T1, 1)
	if err != nil {
		return curve.Spline{}, fmt.Errorf("junction: cutting right edge of %q: %w", b.ID, err)
	}
	return curve.Join(tol, l, r)
}
