package junction

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/plotline/curve"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// arm returns a straight member of the given length leaving the origin at
// angle degrees.
func arm(t *testing.T, id string, angle, length, width float64) Member {
	t.Helper()
	a := angle * math.Pi / 180
	s, err := curve.LineSegment(curve.Pt(0, 0, 0), curve.Pt(length*math.Cos(a), length*math.Sin(a), 0))
	if err != nil {
		t.Fatal(err)
	}
	sp, err := curve.NewSpline(s)
	if err != nil {
		t.Fatal(err)
	}
	return Member{ID: id, Spline: sp, Width: width}
}

func reversed(m Member) Member {
	m.Spline = m.Spline.Reverse()
	return m
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Offset = 0.001
	return opts
}

func area(t *testing.T, sp curve.Spline) (float64, int) {
	t.Helper()
	pl, err := sp.Flatten(0.01)
	if err != nil {
		t.Fatal(err)
	}
	return pl.SignedArea(), pl.Len()
}

func hasVertex(sp curve.Spline, p curve.Point, tolerance float64) bool {
	for _, s := range sp.Segments() {
		if s.Start().Distance(p) <= tolerance {
			return true
		}
	}
	return false
}

func TestBuildSymmetric(t *testing.T) {
	members := []Member{
		arm(t, "a", 0, 20, 4),
		arm(t, "c", 240, 20, 4),
		reversed(arm(t, "b", 120, 20, 4)),
	}
	j, err := Build(members, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, curve.Pt(0, 0, 0), j.Center)
	var ids []string
	for _, m := range j.Members {
		ids = append(ids, m.ID)
		if d := m.Spline.Start().Distance(j.Center); d > 1e-9 {
			t.Errorf("member %s starts %g from the center", m.ID, d)
		}
	}
	diff(t, []string{"a", "b", "c"}, ids)

	if !j.Boundary.IsClosed(0) {
		t.Fatalf("boundary isn't closed")
	}
	a3, n3 := area(t, j.Boundary)
	if a3 <= 0 {
		t.Errorf("got area %g, want positive", a3)
	}
	// The edges of adjacent arms meet at h/cos(60°) from the center.
	corner := curve.Pt(2/math.Sqrt(3), 2, 0)
	if !hasVertex(j.Boundary, corner, 0.02) {
		t.Errorf("no corner at %s in %s", corner, j.Boundary)
	}

	opts := testOptions()
	j4, err := Build([]Member{
		arm(t, "a", 0, 20, 4),
		arm(t, "b", 90, 20, 4),
		arm(t, "c", 180, 20, 4),
		arm(t, "d", 270, 20, 4),
	}, opts)
	if err != nil {
		t.Fatal(err)
	}
	a4, n4 := area(t, j4.Boundary)
	if n4 <= n3 {
		t.Errorf("got %d vertices for 4 members and %d for 3", n4, n3)
	}
	// Four arms of 20 by 4 overlapping in a 4 by 4 square.
	diff(t, 4.0*(18*4)+16, a4, cmpopts.EquateApprox(0, 1e-6))
}

func TestBuildStraight(t *testing.T) {
	j, err := Build([]Member{
		arm(t, "east", 0, 20, 4),
		arm(t, "west", 180, 20, 4),
	}, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	a, _ := area(t, j.Boundary)
	diff(t, 160.0, a, cmpopts.EquateApprox(0, 1e-6))
}

func TestBuildReflexCorner(t *testing.T) {
	members := []Member{
		arm(t, "east", 0, 20, 4),
		arm(t, "north", 90, 20, 4),
	}
	_, err := Build(members, testOptions())
	var cErr *CornerError
	if !errors.As(err, &cErr) {
		t.Fatalf("got %v, want CornerError", err)
	}
	diff(t, CornerError{Left: "north", Right: "east", Intersections: 0}, *cErr)

	opts := testOptions()
	opts.Miss = MissMiter
	j, err := Build(members, opts)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := area(t, j.Boundary)
	diff(t, 22.0*4+18*4, a, cmpopts.EquateApprox(0, 1e-6))
	if !hasVertex(j.Boundary, curve.Pt(-2, -2, 0), 1e-6) {
		t.Errorf("no miter point in %s", j.Boundary)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build([]Member{arm(t, "a", 0, 20, 4)}, testOptions()); !errors.Is(err, ErrInsufficientMembers) {
		t.Errorf("got %v, want ErrInsufficientMembers", err)
	}

	stray := arm(t, "stray", 45, 20, 4)
	stray.Spline = mustShift(t, stray.Spline, curve.Pt(100, 0, 0))
	_, err := Build([]Member{
		arm(t, "a", 0, 20, 4),
		arm(t, "b", 120, 20, 4),
		stray,
	}, testOptions())
	var mErr *MismatchError
	if !errors.As(err, &mErr) {
		t.Fatalf("got %v, want MismatchError", err)
	}
	diff(t, 2, mErr.Index)

	bad := arm(t, "b", 120, 20, 0)
	if _, err := Build([]Member{arm(t, "a", 0, 20, 4), bad}, testOptions()); !errors.Is(err, curve.ErrNumericRange) {
		t.Errorf("got %v, want ErrNumericRange", err)
	}
}

func mustShift(t *testing.T, sp curve.Spline, d curve.Point) curve.Spline {
	t.Helper()
	var segs []curve.Segment
	for _, s := range sp.Segments() {
		ns, err := curve.NewSegment(s.Start().Add(d), s.StartHandle().Add(d), s.EndHandle().Add(d), s.End().Add(d))
		if err != nil {
			t.Fatal(err)
		}
		segs = append(segs, ns)
	}
	out, err := curve.NewSpline(segs...)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestBuildWidths(t *testing.T) {
	// Members of different widths meeting at right angles.
	for _, w := range []float64{2, 6} {
		t.Run(fmt.Sprint(w), func(t *testing.T) {
			j, err := Build([]Member{
				arm(t, "a", 0, 20, 4),
				arm(t, "b", 90, 20, w),
				arm(t, "c", 180, 20, 4),
				arm(t, "d", 270, 20, w),
			}, testOptions())
			if err != nil {
				t.Fatal(err)
			}
			if !hasVertex(j.Boundary, curve.Pt(w/2, 2, 0), 0.02) {
				t.Errorf("no corner at (%g, 2) in %s", w/2, j.Boundary)
			}
		})
	}
}

func TestBuildAmbiguousCorner(t *testing.T) {
	// b arches over a and comes back down across it, so the right edge of
	// b crosses the left edge of a twice.
	hump, err := curve.NewSegment(curve.Pt(0, 0, 0), curve.Pt(0, 6, 0), curve.Pt(10, 6, 0), curve.Pt(10, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	sp, err := curve.NewSpline(hump)
	if err != nil {
		t.Fatal(err)
	}
	a := arm(t, "a", 0, 20, 2)
	b := Member{ID: "b", Spline: sp, Width: 2}

	opts := testOptions()
	_, err = Build([]Member{a, b}, opts)
	var cErr *CornerError
	if !errors.As(err, &cErr) {
		t.Fatalf("got %v, want CornerError", err)
	}
	diff(t, CornerError{Left: "a", Right: "b", Intersections: 2}, *cErr)

	left, err := a.Spline.Offset(1, opts.Offset)
	if err != nil {
		t.Fatal(err)
	}
	right, err := b.Spline.Offset(-1, opts.Offset)
	if err != nil {
		t.Fatal(err)
	}
	xs, err := left.Reverse().Intersections(right, opts.Intersection)
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 2 {
		t.Fatalf("got %d crossings, want 2", len(xs))
	}
	near, far := xs[0].Point, xs[1].Point
	if near.Distance(curve.Pt(0, 0, 0)) > far.Distance(curve.Pt(0, 0, 0)) {
		near, far = far, near
	}

	opts.Ambiguous = AmbiguousNearestCenter
	// The outside of b's arch meets the right edge of a at a reflex corner.
	opts.Miss = MissMiter
	j, err := Build([]Member{a, b}, opts)
	if err != nil {
		t.Fatal(err)
	}
	// The boundary runs in along the left edge of a and turns at the
	// crossing nearest to the center.
	first := j.Boundary.Segments()[0]
	diff(t, curve.Pt(20, 1, 0), first.Start(), cmpopts.EquateApprox(0, 1e-9))
	if d := first.End().Distance(near); d > 0.02 {
		t.Errorf("left edge of a cut at %s, %g from the nearest crossing %s (far crossing %s)", first.End(), d, near, far)
	}
	if !j.Boundary.IsClosed(0) {
		t.Error("boundary isn't closed")
	}
}
