package curve

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// pointApprox compares points to within 1e-9 in each coordinate.
var pointApprox = approxPoints(1e-9)

// segments allows comparing segments, optionally combined with pointApprox.
var segments = cmp.AllowUnexported(Segment{})

func approxPoints(eps float64) cmp.Option {
	return cmp.Comparer(func(a, b Point) bool {
		d := a.Sub(b)
		return abs(d.X) <= eps && abs(d.Y) <= eps && abs(d.Z) <= eps
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func mustSegment(t *testing.T, p0, p1, p2, p3 Point) Segment {
	t.Helper()
	s, err := NewSegment(p0, p1, p2, p3)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustSpline(t *testing.T, segs ...Segment) Spline {
	t.Helper()
	sp, err := NewSpline(segs...)
	if err != nil {
		t.Fatal(err)
	}
	return sp
}
