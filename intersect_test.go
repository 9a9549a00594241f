package curve

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestIntersectionsLines(t *testing.T) {
	a := mustSpline(t, line(Pt(0, 0, 0), Pt(10, 10, 0)))
	b := mustSpline(t, line(Pt(0, 10, 3), Pt(10, 0, 3)))
	got, err := a.Intersections(b, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	want := []Intersection{{Point: Pt(5, 5, 0), T0: 0.5, T1: 0.5}}
	diff(t, want, got, pointApprox, cmpopts.EquateApprox(0, 1e-9))

	// Parallel and disjoint.
	c := mustSpline(t, line(Pt(0, 1, 0), Pt(10, 11, 0)))
	if got, err := a.Intersections(c, 0.01); err != nil || len(got) != 0 {
		t.Errorf("got %v, %v, want no intersections", got, err)
	}
	d := mustSpline(t, line(Pt(20, 20, 0), Pt(30, 20, 0)))
	if got, err := a.Intersections(d, 0.01); err != nil || len(got) != 0 {
		t.Errorf("got %v, %v, want no intersections", got, err)
	}
}

func TestIntersectionsCurve(t *testing.T) {
	sp := exampleSpline(t)
	horizontal := mustSpline(t, line(Pt(-10, 55, 0), Pt(80, 55, 0)))
	got, err := sp.Intersections(horizontal, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d intersections, want 1", len(got))
	}
	// The first segment is symmetric in y, crossing 55 half way.
	mid := sp.segs[0].PointAt(0.5)
	diff(t, mid, got[0].Point, approxPoints(0.02))
	diff(t, 0.25, got[0].T0, cmpopts.EquateApprox(0, 1e-3))
	diff(t, (mid.X+10)/90, got[0].T1, cmpopts.EquateApprox(0, 1e-3))
}

func TestIntersectionsMultiple(t *testing.T) {
	wave := mustSpline(t, mustSegment(t, Pt(0, -5, 0), Pt(10, 25, 0), Pt(20, -25, 0), Pt(30, 5, 0)))
	axis := mustSpline(t, line(Pt(-5, 0, 0), Pt(35, 0, 0)))
	got, err := wave.Intersections(axis, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d intersections, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].T0 <= got[i-1].T0 {
			t.Errorf("intersections aren't ordered: %v", got)
		}
	}
	diff(t, Pt(15, 0, 0), got[1].Point, approxPoints(0.01))
	diff(t, 0.5, got[1].T0, cmpopts.EquateApprox(0, 1e-3))
	for _, x := range got {
		p, _ := wave.PointAt(x.T0)
		q, _ := axis.PointAt(x.T1)
		if d := p.PlanarDistance(q); d > 0.02 {
			t.Errorf("refined points are %g apart", d)
		}
	}
}
