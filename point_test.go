package curve

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0, 1).Add(Pt(-10, 0, 2)), Pt(-10, 0, 3))
	diff(t, Pt(1, 2, 3).Sub(Pt(1, 1, 1)), Pt(0, 1, 2))
	diff(t, Pt(1, 0, 0).Cross(Pt(0, 1, 0)), Pt(0, 0, 1))
	if d := Pt(1, 2, 3).Dot(Pt(4, -5, 6)); d != 12 {
		t.Errorf("got dot product %v, want 12", d)
	}
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10, 0)
	p2 := Pt(0, 5, 0)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1, 3)
	p4 := Pt(-7, -2, 3)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
	if d := Pt(0, 0, 0).PlanarDistance(Pt(3, 4, 100)); d != 5 {
		t.Errorf("got planar distance %v, want 5", d)
	}
}

func TestPointPerp(t *testing.T) {
	n := Pt(10, 0, 7).Perp()
	diff(t, n, Pt(0, 1, 0), pointApprox)
	if !Pt(0, 0, 1).Perp().IsNaN() {
		t.Errorf("expected NaN normal for vertical vector")
	}
	if a := Pt(0, 2, 0).Angle(); math.Abs(a-math.Pi/2) > 1e-12 {
		t.Errorf("got angle %v, want π/2", a)
	}
}
