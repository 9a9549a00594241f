package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

// Handle length approximating a quarter circle of radius 1 with one cubic.
const kappa = 0.5522847498

func quarterCircle(r float64) Segment {
	return Segment{Pt(r, 0, 0), Pt(r, r*kappa, 0), Pt(r*kappa, r, 0), Pt(0, r, 0)}
}

func checkOffset(t *testing.T, src Segment, pieces []Segment, d, accuracy float64) {
	t.Helper()
	for i, p := range pieces {
		if err := p.validate(); err != nil {
			t.Errorf("piece %d: %v", i, err)
		}
		if i > 0 {
			diff(t, pieces[i-1].End(), p.Start())
		}
		const n = 16
		for j := range n + 1 {
			pt := p.PointAt(float64(j) / n)
			distSq, _, err := src.Nearest(pt, 1e-9)
			if err != nil {
				t.Fatal(err)
			}
			if e := math.Abs(math.Sqrt(distSq) - math.Abs(d)); e > accuracy {
				t.Errorf("piece %d at %d/%d: distance off by %g, want at most %g", i, j, n, e, accuracy)
			}
		}
	}
}

func TestOffsetLine(t *testing.T) {
	s := line(Pt(0, 0, 0), Pt(10, 0, 5))
	got, err := s.Offset(1, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	want := []Segment{line(Pt(0, 1, 0), Pt(10, 1, 5))}
	diff(t, want, got, segments, pointApprox)

	got, err = s.Offset(-1, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, Pt(0, -1, 0), got[0].Start(), pointApprox)

	got, err = s.Offset(0, 1e-6)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Segment{s}, got, segments)
}

func TestOffsetCircle(t *testing.T) {
	src := quarterCircle(10)
	for _, d := range []float64{2, -2, 5} {
		for _, accuracy := range []float64{0.1, 0.01, 0.001} {
			got, err := src.Offset(d, accuracy)
			if err != nil {
				t.Fatal(err)
			}
			// Positive offsets of a counter-clockwise arc move towards the
			// center.
			diff(t, Pt(10-d, 0, 0), got[0].Start(), pointApprox)
			diff(t, Pt(0, 10-d, 0), got[len(got)-1].End(), pointApprox)
			checkOffset(t, src, got, d, accuracy)
		}
	}

	// More accuracy needs more pieces.
	coarse, _ := src.Offset(-3, 0.1)
	fine, _ := src.Offset(-3, 1e-6)
	if len(fine) <= len(coarse) {
		t.Errorf("got %d pieces for 1e-6 and %d for 0.1", len(fine), len(coarse))
	}
}

func TestOffsetBeyondRadius(t *testing.T) {
	// At a distance larger than the radius, the parallel curve of a bend runs
	// backwards on the far side of the center. The result must still be a
	// valid chain.
	src := quarterCircle(1)
	got, err := src.Offset(3, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range got {
		if err := p.validate(); err != nil {
			t.Errorf("piece %d: %v", i, err)
		}
		if i > 0 {
			diff(t, got[i-1].End(), p.Start())
		}
	}
	diff(t, Pt(-2, 0, 0), got[0].Start(), pointApprox)
}

func TestOffsetErrors(t *testing.T) {
	s := quarterCircle(10)
	for _, d := range []float64{math.NaN(), math.Inf(1)} {
		if _, err := s.Offset(d, 0.1); !errors.Is(err, ErrNumericRange) {
			t.Errorf("distance %v: got %v, want ErrNumericRange", d, err)
		}
	}
	if _, err := s.Offset(1, 0); !errors.Is(err, ErrNumericRange) {
		t.Errorf("got %v, want ErrNumericRange", err)
	}
	vertical := line(Pt(0, 0, 0), Pt(0, 0, 10))
	if _, err := vertical.Offset(1, 0.1); !errors.Is(err, ErrNumericRange) {
		t.Errorf("got %v, want ErrNumericRange", err)
	}
}

func TestSplineOffset(t *testing.T) {
	sp := exampleSpline(t)
	o, err := sp.Offset(2, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if o.Len() < sp.Len() {
		t.Errorf("got %d segments, want at least %d", o.Len(), sp.Len())
	}
	// The segments meet smoothly, so their offsets connect.
	for i := 1; i < o.Len(); i++ {
		diff(t, o.segs[i-1].End(), o.segs[i].Start(), pointApprox)
	}
	diff(t, Pt(0, 72, 0), o.Start(), pointApprox)
	diff(t, Pt(72, 0, 0), o.End(), pointApprox)
	diff(t, sp.Length(1e-9), o.Length(1e-9), cmpopts.EquateApprox(0.05, 0))
}
