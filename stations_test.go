package curve

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestStations(t *testing.T) {
	sp := mustSpline(t,
		line(Pt(0, 0, 0), Pt(10, 0, 0)),
		line(Pt(10, 0, 0), Pt(10, 5, 0)),
	)
	got, err := sp.Stations(4, 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	want := []Station{
		{T: 0, Distance: 0, Point: Pt(0, 0, 0), Tangent: Pt(1, 0, 0)},
		{T: 0.2, Distance: 4, Point: Pt(4, 0, 0), Tangent: Pt(1, 0, 0)},
		{T: 0.4, Distance: 8, Point: Pt(8, 0, 0), Tangent: Pt(1, 0, 0)},
		{T: 0.7, Distance: 12, Point: Pt(10, 2, 0), Tangent: Pt(0, 1, 0)},
	}
	diff(t, want, got, pointApprox, cmpopts.EquateApprox(0, 1e-7))
}

func TestStationsCurve(t *testing.T) {
	sp := exampleSpline(t)
	total := sp.Length(1e-9)
	got, err := sp.Stations(5, 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if want := int(total/5) + 1; len(got) != want {
		t.Fatalf("got %d stations, want %d", len(got), want)
	}
	for i, st := range got {
		head := total
		if st.T < 1 {
			if st.T > 0 {
				h, err := sp.Trim(0, st.T)
				if err != nil {
					t.Fatal(err)
				}
				head = h.Length(1e-9)
			} else {
				head = 0
			}
		}
		diff(t, float64(i)*5, head, cmpopts.EquateApprox(0, 1e-6))
		diff(t, float64(i)*5, st.Distance)
	}

	n, err := sp.StationsN(7, 1e-9)
	if err != nil {
		t.Fatal(err)
	}
	if len(n) != 8 {
		t.Fatalf("got %d stations, want 8", len(n))
	}
	diff(t, 1.0, n[7].T)
	diff(t, Pt(70, 0, 0), n[7].Point, pointApprox)
	diff(t, total/7*3, n[3].Distance, cmpopts.EquateApprox(0, 1e-9))
}

func TestStationsErrors(t *testing.T) {
	sp := exampleSpline(t)
	if _, err := sp.Stations(0, 1e-6); !errors.Is(err, ErrNumericRange) {
		t.Errorf("got %v, want ErrNumericRange", err)
	}
	if _, err := sp.Stations(1e-9, 1e-6); !errors.Is(err, ErrNumericRange) {
		t.Errorf("got %v, want ErrNumericRange", err)
	}
	if _, err := sp.StationsN(0, 1e-6); !errors.Is(err, ErrNumericRange) {
		t.Errorf("got %v, want ErrNumericRange", err)
	}
}
