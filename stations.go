package curve

import (
	"fmt"
	"math"
)

// Maximum number of stations [Spline.Stations] produces.
const maxStations = 1 << 20

// Station is a point at a known distance along a spline, for placing objects
// such as lamp posts or trees along a path.
type Station struct {
	// Global parameter.
	T float64
	// Arc length from the start of the spline.
	Distance float64
	Point    Point
	// Unit tangent.
	Tangent Point
}

// Stations returns points spaced spacing apart along the spline, measured by
// arc length, starting at its start. Any remainder shorter than spacing is
// left at the end.
func (sp Spline) Stations(spacing, accuracy float64) ([]Station, error) {
	if !validTolerance(spacing) {
		return nil, numericRange("station spacing %v", spacing)
	}
	if len(sp.segs) == 0 {
		return nil, ErrEmptyCurveSet
	}
	accuracy = sanitizeAccuracy(accuracy) / float64(len(sp.segs))
	total := sp.lengthPerSegment(accuracy)
	if n := math.Floor(total / spacing); n >= maxStations {
		return nil, numericRange("%v stations of spacing %v", n+1, spacing)
	}
	return sp.stations(spacing, total, accuracy)
}

// StationsN divides the spline into n parts of equal arc length and returns
// the n+1 stations delimiting them.
func (sp Spline) StationsN(n int, accuracy float64) ([]Station, error) {
	if n < 1 || n >= maxStations {
		return nil, numericRange("%d divisions", n)
	}
	if len(sp.segs) == 0 {
		return nil, ErrEmptyCurveSet
	}
	accuracy = sanitizeAccuracy(accuracy) / float64(len(sp.segs))
	total := sp.lengthPerSegment(accuracy)
	out, err := sp.stations(total/float64(n), total, accuracy)
	if err != nil {
		return nil, err
	}
	// Rounding may produce one station short of the end, or one past it.
	out = out[:min(len(out), n)]
	return append(out, sp.station(len(sp.segs)-1, 1, total)), nil
}

// lengthPerSegment sums the segment lengths, each accurate to accuracy.
func (sp Spline) lengthPerSegment(accuracy float64) float64 {
	var sum float64
	for _, s := range sp.segs {
		sum += s.Length(accuracy)
	}
	return sum
}

func (sp Spline) station(i int, u, dist float64) Station {
	s := sp.segs[i]
	return Station{
		T:        sp.global(i, u),
		Distance: dist,
		Point:    s.PointAt(u),
		Tangent:  s.TangentAt(u),
	}
}

func (sp Spline) stations(spacing, total, accuracy float64) ([]Station, error) {
	out := []Station{sp.station(0, 0, 0)}
	next := spacing
	var walked float64
	for i, s := range sp.segs {
		l := s.Length(accuracy)
		for next <= walked+l && next <= total {
			u, err := s.ParamAtLength(next-walked, accuracy)
			if err != nil {
				return nil, fmt.Errorf("station %d: %w", len(out), err)
			}
			out = append(out, sp.station(i, u, next))
			next = float64(len(out)) * spacing
		}
		walked += l
	}
	return out, nil
}
