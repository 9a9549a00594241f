package curve

import (
	"cmp"
	"slices"
)

// Intersection is a point where the XY projections of two splines cross.
type Intersection struct {
	// Point is the crossing, with the Z of the receiver.
	Point Point
	// T0 and T1 are the global parameters of the crossing on the receiver
	// and on the other spline.
	T0 float64
	T1 float64
}

type edge struct {
	line   Line
	box    Box
	t0, t1 float64
}

func edges(pl Polyline) []edge {
	out := make([]edge, 0, max(len(pl.Points)-1, 0))
	for i := 1; i < len(pl.Points); i++ {
		l := Line{pl.Points[i-1], pl.Points[i]}
		out = append(out, edge{l, l.Bounds(), pl.Params[i-1], pl.Params[i]})
	}
	return out
}

// Intersections finds the points where the XY projections of sp and other
// cross. Both splines are flattened to tolerance, and the crossings of the
// polylines are refined onto the curves. Crossings closer than tolerance to
// one another are reported once. The result is ordered by T0 and is empty if
// the splines don't cross.
//
// Overlapping collinear stretches are not reported.
func (sp Spline) Intersections(other Spline, tolerance float64) ([]Intersection, error) {
	pa, err := sp.Flatten(tolerance)
	if err != nil {
		return nil, err
	}
	pb, err := other.Flatten(tolerance)
	if err != nil {
		return nil, err
	}
	if !pa.Bounds().Inflate(tolerance).OverlapsXY(pb.Bounds()) {
		return nil, nil
	}

	// Slack in the line parameters, so that crossings through shared
	// polyline vertices aren't lost to rounding.
	const slack = 1e-9
	accuracy := tolerance * 0.01
	ea, eb := edges(pa), edges(pb)
	var out []Intersection
	for _, a := range ea {
		abox := a.box.Inflate(tolerance)
		for _, b := range eb {
			if !abox.OverlapsXY(b.box) {
				continue
			}
			u, v, ok := a.line.Intersect(b.line, slack)
			if !ok {
				continue
			}
			p := a.line.Eval(min(max(u, 0), 1))
			if slices.ContainsFunc(out, func(x Intersection) bool {
				return x.Point.PlanarDistance(p) <= tolerance
			}) {
				continue
			}
			t0 := a.t0 + min(max(u, 0), 1)*(a.t1-a.t0)
			t1 := b.t0 + min(max(v, 0), 1)*(b.t1-b.t0)
			out = append(out, Intersection{
				Point: p,
				T0:    sp.refine(t0, p, accuracy),
				T1:    other.refine(t1, b.line.Eval(min(max(v, 0), 1)), accuracy),
			})
		}
	}
	slices.SortFunc(out, func(x, y Intersection) int {
		return cmp.Compare(x.T0, y.T0)
	})
	return out, nil
}

// refine returns the global parameter of the point nearest to p, searching
// the segment containing t and its neighbours. It falls back to t if no
// segment can be searched at accuracy.
func (sp Spline) refine(t float64, p Point, accuracy float64) float64 {
	i, _, err := sp.locate(t)
	if err != nil {
		return t
	}
	best := t
	bestDist := p.DistanceSquared(sp.segs[i].PointAt(t*float64(len(sp.segs)) - float64(i)))
	for j := max(i-1, 0); j <= min(i+1, len(sp.segs)-1); j++ {
		d, u, err := sp.segs[j].Nearest(p, accuracy)
		if err == nil && d < bestDist {
			bestDist = d
			best = sp.global(j, u)
		}
	}
	return best
}
