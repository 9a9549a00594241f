package junction

import (
	"log/slog"

	"github.com/plotline/curve"
)

func planar(p curve.Point) curve.Point {
	return curve.Pt(p.X, p.Y, 0)
}

// miter closes a corner between edges that don't intersect by extending the
// end of left and the start of right along their tangents. Edges that
// diverge, or would meet further away than [curve.MiterLimit] times the gap
// between them, are connected straight.
func miter(left, right curve.Spline, tolerance float64, log *slog.Logger) (curve.Spline, error) {
	pa, pb := left.End(), right.Start()
	ta, err := left.TangentAt(1)
	if err != nil {
		return curve.Spline{}, err
	}
	tb, err := right.TangentAt(0)
	if err != nil {
		return curve.Spline{}, err
	}
	la := curve.Line{P0: pa, P1: pa.Add(planar(ta))}
	lb := curve.Line{P0: pb, P1: pb.Add(planar(tb))}
	pt, u, v, ok := la.CrossingPoint(lb)
	gap := pa.PlanarDistance(pb)
	if !ok || u < 0 || v > 0 || pt.PlanarDistance(pa) > curve.MiterLimit*gap {
		log.Debug("junction corner: bevel", "from", pa, "to", pb)
		return curve.Join(tolerance, left, right)
	}
	log.Debug("junction corner: miter", "point", pt)
	if pt.Distance(pa) <= tolerance || pt.Distance(pb) <= tolerance {
		return curve.Join(tolerance, left, right)
	}
	ext, err := curve.LineSegment(pa, pt)
	if err != nil {
		return curve.Spline{}, err
	}
	extSpline, err := curve.NewSpline(ext)
	if err != nil {
		return curve.Spline{}, err
	}
	return curve.Join(tolerance, left, extSpline, right)
}
