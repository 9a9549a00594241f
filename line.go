package curve

import (
	"math"
)

// Line is a straight line from P0 to P1. Unlike a [Segment] built with
// [LineSegment], a Line may have coincident end points.
type Line struct {
	P0 Point
	P1 Point
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Nearest returns the squared distance from pt to the closest point on the
// line and that point's parameter, clamped to [0, 1].
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Dot(d)
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Hypot2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Hypot2(), 1.0
	} else {
		t := dotp / dSquared
		dist := pt.Sub(l.Eval(t)).Hypot2()
		return dist, t
	}
}

func (l Line) Reverse() Line {
	return Line{l.P1, l.P0}
}

func (l Line) Bounds() Box {
	return BoxFromPoints(l.P0, l.P1)
}

// CrossingPoint computes where the XY projections of two lines would cross
// if extended to infinity. It returns the parameter on each line. The Z of
// the crossing interpolates l. It returns false for parallel lines.
func (l Line) CrossingPoint(o Line) (pt Point, u, v float64, ok bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	pcd := ab.CrossZ(cd)
	if pcd == 0 {
		return Point{}, 0, 0, false
	}
	ac := o.P0.Sub(l.P0)
	u = ac.CrossZ(cd) / pcd
	v = ac.CrossZ(ab) / pcd
	return l.Eval(u), u, v, true
}

// Intersect reports where the XY projections of two lines cross, returning
// the parameters on l and o. Parameters may exceed [0, 1] by slack, so that
// crossings at shared end points are not lost to rounding.
func (l Line) Intersect(o Line, slack float64) (u, v float64, ok bool) {
	const epsilon = 1e-12
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	det := ab.CrossZ(cd)
	if math.Abs(det) <= epsilon*ab.PlanarHypot()*cd.PlanarHypot() {
		// Parallel or coincident.
		return 0, 0, false
	}
	_, u, v, _ = l.CrossingPoint(o)
	if u < -slack || u > 1+slack || v < -slack || v > 1+slack {
		return 0, 0, false
	}
	return u, v, true
}
