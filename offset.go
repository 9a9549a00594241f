package curve

import (
	"math"
)

// Maximum recursion depth of [Segment.Offset]. A segment is split into at
// most 2^maxOffsetDepth pieces.
const maxOffsetDepth = 16

// Number of interior samples at which an offset piece is checked against the
// true parallel curve.
const offsetSamples = 7

// Offset approximates the [parallel curve] of the segment's XY projection at
// the given distance, to within accuracy. Positive distances are to the left
// of the direction of travel. The Z coordinate follows the source curve.
//
// Each piece of the result is a cubic Hermite interpolant of the true
// parallel curve over a parameter range of the segment, with end tangents
// matching the parallel curve exactly. A piece whose deviation at interior
// samples exceeds accuracy is split in half. Where the distance exceeds the
// radius of curvature the parallel curve has cusps, and the pieces follow it
// through the resulting loop.
//
// The returned pieces form a connected chain.
//
// [parallel curve]: https://en.wikipedia.org/wiki/Parallel_curve
func (s Segment) Offset(distance, accuracy float64) ([]Segment, error) {
	if math.IsNaN(distance) || math.IsInf(distance, 0) {
		return nil, numericRange("offset distance %v", distance)
	}
	if !validTolerance(accuracy) {
		return nil, numericRange("offset accuracy %v", accuracy)
	}
	if distance == 0 {
		return []Segment{s}, nil
	}
	o := offsetter{s: s, q: s.derivative(), d: distance, accuracy: accuracy}
	if err := o.offsetRange(0, 1, 0); err != nil {
		return nil, err
	}
	if len(o.out) == 0 {
		return nil, numericRange("offset of %s by %v collapsed", s, distance)
	}
	return o.out, nil
}

type offsetter struct {
	s        Segment
	q        quadBez
	d        float64
	accuracy float64
	out      []Segment
}

// sample returns the true offset point at t and its derivative.
//
// The derivative of the parallel curve is the derivative of the source
// scaled by (1 − d·κ) in XY, with κ the signed planar curvature. Z is not
// displaced.
func (o *offsetter) sample(t float64) (p, deriv Point) {
	d, dd := o.s.derivs(t)
	n := d.Perp()
	k := d.CrossZ(dd) / math.Pow(d.PlanarHypot(), 3)
	f := 1 - o.d*k
	p = o.s.PointAt(t).Add(n.Mul(o.d))
	deriv = Point{d.X * f, d.Y * f, d.Z}
	return p, deriv
}

// endpoint is like sample, but copes with stationary points of the source
// by taking the normal from a point nudged towards the inside of the range.
func (o *offsetter) endpoint(t, inside float64) (p, deriv Point, err error) {
	p, deriv = o.sample(t)
	if p.isFinite() && deriv.isFinite() {
		return p, deriv, nil
	}
	tn := t + (inside-t)*1e-7
	dn := o.q.eval(tn)
	n := dn.Perp()
	if n.IsNaN() {
		return Point{}, Point{}, numericRange("no planar normal at t=%v of %s", t, o.s)
	}
	p = o.s.PointAt(t).Add(n.Mul(o.d))
	// The handle vanishes along with the derivative and is repaired later.
	return p, Point{}, nil
}

func (o *offsetter) offsetRange(t0, t1 float64, depth int) error {
	p0, d0, err := o.endpoint(t0, t1)
	if err != nil {
		return err
	}
	p3, d3, err := o.endpoint(t1, t0)
	if err != nil {
		return err
	}
	scale := (t1 - t0) / 3
	piece := Segment{p0, p0.Add(d0.Mul(scale)), p3.Sub(d3.Mul(scale)), p3}

	var worst float64
	for i := 1; i <= offsetSamples; i++ {
		u := float64(i) / (offsetSamples + 1)
		want, _ := o.sample(t0 + u*(t1-t0))
		e := piece.PointAt(u).Distance(want)
		if !(e <= worst) {
			// NaN sticks, forcing a split around stationary points.
			worst = e
		}
	}
	if !(worst <= o.accuracy) {
		if depth < maxOffsetDepth {
			mid := 0.5 * (t0 + t1)
			if err := o.offsetRange(t0, mid, depth+1); err != nil {
				return err
			}
			return o.offsetRange(mid, t1, depth+1)
		}
		Logger().Debug("offset subdivision depth limit reached",
			"segment", o.s, "t0", t0, "t1", t1, "distance", o.d, "error", worst)
	}
	o.push(piece)
	return nil
}

// push appends a piece, welding it to the previous one and repairing
// vanished handles. Pieces that collapse to a point are dropped.
func (o *offsetter) push(piece Segment) {
	if n := len(o.out); n > 0 {
		piece = piece.translateStart(o.out[n-1].p3.Sub(piece.p0))
	}
	piece, ok := repairHandles(piece)
	if !ok {
		return
	}
	o.out = append(o.out, piece)
}

// repairHandles moves handles that coincide with their anchor a third of the
// way towards the other handle, or failing that the other anchor. It reports
// false if the segment still isn't valid.
func repairHandles(s Segment) (Segment, bool) {
	const eps2 = Epsilon * Epsilon
	if s.p0.DistanceSquared(s.p3) < eps2 {
		return Segment{}, false
	}
	if s.p0.DistanceSquared(s.p1) < eps2 {
		s.p1 = s.p0.Lerp(s.p2, 1.0/3.0)
		if s.p0.DistanceSquared(s.p1) < eps2 {
			s.p1 = s.p0.Lerp(s.p3, 1.0/3.0)
		}
	}
	if s.p3.DistanceSquared(s.p2) < eps2 {
		s.p2 = s.p3.Lerp(s.p1, 1.0/3.0)
		if s.p3.DistanceSquared(s.p2) < eps2 {
			s.p2 = s.p3.Lerp(s.p0, 1.0/3.0)
		}
	}
	return s, s.validate() == nil
}
