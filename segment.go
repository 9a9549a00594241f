package curve

import (
	"fmt"
	"iter"
	"math"
)

// ControlKind identifies one of the four control points of a [Segment].
type ControlKind int

const (
	Start ControlKind = iota
	StartHandle
	EndHandle
	End
)

func (k ControlKind) String() string {
	switch k {
	case Start:
		return "Start"
	case StartHandle:
		return "StartHandle"
	case EndHandle:
		return "EndHandle"
	case End:
		return "End"
	default:
		return fmt.Sprintf("ControlKind(%d)", int(k))
	}
}

// IsAnchor reports whether k names an on-curve point.
func (k ControlKind) IsAnchor() bool {
	return k == Start || k == End
}

// Segment is a cubic Bézier defined by two anchors and two handles.
//
// A valid segment has no two of (start, start handle), (start, end) and (end,
// end handle) closer than [Epsilon]. The zero value is not a valid segment;
// use [NewSegment] or [LineSegment].
type Segment struct {
	p0 Point
	p1 Point
	p2 Point
	p3 Point
}

// NewSegment returns the cubic Bézier through start and end with the given
// handles. It returns a [*DegenerateCurveError] naming the first guarded pair
// that nearly coincides, and an error wrapping [ErrNumericRange] for
// non-finite coordinates.
func NewSegment(start, startHandle, endHandle, end Point) (Segment, error) {
	s := Segment{start, startHandle, endHandle, end}
	if err := s.validate(); err != nil {
		return Segment{}, err
	}
	return s, nil
}

// LineSegment returns a straight segment from a to b, with handles at one and
// two thirds of the way.
func LineSegment(a, b Point) (Segment, error) {
	s := line(a, b)
	if err := s.validate(); err != nil {
		return Segment{}, err
	}
	return s, nil
}

func line(a, b Point) Segment {
	return Segment{a, a.Lerp(b, 1.0/3.0), a.Lerp(b, 2.0/3.0), b}
}

func (s Segment) validate() error {
	for kind, p := range s.controls() {
		if !p.isFinite() {
			return numericRange("%s is %s", kind, p)
		}
	}
	guarded := [...]struct {
		a, b   ControlKind
		pa, pb Point
	}{
		{Start, StartHandle, s.p0, s.p1},
		{Start, End, s.p0, s.p3},
		{End, EndHandle, s.p3, s.p2},
	}
	for _, g := range guarded {
		if g.pa.DistanceSquared(g.pb) < Epsilon*Epsilon {
			return &DegenerateCurveError{A: g.a, B: g.b}
		}
	}
	return nil
}

func (s Segment) controls() iter.Seq2[ControlKind, Point] {
	return func(yield func(ControlKind, Point) bool) {
		_ = yield(Start, s.p0) &&
			yield(StartHandle, s.p1) &&
			yield(EndHandle, s.p2) &&
			yield(End, s.p3)
	}
}

func (s Segment) Start() Point       { return s.p0 }
func (s Segment) StartHandle() Point { return s.p1 }
func (s Segment) EndHandle() Point   { return s.p2 }
func (s Segment) End() Point         { return s.p3 }

// Control returns the control point named by kind. It returns an error for
// kinds other than the four defined ones.
func (s Segment) Control(kind ControlKind) (Point, error) {
	switch kind {
	case Start:
		return s.p0, nil
	case StartHandle:
		return s.p1, nil
	case EndHandle:
		return s.p2, nil
	case End:
		return s.p3, nil
	default:
		return Point{}, fmt.Errorf("curve: invalid control kind %s", kind)
	}
}

func (s *Segment) setControl(kind ControlKind, p Point) {
	switch kind {
	case Start:
		s.p0 = p
	case StartHandle:
		s.p1 = p
	case EndHandle:
		s.p2 = p
	case End:
		s.p3 = p
	}
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment{%s, %s, %s, %s}", s.p0, s.p1, s.p2, s.p3)
}

// PointAt evaluates the curve at t ∈ [0, 1].
func (s Segment) PointAt(t float64) Point {
	mt := 1.0 - t
	a := s.p0.Mul(mt * mt * mt)
	b := s.p1.Mul(mt * mt * 3.0)
	c := s.p2.Mul(mt * 3.0)
	d := s.p3
	return a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
}

func (s Segment) derivative() quadBez {
	return quadBez{
		s.p1.Sub(s.p0).Mul(3),
		s.p2.Sub(s.p1).Mul(3),
		s.p3.Sub(s.p2).Mul(3),
	}
}

// derivs returns the first and second derivatives at t.
func (s Segment) derivs(t float64) (Point, Point) {
	q := s.derivative()
	d := q.eval(t)
	dd := q.p1.Sub(q.p0).Mul(2 * (1 - t)).Add(q.p2.Sub(q.p1).Mul(2 * t))
	return d, dd
}

// TangentAt returns the unit tangent at t. The result is NaN at cusps, where
// the derivative vanishes.
func (s Segment) TangentAt(t float64) Point {
	return s.derivative().eval(t).Normalize()
}

// Curvature returns the signed curvature at t. Its magnitude is the curvature
// of the space curve; its sign is that of the Z component of the binormal,
// so curves turning counter-clockwise in the XY plane have positive
// curvature. The result is NaN or infinite at cusps.
func (s Segment) Curvature(t float64) float64 {
	d, dd := s.derivs(t)
	c := d.Cross(dd)
	k := c.Hypot() / math.Pow(d.Hypot(), 3)
	if c.Z < 0 {
		return -k
	}
	return k
}

// stalls reports whether the derivative at t is too short to divide by.
func (s Segment) stalls(t float64) bool {
	d, _ := s.derivs(t)
	return d.Hypot2() < Epsilon*Epsilon
}

// planarCurvature is the signed curvature of the XY projection.
func (s Segment) planarCurvature(t float64) float64 {
	d, dd := s.derivs(t)
	return d.CrossZ(dd) / math.Pow(d.PlanarHypot(), 3)
}

// Length returns the arc length of the segment, accurate to accuracy.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature.
func (s Segment) Length(accuracy float64) float64 {
	return s.arclen(sanitizeAccuracy(accuracy), 0)
}

func (s Segment) arclen(accuracy float64, depth int) float64 {
	d03 := s.p3.Sub(s.p0)
	d01 := s.p1.Sub(s.p0)
	d12 := s.p2.Sub(s.p1)
	d23 := s.p3.Sub(s.p2)
	lplc := d01.Hypot() + d12.Hypot() + d23.Hypot() - d03.Hypot()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// These don't have the factor of 3 for the first derivative.
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Hypot2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Hypot2()
		est += wi * ddNorm2 / dNorm2
	}
	if math.IsNaN(est) {
		// dNorm2 is 0 near a singularity
		est = 0
	}

	estGauss8Error := min(math.Pow(est, 3)*2.5e-6, 3e-2) * lplc
	if estGauss8Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	estGauss16Error := min(math.Pow(est, 6)*1.5e-11, 9e-3) * lplc
	if estGauss16Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	estGauss24Error := min(math.Pow(est, 9)*3.5e-16, 3.5e-3) * lplc
	if estGauss24Error < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	s0, s1 := s.subdivide()
	return s0.arclen(accuracy*0.5, depth+1) + s1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm, dm1, dm2 Point) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Hypot()
		dmx := d.Sub(dm1.Mul(xi)).Hypot()
		sum += 1.5 * wi * (dpx + dmx)
	}
	return sum
}

// ParamAtLength returns the parameter at which the arc length measured from
// the start equals length. Lengths outside [0, total length] clamp to 0 and 1.
//
// Each root finding step measures only the arc between the previous and the
// current estimate, which gets shorter as the iteration converges. It fails
// with [ErrNumericRange] if accuracy is too fine to resolve in a float64
// parameter, or if length is NaN.
func (s Segment) ParamAtLength(length, accuracy float64) (float64, error) {
	if math.IsNaN(length) {
		return 0, numericRange("length %v", length)
	}
	accuracy = sanitizeAccuracy(accuracy)
	if length <= 0.0 {
		return 0.0, nil
	}
	// The arc is no shorter than the chord, so such accuracies can't be
	// resolved by solveITP either. Failing here skips measuring the arc.
	if accuracy < 0x1p-52*s.p0.Distance(s.p3) {
		return 0, numericRange("parameter at length %v to accuracy %v", length, accuracy)
	}
	total := s.Length(accuracy)
	if length >= total {
		return 1.0, nil
	}
	tLast := 0.0
	arclenLast := 0.0
	epsilon := accuracy / total
	n := 1.0 - min(math.Ceil(math.Log2(epsilon)), 0.0)
	innerAccuracy := accuracy / n
	f := func(t float64) float64 {
		var lo, hi, dir float64
		if t > tLast {
			lo, hi, dir = tLast, t, 1.0
		} else {
			lo, hi, dir = t, tLast, -1.0
		}
		arclenLast += s.Subsegment(lo, hi).Length(innerAccuracy) * dir
		tLast = t
		return arclenLast - length
	}
	t, err := solveITP(f, 0.0, 1.0, -length, total-length, epsilon)
	if err != nil {
		return 0, fmt.Errorf("parameter at length %v: %w", length, err)
	}
	return t, nil
}

// Nearest finds the parameter of the point on the curve nearest to pt,
// returning the squared distance and the parameter.
//
// The curve is approximated by quadratics to within accuracy, and the nearest
// point on each quadratic is found analytically. It fails with
// [ErrNumericRange] if accuracy would need too many quadratics.
func (s Segment) Nearest(pt Point, accuracy float64) (distSq, t float64, err error) {
	quads, err := s.quadratics(accuracy)
	if err != nil {
		return 0, 0, err
	}
	best := math.Inf(1)
	bestT := 0.0
	for qq := range quads {
		qDistSq, qT := qq.q.nearest(pt)
		if qDistSq < best {
			best = qDistSq
			bestT = qq.t0 + qT*(qq.t1-qq.t0)
		}
	}
	return best, bestT, nil
}

// subdivide splits the segment into halves.
func (s Segment) subdivide() (Segment, Segment) {
	return s.split(0.5)
}

// split is De Casteljau subdivision at t, without validation.
func (s Segment) split(t float64) (Segment, Segment) {
	p01 := s.p0.Lerp(s.p1, t)
	p12 := s.p1.Lerp(s.p2, t)
	p23 := s.p2.Lerp(s.p3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	pm := p012.Lerp(p123, t)
	return Segment{s.p0, p01, p012, pm}, Segment{pm, p123, p23, s.p3}
}

// SplitAt subdivides the segment at t using De Casteljau's algorithm. Both
// halves together trace exactly the original curve.
//
// t must lie in [0, 1]. Splitting at or extremely close to an end produces a
// degenerate half and fails with a [*DegenerateCurveError].
func (s Segment) SplitAt(t float64) (Segment, Segment, error) {
	if !(t >= 0 && t <= 1) {
		return Segment{}, Segment{}, numericRange("split parameter %v", t)
	}
	a, b := s.split(t)
	if err := a.validate(); err != nil {
		return Segment{}, Segment{}, err
	}
	if err := b.validate(); err != nil {
		return Segment{}, Segment{}, err
	}
	return a, b, nil
}

// Subsegment returns the portion of the curve between t0 and t1. The result
// is not validated.
func (s Segment) Subsegment(t0, t1 float64) Segment {
	p0 := s.PointAt(t0)
	p3 := s.PointAt(t1)
	d := s.derivative()
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Add(d.eval(t0).Mul(scale))
	p2 := p3.Sub(d.eval(t1).Mul(scale))
	return Segment{p0, p1, p2, p3}
}

// Reverse returns the same curve traversed from end to start.
func (s Segment) Reverse() Segment {
	return Segment{s.p3, s.p2, s.p1, s.p0}
}

// Bounds returns the bounding box of the control polygon, which contains the
// curve.
func (s Segment) Bounds() Box {
	return BoxFromPoints(s.p0, s.p1, s.p2, s.p3)
}

func (s Segment) translateStart(delta Point) Segment {
	s.p0 = s.p0.Add(delta)
	s.p1 = s.p1.Add(delta)
	return s
}

func (s Segment) translateEnd(delta Point) Segment {
	s.p3 = s.p3.Add(delta)
	s.p2 = s.p2.Add(delta)
	return s
}

type quadPiece struct {
	t0, t1 float64
	q      quadBez
}

// Maximum number of pieces a segment is divided into when approximating it,
// by quadratics or by a polyline.
const maxSubdivisions = 1 << 20

// subdivisions converts an estimated number of pieces into a count of at
// least one. Estimates that are not finite or exceed [maxSubdivisions] mean
// the requested accuracy can't be met and fail with [ErrNumericRange].
func subdivisions(estimate float64, what string, accuracy float64) (int, error) {
	if !(estimate <= maxSubdivisions) {
		return 0, numericRange("%s at accuracy %v needs %v pieces", what, accuracy, estimate)
	}
	return max(int(math.Ceil(estimate)), 1), nil
}

// quadratics approximates the segment with quadratic Béziers to within
// accuracy. It yields the parameter range of the cubic covered by each
// quadratic. The quadratics are not G1 continuous in general.
//
// The sequence always yields at least one value.
func (s Segment) quadratics(accuracy float64) (iter.Seq[quadPiece], error) {
	// The error is proportional to the third derivative, which is constant
	// across the segment, so it scales down with the third power of the
	// number of subdivisions. We subdivide t evenly. This overestimates the
	// error as only the component perpendicular to the first derivative
	// matters.
	accuracy = sanitizeAccuracy(accuracy)
	// This magic number is the square of 36 / sqrt(3).
	// See: https://web.archive.org/web/20210108052742/http://caffeineowl.com/graphics/2d/vectorial/cubic2quad01.html
	maxHypot2 := 432.0 * accuracy * accuracy
	p1x2 := s.p1.Mul(3).Sub(s.p0)
	p2x2 := s.p2.Mul(3).Sub(s.p3)
	e := p2x2.Sub(p1x2).Hypot2()
	var estimate float64
	if e > 0 {
		// The division overflows, and maxHypot2 underflows, for tiny
		// accuracies. Both are caught by subdivisions.
		estimate = math.Sqrt(math.Cbrt(e / maxHypot2))
	}
	n, err := subdivisions(estimate, "quadratic approximation", accuracy)
	if err != nil {
		return nil, err
	}
	return func(yield func(quadPiece) bool) {
		for i := range n {
			t0 := float64(i) / float64(n)
			t1 := float64(i+1) / float64(n)
			seg := s.Subsegment(t0, t1)
			p1x2 := seg.p1.Mul(3).Sub(seg.p0)
			p2x2 := seg.p2.Mul(3).Sub(seg.p3)
			q := quadBez{seg.p0, p1x2.Add(p2x2).Mul(1.0 / 4.0), seg.p3}
			if !yield(quadPiece{t0, t1, q}) {
				return
			}
		}
	}, nil
}
