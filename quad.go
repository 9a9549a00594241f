package curve

import (
	"math"
)

// quadBez is a quadratic Bézier. It is used internally to approximate
// segments for nearest-point queries and flattening, and to represent
// derivatives of segments.
type quadBez struct {
	p0 Point
	p1 Point
	p2 Point
}

func (q quadBez) eval(t float64) Point {
	mt := 1.0 - t
	return q.p0.Mul(mt * mt).Add(q.p1.Mul(mt * 2.0).Add(q.p2.Mul(t)).Mul(t))
}

// nearest finds the nearest point analytically, by solving the cubic for
// the zeros of the derivative of the squared distance.
func (q quadBez) nearest(pt Point) (distSq, t float64) {
	best := math.Inf(1)
	bestT := 0.0
	try := func(t float64) {
		if r := q.eval(t).DistanceSquared(pt); r < best {
			best = r
			bestT = t
		}
	}
	d0 := q.p1.Sub(q.p0)
	d1 := q.p0.Add(q.p2).Sub(q.p1.Mul(2.0))
	d := q.p0.Sub(pt)
	c0 := d.Dot(d0)
	c1 := 2.0*d0.Hypot2() + d.Dot(d1)
	c2 := 3.0 * d1.Dot(d0)
	c3 := d1.Hypot2()
	roots, n := solveCubic(c0, c1, c2, c3)
	needEnds := n == 0
	for _, t := range roots[:n] {
		if t >= 0.0 && t <= 1.0 {
			try(t)
		} else {
			needEnds = true
		}
	}
	if needEnds {
		try(0.0)
		try(1.0)
	}
	return best, bestT
}

// An approximation to $\int (1 + 4x^2) ^ -0.25 dx$
//
// This is used for flattening curves.
func approxParabolaIntegral(x float64) float64 {
	const d = 0.67
	return x / (1.0 - d + math.Sqrt(math.Sqrt(math.Pow(d, 4)+0.25*x*x)))
}

// An approximation to the inverse parabola integral.
func approxParabolaInvIntegral(x float64) float64 {
	const b = 0.39
	return x * (1.0 - b + math.Sqrt(b*b+0.25*x*x))
}

type flattenParams struct {
	a0     float64
	a2     float64
	u0     float64
	uscale float64
	// The number of subdivisions * 2 * sqrtTol.
	val float64
	// For straight quadratics that double back on themselves, the parameter
	// of the turning point. Zero otherwise.
	turn float64
}

// determineSubdivT maps a value from 0..1 to a parameter of q.
func (q quadBez) determineSubdivT(params *flattenParams, x float64) float64 {
	a := params.a0 + (params.a2-params.a0)*x
	u := approxParabolaInvIntegral(a)
	return (u - params.u0) * params.uscale
}

// estimateSubdiv estimates the number of subdivisions for flattening.
//
// The quadratic is mapped onto the parabola y = x². A quadratic is always
// planar, so in 3D the magnitude of the cross product takes the place of the
// signed 2D cross product; all derived quantities are invariant under the
// sign change.
func (q quadBez) estimateSubdiv(sqrtTol float64) flattenParams {
	d01 := q.p1.Sub(q.p0)
	d12 := q.p2.Sub(q.p1)
	dd := d01.Sub(d12)
	chord := q.p2.Sub(q.p0)
	cross := chord.Cross(dd).Hypot()
	if cross <= 1e-12*chord.Hypot()*dd.Hypot() {
		// Straight. If the control point lies outside the chord the curve
		// overshoots and comes back, which a single line can't represent.
		var turn float64
		if d01.Dot(d12) < 0 && dd.Hypot2() > 0 {
			turn = d01.Dot(dd) / dd.Hypot2()
		}
		return flattenParams{uscale: 1, turn: turn}
	}
	x0 := d01.Dot(dd) * (1.0 / cross)
	x2 := d12.Dot(dd) * (1.0 / cross)
	scale := math.Abs(cross / (dd.Hypot() * (x2 - x0)))

	a0 := approxParabolaIntegral(x0)
	a2 := approxParabolaIntegral(x2)
	var val float64
	if !math.IsInf(scale, 0) {
		da := math.Abs(a2 - a0)
		sqrtScale := math.Sqrt(scale)
		if math.Signbit(x0) == math.Signbit(x2) {
			val = da * sqrtScale
		} else {
			// The segment contains the curvature maximum.
			xmin := sqrtTol / sqrtScale
			val = sqrtTol * da / approxParabolaIntegral(xmin)
		}
	}
	u0 := approxParabolaInvIntegral(a0)
	u2 := approxParabolaInvIntegral(a2)
	return flattenParams{
		a0:     a0,
		a2:     a2,
		u0:     u0,
		uscale: 1.0 / (u2 - u0),
		val:    val,
	}
}
