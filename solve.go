package curve

import (
	"math"
)

// solveLinear returns the root of c0 + c1 x = 0. An identically zero
// equation reports the single root 0.
func solveLinear(c0, c1 float64) ([2]float64, int) {
	if c1 == 0 {
		if c0 == 0 {
			return [2]float64{0}, 1
		}
		return [2]float64{}, 0
	}
	root := -c0 / c1
	if math.IsInf(root, 0) {
		return [2]float64{}, 0
	}
	return [2]float64{root}, 1
}

// solveQuadratic returns the real roots of c0 + c1 x + c2 x² = 0 in
// ascending order. Equations whose leading coefficient is too small to
// divide by are solved as linear.
func solveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	b, c := c1/c2, c0/c2
	if c2 == 0 || math.IsInf(b, 0) || math.IsInf(c, 0) {
		return solveLinear(c0, c1)
	}
	// x² + b x + c = 0
	var big float64
	switch disc := b*b - 4*c; {
	case math.IsInf(disc, 0):
		// b² overflowed, so c is negligible next to it.
		big = -b
	case disc < 0:
		return [2]float64{}, 0
	case disc == 0:
		return [2]float64{-0.5 * b}, 1
	default:
		// Avoid cancellation by computing the larger root first and the
		// smaller from Vieta's product.
		big = -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	}
	small := c / big
	if math.IsInf(small, 0) || math.IsNaN(small) {
		return [2]float64{big}, 1
	}
	return [2]float64{min(small, big), max(small, big)}, 2
}

// solveCubic returns the real roots of c0 + c1 x + c2 x² + c3 x³ = 0, in no
// particular order. Nearly quadratic equations are solved as quadratics.
//
// This is Blinn's method as presented by Peters,
// https://momentsingraphics.de/CubicRoots.html.
func solveCubic(c0, c1, c2, c3 float64) ([3]float64, int) {
	// Normalize to x³ + 3a x² + 3b x + c.
	a := c2 / (3 * c3)
	b := c1 / (3 * c3)
	c := c0 / c3
	if c3 == 0 || math.IsInf(a, 0) || math.IsInf(b, 0) || math.IsInf(c, 0) {
		q, n := solveQuadratic(c0, c1, c2)
		return [3]float64{q[0], q[1]}, n
	}
	delta0 := math.FMA(-a, a, b)
	delta1 := math.FMA(-b, a, c)
	delta2 := a*c - b*b
	disc := 4*delta0*delta2 - delta1*delta1
	// Depressed cubic coefficient.
	dep := math.FMA(-2*a, delta0, delta1)
	if disc < 0 {
		// One real root.
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * dep
		return [3]float64{math.Cbrt(r+sq) + math.Cbrt(r-sq) - a}, 1
	}
	if disc == 0 {
		// A double root and a simple one.
		x := math.Copysign(math.Sqrt(-delta0), dep)
		return [3]float64{x - a, -2*x - a}, 2
	}
	// Three real roots, from the trigonometric form.
	theta := math.Atan2(math.Sqrt(disc), -dep) / 3
	sin, cos := math.Sincos(theta)
	scale := 2 * math.Sqrt(-delta0)
	sin3 := sin * math.Sqrt(3)
	return [3]float64{
		math.FMA(scale, cos, -a),
		math.FMA(scale, 0.5*(sin3-cos), -a),
		math.FMA(scale, -0.5*(sin3+cos), -a),
	}, 3
}

// Parameters of solveITP: the slack n0 gives the secant step room on smooth
// functions, and k1 matches the paper's 0.2 / (b - a) for unit intervals.
const (
	itpN0 = 1
	itpK1 = 0.2
)

// solveITP returns x in [a, b] within epsilon of a zero crossing of the
// monotonic function f, with ya = f(a) < 0 < yb = f(b).
//
// It uses the ITP method of Oliveira and Takahashi, which never needs more
// iterations than bisection plus itpN0 but usually converges much faster.
// It fails with [ErrNumericRange] if the interval doesn't bracket a crossing,
// or if epsilon is not finite or too fine to resolve in [a, b].
//
// See https://en.wikipedia.org/wiki/ITP_Method.
func solveITP(f func(float64) float64, a, b, ya, yb, epsilon float64) (float64, error) {
	if !(a < b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, numericRange("root interval [%v, %v]", a, b)
	}
	if !(ya < 0 && yb > 0) {
		return 0, numericRange("f(%v) = %v and f(%v) = %v don't bracket a root", a, ya, b, yb)
	}
	// Below this spacing the midpoint stops moving.
	resolution := 0x1p-52 * max(b-a, math.Abs(a), math.Abs(b))
	if !(epsilon >= resolution) || math.IsInf(epsilon, 0) {
		return 0, numericRange("root tolerance %v on [%v, %v]", epsilon, a, b)
	}

	nHalf := max(int(math.Ceil(math.Log2((b-a)/epsilon)))-1, 0)
	nMax := itpN0 + nHalf
	// ε·2^(nMax-j), halved every iteration.
	r0 := math.Ldexp(epsilon, nMax)
	for range nMax + 1 {
		if b-a <= 2*epsilon {
			break
		}
		mid := 0.5 * (a + b)
		width := b - a
		radius := r0 - 0.5*width

		// Interpolate, then truncate towards the midpoint.
		regulaFalsi := (yb*a - ya*b) / (yb - ya)
		away := mid - regulaFalsi
		trunc := mid
		if delta := itpK1 * width * width; delta <= math.Abs(away) {
			trunc = regulaFalsi + math.Copysign(delta, away)
		}
		// Project into the minmax disc around the midpoint.
		x := trunc
		if math.Abs(trunc-mid) > radius {
			x = mid - math.Copysign(radius, away)
		}

		switch y := f(x); {
		case y > 0:
			b, yb = x, y
		case y < 0:
			a, ya = x, y
		case y == 0:
			return x, nil
		default:
			return 0, numericRange("f(%v) is %v", x, y)
		}
		r0 *= 0.5
	}
	return 0.5 * (a + b), nil
}

// Tables of Legendre-Gauss quadrature coefficients, adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>

var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs8Half = [...][2]float64{
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, 0.9602898564975363},
}

var gaussLegendreCoeffs16Half = [...][2]float64{
	{0.1894506104550685, 0.0950125098376374},
	{0.1826034150449236, 0.2816035507792589},
	{0.1691565193950025, 0.4580167776572274},
	{0.1495959888165767, 0.6178762444026438},
	{0.1246289712555339, 0.7554044083550030},
	{0.0951585116824928, 0.8656312023878318},
	{0.0622535239386479, 0.9445750230732326},
	{0.0271524594117541, 0.9894009349916499},
}

var gaussLegendreCoeffs24Half = [...][2]float64{
	{0.1279381953467522, 0.0640568928626056},
	{0.1258374563468283, 0.1911188674736163},
	{0.1216704729278034, 0.3150426796961634},
	{0.1155056680537256, 0.4337935076260451},
	{0.1074442701159656, 0.5454214713888396},
	{0.0976186521041139, 0.6480936519369755},
	{0.0861901615319533, 0.7401241915785544},
	{0.0733464814110803, 0.8200019859739029},
	{0.0592985849154368, 0.8864155270044011},
	{0.0442774388174198, 0.9382745520027328},
	{0.0285313886289337, 0.9747285559713095},
	{0.0123412297999872, 0.9951872199970213},
}
