package curve

import (
	"fmt"
	"math"
)

// Point is a 3D coordinate. It is used both as a position and as a
// direction.
//
// Planar operations (offsetting, stroking, intersection, junctions) work in
// the XY plane and carry Z along from the source curve.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Pt returns the point (x, y, z).
func Pt(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

func (pt Point) Splat() (float64, float64, float64) {
	return pt.X, pt.Y, pt.Z
}

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", pt.X, pt.Y, pt.Z)
}

// Add returns pt+o.
func (pt Point) Add(o Point) Point {
	return Point{
		X: pt.X + o.X,
		Y: pt.Y + o.Y,
		Z: pt.Z + o.Z,
	}
}

// Sub returns pt−o.
func (pt Point) Sub(o Point) Point {
	return Point{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
		Z: pt.Z - o.Z,
	}
}

func (pt Point) Mul(f float64) Point {
	return Point{
		X: pt.X * f,
		Y: pt.Y * f,
		Z: pt.Z * f,
	}
}

// Negate returns a new point with the signs of all coordinates flipped.
func (pt Point) Negate() Point {
	return Point{
		X: -pt.X,
		Y: -pt.Y,
		Z: -pt.Z,
	}
}

// Dot returns the dot product of pt and o.
func (pt Point) Dot(o Point) float64 {
	return pt.X*o.X + pt.Y*o.Y + pt.Z*o.Z
}

// Cross returns the cross product of pt and o.
func (pt Point) Cross(o Point) Point {
	return Point{
		X: pt.Y*o.Z - pt.Z*o.Y,
		Y: pt.Z*o.X - pt.X*o.Z,
		Z: pt.X*o.Y - pt.Y*o.X,
	}
}

// CrossZ returns the Z component of the cross product, which is the 2D
// cross product of the projections onto the XY plane.
func (pt Point) CrossZ(o Point) float64 {
	return pt.X*o.Y - pt.Y*o.X
}

// Hypot returns the magnitude of the vector.
func (pt Point) Hypot() float64 {
	return math.Sqrt(pt.Hypot2())
}

// Hypot2 returns the squared magnitude of the vector.
//
// This function is more efficient than squaring the result of [Point.Hypot].
func (pt Point) Hypot2() float64 {
	return pt.Dot(pt)
}

// PlanarHypot returns the magnitude of the projection onto the XY plane.
func (pt Point) PlanarHypot() float64 {
	return math.Hypot(pt.X, pt.Y)
}

// Normalize returns a vector of magnitude 1.0 with the same direction as pt.
// This produces a NaN vector if the magnitude is 0.
func (pt Point) Normalize() Point {
	return pt.Mul(1.0 / pt.Hypot())
}

// Perp returns the unit normal to the left of pt's projection onto the
// XY plane, i.e. the projection rotated by +90° about Z. The magnitude of
// pt is irrelevant; a vertical or zero vector yields NaN.
func (pt Point) Perp() Point {
	h := pt.PlanarHypot()
	return Point{X: -pt.Y / h, Y: pt.X / h}
}

// Angle returns the angle in radians between the XY projection of the vector
// and the positive X axis. This is atan2(y, x).
func (pt Point) Angle() float64 {
	return math.Atan2(pt.Y, pt.X)
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	// pt + t * (o-pt)
	return pt.Add(o.Sub(pt).Mul(t))
}

// Midpoint returns the midpoint of two points.
func (pt Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (pt.X + o.X),
		Y: 0.5 * (pt.Y + o.Y),
		Z: 0.5 * (pt.Z + o.Z),
	}
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	return pt.Sub(o).Hypot()
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	return pt.Sub(o).Hypot2()
}

// PlanarDistance returns the distance between the XY projections of two
// points.
func (pt Point) PlanarDistance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// IsInf reports whether at least one coordinate is infinite.
func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) || math.IsInf(pt.Z, 0)
}

// IsNaN reports whether at least one coordinate is NaN.
func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsNaN(pt.Z)
}

// isFinite reports whether all coordinates are neither infinite nor NaN.
func (pt Point) isFinite() bool {
	return !pt.IsInf() && !pt.IsNaN()
}
