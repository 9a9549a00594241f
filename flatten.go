package curve

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"
)

// Proportion of the tolerance budget that goes to cubic to quadratic
// conversion.
const toQuadTol = 0.1

// Share of the tolerance the subdivision aims for. Points are evaluated on
// the cubic rather than on its quadratic approximation, which moves them by
// up to the approximation error.
const flattenMargin = 0.8

// Polyline is a sequence of points approximating a curve.
type Polyline struct {
	Points []Point
	// Params holds, for each point, the parameter of the spline it was
	// sampled at.
	Params []float64
}

// flatten yields the points of a polyline approximating s to within
// tolerance, along with their parameters. The start point is not included;
// the end point always is. Tolerances needing more than [maxSubdivisions]
// points fail with [ErrNumericRange] before anything is yielded.
//
// This algorithm is based on the blog post [Flattening quadratic Béziers],
// extended to cubics by first subdividing into quadratics and then computing
// the subdivision of each quadratic. The quadratics are subdivided
// fractionally, and their endpoints are not included. The points themselves
// are evaluated on the cubic.
//
// [Flattening quadratic Béziers]: https://raphlinus.github.io/graphics/curves/2019/12/23/flatten-quadbez.html
func (s Segment) flatten(tolerance float64, yield func(t float64, p Point) bool) error {
	type quadParams struct {
		piece  quadPiece
		params flattenParams
	}

	sqrtTol := math.Sqrt(tolerance)
	sqrtRemainTol := sqrtTol * math.Sqrt(1.0-toQuadTol)
	var quadBuf []quadParams
	sum := 0.0
	quads, err := s.quadratics(tolerance * toQuadTol)
	if err != nil {
		return err
	}
	for qq := range quads {
		params := qq.q.estimateSubdiv(sqrtRemainTol)
		sum += params.val
		quadBuf = append(quadBuf, quadParams{qq, params})
	}
	n, err := subdivisions(0.5*sum/sqrtRemainTol, "flattening", tolerance)
	if err != nil {
		return err
	}

	emit := func(qq quadPiece, u float64) bool {
		t := qq.t0 + u*(qq.t1-qq.t0)
		return yield(t, s.PointAt(t))
	}

	// Iterate through the quadratics, outputting the points of subdivisions
	// that fall within each.
	step := sum / float64(n)
	i := 1
	valSum := 0.0
	for _, qp := range quadBuf {
		if qp.params.val == 0 {
			if turn := qp.params.turn; turn > 0 && turn < 1 {
				if !emit(qp.piece, turn) {
					return nil
				}
			}
			continue
		}
		target := float64(i) * step
		recipVal := 1.0 / qp.params.val
		for i < n && target < valSum+qp.params.val {
			u := (target - valSum) * recipVal
			if !emit(qp.piece, qp.piece.q.determineSubdivT(&qp.params, u)) {
				return nil
			}
			i++
			target = float64(i) * step
		}
		valSum += qp.params.val
	}
	yield(1, s.p3)
	return nil
}

// Flatten approximates the spline with a polyline whose distance from the
// curve is at most tolerance. The polyline starts at the spline's start and
// ends at its end. Consecutive points are distinct unless the curve itself
// stalls.
//
// The number of points tends to scale as the inverse square root of
// tolerance. Tolerances so small that a segment would need more than about a
// million points fail with an error wrapping [ErrNumericRange].
func (sp Spline) Flatten(tolerance float64) (Polyline, error) {
	if !validTolerance(tolerance) {
		return Polyline{}, numericRange("flatten tolerance %v", tolerance)
	}
	if len(sp.segs) == 0 {
		return Polyline{}, ErrEmptyCurveSet
	}
	pl := Polyline{
		Points: []Point{sp.segs[0].p0},
		Params: []float64{0},
	}
	var bad bool
	for i, s := range sp.segs {
		err := s.flatten(tolerance*flattenMargin, func(t float64, p Point) bool {
			if !p.isFinite() {
				bad = true
				return false
			}
			pl.Points = append(pl.Points, p)
			pl.Params = append(pl.Params, sp.global(i, t))
			return true
		})
		if err != nil {
			return Polyline{}, fmt.Errorf("flattening segment %d: %w", i, err)
		}
		if bad {
			return Polyline{}, numericRange("flattening segment %d produced a non-finite point", i)
		}
	}
	return pl, nil
}

// Len returns the number of points.
func (pl Polyline) Len() int {
	return len(pl.Points)
}

// Length returns the sum of the edge lengths.
func (pl Polyline) Length() float64 {
	var sum float64
	for i := 1; i < len(pl.Points); i++ {
		sum += pl.Points[i].Distance(pl.Points[i-1])
	}
	return sum
}

// SignedArea returns the area enclosed by the XY projection of the polyline,
// closed by an edge from the last point back to the first. The area is
// positive for counter-clockwise polylines.
func (pl Polyline) SignedArea() float64 {
	var sum float64
	for i, p := range pl.Points {
		q := pl.Points[(i+1)%len(pl.Points)]
		sum += p.CrossZ(q)
	}
	return sum * 0.5
}

// DistanceTo returns the distance from pt to the nearest point on the
// polyline.
func (pl Polyline) DistanceTo(pt Point) float64 {
	switch len(pl.Points) {
	case 0:
		return math.Inf(1)
	case 1:
		return pl.Points[0].Distance(pt)
	}
	best := math.Inf(1)
	for i := 1; i < len(pl.Points); i++ {
		d, _ := Line{pl.Points[i-1], pl.Points[i]}.Nearest(pt)
		best = min(best, d)
	}
	return math.Sqrt(best)
}

// Bounds returns the bounding box of the points.
func (pl Polyline) Bounds() Box {
	return BoxFromPoints(pl.Points...)
}

// Float32 returns the points as interleaved x, y, z single precision
// coordinates, the layout expected by vertex buffers. It fails with an error
// wrapping [ErrNumericRange] if a coordinate doesn't fit in a float32.
func (pl Polyline) Float32() ([]float32, error) {
	out := make([]float32, 0, 3*len(pl.Points))
	for i, p := range pl.Points {
		x, y, z := p.Splat()
		for _, v := range [3]float64{x, y, z} {
			f, ok := narrow(v)
			if !ok {
				return nil, numericRange("point %d: %s overflows float32", i, p)
			}
			out = append(out, f)
		}
	}
	return out, nil
}

// Float32Normals returns, for each point, the unit normal in the XY plane
// to the left of the polyline, interleaved as x, y, z with z = 0. Together
// with [Polyline.Float32] it gives what a mesh layer needs to extrude the
// polyline into a ribbon. Interior normals are perpendicular to the chord
// between the neighbouring points.
//
// The normals are unit length in single precision. Points whose neighbours
// coincide have no normal and fail with an error wrapping [ErrNumericRange].
func (pl Polyline) Float32Normals() ([]float32, error) {
	out := make([]float32, 0, 3*len(pl.Points))
	for i := range pl.Points {
		a := pl.Points[max(i-1, 0)]
		b := pl.Points[min(i+1, len(pl.Points)-1)]
		n := b.Sub(a).Perp().Normalize()
		x, okx := narrow(n.X)
		y, oky := narrow(n.Y)
		if !okx || !oky {
			return nil, numericRange("no normal at point %d", i)
		}
		// Rounding to float32 denormalizes the vector slightly.
		l := math32.Hypot(x, y)
		if !(l > 0) {
			return nil, numericRange("no normal at point %d", i)
		}
		out = append(out, x/l, y/l, 0)
	}
	return out, nil
}

// narrow converts v to single precision, reporting false if the result is
// not finite.
func narrow(v float64) (float32, bool) {
	f := float32(v)
	return f, !math32.IsInf(f, 0) && !math32.IsNaN(f)
}
