package curve

import (
	"fmt"
	"math"
)

// MiterLimit is the limit on the ratio of miter length to stroke width
// beyond which [Spline.Stroke] bevels joins instead.
const MiterLimit = 4.0

// Stroke returns the closed outline of a band of the given width centered on
// the spline's XY projection, accurate to tolerance. The outline runs along
// the right edge, across a butt cap at the end, back along the left edge and
// across a butt cap at the start, so it is counter-clockwise.
//
// Where segments meet at an angle, the outer edge is extended to the
// intersection of the edge tangents, unless that would exceed [MiterLimit],
// in which case the join is beveled. The inner edge is connected straight.
func (sp Spline) Stroke(width, tolerance float64) (Spline, error) {
	if !validTolerance(width) {
		return Spline{}, numericRange("stroke width %v", width)
	}
	if !validTolerance(tolerance) {
		return Spline{}, numericRange("stroke tolerance %v", tolerance)
	}
	if len(sp.segs) == 0 {
		return Spline{}, ErrEmptyCurveSet
	}
	hw := 0.5 * width
	right, err := sp.strokeSide(-hw, tolerance)
	if err != nil {
		return Spline{}, err
	}
	left, err := sp.strokeSide(hw, tolerance)
	if err != nil {
		return Spline{}, err
	}

	out := chain{segs: right}
	out.extend(newSpline(left).Reverse().segs)
	out.lineTo(right[0].p0)
	for i, s := range out.segs {
		if err := s.validate(); err != nil {
			return Spline{}, fmt.Errorf("stroke segment %d: %w", i, err)
		}
	}
	return newSpline(out.segs), nil
}

// strokeSide returns one edge of a stroke, at signed distance d.
func (sp Spline) strokeSide(d, tolerance float64) ([]Segment, error) {
	var c chain
	for i, s := range sp.segs {
		o, err := s.Offset(d, tolerance)
		if err != nil {
			return nil, fmt.Errorf("offsetting segment %d: %w", i, err)
		}
		if i > 0 {
			prev := sp.segs[i-1]
			c.join(prev.p3, prev.p3.Sub(prev.p2), s.p1.Sub(s.p0), d, o[0].p0)
		}
		c.extend(o)
	}
	return c.segs, nil
}

// join connects the chain's end to next, the start of the following offset,
// around the corner at p0, where the incoming tangent ab meets the outgoing
// tangent cd.
func (c *chain) join(p0, ab, cd Point, d float64, next Point) {
	last := c.end()
	if last.Distance(next) <= max(c.tolerance, weldDistance) {
		return
	}
	ab = Point{ab.X, ab.Y, 0}
	cd = Point{cd.X, cd.Y, 0}
	cross := ab.CrossZ(cd)
	dot := ab.Dot(cd)
	hypot := math.Hypot(cross, dot)
	// The edge at d is on the outside of the turn.
	outer := cross*d < 0
	if outer && 2.0*hypot < (hypot+dot)*MiterLimit*MiterLimit {
		miter, _, _, ok := Line{last, last.Add(ab)}.CrossingPoint(Line{next, next.Add(cd)})
		if ok {
			Logger().Debug("stroke miter join", "corner", p0, "miter", miter)
			c.lineTo(miter)
		}
	}
	// Bevel, and the remainder of the miter, are bridged by extend.
}
