package curve

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Minimum gap that [Join] and [Spline.Close] weld rather than bridge, even
// for smaller tolerances. It absorbs rounding in offsets and splits.
const weldDistance = 4 * Epsilon

// Spline is a chain of segments joined end to end. The end of each segment
// is expected to coincide with the start of the next; operations that build
// splines maintain this, but it is not enforced.
//
// A global parameter t ∈ [0, 1] maps to segment floor(t·n) of n segments, at
// the local parameter t·n − floor(t·n). t = 1 maps to the end of the last
// segment.
//
// Splines are values. Methods that change a spline return a new one and
// leave the receiver untouched.
type Spline struct {
	segs []Segment
}

// NewSpline returns a spline consisting of segs. It returns [ErrEmptyCurveSet]
// if there are no segments.
func NewSpline(segs ...Segment) (Spline, error) {
	if len(segs) == 0 {
		return Spline{}, ErrEmptyCurveSet
	}
	return newSpline(slices.Clone(segs)), nil
}

// newSpline takes ownership of segs.
func newSpline(segs []Segment) Spline {
	return Spline{segs: segs}
}

// FromAnchors builds a spline from the points of a pen tool gesture: the
// anchors where the user pressed, and the handles where they released after
// dragging. handles[i] is the outgoing handle of origins[i]; its incoming
// handle is the reflection through the anchor.
//
// The last anchor may lack a handle, in which case its incoming handle lies a
// third of the way towards the previous outgoing handle. It returns
// [ErrInvalidCounts] for fewer than two anchors or mismatched counts, and a
// [*DegenerateCurveError] for coincident points.
func FromAnchors(origins, handles []Point) (Spline, error) {
	if len(origins) < 2 || (len(handles) != len(origins) && len(handles) != len(origins)-1) {
		return Spline{}, fmt.Errorf("%w: %d anchors and %d handles", ErrInvalidCounts, len(origins), len(handles))
	}
	incoming := func(i int) Point {
		if i < len(handles) {
			return origins[i].Mul(2).Sub(handles[i])
		}
		return origins[i].Lerp(handles[i-1], 1.0/3.0)
	}
	segs := make([]Segment, 0, len(origins)-1)
	for i := range len(origins) - 1 {
		s, err := NewSegment(origins[i], handles[i], incoming(i+1), origins[i+1])
		if err != nil {
			return Spline{}, fmt.Errorf("segment %d: %w", i, err)
		}
		segs = append(segs, s)
	}
	return newSpline(segs), nil
}

// Len returns the number of segments.
func (sp Spline) Len() int { return len(sp.segs) }

// Segment returns the i-th segment.
func (sp Spline) Segment(i int) (Segment, error) {
	if i < 0 || i >= len(sp.segs) {
		return Segment{}, &IndexOutOfRangeError{Index: i, Len: len(sp.segs)}
	}
	return sp.segs[i], nil
}

// Segments returns a copy of the segments.
func (sp Spline) Segments() []Segment {
	return slices.Clone(sp.segs)
}

// Start returns the first point of the spline. It is the zero point for the
// zero spline.
func (sp Spline) Start() Point {
	if len(sp.segs) == 0 {
		return Point{}
	}
	return sp.segs[0].p0
}

// End returns the last point of the spline.
func (sp Spline) End() Point {
	if len(sp.segs) == 0 {
		return Point{}
	}
	return sp.segs[len(sp.segs)-1].p3
}

func (sp Spline) String() string {
	var b strings.Builder
	b.WriteString("Spline{")
	for i, s := range sp.segs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.String())
	}
	b.WriteString("}")
	return b.String()
}

// locate maps the global parameter t to a segment index and local parameter.
func (sp Spline) locate(t float64) (int, float64, error) {
	if len(sp.segs) == 0 {
		return 0, 0, ErrEmptyCurveSet
	}
	if !(t >= 0 && t <= 1) {
		return 0, 0, numericRange("spline parameter %v", t)
	}
	n := float64(len(sp.segs))
	i := min(int(math.Floor(t*n)), len(sp.segs)-1)
	return i, t*n - float64(i), nil
}

// global is the inverse of locate.
func (sp Spline) global(i int, local float64) float64 {
	return (float64(i) + local) / float64(len(sp.segs))
}

// PointAt evaluates the spline at the global parameter t.
func (sp Spline) PointAt(t float64) (Point, error) {
	i, u, err := sp.locate(t)
	if err != nil {
		return Point{}, err
	}
	return sp.segs[i].PointAt(u), nil
}

// TangentAt returns the unit tangent at the global parameter t.
func (sp Spline) TangentAt(t float64) (Point, error) {
	i, u, err := sp.locate(t)
	if err != nil {
		return Point{}, err
	}
	return sp.segs[i].TangentAt(u), nil
}

// CurvatureAt returns the signed curvature at the global parameter t. See
// [Segment.Curvature]. At cusps, where the curve stalls and curvature is
// undefined, it returns an error wrapping [ErrNumericRange].
func (sp Spline) CurvatureAt(t float64) (float64, error) {
	i, u, err := sp.locate(t)
	if err != nil {
		return 0, err
	}
	s := sp.segs[i]
	if s.stalls(u) {
		return 0, numericRange("curvature at cusp t=%v", t)
	}
	return s.Curvature(u), nil
}

// Length returns the total arc length, accurate to accuracy.
func (sp Spline) Length(accuracy float64) float64 {
	if len(sp.segs) == 0 {
		return 0
	}
	return sp.lengthPerSegment(sanitizeAccuracy(accuracy) / float64(len(sp.segs)))
}

// ParamAtLength returns the global parameter at which the arc length from the
// start equals length. Lengths beyond the ends clamp to 0 and 1.
func (sp Spline) ParamAtLength(length, accuracy float64) (float64, error) {
	if len(sp.segs) == 0 {
		return 0, ErrEmptyCurveSet
	}
	if math.IsNaN(length) {
		return 0, numericRange("length %v", length)
	}
	if length <= 0 {
		return 0, nil
	}
	accuracy = sanitizeAccuracy(accuracy) / float64(len(sp.segs))
	remaining := length
	for i, s := range sp.segs {
		l := s.Length(accuracy)
		if remaining < l {
			u, err := s.ParamAtLength(remaining, accuracy)
			if err != nil {
				return 0, fmt.Errorf("segment %d: %w", i, err)
			}
			return sp.global(i, u), nil
		}
		remaining -= l
	}
	return 1, nil
}

// Nearest returns the global parameter of the point on the spline nearest to
// pt, and its distance. Each segment is searched; on ties the earlier one
// wins. Errors are those of [Segment.Nearest].
func (sp Spline) Nearest(pt Point, accuracy float64) (t, dist float64, err error) {
	if len(sp.segs) == 0 {
		return 0, 0, ErrEmptyCurveSet
	}
	best := math.Inf(1)
	for i, s := range sp.segs {
		d, u, err := s.Nearest(pt, accuracy)
		if err != nil {
			return 0, 0, fmt.Errorf("segment %d: %w", i, err)
		}
		if d < best {
			best = d
			t = sp.global(i, u)
		}
	}
	return t, math.Sqrt(best), nil
}

// Reverse returns the spline traversed from end to start.
func (sp Spline) Reverse() Spline {
	segs := make([]Segment, len(sp.segs))
	for i, s := range sp.segs {
		segs[len(segs)-1-i] = s.Reverse()
	}
	return newSpline(segs)
}

// Trim returns the portion of the spline between the global parameters t0 and
// t1, with t0 < t1.
func (sp Spline) Trim(t0, t1 float64) (Spline, error) {
	if !(t0 < t1) {
		return Spline{}, numericRange("trim range [%v, %v]", t0, t1)
	}
	i0, u0, err := sp.locate(t0)
	if err != nil {
		return Spline{}, err
	}
	i1, u1, err := sp.locate(t1)
	if err != nil {
		return Spline{}, err
	}
	// Prefer ending at the end of a segment to ending at the start of the
	// next one, and vice versa.
	if u1 == 0 && i1 > i0 {
		i1, u1 = i1-1, 1
	}
	if u0 == 1 && i0 < i1 {
		i0, u0 = i0+1, 0
	}
	var c chain
	for i := i0; i <= i1; i++ {
		a, b := 0.0, 1.0
		if i == i0 {
			a = u0
		}
		if i == i1 {
			b = u1
		}
		s := sp.segs[i]
		if a != 0 || b != 1 {
			s = s.Subsegment(a, b)
		}
		if i0 != i1 && s.p0.Distance(s.p3) < weldDistance {
			// Sliver at a segment boundary.
			continue
		}
		if err := s.validate(); err != nil {
			return Spline{}, fmt.Errorf("trimming segment %d to [%v, %v]: %w", i, a, b, err)
		}
		c.extend([]Segment{s})
	}
	if len(c.segs) == 0 {
		return Spline{}, numericRange("trim range [%v, %v] is empty", t0, t1)
	}
	return newSpline(c.segs), nil
}

// SplitAt divides the spline at the global parameter t.
func (sp Spline) SplitAt(t float64) (Spline, Spline, error) {
	a, err := sp.Trim(0, t)
	if err != nil {
		return Spline{}, Spline{}, err
	}
	b, err := sp.Trim(t, 1)
	if err != nil {
		return Spline{}, Spline{}, err
	}
	return a, b, nil
}

// Offset concatenates the offsets of all segments. See [Segment.Offset].
//
// Where segments meet at an angle their offsets don't meet; use
// [Spline.Stroke] for a connected outline.
func (sp Spline) Offset(distance, accuracy float64) (Spline, error) {
	if len(sp.segs) == 0 {
		return Spline{}, ErrEmptyCurveSet
	}
	var segs []Segment
	for i, s := range sp.segs {
		o, err := s.Offset(distance, accuracy)
		if err != nil {
			return Spline{}, fmt.Errorf("offsetting segment %d: %w", i, err)
		}
		segs = append(segs, o...)
	}
	return newSpline(segs), nil
}

// Bounds returns a box containing the spline.
func (sp Spline) Bounds() Box {
	b := emptyBox
	for _, s := range sp.segs {
		b = b.Union(s.Bounds())
	}
	return b
}

// IsClosed reports whether the spline ends within tolerance of its start.
func (sp Spline) IsClosed(tolerance float64) bool {
	return len(sp.segs) > 0 && sp.Start().Distance(sp.End()) <= max(tolerance, weldDistance)
}

// chain accumulates segments into a connected chain.
type chain struct {
	tolerance float64
	segs      []Segment
}

func (c *chain) end() Point {
	return c.segs[len(c.segs)-1].p3
}

// lineTo appends a straight segment to p, or welds the chain's end to p if
// the two are within tolerance.
func (c *chain) lineTo(p Point) {
	if len(c.segs) == 0 {
		return
	}
	end := c.end()
	if end.Distance(p) <= max(c.tolerance, weldDistance) {
		last := &c.segs[len(c.segs)-1]
		moved := last.translateEnd(p.Sub(end))
		if moved.validate() == nil {
			*last = moved
		}
		return
	}
	c.segs = append(c.segs, line(end, p))
}

// extend appends segs, connecting them to the chain as with lineTo.
func (c *chain) extend(segs []Segment) {
	if len(segs) == 0 {
		return
	}
	if len(c.segs) == 0 {
		c.segs = append(c.segs, segs...)
		return
	}
	end := c.end()
	first := segs[0]
	if end.Distance(first.p0) <= max(c.tolerance, weldDistance) {
		moved := first.translateStart(end.Sub(first.p0))
		if moved.validate() == nil {
			c.segs = append(c.segs, moved)
		} else {
			// The weld would collapse the first segment.
			c.lineTo(first.p3)
		}
		c.segs = append(c.segs, segs[1:]...)
		return
	}
	c.segs = append(c.segs, line(end, first.p0))
	c.segs = append(c.segs, segs...)
}

// Join concatenates splines. Gaps of at most tolerance between one part's end
// and the next part's start are welded by moving the next start. Larger gaps
// are bridged with straight segments.
func Join(tolerance float64, parts ...Spline) (Spline, error) {
	c := chain{tolerance: tolerance}
	for _, p := range parts {
		c.extend(p.segs)
	}
	if len(c.segs) == 0 {
		return Spline{}, ErrEmptyCurveSet
	}
	return newSpline(c.segs), nil
}

// Close returns the spline with its end connected back to its start, welded
// or bridged as by [Join].
func (sp Spline) Close(tolerance float64) (Spline, error) {
	if len(sp.segs) == 0 {
		return Spline{}, ErrEmptyCurveSet
	}
	c := chain{tolerance: tolerance, segs: slices.Clone(sp.segs)}
	c.lineTo(sp.Start())
	return newSpline(c.segs), nil
}
