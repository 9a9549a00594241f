package curve

import (
	"fmt"
	"slices"
)

// UpdateControl returns a copy of the spline with the control point kind of
// segment index moved to pos, keeping the chain connected and smooth.
//
// Moving an anchor translates it together with its handle. If the anchor is
// shared with a neighbouring segment, that segment's anchor and handle move
// by the same amount. Moving a handle rotates the opposite handle of the
// neighbour around the shared anchor so both stay collinear; the opposite
// handle keeps its distance from the anchor.
//
// It returns an [*IndexOutOfRangeError] for a bad index and a
// [*DegenerateCurveError] if the edit would collapse a segment. The receiver
// is never modified.
func (sp Spline) UpdateControl(kind ControlKind, index int, pos Point) (Spline, error) {
	if index < 0 || index >= len(sp.segs) {
		return Spline{}, &IndexOutOfRangeError{Index: index, Len: len(sp.segs)}
	}
	if !pos.isFinite() {
		return Spline{}, numericRange("control position %s", pos)
	}
	segs := slices.Clone(sp.segs)
	cur := &segs[index]
	// Index of the neighbour sharing the edited end, or -1.
	nb := -1
	switch kind {
	case Start, StartHandle:
		if index > 0 {
			nb = index - 1
		}
	case End, EndHandle:
		if index < len(segs)-1 {
			nb = index + 1
		}
	default:
		return Spline{}, fmt.Errorf("curve: invalid control kind %s", kind)
	}

	switch kind {
	case Start:
		delta := pos.Sub(cur.p0)
		*cur = cur.translateStart(delta)
		if nb >= 0 {
			segs[nb] = segs[nb].translateEnd(delta)
		}
	case End:
		delta := pos.Sub(cur.p3)
		*cur = cur.translateEnd(delta)
		if nb >= 0 {
			segs[nb] = segs[nb].translateStart(delta)
		}
	case StartHandle:
		cur.p1 = pos
		if nb >= 0 {
			segs[nb].p2 = mirrorHandle(cur.p0, pos, segs[nb].p2)
		}
	case EndHandle:
		cur.p2 = pos
		if nb >= 0 {
			segs[nb].p1 = mirrorHandle(cur.p3, pos, segs[nb].p1)
		}
	}

	if err := cur.validate(); err != nil {
		return Spline{}, fmt.Errorf("segment %d: %w", index, err)
	}
	if nb >= 0 {
		if err := segs[nb].validate(); err != nil {
			return Spline{}, fmt.Errorf("segment %d: %w", nb, err)
		}
	}
	return newSpline(segs), nil
}

// mirrorHandle returns opposite rotated around anchor so that it points away
// from handle, at its original distance from anchor.
func mirrorHandle(anchor, handle, opposite Point) Point {
	dir := anchor.Sub(handle)
	if dir.Hypot2() == 0 {
		// The edit is degenerate and rejected by validation.
		return opposite
	}
	return anchor.Add(dir.Normalize().Mul(opposite.Distance(anchor)))
}
