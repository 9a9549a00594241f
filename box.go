package curve

import (
	"math"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min Point
	Max Point
}

// emptyBox is the identity of [Box.Union].
var emptyBox = Box{
	Min: Point{math.Inf(1), math.Inf(1), math.Inf(1)},
	Max: Point{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
}

// BoxFromPoints returns the smallest box containing all points. The box of no
// points is empty: its minimum is +Inf and its maximum -Inf.
func BoxFromPoints(pts ...Point) Box {
	b := emptyBox
	for _, pt := range pts {
		b = b.UnionPoint(pt)
	}
	return b
}

// IsEmpty reports whether b contains no points.
func (b Box) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Size returns the extent of the box along each axis.
func (b Box) Size() Point {
	return b.Max.Sub(b.Min)
}

// Center returns the center point of the box.
func (b Box) Center() Point {
	return b.Min.Midpoint(b.Max)
}

// Contains reports whether pt lies inside the box, including its faces.
func (b Box) Contains(pt Point) bool {
	return pt.X >= b.Min.X && pt.X <= b.Max.X &&
		pt.Y >= b.Min.Y && pt.Y <= b.Max.Y &&
		pt.Z >= b.Min.Z && pt.Z <= b.Max.Z
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Point{min(b.Min.X, o.Min.X), min(b.Min.Y, o.Min.Y), min(b.Min.Z, o.Min.Z)},
		Max: Point{max(b.Max.X, o.Max.X), max(b.Max.Y, o.Max.Y), max(b.Max.Z, o.Max.Z)},
	}
}

// UnionPoint returns the smallest box containing both b and pt.
func (b Box) UnionPoint(pt Point) Box {
	return b.Union(Box{pt, pt})
}

// Inflate grows the box by d in every direction.
func (b Box) Inflate(d float64) Box {
	v := Point{d, d, d}
	return Box{b.Min.Sub(v), b.Max.Add(v)}
}

// OverlapsXY reports whether the projections of b and o onto the XY plane
// share at least one point.
func (b Box) OverlapsXY(o Box) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X &&
		b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}
