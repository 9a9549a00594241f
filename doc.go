// Package curve is the geometry engine for paths such as roads, footways and
// plot boundaries. Paths are modelled as splines of cubic Béziers in 3D.
//
// # Segments and splines
//
// A [Segment] is a single cubic Bézier, defined by two anchors and two
// handles. Segments are validated on construction: no guarded pair of
// control points may be closer than [Epsilon].
//
// A [Spline] chains segments end to end. It is addressed by a global
// parameter t ∈ [0, 1] that maps uniformly onto its segments. Splines can be
// built from explicit segments with [NewSpline] or from the points of a pen
// tool gesture with [FromAnchors], and edited with [Spline.UpdateControl].
// Splines are immutable; every operation returns a new value.
//
// # Derived geometry
//
// The following operations derive new geometry from a spline:
//
//   - Measuring arc length and solving for the parameter at a given length
//     (see [Spline.Length] and [Spline.ParamAtLength])
//   - Placing stations at equal distances (see [Spline.Stations])
//   - Flattening to polylines (see [Spline.Flatten])
//   - Offsetting (see [Spline.Offset]) and stroking (see [Spline.Stroke])
//   - Curve-curve intersection (see [Spline.Intersections])
//
// Planar operations, which are offsetting, stroking and intersection, work
// on the projection onto the XY plane and carry Z along from the source. The
// junction sub-package builds on them to stitch paths meeting at a point
// into a single outline.
//
// # Tolerances and errors
//
// Operations that approximate take an accuracy or tolerance in model units.
// [DefaultTolerances] returns values suitable for drawings in meters, and
// [LoadTolerances] reads them from TOML.
//
// No function panics on bad input. Invalid geometry and parameters are
// reported as errors: [*DegenerateCurveError], [*IndexOutOfRangeError],
// [ErrInvalidCounts], [ErrEmptyCurveSet] and [ErrNumericRange].
//
// # Literature
//
// This package makes use of the following ideas:
//   - [A Primer on Bézier Curves]
//   - [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality] by Oliveira and Takahashi
//   - [Flattening quadratic Béziers] by Raph Levien
//   - [How to solve a cubic equation, revisited] by Christoph Peters
//   - [Cubic Hermite splines], used to approximate offset curves
//
// [A Primer on Bézier Curves]: https://pomax.github.io/bezierinfo/
// [An Enhancement of the Bisection Method Average Performance Preserving Minmax Optimality]: https://dl.acm.org/doi/10.1145/3423597
// [Flattening quadratic Béziers]: https://raphlinus.github.io/graphics/curves/2019/12/23/flatten-quadbez.html
// [How to solve a cubic equation, revisited]: https://momentsingraphics.de/CubicRoots.html
// [Cubic Hermite splines]: https://en.wikipedia.org/wiki/Cubic_Hermite_spline
package curve
