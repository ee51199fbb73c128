package dynamo

import "gonum.org/v1/gonum/spatial/r3"

// CubicBezier evaluates the cubic Bézier curve through control points
// p0..p3 at parameter t. t is not clamped, so values outside [0, 1]
// extrapolate the polynomial.
func CubicBezier(p0, p1, p2, p3 r3.Vec, t float64) r3.Vec {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t

	return r3.Vec{
		X: b0*p0.X + b1*p1.X + b2*p2.X + b3*p3.X,
		Y: b0*p0.Y + b1*p1.Y + b2*p2.Y + b3*p3.Y,
		Z: b0*p0.Z + b1*p1.Z + b2*p2.Z + b3*p3.Z,
	}
}
