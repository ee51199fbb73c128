package dynamo

import "math"

// TwoPi is one full revolution in radians.
const TwoPi = 2 * math.Pi

// NormalizeAngle reduces x into [0, 2π). Negative inputs wrap forward.
func NormalizeAngle(x float64) float64 {
	x = math.Mod(x, TwoPi)
	if x < 0 {
		x += TwoPi
	}
	// -tiny + 2π rounds to exactly 2π
	if x >= TwoPi {
		x = 0
	}
	return x
}

// ArcDistance returns the length of the shorter arc between a and b.
// The result lies in [0, π] and is symmetric in its arguments.
func ArcDistance(a, b float64) float64 {
	d := math.Abs(NormalizeAngle(a) - NormalizeAngle(b))
	if d > math.Pi {
		d = TwoPi - d
	}
	return d
}
