// Package dynamo provides the numeric primitives shared by the rotating
// body simulation.
//
//   - [NormalizeAngle]: reduce an angle into [0, 2π)
//   - [ArcDistance]: shorter-arc distance between two angles, in [0, π]
//   - [CubicBezier]: phase curve used to shape acceleration inside a step
//   - [ParallelFor]: chunked fan-out over independent bodies
//
// All errors returned by the simulation packages wrap one of the sentinels
// declared in errors.go, so callers can match them with [errors.Is].
//
// # Example
//
//	theta := dynamo.NormalizeAngle(theta + omega*dt)
//	d := dynamo.ArcDistance(theta, center)
//	w := math.Exp(-d * d)
package dynamo
