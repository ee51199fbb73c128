// Package control provides the time-indexed control sequences that drive
// each rotating body.
//
// A body is driven by three sequences of equal length, one value per
// simulated time step:
//
//   - [Velocity]: tangential velocity at the start of the step
//   - [Acceleration]: tangential acceleration, shaped inside the step by a
//     cubic Bézier curve (see [Sequence.ModulatedAccelerationAt])
//   - [TimeDelta]: duration of the step
//
// # Usage
//
//	vel, _ := control.NewSequence(control.Velocity, []float64{1, 1, 1})
//	acc, _ := control.NewAccelerationSequence([]float64{0, 0.1, 0.2}, curve)
//	a, err := acc.ModulatedAccelerationAt(1, 0.5)
package control
