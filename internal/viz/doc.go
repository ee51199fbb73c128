// Package viz renders runs for the terminal and for image files.
//
//   - [Report]: styled summary of a run with a bucket histogram
//   - [LiveModel]: Bubble Tea view that steps a network and redraws the
//     bucket weights as they accumulate
//   - [SaveWeightsPNG], [SaveTracePNG]: gonum/plot charts
//
// # Key Bindings (live view)
//
//	Space - Pause/Resume
//	R     - Reset bucket weights
//	+/-   - Steps per frame
//	Q     - Quit
package viz
