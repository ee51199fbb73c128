// Package metrics provides per-run summaries observed after every step.
package metrics

import "github.com/san-kum/rotsim/internal/sim"

// Defaults returns the metrics attached to every run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewStability(),
		NewMargin(),
		NewConcentration(),
	}
}
