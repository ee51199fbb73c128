package metrics

import (
	"math"

	"github.com/san-kum/rotsim/internal/sim"
)

// Concentration averages the mean resultant length of the body angles:
// 1 when every body points the same way, near 0 when they are spread
// evenly around the ring.
type Concentration struct {
	name    string
	sum     float64
	samples int
}

func NewConcentration() *Concentration {
	return &Concentration{name: "concentration"}
}

func (c *Concentration) Name() string {
	return c.name
}

func (c *Concentration) Observe(obs sim.Observation) {
	if len(obs.Angles) == 0 {
		return
	}
	c.sum += ResultantLength(obs.Angles)
	c.samples++
}

func (c *Concentration) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Concentration) Reset() {
	c.sum = 0
	c.samples = 0
}

// ResultantLength is |Σ e^{iθ}| / n.
func ResultantLength(angles []float64) float64 {
	if len(angles) == 0 {
		return 0
	}
	var sx, sy float64
	for _, a := range angles {
		s, c := math.Sincos(a)
		sx += c
		sy += s
	}
	return math.Hypot(sx, sy) / float64(len(angles))
}
