package metrics

import "github.com/san-kum/rotsim/internal/sim"

// Margin averages, over steps, how far the best bucket leads the runner-up
// relative to the best bucket's weight. 0 is a dead heat, 1 a single
// bucket holding all the weight.
type Margin struct {
	name    string
	sum     float64
	samples int
}

func NewMargin() *Margin {
	return &Margin{name: "margin"}
}

func (m *Margin) Name() string { return m.name }

func (m *Margin) Observe(obs sim.Observation) {
	m.sum += RelativeMargin(obs.Weights)
	m.samples++
}

func (m *Margin) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Margin) Reset() {
	m.sum = 0
	m.samples = 0
}

// RelativeMargin returns (best-second)/best for weights, or 0 when there
// is no positive best weight.
func RelativeMargin(weights []float64) float64 {
	if len(weights) == 0 {
		return 0
	}
	best, second := weights[0], 0.0
	if len(weights) > 1 {
		second = weights[1]
		if second > best {
			best, second = second, best
		}
	}
	for _, w := range weights[min(2, len(weights)):] {
		switch {
		case w > best:
			best, second = w, best
		case w > second:
			second = w
		}
	}
	if best <= 0 {
		return 0
	}
	return (best - second) / best
}
