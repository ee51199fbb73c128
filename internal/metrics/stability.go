package metrics

import "github.com/san-kum/rotsim/internal/sim"

// Stability is the fraction of steps whose classification matches the
// previous step's.
type Stability struct {
	name     string
	prev     int
	switches int
	samples  int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(obs sim.Observation) {
	if s.samples > 0 && obs.Class != s.prev {
		s.switches++
	}
	s.prev = obs.Class
	s.samples++
}

// Switches is the number of classification changes observed.
func (s *Stability) Switches() int { return s.switches }

func (s *Stability) Value() float64 {
	if s.samples < 2 {
		return 1.0
	}
	return 1.0 - float64(s.switches)/float64(s.samples-1)
}

func (s *Stability) Reset() {
	s.prev = 0
	s.switches = 0
	s.samples = 0
}
