package sim

// Observation is what metrics and observers see after each step. The
// slices are copies owned by the receiver.
type Observation struct {
	Step    int
	Angles  []float64
	Weights []float64
	Class   int
}

type Metric interface {
	Name() string
	Observe(obs Observation)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(obs Observation)
}

type Config struct {
	// Steps is the number of time steps to run, starting at index 0.
	// Zero means every step the control sequences cover.
	Steps int
}

func DefaultConfig() Config {
	return Config{}
}

type Result struct {
	// Classifications holds the best bucket after each step. The
	// classification is cumulative over all steps run so far.
	Classifications []int
	Weights         []float64
	Angles          []float64
	Metrics         map[string]float64
	StepsTaken      int
}
