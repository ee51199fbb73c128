package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/sim"
	"github.com/san-kum/rotsim/internal/vote"
)

// Decision is the reduction of a classification stream.
type Decision struct {
	Final     int        `json:"final"`
	Runs      []vote.Run `json:"runs"`
	Winner    vote.Run   `json:"winner"`
	HasWinner bool       `json:"has_winner"`
	Top       []vote.Run `json:"top"`
	Distinct  int        `json:"distinct"`
}

// Decide reduces stream to a decision. topN <= 0 ranks every distinct value.
func Decide(stream []int, topN int) Decision {
	runs := vote.RunLengthEncode(stream)
	d := Decision{
		Final:    -1,
		Runs:     runs,
		Distinct: vote.Distinct(runs),
	}
	if len(stream) > 0 {
		d.Final = stream[len(stream)-1]
	}
	d.Winner, d.HasWinner = vote.Winner(runs)

	if topN <= 0 {
		topN = d.Distinct
	}
	d.Top = vote.TopN(runs, topN)
	return d
}

type Outcome struct {
	Result   *sim.Result
	Decision Decision
}

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the network and attaches metrics.
func (e *Experiment) Setup(metrics []sim.Metric) error {
	net, err := BuildNetwork(e.cfg)
	if err != nil {
		return err
	}
	e.simulator = sim.New(net)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

// Run drives every configured step and reduces the stream. A failed run
// returns the partial outcome alongside the error.
func (e *Experiment) Run(ctx context.Context) (*Outcome, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	result, err := e.simulator.Run(ctx, sim.Config{Steps: e.cfg.Steps})
	if result == nil {
		return nil, err
	}
	return &Outcome{
		Result:   result,
		Decision: Decide(result.Classifications, e.cfg.TopN),
	}, err
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Config() *config.Config { return e.cfg }
