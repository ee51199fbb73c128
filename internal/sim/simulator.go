package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/rotsim/internal/dynamo"
)

// Simulator drives a Network through consecutive time steps and records
// the classification after each one.
type Simulator struct {
	net       *Network
	metrics   []Metric
	observers []Observer
}

func New(net *Network) *Simulator {
	return &Simulator{
		net:       net,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Network returns the network being driven.
func (s *Simulator) Network() *Network { return s.net }

// Run steps the network from index 0. On a step failure the partial
// result is returned with the error; the caller decides what to keep.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	steps, err := s.validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Classifications: make([]int, 0, steps),
		Metrics:         make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	observe := len(s.metrics) > 0 || len(s.observers) > 0

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		if err := s.net.Step(i); err != nil {
			s.finish(result)
			return result, err
		}

		class := s.net.Classify()
		result.Classifications = append(result.Classifications, class)
		result.StepsTaken++

		if observe {
			obs := Observation{
				Step:    i,
				Angles:  s.net.Angles(),
				Weights: s.net.Snapshot(),
				Class:   class,
			}
			for _, m := range s.metrics {
				m.Observe(obs)
			}
			for _, o := range s.observers {
				o.OnStep(obs)
			}
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	result.Weights = s.net.Snapshot()
	result.Angles = s.net.Angles()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) (int, error) {
	if s.net.Len() == 0 {
		return 0, fmt.Errorf("network has no bodies: %w", dynamo.ErrInvalidParameter)
	}
	available := s.net.Steps()
	if cfg.Steps < 0 {
		return 0, fmt.Errorf("steps must be non-negative, got %d: %w", cfg.Steps, dynamo.ErrInvalidParameter)
	}
	if cfg.Steps == 0 {
		return available, nil
	}
	if cfg.Steps > available {
		return 0, fmt.Errorf("steps %d exceed control length %d: %w", cfg.Steps, available, dynamo.ErrOutOfRange)
	}
	return cfg.Steps, nil
}

// RunWithCallback steps the network and hands each observation to
// callback until it returns false or the steps run out.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Observation) bool) error {
	steps, err := s.validateConfig(cfg)
	if err != nil {
		return err
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.net.Step(i); err != nil {
			return err
		}

		obs := Observation{
			Step:    i,
			Angles:  s.net.Angles(),
			Weights: s.net.Snapshot(),
			Class:   s.net.Classify(),
		}
		if !callback(obs) {
			return nil
		}
	}

	return nil
}
