package sim

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/san-kum/rotsim/internal/dynamo"
)

type testMetric struct {
	count int
	last  int
}

func (m *testMetric) Name() string { return "test" }
func (m *testMetric) Observe(obs Observation) {
	m.count++
	m.last = obs.Class
}
func (m *testMetric) Value() float64 { return float64(m.count) }
func (m *testMetric) Reset()         { m.count = 0 }

type testObserver struct {
	steps []int
}

func (o *testObserver) OnStep(obs Observation) { o.steps = append(o.steps, obs.Step) }

func newRandomNetwork(t *testing.T, bodies, steps int) *Network {
	rng := rand.New(rand.NewSource(9))
	net, err := NewNetwork(12)
	if err != nil {
		t.Fatalf("new network: %v", err)
	}
	for i := 0; i < bodies; i++ {
		net.AddBody(randomBody(t, rng, steps))
	}
	return net
}

func TestSimulatorRun(t *testing.T) {
	net := newRandomNetwork(t, 5, 40)
	s := New(net)

	metric := &testMetric{}
	obs := &testObserver{}
	s.AddMetric(metric)
	s.AddObserver(obs)

	result, err := s.Run(context.Background(), DefaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 40 || len(result.Classifications) != 40 {
		t.Errorf("expected 40 steps, got %d (%d classifications)", result.StepsTaken, len(result.Classifications))
	}
	if metric.count != 40 {
		t.Errorf("expected 40 observations, got %d", metric.count)
	}
	if result.Metrics["test"] != 40 {
		t.Errorf("metric not recorded in result: %v", result.Metrics)
	}
	if len(obs.steps) != 40 || obs.steps[39] != 39 {
		t.Errorf("observer saw steps %v", obs.steps)
	}
	if last := result.Classifications[39]; last != net.Classify() || metric.last != last {
		t.Errorf("final classification mismatch")
	}
	if len(result.Weights) != 12 || len(result.Angles) != 5 {
		t.Errorf("unexpected result shapes: %d weights, %d angles", len(result.Weights), len(result.Angles))
	}
}

func TestSimulatorRun_Deterministic(t *testing.T) {
	run := func() []int {
		res, err := New(newRandomNetwork(t, 6, 30)).Run(context.Background(), Config{Steps: 30})
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		return res.Classifications
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("step %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"negative steps", Config{Steps: -1}, dynamo.ErrInvalidParameter},
		{"too many steps", Config{Steps: 11}, dynamo.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(newRandomNetwork(t, 2, 10))
			_, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	empty, _ := NewNetwork(4)
	if _, err := New(empty).Run(context.Background(), Config{}); !errors.Is(err, dynamo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for empty network, got %v", err)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(newRandomNetwork(t, 3, 10)).Run(ctx, Config{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps, got %d", result.StepsTaken)
	}
}

func TestSimulatorRunWithCallback(t *testing.T) {
	s := New(newRandomNetwork(t, 3, 20))

	calls := 0
	err := s.RunWithCallback(context.Background(), Config{}, func(obs Observation) bool {
		calls++
		return obs.Step < 4
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected callback to stop after 5 calls, got %d", calls)
	}
}
