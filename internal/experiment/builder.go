package experiment

import (
	"fmt"

	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/control"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/models"
	"github.com/san-kum/rotsim/internal/random"
	"github.com/san-kum/rotsim/internal/sim"
)

// BuildNetwork synthesises a network of cfg.Bodies bodies with random
// control sequences of cfg.Steps entries. Body i samples its sequences
// from a generator seeded seed+i+1 and its curve, radius and starting
// angle from a second generator whose seed is derived from the first.
func BuildNetwork(cfg *config.Config) (*sim.Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", dynamo.ErrInvalidParameter, err)
	}

	net, err := sim.NewNetwork(cfg.Buckets, sim.WithParallel(cfg.Parallel))
	if err != nil {
		return nil, err
	}

	for i := 0; i < cfg.Bodies; i++ {
		body, err := buildBody(cfg, i)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		if err := net.AddBody(body); err != nil {
			return nil, err
		}
	}
	return net, nil
}

func buildBody(cfg *config.Config, i int) (*models.Cylinder, error) {
	s := cfg.Sampling
	g, err := random.NewBoundedNormal(s.Mean, s.StdDev, s.Noise, cfg.Seed+int64(i)+1)
	if err != nil {
		return nil, err
	}
	salt := int64(g.Float64() * 10000)
	g2, err := random.NewBoundedNormal(s.Mean, s.StdDev, s.Noise, cfg.Seed+int64(i+1)*salt*1000)
	if err != nil {
		return nil, err
	}

	n := cfg.Steps
	vel := make([]float64, n)
	acc := make([]float64, n)
	dt := make([]float64, n)
	for t := 0; t < n; t++ {
		vel[t] = cfg.Ranges.Velocity.Scale(g.Float64())
		acc[t] = cfg.Ranges.Acceleration.Scale(g.Float64())
		dt[t] = cfg.Ranges.TimeDelta.Scale(g.Float64())
	}

	var curve control.Curve
	for k := range curve {
		curve[k] = random.Vector(g2, g2.Float64(), cfg.Ranges.CurveMax)
	}
	radius := cfg.Ranges.Radius.Scale(g2.Float64())
	angle := g2.Float64() * dynamo.TwoPi

	velSeq, err := control.NewSequence(control.Velocity, vel)
	if err != nil {
		return nil, err
	}
	accSeq, err := control.NewAccelerationSequence(acc, curve)
	if err != nil {
		return nil, err
	}
	dtSeq, err := control.NewSequence(control.TimeDelta, dt)
	if err != nil {
		return nil, err
	}

	return models.NewCylinder(angle, radius, velSeq, accSeq, dtSeq)
}
