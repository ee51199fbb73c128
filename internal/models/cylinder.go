package models

import (
	"fmt"
	"math"

	"github.com/san-kum/rotsim/internal/control"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/integrators"
)

// Cylinder is one rotating body. Its angle is the only state that changes
// during a run; velocity does not carry over between time steps, each step
// restarts from the velocity sequence.
type Cylinder struct {
	angle  float64
	radius float64

	velocity     *control.Sequence
	acceleration *control.Sequence
	timeDelta    *control.Sequence

	integrator *integrators.SubstepEuler
}

// NewCylinder builds a body at the given initial angle. The three sequences
// must share a length and the acceleration sequence must carry a curve.
func NewCylinder(angle, radius float64, velocity, acceleration, timeDelta *control.Sequence) (*Cylinder, error) {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("radius %v: %w", radius, dynamo.ErrInvalidParameter)
	}
	if velocity == nil || acceleration == nil || timeDelta == nil {
		return nil, fmt.Errorf("missing control sequence: %w", dynamo.ErrInvalidParameter)
	}
	if _, ok := acceleration.Curve(); !ok {
		return nil, fmt.Errorf("acceleration sequence: %w", dynamo.ErrNoCurve)
	}
	n := velocity.Len()
	if acceleration.Len() != n || timeDelta.Len() != n {
		return nil, fmt.Errorf("sequence lengths %d/%d/%d: %w",
			n, acceleration.Len(), timeDelta.Len(), dynamo.ErrLengthMismatch)
	}

	return &Cylinder{
		angle:        dynamo.NormalizeAngle(angle),
		radius:       radius,
		velocity:     velocity,
		acceleration: acceleration,
		timeDelta:    timeDelta,
		integrator:   integrators.NewSubstepEuler(integrators.DefaultSubsteps),
	}, nil
}

func (c *Cylinder) Angle() float64  { return c.angle }
func (c *Cylinder) Radius() float64 { return c.radius }

// Steps is the number of time steps the control sequences cover.
func (c *Cylinder) Steps() int { return c.velocity.Len() }

func (c *Cylinder) Velocity() *control.Sequence     { return c.velocity }
func (c *Cylinder) Acceleration() *control.Sequence { return c.acceleration }
func (c *Cylinder) TimeDelta() *control.Sequence    { return c.timeDelta }

// Advance integrates the angle across time step timeIndex. The tangential
// velocity and the curve-shaped tangential acceleration are divided by the
// radius to get angular rates. On error the angle is unchanged.
func (c *Cylinder) Advance(timeIndex int) error {
	v, err := c.velocity.ValueAt(timeIndex)
	if err != nil {
		return err
	}
	dt, err := c.timeDelta.ValueAt(timeIndex)
	if err != nil {
		return err
	}

	omega := v / c.radius
	accel := func(t float64) (float64, error) {
		a, err := c.acceleration.ModulatedAccelerationAt(timeIndex, t)
		if err != nil {
			return 0, err
		}
		return a / c.radius, nil
	}

	theta, _, err := c.integrator.Step(c.angle, omega, dt, accel)
	if err != nil {
		return err
	}
	c.angle = dynamo.NormalizeAngle(theta)
	return nil
}

// GetParams returns the body's parameters for display.
func (c *Cylinder) GetParams() map[string]float64 {
	return map[string]float64{
		"radius": c.radius,
		"angle":  c.angle,
		"steps":  float64(c.Steps()),
	}
}
