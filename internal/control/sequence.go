package control

import (
	"fmt"

	"github.com/san-kum/rotsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r3"
)

// Role identifies which quantity a sequence drives.
type Role int

const (
	Velocity Role = iota
	Acceleration
	TimeDelta
)

func (r Role) String() string {
	switch r {
	case Velocity:
		return "velocity"
	case Acceleration:
		return "acceleration"
	case TimeDelta:
		return "time_delta"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Curve holds the three stored control points of a shaping curve. The
// first point of the cubic is supplied per step from the sequence value.
type Curve [3]r3.Vec

// Sequence is a fixed-length, time-indexed run of scalar control values.
// Its length never changes after construction.
type Sequence struct {
	role   Role
	values []float64
	curve  *Curve
}

// NewSequence copies values into a new sequence without a shaping curve.
func NewSequence(role Role, values []float64) (*Sequence, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%s sequence is empty: %w", role, dynamo.ErrInvalidParameter)
	}
	v := make([]float64, len(values))
	copy(v, values)
	return &Sequence{role: role, values: v}, nil
}

// NewAccelerationSequence copies values into a new acceleration sequence
// shaped by curve.
func NewAccelerationSequence(values []float64, curve Curve) (*Sequence, error) {
	s, err := NewSequence(Acceleration, values)
	if err != nil {
		return nil, err
	}
	c := curve
	s.curve = &c
	return s, nil
}

func (s *Sequence) Role() Role { return s.role }
func (s *Sequence) Len() int   { return len(s.values) }

// Curve returns the shaping curve and whether the sequence has one.
func (s *Sequence) Curve() (Curve, bool) {
	if s.curve == nil {
		return Curve{}, false
	}
	return *s.curve, true
}

// ValueAt returns the value for time step index.
func (s *Sequence) ValueAt(index int) (float64, error) {
	if index < 0 || index >= len(s.values) {
		return 0, fmt.Errorf("%s index %d not in [0, %d): %w", s.role, index, len(s.values), dynamo.ErrOutOfRange)
	}
	return s.values[index], nil
}

// Values returns a copy of the sequence.
func (s *Sequence) Values() []float64 {
	v := make([]float64, len(s.values))
	copy(v, s.values)
	return v
}

// ReplaceAll swaps in a new set of values of the same length. On error
// the sequence is left untouched.
func (s *Sequence) ReplaceAll(values []float64) error {
	if len(values) != len(s.values) {
		return fmt.Errorf("%s replace with %d values, have %d: %w", s.role, len(values), len(s.values), dynamo.ErrLengthMismatch)
	}
	v := make([]float64, len(values))
	copy(v, values)
	s.values = v
	return nil
}

// ModulatedAccelerationAt evaluates the shaping curve at sub-step
// parameter t, starting from the value at index lifted to (v, 0, 0), and
// returns the X component.
func (s *Sequence) ModulatedAccelerationAt(index int, t float64) (float64, error) {
	if s.curve == nil {
		return 0, fmt.Errorf("%s sequence: %w", s.role, dynamo.ErrNoCurve)
	}
	v, err := s.ValueAt(index)
	if err != nil {
		return 0, err
	}
	p0 := r3.Vec{X: v}
	return dynamo.CubicBezier(p0, s.curve[0], s.curve[1], s.curve[2], t).X, nil
}
