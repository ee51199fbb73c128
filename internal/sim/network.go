package sim

import (
	"fmt"

	"github.com/san-kum/rotsim/internal/bucket"
	"github.com/san-kum/rotsim/internal/dynamo"
	"github.com/san-kum/rotsim/internal/models"
)

// minParallelBodies is the smallest chunk of bodies handed to one goroutine.
const minParallelBodies = 4

type Option func(*Network)

// WithParallel integrates bodies concurrently within a step. The bucket
// update stays on the calling goroutine.
func WithParallel(on bool) Option {
	return func(n *Network) { n.parallel = on }
}

// Network owns an ordered set of bodies and the bucket accumulator they
// vote into. A body's position in the set is its id for the accumulator.
// Network is not safe for concurrent use.
type Network struct {
	bodies   []*models.Cylinder
	acc      *bucket.Accumulator
	parallel bool
}

func NewNetwork(buckets int, opts ...Option) (*Network, error) {
	acc, err := bucket.New(buckets)
	if err != nil {
		return nil, err
	}
	n := &Network{acc: acc}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *Network) AddBody(c *models.Cylinder) error {
	if c == nil {
		return fmt.Errorf("nil body: %w", dynamo.ErrInvalidParameter)
	}
	n.bodies = append(n.bodies, c)
	return nil
}

func (n *Network) Len() int     { return len(n.bodies) }
func (n *Network) Buckets() int { return n.acc.Len() }

// Body returns the body at index i.
func (n *Network) Body(i int) *models.Cylinder { return n.bodies[i] }

// Steps is the number of time steps every body can be advanced through.
func (n *Network) Steps() int {
	if len(n.bodies) == 0 {
		return 0
	}
	steps := n.bodies[0].Steps()
	for _, b := range n.bodies[1:] {
		if s := b.Steps(); s < steps {
			steps = s
		}
	}
	return steps
}

// Step advances every body through timeIndex, then lets each pair of
// bodies vote into the buckets using the post-step angles.
func (n *Network) Step(timeIndex int) error {
	if err := n.integrate(timeIndex); err != nil {
		return err
	}

	angles := make(map[int]float64, len(n.bodies))
	for i, b := range n.bodies {
		angle := b.Angle()
		n.acc.RecordRelation(angle, i)
		angles[i] = angle
	}

	if err := n.acc.UpdateBuckets(angles); err != nil {
		return &dynamo.StepError{Step: timeIndex, Body: -1, Wrapped: err}
	}
	return nil
}

func (n *Network) integrate(timeIndex int) error {
	if !n.parallel {
		for i, b := range n.bodies {
			if err := b.Advance(timeIndex); err != nil {
				return &dynamo.StepError{Step: timeIndex, Body: i, Wrapped: err}
			}
		}
		return nil
	}

	errs := make([]error, len(n.bodies))
	dynamo.ParallelFor(len(n.bodies), minParallelBodies, func(start, end int) {
		for i := start; i < end; i++ {
			errs[i] = n.bodies[i].Advance(timeIndex)
		}
	})
	for i, err := range errs {
		if err != nil {
			return &dynamo.StepError{Step: timeIndex, Body: i, Wrapped: err}
		}
	}
	return nil
}

// Classify returns the bucket with the most weight accumulated so far.
func (n *Network) Classify() int {
	return n.acc.MaxBucket()
}

// Reset clears the bucket weights. Body angles are kept.
func (n *Network) Reset() {
	n.acc.Reset()
}

// Snapshot returns a copy of the bucket weights.
func (n *Network) Snapshot() []float64 {
	return n.acc.Snapshot()
}

// Angles returns the current body angles in body order.
func (n *Network) Angles() []float64 {
	out := make([]float64, len(n.bodies))
	for i, b := range n.bodies {
		out[i] = b.Angle()
	}
	return out
}

// Centers returns the bucket centre angles.
func (n *Network) Centers() []float64 {
	return n.acc.Centers()
}
