// Package bucket implements the angular histogram that turns body angles
// into classification votes.
package bucket

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/rotsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Accumulator holds B buckets centred at 2πi/B. Weights persist across
// steps until Reset; relations are per-step and cleared by UpdateBuckets.
type Accumulator struct {
	centers   []float64
	weights   []float64
	relations map[int][]float64
}

func New(buckets int) (*Accumulator, error) {
	if buckets < 1 {
		return nil, fmt.Errorf("bucket count %d: %w", buckets, dynamo.ErrInvalidParameter)
	}

	centers := make([]float64, buckets)
	for i := range centers {
		centers[i] = dynamo.TwoPi * float64(i) / float64(buckets)
	}

	return &Accumulator{
		centers:   centers,
		weights:   make([]float64, buckets),
		relations: make(map[int][]float64),
	}, nil
}

func (a *Accumulator) Len() int { return len(a.centers) }

// Relation is the proximity of an angle to a bucket centre: exp(-d²) over
// the shorter-arc distance d.
func Relation(angle, center float64) float64 {
	d := dynamo.ArcDistance(angle, center)
	return math.Exp(-d * d)
}

// Interaction is the coupling between two bodies: exp(-d) over the
// shorter-arc distance d. It is intentionally not squared.
func Interaction(a, b float64) float64 {
	return math.Exp(-dynamo.ArcDistance(a, b))
}

// RecordRelation stores body's proximity to every bucket for the current
// step, replacing anything recorded for body earlier in the step.
func (a *Accumulator) RecordRelation(angle float64, body int) {
	rel := make([]float64, len(a.centers))
	for i, c := range a.centers {
		rel[i] = Relation(angle, c)
	}
	a.relations[body] = rel
}

// UpdateBuckets adds, for every unordered pair of bodies in angles, the
// product of their relations weighted by their interaction. Pairs are
// visited in ascending body order so repeated runs are bit-identical.
// Relations are cleared afterwards, also on error.
func (a *Accumulator) UpdateBuckets(angles map[int]float64) error {
	defer clear(a.relations)

	ids := make([]int, 0, len(angles))
	for id := range angles {
		if _, ok := a.relations[id]; !ok {
			return fmt.Errorf("body %d: %w", id, dynamo.ErrMissingRelation)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for i := 0; i < len(ids); i++ {
		ri := a.relations[ids[i]]
		for j := i + 1; j < len(ids); j++ {
			rj := a.relations[ids[j]]
			w := Interaction(angles[ids[i]], angles[ids[j]])
			for b := range a.weights {
				a.weights[b] += ri[b] * rj[b] * w
			}
		}
	}
	return nil
}

// MaxBucket returns the bucket with the largest weight. Ties go to the
// lowest index.
func (a *Accumulator) MaxBucket() int {
	return floats.MaxIdx(a.weights)
}

// Reset zeroes the weights and drops pending relations.
func (a *Accumulator) Reset() {
	clear(a.weights)
	clear(a.relations)
}

// Snapshot returns a copy of the accumulated weights.
func (a *Accumulator) Snapshot() []float64 {
	out := make([]float64, len(a.weights))
	copy(out, a.weights)
	return out
}

// Centers returns a copy of the bucket centre angles.
func (a *Accumulator) Centers() []float64 {
	out := make([]float64, len(a.centers))
	copy(out, a.centers)
	return out
}
