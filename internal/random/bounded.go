// Package random provides the seeded generators used to synthesise
// control sequences. Every generator owns its source; nothing here reads
// or seeds a process-wide generator.
package random

import (
	"fmt"
	"math"

	"github.com/san-kum/rotsim/internal/dynamo"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r3"
)

// Source yields floats in [0, 1].
type Source interface {
	Float64() float64
}

// BoundedNormal draws normal samples around Mean with spread StdDev, adds
// uniform noise in ±Noise, clips to Mean±3·StdDev and finally to [0, 1].
type BoundedNormal struct {
	Mean   float64
	StdDev float64
	Noise  float64
	rng    *rand.Rand
}

func NewBoundedNormal(mean, stdDev, noise float64, seed int64) (*BoundedNormal, error) {
	if !(stdDev > 0) {
		return nil, fmt.Errorf("standard deviation %v: %w", stdDev, dynamo.ErrInvalidParameter)
	}
	if !(noise > 0) {
		return nil, fmt.Errorf("noise level %v: %w", noise, dynamo.ErrInvalidParameter)
	}
	return &BoundedNormal{
		Mean:   mean,
		StdDev: stdDev,
		Noise:  noise,
		rng:    rand.New(rand.NewSource(uint64(seed))),
	}, nil
}

// Float64 returns the next sample in [0, 1].
func (b *BoundedNormal) Float64() float64 {
	// Box-Muller; 1-u keeps the log argument in (0, 1]
	u1 := 1 - b.rng.Float64()
	u2 := b.rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Sin(2*math.Pi*u2)

	x := b.Mean + b.StdDev*z
	x += (b.rng.Float64()*2 - 1) * b.Noise

	x = clamp(x, b.Mean-3*b.StdDev, b.Mean+3*b.StdDev)
	return clamp(x, 0, 1)
}

// Vector returns a point whose components are drawn from src and scaled
// into [lo, hi).
func Vector(src Source, lo, hi float64) r3.Vec {
	span := hi - lo
	return r3.Vec{
		X: src.Float64()*span + lo,
		Y: src.Float64()*span + lo,
		Z: src.Float64()*span + lo,
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
