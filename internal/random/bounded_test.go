package random

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/rotsim/internal/dynamo"
)

func TestBoundedNormal_Range(t *testing.T) {
	mean, std := 0.5, 0.1
	b, err := NewBoundedNormal(mean, std, 0.1, 252)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	// bounds evaluated in float64 like the generator: 0.5-3*0.1 < 0.2
	lo, hi := mean-3*std, mean+3*std
	hitLow := false
	for i := 0; i < 10000; i++ {
		v := b.Float64()
		if v < lo || v > hi {
			t.Fatalf("sample %d = %v outside [%v, %v]", i, v, lo, hi)
		}
		if v == lo {
			hitLow = true
		}
	}
	if !hitLow {
		t.Error("expected some samples clipped to the lower bound")
	}
}

func TestBoundedNormal_UnitClamp(t *testing.T) {
	b, _ := NewBoundedNormal(0.95, 0.5, 0.5, 1)
	for i := 0; i < 10000; i++ {
		if v := b.Float64(); v < 0 || v > 1 {
			t.Fatalf("sample %d = %f outside [0, 1]", i, v)
		}
	}
}

func TestBoundedNormal_Mean(t *testing.T) {
	b, _ := NewBoundedNormal(0.5, 0.1, 0.05, 99)
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += b.Float64()
	}
	if mean := sum / float64(n); math.Abs(mean-0.5) > 0.01 {
		t.Errorf("expected mean near 0.5, got %f", mean)
	}
}

func TestBoundedNormal_Seeded(t *testing.T) {
	a, _ := NewBoundedNormal(0.5, 0.1, 0.1, 7)
	b, _ := NewBoundedNormal(0.5, 0.1, 0.1, 7)
	c, _ := NewBoundedNormal(0.5, 0.1, 0.1, 8)

	differs := false
	for i := 0; i < 100; i++ {
		x, y, z := a.Float64(), b.Float64(), c.Float64()
		if x != y {
			t.Fatalf("same seed diverged at sample %d", i)
		}
		if x != z {
			differs = true
		}
	}
	if !differs {
		t.Error("different seeds produced identical streams")
	}
}

func TestNewBoundedNormal_InvalidParameters(t *testing.T) {
	tests := []struct {
		name          string
		stdDev, noise float64
	}{
		{"zero noise", 0.1, 0},
		{"negative noise", 0.1, -0.1},
		{"zero stddev", 0, 0.1},
		{"nan noise", 0.1, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBoundedNormal(0.5, tt.stdDev, tt.noise, 1)
			if !errors.Is(err, dynamo.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

type fixedSource []float64

func (f *fixedSource) Float64() float64 {
	v := (*f)[0]
	*f = (*f)[1:]
	return v
}

func TestVector(t *testing.T) {
	src := &fixedSource{0, 0.5, 1}
	v := Vector(src, 0.2, 0.6)

	if v.X != 0.2 || math.Abs(v.Y-0.4) > 1e-12 || math.Abs(v.Z-0.6) > 1e-12 {
		t.Errorf("unexpected vector %v", v)
	}
}
