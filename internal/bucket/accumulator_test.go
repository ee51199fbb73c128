package bucket

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/san-kum/rotsim/internal/dynamo"
)

func TestNew(t *testing.T) {
	g := NewWithT(t)

	a, err := New(4)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(a.Len()).To(Equal(4))

	centers := a.Centers()
	for i, want := range []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2} {
		g.Expect(centers[i]).To(BeNumerically("~", want, 1e-12))
	}

	for _, n := range []int{0, -3} {
		_, err := New(n)
		g.Expect(errors.Is(err, dynamo.ErrInvalidParameter)).To(BeTrue())
	}
}

func TestKernels(t *testing.T) {
	g := NewWithT(t)

	g.Expect(Relation(1, 1)).To(Equal(1.0))
	g.Expect(Relation(0, math.Pi)).To(BeNumerically("~", math.Exp(-math.Pi*math.Pi), 1e-12))
	// wrapping keeps the near side of zero close
	g.Expect(Relation(dynamo.TwoPi-0.1, 0)).To(BeNumerically("~", math.Exp(-0.01), 1e-12))

	g.Expect(Interaction(2, 2)).To(Equal(1.0))
	g.Expect(Interaction(0.5, 1.5)).To(BeNumerically("~", math.Exp(-1), 1e-12))
	g.Expect(Interaction(0.1, dynamo.TwoPi-0.1)).To(BeNumerically("~", math.Exp(-0.2), 1e-12))
}

func TestMaxBucketAfterReset(t *testing.T) {
	g := NewWithT(t)

	a, _ := New(6)
	g.Expect(a.MaxBucket()).To(Equal(0))

	a.RecordRelation(math.Pi, 0)
	a.RecordRelation(math.Pi, 1)
	g.Expect(a.UpdateBuckets(map[int]float64{0: math.Pi, 1: math.Pi})).To(Succeed())
	g.Expect(a.MaxBucket()).To(Equal(3))

	a.Reset()
	g.Expect(a.MaxBucket()).To(Equal(0))
	g.Expect(a.Snapshot()).To(Equal(make([]float64, 6)))
}

func TestUpdateBuckets_PairWeights(t *testing.T) {
	g := NewWithT(t)

	a, _ := New(4)
	angles := map[int]float64{0: 0.2, 1: 1.4, 2: 4.0}
	for id, th := range angles {
		a.RecordRelation(th, id)
	}
	g.Expect(a.UpdateBuckets(angles)).To(Succeed())

	centers := a.Centers()
	want := make([]float64, 4)
	pairs := [][2]int{{0, 1}, {0, 2}, {1, 2}}
	for _, p := range pairs {
		w := Interaction(angles[p[0]], angles[p[1]])
		for b, c := range centers {
			want[b] += Relation(angles[p[0]], c) * Relation(angles[p[1]], c) * w
		}
	}

	got := a.Snapshot()
	for b := range want {
		g.Expect(got[b]).To(BeNumerically("~", want[b], 1e-12))
	}
}

func TestUpdateBuckets_PairOrderIndependent(t *testing.T) {
	g := NewWithT(t)
	rng := rand.New(rand.NewSource(3))

	n := 8
	angles := make(map[int]float64, n)
	for i := 0; i < n; i++ {
		angles[i] = rng.Float64() * dynamo.TwoPi
	}

	a, _ := New(12)
	for id, th := range angles {
		a.RecordRelation(th, id)
	}
	g.Expect(a.UpdateBuckets(angles)).To(Succeed())
	got := a.Snapshot()

	// accumulate the same pairs in a shuffled order
	type pair struct{ i, j int }
	var pairs []pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, pair{i, j})
		}
	}
	rng.Shuffle(len(pairs), func(x, y int) { pairs[x], pairs[y] = pairs[y], pairs[x] })

	centers := a.Centers()
	want := make([]float64, len(centers))
	for _, p := range pairs {
		w := Interaction(angles[p.j], angles[p.i])
		for b, c := range centers {
			want[b] += Relation(angles[p.j], c) * Relation(angles[p.i], c) * w
		}
	}

	for b := range want {
		g.Expect(got[b]).To(BeNumerically("~", want[b], 1e-12))
	}
}

func TestUpdateBuckets_Deterministic(t *testing.T) {
	g := NewWithT(t)
	angles := map[int]float64{0: 0.3, 1: 2.1, 2: 2.2, 3: 5.9, 4: 1.0}

	run := func() []float64 {
		a, _ := New(7)
		for step := 0; step < 20; step++ {
			for id, th := range angles {
				a.RecordRelation(th+float64(step)*0.1, id)
			}
			shifted := make(map[int]float64, len(angles))
			for id, th := range angles {
				shifted[id] = th + float64(step)*0.1
			}
			g.Expect(a.UpdateBuckets(shifted)).To(Succeed())
		}
		return a.Snapshot()
	}

	first := run()
	for i := 0; i < 5; i++ {
		g.Expect(run()).To(Equal(first))
	}
}

func TestUpdateBuckets_ClearsRelations(t *testing.T) {
	g := NewWithT(t)

	a, _ := New(4)
	a.RecordRelation(0, 0)
	a.RecordRelation(0, 1)
	g.Expect(a.UpdateBuckets(map[int]float64{0: 0, 1: 0})).To(Succeed())

	err := a.UpdateBuckets(map[int]float64{0: 0, 1: 0})
	g.Expect(errors.Is(err, dynamo.ErrMissingRelation)).To(BeTrue())
}

func TestUpdateBuckets_MissingRelationLeavesWeights(t *testing.T) {
	g := NewWithT(t)

	a, _ := New(4)
	a.RecordRelation(1, 0)
	a.RecordRelation(1, 1)
	g.Expect(a.UpdateBuckets(map[int]float64{0: 1, 1: 1})).To(Succeed())
	before := a.Snapshot()

	a.RecordRelation(2, 0)
	err := a.UpdateBuckets(map[int]float64{0: 2, 5: 2})
	g.Expect(errors.Is(err, dynamo.ErrMissingRelation)).To(BeTrue())
	g.Expect(a.Snapshot()).To(Equal(before))
}

func TestUpdateBuckets_SingleBodyNoVotes(t *testing.T) {
	g := NewWithT(t)

	a, _ := New(4)
	a.RecordRelation(math.Pi, 0)
	g.Expect(a.UpdateBuckets(map[int]float64{0: math.Pi})).To(Succeed())
	g.Expect(a.Snapshot()).To(Equal(make([]float64, 4)))
}

func TestSnapshotIsCopy(t *testing.T) {
	g := NewWithT(t)

	a, _ := New(3)
	snap := a.Snapshot()
	snap[0] = 42
	g.Expect(a.Snapshot()[0]).To(Equal(0.0))

	a.RecordRelation(0, 0)
	a.RecordRelation(0, 1)
	g.Expect(a.UpdateBuckets(map[int]float64{0: 0, 1: 0})).To(Succeed())
	g.Expect(snap[1]).To(Equal(0.0))
}

func BenchmarkUpdateBuckets(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	a, _ := New(12)
	angles := make(map[int]float64, 10)
	for i := 0; i < 10; i++ {
		angles[i] = rng.Float64() * dynamo.TwoPi
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for id, th := range angles {
			a.RecordRelation(th, id)
		}
		_ = a.UpdateBuckets(angles)
	}
}
