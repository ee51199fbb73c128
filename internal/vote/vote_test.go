package vote_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/rotsim/internal/vote"
)

var _ = Describe("RunLengthEncode", func() {
	It("returns no runs for an empty stream", func() {
		Expect(vote.RunLengthEncode(nil)).To(BeEmpty())
		Expect(vote.RunLengthEncode([]int{})).To(BeEmpty())
	})

	It("collapses consecutive values in order", func() {
		runs := vote.RunLengthEncode([]int{3, 3, 3, 7, 7, 3, 1})
		Expect(runs).To(Equal([]vote.Run{
			{Value: 3, Count: 3},
			{Value: 7, Count: 2},
			{Value: 3, Count: 1},
			{Value: 1, Count: 1},
		}))
	})

	It("keeps a single value as one run", func() {
		Expect(vote.RunLengthEncode([]int{5})).To(Equal([]vote.Run{{Value: 5, Count: 1}}))
	})

	It("round-trips through Expand", func() {
		rng := rand.New(rand.NewSource(17))
		for i := 0; i < 200; i++ {
			stream := make([]int, 1+rng.Intn(60))
			for j := range stream {
				stream[j] = rng.Intn(4)
			}
			Expect(vote.Expand(vote.RunLengthEncode(stream))).To(Equal(stream))
		}
	})

	It("never emits adjacent runs with the same value", func() {
		runs := vote.RunLengthEncode([]int{1, 1, 2, 2, 2, 1, 1, 0})
		for i := 1; i < len(runs); i++ {
			Expect(runs[i].Value).NotTo(Equal(runs[i-1].Value))
		}
	})
})

var _ = Describe("Winner", func() {
	runs := []vote.Run{{Value: 3, Count: 5}, {Value: 7, Count: 2}, {Value: 3, Count: 4}}

	It("sums every run of a value", func() {
		w, ok := vote.Winner(runs)
		Expect(ok).To(BeTrue())
		Expect(w).To(Equal(vote.Run{Value: 3, Count: 9}))
	})

	It("prefers total count over the longest single run", func() {
		w, _ := vote.Winner([]vote.Run{
			{Value: 1, Count: 6},
			{Value: 2, Count: 4},
			{Value: 1, Count: 0},
			{Value: 2, Count: 4},
		})
		Expect(w).To(Equal(vote.Run{Value: 2, Count: 8}))
	})

	It("breaks ties towards the lowest value", func() {
		w, _ := vote.Winner([]vote.Run{{Value: 9, Count: 3}, {Value: 4, Count: 3}, {Value: 6, Count: 3}})
		Expect(w.Value).To(Equal(4))
	})

	It("reports no winner for no runs", func() {
		_, ok := vote.Winner(nil)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("TopN", func() {
	runs := []vote.Run{{Value: 3, Count: 5}, {Value: 7, Count: 2}, {Value: 3, Count: 4}}

	It("ranks by aggregate count", func() {
		Expect(vote.TopN(runs, 2)).To(Equal([]vote.Run{{Value: 3, Count: 9}, {Value: 7, Count: 2}}))
	})

	It("truncates to n", func() {
		Expect(vote.TopN(runs, 1)).To(Equal([]vote.Run{{Value: 3, Count: 9}}))
	})

	It("returns every value when fewer than n exist", func() {
		Expect(vote.TopN(runs, 10)).To(HaveLen(2))
	})

	It("returns nothing for n <= 0", func() {
		Expect(vote.TopN(runs, 0)).To(BeEmpty())
		Expect(vote.TopN(runs, -2)).To(BeEmpty())
	})

	It("orders equal totals by value", func() {
		top := vote.TopN([]vote.Run{{Value: 8, Count: 2}, {Value: 1, Count: 5}, {Value: 2, Count: 2}}, 3)
		Expect(top).To(Equal([]vote.Run{{Value: 1, Count: 5}, {Value: 2, Count: 2}, {Value: 8, Count: 2}}))
	})

	It("agrees with Winner on the first entry", func() {
		w, _ := vote.Winner(runs)
		Expect(vote.TopN(runs, vote.Distinct(runs))[0]).To(Equal(w))
	})
})

var _ = Describe("Tally", func() {
	It("aggregates counts per value", func() {
		Expect(vote.Tally([]vote.Run{{Value: 1, Count: 2}, {Value: 2, Count: 1}, {Value: 1, Count: 3}})).
			To(Equal(map[int]int{1: 5, 2: 1}))
	})
})
