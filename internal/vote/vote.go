package vote

import "sort"

// Run is a maximal stretch of identical consecutive values. Winner and
// TopN reuse it to carry a value with its aggregate count.
type Run struct {
	Value int `json:"value"`
	Count int `json:"count"`
}

// RunLengthEncode collapses stream into runs, preserving order.
func RunLengthEncode(stream []int) []Run {
	runs := make([]Run, 0)
	if len(stream) == 0 {
		return runs
	}

	cur := Run{Value: stream[0], Count: 1}
	for _, v := range stream[1:] {
		if v == cur.Value {
			cur.Count++
			continue
		}
		runs = append(runs, cur)
		cur = Run{Value: v, Count: 1}
	}
	return append(runs, cur)
}

// Expand is the inverse of RunLengthEncode.
func Expand(runs []Run) []int {
	n := 0
	for _, r := range runs {
		if r.Count > 0 {
			n += r.Count
		}
	}
	out := make([]int, 0, n)
	for _, r := range runs {
		for i := 0; i < r.Count; i++ {
			out = append(out, r.Value)
		}
	}
	return out
}

// Tally sums run counts per value.
func Tally(runs []Run) map[int]int {
	totals := make(map[int]int)
	for _, r := range runs {
		totals[r.Value] += r.Count
	}
	return totals
}

// ranked returns every distinct value with its total, highest total
// first and lowest value first among equal totals.
func ranked(runs []Run) []Run {
	totals := Tally(runs)
	out := make([]Run, 0, len(totals))
	for v, c := range totals {
		out = append(out, Run{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Winner returns the value with the largest total count. The boolean is
// false when runs is empty.
func Winner(runs []Run) (Run, bool) {
	r := ranked(runs)
	if len(r) == 0 {
		return Run{}, false
	}
	return r[0], true
}

// TopN returns up to n values ordered by total count.
func TopN(runs []Run, n int) []Run {
	if n <= 0 {
		return []Run{}
	}
	r := ranked(runs)
	if len(r) > n {
		r = r[:n]
	}
	return r
}

// Distinct returns the number of distinct values in runs.
func Distinct(runs []Run) int {
	return len(Tally(runs))
}
