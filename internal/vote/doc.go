// Package vote reduces a stream of per-step classifications to a final
// decision.
//
// The stream is first run-length encoded ([RunLengthEncode]); every run
// then votes for its value with its length. [Winner] returns the value
// with the largest total and [TopN] ranks the contenders. A value's total
// is the sum over all of its runs, not the length of its longest run.
//
// Ties are resolved towards the lowest value so decisions are reproducible.
package vote
