// Package aggregate implements grouped, single-pass statistics over in-memory
// record slices.
//
// Records are partitioned with GroupBy, each group is folded through an
// Accumulator (count, min, max, running sum) and the finalized statistics are
// ordered by key with Assemble. Whole-collection reductions (Count, Sum, Min,
// Max, Average, Fold) treat the input as one implicit group and share the same
// accumulator and decimal semantics.
package aggregate
