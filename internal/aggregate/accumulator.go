package aggregate

import (
	"github.com/shopspring/decimal"
)

// Summary is the finalized result of an accumulator.
type Summary struct {
	Count   int             `json:"count"`
	Min     decimal.Decimal `json:"min"`
	Max     decimal.Decimal `json:"max"`
	Sum     decimal.Decimal `json:"sum"`
	Average decimal.Decimal `json:"average"`
}

// Accumulator folds values into running count, min, max and sum. The zero
// value is ready to use. It belongs to a single group and is finalized once.
type Accumulator struct {
	count     int
	min       decimal.Decimal
	max       decimal.Decimal
	sum       decimal.Decimal
	finalized bool
}

// Add folds v into the running state. Values added after Finalize are ignored.
func (a *Accumulator) Add(v decimal.Decimal) {
	if a.finalized {
		return
	}
	if a.count == 0 || v.LessThan(a.min) {
		a.min = v
	}
	if a.count == 0 || v.GreaterThan(a.max) {
		a.max = v
	}
	a.sum = a.sum.Add(v)
	a.count++
}

// Count returns the number of values folded so far.
func (a *Accumulator) Count() int {
	return a.count
}

// Finalize computes the average from the complete sum and returns the summary.
// The division happens here and only here, so rounding is applied once.
func (a *Accumulator) Finalize() (Summary, error) {
	if a.finalized {
		return Summary{}, ErrAccumulatorReused
	}
	a.finalized = true
	if a.count == 0 {
		return Summary{}, &EmptyGroupError{}
	}
	return Summary{
		Count:   a.count,
		Min:     a.min,
		Max:     a.max,
		Sum:     a.sum,
		Average: a.sum.Div(decimal.NewFromInt(int64(a.count))),
	}, nil
}

// Accumulate folds every member through a fresh accumulator in one pass.
func Accumulate[R any](members []R, value func(R) decimal.Decimal) (Summary, error) {
	var acc Accumulator
	for _, m := range members {
		acc.Add(value(m))
	}
	return acc.Finalize()
}
