package aggregate

import (
	"github.com/shopspring/decimal"
)

// Count returns the number of records.
func Count[R any](records []R) int {
	return len(records)
}

// CountWhere returns the number of records matching pred.
func CountWhere[R any](records []R, pred func(R) bool) int {
	return Fold(records, 0, func(n int, rec R) int {
		if pred(rec) {
			n++
		}
		return n
	})
}

// Fold reduces records to a single value, starting from seed.
func Fold[R, A any](records []R, seed A, step func(A, R) A) A {
	acc := seed
	for _, rec := range records {
		acc = step(acc, rec)
	}
	return acc
}

// Sum returns the exact sum of the selected values. The sum of no records is zero.
func Sum[R any](records []R, value func(R) decimal.Decimal) decimal.Decimal {
	return Fold(records, decimal.Zero, func(sum decimal.Decimal, rec R) decimal.Decimal {
		return sum.Add(value(rec))
	})
}

// Summarize treats records as one implicit group. It returns ErrEmptyInput
// when there are no records.
func Summarize[R any](records []R, value func(R) decimal.Decimal) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrEmptyInput
	}
	return Accumulate(records, value)
}

// Min returns the smallest selected value or ErrEmptyInput.
func Min[R any](records []R, value func(R) decimal.Decimal) (decimal.Decimal, error) {
	s, err := Summarize(records, value)
	return s.Min, err
}

// Max returns the largest selected value or ErrEmptyInput.
func Max[R any](records []R, value func(R) decimal.Decimal) (decimal.Decimal, error) {
	s, err := Summarize(records, value)
	return s.Max, err
}

// Average returns sum/count of the selected values or ErrEmptyInput.
func Average[R any](records []R, value func(R) decimal.Decimal) (decimal.Decimal, error) {
	s, err := Summarize(records, value)
	return s.Average, err
}
