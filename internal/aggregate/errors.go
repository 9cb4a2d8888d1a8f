package aggregate

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGroup is returned when an accumulator is finalized without any values.
	ErrEmptyGroup = errors.New("aggregate: empty group")
	// ErrEmptyInput is returned by whole-collection reductions over zero records.
	ErrEmptyInput = errors.New("aggregate: no data")
	// ErrAccumulatorReused is returned when an accumulator is finalized more than once.
	ErrAccumulatorReused = errors.New("aggregate: accumulator already finalized")
)

// EmptyGroupError reports which group had nothing to finalize. Key is nil when
// the accumulator was used outside of a grouping.
type EmptyGroupError struct {
	Key any
}

func (e *EmptyGroupError) Error() string {
	if e.Key == nil {
		return ErrEmptyGroup.Error()
	}
	return fmt.Sprintf("%s: key %v", ErrEmptyGroup, e.Key)
}

func (e *EmptyGroupError) Unwrap() error { return ErrEmptyGroup }

// withGroupKey attaches the group key to an EmptyGroupError.
func withGroupKey(key any, err error) error {
	var eg *EmptyGroupError
	if errors.As(err, &eg) {
		eg.Key = key
	}
	return err
}
