package aggregate

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// GroupStatsParallel is GroupStats with each group accumulated on its own
// goroutine, at most workers at a time (unbounded when workers <= 0).
// Grouping is sequential and the result is ordered by key, so the output is
// identical to GroupStats for the same input.
func GroupStatsParallel[R any, K comparable](
	ctx context.Context,
	records []R,
	key func(R) K,
	value func(R) decimal.Decimal,
	compare func(a, b K) int,
	workers int,
) ([]GroupStatistic[K], error) {
	groups := GroupBy(records, key)
	stats := make([]GroupStatistic[K], groups.Len())

	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	i := 0
	for k, members := range groups.All() {
		slot := i
		i++
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Accumulate(members, value)
			if err != nil {
				return withGroupKey(k, err)
			}
			stats[slot] = GroupStatistic[K]{Key: k, Summary: s}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return Assemble(stats, compare), nil
}
