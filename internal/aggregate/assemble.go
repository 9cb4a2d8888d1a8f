package aggregate

import (
	"cmp"

	"github.com/google/btree"
	"github.com/shopspring/decimal"
)

const assembleDegree = 8

// GroupStatistic is the finalized statistic of one group.
type GroupStatistic[K any] struct {
	Key K `json:"key"`
	Summary
}

// Assemble orders statistics ascending by key. Keys are unique per grouping;
// if a key repeats, the later statistic wins. Assemble does not modify stats.
func Assemble[K any](stats []GroupStatistic[K], compare func(a, b K) int) []GroupStatistic[K] {
	tree := btree.NewG(assembleDegree, func(a, b GroupStatistic[K]) bool {
		return compare(a.Key, b.Key) < 0
	})
	for _, s := range stats {
		tree.ReplaceOrInsert(s)
	}
	out := make([]GroupStatistic[K], 0, tree.Len())
	tree.Ascend(func(s GroupStatistic[K]) bool {
		out = append(out, s)
		return true
	})
	return out
}

// GroupStats groups records by key, accumulates each group in one pass and
// returns the statistics ordered by compare.
func GroupStats[R any, K comparable](
	records []R,
	key func(R) K,
	value func(R) decimal.Decimal,
	compare func(a, b K) int,
) ([]GroupStatistic[K], error) {
	groups := GroupBy(records, key)
	stats := make([]GroupStatistic[K], 0, groups.Len())
	for k, members := range groups.All() {
		s, err := Accumulate(members, value)
		if err != nil {
			return nil, withGroupKey(k, err)
		}
		stats = append(stats, GroupStatistic[K]{Key: k, Summary: s})
	}
	return Assemble(stats, compare), nil
}

// GroupStatsOrdered is GroupStats using the natural ordering of K.
func GroupStatsOrdered[R any, K cmp.Ordered](
	records []R,
	key func(R) K,
	value func(R) decimal.Decimal,
) ([]GroupStatistic[K], error) {
	return GroupStats(records, key, value, cmp.Compare[K])
}
