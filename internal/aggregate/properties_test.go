package aggregate

import (
	"cmp"
	"context"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func genItem() *rapid.Generator[item] {
	return rapid.Custom(func(t *rapid.T) item {
		return item{
			size:  rapid.SampledFrom([]string{"S", "M", "L", "XL", "44", "48", ""}).Draw(t, "size"),
			price: decimal.New(rapid.Int64Range(-100000, 100000).Draw(t, "cents"), -2),
		}
	})
}

func TestGroupBy_PartitionCompleteness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(genItem()).Draw(t, "items")
		g := GroupBy(items, size)

		total := 0
		seen := map[string]bool{}
		for k, members := range g.All() {
			require.False(t, seen[k], "key %q yielded twice", k)
			seen[k] = true
			require.NotEmpty(t, members)
			for _, m := range members {
				require.Equal(t, k, m.size)
			}
			total += len(members)
		}
		require.Equal(t, len(items), total)

		distinct := map[string]bool{}
		for _, it := range items {
			distinct[it.size] = true
		}
		require.Equal(t, len(distinct), g.Len())
	})
}

func TestAccumulator_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOfN(genItem(), 1, 50).Draw(t, "items")
		s, err := Accumulate(items, price)
		require.NoError(t, err)

		require.Equal(t, len(items), s.Count)
		sum := decimal.Zero
		for _, it := range items {
			require.True(t, s.Min.LessThanOrEqual(it.price))
			require.True(t, s.Max.GreaterThanOrEqual(it.price))
			sum = sum.Add(it.price)
		}
		require.True(t, sum.Equal(s.Sum))
		require.True(t, sum.Div(decimal.NewFromInt(int64(len(items)))).Equal(s.Average))
	})
}

func TestAccumulator_OrderIndependence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOfN(genItem(), 1, 50).Draw(t, "items")
		shuffled := rapid.Permutation(items).Draw(t, "shuffled")

		a, err := Accumulate(items, price)
		require.NoError(t, err)
		b, err := Accumulate(shuffled, price)
		require.NoError(t, err)

		require.Equal(t, a.Count, b.Count)
		require.True(t, a.Min.Equal(b.Min))
		require.True(t, a.Max.Equal(b.Max))
		require.True(t, a.Sum.Equal(b.Sum))
		require.True(t, a.Average.Equal(b.Average))
	})
}

func TestGroupStats_SortedAndParallelAgrees(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(genItem()).Draw(t, "items")
		workers := rapid.IntRange(0, 4).Draw(t, "workers")

		seq, err := GroupStatsOrdered(items, size, price)
		require.NoError(t, err)
		require.True(t, slices.IsSortedFunc(seq, func(a, b GroupStatistic[string]) int {
			return cmp.Compare(a.Key, b.Key)
		}))

		par, err := GroupStatsParallel(context.Background(), items, size, price, cmp.Compare[string], workers)
		require.NoError(t, err)
		require.Len(t, par, len(seq))
		for i := range seq {
			require.Equal(t, seq[i].Key, par[i].Key)
			require.Equal(t, seq[i].Count, par[i].Count)
			require.True(t, seq[i].Sum.Equal(par[i].Sum))
			require.True(t, seq[i].Average.Equal(par[i].Average))
		}
	})
}

func TestGroupStatsParallel_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := GroupStatsParallel(ctx, []item{{"M", d("1")}}, size, price, cmp.Compare[string], 1)
	require.ErrorIs(t, err, context.Canceled)
}
