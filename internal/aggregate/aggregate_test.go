package aggregate

import (
	"cmp"
	"errors"
	"testing"

	gocmp "github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type item struct {
	size  string
	price decimal.Decimal
}

func price(it item) decimal.Decimal { return it.price }
func size(it item) string           { return it.size }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var decimalEqual = gocmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestGroupBy_DiscoveryOrder(t *testing.T) {
	items := []item{
		{"M", d("10.00")},
		{"L", d("5.00")},
		{"M", d("20.00")},
		{"S", d("1.00")},
	}
	g := GroupBy(items, size)

	require.Equal(t, 3, g.Len())
	require.Equal(t, []string{"M", "L", "S"}, g.Keys())

	m, ok := g.Get("M")
	require.True(t, ok)
	require.Len(t, m, 2)
	requireDecimal(t, "10.00", m[0].price)
	requireDecimal(t, "20.00", m[1].price)

	_, ok = g.Get("XL")
	require.False(t, ok)
}

func TestGroupBy_Empty(t *testing.T) {
	g := GroupBy([]item(nil), size)
	require.Equal(t, 0, g.Len())
	require.Empty(t, g.Keys())
	for range g.All() {
		t.Fatal("empty grouping yielded a group")
	}
}

func TestGroupBy_GetReturnsCopy(t *testing.T) {
	g := GroupBy([]item{{"M", d("1")}}, size)
	m, _ := g.Get("M")
	m[0].price = d("99")
	again, _ := g.Get("M")
	requireDecimal(t, "1", again[0].price)
}

func TestAccumulator(t *testing.T) {
	var acc Accumulator
	for _, v := range []string{"20.00", "10.00", "30.00"} {
		acc.Add(d(v))
	}
	require.Equal(t, 3, acc.Count())

	s, err := acc.Finalize()
	require.NoError(t, err)
	require.Equal(t, 3, s.Count)
	requireDecimal(t, "10.00", s.Min)
	requireDecimal(t, "30.00", s.Max)
	requireDecimal(t, "60.00", s.Sum)
	requireDecimal(t, "20.00", s.Average)
}

func TestAccumulator_NegativeFirstValue(t *testing.T) {
	var acc Accumulator
	acc.Add(d("-3"))
	acc.Add(d("-7"))
	s, err := acc.Finalize()
	require.NoError(t, err)
	requireDecimal(t, "-7", s.Min)
	requireDecimal(t, "-3", s.Max)
	requireDecimal(t, "-5", s.Average)
}

func TestAccumulator_AverageRoundsOnce(t *testing.T) {
	s, err := Accumulate([]item{{"A", d("10.00")}, {"A", d("10.00")}, {"A", d("10.01")}}, price)
	require.NoError(t, err)
	requireDecimal(t, "30.01", s.Sum)
	requireDecimal(t, "30.01", s.Average.Mul(decimal.NewFromInt(3)).Round(2))
	require.Equal(t, "10.00", s.Average.StringFixed(2))
}

func TestAccumulator_Empty(t *testing.T) {
	var acc Accumulator
	_, err := acc.Finalize()
	require.ErrorIs(t, err, ErrEmptyGroup)

	var eg *EmptyGroupError
	require.True(t, errors.As(err, &eg))
	require.Nil(t, eg.Key)
}

func TestAccumulator_Reuse(t *testing.T) {
	var acc Accumulator
	acc.Add(d("1"))
	_, err := acc.Finalize()
	require.NoError(t, err)

	acc.Add(d("2"))
	require.Equal(t, 1, acc.Count())
	_, err = acc.Finalize()
	require.ErrorIs(t, err, ErrAccumulatorReused)
}

func TestGroupStats_SizeScenario(t *testing.T) {
	items := []item{
		{"M", d("10.00")},
		{"M", d("20.00")},
		{"L", d("5.00")},
	}
	got, err := GroupStatsOrdered(items, size, price)
	require.NoError(t, err)

	want := []GroupStatistic[string]{
		{Key: "L", Summary: Summary{Count: 1, Min: d("5.00"), Max: d("5.00"), Sum: d("5.00"), Average: d("5.00")}},
		{Key: "M", Summary: Summary{Count: 2, Min: d("10.00"), Max: d("20.00"), Sum: d("30.00"), Average: d("15.00")}},
	}
	if diff := gocmp.Diff(want, got, decimalEqual); diff != "" {
		t.Fatalf("unexpected statistics (-want +got):\n%s", diff)
	}
}

func TestGroupStats_Empty(t *testing.T) {
	got, err := GroupStatsOrdered([]item{}, size, price)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestGroupStats_CustomOrder(t *testing.T) {
	rank := map[string]int{"S": 0, "M": 1, "L": 2, "XL": 3}
	bySize := func(a, b string) int { return cmp.Compare(rank[a], rank[b]) }
	items := []item{{"XL", d("4")}, {"S", d("1")}, {"L", d("3")}, {"M", d("2")}}

	got, err := GroupStats(items, size, price, bySize)
	require.NoError(t, err)
	keys := make([]string, 0, len(got))
	for _, s := range got {
		keys = append(keys, s.Key)
	}
	require.Equal(t, []string{"S", "M", "L", "XL"}, keys)
}

func TestAssemble_Idempotent(t *testing.T) {
	stats := []GroupStatistic[int]{
		{Key: 3, Summary: Summary{Count: 1}},
		{Key: 1, Summary: Summary{Count: 2}},
		{Key: 2, Summary: Summary{Count: 3}},
	}
	once := Assemble(stats, cmp.Compare[int])
	twice := Assemble(once, cmp.Compare[int])
	require.Equal(t, once, twice)
	require.Equal(t, 1, once[0].Key)
	require.Equal(t, 3, once[2].Key)
	require.Equal(t, 3, stats[0].Key, "input must not be reordered")
}

func TestScalarReductions(t *testing.T) {
	items := []item{{"M", d("10.00")}, {"S", d("20.00")}, {"M", d("30.00")}}

	require.Equal(t, 3, Count(items))
	requireDecimal(t, "60.00", Sum(items, price))

	lo, err := Min(items, price)
	require.NoError(t, err)
	requireDecimal(t, "10.00", lo)

	hi, err := Max(items, price)
	require.NoError(t, err)
	requireDecimal(t, "30.00", hi)

	avg, err := Average(items, price)
	require.NoError(t, err)
	requireDecimal(t, "20.00", avg)
}

func TestScalarReductions_EmptyInput(t *testing.T) {
	var none []item

	require.Equal(t, 0, Count(none))
	require.True(t, Sum(none, price).IsZero())

	_, err := Min(none, price)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Max(none, price)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Average(none, price)
	require.ErrorIs(t, err, ErrEmptyInput)
	_, err = Summarize(none, price)
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestCountWhere(t *testing.T) {
	colors := []string{"Red", "Blue", "Red"}
	require.Equal(t, 2, CountWhere(colors, func(c string) bool { return c == "Red" }))
	require.Equal(t, 0, CountWhere(colors, func(c string) bool { return c == "Green" }))
}

func TestFold_CustomSum(t *testing.T) {
	type sale struct {
		qty   int
		price decimal.Decimal
	}
	sales := []sale{{2, d("10.00")}, {3, d("5.00")}}
	total := Fold(sales, decimal.Zero, func(sum decimal.Decimal, s sale) decimal.Decimal {
		return sum.Add(decimal.NewFromInt(int64(s.qty)).Mul(s.price))
	})
	requireDecimal(t, "35.00", total)
}
