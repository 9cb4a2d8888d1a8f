package pipeline

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"go-sales-stats/internal/aggregate"
	"go-sales-stats/internal/model"
)

// Operation names
const (
	OpCount           = "count"
	OpCountFiltered   = "count-filtered"
	OpSum             = "sum"
	OpMinimum         = "minimum"
	OpMaximum         = "maximum"
	OpAverage         = "average"
	OpAggregateSum    = "aggregate-sum"
	OpAggregateCustom = "aggregate-custom"
	OpGroupStats      = "group-stats"
)

const noListPrices = "No List Prices Exist."

var (
	// ErrUnknownOperation is returned for an operation name that is not registered.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnknownGroupBy is returned for a group-by field other than size or color.
	ErrUnknownGroupBy = errors.New("unknown group-by field")
)

// Dataset is the immutable input of a run
type Dataset struct {
	Products []model.Product
	Sales    []model.SalesOrderDetail
}

// Operation is a named query over a dataset
type Operation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	UsesSales   bool   `json:"usesSales"`

	run func(ctx context.Context, ds Dataset, spec model.ReportSpec) (model.OperationResult, error)
}

var operations = []Operation{
	{Name: OpCount, Description: "Total number of products", run: runCount},
	{Name: OpCountFiltered, Description: "Number of products with the requested color", run: runCountFiltered},
	{Name: OpSum, Description: "Sum of all list prices", run: runSum},
	{Name: OpMinimum, Description: "Minimum list price", run: runMinimum},
	{Name: OpMaximum, Description: "Maximum list price", run: runMaximum},
	{Name: OpAverage, Description: "Average list price", run: runAverage},
	{Name: OpAggregateSum, Description: "Sum of all list prices as an explicit fold", run: runAggregateSum},
	{Name: OpAggregateCustom, Description: "Total of all sales: OrderQty * UnitPrice summed over every sales order detail", UsesSales: true, run: runAggregateCustom},
	{Name: OpGroupStats, Description: "Count, min, max and average list price per group", run: runGroupStats},
}

// Operations lists every registered operation in display order
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}

// LookupOperation finds an operation by name
func LookupOperation(name string) (Operation, error) {
	for _, op := range operations {
		if op.Name == strings.ToLower(strings.TrimSpace(name)) {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Execute runs one operation against the dataset
func Execute(ctx context.Context, ds Dataset, spec model.ReportSpec, name string) (model.OperationResult, error) {
	op, err := LookupOperation(name)
	if err != nil {
		return model.OperationResult{}, err
	}
	res, err := op.run(ctx, ds, spec.WithDefaults())
	if err != nil {
		return model.OperationResult{}, fmt.Errorf("operation %s failed: %w", op.Name, err)
	}
	res.Operation = op.Name
	return res, nil
}

func listPrice(p model.Product) decimal.Decimal { return p.ListPrice }

func countResult(n int, text string) model.OperationResult {
	return model.OperationResult{Count: &n, Text: text}
}

func valueResult(v decimal.Decimal, text string) model.OperationResult {
	return model.OperationResult{Value: &v, Text: text}
}

// scalarResult maps an empty-input reduction to an explicit no-data result
func scalarResult(v decimal.Decimal, err error, label string) (model.OperationResult, error) {
	if errors.Is(err, aggregate.ErrEmptyInput) {
		return model.OperationResult{NoData: true, Text: noListPrices}, nil
	}
	if err != nil {
		return model.OperationResult{}, err
	}
	return valueResult(v, fmt.Sprintf("%s = %s", label, FormatCurrency(v))), nil
}

func runCount(_ context.Context, ds Dataset, _ model.ReportSpec) (model.OperationResult, error) {
	n := aggregate.Count(ds.Products)
	return countResult(n, fmt.Sprintf("Total Products = %d", n)), nil
}

func runCountFiltered(_ context.Context, ds Dataset, spec model.ReportSpec) (model.OperationResult, error) {
	n := aggregate.CountWhere(ds.Products, func(p model.Product) bool {
		return p.Color == spec.Color
	})
	return countResult(n, fmt.Sprintf("Total Products with a color of '%s' = %d", spec.Color, n)), nil
}

func runSum(_ context.Context, ds Dataset, _ model.ReportSpec) (model.OperationResult, error) {
	v := aggregate.Sum(ds.Products, listPrice)
	return valueResult(v, "Total of all List Prices = "+FormatCurrency(v)), nil
}

func runMinimum(_ context.Context, ds Dataset, _ model.ReportSpec) (model.OperationResult, error) {
	v, err := aggregate.Min(ds.Products, listPrice)
	return scalarResult(v, err, "Minimum List Price")
}

func runMaximum(_ context.Context, ds Dataset, _ model.ReportSpec) (model.OperationResult, error) {
	v, err := aggregate.Max(ds.Products, listPrice)
	return scalarResult(v, err, "Maximum List Price")
}

func runAverage(_ context.Context, ds Dataset, _ model.ReportSpec) (model.OperationResult, error) {
	v, err := aggregate.Average(ds.Products, listPrice)
	return scalarResult(v, err, "Average List Price")
}

func runAggregateSum(_ context.Context, ds Dataset, _ model.ReportSpec) (model.OperationResult, error) {
	v := aggregate.Fold(ds.Products, decimal.Zero, func(sum decimal.Decimal, p model.Product) decimal.Decimal {
		return sum.Add(p.ListPrice)
	})
	return valueResult(v, "Total of all List Prices = "+FormatCurrency(v)), nil
}

func runAggregateCustom(_ context.Context, ds Dataset, _ model.ReportSpec) (model.OperationResult, error) {
	v := aggregate.Fold(ds.Sales, decimal.Zero, func(sum decimal.Decimal, s model.SalesOrderDetail) decimal.Decimal {
		return sum.Add(s.ExtendedPrice())
	})
	return valueResult(v, "Total of all Sales = "+FormatCurrency(v)), nil
}

// GroupKey returns the key selector for a group-by field name
func GroupKey(field string) (func(model.Product) string, string, error) {
	switch strings.ToLower(field) {
	case "size":
		return func(p model.Product) string { return p.Size }, "Size", nil
	case "color":
		return func(p model.Product) string { return p.Color }, "Color", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownGroupBy, field)
	}
}

// ProductGroupStats groups products by field and computes list price statistics
// per group, ordered by key. workers > 1 accumulates groups concurrently.
func ProductGroupStats(ctx context.Context, products []model.Product, field string, workers int) ([]aggregate.GroupStatistic[string], string, error) {
	key, label, err := GroupKey(field)
	if err != nil {
		return nil, "", err
	}
	var stats []aggregate.GroupStatistic[string]
	if workers > 1 {
		stats, err = aggregate.GroupStatsParallel(ctx, products, key, listPrice, cmp.Compare[string], workers)
	} else {
		stats, err = aggregate.GroupStatsOrdered(products, key, listPrice)
	}
	if err != nil {
		return nil, "", err
	}
	return stats, label, nil
}

func runGroupStats(ctx context.Context, ds Dataset, spec model.ReportSpec) (model.OperationResult, error) {
	stats, label, err := ProductGroupStats(ctx, ds.Products, spec.GroupBy, spec.Workers)
	if err != nil {
		return model.OperationResult{}, err
	}
	return model.OperationResult{
		GroupBy: strings.ToLower(spec.GroupBy),
		Groups:  stats,
		Text:    FormatGroupStats(label, stats),
	}, nil
}
