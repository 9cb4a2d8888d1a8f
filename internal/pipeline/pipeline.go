package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"go-sales-stats/internal/model"
)

var (
	// ErrNoOperations is returned when a spec requests nothing.
	ErrNoOperations = errors.New("at least one operation is required")
	// ErrMissingSource is returned when an operation needs a source the spec does not name.
	ErrMissingSource = errors.New("missing source")
)

// Run loads the spec's sources and executes its operations.
func Run(ctx context.Context, logger log.Logger, spec model.ReportSpec) (*model.Report, error) {
	return run(ctx, logger, spec, nil)
}

// RunDataset executes the spec's operations against an already loaded dataset.
// The spec's sources are ignored.
func RunDataset(ctx context.Context, logger log.Logger, spec model.ReportSpec, ds Dataset) (*model.Report, error) {
	return run(ctx, logger, spec, &ds)
}

func run(ctx context.Context, logger log.Logger, spec model.ReportSpec, preloaded *Dataset) (*model.Report, error) {
	spec = spec.WithDefaults()
	ops, usesProducts, usesSales, err := resolveOperations(spec.Operations)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	tracker := NewTracker(report.RunID, logger)
	level.Info(tracker.Logger()).Log("msg", "🚀 starting report", "operations", len(ops))

	ctx, cancel := context.WithTimeout(ctx, spec.JobTimeout())
	defer cancel()

	var ds Dataset
	if preloaded != nil {
		ds = *preloaded
	} else {
		ds, err = LoadDataset(ctx, spec.Sources, usesProducts, usesSales, tracker)
		if err != nil {
			level.Error(tracker.Logger()).Log("msg", "❌ report failed", "err", err)
			return nil, err
		}
	}
	report.Products = len(ds.Products)
	report.Sales = len(ds.Sales)

	end := tracker.StartStage(stageAggregation)
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("report cancelled: %w", err)
		}
		res, err := Execute(ctx, ds, spec, op.Name)
		if err != nil {
			level.Error(tracker.Logger()).Log("msg", "❌ report failed", "operation", op.Name, "err", err)
			return nil, err
		}
		report.Results = append(report.Results, res)
	}
	end(len(report.Results))

	report.Stages = tracker.Stages()
	for _, err := range tracker.Rejected() {
		report.Rejected = append(report.Rejected, err.Error())
	}
	report.Duration = time.Since(report.StartedAt)

	if spec.Export != nil {
		exported, err := ExportReport(report, spec.Export, tracker)
		if err != nil {
			return nil, err
		}
		report.Export = exported
		report.Stages = tracker.Stages()
		report.Duration = time.Since(report.StartedAt)
	}
	level.Info(tracker.Logger()).Log("msg", "🏁 report completed", "duration", report.Duration)
	return report, nil
}

// LoadDataset ingests and validates the sources the operations need.
func LoadDataset(ctx context.Context, sources model.Sources, products, sales bool, tracker *Tracker) (Dataset, error) {
	var ds Dataset

	end := tracker.StartStage(stageIngestion)
	if products {
		if sources.Products == nil {
			return ds, fmt.Errorf("%w: products", ErrMissingSource)
		}
		p, err := IngestProducts(ctx, *sources.Products, tracker)
		if err != nil {
			return ds, fmt.Errorf("failed to ingest products: %w", err)
		}
		ds.Products = p
	}
	if sales {
		if sources.Sales == nil {
			return ds, fmt.Errorf("%w: sales", ErrMissingSource)
		}
		s, err := IngestSales(ctx, *sources.Sales, tracker)
		if err != nil {
			return ds, fmt.Errorf("failed to ingest sales: %w", err)
		}
		ds.Sales = s
	}
	end(len(ds.Products) + len(ds.Sales))

	end = tracker.StartStage(stageValidation)
	ds.Products = ValidateProducts(ds.Products, tracker)
	ds.Sales = ValidateSales(ds.Sales, tracker)
	end(len(ds.Products) + len(ds.Sales))

	return ds, nil
}

func resolveOperations(names []string) (ops []Operation, usesProducts, usesSales bool, err error) {
	if len(names) == 0 {
		return nil, false, false, ErrNoOperations
	}
	for _, name := range names {
		op, err := LookupOperation(name)
		if err != nil {
			return nil, false, false, err
		}
		if op.UsesSales {
			usesSales = true
		} else {
			usesProducts = true
		}
		ops = append(ops, op)
	}
	return ops, usesProducts, usesSales, nil
}
