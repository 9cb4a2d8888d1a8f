package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	flag "github.com/spf13/pflag"

	"go-sales-stats/internal/logging"
	"go-sales-stats/internal/model"
	"go-sales-stats/internal/pipeline"
	"go-sales-stats/internal/store"
)

var argv struct {
	config     string
	products   string
	sales      string
	operations []string
	color      string
	groupBy    string
	workers    int
	export     string
	outputDir  string
	timeout    string
	importDB   string
	list       bool
	verbose    bool
}

func parseArgs() {
	flag.StringVar(&argv.config, "config", "", "report spec file (YAML or JSON)")
	flag.StringVar(&argv.products, "products", "data/products.csv", "products source: .csv, .json, .db file or http(s) URL")
	flag.StringVar(&argv.sales, "sales", "data/sales.csv", "sales order details source: .csv, .json, .db file or http(s) URL")
	flag.StringSliceVarP(&argv.operations, "op", "o", nil, "operation to run, repeatable (see --list)")
	flag.StringVar(&argv.color, "color", model.DefaultColor, "color for count-filtered")
	flag.StringVar(&argv.groupBy, "group-by", model.DefaultGroupBy, "group-stats key: size or color")
	flag.IntVar(&argv.workers, "workers", 0, "accumulate groups concurrently with this many workers")
	flag.StringVar(&argv.export, "export", "", "also write the report to this file (.txt, .csv or .json)")
	flag.StringVar(&argv.outputDir, "output-dir", model.DefaultOutput, "base directory for exported reports")
	flag.StringVar(&argv.timeout, "timeout", "", "report timeout, e.g. 30s")
	flag.StringVar(&argv.importDB, "import-db", "", "load the sources into this sqlite database and exit")
	flag.BoolVar(&argv.list, "list", false, "list operations and exit")
	flag.BoolVarP(&argv.verbose, "verbose", "v", false, "debug logging")
	flag.Parse()
}

func main() {
	parseArgs()
	logger := logging.New(os.Stderr, argv.verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		level.Error(logger).Log("msg", "❌ failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger log.Logger) error {
	if argv.list {
		for _, op := range pipeline.Operations() {
			fmt.Printf("%-18s %s\n", op.Name, op.Description)
		}
		return nil
	}

	spec, err := buildSpec()
	if err != nil {
		return err
	}

	if argv.importDB != "" {
		return importDB(ctx, logger, spec.Sources, argv.importDB)
	}

	report, err := pipeline.Run(ctx, logger, spec)
	if err != nil {
		return err
	}
	fmt.Print(pipeline.RenderText(report))
	if report.Export != nil {
		level.Info(logger).Log("msg", "💾 report exported", "path", report.Export.Path)
	}
	return nil
}

// buildSpec starts from --config and lets explicitly set flags override it
func buildSpec() (model.ReportSpec, error) {
	var spec model.ReportSpec
	if argv.config != "" {
		var err error
		if spec, err = model.LoadReportSpec(argv.config); err != nil {
			return spec, err
		}
	}

	if spec.Sources.Products == nil || flag.CommandLine.Changed("products") {
		spec.Sources.Products = sourceFor(argv.products)
	}
	if spec.Sources.Sales == nil || flag.CommandLine.Changed("sales") {
		spec.Sources.Sales = sourceFor(argv.sales)
	}
	if len(argv.operations) > 0 {
		spec.Operations = argv.operations
	}
	if len(spec.Operations) == 0 {
		spec.Operations = []string{pipeline.OpGroupStats}
	}
	if spec.Color == "" || flag.CommandLine.Changed("color") {
		spec.Color = argv.color
	}
	if spec.GroupBy == "" || flag.CommandLine.Changed("group-by") {
		spec.GroupBy = argv.groupBy
	}
	if flag.CommandLine.Changed("workers") {
		spec.Workers = argv.workers
	}
	if flag.CommandLine.Changed("timeout") {
		spec.Timeout = argv.timeout
	}
	if argv.export != "" {
		spec.Export = &model.Export{File: argv.export, Dir: argv.outputDir}
	}
	return spec, nil
}

// sourceFor guesses the source type from the extension
func sourceFor(pathOrURL string) *model.Source {
	typ := "csv"
	switch strings.ToLower(filepath.Ext(pathOrURL)) {
	case ".json":
		typ = "json"
	case ".db", ".sqlite", ".sqlite3":
		typ = "sqlite"
	}
	return &model.Source{Type: typ, URL: pathOrURL}
}

func importDB(ctx context.Context, logger log.Logger, sources model.Sources, path string) error {
	tracker := pipeline.NewTracker("import", logger)
	ds, err := pipeline.LoadDataset(ctx, sources, true, true, tracker)
	if err != nil {
		return err
	}

	s, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveProducts(ctx, ds.Products); err != nil {
		return err
	}
	if err := s.SaveSales(ctx, ds.Sales); err != nil {
		return err
	}
	level.Info(logger).Log("msg", "💾 import complete", "db", path,
		"products", len(ds.Products), "sales", len(ds.Sales), "rejected", len(tracker.Rejected()))
	return nil
}
