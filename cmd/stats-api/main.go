package main

import (
	"context"
	"os"

	"github.com/go-kit/log/level"
	flag "github.com/spf13/pflag"

	"go-sales-stats/internal/api"
	"go-sales-stats/internal/api/handler"
	"go-sales-stats/internal/logging"
	"go-sales-stats/internal/model"
	"go-sales-stats/internal/pipeline"
	"go-sales-stats/pkg/router"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	products := flag.String("products", "data/products.csv", "products source path or URL")
	productsType := flag.String("products-type", "csv", "products source type: csv, json or sqlite")
	sales := flag.String("sales", "data/sales.csv", "sales order details source path or URL")
	salesType := flag.String("sales-type", "csv", "sales source type: csv, json or sqlite")
	verbose := flag.BoolP("verbose", "v", false, "debug logging")
	flag.Parse()

	logger := logging.New(os.Stderr, *verbose)

	// Load the dataset once; every request reads it without copying
	sources := model.Sources{
		Products: &model.Source{Type: *productsType, URL: *products},
		Sales:    &model.Source{Type: *salesType, URL: *sales},
	}
	tracker := pipeline.NewTracker("startup", logger)
	ctx, cancel := context.WithTimeout(context.Background(), model.DefaultTimeout)
	ds, err := pipeline.LoadDataset(ctx, sources, true, true, tracker)
	cancel()
	if err != nil {
		level.Error(logger).Log("msg", "❌ failed to load dataset", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log("msg", "📄 dataset loaded", "products", len(ds.Products), "sales", len(ds.Sales))

	r := router.New(logger)
	api.RegisterRoutes(r, handler.New(logger, ds))

	if err := r.Start(*addr); err != nil {
		level.Error(logger).Log("msg", "❌ server stopped", "err", err)
		os.Exit(1)
	}
}
