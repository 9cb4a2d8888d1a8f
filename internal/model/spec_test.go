package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadReportSpec_YAML(t *testing.T) {
	path := writeSpec(t, "report.yaml", `
sources:
  products:
    type: csv
    url: data/products.csv
operations: [count, group-stats]
groupBy: color
workers: 4
export:
  file: report.json
timeout: 30s
`)
	spec, err := LoadReportSpec(path)
	require.NoError(t, err)
	require.Equal(t, "csv", spec.Sources.Products.Type)
	require.Nil(t, spec.Sources.Sales)
	require.Equal(t, []string{"count", "group-stats"}, spec.Operations)
	require.Equal(t, "color", spec.GroupBy)
	require.Equal(t, 4, spec.Workers)
	require.Equal(t, 30*time.Second, spec.JobTimeout())

	spec = spec.WithDefaults()
	require.Equal(t, DefaultColor, spec.Color)
	require.Equal(t, "color", spec.GroupBy)
	require.Equal(t, DefaultOutput, spec.Export.Dir)
}

func TestLoadReportSpec_JSON(t *testing.T) {
	path := writeSpec(t, "report.json", `{"sources":{"sales":{"type":"sqlite","url":"stats.db"}},"operations":["aggregate-custom"]}`)
	spec, err := LoadReportSpec(path)
	require.NoError(t, err)
	require.Equal(t, "stats.db", spec.Sources.Sales.URL)
	require.Equal(t, []string{"aggregate-custom"}, spec.Operations)
}

func TestLoadReportSpec_Errors(t *testing.T) {
	_, err := LoadReportSpec(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadReportSpec(writeSpec(t, "bad.yaml", "operations: [count]\nunknownField: 1\n"))
	require.ErrorContains(t, err, "unknownField")
}

func TestWithDefaults_DoesNotMutate(t *testing.T) {
	export := &Export{File: "r.txt"}
	spec := ReportSpec{Export: export}
	got := spec.WithDefaults()
	require.Equal(t, DefaultOutput, got.Export.Dir)
	require.Empty(t, export.Dir)
	require.Equal(t, DefaultGroupBy, got.GroupBy)
}

func TestJobTimeout(t *testing.T) {
	require.Equal(t, DefaultTimeout, ReportSpec{}.JobTimeout())
	require.Equal(t, DefaultTimeout, ReportSpec{Timeout: "soon"}.JobTimeout())
	require.Equal(t, DefaultTimeout, ReportSpec{Timeout: "-1s"}.JobTimeout())
	require.Equal(t, time.Minute, ReportSpec{Timeout: "1m"}.JobTimeout())
}

func TestExtendedPrice(t *testing.T) {
	s := SalesOrderDetail{OrderQty: 3}
	s.UnitPrice = s.UnitPrice.Add(mustDecimal("5.25"))
	require.Equal(t, "15.75", s.ExtendedPrice().StringFixed(2))
}

func mustDecimal(s string) decimal.Decimal { return decimal.RequireFromString(s) }
