package pipeline

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/require"

	"go-sales-stats/internal/model"
)

func testSpec(ops ...string) model.ReportSpec {
	return model.ReportSpec{
		Sources: model.Sources{
			Products: &model.Source{Type: "csv", URL: "testdata/products.csv"},
			Sales:    &model.Source{Type: "csv", URL: "testdata/sales.csv"},
		},
		Operations: ops,
	}
}

func TestRun_AllOperations(t *testing.T) {
	var names []string
	for _, op := range Operations() {
		names = append(names, op.Name)
	}
	report, err := Run(context.Background(), log.NewNopLogger(), testSpec(names...))
	require.NoError(t, err)

	require.NotEmpty(t, report.RunID)
	require.Equal(t, 13, report.Products)
	require.Equal(t, 5, report.Sales)
	require.Len(t, report.Rejected, 3)
	require.Len(t, report.Results, 9)

	byName := map[string]model.OperationResult{}
	for _, r := range report.Results {
		byName[r.Operation] = r
	}
	require.Equal(t, 13, *byName[OpCount].Count)
	require.Equal(t, 3, *byName[OpCountFiltered].Count)
	require.Equal(t, "Total of all List Prices = $4,627.42", byName[OpSum].Text)
	require.Equal(t, byName[OpSum].Text, byName[OpAggregateSum].Text)
	require.Equal(t, "Minimum List Price = $8.99", byName[OpMinimum].Text)
	require.Equal(t, "Maximum List Price = $1,431.50", byName[OpMaximum].Text)
	require.Equal(t, "Average List Price = $355.96", byName[OpAverage].Text)
	require.Equal(t, "Total of all Sales = $2,574.90", byName[OpAggregateCustom].Text)

	groups := byName[OpGroupStats].Groups
	var keys []string
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	require.Equal(t, []string{"", "58", "62", "L", "M", "S", "XL"}, keys)
	require.Equal(t, 4, groups[0].Count)
	require.Equal(t, "28.49", groups[0].Average.StringFixed(2))
	require.Equal(t, "29.75", groups[3].Average.StringFixed(2))

	var stages []string
	for _, s := range report.Stages {
		stages = append(stages, s.Stage)
	}
	require.Equal(t, []string{stageIngestion, stageValidation, stageAggregation}, stages)
	require.Equal(t, 1, report.Stages[0].Rejected)
	require.Equal(t, 2, report.Stages[1].Rejected)
}

func TestRun_ProductsOnlyDoesNotNeedSales(t *testing.T) {
	spec := testSpec(OpCount)
	spec.Sources.Sales = nil
	report, err := Run(context.Background(), log.NewNopLogger(), spec)
	require.NoError(t, err)
	require.Zero(t, report.Sales)
}

func TestRun_Errors(t *testing.T) {
	ctx := context.Background()
	logger := log.NewNopLogger()

	_, err := Run(ctx, logger, testSpec())
	require.ErrorIs(t, err, ErrNoOperations)

	_, err = Run(ctx, logger, testSpec("count", "median"))
	require.ErrorIs(t, err, ErrUnknownOperation)

	spec := testSpec(OpAggregateCustom)
	spec.Sources.Sales = nil
	_, err = Run(ctx, logger, spec)
	require.ErrorIs(t, err, ErrMissingSource)
}

func TestRunDataset_EmptyInput(t *testing.T) {
	report, err := RunDataset(context.Background(), log.NewNopLogger(),
		model.ReportSpec{Operations: []string{OpAverage, OpGroupStats}}, Dataset{})
	require.NoError(t, err)
	require.True(t, report.Results[0].NoData)
	require.Empty(t, report.Results[1].Groups)
	require.Equal(t, "No List Prices Exist.\n\n", RenderText(report))
}

func TestRun_Export(t *testing.T) {
	dir := t.TempDir()
	for _, file := range []string{"report.txt", "report.csv", "report.json"} {
		spec := testSpec(OpCount, OpAverage, OpGroupStats)
		spec.Export = &model.Export{File: file, Dir: dir}

		report, err := Run(context.Background(), log.NewNopLogger(), spec)
		require.NoError(t, err, file)
		require.NotNil(t, report.Export, file)
		require.Equal(t, filepath.Join(dir, report.RunID, file), report.Export.Path)
		require.Equal(t, stageExport, report.Stages[len(report.Stages)-1].Stage)

		data, err := os.ReadFile(report.Export.Path)
		require.NoError(t, err)

		switch file {
		case "report.txt":
			require.Contains(t, string(data), "Total Products = 13\n\nAverage List Price = $355.96\n\nSize:   Count: 4\n")
		case "report.csv":
			f, err := os.Open(report.Export.Path)
			require.NoError(t, err)
			rows, err := csv.NewReader(f).ReadAll()
			f.Close()
			require.NoError(t, err)
			// header + count + average + 7 groups
			require.Len(t, rows, 10)
			require.Equal(t, 9, report.Export.Results)
			require.Equal(t, []string{"count", "", "", "13", "", "", "", "", "", "false"}, rows[1])
			require.Equal(t, "group-stats", rows[3][0])
		case "report.json":
			var decoded model.Report
			require.NoError(t, json.Unmarshal(data, &decoded))
			require.Equal(t, report.RunID, decoded.RunID)
			require.Len(t, decoded.Results, 3)
			require.Len(t, decoded.Results[2].Groups, 7)
			// written before the export stage itself completes
			require.Equal(t, []string{stageIngestion, stageValidation, stageAggregation}, stageNames(decoded.Stages))
			require.Len(t, decoded.Rejected, 2)
			require.Positive(t, decoded.Duration)
		}
	}
}

func TestRun_ExportUnsupported(t *testing.T) {
	spec := testSpec(OpCount)
	spec.Export = &model.Export{File: "report.xlsx", Dir: t.TempDir()}
	_, err := Run(context.Background(), log.NewNopLogger(), spec)
	require.ErrorContains(t, err, "unsupported export file type")
}

func stageNames(stages []model.StageMetrics) []string {
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Stage)
	}
	return names
}
