package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-kit/log/level"

	"go-sales-stats/internal/model"
	"go-sales-stats/pkg/utils"
)

// ExportManager writes finished reports to files
type ExportManager struct {
	RunID      string
	ExportSpec *model.Export
	output     *utils.OutputManager
}

// NewExportManager creates an export manager writing under spec.Dir/<runID>
func NewExportManager(runID string, spec *model.Export) *ExportManager {
	return &ExportManager{
		RunID:      runID,
		ExportSpec: spec,
		output:     utils.NewOutputManager(spec.Dir),
	}
}

// ExportReport writes the report in the format implied by the file extension
func ExportReport(report *model.Report, spec *model.Export, tracker *Tracker) (*model.ExportResult, error) {
	end := tracker.StartStage(stageExport)
	em := NewExportManager(report.RunID, spec)
	result, err := em.Export(report)
	if err != nil {
		level.Error(tracker.Logger()).Log("msg", "❌ export failed", "file", spec.File, "err", err)
		end(0)
		return nil, err
	}
	end(result.Results)
	return result, nil
}

// Export writes the report and describes what was written
func (em *ExportManager) Export(report *model.Report) (*model.ExportResult, error) {
	fileName := em.ExportSpec.File
	if fileName == "" {
		fileName = "report.txt"
	}
	fileType := em.output.GetFileType(fileName)
	path, err := em.output.GetOutputFilePath(em.RunID, fileName)
	if err != nil {
		return nil, err
	}

	var rows int
	switch fileType {
	case "text":
		rows, err = em.exportToText(path, report)
	case "csv":
		rows, err = em.exportToCSV(path, report)
	case "json":
		rows, err = em.exportToJSON(path, report)
	default:
		return nil, fmt.Errorf("unsupported export file type: %s", fileName)
	}
	if err != nil {
		return nil, err
	}

	return &model.ExportResult{
		Type:       fileType,
		Path:       path,
		Results:    rows,
		ExportedAt: time.Now().UTC(),
	}, nil
}

func (em *ExportManager) exportToText(path string, report *model.Report) (int, error) {
	if err := os.WriteFile(path, []byte(RenderText(report)), 0644); err != nil {
		return 0, fmt.Errorf("failed to write text report: %w", err)
	}
	return len(report.Results), nil
}

// exportToCSV writes one row per scalar result and one row per group
func (em *ExportManager) exportToCSV(path string, report *model.Report) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"operation", "group_by", "group_key", "count", "min", "max", "sum", "average", "value", "no_data"}
	if err := writer.Write(header); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}

	rowCount := 0
	for _, res := range report.Results {
		var rows [][]string
		if len(res.Groups) > 0 {
			for _, g := range res.Groups {
				rows = append(rows, []string{
					res.Operation, res.GroupBy, g.Key, strconv.Itoa(g.Count),
					g.Min.String(), g.Max.String(), g.Sum.String(), g.Average.String(), "", "false",
				})
			}
		} else {
			count, value := "", ""
			if res.Count != nil {
				count = strconv.Itoa(*res.Count)
			}
			if res.Value != nil {
				value = res.Value.String()
			}
			rows = append(rows, []string{
				res.Operation, "", "", count, "", "", "", "", value, strconv.FormatBool(res.NoData),
			})
		}
		for _, row := range rows {
			if err := writer.Write(row); err != nil {
				return rowCount, fmt.Errorf("failed to write row: %w", err)
			}
			rowCount++
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rowCount, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return rowCount, nil
}

func (em *ExportManager) exportToJSON(path string, report *model.Report) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return 0, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return len(report.Results), nil
}
