package model

import (
	"time"

	"github.com/shopspring/decimal"

	"go-sales-stats/internal/aggregate"
)

// OperationResult is the structured outcome of one operation. Exactly one of
// Count, Value or Groups is set unless NoData is true.
type OperationResult struct {
	Operation string                             `json:"operation"`
	Count     *int                               `json:"count,omitempty"`
	Value     *decimal.Decimal                   `json:"value,omitempty"`
	GroupBy   string                             `json:"groupBy,omitempty"`
	Groups    []aggregate.GroupStatistic[string] `json:"groups,omitempty"`
	NoData    bool                               `json:"noData,omitempty"`
	Text      string                             `json:"text"`
}

// StageMetrics records the timing of one run stage
type StageMetrics struct {
	Stage            string        `json:"stage"`
	StartTime        time.Time     `json:"startTime"`
	Duration         time.Duration `json:"duration"`
	RecordsProcessed int           `json:"recordsProcessed"`
	Rejected         int           `json:"rejected"`
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type       string    `json:"type"` // "text", "csv", "json"
	Path       string    `json:"path"`
	Results    int       `json:"results"`
	ExportedAt time.Time `json:"exportedAt"`
}

// Report is everything a run produced
type Report struct {
	RunID     string            `json:"runId"`
	StartedAt time.Time         `json:"startedAt"`
	Duration  time.Duration     `json:"duration"`
	Products  int               `json:"products"`
	Sales     int               `json:"sales"`
	Results   []OperationResult `json:"results"`
	Stages    []StageMetrics    `json:"stages"`
	Rejected  []string          `json:"rejected,omitempty"`
	Export    *ExportResult     `json:"export,omitempty"`
}
