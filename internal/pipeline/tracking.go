package pipeline

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.uber.org/multierr"

	"go-sales-stats/internal/model"
)

const (
	stageIngestion   = "ingestion"
	stageValidation  = "validation"
	stageAggregation = "aggregation"
	stageExport      = "export"

	// rejections beyond this many per stage are counted but not logged
	maxLoggedRejections = 5
)

// Tracker records stage timings and rejected records for one run
type Tracker struct {
	runID    string
	logger   log.Logger
	stages   []model.StageMetrics
	rejected error
	perStage map[string]int
}

// NewTracker creates a tracker whose log lines carry the run id
func NewTracker(runID string, logger log.Logger) *Tracker {
	return &Tracker{
		runID:    runID,
		logger:   log.With(logger, "run", runID),
		perStage: make(map[string]int),
	}
}

// Logger returns the run-scoped logger
func (t *Tracker) Logger() log.Logger {
	return t.logger
}

// StartStage begins timing a stage. The returned func ends it with the number
// of records the stage produced.
func (t *Tracker) StartStage(stage string) func(records int) {
	start := time.Now()
	rejectedBefore := t.perStage[stage]
	level.Debug(t.logger).Log("msg", "▶️ stage started", "stage", stage)

	return func(records int) {
		m := model.StageMetrics{
			Stage:            stage,
			StartTime:        start,
			Duration:         time.Since(start),
			RecordsProcessed: records,
			Rejected:         t.perStage[stage] - rejectedBefore,
		}
		t.stages = append(t.stages, m)
		level.Info(t.logger).Log("msg", "✅ stage completed", "stage", stage,
			"records", records, "rejected", m.Rejected, "duration", m.Duration)
	}
}

// Reject records a dropped input record
func (t *Tracker) Reject(stage string, err error) {
	t.perStage[stage]++
	t.rejected = multierr.Append(t.rejected, fmt.Errorf("%s: %w", stage, err))
	if t.perStage[stage] <= maxLoggedRejections {
		level.Warn(t.logger).Log("msg", "❌ record rejected", "stage", stage, "err", err)
	}
}

// Rejected returns every rejection in the order it was recorded
func (t *Tracker) Rejected() []error {
	return multierr.Errors(t.rejected)
}

// Stages returns the metrics of completed stages
func (t *Tracker) Stages() []model.StageMetrics {
	return slices.Clone(t.stages)
}
