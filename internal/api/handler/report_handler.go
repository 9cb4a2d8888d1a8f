package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"go-sales-stats/internal/aggregate"
	"go-sales-stats/internal/model"
	"go-sales-stats/internal/pipeline"
)

// Handler serves reports over the dataset loaded at startup
type Handler struct {
	logger log.Logger
	data   pipeline.Dataset
}

// New creates a handler. data is shared read-only by every request.
func New(logger log.Logger, data pipeline.Dataset) *Handler {
	return &Handler{logger: logger, data: data}
}

// GroupStatsResponse is the body of GET /products/stats
type GroupStatsResponse struct {
	GroupBy string                             `json:"groupBy"`
	Groups  []aggregate.GroupStatistic[string] `json:"groups"`
}

// ListOperations lists the available operations
// @Summary List operations
// @Description Get every operation a report can run
// @Tags reports
// @Produce json
// @Success 200 {array} pipeline.Operation "Available operations"
// @Router /operations [get]
func (h *Handler) ListOperations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pipeline.Operations())
}

// CreateReport runs a report
// @Summary Run a report
// @Description Run the requested operations. Without sources the dataset loaded at startup is used.
// @Tags reports
// @Accept json
// @Produce json
// @Param report body model.ReportSpec true "Report configuration"
// @Success 200 {object} model.Report "Report results"
// @Failure 400 {string} string "Invalid report spec"
// @Failure 500 {string} string "Internal server error"
// @Router /reports [post]
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var spec model.ReportSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	var report *model.Report
	var err error
	if spec.Sources.Products == nil && spec.Sources.Sales == nil {
		report, err = pipeline.RunDataset(r.Context(), h.logger, spec, h.data)
	} else {
		report, err = pipeline.Run(r.Context(), h.logger, spec)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if isClientError(err) {
			status = http.StatusBadRequest
		} else {
			level.Error(h.logger).Log("msg", "❌ report failed", "err", err)
		}
		http.Error(w, err.Error(), status)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ProductStats returns list price statistics per group
// @Summary Product statistics per group
// @Description Count, min, max and average list price per size or color, ordered by key
// @Tags products
// @Produce json
// @Param groupBy query string false "size or color" default(size)
// @Param workers query int false "accumulate groups concurrently with this many workers"
// @Success 200 {object} GroupStatsResponse "Group statistics"
// @Failure 400 {string} string "Invalid query"
// @Router /products/stats [get]
func (h *Handler) ProductStats(w http.ResponseWriter, r *http.Request) {
	groupBy := r.URL.Query().Get("groupBy")
	if groupBy == "" {
		groupBy = model.DefaultGroupBy
	}
	workers := 0
	if v := r.URL.Query().Get("workers"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "workers must be a non-negative integer", http.StatusBadRequest)
			return
		}
		workers = n
	}

	stats, _, err := pipeline.ProductGroupStats(r.Context(), h.data.Products, groupBy, workers)
	if err != nil {
		if isClientError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		level.Error(h.logger).Log("msg", "❌ group stats failed", "err", err)
		http.Error(w, "Failed to compute statistics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, GroupStatsResponse{GroupBy: groupBy, Groups: stats})
}

func isClientError(err error) bool {
	return errors.Is(err, pipeline.ErrNoOperations) ||
		errors.Is(err, pipeline.ErrUnknownOperation) ||
		errors.Is(err, pipeline.ErrUnknownGroupBy) ||
		errors.Is(err, pipeline.ErrMissingSource) ||
		errors.Is(err, pipeline.ErrUnknownSourceType)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
