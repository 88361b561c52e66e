package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nvaldez/steelbrain/internal/brain"
	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/internal/store"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// RunStore is the read side of persisted pipeline runs
type RunStore interface {
	GetLatest(ctx context.Context) (*contracts.PipelineResult, error)
	GetByRunID(ctx context.Context, runID string) (*contracts.PipelineResult, error)
	ListRuns(ctx context.Context, limit int) ([]store.RunSummary, error)
}

// PipelineHandler serves pipeline runs: triggering new ones and
// reading persisted results
type PipelineHandler struct {
	orchestrator *brain.Orchestrator
	runs         RunStore
	logger       *logger.Logger
}

// NewPipelineHandler creates a new pipeline handler. runs may be nil
// when no database is configured; the read endpoints then return 503.
func NewPipelineHandler(orchestrator *brain.Orchestrator, runs RunStore, log *logger.Logger) *PipelineHandler {
	return &PipelineHandler{
		orchestrator: orchestrator,
		runs:         runs,
		logger:       log,
	}
}

type runRequest struct {
	Scenario string `json:"scenario"`
}

// Run triggers a pipeline run synchronously and returns the result
func (h *PipelineHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	result := h.orchestrator.Run(r.Context(), brain.RunConfig{Scenario: req.Scenario})
	respondJSON(w, http.StatusOK, result)
}

// Latest returns the most recent persisted run
func (h *PipelineHandler) Latest(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondError(w, http.StatusServiceUnavailable, "run storage not configured")
		return
	}

	result, err := h.runs.GetLatest(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest run")
		respondError(w, http.StatusInternalServerError, "failed to load latest run")
		return
	}
	if result == nil {
		respondError(w, http.StatusNotFound, "no runs recorded yet")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// List returns run summaries, newest first
func (h *PipelineHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondError(w, http.StatusServiceUnavailable, "run storage not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	summaries, err := h.runs.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list runs")
		respondError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  summaries,
		"count": len(summaries),
	})
}

// Get returns one run by ID
func (h *PipelineHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		respondError(w, http.StatusServiceUnavailable, "run storage not configured")
		return
	}

	runID := mux.Vars(r)["runID"]
	result, err := h.runs.GetByRunID(r.Context(), runID)
	if err != nil {
		h.logger.WithError(err).WithField("run_id", runID).Error("Failed to load run")
		respondError(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	if result == nil {
		respondError(w, http.StatusNotFound, "run not found")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
