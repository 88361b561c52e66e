package handlers

import (
	"net/http"
	"strconv"

	"github.com/nvaldez/steelbrain/internal/p2_risk"
	"github.com/nvaldez/steelbrain/internal/p3_supply"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// RiskHandler serves the risk gate and the supplier portfolio
// optimizer outside of full pipeline runs
type RiskHandler struct {
	gate      *p2_risk.Gate
	optimizer *p3_supply.Optimizer
	logger    *logger.Logger
}

// NewRiskHandler creates a new risk handler
func NewRiskHandler(gate *p2_risk.Gate, optimizer *p3_supply.Optimizer, log *logger.Logger) *RiskHandler {
	return &RiskHandler{
		gate:      gate,
		optimizer: optimizer,
		logger:    log,
	}
}

// Assessment runs the risk gate on the current scenarios
func (h *RiskHandler) Assessment(w http.ResponseWriter, r *http.Request) {
	report, degradations := h.gate.Check(r.Context())

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"report":       report,
		"degradations": degradations,
	})
}

// Allocation runs the portfolio optimizer for a given budget
func (h *RiskHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("budget")
	budget, err := strconv.ParseFloat(raw, 64)
	if err != nil || budget <= 0 {
		respondError(w, http.StatusBadRequest, "budget must be a positive number")
		return
	}

	allocations := h.optimizer.Allocate(r.Context(), budget)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"budget":      budget,
		"allocations": allocations,
	})
}
