package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/nvaldez/steelbrain/internal/demand"
	"github.com/nvaldez/steelbrain/internal/feeds"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// MarketHandler serves live market data and per-product demand
// estimates
type MarketHandler struct {
	ticker    *feeds.Ticker
	estimator *demand.Estimator
	reorder   *demand.ReorderCalculator
	logger    *logger.Logger
}

// NewMarketHandler creates a new market handler. ticker may be nil
// when disabled.
func NewMarketHandler(ticker *feeds.Ticker, estimator *demand.Estimator, reorder *demand.ReorderCalculator, log *logger.Logger) *MarketHandler {
	return &MarketHandler{
		ticker:    ticker,
		estimator: estimator,
		reorder:   reorder,
		logger:    log,
	}
}

// Ticks returns the latest steel price ticks
func (h *MarketHandler) Ticks(w http.ResponseWriter, r *http.Request) {
	if h.ticker == nil {
		respondError(w, http.StatusServiceUnavailable, "price ticker not configured")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ticks": h.ticker.Snapshot(),
	})
}

// Demand returns the demand estimate for one product
func (h *MarketHandler) Demand(w http.ResponseWriter, r *http.Request) {
	product := mux.Vars(r)["product"]

	windowDays := 30
	if raw := r.URL.Query().Get("window_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "window_days must be a positive integer")
			return
		}
		windowDays = parsed
	}

	respondJSON(w, http.StatusOK, h.estimator.Estimate(r.Context(), product, windowDays))
}

// Reorder returns the reorder point for one product
func (h *MarketHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	product := mux.Vars(r)["product"]

	leadTime := 45
	if raw := r.URL.Query().Get("lead_time_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "lead_time_days must be a positive integer")
			return
		}
		leadTime = parsed
	}

	safetyPct := 20.0
	if raw := r.URL.Query().Get("safety_stock_pct"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "safety_stock_pct must be non-negative")
			return
		}
		safetyPct = parsed
	}

	respondJSON(w, http.StatusOK, h.reorder.Calculate(r.Context(), product, leadTime, safetyPct))
}
