package demand

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

const (
	// recentWindow is how many of the newest delta samples enter the
	// weighted average
	recentWindow = 14

	// forecastDays is the projection horizon
	forecastDays = 30

	// weeklyAmplitude scales the sinusoidal weekly oscillation applied
	// to the projection, as a fraction of the average
	weeklyAmplitude = 0.2

	// defaultDailyDemand is the static-table fallback for products no
	// keyword matches
	defaultDailyDemand = 100
)

// categoryDemand maps a product-name keyword to a typical daily demand.
// Matching is a best-effort substring heuristic with fixed precedence:
// the first matching keyword wins.
type categoryDemand struct {
	keyword string
	daily   float64
}

var staticDemandTable = []categoryDemand{
	{"varilla", 150},
	{"rebar", 150},
	{"viga", 80},
	{"beam", 80},
	{"plancha", 100},
	{"plate", 100},
	{"ángulo", 60},
	{"angulo", 60},
	{"angle", 60},
	{"tubo", 90},
	{"tube", 90},
}

// Estimator produces near-term demand signals from historical stock
// deltas, degrading to a named static fallback when no usable history
// exists
type Estimator struct {
	history contracts.HistoryProvider
	logger  *logger.Logger
}

// NewEstimator creates a new demand estimator. history may be nil, in
// which case every estimate uses the static table.
func NewEstimator(history contracts.HistoryProvider, log *logger.Logger) *Estimator {
	return &Estimator{
		history: history,
		logger:  log,
	}
}

// Estimate returns a demand signal for the product over the lookback
// window. It never fails: absence of data degrades to the static
// per-category table, and the returned signal names which basis was
// used.
func (e *Estimator) Estimate(ctx context.Context, product string, windowDays int) contracts.DemandSignal {
	if windowDays <= 0 {
		windowDays = 90
	}

	if e.history == nil {
		return e.staticEstimate(product)
	}

	feed := e.history.StockHistory(ctx, product, windowDays)
	if !feed.Available {
		e.logger.WithFields(map[string]interface{}{
			"product": product,
			"reason":  feed.Reason,
		}).Debug("Stock history unavailable, using static demand table")
		return e.staticEstimate(product)
	}

	deltas := stockDeltas(feed.Data)
	if len(deltas) == 0 {
		// A single reading carries no demand information
		return e.staticEstimate(product)
	}

	avg := weightedAverage(tail(deltas, recentWindow))
	forecast := project(avg)

	total := 0.0
	for _, v := range forecast {
		total += v
	}

	return contracts.DemandSignal{
		Product:       product,
		DailyDemand:   avg,
		Projected30D:  total,
		DailyForecast: forecast,
		Basis:         contracts.BasisHistory,
	}
}

// staticEstimate is the explicit fallback path: category inferred by
// substring match on the product name, projected linearly
func (e *Estimator) staticEstimate(product string) contracts.DemandSignal {
	daily := lookupStaticDemand(product)

	forecast := make([]float64, forecastDays)
	for i := range forecast {
		forecast[i] = daily
	}

	return contracts.DemandSignal{
		Product:       product,
		DailyDemand:   daily,
		Projected30D:  daily * forecastDays,
		DailyForecast: forecast,
		Basis:         contracts.BasisStaticTable,
	}
}

// lookupStaticDemand returns the first matching keyword's daily demand
func lookupStaticDemand(product string) float64 {
	name := strings.ToLower(product)
	for _, entry := range staticDemandTable {
		if strings.Contains(name, entry.keyword) {
			return entry.daily
		}
	}
	return defaultDailyDemand
}

// stockDeltas computes the absolute day-over-day stock changes,
// oldest first
func stockDeltas(samples []contracts.InventorySample) []float64 {
	if len(samples) < 2 {
		return nil
	}

	sorted := make([]contracts.InventorySample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	deltas := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		deltas = append(deltas, math.Abs(sorted[i].Stock-sorted[i-1].Stock))
	}
	return deltas
}

// tail returns the last n elements
func tail(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

// weightedAverage averages with linearly increasing weights from 0.5 to
// 1.5, so the newest sample weighs up to 3x the oldest
func weightedAverage(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return values[0]
	}

	step := 1.0 / float64(n-1) // weights span 0.5 .. 1.5
	var sum, weightSum float64
	for i, v := range values {
		w := 0.5 + step*float64(i)
		sum += v * w
		weightSum += w
	}
	return sum / weightSum
}

// project builds the 30-day forecast: the average plus a weekly
// sinusoidal oscillation, floored at zero
func project(avg float64) []float64 {
	forecast := make([]float64, forecastDays)
	for i := range forecast {
		oscillation := math.Sin(float64(i)/7) * (avg * weeklyAmplitude)
		forecast[i] = math.Max(0, avg+oscillation)
	}
	return forecast
}
