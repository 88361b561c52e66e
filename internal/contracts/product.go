package contracts

import "time"

// Product is one inventory line as reported by the inventory source.
// Refreshed on each poll; carries no identity beyond the source's.
type Product struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	CurrentStock float64 `json:"current_stock"`
	MinimumStock float64 `json:"minimum_stock"`
}

// BelowMinimum reports whether the product is already under its
// minimum threshold before any projected demand is considered
func (p Product) BelowMinimum() bool {
	return p.CurrentStock < p.MinimumStock
}

// InventorySample is one historical stock reading for a product
type InventorySample struct {
	Date  time.Time `json:"date"`
	Stock float64   `json:"stock"`
}

// DemandBasis names the data path a demand estimate came from
type DemandBasis string

const (
	// BasisHistory means the estimate was computed from historical
	// stock deltas
	BasisHistory DemandBasis = "HISTORY"
	// BasisStaticTable is the explicit fallback used when no usable
	// history exists; the per-category static table supplied the
	// daily figure
	BasisStaticTable DemandBasis = "STATIC_TABLE"
)

// DemandSignal is a near-term demand estimate for one product
type DemandSignal struct {
	Product       string      `json:"product"`
	DailyDemand   float64     `json:"daily_demand"`
	Projected30D  float64     `json:"projected_30d"`
	DailyForecast []float64   `json:"daily_forecast,omitempty"`
	Basis         DemandBasis `json:"basis"`
}

// ReorderPoint is the output of the reorder-point calculator
type ReorderPoint struct {
	Product          string  `json:"product"`
	DailyDemand      float64 `json:"daily_demand"`
	LeadTimeDays     int     `json:"lead_time_days"`
	LeadTimeDemand   float64 `json:"lead_time_demand"`
	SafetyStock      float64 `json:"safety_stock"`
	SafetyStockPct   float64 `json:"safety_stock_pct"`
	Point            float64 `json:"point"`
}
