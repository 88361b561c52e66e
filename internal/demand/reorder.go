package demand

import (
	"context"

	"github.com/nvaldez/steelbrain/internal/contracts"
)

// DefaultSafetyStockPct is the safety stock used when the caller does
// not specify one, as a percent of lead-time demand
const DefaultSafetyStockPct = 20.0

// ReorderCalculator computes automatic reorder points from demand
// estimates
type ReorderCalculator struct {
	estimator *Estimator
}

// NewReorderCalculator creates a new reorder-point calculator
func NewReorderCalculator(estimator *Estimator) *ReorderCalculator {
	return &ReorderCalculator{estimator: estimator}
}

// Calculate returns the reorder point for a product:
// (daily demand * lead time) + safety stock, where safety stock is a
// percentage of the demand during lead time
func (c *ReorderCalculator) Calculate(ctx context.Context, product string, leadTimeDays int, safetyStockPct float64) contracts.ReorderPoint {
	if safetyStockPct <= 0 {
		safetyStockPct = DefaultSafetyStockPct
	}

	signal := c.estimator.Estimate(ctx, product, 90)

	leadTimeDemand := signal.DailyDemand * float64(leadTimeDays)
	safetyStock := leadTimeDemand * (safetyStockPct / 100)

	return contracts.ReorderPoint{
		Product:        product,
		DailyDemand:    signal.DailyDemand,
		LeadTimeDays:   leadTimeDays,
		LeadTimeDemand: leadTimeDemand,
		SafetyStock:    safetyStock,
		SafetyStockPct: safetyStockPct,
		Point:          leadTimeDemand + safetyStock,
	}
}
