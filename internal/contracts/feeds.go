package contracts

import "context"

// Feed is the result of an external fetch. It distinguishes "fetched,
// possibly empty" from "source unavailable" without ever aborting the
// pipeline: callers degrade to empty data and record the reason.
type Feed[T any] struct {
	Data      T
	Available bool
	Reason    string
}

// Available wraps successfully fetched data
func Available[T any](data T) Feed[T] {
	return Feed[T]{Data: data, Available: true}
}

// Unavailable marks a failed fetch with its reason. Data is the zero
// value.
func Unavailable[T any](reason string) Feed[T] {
	return Feed[T]{Available: false, Reason: reason}
}

// OpportunityProvider supplies detected projects/tenders
type OpportunityProvider interface {
	Opportunities(ctx context.Context, windowDays int) Feed[[]Opportunity]
}

// InventoryProvider supplies current stock levels per product
type InventoryProvider interface {
	Products(ctx context.Context) Feed[[]Product]
}

// ScenarioProvider supplies currently active classified market scenarios
type ScenarioProvider interface {
	Scenarios(ctx context.Context) Feed[[]MarketScenario]
}

// PerformanceProvider supplies optional supplier performance records
type PerformanceProvider interface {
	SupplierPerformance(ctx context.Context) Feed[[]SupplierPerformance]
}

// HistoryProvider supplies ordered historical stock readings for a
// product, oldest first
type HistoryProvider interface {
	StockHistory(ctx context.Context, product string, windowDays int) Feed[[]InventorySample]
}

// DecisionSink records pipeline results. Writes are fire-and-forget:
// failures are logged, never propagated into the pipeline.
type DecisionSink interface {
	SaveResult(ctx context.Context, result *PipelineResult) error
}
