// Package oracle isolates the external business systems the decision
// pipeline consults but does not own: the treasury's credit check, the
// road-status feed and destination assignment. Production deployments
// plug real adapters behind these interfaces; the Simulated
// implementations stand in for them with the documented distributions,
// and the Fixed implementations give tests determinism.
package oracle

import "context"

// CreditChecker answers whether treasury can finance a purchase.
// The simulated implementation is a stub, not a financial system: a
// real deployment must back this with an actual credit/treasury check.
type CreditChecker interface {
	FinancingAvailable(ctx context.Context, product string, amountUSD float64) bool
}

// RoadStatus reports whether an inland corridor is currently open.
// The simulated implementation stands in for a live road-status feed.
type RoadStatus interface {
	CorridorOpen(ctx context.Context, corridor string) bool
}

// DestinationPlanner assigns the delivery destination for a product.
// The simulated implementation picks from the fixed city list; a real
// one would be a routing optimizer fed by customer orders.
type DestinationPlanner interface {
	Destination(ctx context.Context, product string) string
}

// Set bundles the three oracles the pipeline needs
type Set struct {
	Credit       CreditChecker
	Roads        RoadStatus
	Destinations DestinationPlanner
}
