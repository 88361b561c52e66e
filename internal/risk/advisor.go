package risk

import "github.com/nvaldez/steelbrain/internal/contracts"

// actionTable maps a severity tier to its procurement recommendation.
// Stock adjustment is a multiplier over the normal order quantity.
var actionTable = map[contracts.Severity]contracts.RiskAction{
	contracts.SeverityCritical: {
		Action:             "Buy urgently - secure 6 months of stock",
		StockAdjustment:    1.8,
		DiversifySuppliers: true,
	},
	contracts.SeverityHigh: {
		Action:             "Buy ahead of schedule - 4 months of stock",
		StockAdjustment:    1.5,
		DiversifySuppliers: true,
	},
	contracts.SeverityMedium: {
		Action:             "Buy normally - 3 months of stock",
		StockAdjustment:    1.2,
		DiversifySuppliers: false,
	},
	contracts.SeverityLow: {
		Action:             "Hold - monitor the market",
		StockAdjustment:    1.0,
		DiversifySuppliers: false,
	},
}

// actionFor returns the recommendation for a severity tier
func actionFor(severity contracts.Severity) contracts.RiskAction {
	if action, ok := actionTable[severity]; ok {
		return action
	}
	return actionTable[contracts.SeverityMedium]
}
