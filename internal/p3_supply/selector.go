// Package p3_supply implements Phase 3 of the decision pipeline:
// assigning a supplier to each critical product and gating the
// purchase on financing, plus the diversification optimizer over the
// supplier portfolio.
package p3_supply

import (
	"context"
	"math"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/internal/oracle"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// DefaultBaseUnitPrice is the placeholder base price per ton before
// the supplier factor. A design assumption, not market data; deployments
// needing real pricing substitute a live feed via config.
const DefaultBaseUnitPrice = 1200.0

// DefaultMaxDecisions bounds how many critical products are priced per
// run, in the order Phase 1 produced them
const DefaultMaxDecisions = 5

// Config holds selector tuning
type Config struct {
	BaseUnitPrice float64
	MaxDecisions  int
}

// Selector is the Phase-3 supplier selector
type Selector struct {
	suppliers []contracts.Supplier
	credit    oracle.CreditChecker
	config    Config
	logger    *logger.Logger
}

// New creates a new selector over the given supplier list
func New(suppliers []contracts.Supplier, credit oracle.CreditChecker, config Config, log *logger.Logger) *Selector {
	if config.BaseUnitPrice <= 0 {
		config.BaseUnitPrice = DefaultBaseUnitPrice
	}
	if config.MaxDecisions <= 0 {
		config.MaxDecisions = DefaultMaxDecisions
	}
	return &Selector{
		suppliers: suppliers,
		credit:    credit,
		config:    config,
		logger:    log,
	}
}

// Select assigns a supplier to each of the first MaxDecisions critical
// products, preserving Phase-1 order. HIGH urgency picks the fastest
// supplier, anything else the cheapest; ties resolve to the first
// occurrence so selection is deterministic for fixed supplier data.
func (s *Selector) Select(ctx context.Context, critical []contracts.CriticalProduct) []contracts.PurchaseDecision {
	if len(s.suppliers) == 0 {
		s.logger.Warn("No suppliers configured, skipping selection")
		return []contracts.PurchaseDecision{}
	}

	limit := len(critical)
	if limit > s.config.MaxDecisions {
		limit = s.config.MaxDecisions
	}

	decisions := make([]contracts.PurchaseDecision, 0, limit)
	for _, product := range critical[:limit] {
		if product.Deficit <= 0 {
			// Zero-deficit products never reach pricing; routing
			// depends on positive quantities
			continue
		}

		supplier := s.pick(product.Urgency)
		unitPrice := round2(supplier.PriceFactor * s.config.BaseUnitPrice)

		financed := s.credit.FinancingAvailable(ctx, product.Product, unitPrice*float64(product.Deficit))
		status := contracts.StatusApprove
		if !financed {
			status = contracts.StatusFinanceAlert
		}

		decisions = append(decisions, contracts.PurchaseDecision{
			Product:            product.Product,
			Quantity:           product.Deficit,
			Supplier:           supplier.Name,
			UnitPrice:          unitPrice,
			DeliveryDays:       supplier.DeliveryDays,
			Quality:            supplier.Quality,
			FinancingAvailable: financed,
			Status:             status,
			Urgency:            product.Urgency,
		})
	}

	s.logger.WithFields(map[string]interface{}{
		"critical_products": len(critical),
		"decisions":         len(decisions),
	}).Info("P3 supplier selection completed")

	return decisions
}

// pick returns the supplier minimizing delivery time for HIGH urgency,
// price factor otherwise. First minimum wins.
func (s *Selector) pick(urgency contracts.Urgency) contracts.Supplier {
	best := s.suppliers[0]
	for _, candidate := range s.suppliers[1:] {
		if urgency == contracts.UrgencyHigh {
			if candidate.DeliveryDays < best.DeliveryDays {
				best = candidate
			}
		} else if candidate.PriceFactor < best.PriceFactor {
			best = candidate
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
