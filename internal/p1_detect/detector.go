// Package p1_detect implements Phase 1 of the decision pipeline:
// cross-referencing detected external projects against current
// inventory to find products that cannot cover the projected demand.
package p1_detect

import (
	"context"
	"math"
	"strings"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// prioritySectors are listed first when a sector-boom scenario is
// active. Partition is stable: non-matching opportunities keep their
// relative order after the matching ones.
var prioritySectors = map[string]bool{
	"Mining": true,
	"Oil":    true,
}

// Config holds detector tuning
type Config struct {
	WindowDays int // opportunity lookback, default 60
}

// Detector is the Phase-1 opportunity detector
type Detector struct {
	opportunities contracts.OpportunityProvider
	inventory     contracts.InventoryProvider
	config        Config
	logger        *logger.Logger
}

// New creates a new detector
func New(opportunities contracts.OpportunityProvider, inventory contracts.InventoryProvider, config Config, log *logger.Logger) *Detector {
	if config.WindowDays <= 0 {
		config.WindowDays = 60
	}
	return &Detector{
		opportunities: opportunities,
		inventory:     inventory,
		config:        config,
		logger:        log,
	}
}

// Detect returns the active opportunities plus the critical products
// they expose. Feed failures degrade to empty results and are reported
// as degradations; Detect never fails.
func (d *Detector) Detect(ctx context.Context, scenario string) (contracts.DetectionReport, []contracts.Degradation) {
	report := contracts.DetectionReport{
		Opportunities:    []contracts.Opportunity{},
		CriticalProducts: []contracts.CriticalProduct{},
	}
	var degradations []contracts.Degradation

	oppFeed := d.opportunities.Opportunities(ctx, d.config.WindowDays)
	if !oppFeed.Available {
		d.logger.WithField("reason", oppFeed.Reason).Warn("Opportunity source unavailable")
		degradations = append(degradations, contracts.Degradation{
			Stage:  "P1:Detection",
			Source: "opportunities",
			Reason: oppFeed.Reason,
		})
		return report, degradations
	}

	active := applyScenario(oppFeed.Data, scenario)
	report.Opportunities = active

	invFeed := d.inventory.Products(ctx)
	if !invFeed.Available {
		d.logger.WithField("reason", invFeed.Reason).Warn("Inventory source unavailable")
		degradations = append(degradations, contracts.Degradation{
			Stage:  "P1:Detection",
			Source: "inventory",
			Reason: invFeed.Reason,
		})
		return report, degradations
	}
	if len(invFeed.Data) == 0 {
		d.logger.Warn("Inventory is empty, no critical products to detect")
		return report, degradations
	}

	for _, opp := range active {
		report.CriticalProducts = append(report.CriticalProducts, criticalFor(opp, invFeed.Data)...)
	}

	d.logger.WithFields(map[string]interface{}{
		"scenario":          scenario,
		"opportunities":     len(active),
		"critical_products": len(report.CriticalProducts),
	}).Info("P1 detection completed")

	return report, degradations
}

// applyScenario filters or reorders opportunities per the active
// scenario tag
func applyScenario(opportunities []contracts.Opportunity, scenario string) []contracts.Opportunity {
	tag := strings.ToLower(scenario)

	result := opportunities
	if strings.Contains(tag, "crisis") {
		filtered := make([]contracts.Opportunity, 0, len(result))
		for _, opp := range result {
			if opp.Urgency == contracts.UrgencyHigh {
				filtered = append(filtered, opp)
			}
		}
		result = filtered
	}

	if strings.Contains(tag, "boom") || strings.Contains(tag, "mining") {
		result = partitionBySector(result)
	}

	return result
}

// partitionBySector lists priority-sector opportunities first. This is
// a stable partition, not a sort: both halves keep their input order,
// and non-priority opportunities are retained.
func partitionBySector(opportunities []contracts.Opportunity) []contracts.Opportunity {
	priority := make([]contracts.Opportunity, 0, len(opportunities))
	rest := make([]contracts.Opportunity, 0, len(opportunities))

	for _, opp := range opportunities {
		if prioritySectors[opp.Sector] {
			priority = append(priority, opp)
		} else {
			rest = append(rest, opp)
		}
	}

	return append(priority, rest...)
}

// criticalFor computes the critical products one opportunity exposes
func criticalFor(opp contracts.Opportunity, inventory []contracts.Product) []contracts.CriticalProduct {
	if len(opp.DemandedGoods) == 0 {
		return nil
	}

	share := opp.EstimatedVolume / float64(len(opp.DemandedGoods))

	var critical []contracts.CriticalProduct
	for _, demanded := range opp.DemandedGoods {
		product, ok := matchInventory(demanded, inventory)
		if !ok {
			continue
		}

		required := product.MinimumStock + share
		if product.CurrentStock >= required {
			continue
		}

		critical = append(critical, contracts.CriticalProduct{
			Product:         product.Name,
			CurrentStock:    product.CurrentStock,
			MinimumStock:    product.MinimumStock,
			ProjectedDemand: int(math.Floor(share)),
			Deficit:         int(math.Floor(required - product.CurrentStock)),
			Opportunity:     opp.Project,
			Urgency:         opp.Urgency,
		})
	}
	return critical
}

// matchInventory finds the first inventory product whose name contains
// the demanded product's leading keyword token, case-insensitive. A
// best-effort heuristic: first match wins.
func matchInventory(demanded string, inventory []contracts.Product) (contracts.Product, bool) {
	token := leadingToken(demanded)
	if token == "" {
		return contracts.Product{}, false
	}

	token = strings.ToLower(token)
	for _, product := range inventory {
		if strings.Contains(strings.ToLower(product.Name), token) {
			return product, true
		}
	}
	return contracts.Product{}, false
}

// leadingToken returns the first whitespace-separated token
func leadingToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
