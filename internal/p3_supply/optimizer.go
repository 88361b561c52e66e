package p3_supply

import (
	"context"
	"sort"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// maxSupplierShare caps any single supplier's slice of the budget
const maxSupplierShare = 0.4

// defaultOperationalRisk is assumed when no performance history exists
const defaultOperationalRisk = 0.1

// qualityScores maps a quality tier to its numeric score
var qualityScores = map[string]float64{
	"A+": 10,
	"A":  8,
	"B+": 6,
	"B":  4,
}

const defaultQualityScore = 5

// Optimizer diversifies a purchase budget across the supplier
// portfolio, balancing quality against price and total risk
type Optimizer struct {
	suppliers   []contracts.Supplier
	performance contracts.PerformanceProvider
	logger      *logger.Logger
}

// NewOptimizer creates a new portfolio optimizer. performance may be
// nil; the optimizer then assumes the default operational risk.
func NewOptimizer(suppliers []contracts.Supplier, performance contracts.PerformanceProvider, log *logger.Logger) *Optimizer {
	return &Optimizer{
		suppliers:   suppliers,
		performance: performance,
		logger:      log,
	}
}

// Allocate splits the budget across suppliers proportionally to their
// score, capped at 40% per supplier. Supplier score =
// (quality / priceFactor) * (1 - totalRisk).
func (o *Optimizer) Allocate(ctx context.Context, budgetUSD float64) []contracts.SupplierAllocation {
	if budgetUSD <= 0 || len(o.suppliers) == 0 {
		return []contracts.SupplierAllocation{}
	}

	perf := o.performanceIndex(ctx)

	type scored struct {
		supplier     contracts.Supplier
		deliveryDays int
		totalRisk    float64
		score        float64
	}

	candidates := make([]scored, 0, len(o.suppliers))
	var totalScore float64
	for _, supplier := range o.suppliers {
		quality, ok := qualityScores[supplier.Quality]
		if !ok {
			quality = defaultQualityScore
		}

		deliveryDays := supplier.DeliveryDays
		operationalRisk := defaultOperationalRisk
		if record, ok := perf[supplier.Name]; ok {
			// Historical performance adjusts the static reference data
			deliveryDays += int(record.AvgDelayDays)
			operationalRisk = (100 - record.FulfillmentRate) / 100
		}

		totalRisk := supplier.GeopoliticalRisk + operationalRisk
		score := (quality / supplier.PriceFactor) * (1 - totalRisk)

		candidates = append(candidates, scored{
			supplier:     supplier,
			deliveryDays: deliveryDays,
			totalRisk:    totalRisk,
			score:        score,
		})
		totalScore += score
	}

	if totalScore <= 0 {
		return []contracts.SupplierAllocation{}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	allocations := make([]contracts.SupplierAllocation, 0, len(candidates))
	remaining := budgetUSD
	for _, c := range candidates {
		ideal := (c.score / totalScore) * budgetUSD
		cap := budgetUSD * maxSupplierShare

		amount := ideal
		if amount > cap {
			amount = cap
		}
		if amount > remaining {
			amount = remaining
		}
		if amount <= 0 {
			continue
		}

		allocations = append(allocations, contracts.SupplierAllocation{
			Supplier:     c.supplier.Name,
			Budget:       amount,
			BudgetShare:  (amount / budgetUSD) * 100,
			DeliveryDays: c.deliveryDays,
			Quality:      c.supplier.Quality,
			TotalRisk:    c.totalRisk,
			Score:        c.score,
		})
		remaining -= amount
	}

	o.logger.WithFields(map[string]interface{}{
		"budget":      budgetUSD,
		"allocations": len(allocations),
		"unallocated": remaining,
	}).Debug("Supplier portfolio allocated")

	return allocations
}

// performanceIndex fetches and indexes performance records by supplier
// name. The feed is optional: unavailability means no adjustments.
func (o *Optimizer) performanceIndex(ctx context.Context) map[string]contracts.SupplierPerformance {
	index := make(map[string]contracts.SupplierPerformance)
	if o.performance == nil {
		return index
	}

	feed := o.performance.SupplierPerformance(ctx)
	if !feed.Available {
		o.logger.WithField("reason", feed.Reason).Debug("Supplier performance unavailable, using static reference data")
		return index
	}

	for _, record := range feed.Data {
		index[record.Supplier] = record
	}
	return index
}
