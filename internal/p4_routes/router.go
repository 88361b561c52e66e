// Package p4_routes implements Phase 4 of the decision pipeline:
// landed-cost computation and inland routing for approved purchases.
package p4_routes

import (
	"context"
	"fmt"
	"math"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/internal/oracle"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// Cost model defaults. Ratios come from the import cost structure for
// steel into Ecuador; deployments override them via config.
const (
	DefaultOceanFreightRate = 0.15
	DefaultDutyRate         = 0.10
	DefaultInlandBaseCost   = 200.0
	DefaultDetourSurcharge  = 150.0
	DefaultSaleMargin       = 0.25
	DefaultMaxRoutes        = 3
)

// primaryCorridor is the inland corridor serving the highland
// destinations. Its open/closed state comes from the road oracle.
const primaryCorridor = "Aloag - Santo Domingo"

// highlandCities route through the primary corridor to the Quito
// warehouse; everything else cross-docks at port
var highlandCities = map[string]bool{
	"Quito":  true,
	"Cuenca": true,
}

// Config holds the router's cost model
type Config struct {
	OceanFreightRate float64
	DutyRate         float64
	InlandBaseCost   float64
	DetourSurcharge  float64
	SaleMargin       float64
	MaxRoutes        int
}

func (c *Config) applyDefaults() {
	if c.OceanFreightRate <= 0 {
		c.OceanFreightRate = DefaultOceanFreightRate
	}
	if c.DutyRate <= 0 {
		c.DutyRate = DefaultDutyRate
	}
	if c.InlandBaseCost <= 0 {
		c.InlandBaseCost = DefaultInlandBaseCost
	}
	if c.DetourSurcharge <= 0 {
		c.DetourSurcharge = DefaultDetourSurcharge
	}
	if c.SaleMargin <= 0 {
		c.SaleMargin = DefaultSaleMargin
	}
	if c.MaxRoutes <= 0 {
		c.MaxRoutes = DefaultMaxRoutes
	}
}

// Router is the Phase-4 logistics router
type Router struct {
	roads        oracle.RoadStatus
	destinations oracle.DestinationPlanner
	config       Config
	logger       *logger.Logger
}

// New creates a router backed by the given road-status and
// destination oracles
func New(roads oracle.RoadStatus, destinations oracle.DestinationPlanner, config Config, log *logger.Logger) *Router {
	config.applyDefaults()
	return &Router{
		roads:        roads,
		destinations: destinations,
		config:       config,
		logger:       log,
	}
}

// Route computes the delivery route and landed-cost breakdown for the
// first MaxRoutes decisions. There is no error path: destinations and
// corridor states are always resolvable, and quantity > 0 is
// guaranteed upstream by Phase 3.
func (r *Router) Route(ctx context.Context, decisions []contracts.PurchaseDecision) []contracts.DeliveryRoute {
	limit := len(decisions)
	if limit > r.config.MaxRoutes {
		limit = r.config.MaxRoutes
	}

	routes := make([]contracts.DeliveryRoute, 0, limit)
	for _, decision := range decisions[:limit] {
		city := r.destinations.Destination(ctx, decision.Product)

		var (
			surcharge     float64
			routeDesc     string
			destination   string
			corridorState contracts.CorridorState
		)
		if highlandCities[city] {
			destination = "Quito warehouse"
			if r.roads.CorridorOpen(ctx, primaryCorridor) {
				corridorState = contracts.CorridorOpen
				routeDesc = fmt.Sprintf("Via %s open", primaryCorridor)
			} else {
				corridorState = contracts.CorridorClosed
				surcharge = r.config.DetourSurcharge
				routeDesc = fmt.Sprintf("Via %s closed, detour Las Mercedes/Calacali (+$%.0f)", primaryCorridor, surcharge)
			}
		} else {
			destination = "Direct to " + city
			routeDesc = "Cross-docking: clear customs at port, dispatch direct"
		}

		fob := decision.UnitPrice * float64(decision.Quantity)
		ocean := fob * r.config.OceanFreightRate
		duty := fob * r.config.DutyRate
		inland := r.config.InlandBaseCost + surcharge
		landed := fob + ocean + duty + inland
		sale := landed * (1 + r.config.SaleMargin)

		routes = append(routes, contracts.DeliveryRoute{
			Product:       decision.Product,
			Destination:   destination,
			Route:         routeDesc,
			CorridorState: corridorState,
			FOB:           round2(fob),
			OceanFreight:  round2(ocean),
			Duty:          round2(duty),
			InlandFreight: inland,
			LandedCost:    round2(landed),
			SalePrice:     round2(sale),
		})
	}

	r.logger.WithFields(map[string]interface{}{
		"decisions": len(decisions),
		"routes":    len(routes),
	}).Info("P4 logistics routing completed")

	return routes
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
