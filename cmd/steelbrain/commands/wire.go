package commands

import (
	"context"

	"github.com/nvaldez/steelbrain/internal/brain"
	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/internal/demand"
	"github.com/nvaldez/steelbrain/internal/feeds"
	"github.com/nvaldez/steelbrain/internal/oracle"
	"github.com/nvaldez/steelbrain/internal/p1_detect"
	"github.com/nvaldez/steelbrain/internal/p2_risk"
	"github.com/nvaldez/steelbrain/internal/p3_supply"
	"github.com/nvaldez/steelbrain/internal/p4_routes"
	"github.com/nvaldez/steelbrain/internal/risk"
	"github.com/nvaldez/steelbrain/internal/store"
	"github.com/nvaldez/steelbrain/pkg/config"
	"github.com/nvaldez/steelbrain/pkg/database"
	"github.com/nvaldez/steelbrain/pkg/httputil"
	"github.com/nvaldez/steelbrain/pkg/logger"
	"github.com/nvaldez/steelbrain/pkg/redis"
)

// components bundles everything a command can wire up
type components struct {
	orchestrator *brain.Orchestrator
	gate         *p2_risk.Gate
	optimizer    *p3_supply.Optimizer
	estimator    *demand.Estimator
	reorder      *demand.ReorderCalculator
	inventory    *store.InventoryRepository
	decisions    *store.DecisionRepository
}

// unavailableStore stands in for the inventory feed when no database
// is configured, so the pipeline degrades instead of crashing
type unavailableStore struct{}

func (unavailableStore) Products(_ context.Context) contracts.Feed[[]contracts.Product] {
	return contracts.Unavailable[[]contracts.Product]("no database configured")
}

// buildOracles selects the oracle implementation from config
func buildOracles(cfg *config.Config) oracle.Set {
	if cfg.Oracle.Mode == "fixed" {
		return oracle.NewFixedSet()
	}
	return oracle.NewSimulatedSet(cfg.Oracle.Seed)
}

// buildComponents wires the full pipeline. db may be nil: the
// inventory and history feeds then report unavailable and results are
// not persisted.
func buildComponents(cfg *config.Config, log *logger.Logger, db *database.DB, redisClient *redis.Client) *components {
	httpClient := httputil.New(log)

	var cache *redis.Cache
	if redisClient != nil && redisClient.Enabled() {
		cache = redis.NewCache(redisClient, "steelbrain")
	}

	portal := feeds.NewPortalClient(httpClient, cache, cfg.Portal, log)
	news := feeds.NewNewsScanner(httpClient, cache, cfg.News, log)

	var (
		inventoryRepo *store.InventoryRepository
		decisionRepo  *store.DecisionRepository
		performance   contracts.PerformanceProvider
		inventory     contracts.InventoryProvider = unavailableStore{}
		history       contracts.HistoryProvider
		sink          contracts.DecisionSink
	)
	if db != nil {
		inventoryRepo = store.NewInventoryRepository(db.Pool, log)
		decisionRepo = store.NewDecisionRepository(db.Pool, log)
		performance = store.NewPerformanceRepository(db.Pool, log)
		inventory = inventoryRepo
		history = inventoryRepo
		sink = decisionRepo
	}

	oracles := buildOracles(cfg)
	suppliers := p3_supply.Catalog()

	detector := p1_detect.New(portal, inventory, p1_detect.Config{WindowDays: cfg.Portal.WindowDays}, log)
	gate := p2_risk.New(news, risk.NewScorer(log), log)
	selector := p3_supply.New(suppliers, oracles.Credit, p3_supply.Config{
		BaseUnitPrice: cfg.Pipeline.BaseUnitPrice,
		MaxDecisions:  cfg.Pipeline.MaxDecisions,
	}, log)
	router := p4_routes.New(oracles.Roads, oracles.Destinations, p4_routes.Config{
		OceanFreightRate: cfg.Pipeline.OceanFreightRate,
		DutyRate:         cfg.Pipeline.DutyRate,
		InlandBaseCost:   cfg.Pipeline.InlandBaseCost,
		DetourSurcharge:  cfg.Pipeline.DetourSurcharge,
		SaleMargin:       cfg.Pipeline.SaleMargin,
		MaxRoutes:        cfg.Pipeline.MaxRoutes,
	}, log)

	estimator := demand.NewEstimator(history, log)

	return &components{
		orchestrator: brain.NewOrchestrator(detector, gate, selector, router, sink, log),
		gate:         gate,
		optimizer:    p3_supply.NewOptimizer(suppliers, performance, log),
		estimator:    estimator,
		reorder:      demand.NewReorderCalculator(estimator),
		inventory:    inventoryRepo,
		decisions:    decisionRepo,
	}
}
