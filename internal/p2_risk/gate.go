// Package p2_risk implements Phase 2 of the decision pipeline: turning
// the currently active market scenarios into a single procurement
// go/no-go decision.
package p2_risk

import (
	"context"
	"fmt"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/internal/risk"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// maxActiveRisks is the cutoff above which procurement waits outright
const maxActiveRisks = 2

// Gate is the Phase-2 risk gate
type Gate struct {
	scenarios contracts.ScenarioProvider
	scorer    *risk.Scorer
	logger    *logger.Logger
}

// New creates a new risk gate
func New(scenarios contracts.ScenarioProvider, scorer *risk.Scorer, log *logger.Logger) *Gate {
	return &Gate{
		scenarios: scenarios,
		scorer:    scorer,
		logger:    log,
	}
}

// Check aggregates active crisis scenarios into recommendations, a
// price-trend signal and the procurement decision. Feed failures
// degrade to a no-risk report; Check never fails.
func (g *Gate) Check(ctx context.Context) (contracts.GateReport, []contracts.Degradation) {
	report := contracts.GateReport{
		Recommendations: []contracts.RiskRecommendation{},
	}
	var degradations []contracts.Degradation

	feed := g.scenarios.Scenarios(ctx)
	if !feed.Available {
		g.logger.WithField("reason", feed.Reason).Warn("Scenario source unavailable, gate degrades to no-risk")
		degradations = append(degradations, contracts.Degradation{
			Stage:  "P2:RiskGate",
			Source: "scenarios",
			Reason: feed.Reason,
		})
	}

	scenarios := feed.Data

	for _, scenario := range scenarios {
		if !scenario.IsActionable() {
			continue
		}
		report.Recommendations = append(report.Recommendations, recommendationFor(scenario))
	}

	report.PriceTrend, report.TrendBasis = priceTrend(scenarios)
	report.Decision = decide(len(report.Recommendations), report.PriceTrend)
	report.Assessment = g.scorer.Score(riskEvents(scenarios))

	g.logger.WithFields(map[string]interface{}{
		"active_risks": len(report.Recommendations),
		"price_trend":  report.PriceTrend,
		"decision":     report.Decision,
		"risk_score":   report.Assessment.TotalScore,
	}).Info("P2 risk gate completed")

	return report, degradations
}

// recommendationFor derives the mitigation for one actionable scenario
func recommendationFor(s contracts.MarketScenario) contracts.RiskRecommendation {
	action := "Monitor the situation and adjust purchases"
	stockMonths := "Normal"

	switch s.Category {
	case contracts.CategoryGeopolitical:
		action = "Diversify suppliers - seek alternate routes"
		stockMonths = "6 months"
	case contracts.CategoryEconomic:
		action = "Buy ahead of the price increase"
		stockMonths = "3 months"
	case contracts.CategoryLogistics:
		action = "Secure inventory - delays likely"
		stockMonths = "4 months"
	}

	return contracts.RiskRecommendation{
		Scenario:    s.Name,
		Category:    s.Category,
		Description: truncate(s.Description, 100),
		Action:      action,
		StockMonths: stockMonths,
		Evidence:    fmt.Sprintf("%d verified news items", s.NewsCount),
	}
}

// priceTrend counts active economic crisis scenarios. A counting
// heuristic over scenario categories, deliberately coarse; not a price
// model.
func priceTrend(scenarios []contracts.MarketScenario) (contracts.PriceTrend, string) {
	economicCrises := 0
	active := 0
	for _, s := range scenarios {
		if s.Name == contracts.ScenarioNoAlerts {
			continue
		}
		active++
		if s.Category == contracts.CategoryEconomic && s.Type == contracts.ImpactCrisis {
			economicCrises++
		}
	}

	basis := fmt.Sprintf("Based on %d detected scenarios", active)

	switch {
	case economicCrises >= 2:
		return contracts.TrendRising, basis
	case economicCrises == 1:
		return contracts.TrendStable, basis
	default:
		return contracts.TrendFalling, basis
	}
}

// decide applies the exact decision cutoffs:
// more than two active risks wait; a rising trend buys urgently; zero
// risks buy normally; anything else buys with caution
func decide(activeRisks int, trend contracts.PriceTrend) contracts.GateDecision {
	switch {
	case activeRisks > maxActiveRisks:
		return contracts.DecisionWait
	case trend == contracts.TrendRising:
		return contracts.DecisionBuyUrgent
	case activeRisks == 0:
		return contracts.DecisionBuyNormal
	default:
		return contracts.DecisionBuyCaution
	}
}

// riskEvents converts the non-sentinel scenarios into scorer input
func riskEvents(scenarios []contracts.MarketScenario) []contracts.RiskEvent {
	events := make([]contracts.RiskEvent, 0, len(scenarios))
	for _, s := range scenarios {
		if s.Name == contracts.ScenarioNoAlerts {
			continue
		}
		events = append(events, contracts.RiskEvent{
			Category:    s.Category,
			Description: s.Name,
			Impact:      s.Type,
			Relevance:   s.Relevance,
		})
	}
	return events
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
