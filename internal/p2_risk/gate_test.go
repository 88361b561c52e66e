package p2_risk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/internal/risk"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

type stubScenarios struct {
	feed contracts.Feed[[]contracts.MarketScenario]
}

func (s stubScenarios) Scenarios(_ context.Context) contracts.Feed[[]contracts.MarketScenario] {
	return s.feed
}

func newGate(scenarios []contracts.MarketScenario) *Gate {
	return New(
		stubScenarios{feed: contracts.Available(scenarios)},
		risk.NewScorer(logger.NewNop()),
		logger.NewNop(),
	)
}

func crisis(name string, category contracts.RiskCategory) contracts.MarketScenario {
	return contracts.MarketScenario{
		Name:      name,
		Category:  category,
		Type:      contracts.ImpactCrisis,
		Relevance: contracts.RelevanceHigh,
		NewsCount: 3,
	}
}

func TestCheck_NoScenariosBuysNormal(t *testing.T) {
	report, degradations := newGate(nil).Check(context.Background())

	assert.Empty(t, degradations)
	assert.Empty(t, report.Recommendations)
	assert.Equal(t, contracts.TrendFalling, report.PriceTrend)
	assert.Equal(t, contracts.DecisionBuyNormal, report.Decision)
	assert.Equal(t, contracts.SeverityLow, report.Assessment.Severity)
}

func TestCheck_SentinelIgnored(t *testing.T) {
	scenarios := []contracts.MarketScenario{
		{Name: contracts.ScenarioNoAlerts, Type: contracts.ImpactCrisis, Relevance: contracts.RelevanceHigh},
	}

	report, _ := newGate(scenarios).Check(context.Background())

	assert.Empty(t, report.Recommendations)
	assert.Equal(t, contracts.DecisionBuyNormal, report.Decision)
}

func TestCheck_TooManyRisksWaits(t *testing.T) {
	scenarios := []contracts.MarketScenario{
		crisis("Strait closure", contracts.CategoryGeopolitical),
		crisis("Port strike", contracts.CategoryLogistics),
		crisis("Currency shock", contracts.CategoryEconomic),
	}

	report, _ := newGate(scenarios).Check(context.Background())

	require.Len(t, report.Recommendations, 3)
	assert.Equal(t, contracts.DecisionWait, report.Decision)
}

func TestCheck_RisingTrendBuysUrgent(t *testing.T) {
	scenarios := []contracts.MarketScenario{
		crisis("Iron ore rally", contracts.CategoryEconomic),
		crisis("Energy price spike", contracts.CategoryEconomic),
	}

	report, _ := newGate(scenarios).Check(context.Background())

	assert.Equal(t, contracts.TrendRising, report.PriceTrend)
	assert.Equal(t, contracts.DecisionBuyUrgent, report.Decision)
}

func TestCheck_SomeRiskBuysWithCaution(t *testing.T) {
	scenarios := []contracts.MarketScenario{
		crisis("Canal congestion", contracts.CategoryLogistics),
	}

	report, _ := newGate(scenarios).Check(context.Background())

	assert.Equal(t, contracts.TrendFalling, report.PriceTrend)
	assert.Equal(t, contracts.DecisionBuyCaution, report.Decision)
}

func TestCheck_SingleEconomicCrisisIsStable(t *testing.T) {
	scenarios := []contracts.MarketScenario{
		crisis("Inflation print", contracts.CategoryEconomic),
	}

	report, _ := newGate(scenarios).Check(context.Background())

	assert.Equal(t, contracts.TrendStable, report.PriceTrend)
	assert.Equal(t, contracts.DecisionBuyCaution, report.Decision)
}

func TestCheck_CategoryRecommendations(t *testing.T) {
	tests := []struct {
		category    contracts.RiskCategory
		stockMonths string
	}{
		{contracts.CategoryGeopolitical, "6 months"},
		{contracts.CategoryEconomic, "3 months"},
		{contracts.CategoryLogistics, "4 months"},
		{contracts.CategoryTrade, "Normal"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			report, _ := newGate([]contracts.MarketScenario{crisis("X", tt.category)}).Check(context.Background())

			require.Len(t, report.Recommendations, 1)
			assert.Equal(t, tt.stockMonths, report.Recommendations[0].StockMonths)
			assert.Equal(t, "3 verified news items", report.Recommendations[0].Evidence)
		})
	}
}

func TestCheck_MediumRelevanceNotActionableButScored(t *testing.T) {
	scenarios := []contracts.MarketScenario{
		{
			Name:      "Regional tension",
			Category:  contracts.CategoryGeopolitical,
			Type:      contracts.ImpactCrisis,
			Relevance: contracts.RelevanceMedium,
		},
	}

	report, _ := newGate(scenarios).Check(context.Background())

	// Not actionable for the gate, but still weighs into the score
	assert.Empty(t, report.Recommendations)
	assert.InDelta(t, 60.0, report.Assessment.TotalScore, 1e-9) // 30*2*1
	assert.Equal(t, contracts.SeverityHigh, report.Assessment.Severity)
}

func TestCheck_FeedUnavailableDegrades(t *testing.T) {
	gate := New(
		stubScenarios{feed: contracts.Unavailable[[]contracts.MarketScenario]("scanner offline")},
		risk.NewScorer(logger.NewNop()),
		logger.NewNop(),
	)

	report, degradations := gate.Check(context.Background())

	require.Len(t, degradations, 1)
	assert.Equal(t, "scenarios", degradations[0].Source)
	assert.Equal(t, contracts.DecisionBuyNormal, report.Decision)
	assert.Zero(t, report.Assessment.TotalScore)
}
