package risk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

func TestEventWeight(t *testing.T) {
	tests := []struct {
		name  string
		event contracts.RiskEvent
		want  float64
	}{
		{
			"geopolitical crisis high",
			contracts.RiskEvent{Category: contracts.CategoryGeopolitical, Impact: contracts.ImpactCrisis, Relevance: contracts.RelevanceHigh},
			30 * 2.0 * 1.5, // 90
		},
		{
			"economic crisis medium",
			contracts.RiskEvent{Category: contracts.CategoryEconomic, Impact: contracts.ImpactCrisis, Relevance: contracts.RelevanceMedium},
			20 * 2.0 * 1.0, // 40
		},
		{
			"logistics normal low",
			contracts.RiskEvent{Category: contracts.CategoryLogistics, Impact: contracts.ImpactNormal, Relevance: contracts.RelevanceLow},
			25 * 0.5 * 0.5, // 6.25
		},
		{
			"trade crisis low",
			contracts.RiskEvent{Category: contracts.CategoryTrade, Impact: contracts.ImpactCrisis, Relevance: contracts.RelevanceLow},
			15 * 2.0 * 0.5,
		},
		{
			"unknown category defaults to 10",
			contracts.RiskEvent{Category: "Weather", Impact: contracts.ImpactCrisis, Relevance: contracts.RelevanceHigh},
			10 * 2.0 * 1.5,
		},
		{
			"unknown relevance defaults to 1.0",
			contracts.RiskEvent{Category: contracts.CategoryDemand, Impact: contracts.ImpactNormal, Relevance: "UNKNOWN"},
			10 * 0.5 * 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EventWeight(tt.event), 1e-9)
		})
	}
}

func TestSeverityFor_Boundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  contracts.Severity
	}{
		{0, contracts.SeverityLow},
		{20, contracts.SeverityLow},
		{20.01, contracts.SeverityMedium},
		{50, contracts.SeverityMedium},
		{50.01, contracts.SeverityHigh},
		{100, contracts.SeverityHigh},
		{100.01, contracts.SeverityCritical},
		{500, contracts.SeverityCritical},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%.2f", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityFor(tt.score))
		})
	}
}

func TestScore_EmptyInput(t *testing.T) {
	scorer := NewScorer(logger.NewNop())
	assessment := scorer.Score(nil)

	assert.Zero(t, assessment.TotalScore)
	assert.Equal(t, contracts.SeverityLow, assessment.Severity)
	assert.Empty(t, assessment.TopEvents)
	assert.Equal(t, 1.0, assessment.Action.StockAdjustment)
	assert.False(t, assessment.Action.DiversifySuppliers)
}

func TestScore_AggregatesAndTiers(t *testing.T) {
	scorer := NewScorer(logger.NewNop())

	events := []contracts.RiskEvent{
		{Category: contracts.CategoryGeopolitical, Impact: contracts.ImpactCrisis, Relevance: contracts.RelevanceHigh},  // 90
		{Category: contracts.CategoryEconomic, Impact: contracts.ImpactCrisis, Relevance: contracts.RelevanceMedium},    // 40
	}

	assessment := scorer.Score(events)

	assert.InDelta(t, 130.0, assessment.TotalScore, 1e-9)
	assert.Equal(t, contracts.SeverityCritical, assessment.Severity)
	require.Len(t, assessment.TopEvents, 2)

	// Descending by weight
	assert.Equal(t, contracts.CategoryGeopolitical, assessment.TopEvents[0].Category)
	assert.InDelta(t, 90.0, assessment.TopEvents[0].Weight, 1e-9)
	assert.InDelta(t, 40.0, assessment.TopEvents[1].Weight, 1e-9)

	// Critical tier recommends diversification and the largest buffer
	assert.True(t, assessment.Action.DiversifySuppliers)
	assert.Equal(t, 1.8, assessment.Action.StockAdjustment)
}

func TestScore_TopFiveOnly(t *testing.T) {
	scorer := NewScorer(logger.NewNop())

	events := make([]contracts.RiskEvent, 0, 8)
	categories := []contracts.RiskCategory{
		contracts.CategoryGeopolitical, contracts.CategoryLogistics,
		contracts.CategoryEconomic, contracts.CategoryTrade,
		contracts.CategoryDemand, contracts.CategoryDemand,
		contracts.CategoryTrade, contracts.CategoryLogistics,
	}
	for i, cat := range categories {
		events = append(events, contracts.RiskEvent{
			Category:    cat,
			Description: fmt.Sprintf("event %d", i),
			Impact:      contracts.ImpactNormal,
			Relevance:   contracts.RelevanceMedium,
		})
	}

	assessment := scorer.Score(events)

	require.Len(t, assessment.TopEvents, 5)
	for i := 1; i < len(assessment.TopEvents); i++ {
		assert.GreaterOrEqual(t, assessment.TopEvents[i-1].Weight, assessment.TopEvents[i].Weight)
	}
}

func TestScore_RoundsToTwoDecimals(t *testing.T) {
	scorer := NewScorer(logger.NewNop())

	// 6.25 * 3 = 18.75; stays LOW (  <= 20 )
	events := []contracts.RiskEvent{
		{Category: contracts.CategoryLogistics, Impact: contracts.ImpactNormal, Relevance: contracts.RelevanceLow},
		{Category: contracts.CategoryLogistics, Impact: contracts.ImpactNormal, Relevance: contracts.RelevanceLow},
		{Category: contracts.CategoryLogistics, Impact: contracts.ImpactNormal, Relevance: contracts.RelevanceLow},
	}

	assessment := scorer.Score(events)
	assert.Equal(t, 18.75, assessment.TotalScore)
	assert.Equal(t, contracts.SeverityLow, assessment.Severity)
}
