package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupplier_Valid(t *testing.T) {
	tests := []struct {
		name     string
		supplier Supplier
		want     bool
	}{
		{"valid", Supplier{Name: "Posco (Korea)", PriceFactor: 1.15, DeliveryDays: 35}, true},
		{"zero price factor", Supplier{Name: "X", PriceFactor: 0, DeliveryDays: 35}, false},
		{"zero delivery", Supplier{Name: "X", PriceFactor: 1.0, DeliveryDays: 0}, false},
		{"negative price factor", Supplier{Name: "X", PriceFactor: -1, DeliveryDays: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.supplier.Valid())
		})
	}
}

func TestMarketScenario_IsActionable(t *testing.T) {
	tests := []struct {
		name     string
		scenario MarketScenario
		want     bool
	}{
		{
			"crisis high relevance",
			MarketScenario{Name: "Red Sea disruption", Category: CategoryLogistics, Type: ImpactCrisis, Relevance: RelevanceHigh},
			true,
		},
		{
			"sentinel excluded even as crisis",
			MarketScenario{Name: ScenarioNoAlerts, Type: ImpactCrisis, Relevance: RelevanceHigh},
			false,
		},
		{
			"normal impact",
			MarketScenario{Name: "Steel demand report", Type: ImpactNormal, Relevance: RelevanceHigh},
			false,
		},
		{
			"medium relevance",
			MarketScenario{Name: "Port congestion", Type: ImpactCrisis, Relevance: RelevanceMedium},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scenario.IsActionable())
		})
	}
}

func TestDeliveryRoute_CostConsistent(t *testing.T) {
	route := DeliveryRoute{
		FOB:           120000,
		OceanFreight:  18000,
		Duty:          12000,
		InlandFreight: 350,
		LandedCost:    150350,
	}
	assert.True(t, route.CostConsistent())

	route.LandedCost = 150000
	assert.False(t, route.CostConsistent())
}

func TestFeed(t *testing.T) {
	ok := Available([]Product{{Name: "Rebar 12mm"}})
	assert.True(t, ok.Available)
	assert.Len(t, ok.Data, 1)
	assert.Empty(t, ok.Reason)

	down := Unavailable[[]Product]("portal timeout")
	assert.False(t, down.Available)
	assert.Nil(t, down.Data)
	assert.Equal(t, "portal timeout", down.Reason)
}

func TestPipelineResult_Empty(t *testing.T) {
	var result PipelineResult
	assert.True(t, result.Empty())

	result.Decisions = []PurchaseDecision{{Product: "Rebar 12mm", Quantity: 10}}
	assert.False(t, result.Empty())
}
