package p4_routes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/internal/oracle"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

func decision(product string, unitPrice float64, quantity int) contracts.PurchaseDecision {
	return contracts.PurchaseDecision{Product: product, UnitPrice: unitPrice, Quantity: quantity}
}

func TestRoute_CostBreakdown(t *testing.T) {
	oracles := &oracle.Fixed{CorridorsOpen: true, FixedCity: "Guayaquil"}
	router := New(oracles, oracles, Config{}, logger.NewNop())

	routes := router.Route(context.Background(), []contracts.PurchaseDecision{
		decision("Varilla", 1200, 100),
	})
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, 120000.0, r.FOB)
	assert.Equal(t, 18000.0, r.OceanFreight) // 15% of FOB
	assert.Equal(t, 12000.0, r.Duty)         // 10% of FOB
	assert.Equal(t, 200.0, r.InlandFreight)
	assert.Equal(t, 150200.0, r.LandedCost)
	assert.Equal(t, 187750.0, r.SalePrice) // 25% margin
	assert.True(t, r.CostConsistent())
}

func TestRoute_HighlandCorridorOpen(t *testing.T) {
	for _, city := range []string{"Quito", "Cuenca"} {
		oracles := &oracle.Fixed{CorridorsOpen: true, FixedCity: city}
		router := New(oracles, oracles, Config{}, logger.NewNop())

		routes := router.Route(context.Background(), []contracts.PurchaseDecision{
			decision("Viga", 1000, 10),
		})
		require.Len(t, routes, 1)

		r := routes[0]
		assert.Equal(t, "Quito warehouse", r.Destination)
		assert.Equal(t, contracts.CorridorOpen, r.CorridorState)
		assert.Contains(t, r.Route, "Aloag - Santo Domingo")
		assert.Equal(t, 200.0, r.InlandFreight)
	}
}

func TestRoute_HighlandCorridorClosedAddsSurcharge(t *testing.T) {
	oracles := &oracle.Fixed{CorridorsOpen: false, FixedCity: "Quito"}
	router := New(oracles, oracles, Config{}, logger.NewNop())

	routes := router.Route(context.Background(), []contracts.PurchaseDecision{
		decision("Viga", 1000, 10),
	})
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, contracts.CorridorClosed, r.CorridorState)
	assert.Equal(t, 350.0, r.InlandFreight) // base 200 + detour 150
	assert.Contains(t, r.Route, "Las Mercedes/Calacali")
	assert.True(t, r.CostConsistent())
}

func TestRoute_CoastalCrossDocking(t *testing.T) {
	for _, city := range []string{"Guayaquil", "Machala", "Esmeraldas"} {
		oracles := &oracle.Fixed{CorridorsOpen: false, FixedCity: city}
		router := New(oracles, oracles, Config{}, logger.NewNop())

		routes := router.Route(context.Background(), []contracts.PurchaseDecision{
			decision("Plancha", 1140, 50),
		})
		require.Len(t, routes, 1)

		r := routes[0]
		assert.Equal(t, "Direct to "+city, r.Destination)
		assert.Empty(t, r.CorridorState)
		assert.Contains(t, r.Route, "Cross-docking")
		// coastal routes never pay the detour surcharge
		assert.Equal(t, 200.0, r.InlandFreight)
	}
}

func TestRoute_CapsAtThree(t *testing.T) {
	oracles := &oracle.Fixed{CorridorsOpen: true, FixedCity: "Guayaquil"}
	router := New(oracles, oracles, Config{}, logger.NewNop())

	decisions := []contracts.PurchaseDecision{
		decision("A", 100, 1),
		decision("B", 100, 1),
		decision("C", 100, 1),
		decision("D", 100, 1),
		decision("E", 100, 1),
	}

	routes := router.Route(context.Background(), decisions)
	require.Len(t, routes, 3)
	assert.Equal(t, "A", routes[0].Product)
	assert.Equal(t, "C", routes[2].Product)
}

func TestRoute_CostIdentityHoldsForAnyInput(t *testing.T) {
	oracles := &oracle.Fixed{CorridorsOpen: false}
	router := New(oracles, oracles, Config{}, logger.NewNop())

	decisions := []contracts.PurchaseDecision{
		decision("Varilla", 1380, 137),
		decision("Tubo", 1140, 3),
		decision("Angulo", 1260, 999),
	}

	for _, r := range router.Route(context.Background(), decisions) {
		assert.True(t, r.CostConsistent(), "route for %s", r.Product)
		assert.InDelta(t, r.LandedCost*1.25, r.SalePrice, 0.01)
	}
}

func TestRoute_Empty(t *testing.T) {
	oracles := oracle.NewFixedSet()
	router := New(oracles.Roads, oracles.Destinations, Config{}, logger.NewNop())
	assert.Empty(t, router.Route(context.Background(), nil))
}

func TestRoute_ConfigurableRates(t *testing.T) {
	oracles := &oracle.Fixed{CorridorsOpen: true, FixedCity: "Machala"}
	router := New(oracles, oracles, Config{
		OceanFreightRate: 0.2,
		DutyRate:         0.05,
		InlandBaseCost:   300,
		SaleMargin:       0.5,
	}, logger.NewNop())

	routes := router.Route(context.Background(), []contracts.PurchaseDecision{
		decision("Varilla", 1000, 10),
	})
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, 10000.0, r.FOB)
	assert.Equal(t, 2000.0, r.OceanFreight)
	assert.Equal(t, 500.0, r.Duty)
	assert.Equal(t, 300.0, r.InlandFreight)
	assert.Equal(t, 12800.0, r.LandedCost)
	assert.Equal(t, 19200.0, r.SalePrice)
}
