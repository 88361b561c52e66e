package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimulated_Deterministic(t *testing.T) {
	ctx := context.Background()

	a := NewSimulated(42)
	b := NewSimulated(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.FinancingAvailable(ctx, "Rebar", 1000), b.FinancingAvailable(ctx, "Rebar", 1000))
		assert.Equal(t, a.CorridorOpen(ctx, "Aloag - Santo Domingo"), b.CorridorOpen(ctx, "Aloag - Santo Domingo"))
		assert.Equal(t, a.Destination(ctx, "Rebar"), b.Destination(ctx, "Rebar"))
	}
}

func TestSimulated_DestinationFromFixedList(t *testing.T) {
	ctx := context.Background()
	s := NewSimulated(7)

	valid := make(map[string]bool, len(Destinations))
	for _, city := range Destinations {
		valid[city] = true
	}

	for i := 0; i < 100; i++ {
		assert.True(t, valid[s.Destination(ctx, "Rebar")])
	}
}

func TestSimulated_FinancingOddsRoughly75(t *testing.T) {
	ctx := context.Background()
	s := NewSimulated(1)

	approved := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if s.FinancingAvailable(ctx, "Rebar", 1000) {
			approved++
		}
	}

	rate := float64(approved) / n
	assert.InDelta(t, 0.75, rate, 0.02)
}

func TestFixed_RoundRobinDestinations(t *testing.T) {
	ctx := context.Background()
	f := &Fixed{}

	seen := make([]string, 0, len(Destinations))
	for range Destinations {
		seen = append(seen, f.Destination(ctx, "Rebar"))
	}
	assert.Equal(t, Destinations, seen)

	// Wraps around
	assert.Equal(t, Destinations[0], f.Destination(ctx, "Rebar"))
}

func TestFixed_Flags(t *testing.T) {
	ctx := context.Background()

	f := &Fixed{Financing: false, CorridorsOpen: false, FixedCity: "Quito"}
	assert.False(t, f.FinancingAvailable(ctx, "Rebar", 1000))
	assert.False(t, f.CorridorOpen(ctx, "Aloag - Santo Domingo"))
	assert.Equal(t, "Quito", f.Destination(ctx, "Rebar"))
}
