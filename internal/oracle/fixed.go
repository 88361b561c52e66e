package oracle

import "context"

// Fixed is the deterministic oracle set: financing always available,
// corridors always open, destinations assigned round-robin over the
// city list. Used in tests and in deployments that have not wired real
// adapters yet.
type Fixed struct {
	Financing   bool
	CorridorsOpen bool
	FixedCity   string // when empty, round-robin over Destinations

	next int
}

// NewFixedSet returns a Set with the default deterministic behavior
func NewFixedSet() Set {
	f := &Fixed{Financing: true, CorridorsOpen: true}
	return Set{Credit: f, Roads: f, Destinations: f}
}

func (f *Fixed) FinancingAvailable(_ context.Context, _ string, _ float64) bool {
	return f.Financing
}

func (f *Fixed) CorridorOpen(_ context.Context, _ string) bool {
	return f.CorridorsOpen
}

func (f *Fixed) Destination(_ context.Context, _ string) string {
	if f.FixedCity != "" {
		return f.FixedCity
	}
	city := Destinations[f.next%len(Destinations)]
	f.next++
	return city
}
