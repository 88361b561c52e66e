package oracle

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Destinations is the fixed delivery city list
var Destinations = []string{"Quito", "Guayaquil", "Cuenca", "Machala", "Esmeraldas"}

// financingOdds is the simulated chance treasury approves financing
const financingOdds = 0.75

// corridorOpenOdds is the simulated chance an inland corridor is open
const corridorOpenOdds = 0.5

// Simulated implements all three oracles with a seedable RNG. It
// reproduces the distributions the pipeline was demoed with; every
// answer is synthetic.
type Simulated struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated oracle set. seed 0 uses the clock.
func NewSimulated(seed int64) *Simulated {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulated{rng: rand.New(rand.NewSource(seed))}
}

// NewSimulatedSet bundles one Simulated instance as a full oracle Set
func NewSimulatedSet(seed int64) Set {
	s := NewSimulated(seed)
	return Set{Credit: s, Roads: s, Destinations: s}
}

// FinancingAvailable approves with 75% probability
func (s *Simulated) FinancingAvailable(_ context.Context, _ string, _ float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < financingOdds
}

// CorridorOpen reports open with 50% probability
func (s *Simulated) CorridorOpen(_ context.Context, _ string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < corridorOpenOdds
}

// Destination picks uniformly from the fixed city list
func (s *Simulated) Destination(_ context.Context, _ string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Destinations[s.rng.Intn(len(Destinations))]
}
