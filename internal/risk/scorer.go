package risk

import (
	"math"
	"sort"

	"github.com/nvaldez/steelbrain/internal/contracts"
	"github.com/nvaldez/steelbrain/pkg/logger"
)

// Severity thresholds (exclusive lower bounds). Fixed design constants;
// procurement caution levels downstream depend on these exact cutoffs.
const (
	thresholdCritical = 100.0
	thresholdHigh     = 50.0
	thresholdMedium   = 20.0
)

// topEventCount is how many contributing events the assessment reports
const topEventCount = 5

// categoryWeights maps an event category to its base weight. Unknown
// categories fall back to the demand weight.
var categoryWeights = map[contracts.RiskCategory]float64{
	contracts.CategoryGeopolitical: 30,
	contracts.CategoryLogistics:    25,
	contracts.CategoryEconomic:     20,
	contracts.CategoryTrade:        15,
	contracts.CategoryDemand:       10,
}

const defaultCategoryWeight = 10

// relevanceMultipliers scales an event by how strongly it concerns this
// business
var relevanceMultipliers = map[contracts.Relevance]float64{
	contracts.RelevanceHigh:   1.5,
	contracts.RelevanceMedium: 1.0,
	contracts.RelevanceLow:    0.5,
}

const defaultRelevanceMultiplier = 1.0

// Scorer converts classified news events into a risk assessment
type Scorer struct {
	logger *logger.Logger
}

// NewScorer creates a new risk scorer
func NewScorer(log *logger.Logger) *Scorer {
	return &Scorer{logger: log}
}

// Score aggregates the weighted events into a total score, severity
// tier, top contributing events and a recommended action. An empty
// event list short-circuits to score 0 / LOW / no events.
func (s *Scorer) Score(events []contracts.RiskEvent) contracts.RiskAssessment {
	if len(events) == 0 {
		return contracts.RiskAssessment{
			TotalScore: 0,
			Severity:   contracts.SeverityLow,
			TopEvents:  []contracts.RiskEvent{},
			Action:     actionFor(contracts.SeverityLow),
		}
	}

	weighted := make([]contracts.RiskEvent, len(events))
	var total float64
	for i, event := range events {
		event.Weight = EventWeight(event)
		weighted[i] = event
		total += event.Weight
	}
	total = round2(total)

	sort.SliceStable(weighted, func(i, j int) bool {
		return weighted[i].Weight > weighted[j].Weight
	})
	if len(weighted) > topEventCount {
		weighted = weighted[:topEventCount]
	}

	severity := SeverityFor(total)

	s.logger.WithFields(map[string]interface{}{
		"events":   len(events),
		"score":    total,
		"severity": severity,
	}).Debug("Risk score computed")

	return contracts.RiskAssessment{
		TotalScore: total,
		Severity:   severity,
		TopEvents:  weighted,
		Action:     actionFor(severity),
	}
}

// EventWeight computes a single event's weight:
// categoryWeight * impactMultiplier * relevanceMultiplier
func EventWeight(event contracts.RiskEvent) float64 {
	weight, ok := categoryWeights[event.Category]
	if !ok {
		weight = defaultCategoryWeight
	}

	if event.Impact == contracts.ImpactCrisis {
		weight *= 2.0
	} else {
		weight *= 0.5
	}

	multiplier, ok := relevanceMultipliers[event.Relevance]
	if !ok {
		multiplier = defaultRelevanceMultiplier
	}

	return weight * multiplier
}

// SeverityFor maps a total score to its severity tier
func SeverityFor(score float64) contracts.Severity {
	switch {
	case score > thresholdCritical:
		return contracts.SeverityCritical
	case score > thresholdHigh:
		return contracts.SeverityHigh
	case score > thresholdMedium:
		return contracts.SeverityMedium
	default:
		return contracts.SeverityLow
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
