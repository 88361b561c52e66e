package contracts

// RiskCategory classifies a risk event by its origin
type RiskCategory string

const (
	CategoryGeopolitical RiskCategory = "Geopolitical"
	CategoryLogistics    RiskCategory = "Logistics"
	CategoryEconomic     RiskCategory = "Economic"
	CategoryTrade        RiskCategory = "Trade"
	CategoryDemand       RiskCategory = "Demand"
)

// Impact is the event's impact tier
type Impact string

const (
	ImpactCrisis Impact = "Crisis"
	ImpactNormal Impact = "Normal"
)

// Relevance is how strongly the event concerns this business
type Relevance string

const (
	RelevanceHigh   Relevance = "HIGH"
	RelevanceMedium Relevance = "MEDIUM"
	RelevanceLow    Relevance = "LOW"
)

// RiskEvent is one classified news item or scenario entering the risk
// scorer. Ephemeral; recomputed per run.
type RiskEvent struct {
	Category    RiskCategory `json:"category"`
	Description string       `json:"description"`
	Impact      Impact       `json:"impact"`
	Relevance   Relevance    `json:"relevance"`
	Weight      float64      `json:"weight"`
}

// Severity is the aggregate risk tier
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// RiskAction is the recommendation derived from a severity tier
type RiskAction struct {
	Action             string  `json:"action"`
	StockAdjustment    float64 `json:"stock_adjustment"`
	DiversifySuppliers bool    `json:"diversify_suppliers"`
}

// RiskAssessment aggregates weighted risk events into a score and tier
type RiskAssessment struct {
	TotalScore float64     `json:"total_score"`
	Severity   Severity    `json:"severity"`
	TopEvents  []RiskEvent `json:"top_events"`
	Action     RiskAction  `json:"action"`
}

// ScenarioNoAlerts is the sentinel scenario the news classifier emits
// when nothing relevant is active. The risk gate skips it.
const ScenarioNoAlerts = "No Active Alerts"

// MarketScenario is a named cluster of classified news the scanner
// reports as currently active
type MarketScenario struct {
	Name        string       `json:"name"`
	Category    RiskCategory `json:"category"`
	Type        Impact       `json:"type"`
	Relevance   Relevance    `json:"relevance"`
	Description string       `json:"description"`
	NewsCount   int          `json:"news_count"`
}

// IsActionable reports whether the scenario should enter the risk gate:
// crisis-tier, high-relevance, and not the sentinel
func (s MarketScenario) IsActionable() bool {
	return s.Name != ScenarioNoAlerts &&
		s.Type == ImpactCrisis &&
		s.Relevance == RelevanceHigh
}
