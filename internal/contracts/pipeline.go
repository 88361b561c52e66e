package contracts

import "time"

// PriceTrend is the coarse aggregate price-direction signal the risk
// gate derives from active economic crisis scenarios. It is a counting
// heuristic, not a financial model.
type PriceTrend string

const (
	TrendRising  PriceTrend = "RISING"
	TrendStable  PriceTrend = "STABLE"
	TrendFalling PriceTrend = "FALLING"
)

// GateDecision is the procurement go/no-go outcome of Phase 2
type GateDecision string

const (
	DecisionWait      GateDecision = "WAIT"
	DecisionBuyUrgent GateDecision = "BUY_URGENT"
	DecisionBuyNormal GateDecision = "BUY_NORMAL"
	DecisionBuyCaution GateDecision = "BUY_CAUTION"
)

// RiskRecommendation is a per-scenario mitigation the gate derives
type RiskRecommendation struct {
	Scenario    string       `json:"scenario"`
	Category    RiskCategory `json:"category"`
	Description string       `json:"description"`
	Action      string       `json:"action"`
	StockMonths string       `json:"stock_months"` // "Normal" or "N months"
	Evidence    string       `json:"evidence"`
}

// GateReport is the Phase-2 output
type GateReport struct {
	Recommendations []RiskRecommendation `json:"recommendations"`
	PriceTrend      PriceTrend           `json:"price_trend"`
	TrendBasis      string               `json:"trend_basis"`
	Decision        GateDecision         `json:"decision"`
	Assessment      RiskAssessment       `json:"assessment"`
}

// DetectionReport is the Phase-1 output
type DetectionReport struct {
	Opportunities    []Opportunity     `json:"opportunities"`
	CriticalProducts []CriticalProduct `json:"critical_products"`
}

// Degradation records a feed that failed and what the pipeline
// substituted, so "no data, expected" and "fetch failed" stay
// distinguishable in the output
type Degradation struct {
	Stage  string `json:"stage"`
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// PipelineResult is the assembled output of one full run. All stage
// outputs are fresh per invocation; nothing is mutated across runs.
type PipelineResult struct {
	RunID           string             `json:"run_id"`
	Scenario        string             `json:"scenario"`
	StartedAt       time.Time          `json:"started_at"`
	Duration        time.Duration      `json:"duration"`
	CompletedStages []string           `json:"completed_stages"`
	Degradations    []Degradation      `json:"degradations,omitempty"`
	Detection       DetectionReport    `json:"detection"`
	Gate            GateReport         `json:"gate"`
	Decisions       []PurchaseDecision `json:"decisions"`
	Routes          []DeliveryRoute    `json:"routes"`
}

// Empty reports whether the run produced no actionable output
func (r *PipelineResult) Empty() bool {
	return len(r.Detection.CriticalProducts) == 0 &&
		len(r.Decisions) == 0 &&
		len(r.Routes) == 0
}
