package contracts

import "time"

// Urgency is the coarse priority tier driving supplier trade-offs
type Urgency string

const (
	UrgencyHigh   Urgency = "HIGH"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyLow    Urgency = "LOW"
)

// Opportunity is a detected external project or tender that will
// demand steel products. Produced by the opportunity source; the
// pipeline consumes it read-only.
type Opportunity struct {
	Code            string    `json:"code"`
	Project         string    `json:"project"`
	Entity          string    `json:"entity"`
	Sector          string    `json:"sector"`
	DemandedGoods   []string  `json:"demanded_goods"`
	EstimatedVolume float64   `json:"estimated_volume"` // tons
	AmountUSD       float64   `json:"amount_usd"`
	Urgency         Urgency   `json:"urgency"`
	PublishedAt     time.Time `json:"published_at"`
	Source          string    `json:"source"`
}

// CriticalProduct is an inventory line that cannot cover an
// opportunity's projected demand. Computed fresh on each run.
type CriticalProduct struct {
	Product         string  `json:"product"`
	CurrentStock    float64 `json:"current_stock"`
	MinimumStock    float64 `json:"minimum_stock"`
	ProjectedDemand int     `json:"projected_demand"` // this opportunity's share
	Deficit         int     `json:"deficit"`
	Opportunity     string  `json:"opportunity"`
	Urgency         Urgency `json:"urgency"`
}
