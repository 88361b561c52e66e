package contracts

// Supplier is one entry of the static supplier reference data.
// Invariant: PriceFactor > 0 and DeliveryDays > 0.
type Supplier struct {
	Name            string  `json:"name"`
	PriceFactor     float64 `json:"price_factor"`
	DeliveryDays    int     `json:"delivery_days"`
	Quality         string  `json:"quality"` // A+, A, B+, B
	GeopoliticalRisk float64 `json:"geopolitical_risk"`
	MonthlyCapacity int     `json:"monthly_capacity"` // tons
}

// Valid reports whether the supplier record satisfies its invariants
func (s Supplier) Valid() bool {
	return s.PriceFactor > 0 && s.DeliveryDays > 0
}

// SupplierPerformance is an optional historical performance record used
// to adjust delivery and risk estimates
type SupplierPerformance struct {
	Supplier        string  `json:"supplier"`
	AvgDelayDays    float64 `json:"avg_delay_days"`
	FulfillmentRate float64 `json:"fulfillment_rate"` // percent, 0-100
}

// DecisionStatus flags whether a purchase can proceed as approved
type DecisionStatus string

const (
	StatusApprove      DecisionStatus = "APPROVE"
	StatusFinanceAlert DecisionStatus = "FINANCE_ALERT"
)

// PurchaseDecision is one Phase-3 output: a critical product matched to
// a supplier. Invariant: Quantity > 0 implies Supplier is set.
type PurchaseDecision struct {
	Product            string         `json:"product"`
	Quantity           int            `json:"quantity"` // = deficit
	Supplier           string         `json:"supplier"`
	UnitPrice          float64        `json:"unit_price"`
	DeliveryDays       int            `json:"delivery_days"`
	Quality            string         `json:"quality"`
	FinancingAvailable bool           `json:"financing_available"`
	Status             DecisionStatus `json:"status"`
	Urgency            Urgency        `json:"urgency"`
}

// SupplierAllocation is one line of the diversification optimizer output
type SupplierAllocation struct {
	Supplier     string  `json:"supplier"`
	Budget       float64 `json:"budget"`
	BudgetShare  float64 `json:"budget_share"` // percent of total
	DeliveryDays int     `json:"delivery_days"`
	Quality      string  `json:"quality"`
	TotalRisk    float64 `json:"total_risk"`
	Score        float64 `json:"score"`
}
