package contracts

// CorridorState is the binary availability of an inland corridor
type CorridorState string

const (
	CorridorOpen   CorridorState = "OPEN"
	CorridorClosed CorridorState = "CLOSED"
)

// DeliveryRoute is one Phase-4 output: the landed-cost breakdown and
// inland routing for a purchase decision.
// Invariant: LandedCost = FOB + OceanFreight + Duty + InlandFreight and
// SalePrice = LandedCost * (1 + margin).
type DeliveryRoute struct {
	Product       string        `json:"product"`
	Destination   string        `json:"destination"`
	Route         string        `json:"route"`
	CorridorState CorridorState `json:"corridor_state,omitempty"`
	FOB           float64       `json:"fob"`
	OceanFreight  float64       `json:"ocean_freight"`
	Duty          float64       `json:"duty"`
	InlandFreight float64       `json:"inland_freight"`
	LandedCost    float64       `json:"landed_cost"`
	SalePrice     float64       `json:"sale_price"`
}

// CostConsistent verifies the landed-cost identity within a small
// float tolerance
func (r DeliveryRoute) CostConsistent() bool {
	sum := r.FOB + r.OceanFreight + r.Duty + r.InlandFreight
	diff := r.LandedCost - sum
	return diff < 0.01 && diff > -0.01
}
