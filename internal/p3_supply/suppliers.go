package p3_supply

import "github.com/nvaldez/steelbrain/internal/contracts"

// Catalog returns the static supplier reference data. Order matters:
// ties in selection and optimization resolve to the first occurrence.
func Catalog() []contracts.Supplier {
	return []contracts.Supplier{
		{
			Name:             "Tianjin Steel (China)",
			PriceFactor:      1.0,
			DeliveryDays:     45,
			Quality:          "A",
			GeopoliticalRisk: 0.3,
			MonthlyCapacity:  5000,
		},
		{
			Name:             "Posco (Korea)",
			PriceFactor:      1.15,
			DeliveryDays:     35,
			Quality:          "A+",
			GeopoliticalRisk: 0.1,
			MonthlyCapacity:  4000,
		},
		{
			Name:             "Tosyali (Turkey)",
			PriceFactor:      0.95,
			DeliveryDays:     50,
			Quality:          "B+",
			GeopoliticalRisk: 0.2,
			MonthlyCapacity:  3500,
		},
		{
			Name:             "ArcelorMittal (India)",
			PriceFactor:      1.05,
			DeliveryDays:     40,
			Quality:          "A",
			GeopoliticalRisk: 0.15,
			MonthlyCapacity:  4500,
		},
	}
}
