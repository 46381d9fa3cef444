package parcel

const (
	costPerKg        = 0.5
	costPerValueUnit = 0.01
)

// DeliveryCost prices a parcel in the rate's currency: (weight*0.5 + value*0.01) * usdRate.
// The rate is not checked, a zero or negative rate yields a zero or negative cost.
func DeliveryCost(weight, value, usdRate float64) float64 {
	return (weight*costPerKg + value*costPerValueUnit) * usdRate
}
