package constant

// Invoicing fees, in integer cents. The variable portion is 10% of the
// order total, rounded half-up.
const (
	ShippingFlatFeeCents  = 2000
	ShippingFeePercentage = 10
)
