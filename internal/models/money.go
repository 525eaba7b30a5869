package models

import "github.com/shopspring/decimal"

const (
	FreeShippingThreshold = 500
	ShippingCharge        = 50
)

// RoundMoney rounds to paise and converts back to float64 for the wire.
func RoundMoney(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// LineTotal is unitPrice * quantity computed without float drift.
func LineTotal(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}

// ShippingFor returns the delivery charge for a subtotal. Empty carts ship
// free.
func ShippingFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.Sign() <= 0 || subtotal.GreaterThanOrEqual(decimal.NewFromInt(FreeShippingThreshold)) {
		return decimal.Zero
	}
	return decimal.NewFromInt(ShippingCharge)
}
