package model

import "github.com/shopspring/decimal"

// FormatPrice renders a price as dollars with two decimals, rounding half
// away from zero on the decimal value rather than its binary approximation.
func FormatPrice(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
