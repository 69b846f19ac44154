package pricing

import (
	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount with exactly two decimal places, e.g. 12.5 -> "12.50"
func FormatPrice(amount float64) string {
	return decimal.NewFromFloat(finite(amount)).StringFixed(2)
}

// FormatDisplayPrice renders an amount as shown on a catalog card, e.g. "$12.50"
func FormatDisplayPrice(amount float64) string {
	return "$" + FormatPrice(amount)
}

// FormatPriceDiff renders a signed variant price difference, e.g. "+2.50" or "-3.00".
// A zero difference renders as an empty string.
func FormatPriceDiff(diff float64) string {
	d := decimal.NewFromFloat(finite(diff))
	if d.IsZero() {
		return ""
	}
	if d.IsNegative() {
		return d.StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}
