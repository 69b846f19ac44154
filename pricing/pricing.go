package pricing

import (
	"math"

	"storefront/models"
)

// ComputePrice returns the displayed price: basePrice plus the selected
// variant's priceDiff. A non-finite basePrice or priceDiff counts as 0.
// No rounding is applied; see FormatPrice for presentation.
func ComputePrice(basePrice float64, selected *models.Variant) float64 {
	diff := 0.0
	if selected != nil {
		diff = finite(selected.PriceDiff)
	}
	return finite(basePrice) + diff
}

// IsAvailable reports whether the item, in its current selection, can be added to the cart.
// Item-level stock is a veto that short-circuits any variant check.
func IsAvailable(item models.CatalogItem, selected *models.Variant) bool {
	if !item.InStock {
		return false
	}
	if item.HasVariants() {
		return selected != nil && selected.InStock
	}
	return true
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
