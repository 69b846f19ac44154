package cart

import "storefront/models"

// BuildPayload assembles the add-to-cart event for item in its current selection.
//
// Callers must check pricing.IsAvailable first: the builder performs no
// availability check and must not be used for unavailable items.
func BuildPayload(item models.CatalogItem, selected *models.Variant, displayPrice float64) models.CartPayload {
	payload := models.CartPayload{
		ID:        item.ID,
		Name:      item.Name,
		Image:     item.Image,
		Price:     displayPrice,
		BasePrice: item.BasePrice,
		Qty:       1,
	}

	if item.HasVariants() && selected != nil {
		payload.SelectedVariant = &models.SelectedVariant{
			ID:        selected.ID,
			Name:      selected.Name,
			PriceDiff: selected.PriceDiff,
		}
	}

	return payload
}
