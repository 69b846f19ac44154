package service

import (
	"storefront/catalog"
	"storefront/models"
	"storefront/pricing"
)

const (
	labelAddToCart  = "Add to cart"
	labelOutOfStock = "Out of stock"
	badgeOneSize    = "One size"
)

// BuildCard derives the card view of item for its current selection
func BuildCard(item models.CatalogItem, sel catalog.Selection) models.CatalogCard {
	selected := sel.Variant(item)
	price := pricing.ComputePrice(item.BasePrice, selected)
	available := pricing.IsAvailable(item, selected)

	card := models.CatalogCard{
		Item:           item,
		DisplayPrice:   price,
		FormattedPrice: pricing.FormatDisplayPrice(price),
		Available:      available,
		ButtonLabel:    labelOutOfStock,
	}
	if available {
		card.ButtonLabel = labelAddToCart
	}

	selectedID, ok := sel.VariantID()
	if ok {
		card.SelectedVariantID = &selectedID
	}

	if !item.HasVariants() {
		card.Badge = badgeOneSize
		return card
	}

	card.Options = make([]models.VariantOption, 0, len(item.Variants))
	for _, v := range item.Variants {
		card.Options = append(card.Options, models.VariantOption{
			ID:       v.ID,
			Label:    optionLabel(v),
			Disabled: !v.InStock,
			Selected: ok && v.ID == selectedID,
		})
	}
	return card
}

// optionLabel renders e.g. "Medium (+2.50)"
func optionLabel(v models.Variant) string {
	label := v.Name
	if diff := pricing.FormatPriceDiff(v.PriceDiff); diff != "" {
		label += " (" + diff + ")"
	}
	if !v.InStock {
		label += " — " + labelOutOfStock
	}
	return label
}
