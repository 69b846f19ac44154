package catalog

import (
	"fmt"
	"strconv"

	"storefront/models"
)

const defaultProductName = "Product"

// Normalize converts an upstream product record into a CatalogItem.
// It never fails: every missing or malformed field degrades to its default.
//
// Field resolution, in priority order:
//   - name:      title, name, "Product"
//   - image:     image, images[0], none
//   - basePrice: numeric coercion of price, 0
//   - inStock:   boolean inStock, numeric stock > 0, true
//   - variants:  see normalizeVariant
func Normalize(raw models.RawProductRecord) models.CatalogItem {
	item := models.CatalogItem{
		Name:      resolveName(raw),
		Image:     resolveImage(raw),
		BasePrice: resolveBasePrice(raw),
		Variants:  resolveVariants(raw),
		InStock:   resolveStock(raw),
	}

	if id, ok := lookup(raw, "id"); ok {
		item.ID, _ = stringify(id)
	}
	if category, ok := lookup(raw, "category"); ok {
		item.Category, _ = stringify(category)
	}

	return item
}

// NormalizeAll normalizes records preserving their order.
// Records without an id get a positional one so they can still be keyed.
func NormalizeAll(records []models.RawProductRecord) []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(records))
	for i, raw := range records {
		item := Normalize(raw)
		if item.ID == "" {
			item.ID = fmt.Sprintf("item-%d", i)
		}
		items = append(items, item)
	}
	return items
}

func resolveName(raw models.RawProductRecord) string {
	for _, key := range []string{"title", "name"} {
		if v, ok := lookup(raw, key); ok && truthy(v) {
			if s, ok := stringify(v); ok {
				return s
			}
		}
	}
	return defaultProductName
}

func resolveImage(raw models.RawProductRecord) string {
	if v, ok := lookup(raw, "image"); ok && truthy(v) {
		if s, ok := v.(string); ok {
			return s
		}
	}
	if v, ok := lookup(raw, "images"); ok {
		if images, ok := v.([]any); ok && len(images) > 0 {
			if s, ok := images[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

func resolveBasePrice(raw models.RawProductRecord) float64 {
	v, _ := lookup(raw, "price")
	return toNumber(v)
}

// resolveStock applies the stock rules shared by items and variants
func resolveStock(record map[string]any) bool {
	if v, ok := lookup(record, "inStock"); ok {
		if b, ok := asBool(v); ok {
			return b
		}
	}
	if v, ok := lookup(record, "stock"); ok {
		if n, ok := asNumber(v); ok {
			return n > 0
		}
	}
	return true
}

func resolveVariants(raw models.RawProductRecord) []models.Variant {
	v, ok := lookup(raw, "variants")
	if !ok {
		return []models.Variant{}
	}
	entries, ok := v.([]any)
	if !ok || len(entries) == 0 {
		return []models.Variant{}
	}

	variants := make([]models.Variant, 0, len(entries))
	for idx, entry := range entries {
		fields, _ := entry.(map[string]any)
		variants = append(variants, normalizeVariant(fields, idx))
	}
	return variants
}

// normalizeVariant maps one upstream variant entry.
//   - id:        id, position
//   - name:      name, label, "Option {position+1}"
//   - priceDiff: numeric priceDiff, numeric diff, 0
//   - inStock:   boolean inStock, numeric stock > 0, true
func normalizeVariant(fields map[string]any, idx int) models.Variant {
	variant := models.Variant{
		ID:      strconv.Itoa(idx),
		Name:    fmt.Sprintf("Option %d", idx+1),
		InStock: resolveStock(fields),
	}

	if v, ok := lookup(fields, "id"); ok {
		if s, ok := stringify(v); ok {
			variant.ID = s
		}
	}

	for _, key := range []string{"name", "label"} {
		if v, ok := lookup(fields, key); ok {
			if s, ok := stringify(v); ok {
				variant.Name = s
				break
			}
		}
	}

	for _, key := range []string{"priceDiff", "diff"} {
		if v, ok := lookup(fields, key); ok {
			if n, ok := asNumber(v); ok {
				variant.PriceDiff = n
				break
			}
		}
	}

	return variant
}
