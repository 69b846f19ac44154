package catalog

import (
	"strings"

	"storefront/models"
)

// CategoryAll is the case-sensitive sentinel that disables category filtering
const CategoryAll = "ALL"

// Categories lists the recognized category filter keys with their display labels
var Categories = []models.Category{
	{Key: CategoryAll, Label: "All"},
	{Key: "men's clothing", Label: "Men's Clothing"},
	{Key: "women's clothing", Label: "Women's Clothing"},
	{Key: "jewelery", Label: "Jewelery"},
	{Key: "electronics", Label: "Electronics"},
}

// FilterByCategory returns the items whose category equals key, ignoring case.
// CategoryAll returns items unchanged. Items without a category never match
// any other key. Input order is preserved.
func FilterByCategory(items []models.CatalogItem, key string) []models.CatalogItem {
	if key == CategoryAll {
		return items
	}

	filtered := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Category == "" {
			continue
		}
		if strings.EqualFold(item.Category, key) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
