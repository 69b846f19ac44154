package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/models"
)

func sampleItems() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "1", Category: "electronics"},
		{ID: "2", Category: "jewelery"},
		{ID: "3", Category: "ELECTRONICS"},
		{ID: "4"},
		{ID: "5", Category: "Electronics"},
	}
}

func TestFilterByCategory_AllReturnsInput(t *testing.T) {
	items := sampleItems()

	filtered := FilterByCategory(items, CategoryAll)

	assert.Equal(t, items, filtered)
	assert.Same(t, &items[0], &filtered[0])
}

func TestFilterByCategory_CaseInsensitive(t *testing.T) {
	filtered := FilterByCategory(sampleItems(), "Electronics")

	ids := make([]string, 0, len(filtered))
	for _, item := range filtered {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"1", "3", "5"}, ids)
}

func TestFilterByCategory_AllSentinelIsCaseSensitive(t *testing.T) {
	filtered := FilterByCategory(sampleItems(), "all")
	assert.Empty(t, filtered)
}

func TestFilterByCategory_EmptyCategoryNeverMatches(t *testing.T) {
	assert.Empty(t, FilterByCategory(sampleItems(), ""))
}

func TestFilterByCategory_NoMatch(t *testing.T) {
	filtered := FilterByCategory(sampleItems(), "men's clothing")
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestCategories_StartWithAll(t *testing.T) {
	assert.Equal(t, CategoryAll, Categories[0].Key)
	assert.Len(t, Categories, 5)
}
