package models

// RawProductRecord is an upstream product record as decoded from JSON.
// Field names and shapes vary between sources (title/name, image/images, stock/inStock, ...).
type RawProductRecord map[string]any

// Variant represents a purchasable option of an item (size, color, ...)
type Variant struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	PriceDiff float64 `json:"priceDiff"` // Signed amount added to the item's base price
	InStock   bool    `json:"inStock"`
}

// CatalogItem represents a single normalized item in the catalog
type CatalogItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"` // Empty when the upstream record has no image
	BasePrice float64   `json:"basePrice"`
	Variants  []Variant `json:"variants"`
	InStock   bool      `json:"inStock"`
	// Category is carried through from the raw record; it is only used for filtering.
	Category string `json:"category,omitempty"`
}

// HasVariants reports whether the item offers any variant
func (i CatalogItem) HasVariants() bool {
	return len(i.Variants) > 0
}

// FindVariant returns the variant with the given id, or nil
func (i CatalogItem) FindVariant(id string) *Variant {
	for idx := range i.Variants {
		if i.Variants[idx].ID == id {
			return &i.Variants[idx]
		}
	}
	return nil
}

// VariantOption is a render-ready variant entry of a catalog card
type VariantOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Selected bool   `json:"selected"`
}

// CatalogCard is the derived view of one item for the current selection
type CatalogCard struct {
	Item              CatalogItem     `json:"item"`
	SelectedVariantID *string         `json:"selectedVariantId"`
	DisplayPrice      float64         `json:"displayPrice"`
	FormattedPrice    string          `json:"formattedPrice"`
	Available         bool            `json:"available"`
	ButtonLabel       string          `json:"buttonLabel"`
	Options           []VariantOption `json:"options,omitempty"`
	Badge             string          `json:"badge,omitempty"` // "One size" when the item has no variants
}

// CatalogResponse is the response for GET /catalog
type CatalogResponse struct {
	Category string        `json:"category"`
	Loading  bool          `json:"loading"`
	Cards    []CatalogCard `json:"cards"`
}

// Category represents a recognized category filter key with its display label
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ChooseVariantRequest represents the request body for POST /catalog/items/{id}/variant
// Example: {"variantId": "m"}
type ChooseVariantRequest struct {
	VariantID string `json:"variantId"`
}
