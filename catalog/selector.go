package catalog

import "storefront/models"

// SelectionState is the state of a per-item variant selection
type SelectionState int

const (
	// NoVariants is terminal: the item has no variants to choose from
	NoVariants SelectionState = iota
	// Selected means a variant id is currently chosen
	Selected
)

func (s SelectionState) String() string {
	switch s {
	case NoVariants:
		return "NO_VARIANTS"
	case Selected:
		return "SELECTED"
	default:
		return "UNKNOWN"
	}
}

// Selection holds the chosen variant of one catalog item.
// It is a plain value: transitions return a new Selection.
type Selection struct {
	ItemID    string
	variantID string
	state     SelectionState
}

// NewSelection returns the initial selection for item: the first in-stock variant,
// the first variant when all are out of stock, or NoVariants.
func NewSelection(item models.CatalogItem) Selection {
	sel := Selection{ItemID: item.ID, state: NoVariants}
	if !item.HasVariants() {
		return sel
	}

	first := item.Variants[0]
	for _, v := range item.Variants {
		if v.InStock {
			first = v
			break
		}
	}
	sel.variantID = first.ID
	sel.state = Selected
	return sel
}

// State returns the current state
func (s Selection) State() SelectionState {
	return s.state
}

// VariantID returns the selected variant id; ok is false in NoVariants
func (s Selection) VariantID() (id string, ok bool) {
	if s.state != Selected {
		return "", false
	}
	return s.variantID, true
}

// Choose selects the variant with the given id, regardless of its stock.
// Unknown ids and items without variants leave the selection unchanged.
func (s Selection) Choose(item models.CatalogItem, id string) Selection {
	if s.state == NoVariants {
		return s
	}
	if item.FindVariant(id) == nil {
		return s
	}
	s.variantID = id
	return s
}

// Variant returns the selected variant of item, or nil in NoVariants
func (s Selection) Variant(item models.CatalogItem) *models.Variant {
	if s.state != Selected {
		return nil
	}
	return item.FindVariant(s.variantID)
}
