package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"storefront/cart"
	"storefront/catalog"
	"storefront/models"
	"storefront/pricing"
)

var (
	// ErrItemNotFound is returned for an item id that is not in the loaded catalog
	ErrItemNotFound = errors.New("catalog item not found")
	// ErrUnknownVariant is returned when a chosen variant id is not one of the item's variants
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrUnavailable is returned when adding an item whose current selection is not available
	ErrUnavailable = errors.New("item is not available")
)

// CatalogService owns the loaded catalog and the per-item variant selections
type CatalogService struct {
	source  ProductSourceInterface
	cart    cart.Dispatcher
	logger  *zap.Logger
	timeout time.Duration

	mu         sync.RWMutex
	items      []models.CatalogItem
	index      map[string]int               // item id -> position in items
	selections map[string]catalog.Selection // item id -> selection
	loading    bool
	generation uint64
	closed     bool
}

// NewCatalogService creates a new CatalogService with an empty catalog
func NewCatalogService(source ProductSourceInterface, dispatcher cart.Dispatcher, timeout time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		source:     source,
		cart:       dispatcher,
		logger:     logger,
		timeout:    timeout,
		index:      map[string]int{},
		selections: map[string]catalog.Selection{},
	}
}

// Refresh fetches and normalizes the product records.
// Results of a fetch that was superseded by a newer Refresh, or that finished
// after Close, are discarded. A failed fetch leaves an empty catalog.
func (s *CatalogService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("catalog service is closed")
	}
	s.generation++
	gen := s.generation
	s.loading = true
	s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	records, err := s.source.FetchProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation {
		s.logger.Info("discarding stale product fetch", zap.Uint64("generation", gen))
		return nil
	}
	s.loading = false

	var items []models.CatalogItem
	if err == nil {
		items = catalog.NormalizeAll(records)
	}
	index := make(map[string]int, len(items))
	for i, item := range items {
		if _, dup := index[item.ID]; !dup {
			index[item.ID] = i
		}
	}

	s.items = items
	s.index = index
	s.selections = map[string]catalog.Selection{}

	if err != nil {
		s.logger.Warn("failed to fetch products", zap.Error(err))
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	s.logger.Info("catalog refreshed", zap.Int("items", len(items)))
	return nil
}

// Close stops the service from accepting fetch results
func (s *CatalogService) Close() {
	s.mu.Lock()
	s.closed = true
	s.loading = false
	s.mu.Unlock()
}

// Loading reports whether a fetch is in flight
func (s *CatalogService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Items returns the loaded items filtered by category
func (s *CatalogService) Items(category string) []models.CatalogItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := catalog.FilterByCategory(s.items, category)
	out := make([]models.CatalogItem, len(filtered))
	copy(out, filtered)
	return out
}

// Catalog returns the card views of the items in category
func (s *CatalogService) Catalog(category string) models.CatalogResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := catalog.FilterByCategory(s.items, category)
	cards := make([]models.CatalogCard, 0, len(filtered))
	for _, item := range filtered {
		cards = append(cards, BuildCard(item, s.selectionLocked(item)))
	}

	return models.CatalogResponse{
		Category: category,
		Loading:  s.loading,
		Cards:    cards,
	}
}

// Card returns the card view of one item
func (s *CatalogService) Card(itemID string) (models.CatalogCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.itemLocked(itemID)
	if !ok {
		return models.CatalogCard{}, ErrItemNotFound
	}
	return BuildCard(item, s.selectionLocked(item)), nil
}

// ChooseVariant selects variantID for the item.
// An unknown variant leaves the selection unchanged and returns ErrUnknownVariant.
func (s *CatalogService) ChooseVariant(itemID, variantID string) (models.CatalogCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.itemLocked(itemID)
	if !ok {
		return models.CatalogCard{}, ErrItemNotFound
	}

	sel := s.selectionLocked(item).Choose(item, variantID)
	s.selections[item.ID] = sel

	card := BuildCard(item, sel)
	if item.FindVariant(variantID) == nil {
		return card, ErrUnknownVariant
	}
	return card, nil
}

// AddToCart builds the payload for the item's current selection and delivers it
// to the cart. Unavailable selections are rejected with ErrUnavailable.
func (s *CatalogService) AddToCart(ctx context.Context, itemID string) (models.CartPayload, error) {
	s.mu.RLock()
	item, ok := s.itemLocked(itemID)
	var sel catalog.Selection
	if ok {
		sel = s.selectionLocked(item)
	}
	s.mu.RUnlock()

	if !ok {
		return models.CartPayload{}, ErrItemNotFound
	}

	selected := sel.Variant(item)
	if !pricing.IsAvailable(item, selected) {
		return models.CartPayload{}, ErrUnavailable
	}

	payload := cart.BuildPayload(item, selected, pricing.ComputePrice(item.BasePrice, selected))
	if err := s.cart.AddToCart(ctx, payload); err != nil {
		return models.CartPayload{}, fmt.Errorf("failed to deliver cart payload: %w", err)
	}

	s.logger.Info("item added to cart",
		zap.String("item_id", payload.ID),
		zap.Float64("price", payload.Price))
	return payload, nil
}

func (s *CatalogService) itemLocked(itemID string) (models.CatalogItem, bool) {
	i, ok := s.index[itemID]
	if !ok {
		return models.CatalogItem{}, false
	}
	return s.items[i], true
}

// selectionLocked returns the stored selection of item, or its initial one
func (s *CatalogService) selectionLocked(item models.CatalogItem) catalog.Selection {
	if sel, ok := s.selections[item.ID]; ok {
		return sel
	}
	return catalog.NewSelection(item)
}
