package cart

import (
	"context"

	"storefront/models"
)

// Dispatcher receives finished add-to-cart payloads.
// It owns the cart's storage; the catalog only delivers payloads to it.
type Dispatcher interface {
	AddToCart(ctx context.Context, payload models.CartPayload) error
}

// Store is a Dispatcher whose recorded lines can be listed
type Store interface {
	Dispatcher
	Lines(ctx context.Context) ([]models.CartLine, error)
}
