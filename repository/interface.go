package repository

import (
	"context"

	"storefront/models"
)

// CartRepositoryInterface defines the contract for cart line persistence
type CartRepositoryInterface interface {
	AddToCart(ctx context.Context, payload models.CartPayload) error
	Lines(ctx context.Context) ([]models.CartLine, error)
}
