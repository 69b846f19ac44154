package controller

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"storefront/cart"
)

// CartController exposes the lines recorded by the cart collaborator
type CartController struct {
	store  cart.Store
	logger *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(store cart.Store, logger *zap.Logger) *CartController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartController{store: store, logger: logger}
}

// GetCart handles GET /cart
func (c *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	lines, err := c.store.Lines(r.Context())
	if err != nil {
		c.logger.Error("failed to list cart lines", zap.Error(err))
		http.Error(w, fmt.Sprintf("Failed to list cart: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines": lines,
		"count": len(lines),
	})
}
