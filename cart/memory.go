package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/models"
)

// MemoryCart records cart lines in process memory.
// It is used when no database is configured and in tests.
type MemoryCart struct {
	mu     sync.RWMutex
	lines  []models.CartLine
	logger *zap.Logger
	now    func() time.Time
}

// Ensure MemoryCart implements Store
var _ Store = (*MemoryCart)(nil)

// NewMemoryCart creates an empty MemoryCart
func NewMemoryCart(logger *zap.Logger) *MemoryCart {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryCart{
		logger: logger,
		now:    time.Now,
	}
}

// AddToCart appends payload as a new cart line
func (c *MemoryCart) AddToCart(ctx context.Context, payload models.CartPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line := models.CartLine{
		LineID:  uuid.NewString(),
		Payload: payload,
		AddedAt: c.now().UTC().Format(time.RFC3339),
	}

	c.mu.Lock()
	c.lines = append(c.lines, line)
	c.mu.Unlock()

	c.logger.Info("cart line recorded",
		zap.String("line_id", line.LineID),
		zap.String("item_id", payload.ID),
		zap.Float64("price", payload.Price))
	return nil
}

// Lines returns a copy of the recorded lines in insertion order
func (c *MemoryCart) Lines(ctx context.Context) ([]models.CartLine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines, nil
}
