package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/cart"
	"storefront/db"
	"storefront/models"
)

// CartRepository records add-to-cart payloads in PostgreSQL
type CartRepository struct {
	logger *zap.Logger
}

// NewCartRepository creates a new CartRepository
func NewCartRepository(logger *zap.Logger) *CartRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartRepository{logger: logger}
}

// Ensure CartRepository implements CartRepositoryInterface and cart.Store
var (
	_ CartRepositoryInterface = (*CartRepository)(nil)
	_ cart.Store              = (*CartRepository)(nil)
)

// AddToCart inserts payload as a new cart line
func (r *CartRepository) AddToCart(ctx context.Context, payload models.CartPayload) error {
	lineID := uuid.New()

	var variantID, variantName sql.NullString
	var variantDiff sql.NullFloat64
	if v := payload.SelectedVariant; v != nil {
		variantID = sql.NullString{String: v.ID, Valid: true}
		variantName = sql.NullString{String: v.Name, Valid: true}
		variantDiff = sql.NullFloat64{Float64: v.PriceDiff, Valid: true}
	}

	query := `
		INSERT INTO cart_lines (id, item_id, name, image, price, base_price, variant_id, variant_name, variant_diff, qty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := db.DB.ExecContext(ctx, query,
		lineID,
		payload.ID,
		payload.Name,
		sql.NullString{String: payload.Image, Valid: payload.Image != ""},
		payload.Price,
		payload.BasePrice,
		variantID,
		variantName,
		variantDiff,
		payload.Qty,
	)
	if err != nil {
		r.logger.Error("failed to insert cart line", zap.String("item_id", payload.ID), zap.Error(err))
		return fmt.Errorf("failed to insert cart line: %w", err)
	}

	r.logger.Info("cart line recorded",
		zap.String("line_id", lineID.String()),
		zap.String("item_id", payload.ID),
		zap.Float64("price", payload.Price))
	return nil
}

// Lines returns all cart lines ordered by insertion time
func (r *CartRepository) Lines(ctx context.Context) ([]models.CartLine, error) {
	query := `
		SELECT id, item_id, name, COALESCE(image, ''), price, base_price,
		       variant_id, variant_name, variant_diff, qty, added_at
		FROM cart_lines
		ORDER BY added_at ASC, id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart lines: %w", err)
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var line models.CartLine
		var variantID, variantName sql.NullString
		var variantDiff sql.NullFloat64
		var addedAt time.Time

		err := rows.Scan(
			&line.LineID,
			&line.Payload.ID,
			&line.Payload.Name,
			&line.Payload.Image,
			&line.Payload.Price,
			&line.Payload.BasePrice,
			&variantID,
			&variantName,
			&variantDiff,
			&line.Payload.Qty,
			&addedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		if variantID.Valid {
			line.Payload.SelectedVariant = &models.SelectedVariant{
				ID:        variantID.String,
				Name:      variantName.String,
				PriceDiff: variantDiff.Float64,
			}
		}
		line.AddedAt = addedAt.UTC().Format(time.RFC3339)
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}
	return lines, nil
}
