package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// DB holds the database connection
var DB *sql.DB

const schema = `
	CREATE TABLE IF NOT EXISTS cart_lines (
		id               UUID PRIMARY KEY,
		item_id          TEXT NOT NULL,
		name             TEXT NOT NULL,
		image            TEXT,
		price            DOUBLE PRECISION NOT NULL,
		base_price       DOUBLE PRECISION NOT NULL,
		variant_id       TEXT,
		variant_name     TEXT,
		variant_diff     DOUBLE PRECISION,
		qty              INTEGER NOT NULL DEFAULT 1,
		added_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// InitDB opens the connection described by connStr, checks it and ensures the schema exists
func InitDB(ctx context.Context, connStr string, logger *zap.Logger) error {
	if connStr == "" {
		return fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	DB = conn
	logger.Info("database connection established")
	return nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
