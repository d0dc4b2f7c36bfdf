package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AutoMigrateOrders creates the orders table if it does not exist.
func AutoMigrateOrders(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS orders (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			phone      TEXT NOT NULL,
			address    TEXT NOT NULL,
			city       TEXT NOT NULL,
			email      TEXT NOT NULL DEFAULT '',
			product_id TEXT NOT NULL DEFAULT '',
			items      JSONB NOT NULL DEFAULT '[]',
			subtotal   NUMERIC(12,2) NOT NULL DEFAULT 0,
			shipping   NUMERIC(12,2) NOT NULL DEFAULT 0,
			discount   NUMERIC(12,2) NOT NULL DEFAULT 0,
			total      NUMERIC(12,2) NOT NULL DEFAULT 0,
			status     TEXT NOT NULL DEFAULT 'new',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	const index = `
		CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders (created_at DESC)
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate orders table: %w", err)
	}
	if _, err := pool.Exec(ctx, index); err != nil {
		return fmt.Errorf("failed to create orders index: %w", err)
	}
	return nil
}
