package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	appErr "github.com/mehdios/senteur/internal/errors"
	"github.com/mehdios/senteur/internal/model"
)

type PostgresStorage struct {
	db *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) OrderStorage {
	return &PostgresStorage{pool}
}

func (ps *PostgresStorage) Ping(ctx context.Context) error {
	return ps.db.Ping(ctx)
}

func (ps *PostgresStorage) Save(ctx context.Context, order *model.Order) error {
	const query = `
		INSERT INTO orders
			(id, name, phone, address, city, email, product_id, items,
			 subtotal, shipping, discount, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	_, err = ps.db.Exec(ctx, query,
		order.ID, order.Name, order.Phone, order.Address, order.City,
		order.Email, order.ProductID, items,
		order.Subtotal, order.Shipping, order.Discount, order.Total,
		order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	return nil
}

func (ps *PostgresStorage) FindAll(ctx context.Context) ([]model.Order, error) {
	const query = `
		SELECT id, name, phone, address, city, email, product_id, items,
		       subtotal, shipping, discount, total, status, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := ps.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var orders []model.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}

	return orders, nil
}

func (ps *PostgresStorage) FindByID(ctx context.Context, id string) (model.Order, error) {
	const query = `
		SELECT id, name, phone, address, city, email, product_id, items,
		       subtotal, shipping, discount, total, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	rows, err := ps.db.Query(ctx, query, id)
	if err != nil {
		return model.Order{}, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return model.Order{}, fmt.Errorf("find by id failed: %w", err)
		}
		return model.Order{}, appErr.NewNotFound("order %s", id)
	}

	order, err := scanOrder(rows)
	if err != nil {
		return model.Order{}, fmt.Errorf("scan failed: %w", err)
	}
	return order, nil
}

func (ps *PostgresStorage) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error {
	const query = `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	cmdTag, err := ps.db.Exec(ctx, query, status, updatedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return appErr.NewNotFound("order %s", id)
	}
	return nil
}

func scanOrder(rows pgx.Rows) (model.Order, error) {
	var (
		order model.Order
		items []byte
	)
	err := rows.Scan(
		&order.ID, &order.Name, &order.Phone, &order.Address, &order.City,
		&order.Email, &order.ProductID, &items,
		&order.Subtotal, &order.Shipping, &order.Discount, &order.Total,
		&order.Status, &order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return model.Order{}, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return model.Order{}, fmt.Errorf("failed to decode items: %w", err)
		}
	}
	return order, nil
}
