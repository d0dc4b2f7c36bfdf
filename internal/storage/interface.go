package storage

import (
	"context"
	"time"

	"github.com/mehdios/senteur/internal/model"
)

// OrderStorage defines DB operations for orders.
type OrderStorage interface {
	Ping(ctx context.Context) error
	Save(ctx context.Context, order *model.Order) error
	FindAll(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, id string) (model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, updatedAt time.Time) error
}
