package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appErr "github.com/mehdios/senteur/internal/errors"
	"github.com/mehdios/senteur/internal/event"
	"github.com/mehdios/senteur/internal/metrics"
	"github.com/mehdios/senteur/internal/model"
	"github.com/mehdios/senteur/internal/storage"
)

type OrderService interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	GetAll(ctx context.Context) ([]model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
}

type orderService struct {
	store     storage.OrderStorage
	publisher event.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewOrderService(store storage.OrderStorage, publisher event.Publisher, logger *slog.Logger) OrderService {
	l := logger.With("layer", "service", "component", "orderService")
	return &orderService{
		store:     store,
		publisher: publisher,
		logger:    l,
		tracer:    otel.Tracer("order-service"),
	}
}

// validate checks a checkout submission. Contact fields and a total are
// required, plus at least one of a product reference or line items.
func validate(o *model.Order) error {
	switch {
	case o.Name == "":
		return appErr.NewInvalid("name is required")
	case o.Phone == "":
		return appErr.NewInvalid("phone is required")
	case o.Address == "":
		return appErr.NewInvalid("address is required")
	case o.City == "":
		return appErr.NewInvalid("city is required")
	}
	if o.ProductID == "" && len(o.Items) == 0 {
		return appErr.NewInvalid("order needs a product or at least one item")
	}
	for _, item := range o.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return appErr.NewInvalid("item needs a product id and a positive quantity")
		}
	}
	if o.Total <= 0 {
		return appErr.NewInvalid("total is required")
	}
	return nil
}

// Create validates and persists a checkout submission, then publishes the
// order event. The customer-facing result depends only on persistence:
// a publish failure is logged and swallowed.
func (s *orderService) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	ctx, span := s.tracer.Start(ctx, "Create")
	defer span.End()

	if err := validate(&order); err != nil {
		s.logger.Warn("order rejected", slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	order.ID = uuid.New().String()
	order.Status = model.StatusNew
	order.CreatedAt = now
	order.UpdatedAt = now

	span.SetAttributes(attribute.String("order.id", order.ID))

	if err := s.store.Save(ctx, &order); err != nil {
		s.logger.Error("failed to save order",
			slog.String("id", order.ID),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to save order: %v", err)
	}

	metrics.OrdersCreated.Inc()
	s.logger.Info("order created",
		slog.String("id", order.ID),
		slog.String("city", order.City),
		slog.Float64("total", order.Total))

	if err := s.publisher.Publish(ctx, model.NewOrderCreated(&order)); err != nil {
		// notification is best-effort auxiliary behavior, the order
		// is already durable
		s.logger.Error("failed to publish order event",
			slog.String("id", order.ID),
			slog.String("error", err.Error()))
		span.RecordError(err)
	}

	return &order, nil
}

func (s *orderService) GetAll(ctx context.Context) ([]model.Order, error) {
	ctx, span := s.tracer.Start(ctx, "GetAll")
	defer span.End()

	orders, err := s.store.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch orders", slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to fetch orders: %v", err)
	}

	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	ctx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id))

	order, err := s.store.FindByID(ctx, id)
	if err != nil {
		if appErr.IsNotFound(err) {
			s.logger.Warn("order not found", slog.String("id", id))
			return nil, err
		}
		s.logger.Error("failed to fetch order",
			slog.String("id", id),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, appErr.NewInternal("failed to fetch order: %v", err)
	}

	return &order, nil
}

// UpdateStatus overwrites an order's status after validating membership in
// the status enum. There is no transition guard: admins may move an order
// to any status.
func (s *orderService) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	ctx, span := s.tracer.Start(ctx, "UpdateStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", id),
		attribute.String("order.status", string(status)),
	)

	if !model.ValidStatus(status) {
		s.logger.Warn("invalid status", slog.String("id", id), slog.String("status", string(status)))
		return appErr.NewInvalid("unknown status %q", status)
	}

	if err := s.store.UpdateStatus(ctx, id, status, time.Now().UTC()); err != nil {
		if appErr.IsNotFound(err) {
			s.logger.Warn("order not found for update", slog.String("id", id))
			return err
		}
		s.logger.Error("failed to update status",
			slog.String("id", id),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return appErr.NewInternal("failed to update order status: %v", err)
	}

	s.logger.Info("order status updated", slog.String("id", id), slog.String("status", string(status)))
	return nil
}
