package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	appErr "github.com/mehdios/senteur/internal/errors"
	"github.com/mehdios/senteur/internal/event"
	"github.com/mehdios/senteur/internal/model"
	"github.com/mehdios/senteur/internal/storage"
)

func validOrder() model.Order {
	return model.Order{
		Name:     "Ana",
		Phone:    "0600000000",
		Address:  "12 Rue X",
		City:     "Rabat",
		Items:    []model.OrderItem{{ProductID: "p1", Quantity: 2}},
		Subtotal: 198,
		Shipping: 30,
		Total:    228,
	}
}

// Test_orderService_Create tests the Create method of the orderService.
// Table Driven Test Pattern used
func Test_orderService_Create(t *testing.T) {
	mockLogger := slog.Default()

	tests := []struct {
		name      string
		store     func(t *testing.T) storage.OrderStorage
		publisher func(t *testing.T) event.Publisher
		mutate    func(o *model.Order)
		wantErr   bool
		wantInval bool
	}{
		{
			name: "successful creation",
			store: func(t *testing.T) storage.OrderStorage {
				sut := storage.NewMockOrderStorage(t)
				sut.On("Save", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
				return sut
			},
			publisher: func(t *testing.T) event.Publisher {
				pub := event.NewMockPublisher(t)
				pub.On("Publish", mock.Anything, mock.AnythingOfType("model.OrderEvent")).Return(nil)
				return pub
			},
			mutate: func(o *model.Order) {},
		},
		{
			name:      "missing name",
			store:     func(t *testing.T) storage.OrderStorage { return storage.NewMockOrderStorage(t) },
			publisher: func(t *testing.T) event.Publisher { return event.NewMockPublisher(t) },
			mutate:    func(o *model.Order) { o.Name = "" },
			wantErr:   true,
			wantInval: true,
		},
		{
			name:      "missing phone",
			store:     func(t *testing.T) storage.OrderStorage { return storage.NewMockOrderStorage(t) },
			publisher: func(t *testing.T) event.Publisher { return event.NewMockPublisher(t) },
			mutate:    func(o *model.Order) { o.Phone = "" },
			wantErr:   true,
			wantInval: true,
		},
		{
			name:      "missing address",
			store:     func(t *testing.T) storage.OrderStorage { return storage.NewMockOrderStorage(t) },
			publisher: func(t *testing.T) event.Publisher { return event.NewMockPublisher(t) },
			mutate:    func(o *model.Order) { o.Address = "" },
			wantErr:   true,
			wantInval: true,
		},
		{
			name:      "missing city",
			store:     func(t *testing.T) storage.OrderStorage { return storage.NewMockOrderStorage(t) },
			publisher: func(t *testing.T) event.Publisher { return event.NewMockPublisher(t) },
			mutate:    func(o *model.Order) { o.City = "" },
			wantErr:   true,
			wantInval: true,
		},
		{
			name:      "neither product nor items",
			store:     func(t *testing.T) storage.OrderStorage { return storage.NewMockOrderStorage(t) },
			publisher: func(t *testing.T) event.Publisher { return event.NewMockPublisher(t) },
			mutate: func(o *model.Order) {
				o.Items = nil
				o.ProductID = ""
			},
			wantErr:   true,
			wantInval: true,
		},
		{
			name:      "missing total",
			store:     func(t *testing.T) storage.OrderStorage { return storage.NewMockOrderStorage(t) },
			publisher: func(t *testing.T) event.Publisher { return event.NewMockPublisher(t) },
			mutate:    func(o *model.Order) { o.Total = 0 },
			wantErr:   true,
			wantInval: true,
		},
		{
			name: "persistence failure",
			store: func(t *testing.T) storage.OrderStorage {
				sut := storage.NewMockOrderStorage(t)
				sut.On("Save", mock.Anything, mock.AnythingOfType("*model.Order")).
					Return(appErr.NewInternal("db down"))
				return sut
			},
			publisher: func(t *testing.T) event.Publisher { return event.NewMockPublisher(t) },
			mutate:    func(o *model.Order) {},
			wantErr:   true,
		},
		{
			name: "publish failure does not fail creation",
			store: func(t *testing.T) storage.OrderStorage {
				sut := storage.NewMockOrderStorage(t)
				sut.On("Save", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)
				return sut
			},
			publisher: func(t *testing.T) event.Publisher {
				pub := event.NewMockPublisher(t)
				pub.On("Publish", mock.Anything, mock.AnythingOfType("model.OrderEvent")).
					Return(appErr.NewInternal("broker down"))
				return pub
			},
			mutate: func(o *model.Order) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOrderService(tt.store(t), tt.publisher(t), mockLogger)

			order := validOrder()
			tt.mutate(&order)

			got, err := s.Create(context.Background(), order)
			if (err != nil) != tt.wantErr {
				t.Fatalf("orderService.Create() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantInval && !appErr.IsInvalid(err) {
				t.Errorf("orderService.Create() error = %v, want validation error", err)
			}
			if tt.wantErr {
				return
			}
			if got.Status != model.StatusNew {
				t.Errorf("orderService.Create() status = %q, want %q", got.Status, model.StatusNew)
			}
			if got.ID == "" {
				t.Error("orderService.Create() did not assign an id")
			}
			if got.Total != 228 {
				t.Errorf("orderService.Create() total = %v, want 228", got.Total)
			}
		})
	}
}

func Test_orderService_UpdateStatus(t *testing.T) {
	mockLogger := slog.Default()

	tests := []struct {
		name      string
		store     func(t *testing.T) storage.OrderStorage
		status    model.OrderStatus
		wantErr   bool
		wantInval bool
	}{
		{
			name: "valid transition",
			store: func(t *testing.T) storage.OrderStorage {
				sut := storage.NewMockOrderStorage(t)
				sut.On("UpdateStatus", mock.Anything, "o1", model.StatusCalled, mock.AnythingOfType("time.Time")).
					Return(nil)
				return sut
			},
			status: model.StatusCalled,
		},
		{
			name:      "status outside the enum",
			store:     func(t *testing.T) storage.OrderStorage { return storage.NewMockOrderStorage(t) },
			status:    model.OrderStatus("archived"),
			wantErr:   true,
			wantInval: true,
		},
		{
			name: "unknown order",
			store: func(t *testing.T) storage.OrderStorage {
				sut := storage.NewMockOrderStorage(t)
				sut.On("UpdateStatus", mock.Anything, "o1", model.StatusShipped, mock.AnythingOfType("time.Time")).
					Return(appErr.NewNotFound("order o1"))
				return sut
			},
			status:  model.StatusShipped,
			wantErr: true,
		},
		{
			name: "cancel is a direct overwrite",
			store: func(t *testing.T) storage.OrderStorage {
				sut := storage.NewMockOrderStorage(t)
				sut.On("UpdateStatus", mock.Anything, "o1", model.StatusCancelled, mock.AnythingOfType("time.Time")).
					Return(nil)
				return sut
			},
			status: model.StatusCancelled,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewOrderService(tt.store(t), event.NewMockPublisher(t), mockLogger)

			err := s.UpdateStatus(context.Background(), "o1", tt.status)
			if (err != nil) != tt.wantErr {
				t.Fatalf("orderService.UpdateStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantInval && !appErr.IsInvalid(err) {
				t.Errorf("orderService.UpdateStatus() error = %v, want validation error", err)
			}
		})
	}
}
