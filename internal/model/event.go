package model

import "time"

// Event types carried on the order event pipeline.
const (
	EventOrderCreated = "order.created"
)

// OrderSummary is the slice of an order that notification transports need.
type OrderSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Total     float64   `json:"total"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

// OrderEvent is published after an order is durably persisted and consumed
// by the notifier. Notification delivery is never part of order creation's
// success.
type OrderEvent struct {
	Type      string       `json:"type"`
	Order     OrderSummary `json:"order"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewOrderCreated builds the event for a freshly persisted order.
func NewOrderCreated(o *Order) OrderEvent {
	return OrderEvent{
		Type: EventOrderCreated,
		Order: OrderSummary{
			ID:        o.ID,
			Name:      o.Name,
			Total:     o.Total,
			Phone:     o.Phone,
			City:      o.City,
			CreatedAt: o.CreatedAt,
		},
		Timestamp: time.Now().UTC(),
	}
}
