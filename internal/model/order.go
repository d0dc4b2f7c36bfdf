package model

import "time"

// OrderStatus is the fixed progression an order moves through.
// Transitions are a direct admin overwrite; only membership is validated.
type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusCalled    OrderStatus = "called"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

var validStatuses = map[OrderStatus]struct{}{
	StatusNew:       {},
	StatusCalled:    {},
	StatusConfirmed: {},
	StatusShipped:   {},
	StatusDelivered: {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s OrderStatus) bool {
	_, ok := validStatuses[s]
	return ok
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string `json:"id"`
	Quantity  int    `json:"quantity"`
}

// Order is a checkout submission. An order carries either a single product
// reference or a list of line items.
type Order struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	City      string      `json:"city"`
	Email     string      `json:"email,omitempty"`
	ProductID string      `json:"product,omitempty"`
	Items     []OrderItem `json:"items,omitempty"`
	Subtotal  float64     `json:"subtotal"`
	Shipping  float64     `json:"shipping"`
	Discount  float64     `json:"discount,omitempty"`
	Total     float64     `json:"total"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}
