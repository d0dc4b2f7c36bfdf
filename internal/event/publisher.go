// Package event carries order events from the ingestion path to the
// notifier. Publishing happens after the order is durably persisted; a
// publish failure is logged and never fails the checkout request.
package event

import (
	"context"

	"github.com/mehdios/senteur/internal/model"
)

// Publisher emits an order event to whatever pipeline is configured.
type Publisher interface {
	Publish(ctx context.Context, ev model.OrderEvent) error
}

// Handler consumes order events on the notifier side of the pipeline.
type Handler interface {
	HandleOrderEvent(ctx context.Context, ev model.OrderEvent) error
}
