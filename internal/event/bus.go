package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mehdios/senteur/internal/model"
)

// Bus is the in-process pipeline used when no Kafka brokers are
// configured: a buffered channel drained by a single dispatch goroutine.
type Bus struct {
	ch      chan model.OrderEvent
	handler Handler
	log     *slog.Logger
}

func NewBus(handler Handler, buffer int, log *slog.Logger) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{
		ch:      make(chan model.OrderEvent, buffer),
		handler: handler,
		log:     log.With("component", "event-bus"),
	}
}

// Publish enqueues the event. A full buffer is reported as an error
// instead of blocking the request path.
func (b *Bus) Publish(ctx context.Context, ev model.OrderEvent) error {
	select {
	case b.ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("event bus full, dropping %s for order %s", ev.Type, ev.Order.ID)
	}
}

// Run drains the bus until ctx is cancelled.
func (b *Bus) Run(ctx context.Context) error {
	b.log.Info("event bus started")
	for {
		select {
		case ev := <-b.ch:
			if err := b.handler.HandleOrderEvent(ctx, ev); err != nil {
				b.log.Error("event handling failed",
					slog.String("type", ev.Type),
					slog.String("order_id", ev.Order.ID),
					slog.Any("error", err))
			}
		case <-ctx.Done():
			b.log.Info("event bus stopped")
			return ctx.Err()
		}
	}
}
