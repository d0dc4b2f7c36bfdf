// Package notifier fans a persisted order event out to the notification
// transports: the realtime admin hub first, then a bounded concurrent Web
// Push pass over every stored subscription. Delivery is best-effort;
// failures are logged, never propagated to the order path.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/mehdios/senteur/internal/metrics"
	"github.com/mehdios/senteur/internal/model"
	"github.com/mehdios/senteur/internal/push"
	"github.com/mehdios/senteur/internal/realtime"
	"github.com/mehdios/senteur/internal/subscription"
)

// EventNewOrder is the realtime event name the admin panel listens for.
const EventNewOrder = "new-order"

type Dispatcher struct {
	hub         *realtime.Hub
	subs        subscription.Store
	sender      push.Sender
	adminURL    string
	workerLimit int
	pushTimeout time.Duration
	l           *slog.Logger
	tracer      trace.Tracer
}

func NewDispatcher(
	hub *realtime.Hub,
	subs subscription.Store,
	sender push.Sender,
	adminURL string,
	workerLimit int,
	pushTimeout time.Duration,
	logger *slog.Logger,
) *Dispatcher {
	if workerLimit <= 0 {
		workerLimit = 8
	}
	return &Dispatcher{
		hub:         hub,
		subs:        subs,
		sender:      sender,
		adminURL:    adminURL,
		workerLimit: workerLimit,
		pushTimeout: pushTimeout,
		l:           logger.With("component", "notifier"),
		tracer:      otel.Tracer("notifier"),
	}
}

// HandleOrderEvent delivers one order event to both transports. The push
// pass waits for every delivery to settle but does not abort on partial
// failure; a failed subscription is pruned from the store.
func (d *Dispatcher) HandleOrderEvent(ctx context.Context, ev model.OrderEvent) error {
	ctx, span := d.tracer.Start(ctx, "HandleOrderEvent")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", ev.Order.ID))

	if err := d.hub.Broadcast(EventNewOrder, struct {
		Order     model.OrderSummary `json:"order"`
		Timestamp time.Time          `json:"timestamp"`
	}{Order: ev.Order, Timestamp: ev.Timestamp}); err != nil {
		d.l.Error("realtime broadcast failed",
			slog.String("order_id", ev.Order.ID),
			slog.Any("error", err))
	}

	d.pushFanOut(ctx, ev.Order)
	return nil
}

func (d *Dispatcher) pushFanOut(ctx context.Context, order model.OrderSummary) {
	subs, err := d.subs.All(ctx)
	if err != nil {
		d.l.Error("failed to snapshot subscriptions", slog.Any("error", err))
		return
	}
	if len(subs) == 0 {
		return
	}

	payload := model.PushPayload{
		Title: "Nouvelle commande",
		Body:  fmt.Sprintf("%s — %.0f MAD (%s)", order.Name, order.Total, order.City),
		Icon:  "/icons/icon-192.png",
		Badge: "/icons/badge-72.png",
		Data:  model.PushDeepLink{OrderID: order.ID, URL: d.adminURL},
	}

	d.l.Info("push fan-out started",
		slog.String("order_id", order.ID),
		slog.Int("subscriptions", len(subs)))

	eg, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, d.workerLimit)

	for _, sub := range subs {
		sub := sub
		sem <- struct{}{}
		eg.Go(func() error {
			defer func() { <-sem }()
			d.deliver(ctx, sub, payload)
			// per-subscription failures are handled by pruning, not
			// by aborting the batch
			return nil
		})
	}
	eg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, sub model.PushSubscription, payload model.PushPayload) {
	sendCtx, cancel := context.WithTimeout(ctx, d.pushTimeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, sub, payload); err != nil {
		metrics.PushDeliveries.WithLabelValues("failed").Inc()
		d.l.Warn("push delivery failed, pruning subscription",
			slog.String("endpoint", sub.Endpoint),
			slog.Any("error", err))
		if rmErr := d.subs.Remove(ctx, sub.Endpoint); rmErr != nil {
			d.l.Error("failed to prune subscription",
				slog.String("endpoint", sub.Endpoint),
				slog.Any("error", rmErr))
		}
		return
	}
	metrics.PushDeliveries.WithLabelValues("sent").Inc()
}
