package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mehdios/senteur/internal/model"
	"github.com/mehdios/senteur/internal/realtime"
	"github.com/mehdios/senteur/internal/subscription"
)

// stubSender records delivery attempts and fails for designated endpoints.
type stubSender struct {
	mu       sync.Mutex
	attempts map[string]int
	failing  map[string]bool
}

func newStubSender(failing ...string) *stubSender {
	f := make(map[string]bool, len(failing))
	for _, ep := range failing {
		f[ep] = true
	}
	return &stubSender{attempts: make(map[string]int), failing: f}
}

func (s *stubSender) Send(_ context.Context, sub model.PushSubscription, _ model.PushPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[sub.Endpoint]++
	if s.failing[sub.Endpoint] {
		return fmt.Errorf("push endpoint returned 410")
	}
	return nil
}

func (s *stubSender) attemptCount(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[endpoint]
}

func newTestDispatcher(t *testing.T, sender *stubSender, store subscription.Store) *Dispatcher {
	t.Helper()
	hub := realtime.NewHub(slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return NewDispatcher(hub, store, sender, "/admin/orders", 4, time.Second, slog.Default())
}

func orderEvent(id string) model.OrderEvent {
	return model.OrderEvent{
		Type: model.EventOrderCreated,
		Order: model.OrderSummary{
			ID: id, Name: "Ana", Total: 228, Phone: "0600000000", City: "Rabat",
			CreatedAt: time.Now().UTC(),
		},
		Timestamp: time.Now().UTC(),
	}
}

func register(t *testing.T, store subscription.Store, endpoint string) {
	t.Helper()
	err := store.Register(context.Background(), model.PushSubscription{
		Endpoint: endpoint,
		Keys:     model.SubscriptionKeys{P256dh: "k", Auth: "a"},
	})
	if err != nil {
		t.Fatalf("Register(%s) error = %v", endpoint, err)
	}
}

func TestDispatcher_DeliversToAllSubscriptions(t *testing.T) {
	store := subscription.NewMemoryStore()
	sender := newStubSender()
	d := newTestDispatcher(t, sender, store)

	register(t, store, "https://push.example/ep-1")
	register(t, store, "https://push.example/ep-2")

	if err := d.HandleOrderEvent(context.Background(), orderEvent("o1")); err != nil {
		t.Fatalf("HandleOrderEvent() error = %v", err)
	}

	for _, ep := range []string{"https://push.example/ep-1", "https://push.example/ep-2"} {
		if got := sender.attemptCount(ep); got != 1 {
			t.Errorf("attempts for %s = %d, want 1", ep, got)
		}
	}
}

func TestDispatcher_FailurePrunesSubscription(t *testing.T) {
	store := subscription.NewMemoryStore()
	sender := newStubSender("https://push.example/dead")
	d := newTestDispatcher(t, sender, store)

	register(t, store, "https://push.example/dead")
	register(t, store, "https://push.example/alive")

	if err := d.HandleOrderEvent(context.Background(), orderEvent("o1")); err != nil {
		t.Fatalf("HandleOrderEvent() error = %v", err)
	}

	n, _ := store.Len(context.Background())
	if n != 1 {
		t.Fatalf("store len after failed delivery = %d, want 1", n)
	}

	// a later fan-out never attempts the pruned endpoint again
	if err := d.HandleOrderEvent(context.Background(), orderEvent("o2")); err != nil {
		t.Fatalf("HandleOrderEvent() error = %v", err)
	}
	if got := sender.attemptCount("https://push.example/dead"); got != 1 {
		t.Errorf("attempts for pruned endpoint = %d, want 1", got)
	}
	if got := sender.attemptCount("https://push.example/alive"); got != 2 {
		t.Errorf("attempts for live endpoint = %d, want 2", got)
	}
}

func TestDispatcher_NoSubscriptionsIsANoOp(t *testing.T) {
	store := subscription.NewMemoryStore()
	sender := newStubSender()
	d := newTestDispatcher(t, sender, store)

	if err := d.HandleOrderEvent(context.Background(), orderEvent("o1")); err != nil {
		t.Fatalf("HandleOrderEvent() error = %v", err)
	}
}
