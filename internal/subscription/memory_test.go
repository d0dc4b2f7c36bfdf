package subscription

import (
	"context"
	"testing"

	"github.com/mehdios/senteur/internal/model"
)

func testSub(endpoint string) model.PushSubscription {
	return model.PushSubscription{
		Endpoint: endpoint,
		Keys:     model.SubscriptionKeys{P256dh: "p256dh-key", Auth: "auth-key"},
	}
}

func TestMemoryStore_RegisterIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sub := testSub("https://push.example/ep-1")
	if err := store.Register(ctx, sub); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := store.Register(ctx, sub); err != nil {
		t.Fatalf("Register() second call error = %v", err)
	}

	n, err := store.Len(ctx)
	if err != nil {
		t.Fatalf("Len() error = %v", err)
	}
	if n != 1 {
		t.Errorf("Len() = %d after duplicate registration, want 1", n)
	}
}

func TestMemoryStore_Remove(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	store.Register(ctx, testSub("https://push.example/ep-1"))
	store.Register(ctx, testSub("https://push.example/ep-2"))

	if err := store.Remove(ctx, "https://push.example/ep-1"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	// removing an absent endpoint is a no-op
	if err := store.Remove(ctx, "https://push.example/ep-1"); err != nil {
		t.Fatalf("Remove() repeat error = %v", err)
	}

	subs, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if len(subs) != 1 || subs[0].Endpoint != "https://push.example/ep-2" {
		t.Errorf("All() = %+v, want only ep-2", subs)
	}
}

func TestMemoryStore_AllReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Register(ctx, testSub("https://push.example/ep-1"))

	snapshot, _ := store.All(ctx)
	store.Remove(ctx, "https://push.example/ep-1")

	if len(snapshot) != 1 {
		t.Errorf("snapshot mutated by later Remove, len = %d", len(snapshot))
	}
}
