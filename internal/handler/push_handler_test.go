package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mehdios/senteur/internal/config"
	"github.com/mehdios/senteur/internal/model"
	"github.com/mehdios/senteur/internal/realtime"
	"github.com/mehdios/senteur/internal/subscription"
)

type okSender struct{ sent int }

func (s *okSender) Send(_ context.Context, _ model.PushSubscription, _ model.PushPayload) error {
	s.sent++
	return nil
}

func newPushHandler(t *testing.T, store subscription.Store, sender *okSender) *PushHandler {
	t.Helper()
	hub := realtime.NewHub(slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	cfg := config.PushConfig{
		VAPIDPublicKey:  "test-public-key",
		VAPIDPrivateKey: "test-private-key",
		Subject:         "mailto:admin@senteur.ma",
		AdminURL:        "/admin/orders",
	}
	return NewPushHandler(store, sender, hub, cfg, slog.Default())
}

func TestPushHandler_Subscribe(t *testing.T) {
	store := subscription.NewMemoryStore()
	sender := &okSender{}
	h := newPushHandler(t, store, sender)

	body := `{"endpoint":"https://push.example/ep-1","keys":{"p256dh":"k","auth":"a"}}`

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/push-subscription", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Subscribe(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("POST /push-subscription = %d, want 201", rec.Code)
		}

		var resp map[string]string
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp["publicKey"] != "test-public-key" {
			t.Errorf("publicKey = %q, want server VAPID key", resp["publicKey"])
		}
	}

	// registering twice leaves exactly one copy
	n, _ := store.Len(context.Background())
	if n != 1 {
		t.Errorf("store len = %d after duplicate subscribe, want 1", n)
	}
	// each subscribe fires a confirmation push
	if sender.sent != 2 {
		t.Errorf("confirmation pushes = %d, want 2", sender.sent)
	}
}

func TestPushHandler_SubscribeRejectsIncompleteBody(t *testing.T) {
	store := subscription.NewMemoryStore()
	h := newPushHandler(t, store, &okSender{})

	tests := []struct {
		name string
		body string
	}{
		{"missing endpoint", `{"keys":{"p256dh":"k","auth":"a"}}`},
		{"missing keys", `{"endpoint":"https://push.example/ep-1"}`},
		{"malformed json", `{"endpoint":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/push-subscription", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Subscribe(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("POST /push-subscription = %d, want 400", rec.Code)
			}
		})
	}

	if n, _ := store.Len(context.Background()); n != 0 {
		t.Errorf("store len = %d after rejected bodies, want 0", n)
	}
}

func TestPushHandler_TestNotification(t *testing.T) {
	h := newPushHandler(t, subscription.NewMemoryStore(), &okSender{})

	req := httptest.NewRequest(http.MethodPost, "/test-notification", nil)
	rec := httptest.NewRecorder()
	h.TestNotification(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /test-notification = %d, want 200", rec.Code)
	}

	var resp struct {
		OK       bool `json:"ok"`
		Sessions int  `json:"sessions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.OK || resp.Sessions != 0 {
		t.Errorf("response = %+v, want ok with zero sessions", resp)
	}
}
