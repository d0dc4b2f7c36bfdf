package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mehdios/senteur/internal/config"
	"github.com/mehdios/senteur/internal/model"
	"github.com/mehdios/senteur/internal/push"
	"github.com/mehdios/senteur/internal/realtime"
	"github.com/mehdios/senteur/internal/subscription"
)

type PushHandler struct {
	store  subscription.Store
	sender push.Sender
	hub    *realtime.Hub
	cfg    config.PushConfig
	logger *slog.Logger
}

func NewPushHandler(
	store subscription.Store,
	sender push.Sender,
	hub *realtime.Hub,
	cfg config.PushConfig,
	logger *slog.Logger,
) *PushHandler {
	return &PushHandler{store: store, sender: sender, hub: hub, cfg: cfg, logger: logger}
}

// Subscribe registers a browser push subscription, answers with the VAPID
// public key and fires a confirmation push at the new endpoint.
func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var sub model.PushSubscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		h.logger.Warn("invalid request body for Subscribe")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if sub.Endpoint == "" || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		http.Error(w, "endpoint and keys are required", http.StatusBadRequest)
		return
	}

	if err := h.store.Register(r.Context(), sub); err != nil {
		h.logger.Error("failed to register subscription", slog.Any("error", err))
		http.Error(w, "failed to register subscription", http.StatusInternalServerError)
		return
	}

	h.logger.Info("push subscription registered", slog.String("endpoint", sub.Endpoint))

	// confirmation push, best-effort
	if err := h.sender.Send(r.Context(), sub, model.PushPayload{
		Title: "Notifications activées",
		Body:  "Vous serez alerté à chaque nouvelle commande.",
		Data:  model.PushDeepLink{URL: h.cfg.AdminURL},
	}); err != nil {
		h.logger.Warn("confirmation push failed", slog.Any("error", err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"publicKey": h.cfg.VAPIDPublicKey})
}

// TestNotification triggers a diagnostic broadcast on the admin group.
func (h *PushHandler) TestNotification(w http.ResponseWriter, r *http.Request) {
	err := h.hub.Broadcast("test-notification", map[string]interface{}{
		"message":   "test notification from server",
		"timestamp": time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("test broadcast failed", slog.Any("error", err))
		http.Error(w, "broadcast failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ok":       true,
		"sessions": h.hub.Sessions(),
	})
}
