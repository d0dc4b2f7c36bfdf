package push

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/mehdios/senteur/internal/config"
	"github.com/mehdios/senteur/internal/model"
)

// Sender delivers a payload to a single push endpoint. One attempt per
// call; retry policy belongs to the caller.
type Sender interface {
	Send(ctx context.Context, sub model.PushSubscription, payload model.PushPayload) error
}

type webpushSender struct {
	cfg config.PushConfig
	log *slog.Logger
}

// NewSender creates a Web Push sender signing requests with the configured
// VAPID key pair.
func NewSender(cfg config.PushConfig, log *slog.Logger) Sender {
	return &webpushSender{cfg: cfg, log: log.With("component", "push")}
}

func (s *webpushSender) Send(ctx context.Context, sub model.PushSubscription, payload model.PushPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.Keys.P256dh,
			Auth:   sub.Keys.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.cfg.Subject,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}

	s.log.Debug("push delivered", slog.String("endpoint", sub.Endpoint))
	return nil
}
