// Package subscription owns the set of registered Web Push endpoints.
//
// The store is injected into whatever needs it rather than living as a
// package global. Registration is idempotent per endpoint, so the set never
// holds duplicate subscriptions.
package subscription

import (
	"context"

	"github.com/mehdios/senteur/internal/model"
)

// Store holds the push subscriptions of opted-in admins.
type Store interface {
	// Register adds a subscription. Registering an endpoint that is
	// already present is a no-op.
	Register(ctx context.Context, sub model.PushSubscription) error
	// All returns a snapshot of the current subscriptions.
	All(ctx context.Context) ([]model.PushSubscription, error)
	// Remove deletes the subscription with the given endpoint, if present.
	Remove(ctx context.Context, endpoint string) error
	// Len reports the number of stored subscriptions.
	Len(ctx context.Context) (int, error)
}
