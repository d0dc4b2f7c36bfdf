package subscription

import (
	"context"
	"sync"

	"github.com/mehdios/senteur/internal/model"
)

// MemoryStore keeps subscriptions in a mutex-guarded map keyed by endpoint.
// Contents are lost on restart; admins re-subscribe on next page load.
type MemoryStore struct {
	mu   sync.RWMutex
	subs map[string]model.PushSubscription
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[string]model.PushSubscription)}
}

func (s *MemoryStore) Register(_ context.Context, sub model.PushSubscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.Endpoint] = sub
	return nil
}

func (s *MemoryStore) All(_ context.Context) ([]model.PushSubscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.PushSubscription, 0, len(s.subs))
	for _, sub := range s.subs {
		out = append(out, sub)
	}
	return out, nil
}

func (s *MemoryStore) Remove(_ context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, endpoint)
	return nil
}

func (s *MemoryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs), nil
}
