package subscription

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mehdios/senteur/internal/model"
)

const redisKey = "senteur:push:subscriptions"

// RedisStore persists subscriptions in a Redis hash keyed by endpoint, so
// admin opt-ins survive a process restart.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Register(ctx context.Context, sub model.PushSubscription) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to encode subscription: %w", err)
	}
	if err := s.client.HSet(ctx, redisKey, sub.Endpoint, data).Err(); err != nil {
		return fmt.Errorf("failed to register subscription: %w", err)
	}
	return nil
}

func (s *RedisStore) All(ctx context.Context) ([]model.PushSubscription, error) {
	entries, err := s.client.HGetAll(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	out := make([]model.PushSubscription, 0, len(entries))
	for endpoint, raw := range entries {
		var sub model.PushSubscription
		if err := json.Unmarshal([]byte(raw), &sub); err != nil {
			// drop undecodable entries rather than failing the fan-out
			s.client.HDel(ctx, redisKey, endpoint)
			continue
		}
		out = append(out, sub)
	}
	return out, nil
}

func (s *RedisStore) Remove(ctx context.Context, endpoint string) error {
	if err := s.client.HDel(ctx, redisKey, endpoint).Err(); err != nil {
		return fmt.Errorf("failed to remove subscription: %w", err)
	}
	return nil
}

func (s *RedisStore) Len(ctx context.Context) (int, error) {
	n, err := s.client.HLen(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}
	return int(n), nil
}
