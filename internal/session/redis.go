package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore is a Store backed by Redis with native key expiry. It is the
// drop-in alternative to MemoryStore for multi-replica deployments; the
// 24h TTL semantics are identical.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client as a session Store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, id string, data Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session payload: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Data, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, ErrNotFound
	}
	if err != nil {
		return Data{}, fmt.Errorf("load session %s: %w", id, err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return data, nil
}

// Sweep is a no-op for Redis: expired keys are evicted by the server.
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	return 0, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
