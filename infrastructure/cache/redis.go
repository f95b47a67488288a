package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quartetlab/quartet/internal/ports"
)

// RedisStore is a CacheStore backed by Redis, for deployments where
// several instances must share one idempotency cache. TTL enforcement
// is delegated to Redis key expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ ports.CacheStore = (*RedisStore)(nil)

// NewRedisStore wraps an existing Redis client. The prefix namespaces
// every key so Clear cannot touch unrelated data; empty defaults to
// "quartet".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "quartet"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) fullKey(key string) string {
	return s.prefix + ":" + key
}

// Get retrieves a value. A missing or expired key reads as absent; any
// other Redis failure surfaces as a cache error so callers can treat it
// as a forced miss.
func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.fullKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, ports.NewCacheError("get", key, err)
	}
	return val, true, nil
}

// Set stores a value with TTL-based expiry. A zero ttl stores without
// expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.fullKey(key), value, ttl).Err(); err != nil {
		return ports.NewCacheError("set", key, err)
	}
	return nil
}

// Delete removes one key. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.fullKey(key)).Err(); err != nil {
		return ports.NewCacheError("delete", key, err)
	}
	return nil
}

// Clear removes every key under the store's prefix, scanning in batches
// to avoid blocking Redis on large keyspaces.
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return ports.NewCacheError("clear", s.prefix, err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return ports.NewCacheError("clear", s.prefix, err)
	}
	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return ports.NewCacheError("clear", s.prefix, err)
		}
	}
	return nil
}
