package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store is a read-through TTL cache over Redis for CRUD read paths. Entries
// expire after a fixed TTL and are invalidated explicitly on writes; stale
// reads inside the TTL window are accepted.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore wraps a Redis client with the configured entry TTL.
func NewStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{client: client, ttl: ttl, logger: logger}
}

// Get loads a cached value into dest and reports whether it was present.
// Cache errors degrade to a miss.
func (s *Store) Get(ctx context.Context, key string, dest any) bool {
	if s == nil || s.client == nil {
		return false
	}
	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		s.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set stores a value under the fixed TTL. Failures are logged, never fatal.
func (s *Store) Set(ctx context.Context, key string, value any) {
	if s == nil || s.client == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes keys; write paths call this to invalidate.
func (s *Store) Delete(ctx context.Context, keys ...string) {
	if s == nil || s.client == nil || len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Debug("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// UserKey is the cache key for a user read.
func UserKey(id string) string {
	return "user:" + id
}

// ProductKey is the cache key for a product read.
func ProductKey(id string) string {
	return "product:" + id
}
