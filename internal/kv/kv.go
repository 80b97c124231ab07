package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/wardrobe-go/internal/metrics"
	"go.uber.org/zap"
)

// Store is the cache-facing view of the connection. Store failures never
// surface from its helpers; they are logged and reported as "no value".
type Store struct {
	conn   *Connection
	logger *zap.Logger
}

// NewStore wraps a connection with JSON get/set/del helpers.
func NewStore(conn *Connection, logger *zap.Logger) *Store {
	return &Store{conn: conn, logger: logger}
}

// Get decodes the value stored under key. ok is false on a miss and on any
// store or decode failure. The only error returned is a *ConfigError.
func Get[T any](ctx context.Context, s *Store, key string) (value T, ok bool, err error) {
	client, err := s.conn.Client()
	if err != nil {
		return value, false, err
	}

	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.failed("get", key, err)
		}

		return value, false, nil
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		s.failed("decode", key, err)

		var zero T

		return zero, false, nil
	}

	return value, true, nil
}

// Set stores value as JSON with the given TTL, or DefaultTTL when ttl <= 0.
// The only error returned is a *ConfigError.
func Set(ctx context.Context, s *Store, key string, value any, ttl time.Duration) error {
	client, err := s.conn.Client()
	if err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	payload, err := json.Marshal(value)
	if err != nil {
		s.failed("encode", key, err)

		return nil
	}

	if err := client.Set(ctx, key, payload, ttl).Err(); err != nil {
		s.failed("set", key, err)
	}

	return nil
}

// Del removes keys in a single call. With no keys it returns immediately
// without resolving the connection. The only error returned is a *ConfigError.
func Del(ctx context.Context, s *Store, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	client, err := s.conn.Client()
	if err != nil {
		return err
	}

	if err := client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn("kv del failed", zap.Strings("keys", keys), zap.Error(err))
		metrics.KVFailures.WithLabelValues("del").Inc()
	}

	return nil
}

func (s *Store) failed(op, key string, err error) {
	s.logger.Warn("kv "+op+" failed", zap.String("key", key), zap.Error(err))
	metrics.KVFailures.WithLabelValues(op).Inc()
}
