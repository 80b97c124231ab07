package cache

import (
	"context"
	"strings"
	"time"

	"github.com/serroba/wardrobe-go/internal/kv"
	"github.com/serroba/wardrobe-go/internal/metrics"
)

// Status tells whether a read-through result came from the cache.
type Status string

const (
	Hit  Status = "HIT"
	Miss Status = "MISS"
)

// Compute produces the authoritative value on a cache miss.
type Compute[T any] func(ctx context.Context) (T, error)

// ReadThrough returns the cached value for key, or computes, stores and
// returns it. Errors from compute are returned unchanged and nothing is
// cached. Store failures degrade to a miss. The only other error is a
// *kv.ConfigError.
func ReadThrough[T any](ctx context.Context, s *kv.Store, key string, ttl time.Duration, compute Compute[T]) (T, Status, error) {
	domain := domainOf(key)

	cached, ok, err := kv.Get[T](ctx, s, key)
	if err != nil {
		var zero T

		return zero, Miss, err
	}

	if ok {
		metrics.CacheLookups.WithLabelValues(domain, "hit").Inc()

		return cached, Hit, nil
	}

	metrics.CacheLookups.WithLabelValues(domain, "miss").Inc()

	value, err := compute(ctx)
	if err != nil {
		var zero T

		return zero, Miss, err
	}

	if err := kv.Set(ctx, s, key, value, ttl); err != nil {
		return value, Miss, err
	}

	return value, Miss, nil
}

func domainOf(key string) string {
	domain, _, _ := strings.Cut(key, ":")

	return domain
}
