package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/wardrobe-go/internal/ratelimit"
)

// RateLimitMemoryStore is an in-memory implementation of ratelimit.Store.
// Windows are only shared within one process.
type RateLimitMemoryStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimitMemoryStore creates a new in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		requests: make(map[string][]time.Time),
	}
}

func (s *RateLimitMemoryStore) Record(
	_ context.Context,
	key string,
	limit int64,
	window time.Duration,
	now time.Time,
) (ratelimit.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-window)

	timestamps := s.requests[key]
	valid := make([]time.Time, 0, len(timestamps)+1)

	for _, ts := range timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}

	allowed := int64(len(valid)) < limit
	if allowed {
		valid = append(valid, now)
	}

	if len(valid) == 0 {
		delete(s.requests, key)

		return ratelimit.Window{Allowed: allowed}, nil
	}

	s.requests[key] = valid

	return ratelimit.Window{
		Allowed: allowed,
		Count:   int64(len(valid)),
		Oldest:  valid[0],
	}, nil
}
