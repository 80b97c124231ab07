package ratelimit

import (
	"context"
	"time"
)

// Window is the state of one sliding window after an admission attempt.
type Window struct {
	// Allowed reports whether the attempt was admitted and recorded.
	Allowed bool
	// Count is the number of admissions inside the window, including this one if allowed.
	Count int64
	// Oldest is the timestamp of the oldest admission still inside the window.
	// It is the zero time when the window is empty.
	Oldest time.Time
}

// Store defines the interface for rate limit data storage.
type Store interface {
	// Record prunes entries older than window, then records an admission at now
	// if fewer than limit admissions remain. The check and the insert are atomic.
	Record(ctx context.Context, key string, limit int64, window time.Duration, now time.Time) (Window, error)
}
