package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/serroba/wardrobe-go/internal/kv"
	"github.com/serroba/wardrobe-go/internal/metrics"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every window key in the store.
const KeyPrefix = "ratelimit"

// Decision is the outcome of a single Limit call.
type Decision struct {
	Success bool
	// Reset is when the next admission is expected to succeed.
	Reset time.Time
	// Degraded is set when the store failed and the failure policy decided.
	Degraded bool
}

// SlidingWindowLimiter implements rate limiting using a sliding window algorithm.
type SlidingWindowLimiter struct {
	name   Name
	store  Store
	limit  int64
	window time.Duration
	policy FailurePolicy
	logger *zap.Logger
	now    func() time.Time
}

// Option customizes a SlidingWindowLimiter.
type Option func(*SlidingWindowLimiter)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *SlidingWindowLimiter) {
		l.now = now
	}
}

// WithLogger sets the logger used for degraded decisions. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(l *SlidingWindowLimiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewSlidingWindowLimiter creates a new sliding window rate limiter.
func NewSlidingWindowLimiter(name Name, store Store, preset Preset, opts ...Option) *SlidingWindowLimiter {
	l := &SlidingWindowLimiter{
		name:   name,
		store:  store,
		limit:  preset.Tokens,
		window: preset.Window,
		policy: preset.Policy,
		logger: zap.NewNop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Name is the preset this limiter enforces.
func (l *SlidingWindowLimiter) Name() Name {
	return l.name
}

// Limit consumes one token for identifier if any remain in the current window.
//
// Store outages are settled by the preset's failure policy. A store that was
// never configured is not an outage: its *kv.ConfigError is returned as is.
func (l *SlidingWindowLimiter) Limit(ctx context.Context, identifier string) (Decision, error) {
	now := l.now()
	key := l.key(identifier)

	w, err := l.store.Record(ctx, key, l.limit, l.window, now)
	if errors.Is(err, kv.ErrMissingConfig) {
		return Decision{}, err
	}

	if err != nil {
		return l.degraded(key, now, err), nil
	}

	reset := now.Add(l.window)
	if !w.Oldest.IsZero() {
		reset = w.Oldest.Add(l.window)
	}

	outcome := "allowed"
	if !w.Allowed {
		outcome = "rejected"
	}

	metrics.RateLimitDecisions.WithLabelValues(string(l.name), outcome).Inc()

	return Decision{Success: w.Allowed, Reset: reset}, nil
}

func (l *SlidingWindowLimiter) degraded(key string, now time.Time, err error) Decision {
	l.logger.Error("rate limit store unavailable",
		zap.String("limiter", string(l.name)),
		zap.String("key", key),
		zap.Stringer("policy", l.policy),
		zap.Error(err),
	)
	metrics.RateLimitDecisions.WithLabelValues(string(l.name), "degraded_"+l.policy.String()).Inc()

	if l.policy == FailClosed {
		return Decision{Success: false, Reset: now.Add(l.window), Degraded: true}
	}

	return Decision{Success: true, Reset: now, Degraded: true}
}

func (l *SlidingWindowLimiter) key(identifier string) string {
	return KeyPrefix + ":" + string(l.name) + ":" + identifier
}
