package ratelimit

import (
	"fmt"
	"maps"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Registry hands out one limiter per preset name. Limiters are built on first
// access and shared afterwards.
type Registry struct {
	store    Store
	presets  map[Name]Preset
	opts     []Option
	mu       sync.Mutex
	limiters atomic.Pointer[map[Name]*SlidingWindowLimiter]
}

// NewRegistry creates a registry over the built-in presets.
func NewRegistry(store Store, logger *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		store:   store,
		presets: Presets(),
		opts:    append([]Option{WithLogger(logger)}, opts...),
	}

	empty := map[Name]*SlidingWindowLimiter{}
	r.limiters.Store(&empty)

	return r
}

// Get returns the limiter for name, constructing it once.
func (r *Registry) Get(name Name) (*SlidingWindowLimiter, error) {
	if l, ok := (*r.limiters.Load())[name]; ok {
		return l, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current := *r.limiters.Load()
	if l, ok := current[name]; ok {
		return l, nil
	}

	preset, ok := r.presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLimiter, name)
	}

	l := NewSlidingWindowLimiter(name, r.store, preset, r.opts...)

	next := maps.Clone(current)
	next[name] = l
	r.limiters.Store(&next)

	return l, nil
}
