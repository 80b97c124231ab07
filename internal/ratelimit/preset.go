package ratelimit

import (
	"errors"
	"time"
)

var ErrUnknownLimiter = errors.New("unknown rate limiter")

// Name identifies one of the fixed limiter presets.
type Name string

const (
	// Auth guards signup, credential and password-reset endpoints.
	Auth Name = "auth"
	// API guards general authenticated reads and writes.
	API Name = "api"
	// Heavy guards expensive operations such as broadcasts and background removal.
	Heavy Name = "heavy"
	// Public guards unauthenticated browse endpoints.
	Public Name = "public"
)

// FailurePolicy decides the outcome when the store cannot be reached.
type FailurePolicy int

const (
	// FailOpen admits requests while the store is unavailable.
	FailOpen FailurePolicy = iota
	// FailClosed rejects requests while the store is unavailable.
	FailClosed
)

func (p FailurePolicy) String() string {
	if p == FailClosed {
		return "closed"
	}

	return "open"
}

// Preset is the configuration of a named limiter.
type Preset struct {
	Tokens int64
	Window time.Duration
	Policy FailurePolicy
}

// Presets returns the built-in limiter table.
func Presets() map[Name]Preset {
	return map[Name]Preset{
		Auth:   {Tokens: 5, Window: 600 * time.Second, Policy: FailClosed},
		API:    {Tokens: 60, Window: 60 * time.Second, Policy: FailOpen},
		Heavy:  {Tokens: 10, Window: 60 * time.Second, Policy: FailClosed},
		Public: {Tokens: 30, Window: 60 * time.Second, Policy: FailOpen},
	}
}
