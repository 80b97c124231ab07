package kv

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingConfig is matched by every ConfigError.
var ErrMissingConfig = errors.New("kv: missing configuration")

// DefaultTTL is applied by Set when no positive TTL is given.
const DefaultTTL = 300 * time.Second

// Config holds the remote key-value service parameters.
type Config struct {
	// URL is the service endpoint, either redis://, rediss:// or a bare host:port.
	URL string
	// Token authenticates against the service. It is sent as the Redis password.
	Token string

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ConfigError reports a missing or unusable connection parameter.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("kv: invalid %s: %v", e.Field, e.Err)
	}

	return fmt.Sprintf("kv: %s is not configured", e.Field)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// Validate reports the first missing parameter.
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return &ConfigError{Field: "url"}
	}

	if strings.TrimSpace(c.Token) == "" {
		return &ConfigError{Field: "token"}
	}

	return nil
}

func (c Config) withDefaults() Config {
	if c.DialTimeout <= 0 {
		c.DialTimeout = 2 * time.Second
	}

	if c.ReadTimeout <= 0 {
		c.ReadTimeout = time.Second
	}

	if c.WriteTimeout <= 0 {
		c.WriteTimeout = time.Second
	}

	return c
}
