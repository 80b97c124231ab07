package kv

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// Connection owns the process-wide client. The client is built on first use
// and reused by every caller afterwards.
type Connection struct {
	cfg    Config
	mu     sync.Mutex
	client atomic.Pointer[redis.Client]
}

// NewConnection creates a lazy connection. No network activity or validation
// happens until Client is called.
func NewConnection(cfg Config) *Connection {
	return &Connection{cfg: cfg.withDefaults()}
}

// Client returns the shared client, constructing it on the first call.
// A *ConfigError is returned when the URL or token is missing.
func (c *Connection) Client() (*redis.Client, error) {
	if client := c.client.Load(); client != nil {
		return client, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if client := c.client.Load(); client != nil {
		return client, nil
	}

	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := parseOptions(c.cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	c.client.Store(client)

	return client, nil
}

// Ping checks connectivity, constructing the client if needed.
func (c *Connection) Ping(ctx context.Context) error {
	client, err := c.Client()
	if err != nil {
		return err
	}

	return client.Ping(ctx).Err()
}

// Shutdown closes the client if it was ever created.
func (c *Connection) Shutdown() error {
	if client := c.client.Load(); client != nil {
		return client.Close()
	}

	return nil
}

func parseOptions(cfg Config) (*redis.Options, error) {
	var opts *redis.Options

	if strings.Contains(cfg.URL, "://") {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, &ConfigError{Field: "url", Err: err}
		}

		opts = parsed
	} else {
		opts = &redis.Options{Addr: cfg.URL}
	}

	opts.Password = cfg.Token
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	return opts, nil
}
