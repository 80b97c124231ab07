package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/wardrobe-go/internal/ratelimit"
)

// ClientSource yields the shared Redis client, resolving it lazily.
type ClientSource interface {
	Client() (*redis.Client, error)
}

// slidingWindowScript prunes, counts, conditionally records and reports the
// oldest entry in a single round trip. Scores are epoch milliseconds.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
local allowed = 0

if count < limit then
	redis.call('ZADD', key, now, ARGV[4])
	count = count + 1
	allowed = 1
end

redis.call('PEXPIRE', key, window)

local oldest = 0
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if first[2] then
	oldest = tonumber(first[2])
end

return {allowed, count, oldest}
`)

// RateLimitRedisStore is a Redis implementation of ratelimit.Store backed by
// one sorted set per key.
type RateLimitRedisStore struct {
	source ClientSource
}

// NewRateLimitRedisStore creates a new Redis-backed rate limit store.
func NewRateLimitRedisStore(source ClientSource) *RateLimitRedisStore {
	return &RateLimitRedisStore{source: source}
}

func (r *RateLimitRedisStore) Record(
	ctx context.Context,
	key string,
	limit int64,
	window time.Duration,
	now time.Time,
) (ratelimit.Window, error) {
	client, err := r.source.Client()
	if err != nil {
		return ratelimit.Window{}, err
	}

	// Members must be unique so that two admissions in the same millisecond both count.
	member := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())

	res, err := slidingWindowScript.Run(ctx, client, []string{key},
		now.UnixMilli(), window.Milliseconds(), limit, member,
	).Int64Slice()
	if err != nil {
		return ratelimit.Window{}, err
	}

	if len(res) != 3 {
		return ratelimit.Window{}, fmt.Errorf("unexpected sliding window reply: %v", res)
	}

	w := ratelimit.Window{Allowed: res[0] == 1, Count: res[1]}
	if res[2] > 0 {
		w.Oldest = time.UnixMilli(res[2])
	}

	return w, nil
}
