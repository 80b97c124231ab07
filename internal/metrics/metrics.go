package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CacheLookups counts read-through lookups by cache domain and result (hit, miss).
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wardrobe_cache_lookups_total",
	Help: "Number of read-through cache lookups",
}, []string{"domain", "result"})

// KVFailures counts key-value store calls that failed and were swallowed.
var KVFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wardrobe_kv_failures_total",
	Help: "Number of key-value store operations that failed",
}, []string{"op"})

// RateLimitDecisions counts limiter outcomes (allowed, rejected, degraded_open, degraded_closed).
var RateLimitDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wardrobe_ratelimit_decisions_total",
	Help: "Number of rate limit decisions by limiter and outcome",
}, []string{"limiter", "outcome"})

var BroadcastNotifications = promauto.NewCounter(prometheus.CounterOpts{
	Name: "wardrobe_broadcast_notifications_total",
	Help: "Number of notifications inserted by broadcast fan-out",
})

// EventsConsumed counts consumed messages by topic and outcome (ok, failed, dropped).
var EventsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wardrobe_events_consumed_total",
	Help: "Number of stream messages handled by consumers",
}, []string{"topic", "outcome"})
