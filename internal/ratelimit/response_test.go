package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/serroba/wardrobe-go/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTooManyRequests(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)

	tests := []struct {
		name       string
		reset      time.Time
		retryAfter int64
	}{
		{name: "whole seconds", reset: now.Add(30 * time.Second), retryAfter: 30},
		{name: "rounds up partial seconds", reset: now.Add(1500 * time.Millisecond), retryAfter: 2},
		{name: "reset now", reset: now, retryAfter: 0},
		{name: "reset in the past clamps to zero", reset: now.Add(-5 * time.Second), retryAfter: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := ratelimit.NewTooManyRequests(tt.reset, now)

			assert.Equal(t, tt.retryAfter, resp.RetryAfter)
			assert.Equal(t, tt.reset.UnixMilli(), resp.ResetMillis)
		})
	}
}

func TestTooManyRequests_WriteHTTP(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	reset := now.Add(12 * time.Second)

	w := httptest.NewRecorder()
	ratelimit.NewTooManyRequests(reset, now).WriteHTTP(w)

	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "12", w.Header().Get("Retry-After"))
	assert.Equal(t, strconv.FormatInt(reset.UnixMilli(), 10), w.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Too many requests. Please slow down."}`, w.Body.String())
}
