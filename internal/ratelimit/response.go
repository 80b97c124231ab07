package ratelimit

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// TooManyRequestsMessage is the fixed body message of every rejection.
const TooManyRequestsMessage = "Too many requests. Please slow down."

// TooManyRequests is the rejection response sent to a limited caller.
type TooManyRequests struct {
	// RetryAfter is whole seconds until reset, rounded up, never negative.
	RetryAfter int64
	// ResetMillis is the reset instant in epoch milliseconds.
	ResetMillis int64
}

type tooManyRequestsBody struct {
	Error string `json:"error"`
}

// NewTooManyRequests builds the rejection for a window resetting at reset.
func NewTooManyRequests(reset, now time.Time) *TooManyRequests {
	seconds := math.Ceil(reset.Sub(now).Seconds())

	return &TooManyRequests{
		RetryAfter:  max(int64(seconds), 0),
		ResetMillis: reset.UnixMilli(),
	}
}

// Headers returns the response headers of the rejection.
func (t *TooManyRequests) Headers() map[string]string {
	return map[string]string{
		"Content-Type":      "application/json",
		"Retry-After":       strconv.FormatInt(t.RetryAfter, 10),
		"X-RateLimit-Reset": strconv.FormatInt(t.ResetMillis, 10),
	}
}

// Body returns the JSON body of the rejection.
func (t *TooManyRequests) Body() []byte {
	b, _ := json.Marshal(tooManyRequestsBody{Error: TooManyRequestsMessage})

	return b
}

// WriteHTTP writes the rejection to a plain net/http response.
func (t *TooManyRequests) WriteHTTP(w http.ResponseWriter) {
	for k, v := range t.Headers() {
		w.Header().Set(k, v)
	}

	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write(t.Body())
}

// WriteHuma writes the rejection through a huma context.
func (t *TooManyRequests) WriteHuma(ctx huma.Context) {
	for k, v := range t.Headers() {
		ctx.SetHeader(k, v)
	}

	ctx.SetStatus(http.StatusTooManyRequests)
	_, _ = ctx.BodyWriter().Write(t.Body())
}
