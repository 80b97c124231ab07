package external_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/serroba/wardrobe-go/internal/external"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient() *http.Client {
	return external.NewClient(zap.NewNop(),
		external.WithMaxRetries(2),
		external.WithRetryWait(time.Millisecond, 5*time.Millisecond),
	)
}

func TestBackgroundRemover_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("returns processed image url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/remove-background", r.URL.Path)
			assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			assert.Equal(t, "https://img.example/shirt.png", body["imageUrl"])

			_, _ = w.Write([]byte(`{"imageUrl":"https://img.example/shirt-nobg.png"}`))
		}))
		defer srv.Close()

		remover := external.NewBackgroundRemover(newTestClient(), srv.URL+"/", "secret")

		got, err := remover.Remove(ctx, "https://img.example/shirt.png")

		require.NoError(t, err)
		assert.Equal(t, "https://img.example/shirt-nobg.png", got)
	})

	t.Run("retries server errors", func(t *testing.T) {
		var calls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			_, _ = w.Write([]byte(`{"imageUrl":"https://img.example/ok.png"}`))
		}))
		defer srv.Close()

		got, err := external.NewBackgroundRemover(newTestClient(), srv.URL, "k").Remove(ctx, "x")

		require.NoError(t, err)
		assert.Equal(t, "https://img.example/ok.png", got)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not retry upstream rate limiting", func(t *testing.T) {
		var calls atomic.Int32

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := external.NewBackgroundRemover(newTestClient(), srv.URL, "k").Remove(ctx, "x")

		require.ErrorIs(t, err, external.ErrUpstream)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("wraps persistent failures", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := external.NewBackgroundRemover(newTestClient(), srv.URL, "k").Remove(ctx, "x")

		assert.ErrorIs(t, err, external.ErrUpstream)
	})

	t.Run("requires an endpoint", func(t *testing.T) {
		_, err := external.NewBackgroundRemover(newTestClient(), "", "k").Remove(ctx, "x")

		assert.ErrorIs(t, err, external.ErrNotConfigured)
	})
}

func TestIdentityProvider_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the email", func(t *testing.T) {
		var got map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/password-reset", r.URL.Path)
			_ = json.NewDecoder(r.Body).Decode(&got)
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		err := external.NewIdentityProvider(newTestClient(), srv.URL).RequestPasswordReset(ctx, "a@example.com")

		require.NoError(t, err)
		assert.Equal(t, "a@example.com", got["email"])
	})

	t.Run("wraps client errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		err := external.NewIdentityProvider(newTestClient(), srv.URL).RequestPasswordReset(ctx, "a@example.com")

		assert.ErrorIs(t, err, external.ErrUpstream)
	})

	t.Run("requires a base url", func(t *testing.T) {
		err := external.NewIdentityProvider(newTestClient(), "").RequestPasswordReset(ctx, "a@example.com")

		assert.ErrorIs(t, err, external.ErrNotConfigured)
	})
}
