package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/serroba/wardrobe-go/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		forwardedFor string
		userID       string
		want         string
	}{
		{name: "user id wins over address", forwardedFor: "1.2.3.4", userID: "u1", want: "user:u1"},
		{name: "first forwarded entry", forwardedFor: "1.2.3.4, 5.6.7.8", want: "ip:1.2.3.4"},
		{name: "single forwarded entry", forwardedFor: "1.2.3.4", want: "ip:1.2.3.4"},
		{name: "whitespace is trimmed", forwardedFor: "  9.9.9.9  ,10.0.0.1", want: "ip:9.9.9.9"},
		{name: "no header", want: "ip:unknown"},
		{name: "empty first entry", forwardedFor: " , 1.2.3.4", want: "ip:unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ratelimit.Identifier(tt.forwardedFor, tt.userID))
		})
	}
}

func TestIdentifierFromRequest(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")

	assert.Equal(t, "ip:1.2.3.4", ratelimit.IdentifierFromRequest(req, ""))
	assert.Equal(t, "user:abc", ratelimit.IdentifierFromRequest(req, "abc"))
}
