package ratelimit_test

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"io"
	"mime/multipart"
	"net/url"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

var errMultipartNotSupported = errors.New("multipart not supported in mock")

// mockHumaContext implements huma.Context for testing metadata lookup and response writing.
type mockHumaContext struct {
	operation *huma.Operation
	headers   map[string]string
	status    int
	body      bytes.Buffer
}

func (m *mockHumaContext) Operation() *huma.Operation {
	return m.operation
}
func (m *mockHumaContext) Context() context.Context          { return context.Background() }
func (m *mockHumaContext) TLS() *tls.ConnectionState         { return nil }
func (m *mockHumaContext) Version() huma.ProtoVersion        { return huma.ProtoVersion{} }
func (m *mockHumaContext) Method() string                    { return "GET" }
func (m *mockHumaContext) Host() string                      { return "" }
func (m *mockHumaContext) RemoteAddr() string                { return "" }
func (m *mockHumaContext) URL() url.URL                      { return url.URL{} }
func (m *mockHumaContext) Param(_ string) string             { return "" }
func (m *mockHumaContext) Query(_ string) string             { return "" }
func (m *mockHumaContext) Header(_ string) string            { return "" }
func (m *mockHumaContext) EachHeader(_ func(string, string)) {}
func (m *mockHumaContext) BodyReader() io.Reader             { return nil }
func (m *mockHumaContext) GetMultipartForm() (*multipart.Form, error) {
	return nil, errMultipartNotSupported
}
func (m *mockHumaContext) SetReadDeadline(_ time.Time) error { return nil }
func (m *mockHumaContext) SetStatus(code int)                { m.status = code }
func (m *mockHumaContext) Status() int                       { return m.status }
func (m *mockHumaContext) AppendHeader(_, _ string)          {}
func (m *mockHumaContext) SetHeader(name, value string) {
	if m.headers == nil {
		m.headers = map[string]string{}
	}

	m.headers[name] = value
}
func (m *mockHumaContext) BodyWriter() io.Writer { return &m.body }

func TestGetEndpointConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		operation *huma.Operation
		wantNil   bool
	}{
		{
			name:      "nil operation returns nil",
			operation: nil,
			wantNil:   true,
		},
		{
			name:      "operation without metadata returns nil",
			operation: &huma.Operation{},
			wantNil:   true,
		},
		{
			name: "operation with wrong type returns nil",
			operation: &huma.Operation{
				Metadata: map[string]any{
					ratelimit.MetadataKey: "wrong type",
				},
			},
			wantNil: true,
		},
		{
			name: "operation with valid config returns config",
			operation: &huma.Operation{
				Metadata: map[string]any{
					ratelimit.MetadataKey: ratelimit.EndpointConfig{
						Limiter:  ratelimit.Heavy,
						Disabled: true,
					},
				},
			},
			wantNil: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := &mockHumaContext{operation: tt.operation}
			cfg := ratelimit.GetEndpointConfig(ctx)

			if tt.wantNil {
				assert.Nil(t, cfg)
			} else {
				assert.NotNil(t, cfg)
				assert.Equal(t, ratelimit.Heavy, cfg.Limiter)
				assert.True(t, cfg.Disabled)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	t.Parallel()

	ctx := &mockHumaContext{operation: &huma.Operation{Metadata: ratelimit.Metadata(ratelimit.Auth)}}

	cfg := ratelimit.GetEndpointConfig(ctx)

	assert.NotNil(t, cfg)
	assert.Equal(t, ratelimit.Auth, cfg.Limiter)
	assert.False(t, cfg.Disabled)
}

func TestTooManyRequests_WriteHuma(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	ctx := &mockHumaContext{}

	ratelimit.NewTooManyRequests(now.Add(2*time.Second), now).WriteHuma(ctx)

	assert.Equal(t, 429, ctx.status)
	assert.Equal(t, "2", ctx.headers["Retry-After"])
	assert.Equal(t, "1700000002000", ctx.headers["X-RateLimit-Reset"])
	assert.JSONEq(t, `{"error":"Too many requests. Please slow down."}`, ctx.body.String())
}
