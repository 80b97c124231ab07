package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
)

type requestMetaKey struct{}

// RequestMeta holds HTTP request metadata and the session principal.
type RequestMeta struct {
	ClientIP     string
	UserAgent    string
	ForwardedFor string
	// UserID is empty for anonymous requests.
	UserID string
}

// ContextWithRequestMeta adds request metadata to context.
func ContextWithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext extracts request metadata from context.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if v, ok := ctx.Value(requestMetaKey{}).(RequestMeta); ok {
		return v
	}

	return RequestMeta{}
}

func requireUser(ctx context.Context) (string, error) {
	userID := RequestMetaFromContext(ctx).UserID
	if userID == "" {
		return "", huma.Error401Unauthorized("sign in required")
	}

	return userID, nil
}
