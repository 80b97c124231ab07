package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/auth"
	"github.com/serroba/wardrobe-go/internal/handlers"
	"github.com/serroba/wardrobe-go/internal/ratelimit"
	"go.uber.org/zap"
)

// SessionVerifier resolves a session token to a user id.
type SessionVerifier interface {
	Verify(token string) (string, error)
}

// RequestMeta is a middleware that adds client address, user-agent and the
// session principal to the request context. An invalid session is treated as
// anonymous; handlers that need a user reject the request themselves.
func RequestMeta(_ huma.API, sessions SessionVerifier, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := handlers.RequestMeta{
			ClientIP:     extractClientIP(ctx),
			UserAgent:    ctx.Header("User-Agent"),
			ForwardedFor: ctx.Header("X-Forwarded-For"),
		}

		if token := sessionToken(ctx); token != "" {
			userID, err := sessions.Verify(token)
			if err != nil {
				logger.Debug("ignoring invalid session", zap.String("client_ip", meta.ClientIP), zap.Error(err))
			} else {
				meta.UserID = userID
			}
		}

		newCtx := handlers.ContextWithRequestMeta(ctx.Context(), meta)
		ctx = huma.WithContext(ctx, newCtx)

		next(ctx)
	}
}

// sessionToken reads a bearer token, falling back to the session cookie.
func sessionToken(ctx huma.Context) string {
	if token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	cookies, err := http.ParseCookie(ctx.Header("Cookie"))
	if err != nil {
		return ""
	}

	for _, c := range cookies {
		if c.Name == auth.SessionCookie {
			return c.Value
		}
	}

	return ""
}

func extractClientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		return ratelimit.FirstForwarded(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.RemoteAddr()
	if host == "" {
		host = ctx.Host()
	}

	ip, _, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}

	return ip
}
