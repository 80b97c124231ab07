package middleware

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/handlers"
	"github.com/serroba/wardrobe-go/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimit returns a Huma middleware that admits requests through the limiter
// preset named in the operation metadata (see ratelimit.MetadataKey).
//
// Operations without a preset use Public for anonymous callers and API for
// signed-in ones. Callers are identified by user id when signed in and by the
// first X-Forwarded-For address otherwise, so RequestMeta must run first.
func RateLimit(api huma.API, registry *ratelimit.Registry, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return rateLimit(api, registry, logger, time.Now)
}

func rateLimit(
	api huma.API,
	registry *ratelimit.Registry,
	logger *zap.Logger,
	now func() time.Time,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		cfg := ratelimit.GetEndpointConfig(ctx)
		if cfg != nil && cfg.Disabled {
			next(ctx)

			return
		}

		meta := handlers.RequestMetaFromContext(ctx.Context())
		name := limiterFor(cfg, meta.UserID)

		limiter, err := registry.Get(name)
		if err != nil {
			logger.Error("rate limiter lookup failed",
				zap.String("path", operationPath(ctx)),
				zap.String("limiter", string(name)),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		id := ratelimit.Identifier(ctx.Header("X-Forwarded-For"), meta.UserID)

		decision, err := limiter.Limit(ctx.Context(), id)
		if err != nil {
			logger.Error("rate limiter unavailable",
				zap.String("path", operationPath(ctx)),
				zap.String("limiter", string(limiter.Name())),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "rate limiter is not configured", err)

			return
		}

		if !decision.Success {
			logger.Warn("rate limit exceeded",
				zap.String("path", operationPath(ctx)),
				zap.String("method", ctx.Method()),
				zap.String("limiter", string(limiter.Name())),
				zap.String("identifier", id),
				zap.Bool("degraded", decision.Degraded),
			)
			ratelimit.NewTooManyRequests(decision.Reset, now()).WriteHuma(ctx)

			return
		}

		next(ctx)
	}
}

func limiterFor(cfg *ratelimit.EndpointConfig, userID string) ratelimit.Name {
	switch {
	case cfg != nil && cfg.Limiter != "":
		return cfg.Limiter
	case userID != "":
		return ratelimit.API
	default:
		return ratelimit.Public
	}
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}
