package health

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/ratelimit"
	"go.uber.org/zap"
)

const (
	statusOK        = "ok"
	statusDegraded  = "degraded"
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health check operations.
type Handler struct {
	kv       Checker
	database Checker
	timeout  time.Duration
	logger   *zap.Logger
}

// NewHandler creates a new health handler. database may be nil when the
// service runs on in-memory repositories.
func NewHandler(kv, database Checker, logger *zap.Logger) *Handler {
	return &Handler{kv: kv, database: database, timeout: 2 * time.Second, logger: logger}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status   string `json:"status"`
		KV       string `json:"kv"`
		Database string `json:"database,omitempty"`
	}
}

// Check performs a health check of the application and its dependencies.
// It always answers 200 so load balancers keep routing while the shared
// store recovers.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp := &Response{}
	resp.Body.Status = statusOK
	resp.Body.KV = h.probe(ctx, "kv", h.kv)

	if h.database != nil {
		resp.Body.Database = h.probe(ctx, "database", h.database)
	}

	if resp.Body.KV == statusUnhealthy || resp.Body.Database == statusUnhealthy {
		resp.Body.Status = statusDegraded
	}

	return resp, nil
}

func (h *Handler) probe(ctx context.Context, name string, c Checker) string {
	if err := c.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))

		return statusUnhealthy
	}

	return statusHealthy
}

// RegisterRoutes registers health check routes. Health probes are never rate limited.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Service health",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
