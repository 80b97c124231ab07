package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/cache"
	"github.com/serroba/wardrobe-go/internal/kv"
	"github.com/serroba/wardrobe-go/internal/wardrobe"
	"go.uber.org/zap"
)

// CatalogHandler serves the shared product catalog through the read-through cache.
type CatalogHandler struct {
	catalog wardrobe.CatalogRepository
	kv      *kv.Store
	ttl     time.Duration
	logger  *zap.Logger
}

func NewCatalogHandler(catalog wardrobe.CatalogRepository, store *kv.Store, ttl time.Duration, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		kv:      store,
		ttl:     ttl,
		logger:  logger,
	}
}

func (h *CatalogHandler) Search(ctx context.Context, req *CatalogRequest) (*CatalogResponse, error) {
	q := wardrobe.CatalogQuery{
		Query:  req.Q,
		Filter: req.Filter,
		Limit:  req.Limit,
		Offset: req.Offset,
	}.Normalize()

	page, status, err := cache.ReadThrough(ctx, h.kv, cache.CatalogKey(q), h.ttl,
		func(ctx context.Context) (*wardrobe.CatalogPage, error) {
			return h.catalog.Search(ctx, q)
		})
	if err != nil {
		h.logger.Error("catalog search failed",
			zap.String("q", q.Query),
			zap.String("filter", q.Filter),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to search catalog")
	}

	return &CatalogResponse{Cache: string(status), Body: page}, nil
}
