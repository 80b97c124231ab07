package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/cache"
	"github.com/serroba/wardrobe-go/internal/external"
	"github.com/serroba/wardrobe-go/internal/kv"
	"github.com/serroba/wardrobe-go/internal/wardrobe"
	"go.uber.org/zap"
)

// ImageProcessor removes the background of an item image.
type ImageProcessor interface {
	Remove(ctx context.Context, imageURL string) (string, error)
}

// ItemHandler handles the caller's wardrobe and its analytics.
type ItemHandler struct {
	items       wardrobe.ItemRepository
	kv          *kv.Store
	invalidator *cache.Invalidator
	images      ImageProcessor
	ttl         time.Duration
	newID       func() string
	now         func() time.Time
	logger      *zap.Logger
}

func NewItemHandler(
	items wardrobe.ItemRepository,
	store *kv.Store,
	images ImageProcessor,
	ttl time.Duration,
	newID func() string,
	logger *zap.Logger,
) *ItemHandler {
	return &ItemHandler{
		items:       items,
		kv:          store,
		invalidator: cache.NewInvalidator(store),
		images:      images,
		ttl:         ttl,
		newID:       newID,
		now:         time.Now,
		logger:      logger,
	}
}

func (h *ItemHandler) List(ctx context.Context, _ *struct{}) (*ListItemsResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	items, err := h.items.ListByUser(ctx, userID)
	if err != nil {
		h.logger.Error("failed to list items", zap.String("user_id", userID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to list items")
	}

	resp := &ListItemsResponse{}
	resp.Body.Items = items

	if resp.Body.Items == nil {
		resp.Body.Items = []wardrobe.Item{}
	}

	return resp, nil
}

func (h *ItemHandler) Create(ctx context.Context, req *CreateItemRequest) (*ItemResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	item := &wardrobe.Item{
		ID:        h.newID(),
		UserID:    userID,
		Name:      req.Body.Name,
		Category:  req.Body.Category,
		Color:     req.Body.Color,
		Brand:     req.Body.Brand,
		Price:     req.Body.Price,
		ImageURL:  req.Body.ImageURL,
		CreatedAt: h.now().UTC(),
	}

	if err := h.items.Create(ctx, item); err != nil {
		h.logger.Error("failed to create item", zap.String("user_id", userID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save item")
	}

	if err := h.changed(ctx, userID); err != nil {
		return nil, err
	}

	return &ItemResponse{Body: item}, nil
}

func (h *ItemHandler) LogWear(ctx context.Context, req *ItemRequest) (*ItemResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	item, err := h.items.LogWear(ctx, userID, req.ID, h.now().UTC())
	if err != nil {
		return nil, h.itemError("failed to log wear", userID, req.ID, err)
	}

	if err := h.changed(ctx, userID); err != nil {
		return nil, err
	}

	return &ItemResponse{Body: item}, nil
}

func (h *ItemHandler) Delete(ctx context.Context, req *ItemRequest) (*struct{}, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.items.Delete(ctx, userID, req.ID); err != nil {
		return nil, h.itemError("failed to delete item", userID, req.ID, err)
	}

	if err := h.changed(ctx, userID); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *ItemHandler) RemoveBackground(ctx context.Context, req *ItemRequest) (*ItemResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	item, err := h.items.Get(ctx, userID, req.ID)
	if err != nil {
		return nil, h.itemError("failed to load item", userID, req.ID, err)
	}

	if item.ImageURL == "" {
		return nil, huma.Error422UnprocessableEntity("item has no image")
	}

	processed, err := h.images.Remove(ctx, item.ImageURL)
	if errors.Is(err, external.ErrNotConfigured) {
		return nil, huma.Error503ServiceUnavailable("background removal is not available")
	}

	if err != nil {
		h.logger.Error("background removal failed",
			zap.String("user_id", userID),
			zap.String("item_id", req.ID),
			zap.Error(err),
		)

		return nil, huma.Error502BadGateway("background removal failed")
	}

	item, err = h.items.UpdateImage(ctx, userID, req.ID, processed)
	if err != nil {
		return nil, h.itemError("failed to update image", userID, req.ID, err)
	}

	if err := h.changed(ctx, userID); err != nil {
		return nil, err
	}

	return &ItemResponse{Body: item}, nil
}

func (h *ItemHandler) Analytics(ctx context.Context, _ *struct{}) (*AnalyticsResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	analytics, status, err := cache.ReadThrough(ctx, h.kv, cache.AnalyticsKey(userID), h.ttl,
		func(ctx context.Context) (*wardrobe.Analytics, error) {
			items, err := h.items.ListByUser(ctx, userID)
			if err != nil {
				return nil, err
			}

			return wardrobe.ComputeAnalytics(items, wardrobe.DefaultTopN), nil
		})
	if err != nil {
		h.logger.Error("failed to compute analytics", zap.String("user_id", userID), zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to compute analytics")
	}

	return &AnalyticsResponse{Cache: string(status), Body: analytics}, nil
}

// changed drops cached views of the user's wardrobe before the write is acknowledged.
func (h *ItemHandler) changed(ctx context.Context, userID string) error {
	if err := h.invalidator.UserItemsChanged(ctx, userID); err != nil {
		h.logger.Error("cache invalidation failed", zap.String("user_id", userID), zap.Error(err))

		return huma.Error500InternalServerError("failed to invalidate cache")
	}

	return nil
}

func (h *ItemHandler) itemError(msg, userID, itemID string, err error) error {
	if errors.Is(err, wardrobe.ErrNotFound) {
		return huma.Error404NotFound("item not found")
	}

	h.logger.Error(msg,
		zap.String("user_id", userID),
		zap.String("item_id", itemID),
		zap.Error(err),
	)

	return huma.Error500InternalServerError(msg)
}
