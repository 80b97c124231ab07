package handlers

import (
	"context"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/wardrobe-go/internal/messaging"
	"github.com/serroba/wardrobe-go/internal/notifications"
	"go.uber.org/zap"
)

// BroadcastHandler queues admin announcements for fan-out by the consumer.
type BroadcastHandler struct {
	publish messaging.Publish[notifications.BroadcastEvent]
	admins  []string
	newID   func() string
	now     func() time.Time
	logger  *zap.Logger
}

func NewBroadcastHandler(
	publish messaging.Publish[notifications.BroadcastEvent],
	admins []string,
	newID func() string,
	logger *zap.Logger,
) *BroadcastHandler {
	return &BroadcastHandler{
		publish: publish,
		admins:  admins,
		newID:   newID,
		now:     time.Now,
		logger:  logger,
	}
}

func (h *BroadcastHandler) Send(ctx context.Context, req *BroadcastRequest) (*BroadcastResponse, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(h.admins, userID) {
		return nil, huma.Error403Forbidden("admin access required")
	}

	event := &notifications.BroadcastEvent{
		ID:     h.newID(),
		Title:  req.Body.Title,
		Body:   req.Body.Body,
		SentBy: userID,
		SentAt: h.now().UTC(),
	}

	if err := h.publish(ctx, event); err != nil {
		h.logger.Error("failed to publish broadcast",
			zap.String("broadcast_id", event.ID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to queue broadcast")
	}

	h.logger.Info("broadcast queued",
		zap.String("broadcast_id", event.ID),
		zap.String("sent_by", userID),
	)

	resp := &BroadcastResponse{}
	resp.Body.ID = event.ID
	resp.Body.Status = "queued"

	return resp, nil
}
