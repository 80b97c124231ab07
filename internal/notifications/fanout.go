package notifications

import (
	"context"
	"fmt"

	"github.com/serroba/wardrobe-go/internal/metrics"
	"go.uber.org/zap"
)

// DefaultBatchSize is the number of users handled per insert.
const DefaultBatchSize = 500

// Store persists notifications and pages through recipients.
type Store interface {
	// ListUserIDs returns up to limit user ids ordered ascending, strictly after afterID.
	ListUserIDs(ctx context.Context, afterID string, limit int) ([]string, error)
	InsertBatch(ctx context.Context, batch []Notification) error
}

// Fanout copies a broadcast into every user's notifications, one batch at a time.
type Fanout struct {
	store     Store
	newID     func() string
	batchSize int
	logger    *zap.Logger
}

func NewFanout(store Store, newID func() string, batchSize int, logger *zap.Logger) *Fanout {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Fanout{
		store:     store,
		newID:     newID,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Handle is a messaging.Handler for BroadcastEvent.
func (f *Fanout) Handle(ctx context.Context, event *BroadcastEvent) error {
	after := ""
	total := 0

	for {
		userIDs, err := f.store.ListUserIDs(ctx, after, f.batchSize)
		if err != nil {
			return fmt.Errorf("list recipients after %q: %w", after, err)
		}

		if len(userIDs) == 0 {
			break
		}

		batch := make([]Notification, 0, len(userIDs))
		for _, userID := range userIDs {
			batch = append(batch, Notification{
				ID:          f.newID(),
				UserID:      userID,
				BroadcastID: event.ID,
				Title:       event.Title,
				Body:        event.Body,
				CreatedAt:   event.SentAt,
			})
		}

		if err := f.store.InsertBatch(ctx, batch); err != nil {
			return fmt.Errorf("insert batch after %q: %w", after, err)
		}

		total += len(batch)
		metrics.BroadcastNotifications.Add(float64(len(batch)))

		f.logger.Debug("broadcast batch inserted",
			zap.String("broadcast_id", event.ID),
			zap.Int("size", len(batch)),
		)

		if len(userIDs) < f.batchSize {
			break
		}

		after = userIDs[len(userIDs)-1]
	}

	f.logger.Info("broadcast delivered",
		zap.String("broadcast_id", event.ID),
		zap.Int("recipients", total),
	)

	return nil
}
