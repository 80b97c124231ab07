package cache

import (
	"context"

	"github.com/serroba/wardrobe-go/internal/kv"
)

// Invalidator deletes the entries a write makes stale. Calls are synchronous
// and must complete before the write reports success.
type Invalidator struct {
	store *kv.Store
}

func NewInvalidator(store *kv.Store) *Invalidator {
	return &Invalidator{store: store}
}

// UserItemsChanged is called after any wardrobe item of userID is added,
// worn, updated or deleted.
func (i *Invalidator) UserItemsChanged(ctx context.Context, userID string) error {
	return kv.Del(ctx, i.store, AnalyticsKey(userID))
}
