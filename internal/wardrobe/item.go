package wardrobe

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("item not found")

// Item is a piece of clothing owned by a user. Prices are in cents.
type Item struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Color      string     `json:"color"`
	Brand      string     `json:"brand,omitempty"`
	Price      int64      `json:"price"`
	ImageURL   string     `json:"imageUrl,omitempty"`
	WearCount  int64      `json:"wearCount"`
	LastWornAt *time.Time `json:"lastWornAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ItemRepository stores wardrobe items. Lookups are always scoped to the
// owning user; an item owned by someone else is reported as ErrNotFound.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	Get(ctx context.Context, userID, itemID string) (*Item, error)
	ListByUser(ctx context.Context, userID string) ([]Item, error)
	LogWear(ctx context.Context, userID, itemID string, at time.Time) (*Item, error)
	UpdateImage(ctx context.Context, userID, itemID, imageURL string) (*Item, error)
	Delete(ctx context.Context, userID, itemID string) error
}
