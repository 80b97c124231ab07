package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/serroba/wardrobe-go/internal/notifications"
	"github.com/serroba/wardrobe-go/internal/wardrobe"
)

// ItemMemoryStore is an in-memory implementation of wardrobe.ItemRepository.
type ItemMemoryStore struct {
	mu    sync.RWMutex
	items map[string]wardrobe.Item // id -> item
}

// NewItemMemoryStore creates a new in-memory item store.
func NewItemMemoryStore() *ItemMemoryStore {
	return &ItemMemoryStore{
		items: make(map[string]wardrobe.Item),
	}
}

func (m *ItemMemoryStore) Create(_ context.Context, item *wardrobe.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[item.ID] = *item

	return nil
}

func (m *ItemMemoryStore) Get(_ context.Context, userID, itemID string) (*wardrobe.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[itemID]
	if !ok || item.UserID != userID {
		return nil, wardrobe.ErrNotFound
	}

	return &item, nil
}

func (m *ItemMemoryStore) ListByUser(_ context.Context, userID string) ([]wardrobe.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []wardrobe.Item

	for _, item := range m.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}

	slices.SortFunc(out, func(a, b wardrobe.Item) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})

	return out, nil
}

func (m *ItemMemoryStore) LogWear(_ context.Context, userID, itemID string, at time.Time) (*wardrobe.Item, error) {
	return m.update(userID, itemID, func(item *wardrobe.Item) {
		item.WearCount++
		item.LastWornAt = &at
	})
}

func (m *ItemMemoryStore) UpdateImage(_ context.Context, userID, itemID, imageURL string) (*wardrobe.Item, error) {
	return m.update(userID, itemID, func(item *wardrobe.Item) {
		item.ImageURL = imageURL
	})
}

func (m *ItemMemoryStore) Delete(_ context.Context, userID, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[itemID]
	if !ok || item.UserID != userID {
		return wardrobe.ErrNotFound
	}

	delete(m.items, itemID)

	return nil
}

func (m *ItemMemoryStore) update(userID, itemID string, fn func(*wardrobe.Item)) (*wardrobe.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[itemID]
	if !ok || item.UserID != userID {
		return nil, wardrobe.ErrNotFound
	}

	fn(&item)
	m.items[itemID] = item

	return &item, nil
}

// UserIDs lists item owners, used as broadcast recipients without a database.
func (m *ItemMemoryStore) UserIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := map[string]struct{}{}

	var out []string

	for _, item := range m.items {
		if _, ok := seen[item.UserID]; !ok {
			seen[item.UserID] = struct{}{}
			out = append(out, item.UserID)
		}
	}

	slices.Sort(out)

	return out
}

// CatalogMemoryStore is an in-memory implementation of wardrobe.CatalogRepository.
// Its products are fixed at construction.
type CatalogMemoryStore struct {
	products []wardrobe.Product
}

// NewCatalogMemoryStore creates a catalog seeded with products.
func NewCatalogMemoryStore(products ...wardrobe.Product) *CatalogMemoryStore {
	return &CatalogMemoryStore{products: slices.Clone(products)}
}

func (c *CatalogMemoryStore) Search(_ context.Context, q wardrobe.CatalogQuery) (*wardrobe.CatalogPage, error) {
	q = q.Normalize()

	matched := []wardrobe.Product{}

	for _, p := range c.products {
		if q.Matches(p) {
			matched = append(matched, p)
		}
	}

	slices.SortFunc(matched, func(a, b wardrobe.Product) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})

	page := &wardrobe.CatalogPage{Total: len(matched), Limit: q.Limit, Offset: q.Offset}

	start := min(q.Offset, len(matched))
	end := min(start+q.Limit, len(matched))
	page.Products = matched[start:end]

	return page, nil
}

// UserLister supplies broadcast recipients to NotificationMemoryStore.
type UserLister interface {
	UserIDs() []string
}

// NotificationMemoryStore is an in-memory implementation of notifications.Store.
type NotificationMemoryStore struct {
	mu     sync.Mutex
	users  UserLister
	byUser map[string][]notifications.Notification
}

func NewNotificationMemoryStore(users UserLister) *NotificationMemoryStore {
	return &NotificationMemoryStore{
		users:  users,
		byUser: make(map[string][]notifications.Notification),
	}
}

func (n *NotificationMemoryStore) ListUserIDs(_ context.Context, afterID string, limit int) ([]string, error) {
	var out []string

	for _, id := range n.users.UserIDs() {
		if id > afterID && len(out) < limit {
			out = append(out, id)
		}
	}

	return out, nil
}

func (n *NotificationMemoryStore) InsertBatch(_ context.Context, batch []notifications.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, item := range batch {
		existing := n.byUser[item.UserID]
		if slices.ContainsFunc(existing, func(x notifications.Notification) bool {
			return x.BroadcastID == item.BroadcastID
		}) {
			continue
		}

		n.byUser[item.UserID] = append(existing, item)
	}

	return nil
}

// ForUser returns the notifications delivered to userID.
func (n *NotificationMemoryStore) ForUser(userID string) []notifications.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	return slices.Clone(n.byUser[userID])
}
