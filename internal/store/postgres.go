package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/wardrobe-go/internal/notifications"
	"github.com/serroba/wardrobe-go/internal/wardrobe"
)

const itemColumns = `id, user_id, name, category, color, brand, price, image_url, wear_count, last_worn_at, created_at`

// ItemPostgresStore is a PostgreSQL implementation of wardrobe.ItemRepository.
type ItemPostgresStore struct {
	pool *pgxpool.Pool
}

// NewItemPostgresStore creates a new PostgreSQL-backed item store.
func NewItemPostgresStore(pool *pgxpool.Pool) *ItemPostgresStore {
	return &ItemPostgresStore{pool: pool}
}

func (p *ItemPostgresStore) Create(ctx context.Context, item *wardrobe.Item) error {
	query := `
		INSERT INTO wardrobe_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := p.pool.Exec(ctx, query,
		item.ID,
		item.UserID,
		item.Name,
		item.Category,
		item.Color,
		item.Brand,
		item.Price,
		item.ImageURL,
		item.WearCount,
		item.LastWornAt,
		item.CreatedAt,
	)

	return err
}

func (p *ItemPostgresStore) Get(ctx context.Context, userID, itemID string) (*wardrobe.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM wardrobe_items WHERE id = $1 AND user_id = $2`

	return scanItem(p.pool.QueryRow(ctx, query, itemID, userID))
}

func (p *ItemPostgresStore) ListByUser(ctx context.Context, userID string) ([]wardrobe.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM wardrobe_items WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := p.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (wardrobe.Item, error) {
		item, err := scanItem(row)
		if err != nil {
			return wardrobe.Item{}, err
		}

		return *item, nil
	})
}

func (p *ItemPostgresStore) LogWear(ctx context.Context, userID, itemID string, at time.Time) (*wardrobe.Item, error) {
	query := `
		UPDATE wardrobe_items
		SET wear_count = wear_count + 1, last_worn_at = $3
		WHERE id = $1 AND user_id = $2
		RETURNING ` + itemColumns

	return scanItem(p.pool.QueryRow(ctx, query, itemID, userID, at))
}

func (p *ItemPostgresStore) UpdateImage(ctx context.Context, userID, itemID, imageURL string) (*wardrobe.Item, error) {
	query := `
		UPDATE wardrobe_items
		SET image_url = $3
		WHERE id = $1 AND user_id = $2
		RETURNING ` + itemColumns

	return scanItem(p.pool.QueryRow(ctx, query, itemID, userID, imageURL))
}

func (p *ItemPostgresStore) Delete(ctx context.Context, userID, itemID string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM wardrobe_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return wardrobe.ErrNotFound
	}

	return nil
}

func scanItem(row pgx.Row) (*wardrobe.Item, error) {
	var item wardrobe.Item

	var brand, imageURL *string

	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.Name,
		&item.Category,
		&item.Color,
		&brand,
		&item.Price,
		&imageURL,
		&item.WearCount,
		&item.LastWornAt,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, wardrobe.ErrNotFound
		}

		return nil, err
	}

	if brand != nil {
		item.Brand = *brand
	}

	if imageURL != nil {
		item.ImageURL = *imageURL
	}

	return &item, nil
}

// CatalogPostgresStore is a PostgreSQL implementation of wardrobe.CatalogRepository.
type CatalogPostgresStore struct {
	pool *pgxpool.Pool
}

func NewCatalogPostgresStore(pool *pgxpool.Pool) *CatalogPostgresStore {
	return &CatalogPostgresStore{pool: pool}
}

// catalogFilter matches free text as a plain substring, so % and _ are literal.
const catalogFilter = `
	WHERE ($1 = '' OR lower(category) = $1)
	  AND ($2 = '' OR strpos(lower(name), $2) > 0
	               OR strpos(lower(brand), $2) > 0
	               OR strpos(lower(color), $2) > 0)
`

func (c *CatalogPostgresStore) Search(ctx context.Context, q wardrobe.CatalogQuery) (*wardrobe.CatalogPage, error) {
	q = q.Normalize()

	query := `
		SELECT id, name, brand, category, color, price, COALESCE(image_url, ''), COUNT(*) OVER ()
		FROM catalog_products
	` + catalogFilter + `
		ORDER BY name, id
		LIMIT $3 OFFSET $4
	`

	rows, err := c.pool.Query(ctx, query, q.Filter, q.Query, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := &wardrobe.CatalogPage{Products: []wardrobe.Product{}, Limit: q.Limit, Offset: q.Offset}

	for rows.Next() {
		var p wardrobe.Product

		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.Color, &p.Price, &p.ImageURL, &page.Total); err != nil {
			return nil, err
		}

		page.Products = append(page.Products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// The window count is absent when the page is past the end.
	if len(page.Products) == 0 && q.Offset > 0 {
		if err := c.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM catalog_products `+catalogFilter,
			q.Filter, q.Query,
		).Scan(&page.Total); err != nil {
			return nil, err
		}
	}

	return page, nil
}

// NotificationPostgresStore is a PostgreSQL implementation of notifications.Store.
type NotificationPostgresStore struct {
	pool *pgxpool.Pool
}

func NewNotificationPostgresStore(pool *pgxpool.Pool) *NotificationPostgresStore {
	return &NotificationPostgresStore{pool: pool}
}

func (n *NotificationPostgresStore) ListUserIDs(ctx context.Context, afterID string, limit int) ([]string, error) {
	rows, err := n.pool.Query(ctx, `SELECT id FROM users WHERE id > $1 ORDER BY id LIMIT $2`, afterID, limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// InsertBatch sends all inserts in one round trip. A redelivered broadcast
// does not duplicate notifications.
func (n *NotificationPostgresStore) InsertBatch(ctx context.Context, batch []notifications.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, broadcast_id, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, broadcast_id) DO NOTHING
	`

	b := &pgx.Batch{}
	for _, item := range batch {
		b.Queue(query, item.ID, item.UserID, item.BroadcastID, item.Title, item.Body, item.CreatedAt)
	}

	if err := n.pool.SendBatch(ctx, b).Close(); err != nil {
		return fmt.Errorf("insert %d notifications: %w", len(batch), err)
	}

	return nil
}
