package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS wardrobe_items (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	name         TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	color        TEXT NOT NULL DEFAULT '',
	brand        TEXT,
	price        BIGINT NOT NULL DEFAULT 0,
	image_url    TEXT,
	wear_count   BIGINT NOT NULL DEFAULT 0,
	last_worn_at TIMESTAMPTZ,
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS wardrobe_items_user_idx ON wardrobe_items (user_id, created_at);

CREATE TABLE IF NOT EXISTS catalog_products (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	brand     TEXT NOT NULL DEFAULT '',
	category  TEXT NOT NULL DEFAULT '',
	color     TEXT NOT NULL DEFAULT '',
	price     BIGINT NOT NULL DEFAULT 0,
	image_url TEXT
);

CREATE TABLE IF NOT EXISTS notifications (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	broadcast_id TEXT NOT NULL,
	title        TEXT NOT NULL,
	body         TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, broadcast_id)
);
`

// Migrate creates the tables used by the Postgres stores if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)

	return err
}
