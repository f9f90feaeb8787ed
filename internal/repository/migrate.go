package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is idempotent; Migrate is safe to run on every start.
const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		brand TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		count_in_stock INTEGER NOT NULL DEFAULT 0 CHECK (count_in_stock >= 0),
		rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		num_reviews INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

	CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (product_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		user_id TEXT NOT NULL,
		shipping_full_name TEXT NOT NULL,
		shipping_address TEXT NOT NULL,
		shipping_city TEXT NOT NULL,
		shipping_postal_code TEXT NOT NULL,
		shipping_country TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		items_price NUMERIC(12,2) NOT NULL,
		shipping_price NUMERIC(12,2) NOT NULL,
		tax_price NUMERIC(12,2) NOT NULL,
		total_price NUMERIC(12,2) NOT NULL,
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		is_delivered BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id TEXT NOT NULL REFERENCES products(id),
		slug TEXT NOT NULL,
		name TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		position INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// Migrate creates the tables the repositories use.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
