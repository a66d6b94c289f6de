package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens and pings a PostgreSQL connection.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// schemaStatements holds the marketplace DDL. Package-level so tests can
// cross-check store queries against the table definitions.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		bio TEXT NOT NULL DEFAULT '',
		craft TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		artisan_id UUID NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL CHECK (price > 0),
		currency TEXT NOT NULL DEFAULT 'INR',
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		sold INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		images JSONB NOT NULL DEFAULT '[]',
		materials JSONB NOT NULL DEFAULT '[]',
		tags JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_artisan ON products (artisan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category_status ON products (category, status)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		buyer_id UUID NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		currency TEXT NOT NULL,
		status TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		shipping_address JSONB NOT NULL,
		status_history JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		cancelled_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders (buyer_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id UUID NOT NULL REFERENCES orders(id),
		product_id UUID NOT NULL,
		artisan_id UUID NOT NULL,
		title TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		subtotal NUMERIC(12,2) NOT NULL,
		image TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_artisan ON order_items (artisan_id)`,
}

// EnsureSchema creates the marketplace tables if they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
