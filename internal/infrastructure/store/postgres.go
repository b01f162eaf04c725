package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfaware/backend/internal/domain"
)

// Connect opens a pgx connection pool using the provided DSN.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 8
	cfg.MaxConnIdleTime = 5 * time.Minute
	return pgxpool.NewWithConfig(ctx, cfg)
}

// EnsureSchema creates the products table if needed. Keeping the migration in
// code lets a fresh deployment bootstrap itself without extra tooling.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
CREATE TABLE IF NOT EXISTS products (
	upc TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	brand TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	model TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	size TEXT NOT NULL DEFAULT '',
	dimension TEXT NOT NULL DEFAULT '',
	weight TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT 'Other',
	lowest_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	highest_price DOUBLE PRECISION NOT NULL DEFAULT 0,
	currency TEXT NOT NULL DEFAULT 'USD',
	images TEXT[] NOT NULL DEFAULT '{}',
	purchase_date TIMESTAMPTZ NOT NULL,
	expiry_date TIMESTAMPTZ NOT NULL
);`
	_, err := pool.Exec(ctx, stmt)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PostgresStore persists canonical products in Postgres, one row per UPC.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a store over an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// FindByUPC returns the cached product for a barcode. A missing row maps to
// ErrProductNotCached; any other failure wraps ErrStoreUnavailable so the
// resolver treats it as fatal rather than falling through to the remote API.
func (s *PostgresStore) FindByUPC(ctx context.Context, upc string) (*domain.Product, error) {
	var p domain.Product
	row := s.pool.QueryRow(ctx, `
		SELECT upc, title, brand, description, model, color, size, dimension, weight,
		       category, lowest_price, highest_price, currency, images, purchase_date, expiry_date
		FROM products WHERE upc=$1
	`, upc)

	var category string
	err := row.Scan(&p.UPC, &p.Title, &p.Brand, &p.Description, &p.Model, &p.Color,
		&p.Size, &p.Dimension, &p.Weight, &category, &p.LowestPrice, &p.HighestPrice,
		&p.Currency, &p.Images, &p.PurchaseDate, &p.ExpiryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotCached
		}
		return nil, fmt.Errorf("%w: select product: %v", domain.ErrStoreUnavailable, err)
	}

	// Parsing keeps the enum invariant even if the column was edited out of band.
	p.Category = domain.ParseCategory(category)
	return &p, nil
}

// Upsert inserts the product or replaces the existing row for the same UPC.
// Last write wins, which keeps concurrent misses for the same barcode
// harmless.
func (s *PostgresStore) Upsert(ctx context.Context, product *domain.Product) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO products (upc, title, brand, description, model, color, size, dimension, weight,
		                      category, lowest_price, highest_price, currency, images, purchase_date, expiry_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (upc) DO UPDATE SET
			title = EXCLUDED.title,
			brand = EXCLUDED.brand,
			description = EXCLUDED.description,
			model = EXCLUDED.model,
			color = EXCLUDED.color,
			size = EXCLUDED.size,
			dimension = EXCLUDED.dimension,
			weight = EXCLUDED.weight,
			category = EXCLUDED.category,
			lowest_price = EXCLUDED.lowest_price,
			highest_price = EXCLUDED.highest_price,
			currency = EXCLUDED.currency,
			images = EXCLUDED.images,
			purchase_date = EXCLUDED.purchase_date,
			expiry_date = EXCLUDED.expiry_date
	`, product.UPC, product.Title, product.Brand, product.Description, product.Model,
		product.Color, product.Size, product.Dimension, product.Weight, string(product.Category),
		product.LowestPrice, product.HighestPrice, product.Currency, product.Images,
		product.PurchaseDate, product.ExpiryDate)
	if err != nil {
		return fmt.Errorf("%w: upsert product: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
