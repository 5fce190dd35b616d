package store

import (
	"context"
	"fmt"
	"strings"
)

// table is the DDL of one catalog table
type table struct {
	name string
	ddl  string
}

// tables lists the catalog DDL in dependency order. Delete policies:
// parent categories/product types and products with lines are protected,
// product references to categories and seasonal events are nulled,
// everything else cascades.
var tables = []table{
	{"categories", `
	CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		slug VARCHAR(255) NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		parent_id BIGINT REFERENCES categories(id) ON DELETE RESTRICT
	);
	CREATE INDEX IF NOT EXISTS idx_categories_parent ON categories(parent_id);`},

	{"seasonal_events", `
	CREATE TABLE IF NOT EXISTS seasonal_events (
		id BIGSERIAL PRIMARY KEY,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL,
		name VARCHAR(100) NOT NULL UNIQUE
	);`},

	{"product_types", `
	CREATE TABLE IF NOT EXISTS product_types (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		parent_id BIGINT REFERENCES product_types(id) ON DELETE RESTRICT
	);
	CREATE INDEX IF NOT EXISTS idx_product_types_parent ON product_types(parent_id);`},

	{"products", `
	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		pid VARCHAR(255) NOT NULL,
		name VARCHAR(100) NOT NULL UNIQUE,
		slug VARCHAR(255) NOT NULL UNIQUE,
		description TEXT,
		is_digital BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		stock_status VARCHAR(3) NOT NULL DEFAULT 'OOS'
			CONSTRAINT products_stock_status_check CHECK (stock_status IN ('IS', 'OOS', 'BO')),
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		seasonal_event_id BIGINT REFERENCES seasonal_events(id) ON DELETE SET NULL
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
	CREATE INDEX IF NOT EXISTS idx_products_seasonal_event ON products(seasonal_event_id);`},

	{"product_product_types", `
	CREATE TABLE IF NOT EXISTS product_product_types (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		product_type_id BIGINT NOT NULL REFERENCES product_types(id) ON DELETE CASCADE,
		UNIQUE (product_id, product_type_id)
	);`},

	{"attributes", `
	CREATE TABLE IF NOT EXISTS attributes (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		description TEXT
	);`},

	{"attribute_values", `
	CREATE TABLE IF NOT EXISTS attribute_values (
		id BIGSERIAL PRIMARY KEY,
		attribute_value VARCHAR(100) NOT NULL,
		attribute_id BIGINT NOT NULL REFERENCES attributes(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_attribute_values_attribute ON attribute_values(attribute_id);`},

	{"product_lines", `
	CREATE TABLE IF NOT EXISTS product_lines (
		id BIGSERIAL PRIMARY KEY,
		price NUMERIC(5, 2) NOT NULL,
		sku UUID NOT NULL UNIQUE,
		stock_qty INTEGER NOT NULL DEFAULT 0
			CONSTRAINT product_lines_stock_qty_check CHECK (stock_qty >= 0),
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		"order" INTEGER NOT NULL,
		weight DOUBLE PRECISION NOT NULL,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE RESTRICT
	);
	CREATE INDEX IF NOT EXISTS idx_product_lines_product ON product_lines(product_id);`},

	{"product_line_attribute_values", `
	CREATE TABLE IF NOT EXISTS product_line_attribute_values (
		id BIGSERIAL PRIMARY KEY,
		product_line_id BIGINT NOT NULL REFERENCES product_lines(id) ON DELETE CASCADE,
		attribute_value_id BIGINT NOT NULL REFERENCES attribute_values(id) ON DELETE CASCADE,
		UNIQUE (product_line_id, attribute_value_id)
	);`},

	{"product_images", `
	CREATE TABLE IF NOT EXISTS product_images (
		id BIGSERIAL PRIMARY KEY,
		alternative_text VARCHAR(100) NOT NULL,
		url VARCHAR(255) NOT NULL,
		"order" INTEGER NOT NULL,
		product_line_id BIGINT NOT NULL REFERENCES product_lines(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_product_images_line ON product_images(product_line_id);`},
}

// TableNames returns the catalog tables in creation order
func TableNames() []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.name
	}
	return names
}

// SchemaSQL returns the DDL Migrate runs, one table per paragraph
func SchemaSQL() string {
	var b strings.Builder
	for _, t := range tables {
		fmt.Fprintf(&b, "-- %s\n%s\n\n", t.name, strings.TrimSpace(t.ddl))
	}
	return b.String()
}

// Migrate creates every catalog table that does not exist yet
func (s *Store) Migrate(ctx context.Context) error {
	return s.WithTx(ctx, func(tx *Store) error {
		for _, t := range tables {
			if _, err := tx.q.ExecContext(ctx, t.ddl); err != nil {
				return fmt.Errorf("failed to create table %s: %w", t.name, err)
			}
		}
		return nil
	})
}
