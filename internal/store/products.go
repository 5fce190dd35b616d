package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"inventory-service/internal/models"
)

// CreateProduct creates a product, stamping created_at/updated_at and deriving its slug when none is given
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := beforeCreateProduct(p); err != nil {
		return err
	}

	query := `
		INSERT INTO products (pid, name, slug, description, is_digital, created_at, updated_at,
			is_active, stock_status, category_id, seasonal_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	return classify(s.q.GetContext(ctx, &p.ID, query,
		p.PID, p.Name, p.Slug, p.Description, p.IsDigital, p.CreatedAt, p.UpdatedAt,
		p.IsActive, p.StockStatus, p.CategoryID, p.SeasonalEventID))
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.q.GetContext(ctx, &p, "SELECT * FROM products WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err, "product", id)
	}
	return &p, nil
}

// GetProductBySlug retrieves a product by slug
func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var p models.Product
	err := s.q.GetContext(ctx, &p, "SELECT * FROM products WHERE slug = $1", slug)
	if err != nil {
		return nil, notFound(err, "product", slug)
	}
	return &p, nil
}

// ListProducts retrieves products matching the filter; Search matches names case-insensitively
func (s *Store) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	var (
		where []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.CategoryID != nil {
		add("category_id = $%d", *f.CategoryID)
	}
	if f.SeasonalEventID != nil {
		add("seasonal_event_id = $%d", *f.SeasonalEventID)
	}
	if f.StockStatus != nil {
		add("stock_status = $%d", *f.StockStatus)
	}
	if f.IsActive != nil {
		add("is_active = $%d", *f.IsActive)
	}
	if f.Search != "" {
		add("name ILIKE '%%' || $%d || '%%'", escapeLike(f.Search))
	}

	query := "SELECT * FROM products"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	products := []models.Product{}
	err := s.q.SelectContext(ctx, &products, query, args...)
	return products, err
}

// UpdateProduct updates a product. updated_at is refreshed, created_at is never
// touched and an empty slug or stock status keeps the stored value.
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := beforeUpdateProduct(p); err != nil {
		return err
	}

	query := `
		UPDATE products
		SET pid = $1, name = $2, slug = COALESCE(NULLIF($3, ''), slug), description = $4,
			is_digital = $5, updated_at = $6, is_active = $7,
			stock_status = COALESCE(NULLIF($8, ''), stock_status),
			category_id = $9, seasonal_event_id = $10
		WHERE id = $11
		RETURNING slug, created_at, stock_status`

	var row struct {
		Slug        string    `db:"slug"`
		CreatedAt   time.Time `db:"created_at"`
		StockStatus string    `db:"stock_status"`
	}
	err := s.q.GetContext(ctx, &row, query,
		p.PID, p.Name, p.Slug, p.Description, p.IsDigital, p.UpdatedAt, p.IsActive,
		p.StockStatus, p.CategoryID, p.SeasonalEventID, p.ID)
	if err != nil {
		return notFound(err, "product", p.ID)
	}

	p.Slug = row.Slug
	p.CreatedAt = row.CreatedAt
	p.StockStatus = row.StockStatus
	return nil
}

// DeleteProduct deletes a product. It fails with ErrReferenceIntegrity while
// product lines exist; product type links are removed.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "products", "product", id)
}

// AddProductType links a product to a product type
func (s *Store) AddProductType(ctx context.Context, productID, productTypeID int64) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO product_product_types (product_id, product_type_id) VALUES ($1, $2)",
		productID, productTypeID)
	return classify(err)
}

// RemoveProductType unlinks a product from a product type
func (s *Store) RemoveProductType(ctx context.Context, productID, productTypeID int64) error {
	res, err := s.q.ExecContext(ctx,
		"DELETE FROM product_product_types WHERE product_id = $1 AND product_type_id = $2",
		productID, productTypeID)
	if err != nil {
		return err
	}
	return checkAffected(res, "product type link", productTypeID)
}

// ListProductTypesForProduct retrieves the product types linked to a product
func (s *Store) ListProductTypesForProduct(ctx context.Context, productID int64) ([]models.ProductType, error) {
	types := []models.ProductType{}
	err := s.q.SelectContext(ctx, &types, `
		SELECT pt.* FROM product_types pt
		JOIN product_product_types ppt ON ppt.product_type_id = pt.id
		WHERE ppt.product_id = $1
		ORDER BY pt.name, pt.id`, productID)
	return types, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
