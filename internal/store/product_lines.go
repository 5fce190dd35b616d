package store

import (
	"context"

	"inventory-service/internal/models"

	"github.com/google/uuid"
)

// CreateProductLine creates a product line; a random SKU is assigned when none is given
func (s *Store) CreateProductLine(ctx context.Context, l *models.ProductLine) error {
	if err := beforeCreateProductLine(l); err != nil {
		return err
	}

	query := `
		INSERT INTO product_lines (price, sku, stock_qty, is_active, "order", weight, product_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return classify(s.q.GetContext(ctx, &l.ID, query,
		l.Price, l.SKU, l.StockQty, l.IsActive, l.Order, l.Weight, l.ProductID))
}

// GetProductLineByID retrieves a product line by ID
func (s *Store) GetProductLineByID(ctx context.Context, id int64) (*models.ProductLine, error) {
	var l models.ProductLine
	err := s.q.GetContext(ctx, &l, "SELECT * FROM product_lines WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err, "product line", id)
	}
	return &l, nil
}

// GetProductLineBySKU retrieves a product line by SKU
func (s *Store) GetProductLineBySKU(ctx context.Context, sku uuid.UUID) (*models.ProductLine, error) {
	var l models.ProductLine
	err := s.q.GetContext(ctx, &l, "SELECT * FROM product_lines WHERE sku = $1", sku)
	if err != nil {
		return nil, notFound(err, "product line", sku)
	}
	return &l, nil
}

// ListProductLines retrieves the lines of a product by position
func (s *Store) ListProductLines(ctx context.Context, productID int64) ([]models.ProductLine, error) {
	lines := []models.ProductLine{}
	err := s.q.SelectContext(ctx, &lines,
		`SELECT * FROM product_lines WHERE product_id = $1 ORDER BY "order", id`, productID)
	return lines, err
}

// ListAllProductLines retrieves every product line
func (s *Store) ListAllProductLines(ctx context.Context) ([]models.ProductLine, error) {
	lines := []models.ProductLine{}
	err := s.q.SelectContext(ctx, &lines, `SELECT * FROM product_lines ORDER BY product_id, "order", id`)
	return lines, err
}

// UpdateProductLine updates a product line. The SKU is never rewritten.
func (s *Store) UpdateProductLine(ctx context.Context, l *models.ProductLine) error {
	if err := models.Validate(l); err != nil {
		return err
	}

	query := `
		UPDATE product_lines
		SET price = $1, stock_qty = $2, is_active = $3, "order" = $4, weight = $5, product_id = $6
		WHERE id = $7
		RETURNING sku`

	err := s.q.GetContext(ctx, &l.SKU, query,
		l.Price, l.StockQty, l.IsActive, l.Order, l.Weight, l.ProductID, l.ID)
	if err != nil {
		return notFound(err, "product line", l.ID)
	}
	return nil
}

// DeleteProductLine deletes a product line with its images and attribute value links
func (s *Store) DeleteProductLine(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "product_lines", "product line", id)
}

// AddAttributeValue links a product line to an attribute value
func (s *Store) AddAttributeValue(ctx context.Context, productLineID, attributeValueID int64) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO product_line_attribute_values (product_line_id, attribute_value_id) VALUES ($1, $2)",
		productLineID, attributeValueID)
	return classify(err)
}

// RemoveAttributeValue unlinks a product line from an attribute value
func (s *Store) RemoveAttributeValue(ctx context.Context, productLineID, attributeValueID int64) error {
	res, err := s.q.ExecContext(ctx,
		"DELETE FROM product_line_attribute_values WHERE product_line_id = $1 AND attribute_value_id = $2",
		productLineID, attributeValueID)
	if err != nil {
		return err
	}
	return checkAffected(res, "attribute value link", attributeValueID)
}

// ListAttributeValuesForLine retrieves the attribute values linked to a product line
func (s *Store) ListAttributeValuesForLine(ctx context.Context, productLineID int64) ([]models.AttributeValue, error) {
	values := []models.AttributeValue{}
	err := s.q.SelectContext(ctx, &values, attributeValueColumns+`
		JOIN product_line_attribute_values plav ON plav.attribute_value_id = av.id
		WHERE plav.product_line_id = $1
		ORDER BY a.name, av.id`, productLineID)
	return values, err
}

// CountAttributeValueLinks counts the attribute value links of a product line
func (s *Store) CountAttributeValueLinks(ctx context.Context, productLineID int64) (int, error) {
	var n int
	err := s.q.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM product_line_attribute_values WHERE product_line_id = $1", productLineID)
	return n, err
}
