package store

import (
	"context"

	"inventory-service/internal/models"
)

// CreateProductImage creates an image of a product line
func (s *Store) CreateProductImage(ctx context.Context, img *models.ProductImage) error {
	if err := models.Validate(img); err != nil {
		return err
	}

	query := `
		INSERT INTO product_images (alternative_text, url, "order", product_line_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return classify(s.q.GetContext(ctx, &img.ID, query,
		img.AlternativeText, img.URL, img.Order, img.ProductLineID))
}

// GetProductImageByID retrieves a product image by ID
func (s *Store) GetProductImageByID(ctx context.Context, id int64) (*models.ProductImage, error) {
	var img models.ProductImage
	err := s.q.GetContext(ctx, &img, "SELECT * FROM product_images WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err, "product image", id)
	}
	return &img, nil
}

// ListProductImages retrieves the images of a product line by position
func (s *Store) ListProductImages(ctx context.Context, productLineID int64) ([]models.ProductImage, error) {
	images := []models.ProductImage{}
	err := s.q.SelectContext(ctx, &images,
		`SELECT * FROM product_images WHERE product_line_id = $1 ORDER BY "order", id`, productLineID)
	return images, err
}

// UpdateProductImage updates a product image
func (s *Store) UpdateProductImage(ctx context.Context, img *models.ProductImage) error {
	if err := models.Validate(img); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx, `
		UPDATE product_images
		SET alternative_text = $1, url = $2, "order" = $3, product_line_id = $4
		WHERE id = $5`,
		img.AlternativeText, img.URL, img.Order, img.ProductLineID, img.ID)
	if err != nil {
		return classify(err)
	}
	return checkAffected(res, "product image", img.ID)
}

// DeleteProductImage deletes a product image
func (s *Store) DeleteProductImage(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "product_images", "product image", id)
}
