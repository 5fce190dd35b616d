package store

import (
	"context"

	"inventory-service/internal/models"
)

// CreateProductType creates a product type
func (s *Store) CreateProductType(ctx context.Context, pt *models.ProductType) error {
	if err := beforeSaveProductType(pt); err != nil {
		return err
	}

	return classify(s.q.GetContext(ctx, &pt.ID,
		"INSERT INTO product_types (name, parent_id) VALUES ($1, $2) RETURNING id",
		pt.Name, pt.ParentID))
}

// GetProductTypeByID retrieves a product type by ID
func (s *Store) GetProductTypeByID(ctx context.Context, id int64) (*models.ProductType, error) {
	var pt models.ProductType
	err := s.q.GetContext(ctx, &pt, "SELECT * FROM product_types WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err, "product type", id)
	}
	return &pt, nil
}

// ListProductTypes retrieves all product types
func (s *Store) ListProductTypes(ctx context.Context) ([]models.ProductType, error) {
	types := []models.ProductType{}
	err := s.q.SelectContext(ctx, &types, "SELECT * FROM product_types ORDER BY name, id")
	return types, err
}

// ListProductTypeChildren retrieves the direct children of a product type
func (s *Store) ListProductTypeChildren(ctx context.Context, parentID int64) ([]models.ProductType, error) {
	children := []models.ProductType{}
	err := s.q.SelectContext(ctx, &children,
		"SELECT * FROM product_types WHERE parent_id = $1 ORDER BY name, id", parentID)
	return children, err
}

// UpdateProductType updates a product type
func (s *Store) UpdateProductType(ctx context.Context, pt *models.ProductType) error {
	if err := beforeSaveProductType(pt); err != nil {
		return err
	}
	if err := s.checkParentCycle(ctx, "product_types", "product type", pt.ID, pt.ParentID); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		"UPDATE product_types SET name = $1, parent_id = $2 WHERE id = $3",
		pt.Name, pt.ParentID, pt.ID)
	if err != nil {
		return classify(err)
	}
	return checkAffected(res, "product type", pt.ID)
}

// DeleteProductType deletes a product type. It fails with ErrReferenceIntegrity
// while child types exist; links to products are removed.
func (s *Store) DeleteProductType(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "product_types", "product type", id)
}
