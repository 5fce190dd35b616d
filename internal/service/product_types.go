package service

import (
	"context"

	"inventory-service/internal/models"
)

// CreateProductType creates a product type
func (s *CatalogService) CreateProductType(ctx context.Context, pt *models.ProductType) error {
	err := s.write(ctx, models.EntityProductType, opCreate, func(ctx context.Context) error {
		return s.store.CreateProductType(ctx, pt)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogCreated, entity: models.EntityProductType, id: pt.ID})
	return nil
}

// GetProductType retrieves a product type by ID
func (s *CatalogService) GetProductType(ctx context.Context, id int64) (*models.ProductType, error) {
	return traced(ctx, "GetProductType", func(ctx context.Context) (*models.ProductType, error) {
		return s.store.GetProductTypeByID(ctx, id)
	})
}

// ListProductTypes retrieves every product type
func (s *CatalogService) ListProductTypes(ctx context.Context) ([]models.ProductType, error) {
	return traced(ctx, "ListProductTypes", s.store.ListProductTypes)
}

// ListProductTypeChildren retrieves the direct children of a product type
func (s *CatalogService) ListProductTypeChildren(ctx context.Context, parentID int64) ([]models.ProductType, error) {
	return traced(ctx, "ListProductTypeChildren", func(ctx context.Context) ([]models.ProductType, error) {
		return s.store.ListProductTypeChildren(ctx, parentID)
	})
}

// UpdateProductType updates a product type
func (s *CatalogService) UpdateProductType(ctx context.Context, pt *models.ProductType) error {
	err := s.write(ctx, models.EntityProductType, opUpdate, func(ctx context.Context) error {
		return s.store.UpdateProductType(ctx, pt)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProductType, id: pt.ID})
	return nil
}

// DeleteProductType deletes a product type; types with children cannot be deleted
func (s *CatalogService) DeleteProductType(ctx context.Context, id int64) error {
	err := s.write(ctx, models.EntityProductType, opDelete, func(ctx context.Context) error {
		return s.store.DeleteProductType(ctx, id)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogDeleted, entity: models.EntityProductType, id: id})
	return nil
}
