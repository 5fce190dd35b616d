package service

import (
	"context"

	"inventory-service/internal/models"

	"github.com/google/uuid"
)

// CreateProductLine creates a product line
func (s *CatalogService) CreateProductLine(ctx context.Context, l *models.ProductLine) error {
	err := s.write(ctx, models.EntityProductLine, opCreate, func(ctx context.Context) error {
		return s.store.CreateProductLine(ctx, l)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogCreated, entity: models.EntityProductLine, id: l.ID})
	return nil
}

// GetProductLine retrieves a product line by ID
func (s *CatalogService) GetProductLine(ctx context.Context, id int64) (*models.ProductLine, error) {
	return traced(ctx, "GetProductLine", func(ctx context.Context) (*models.ProductLine, error) {
		return s.store.GetProductLineByID(ctx, id)
	})
}

// GetProductLineBySKU retrieves a product line by SKU
func (s *CatalogService) GetProductLineBySKU(ctx context.Context, sku uuid.UUID) (*models.ProductLine, error) {
	return traced(ctx, "GetProductLineBySKU", func(ctx context.Context) (*models.ProductLine, error) {
		return s.store.GetProductLineBySKU(ctx, sku)
	})
}

// ListProductLines retrieves the lines of a product, or every line when productID is 0
func (s *CatalogService) ListProductLines(ctx context.Context, productID int64) ([]models.ProductLine, error) {
	return traced(ctx, "ListProductLines", func(ctx context.Context) ([]models.ProductLine, error) {
		if productID == 0 {
			return s.store.ListAllProductLines(ctx)
		}
		return s.store.ListProductLines(ctx, productID)
	})
}

// UpdateProductLine updates a product line
func (s *CatalogService) UpdateProductLine(ctx context.Context, l *models.ProductLine) error {
	err := s.write(ctx, models.EntityProductLine, opUpdate, func(ctx context.Context) error {
		return s.store.UpdateProductLine(ctx, l)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProductLine, id: l.ID})
	return nil
}

// DeleteProductLine deletes a product line with its images and attribute value links
func (s *CatalogService) DeleteProductLine(ctx context.Context, id int64) error {
	err := s.write(ctx, models.EntityProductLine, opDelete, func(ctx context.Context) error {
		return s.store.DeleteProductLine(ctx, id)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogDeleted, entity: models.EntityProductLine, id: id})
	return nil
}

// AddAttributeValue links a product line to an attribute value
func (s *CatalogService) AddAttributeValue(ctx context.Context, productLineID, attributeValueID int64) error {
	err := s.write(ctx, models.EntityProductLine, opLink, func(ctx context.Context) error {
		return s.store.AddAttributeValue(ctx, productLineID, attributeValueID)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProductLine, id: productLineID})
	return nil
}

// RemoveAttributeValue unlinks a product line from an attribute value
func (s *CatalogService) RemoveAttributeValue(ctx context.Context, productLineID, attributeValueID int64) error {
	err := s.write(ctx, models.EntityProductLine, opUnlink, func(ctx context.Context) error {
		return s.store.RemoveAttributeValue(ctx, productLineID, attributeValueID)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProductLine, id: productLineID})
	return nil
}

// ListAttributeValuesForLine retrieves the attribute values linked to a product line
func (s *CatalogService) ListAttributeValuesForLine(ctx context.Context, productLineID int64) ([]models.AttributeValue, error) {
	return traced(ctx, "ListAttributeValuesForLine", func(ctx context.Context) ([]models.AttributeValue, error) {
		return s.store.ListAttributeValuesForLine(ctx, productLineID)
	})
}

// CreateProductImage creates a product image
func (s *CatalogService) CreateProductImage(ctx context.Context, img *models.ProductImage) error {
	err := s.write(ctx, models.EntityProductImage, opCreate, func(ctx context.Context) error {
		return s.store.CreateProductImage(ctx, img)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogCreated, entity: models.EntityProductImage, id: img.ID})
	return nil
}

// GetProductImage retrieves a product image by ID
func (s *CatalogService) GetProductImage(ctx context.Context, id int64) (*models.ProductImage, error) {
	return traced(ctx, "GetProductImage", func(ctx context.Context) (*models.ProductImage, error) {
		return s.store.GetProductImageByID(ctx, id)
	})
}

// ListProductImages retrieves the images of a product line by position
func (s *CatalogService) ListProductImages(ctx context.Context, productLineID int64) ([]models.ProductImage, error) {
	return traced(ctx, "ListProductImages", func(ctx context.Context) ([]models.ProductImage, error) {
		return s.store.ListProductImages(ctx, productLineID)
	})
}

// UpdateProductImage updates a product image
func (s *CatalogService) UpdateProductImage(ctx context.Context, img *models.ProductImage) error {
	err := s.write(ctx, models.EntityProductImage, opUpdate, func(ctx context.Context) error {
		return s.store.UpdateProductImage(ctx, img)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProductImage, id: img.ID})
	return nil
}

// DeleteProductImage deletes a product image
func (s *CatalogService) DeleteProductImage(ctx context.Context, id int64) error {
	err := s.write(ctx, models.EntityProductImage, opDelete, func(ctx context.Context) error {
		return s.store.DeleteProductImage(ctx, id)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogDeleted, entity: models.EntityProductImage, id: id})
	return nil
}
