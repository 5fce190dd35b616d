package service

import (
	"context"

	"inventory-service/internal/models"
)

// CreateAttribute creates an attribute
func (s *CatalogService) CreateAttribute(ctx context.Context, a *models.Attribute) error {
	err := s.write(ctx, models.EntityAttribute, opCreate, func(ctx context.Context) error {
		return s.store.CreateAttribute(ctx, a)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogCreated, entity: models.EntityAttribute, id: a.ID})
	return nil
}

// GetAttribute retrieves an attribute by ID
func (s *CatalogService) GetAttribute(ctx context.Context, id int64) (*models.Attribute, error) {
	return traced(ctx, "GetAttribute", func(ctx context.Context) (*models.Attribute, error) {
		return s.store.GetAttributeByID(ctx, id)
	})
}

// ListAttributes retrieves every attribute
func (s *CatalogService) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	return traced(ctx, "ListAttributes", s.store.ListAttributes)
}

// UpdateAttribute updates an attribute
func (s *CatalogService) UpdateAttribute(ctx context.Context, a *models.Attribute) error {
	err := s.write(ctx, models.EntityAttribute, opUpdate, func(ctx context.Context) error {
		return s.store.UpdateAttribute(ctx, a)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityAttribute, id: a.ID})
	return nil
}

// DeleteAttribute deletes an attribute with its values
func (s *CatalogService) DeleteAttribute(ctx context.Context, id int64) error {
	err := s.write(ctx, models.EntityAttribute, opDelete, func(ctx context.Context) error {
		return s.store.DeleteAttribute(ctx, id)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogDeleted, entity: models.EntityAttribute, id: id})
	return nil
}

// CreateAttributeValue creates an attribute value
func (s *CatalogService) CreateAttributeValue(ctx context.Context, v *models.AttributeValue) error {
	err := s.write(ctx, models.EntityAttributeValue, opCreate, func(ctx context.Context) error {
		return s.store.CreateAttributeValue(ctx, v)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogCreated, entity: models.EntityAttributeValue, id: v.ID})
	return nil
}

// GetAttributeValue retrieves an attribute value by ID
func (s *CatalogService) GetAttributeValue(ctx context.Context, id int64) (*models.AttributeValue, error) {
	return traced(ctx, "GetAttributeValue", func(ctx context.Context) (*models.AttributeValue, error) {
		return s.store.GetAttributeValueByID(ctx, id)
	})
}

// ListAttributeValues retrieves the values of an attribute, or every value when attributeID is 0
func (s *CatalogService) ListAttributeValues(ctx context.Context, attributeID int64) ([]models.AttributeValue, error) {
	return traced(ctx, "ListAttributeValues", func(ctx context.Context) ([]models.AttributeValue, error) {
		if attributeID == 0 {
			return s.store.ListAllAttributeValues(ctx)
		}
		return s.store.ListAttributeValues(ctx, attributeID)
	})
}

// UpdateAttributeValue updates an attribute value
func (s *CatalogService) UpdateAttributeValue(ctx context.Context, v *models.AttributeValue) error {
	err := s.write(ctx, models.EntityAttributeValue, opUpdate, func(ctx context.Context) error {
		return s.store.UpdateAttributeValue(ctx, v)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityAttributeValue, id: v.ID})
	return nil
}

// DeleteAttributeValue deletes an attribute value and its product line links
func (s *CatalogService) DeleteAttributeValue(ctx context.Context, id int64) error {
	err := s.write(ctx, models.EntityAttributeValue, opDelete, func(ctx context.Context) error {
		return s.store.DeleteAttributeValue(ctx, id)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogDeleted, entity: models.EntityAttributeValue, id: id})
	return nil
}
