package service

import (
	"context"

	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
)

// CreateProduct creates a product
func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	err := s.write(ctx, models.EntityProduct, opCreate, func(ctx context.Context) error {
		return s.store.CreateProduct(ctx, p)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogCreated, entity: models.EntityProduct, id: p.ID, slug: p.Slug})
	return nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return traced(ctx, "GetProduct", func(ctx context.Context) (*models.Product, error) {
		return s.store.GetProductByID(ctx, id)
	})
}

// GetProductBySlug retrieves a product by slug through the cache
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return readThrough(ctx, s, "product", redisclient.ProductSlugKey(slug), func(ctx context.Context) (*models.Product, error) {
		return s.store.GetProductBySlug(ctx, slug)
	})
}

// ListProducts retrieves the products matching f
func (s *CatalogService) ListProducts(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	return traced(ctx, "ListProducts", func(ctx context.Context) ([]models.Product, error) {
		return s.store.ListProducts(ctx, f)
	})
}

// UpdateProduct updates a product; a changed slug also drops the cache entry of the old one
func (s *CatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	var stale []string
	err := s.write(ctx, models.EntityProduct, opUpdate, func(ctx context.Context) error {
		prev, err := s.store.GetProductByID(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := s.store.UpdateProduct(ctx, p); err != nil {
			return err
		}
		if prev.Slug != p.Slug {
			stale = append(stale, redisclient.ProductSlugKey(prev.Slug))
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProduct, id: p.ID, slug: p.Slug, staleKeys: stale})
	return nil
}

// DeleteProduct deletes a product; products with lines cannot be deleted
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	var slug string
	err := s.write(ctx, models.EntityProduct, opDelete, func(ctx context.Context) error {
		p, err := s.store.GetProductByID(ctx, id)
		if err != nil {
			return err
		}
		slug = p.Slug
		return s.store.DeleteProduct(ctx, id)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogDeleted, entity: models.EntityProduct, id: id, slug: slug})
	return nil
}

// AddProductType links a product to a product type
func (s *CatalogService) AddProductType(ctx context.Context, productID, productTypeID int64) error {
	err := s.write(ctx, models.EntityProduct, opLink, func(ctx context.Context) error {
		return s.store.AddProductType(ctx, productID, productTypeID)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProduct, id: productID})
	return nil
}

// RemoveProductType unlinks a product from a product type
func (s *CatalogService) RemoveProductType(ctx context.Context, productID, productTypeID int64) error {
	err := s.write(ctx, models.EntityProduct, opUnlink, func(ctx context.Context) error {
		return s.store.RemoveProductType(ctx, productID, productTypeID)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProduct, id: productID})
	return nil
}

// ListProductTypesForProduct retrieves the product types linked to a product
func (s *CatalogService) ListProductTypesForProduct(ctx context.Context, productID int64) ([]models.ProductType, error) {
	return traced(ctx, "ListProductTypesForProduct", func(ctx context.Context) ([]models.ProductType, error) {
		return s.store.ListProductTypesForProduct(ctx, productID)
	})
}

// CreateSeasonalEvent creates a seasonal event
func (s *CatalogService) CreateSeasonalEvent(ctx context.Context, ev *models.SeasonalEvent) error {
	err := s.write(ctx, models.EntitySeasonalEvent, opCreate, func(ctx context.Context) error {
		return s.store.CreateSeasonalEvent(ctx, ev)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogCreated, entity: models.EntitySeasonalEvent, id: ev.ID})
	return nil
}

// GetSeasonalEvent retrieves a seasonal event by ID
func (s *CatalogService) GetSeasonalEvent(ctx context.Context, id int64) (*models.SeasonalEvent, error) {
	return traced(ctx, "GetSeasonalEvent", func(ctx context.Context) (*models.SeasonalEvent, error) {
		return s.store.GetSeasonalEventByID(ctx, id)
	})
}

// ListSeasonalEvents retrieves every seasonal event
func (s *CatalogService) ListSeasonalEvents(ctx context.Context) ([]models.SeasonalEvent, error) {
	return traced(ctx, "ListSeasonalEvents", s.store.ListSeasonalEvents)
}

// UpdateSeasonalEvent updates a seasonal event
func (s *CatalogService) UpdateSeasonalEvent(ctx context.Context, ev *models.SeasonalEvent) error {
	err := s.write(ctx, models.EntitySeasonalEvent, opUpdate, func(ctx context.Context) error {
		return s.store.UpdateSeasonalEvent(ctx, ev)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntitySeasonalEvent, id: ev.ID})
	return nil
}

// DeleteSeasonalEvent deletes a seasonal event; its products keep existing without it
func (s *CatalogService) DeleteSeasonalEvent(ctx context.Context, id int64) error {
	var stale []string
	err := s.write(ctx, models.EntitySeasonalEvent, opDelete, func(ctx context.Context) error {
		products, err := s.store.ListProducts(ctx, models.ProductFilter{SeasonalEventID: &id})
		if err != nil {
			return err
		}
		stale = productSlugKeys(products)
		return s.store.DeleteSeasonalEvent(ctx, id)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogDeleted, entity: models.EntitySeasonalEvent, id: id, staleKeys: stale})
	return nil
}
