package service

import (
	"context"
	"sort"

	"inventory-service/internal/admin"
	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
)

// CreateCategory creates a category
func (s *CatalogService) CreateCategory(ctx context.Context, c *models.Category) error {
	err := s.write(ctx, models.EntityCategory, opCreate, func(ctx context.Context) error {
		return s.store.CreateCategory(ctx, c)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogCreated, entity: models.EntityCategory, id: c.ID, slug: c.Slug})
	return nil
}

// GetCategory retrieves a category by ID
func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return traced(ctx, "GetCategory", func(ctx context.Context) (*models.Category, error) {
		return s.store.GetCategoryByID(ctx, id)
	})
}

// GetCategoryBySlug retrieves a category by slug
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return traced(ctx, "GetCategoryBySlug", func(ctx context.Context) (*models.Category, error) {
		return s.store.GetCategoryBySlug(ctx, slug)
	})
}

// ListCategories retrieves every category
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return traced(ctx, "ListCategories", s.store.ListCategories)
}

// ListCategoryChildren retrieves the direct children of a category
func (s *CatalogService) ListCategoryChildren(ctx context.Context, parentID int64) ([]models.Category, error) {
	return traced(ctx, "ListCategoryChildren", func(ctx context.Context) ([]models.Category, error) {
		return s.store.ListCategoryChildren(ctx, parentID)
	})
}

// UpdateCategory updates a category
func (s *CatalogService) UpdateCategory(ctx context.Context, c *models.Category) error {
	err := s.write(ctx, models.EntityCategory, opUpdate, func(ctx context.Context) error {
		return s.store.UpdateCategory(ctx, c)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityCategory, id: c.ID, slug: c.Slug})
	return nil
}

// DeleteCategory deletes a category. Products in it lose their category,
// so their cached details are dropped too.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	var stale []string
	err := s.write(ctx, models.EntityCategory, opDelete, func(ctx context.Context) error {
		products, err := s.store.ListProducts(ctx, models.ProductFilter{CategoryID: &id})
		if err != nil {
			return err
		}
		stale = productSlugKeys(products)
		return s.store.DeleteCategory(ctx, id)
	})
	if err != nil {
		return err
	}
	s.announce(ctx, change{eventType: models.EventTypeCatalogDeleted, entity: models.EntityCategory, id: id, staleKeys: stale})
	return nil
}

// CategoryTree returns the categories nested under their parents
func (s *CatalogService) CategoryTree(ctx context.Context) ([]models.Category, error) {
	return readThrough(ctx, s, "category_tree", redisclient.CategoryTreeKey(), func(ctx context.Context) ([]models.Category, error) {
		categories, err := s.store.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return buildCategoryTree(categories), nil
	})
}

// CategoryRows returns the category list view rows with their parent names
func (s *CatalogService) CategoryRows(ctx context.Context) ([]admin.CategoryRow, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return admin.CategoryRows(categories), nil
}

// CategoryParentName returns the name of a category's parent, or nil for a root
func (s *CatalogService) CategoryParentName(ctx context.Context, c *models.Category) (*string, error) {
	return admin.ParentName(ctx, s.store.GetCategoryByID, c)
}

// buildCategoryTree nests categories under their parents. Siblings are sorted by name;
// a category whose parent is not in the list becomes a root.
func buildCategoryTree(categories []models.Category) []models.Category {
	known := make(map[int64]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}

	byParent := make(map[int64][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		if c.ParentID == nil || !known[*c.ParentID] {
			roots = append(roots, c)
			continue
		}
		byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
	}

	var attach func(nodes []models.Category) []models.Category
	attach = func(nodes []models.Category) []models.Category {
		sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Name < nodes[j].Name })
		for i := range nodes {
			nodes[i].Children = attach(byParent[nodes[i].ID])
		}
		if nodes == nil {
			return []models.Category{}
		}
		return nodes
	}

	return attach(roots)
}
