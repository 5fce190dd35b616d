package store

import (
	"context"

	"inventory-service/internal/models"
)

// CreateCategory creates a category, deriving its slug from the name when none is given
func (s *Store) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := beforeCreateCategory(c); err != nil {
		return err
	}

	query := `
		INSERT INTO categories (name, slug, is_active, parent_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return classify(s.q.GetContext(ctx, &c.ID, query, c.Name, c.Slug, c.IsActive, c.ParentID))
}

// GetCategoryByID retrieves a category by ID
func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := s.q.GetContext(ctx, &c, "SELECT * FROM categories WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err, "category", id)
	}
	return &c, nil
}

// GetCategoryBySlug retrieves a category by slug
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var c models.Category
	err := s.q.GetContext(ctx, &c, "SELECT * FROM categories WHERE slug = $1", slug)
	if err != nil {
		return nil, notFound(err, "category", slug)
	}
	return &c, nil
}

// ListCategories retrieves all categories
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.q.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY name")
	return categories, err
}

// ListCategoryChildren retrieves the direct children of a category
func (s *Store) ListCategoryChildren(ctx context.Context, parentID int64) ([]models.Category, error) {
	children := []models.Category{}
	err := s.q.SelectContext(ctx, &children,
		"SELECT * FROM categories WHERE parent_id = $1 ORDER BY name", parentID)
	return children, err
}

// UpdateCategory updates a category. An empty slug keeps the stored slug;
// a parent below the category itself is rejected.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	if err := beforeUpdateCategory(c); err != nil {
		return err
	}
	if err := s.checkParentCycle(ctx, "categories", "category", c.ID, c.ParentID); err != nil {
		return err
	}

	query := `
		UPDATE categories
		SET name = $1, slug = COALESCE(NULLIF($2, ''), slug), is_active = $3, parent_id = $4
		WHERE id = $5
		RETURNING slug`

	err := s.q.GetContext(ctx, &c.Slug, query, c.Name, c.Slug, c.IsActive, c.ParentID, c.ID)
	if err != nil {
		return notFound(err, "category", c.ID)
	}
	return nil
}

// DeleteCategory deletes a category. It fails with ErrReferenceIntegrity while
// child categories exist; products in the category lose their reference.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "categories", "category", id)
}
