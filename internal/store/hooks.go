package store

import (
	"time"

	"inventory-service/internal/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// now is swapped in tests
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Slugify turns a display name into a lowercase, hyphenated, URL-safe identifier
func Slugify(name string) string {
	return slug.Make(name)
}

// deriveSlug fills an empty slug from name; a slug that is already set is kept
func deriveSlug(current, name string) (string, error) {
	if current != "" {
		return current, nil
	}
	s := Slugify(name)
	if s == "" {
		return "", &models.ValidationError{Field: "slug", Message: "cannot derive a slug from name " + name}
	}
	return s, nil
}

func beforeCreateCategory(c *models.Category) error {
	var err error
	if c.Slug, err = deriveSlug(c.Slug, c.Name); err != nil {
		return err
	}
	return models.Validate(c)
}

// beforeUpdateCategory leaves an empty slug empty so the stored one is kept
func beforeUpdateCategory(c *models.Category) error {
	if c.ParentID != nil && c.ID != 0 && *c.ParentID == c.ID {
		return &models.ValidationError{Field: "parent_id", Message: "a category cannot be its own parent"}
	}
	return models.Validate(c)
}

func beforeSaveProductType(pt *models.ProductType) error {
	if pt.ParentID != nil && pt.ID != 0 && *pt.ParentID == pt.ID {
		return &models.ValidationError{Field: "parent_id", Message: "a product type cannot be its own parent"}
	}
	return models.Validate(pt)
}

// beforeCreateProduct stamps both timestamps; created_at is never written again
func beforeCreateProduct(p *models.Product) error {
	var err error
	if p.Slug, err = deriveSlug(p.Slug, p.Name); err != nil {
		return err
	}
	if p.StockStatus == "" {
		p.StockStatus = models.StockStatusOutOfStock
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	return models.Validate(p)
}

// beforeUpdateProduct refreshes updated_at only; an empty slug or stock status keeps the stored one
func beforeUpdateProduct(p *models.Product) error {
	p.UpdatedAt = now()
	return models.Validate(p)
}

// beforeCreateProductLine assigns a random SKU once
func beforeCreateProductLine(l *models.ProductLine) error {
	if l.SKU == uuid.Nil {
		l.SKU = uuid.New()
	}
	return models.Validate(l)
}
