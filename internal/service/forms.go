package service

import (
	"context"
	"fmt"

	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
	"inventory-service/internal/store"
)

// ImageForm is one inline product image row
type ImageForm struct {
	models.ProductImage
	Delete bool `json:"delete,omitempty"`
}

// LineForm is one inline product line row with its own image rows
type LineForm struct {
	models.ProductLine
	Delete          bool                    `json:"delete,omitempty"`
	Images          []ImageForm             `json:"images"`
	AttributeValues []models.AttributeValue `json:"attribute_values,omitempty"`
}

// ProductForm is a product with its nested lines and images.
// ProductTypes is read-only; links are edited through the through-row routes.
type ProductForm struct {
	Product      models.Product       `json:"product"`
	Lines        []LineForm           `json:"lines"`
	ProductTypes []models.ProductType `json:"product_types,omitempty"`
}

// CategoryChildForm is one inline child category row
type CategoryChildForm struct {
	models.Category
	Delete bool `json:"delete,omitempty"`
}

// CategoryForm is a category with its direct children
type CategoryForm struct {
	Category models.Category     `json:"category"`
	Children []CategoryChildForm `json:"children"`
}

// ProductTypeChildForm is one inline child product type row
type ProductTypeChildForm struct {
	models.ProductType
	Delete bool `json:"delete,omitempty"`
}

// ProductTypeForm is a product type with its direct children
type ProductTypeForm struct {
	ProductType models.ProductType     `json:"product_type"`
	Children    []ProductTypeChildForm `json:"children"`
}

// AttributeValueForm is one inline attribute value row
type AttributeValueForm struct {
	models.AttributeValue
	Delete bool `json:"delete,omitempty"`
}

// AttributeForm is an attribute with its values
type AttributeForm struct {
	Attribute models.Attribute     `json:"attribute"`
	Values    []AttributeValueForm `json:"values"`
}

func notOwned(field, entity string, id int64) error {
	return &models.ValidationError{Field: field, Message: fmt.Sprintf("%s %d belongs to another parent", entity, id)}
}

func saved(id int64, created bool, entity, slug string) change {
	eventType := models.EventTypeCatalogUpdated
	if created {
		eventType = models.EventTypeCatalogCreated
	}
	return change{eventType: eventType, entity: entity, id: id, slug: slug}
}

func deleted(id int64, entity string) change {
	return change{eventType: models.EventTypeCatalogDeleted, entity: entity, id: id}
}

// ProductForm loads a product with its lines, their images and attribute values
func (s *CatalogService) ProductForm(ctx context.Context, productID int64) (*ProductForm, error) {
	return traced(ctx, "ProductForm", func(ctx context.Context) (*ProductForm, error) {
		p, err := s.store.GetProductByID(ctx, productID)
		if err != nil {
			return nil, err
		}

		lines, err := s.store.ListProductLines(ctx, productID)
		if err != nil {
			return nil, err
		}

		form := &ProductForm{Product: *p, Lines: make([]LineForm, 0, len(lines))}
		for _, l := range lines {
			images, err := s.store.ListProductImages(ctx, l.ID)
			if err != nil {
				return nil, err
			}
			values, err := s.store.ListAttributeValuesForLine(ctx, l.ID)
			if err != nil {
				return nil, err
			}

			line := LineForm{ProductLine: l, Images: make([]ImageForm, 0, len(images)), AttributeValues: values}
			for _, img := range images {
				line.Images = append(line.Images, ImageForm{ProductImage: img})
			}
			form.Lines = append(form.Lines, line)
		}

		form.ProductTypes, err = s.store.ListProductTypesForProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		return form, nil
	})
}

// SaveProductForm saves a product, its lines and their images in one transaction.
// Rows flagged delete are removed; deleting a line also removes its images and
// attribute value links. On success the deleted rows are dropped from the form.
func (s *CatalogService) SaveProductForm(ctx context.Context, form *ProductForm) error {
	var changes []change
	err := s.write(ctx, models.EntityProduct, opSaveForm, func(ctx context.Context) error {
		changes = changes[:0]
		return s.store.WithTx(ctx, func(tx *store.Store) error {
			p := &form.Product
			created := p.ID == 0
			var stale []string
			if created {
				if err := tx.CreateProduct(ctx, p); err != nil {
					return err
				}
			} else {
				prev, err := tx.GetProductByID(ctx, p.ID)
				if err != nil {
					return err
				}
				if err := tx.UpdateProduct(ctx, p); err != nil {
					return err
				}
				if prev.Slug != p.Slug {
					stale = []string{redisclient.ProductSlugKey(prev.Slug)}
				}
			}
			c := saved(p.ID, created, models.EntityProduct, p.Slug)
			c.staleKeys = stale
			changes = append(changes, c)

			for i := range form.Lines {
				lineChanges, err := saveLine(ctx, tx, p.ID, &form.Lines[i])
				if err != nil {
					return err
				}
				changes = append(changes, lineChanges...)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	form.Lines = compactLines(form.Lines)
	s.announce(ctx, changes...)
	return nil
}

func saveLine(ctx context.Context, tx *store.Store, productID int64, line *LineForm) ([]change, error) {
	if line.ID != 0 {
		existing, err := tx.GetProductLineByID(ctx, line.ID)
		if err != nil {
			return nil, err
		}
		if existing.ProductID != productID {
			return nil, notOwned("lines", "product line", line.ID)
		}
	}

	if line.Delete {
		if line.ID == 0 {
			return nil, nil
		}
		if err := tx.DeleteProductLine(ctx, line.ID); err != nil {
			return nil, err
		}
		return []change{deleted(line.ID, models.EntityProductLine)}, nil
	}

	line.ProductID = productID
	created := line.ID == 0
	var err error
	if created {
		err = tx.CreateProductLine(ctx, &line.ProductLine)
	} else {
		err = tx.UpdateProductLine(ctx, &line.ProductLine)
	}
	if err != nil {
		return nil, err
	}
	changes := []change{saved(line.ID, created, models.EntityProductLine, "")}

	for i := range line.Images {
		c, err := saveImage(ctx, tx, line.ID, &line.Images[i])
		if err != nil {
			return nil, err
		}
		if c != nil {
			changes = append(changes, *c)
		}
	}
	return changes, nil
}

func saveImage(ctx context.Context, tx *store.Store, productLineID int64, img *ImageForm) (*change, error) {
	if img.ID != 0 {
		existing, err := tx.GetProductImageByID(ctx, img.ID)
		if err != nil {
			return nil, err
		}
		if existing.ProductLineID != productLineID {
			return nil, notOwned("images", "product image", img.ID)
		}
	}

	if img.Delete {
		if img.ID == 0 {
			return nil, nil
		}
		if err := tx.DeleteProductImage(ctx, img.ID); err != nil {
			return nil, err
		}
		c := deleted(img.ID, models.EntityProductImage)
		return &c, nil
	}

	img.ProductLineID = productLineID
	created := img.ID == 0
	var err error
	if created {
		err = tx.CreateProductImage(ctx, &img.ProductImage)
	} else {
		err = tx.UpdateProductImage(ctx, &img.ProductImage)
	}
	if err != nil {
		return nil, err
	}
	c := saved(img.ID, created, models.EntityProductImage, "")
	return &c, nil
}

func compactLines(lines []LineForm) []LineForm {
	kept := lines[:0]
	for _, l := range lines {
		if l.Delete {
			continue
		}
		images := l.Images[:0]
		for _, img := range l.Images {
			if !img.Delete {
				images = append(images, img)
			}
		}
		l.Images = images
		kept = append(kept, l)
	}
	return kept
}

// CategoryForm loads a category with its direct children
func (s *CatalogService) CategoryForm(ctx context.Context, id int64) (*CategoryForm, error) {
	return traced(ctx, "CategoryForm", func(ctx context.Context) (*CategoryForm, error) {
		c, err := s.store.GetCategoryByID(ctx, id)
		if err != nil {
			return nil, err
		}
		children, err := s.store.ListCategoryChildren(ctx, id)
		if err != nil {
			return nil, err
		}

		form := &CategoryForm{Category: *c, Children: make([]CategoryChildForm, 0, len(children))}
		for _, child := range children {
			form.Children = append(form.Children, CategoryChildForm{Category: child})
		}
		return form, nil
	})
}

// SaveCategoryForm saves a category and its child rows in one transaction
func (s *CatalogService) SaveCategoryForm(ctx context.Context, form *CategoryForm) error {
	var changes []change
	err := s.write(ctx, models.EntityCategory, opSaveForm, func(ctx context.Context) error {
		changes = changes[:0]
		return s.store.WithTx(ctx, func(tx *store.Store) error {
			c := &form.Category
			created := c.ID == 0
			var err error
			if created {
				err = tx.CreateCategory(ctx, c)
			} else {
				err = tx.UpdateCategory(ctx, c)
			}
			if err != nil {
				return err
			}
			changes = append(changes, saved(c.ID, created, models.EntityCategory, c.Slug))

			for i := range form.Children {
				child := &form.Children[i]
				if child.ID != 0 {
					existing, err := tx.GetCategoryByID(ctx, child.ID)
					if err != nil {
						return err
					}
					if existing.ParentID == nil || *existing.ParentID != c.ID {
						return notOwned("children", "category", child.ID)
					}
				}

				if child.Delete {
					if child.ID == 0 {
						continue
					}
					products, err := tx.ListProducts(ctx, models.ProductFilter{CategoryID: &child.ID})
					if err != nil {
						return err
					}
					if err := tx.DeleteCategory(ctx, child.ID); err != nil {
						return err
					}
					d := deleted(child.ID, models.EntityCategory)
					d.staleKeys = productSlugKeys(products)
					changes = append(changes, d)
					continue
				}

				child.ParentID = &c.ID
				childCreated := child.ID == 0
				if childCreated {
					err = tx.CreateCategory(ctx, &child.Category)
				} else {
					err = tx.UpdateCategory(ctx, &child.Category)
				}
				if err != nil {
					return err
				}
				changes = append(changes, saved(child.ID, childCreated, models.EntityCategory, child.Slug))
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	kept := form.Children[:0]
	for _, child := range form.Children {
		if !child.Delete {
			kept = append(kept, child)
		}
	}
	form.Children = kept
	s.announce(ctx, changes...)
	return nil
}

// ProductTypeForm loads a product type with its direct children
func (s *CatalogService) ProductTypeForm(ctx context.Context, id int64) (*ProductTypeForm, error) {
	return traced(ctx, "ProductTypeForm", func(ctx context.Context) (*ProductTypeForm, error) {
		pt, err := s.store.GetProductTypeByID(ctx, id)
		if err != nil {
			return nil, err
		}
		children, err := s.store.ListProductTypeChildren(ctx, id)
		if err != nil {
			return nil, err
		}

		form := &ProductTypeForm{ProductType: *pt, Children: make([]ProductTypeChildForm, 0, len(children))}
		for _, child := range children {
			form.Children = append(form.Children, ProductTypeChildForm{ProductType: child})
		}
		return form, nil
	})
}

// SaveProductTypeForm saves a product type and its child rows in one transaction
func (s *CatalogService) SaveProductTypeForm(ctx context.Context, form *ProductTypeForm) error {
	var changes []change
	err := s.write(ctx, models.EntityProductType, opSaveForm, func(ctx context.Context) error {
		changes = changes[:0]
		return s.store.WithTx(ctx, func(tx *store.Store) error {
			pt := &form.ProductType
			created := pt.ID == 0
			var err error
			if created {
				err = tx.CreateProductType(ctx, pt)
			} else {
				err = tx.UpdateProductType(ctx, pt)
			}
			if err != nil {
				return err
			}
			changes = append(changes, saved(pt.ID, created, models.EntityProductType, ""))

			for i := range form.Children {
				child := &form.Children[i]
				if child.ID != 0 {
					existing, err := tx.GetProductTypeByID(ctx, child.ID)
					if err != nil {
						return err
					}
					if existing.ParentID == nil || *existing.ParentID != pt.ID {
						return notOwned("children", "product type", child.ID)
					}
				}

				if child.Delete {
					if child.ID == 0 {
						continue
					}
					if err := tx.DeleteProductType(ctx, child.ID); err != nil {
						return err
					}
					changes = append(changes, deleted(child.ID, models.EntityProductType))
					continue
				}

				child.ParentID = &pt.ID
				childCreated := child.ID == 0
				if childCreated {
					err = tx.CreateProductType(ctx, &child.ProductType)
				} else {
					err = tx.UpdateProductType(ctx, &child.ProductType)
				}
				if err != nil {
					return err
				}
				changes = append(changes, saved(child.ID, childCreated, models.EntityProductType, ""))
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	kept := form.Children[:0]
	for _, child := range form.Children {
		if !child.Delete {
			kept = append(kept, child)
		}
	}
	form.Children = kept
	s.announce(ctx, changes...)
	return nil
}

// AttributeForm loads an attribute with its values
func (s *CatalogService) AttributeForm(ctx context.Context, id int64) (*AttributeForm, error) {
	return traced(ctx, "AttributeForm", func(ctx context.Context) (*AttributeForm, error) {
		a, err := s.store.GetAttributeByID(ctx, id)
		if err != nil {
			return nil, err
		}
		values, err := s.store.ListAttributeValues(ctx, id)
		if err != nil {
			return nil, err
		}

		form := &AttributeForm{Attribute: *a, Values: make([]AttributeValueForm, 0, len(values))}
		for _, v := range values {
			form.Values = append(form.Values, AttributeValueForm{AttributeValue: v})
		}
		return form, nil
	})
}

// SaveAttributeForm saves an attribute and its value rows in one transaction
func (s *CatalogService) SaveAttributeForm(ctx context.Context, form *AttributeForm) error {
	var changes []change
	err := s.write(ctx, models.EntityAttribute, opSaveForm, func(ctx context.Context) error {
		changes = changes[:0]
		return s.store.WithTx(ctx, func(tx *store.Store) error {
			a := &form.Attribute
			created := a.ID == 0
			var err error
			if created {
				err = tx.CreateAttribute(ctx, a)
			} else {
				err = tx.UpdateAttribute(ctx, a)
			}
			if err != nil {
				return err
			}
			changes = append(changes, saved(a.ID, created, models.EntityAttribute, ""))

			for i := range form.Values {
				v := &form.Values[i]
				if v.ID != 0 {
					existing, err := tx.GetAttributeValueByID(ctx, v.ID)
					if err != nil {
						return err
					}
					if existing.AttributeID != a.ID {
						return notOwned("values", "attribute value", v.ID)
					}
				}

				if v.Delete {
					if v.ID == 0 {
						continue
					}
					if err := tx.DeleteAttributeValue(ctx, v.ID); err != nil {
						return err
					}
					changes = append(changes, deleted(v.ID, models.EntityAttributeValue))
					continue
				}

				v.AttributeID = a.ID
				valueCreated := v.ID == 0
				if valueCreated {
					err = tx.CreateAttributeValue(ctx, &v.AttributeValue)
				} else {
					err = tx.UpdateAttributeValue(ctx, &v.AttributeValue)
				}
				if err != nil {
					return err
				}
				v.AttributeName = a.Name
				changes = append(changes, saved(v.ID, valueCreated, models.EntityAttributeValue, ""))
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	kept := form.Values[:0]
	for _, v := range form.Values {
		if !v.Delete {
			kept = append(kept, v)
		}
	}
	form.Values = kept
	s.announce(ctx, changes...)
	return nil
}
