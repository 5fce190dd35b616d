package api

import (
	"context"
	"net/http"

	"inventory-service/internal/models"

	"github.com/gin-gonic/gin"
)

// resource wires the five CRUD routes of one entity
type resource[T any] struct {
	list   func(c *gin.Context) (interface{}, bool, error)
	get    func(ctx context.Context, id int64) (interface{}, error)
	create func(ctx context.Context, v *T) error
	update func(ctx context.Context, v *T) error
	delete func(ctx context.Context, id int64) error
	setID  func(v *T, id int64)
}

func one[T any](get func(context.Context, int64) (*T, error)) func(context.Context, int64) (interface{}, error) {
	return func(ctx context.Context, id int64) (interface{}, error) {
		return get(ctx, id)
	}
}

func all[T any](list func(context.Context) ([]T, error)) func(*gin.Context) (interface{}, bool, error) {
	return func(c *gin.Context) (interface{}, bool, error) {
		out, err := list(c.Request.Context())
		return out, true, err
	}
}

// mount registers GET list, GET one, POST, PUT and DELETE under path; writes pass guard first
func mount[T any](g *gin.RouterGroup, path string, guard gin.HandlerFunc, r resource[T]) {
	g.GET(path, func(c *gin.Context) {
		items, ok, err := r.list(c)
		if !ok {
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	})

	g.GET(path+"/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		v, err := r.get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	})

	g.POST(path, guard, func(c *gin.Context) {
		var v T
		if err := c.ShouldBindJSON(&v); err != nil {
			badRequest(c, "Invalid request body", err)
			return
		}
		r.setID(&v, 0)
		if err := r.create(c.Request.Context(), &v); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, &v)
	})

	g.PUT(path+"/:id", guard, func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		var v T
		if err := c.ShouldBindJSON(&v); err != nil {
			badRequest(c, "Invalid request body", err)
			return
		}
		r.setID(&v, id)
		if err := r.update(c.Request.Context(), &v); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, &v)
	})

	g.DELETE(path+"/:id", guard, func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		if err := r.delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func (h *Handler) categories() resource[models.Category] {
	return resource[models.Category]{
		list: func(c *gin.Context) (interface{}, bool, error) {
			parentID, ok := queryID(c, "parent_id")
			if !ok {
				return nil, false, nil
			}
			if parentID != 0 {
				out, err := h.catalog.ListCategoryChildren(c.Request.Context(), parentID)
				return out, true, err
			}
			out, err := h.catalog.CategoryRows(c.Request.Context())
			return out, true, err
		},
		get:    h.categoryRow,
		create: h.catalog.CreateCategory,
		update: h.catalog.UpdateCategory,
		delete: h.catalog.DeleteCategory,
		setID:  func(v *models.Category, id int64) { v.ID = id },
	}
}

func (h *Handler) seasonalEvents() resource[models.SeasonalEvent] {
	return resource[models.SeasonalEvent]{
		list:   all(h.catalog.ListSeasonalEvents),
		get:    one(h.catalog.GetSeasonalEvent),
		create: h.catalog.CreateSeasonalEvent,
		update: h.catalog.UpdateSeasonalEvent,
		delete: h.catalog.DeleteSeasonalEvent,
		setID:  func(v *models.SeasonalEvent, id int64) { v.ID = id },
	}
}

func (h *Handler) productTypes() resource[models.ProductType] {
	return resource[models.ProductType]{
		list: func(c *gin.Context) (interface{}, bool, error) {
			parentID, ok := queryID(c, "parent_id")
			if !ok {
				return nil, false, nil
			}
			if parentID != 0 {
				out, err := h.catalog.ListProductTypeChildren(c.Request.Context(), parentID)
				return out, true, err
			}
			out, err := h.catalog.ListProductTypes(c.Request.Context())
			return out, true, err
		},
		get:    one(h.catalog.GetProductType),
		create: h.catalog.CreateProductType,
		update: h.catalog.UpdateProductType,
		delete: h.catalog.DeleteProductType,
		setID:  func(v *models.ProductType, id int64) { v.ID = id },
	}
}

func (h *Handler) products() resource[models.Product] {
	return resource[models.Product]{
		list:   h.listProducts,
		get:    one(h.catalog.GetProduct),
		create: h.catalog.CreateProduct,
		update: h.catalog.UpdateProduct,
		delete: h.catalog.DeleteProduct,
		setID:  func(v *models.Product, id int64) { v.ID = id },
	}
}

func (h *Handler) attributes() resource[models.Attribute] {
	return resource[models.Attribute]{
		list:   all(h.catalog.ListAttributes),
		get:    one(h.catalog.GetAttribute),
		create: h.catalog.CreateAttribute,
		update: h.catalog.UpdateAttribute,
		delete: h.catalog.DeleteAttribute,
		setID:  func(v *models.Attribute, id int64) { v.ID = id },
	}
}

func (h *Handler) attributeValues() resource[models.AttributeValue] {
	return resource[models.AttributeValue]{
		list: func(c *gin.Context) (interface{}, bool, error) {
			attributeID, ok := queryID(c, "attribute_id")
			if !ok {
				return nil, false, nil
			}
			out, err := h.catalog.ListAttributeValues(c.Request.Context(), attributeID)
			return out, true, err
		},
		get:    one(h.catalog.GetAttributeValue),
		create: h.catalog.CreateAttributeValue,
		update: h.catalog.UpdateAttributeValue,
		delete: h.catalog.DeleteAttributeValue,
		setID:  func(v *models.AttributeValue, id int64) { v.ID = id },
	}
}

func (h *Handler) productLines() resource[models.ProductLine] {
	return resource[models.ProductLine]{
		list: func(c *gin.Context) (interface{}, bool, error) {
			productID, ok := queryID(c, "product_id")
			if !ok {
				return nil, false, nil
			}
			out, err := h.catalog.ListProductLines(c.Request.Context(), productID)
			return out, true, err
		},
		get:    one(h.catalog.GetProductLine),
		create: h.catalog.CreateProductLine,
		update: h.catalog.UpdateProductLine,
		delete: h.catalog.DeleteProductLine,
		setID:  func(v *models.ProductLine, id int64) { v.ID = id },
	}
}

func (h *Handler) productImages() resource[models.ProductImage] {
	return resource[models.ProductImage]{
		list: func(c *gin.Context) (interface{}, bool, error) {
			lineID, ok := queryID(c, "product_line_id")
			if !ok {
				return nil, false, nil
			}
			if lineID == 0 {
				badRequest(c, "product_line_id is required", nil)
				return nil, false, nil
			}
			out, err := h.catalog.ListProductImages(c.Request.Context(), lineID)
			return out, true, err
		},
		get:    one(h.catalog.GetProductImage),
		create: h.catalog.CreateProductImage,
		update: h.catalog.UpdateProductImage,
		delete: h.catalog.DeleteProductImage,
		setID:  func(v *models.ProductImage, id int64) { v.ID = id },
	}
}
