package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"inventory-service/internal/admin"
	"inventory-service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// searchParam is the query parameter of the product search box
const searchParam = "q"

func (h *Handler) categoryTree(c *gin.Context) {
	tree, err := h.catalog.CategoryTree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": tree})
}

// categoryRow loads a category with its parent's name
func (h *Handler) categoryRow(ctx context.Context, id int64) (interface{}, error) {
	cat, err := h.catalog.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	parent, err := h.catalog.CategoryParentName(ctx, cat)
	if err != nil {
		return nil, err
	}
	return admin.CategoryRow{Category: *cat, ParentName: parent}, nil
}

func (h *Handler) getCategoryBySlug(c *gin.Context) {
	cat, err := h.catalog.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) getProductBySlug(c *gin.Context) {
	p, err := h.catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) listProducts(c *gin.Context) (interface{}, bool, error) {
	m, _ := h.registry.Get(models.EntityProduct)
	filter, err := parseProductFilter(c.Request.URL.Query(), m)
	if err != nil {
		respondError(c, err)
		return nil, false, nil
	}
	out, err := h.catalog.ListProducts(c.Request.Context(), filter)
	return out, true, err
}

// parseProductFilter reads the list filters and search term from q.
// Only filters the product admin lists are accepted.
func parseProductFilter(q url.Values, m *admin.ModelAdmin) (models.ProductFilter, error) {
	var f models.ProductFilter
	for key, values := range q {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		value := values[0]

		if key == searchParam {
			if m == nil || !m.Searchable() {
				return f, &models.ValidationError{Field: key, Message: "search is not enabled"}
			}
			f.Search = value
			continue
		}
		if m == nil || !m.AllowsFilter(key) {
			return f, &models.ValidationError{Field: key, Message: "is not a filter"}
		}

		switch key {
		case "category":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil || id <= 0 {
				return f, &models.ValidationError{Field: key, Message: "must be a category id"}
			}
			f.CategoryID = &id
		case "stock_status":
			if _, ok := models.StockStatusLabels[value]; !ok {
				return f, &models.ValidationError{Field: key, Message: "must be one of IS, OOS, BO"}
			}
			f.StockStatus = &value
		case "is_active":
			active, err := strconv.ParseBool(value)
			if err != nil {
				return f, &models.ValidationError{Field: key, Message: "must be true or false"}
			}
			f.IsActive = &active
		default:
			return f, &models.ValidationError{Field: key, Message: "is not a filter"}
		}
	}
	return f, nil
}

func (h *Handler) listProductTypesForProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	types, err := h.catalog.ListProductTypesForProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": types})
}

func (h *Handler) addProductType(c *gin.Context) {
	h.link(c, "typeId", h.catalog.AddProductType, http.StatusCreated)
}

func (h *Handler) removeProductType(c *gin.Context) {
	h.link(c, "typeId", h.catalog.RemoveProductType, http.StatusNoContent)
}

func (h *Handler) getProductLineBySKU(c *gin.Context) {
	sku, err := uuid.Parse(c.Param("sku"))
	if err != nil {
		badRequest(c, "Invalid sku", err)
		return
	}
	line, err := h.catalog.GetProductLineBySKU(c.Request.Context(), sku)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h *Handler) listAttributeValuesForLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	values, err := h.catalog.ListAttributeValuesForLine(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": values})
}

func (h *Handler) addAttributeValue(c *gin.Context) {
	h.link(c, "valueId", h.catalog.AddAttributeValue, http.StatusCreated)
}

func (h *Handler) removeAttributeValue(c *gin.Context) {
	h.link(c, "valueId", h.catalog.RemoveAttributeValue, http.StatusNoContent)
}

// link runs a through-row write for the :id and :<param> path parameters
func (h *Handler) link(c *gin.Context, param string, fn func(context.Context, int64, int64) error, status int) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(c, param)
	if !ok {
		return
	}
	if err := fn(c.Request.Context(), id, otherID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(status)
}
