package api

import (
	"net/http"

	"inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) productForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	form, err := h.catalog.ProductForm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *Handler) saveProductForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form service.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	form.Product.ID = id
	if err := h.catalog.SaveProductForm(c.Request.Context(), &form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &form)
}

func (h *Handler) categoryForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	form, err := h.catalog.CategoryForm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *Handler) saveCategoryForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form service.CategoryForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	form.Category.ID = id
	if err := h.catalog.SaveCategoryForm(c.Request.Context(), &form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &form)
}

func (h *Handler) productTypeForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	form, err := h.catalog.ProductTypeForm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *Handler) saveProductTypeForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form service.ProductTypeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	form.ProductType.ID = id
	if err := h.catalog.SaveProductTypeForm(c.Request.Context(), &form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &form)
}

func (h *Handler) attributeForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	form, err := h.catalog.AttributeForm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *Handler) saveAttributeForm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var form service.AttributeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	form.Attribute.ID = id
	if err := h.catalog.SaveAttributeForm(c.Request.Context(), &form); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &form)
}
