package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventory-service/internal/admin"
	"inventory-service/internal/auth"
	"inventory-service/internal/models"
	"inventory-service/internal/service"
	"inventory-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog  *service.CatalogService
	registry *admin.Registry
	signer   *auth.Signer
}

// NewHandler creates a new HTTP handler. A nil signer leaves write routes open.
func NewHandler(catalog *service.CatalogService, registry *admin.Registry, signer *auth.Signer) *Handler {
	return &Handler{
		catalog:  catalog,
		registry: registry,
		signer:   signer,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/admin/config", h.adminConfig)

	guard := adminAuth(h.signer)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories/tree", h.categoryTree)
		v1.GET("/categories/slug/:slug", h.getCategoryBySlug)
		mount(v1, "/categories", guard, h.categories())
		mount(v1, "/seasonal-events", guard, h.seasonalEvents())
		mount(v1, "/product-types", guard, h.productTypes())

		v1.GET("/products/slug/:slug", h.getProductBySlug)
		mount(v1, "/products", guard, h.products())
		v1.GET("/products/:id/types", h.listProductTypesForProduct)
		v1.POST("/products/:id/types/:typeId", guard, h.addProductType)
		v1.DELETE("/products/:id/types/:typeId", guard, h.removeProductType)

		mount(v1, "/attributes", guard, h.attributes())
		mount(v1, "/attribute-values", guard, h.attributeValues())

		v1.GET("/product-lines/sku/:sku", h.getProductLineBySKU)
		mount(v1, "/product-lines", guard, h.productLines())
		v1.GET("/product-lines/:id/attribute-values", h.listAttributeValuesForLine)
		v1.POST("/product-lines/:id/attribute-values/:valueId", guard, h.addAttributeValue)
		v1.DELETE("/product-lines/:id/attribute-values/:valueId", guard, h.removeAttributeValue)

		mount(v1, "/product-images", guard, h.productImages())

		forms := v1.Group("/admin")
		forms.GET("/products/:id/form", h.productForm)
		forms.PUT("/products/:id/form", guard, h.saveProductForm)
		forms.GET("/categories/:id/form", h.categoryForm)
		forms.PUT("/categories/:id/form", guard, h.saveCategoryForm)
		forms.GET("/product-types/:id/form", h.productTypeForm)
		forms.PUT("/product-types/:id/form", guard, h.saveProductTypeForm)
		forms.GET("/attributes/:id/form", h.attributeForm)
		forms.PUT("/attributes/:id/form", guard, h.saveAttributeForm)
	}
}

// SetupMetricsRoute exposes the prometheus registry at /metrics
func SetupMetricsRoute(router *gin.Engine) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports ready once the database answers
func (h *Handler) readinessCheck(c *gin.Context) {
	if err := h.catalog.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// adminConfig serves the back-office presentation config
func (h *Handler) adminConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.registry.Models()})
}

// statusFor maps a catalog error to its HTTP status
func statusFor(err error) int {
	switch service.ErrorKind(err) {
	case service.KindValidation:
		return http.StatusBadRequest
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindDuplicate, service.KindReferenceIntegrity:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

var errorMessages = map[string]string{
	service.KindValidation:         "Validation failed",
	service.KindNotFound:           "Not found",
	service.KindDuplicate:          "Already exists",
	service.KindReferenceIntegrity: "Conflicts with related records",
	service.KindInternal:           "Internal error",
}

// respondError writes the error body for err
func respondError(c *gin.Context, err error) {
	kind := service.ErrorKind(err)
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		util.GetLogger().Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
	}

	body := gin.H{
		"error":   errorMessages[kind],
		"details": err.Error(),
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		body["field"] = verr.Field
	}
	c.AbortWithStatusJSON(status, body)
}

// badRequest answers 400 for malformed input
func badRequest(c *gin.Context, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

// pathID parses a positive int64 path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive int64 query parameter; zero means absent
func queryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid "+name, err)
		return 0, false
	}
	return id, true
}

// adminAuth requires a valid bearer token; a nil signer lets every request through
func adminAuth(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if signer == nil {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		subject, err := signer.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid token",
				"details": err.Error(),
			})
			return
		}

		c.Set("admin_subject", subject)
		c.Next()
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Inc()
	}
}
