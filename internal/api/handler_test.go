package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"inventory-service/internal/admin"
	"inventory-service/internal/auth"
	"inventory-service/internal/models"
	"inventory-service/internal/service"
	"inventory-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter builds the routes without a catalog service; only requests
// rejected before reaching the service may be sent through it.
func newRouter(t *testing.T, signer *auth.Signer) *gin.Engine {
	t.Helper()
	router := gin.New()
	NewHandler(nil, admin.Default(), signer).SetupRoutes(router)
	return router
}

func do(router *gin.Engine, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&models.ValidationError{Field: "price", Message: "too large"}, http.StatusBadRequest},
		{fmt.Errorf("%w: product 9", store.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w (categories_slug_key)", store.ErrDuplicate), http.StatusConflict},
		{fmt.Errorf("%w (products_category_id_fkey)", store.ErrReferenceIntegrity), http.StatusConflict},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestParseProductFilter(t *testing.T) {
	m, ok := admin.Default().Get(models.EntityProduct)
	require.True(t, ok)

	f, err := parseProductFilter(url.Values{
		"category":     {"3"},
		"stock_status": {"IS"},
		"is_active":    {"true"},
		"q":            {"boot"},
	}, m)
	require.NoError(t, err)
	require.NotNil(t, f.CategoryID)
	assert.Equal(t, int64(3), *f.CategoryID)
	assert.Equal(t, models.StockStatusInStock, *f.StockStatus)
	assert.True(t, *f.IsActive)
	assert.Equal(t, "boot", f.Search)

	f, err = parseProductFilter(url.Values{"category": {""}}, m)
	require.NoError(t, err)
	assert.Nil(t, f.CategoryID)
}

func TestParseProductFilterRejects(t *testing.T) {
	m, _ := admin.Default().Get(models.EntityProduct)

	for _, q := range []url.Values{
		{"pid": {"HB-1"}},
		{"seasonal_event": {"1"}},
		{"stock_status": {"SOLD"}},
		{"is_active": {"maybe"}},
		{"category": {"tents"}},
	} {
		_, err := parseProductFilter(q, m)
		var verr *models.ValidationError
		assert.True(t, errors.As(err, &verr), q.Encode())
	}

	attr, _ := admin.Default().Get(models.EntityAttribute)
	_, err := parseProductFilter(url.Values{"q": {"x"}}, attr)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	w := do(newRouter(t, nil), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestAdminConfig(t *testing.T) {
	w := do(newRouter(t, nil), http.MethodGet, "/admin/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Models []admin.ModelAdmin `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Models, 6)

	for _, m := range body.Models {
		if m.Model == models.EntityProduct {
			assert.Equal(t, []string{"category", "stock_status", "is_active"}, m.ListFilter)
			assert.Equal(t, models.EntityProductLine, m.Inlines[0].Model)
		}
	}
}

func TestListProductsRejectsUnknownFilter(t *testing.T) {
	w := do(newRouter(t, nil), http.MethodGet, "/api/v1/products?pid=HB-1", "", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, "pid", body["field"])
	assert.Contains(t, body["details"], "pid")
}

func TestInvalidPathParams(t *testing.T) {
	router := newRouter(t, nil)

	for _, path := range []string{
		"/api/v1/products/abc",
		"/api/v1/categories/0",
		"/api/v1/product-lines/sku/not-a-uuid",
		"/api/v1/product-images",
		"/api/v1/product-lines?product_id=x",
		"/api/v1/admin/products/-1/form",
	} {
		w := do(router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestWritesRequireToken(t *testing.T) {
	signer, err := auth.NewSigner("s3cret")
	require.NoError(t, err)
	router := newRouter(t, signer)

	w := do(router, http.MethodPost, "/api/v1/categories", `{"name":"Tents"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodDelete, "/api/v1/products/1", "", http.Header{"Authorization": {"Bearer nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := signer.GenerateToken("catalog-admin", time.Minute)
	require.NoError(t, err)
	w = do(router, http.MethodPost, "/api/v1/categories", `not json`, http.Header{"Authorization": {"Bearer " + token}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWritesOpenWithoutSigner(t *testing.T) {
	w := do(newRouter(t, nil), http.MethodPut, "/api/v1/admin/categories/1/form", `[]`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductLineRequiresPrice(t *testing.T) {
	// Validation runs before the store is touched, so no database is needed.
	router := gin.New()
	NewHandler(service.NewCatalogService(nil, nil, nil), admin.Default(), nil).SetupRoutes(router)

	w := do(router, http.MethodPost, "/api/v1/product-lines", `{"product_id":1,"order":1,"weight":1.5}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, "price", body["field"])

	w = do(router, http.MethodPost, "/api/v1/product-images", `{"alternative_text":"side","url":"images/side.jpg","product_line_id":1}`, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "order", decode(t, w)["field"])
}

func TestFormRoutes(t *testing.T) {
	signer, err := auth.NewSigner("s3cret")
	require.NoError(t, err)
	router := newRouter(t, signer)

	token, err := signer.GenerateToken("catalog-admin", time.Minute)
	require.NoError(t, err)
	bearer := http.Header{"Authorization": {"Bearer " + token}}

	for _, path := range []string{
		"/api/v1/admin/products/1/form",
		"/api/v1/admin/categories/1/form",
		"/api/v1/admin/product-types/1/form",
		"/api/v1/admin/attributes/1/form",
	} {
		w := do(router, http.MethodPut, path, `{}`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)

		w = do(router, http.MethodPut, path, `{"lines": 3`, bearer)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Equal(t, "Invalid request body", decode(t, w)["error"], path)

		w = do(router, http.MethodGet, strings.Replace(path, "/1/", "/x/", 1), "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestThroughRowRoutes(t *testing.T) {
	signer, err := auth.NewSigner("s3cret")
	require.NoError(t, err)
	router := newRouter(t, signer)

	token, err := signer.GenerateToken("catalog-admin", time.Minute)
	require.NoError(t, err)
	bearer := http.Header{"Authorization": {"Bearer " + token}}

	for _, path := range []string{
		"/api/v1/products/1/types/2",
		"/api/v1/product-lines/1/attribute-values/2",
	} {
		for _, method := range []string{http.MethodPost, http.MethodDelete} {
			w := do(router, method, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, method+" "+path)
		}
	}

	for _, path := range []string{
		"/api/v1/products/1/types/abc",
		"/api/v1/products/0/types/2",
		"/api/v1/product-lines/1/attribute-values/-4",
	} {
		w := do(router, http.MethodPost, path, "", bearer)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := do(router, http.MethodGet, "/api/v1/products/abc/types", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(router, http.MethodGet, "/api/v1/product-lines/abc/attribute-values", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsRoute(t *testing.T) {
	router := newRouter(t, nil)
	w := do(router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	metrics := gin.New()
	SetupMetricsRoute(metrics)
	w = do(metrics, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
