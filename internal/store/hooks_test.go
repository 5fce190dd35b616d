package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"inventory-service/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

// lineOf builds a valid unsaved line of a product
func lineOf(productID int64, price string, order int) *models.ProductLine {
	return &models.ProductLine{
		Price:     decimal.NewNullDecimal(decimal.RequireFromString(price)),
		Order:     ptr(order),
		Weight:    ptr(1.2),
		ProductID: productID,
	}
}

func freezeNow(t *testing.T, ts time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = prev })
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "outdoor-gear", Slugify("Outdoor Gear"))
	assert.Equal(t, "hiking-boots", Slugify("  Hiking   Boots "))
	assert.Equal(t, Slugify("Outdoor Gear"), Slugify("Outdoor Gear"))
}

func TestBeforeCreateCategoryDerivesSlug(t *testing.T) {
	c := &models.Category{Name: "Outdoor Gear"}
	require.NoError(t, beforeCreateCategory(c))
	assert.Equal(t, "outdoor-gear", c.Slug)

	c = &models.Category{Name: "Outdoor Gear", Slug: "camping"}
	require.NoError(t, beforeCreateCategory(c))
	assert.Equal(t, "camping", c.Slug)
}

func TestBeforeCreateCategoryUnsluggableName(t *testing.T) {
	err := beforeCreateCategory(&models.Category{Name: "!!!"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestBeforeUpdateCategoryRejectsSelfParent(t *testing.T) {
	id := int64(7)
	err := beforeUpdateCategory(&models.Category{ID: id, Name: "Tents", ParentID: &id})

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "parent_id", verr.Field)
}

func TestBeforeCreateProduct(t *testing.T) {
	ts := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	freezeNow(t, ts)

	p := &models.Product{PID: "HB-1", Name: "Hiking Boots"}
	require.NoError(t, beforeCreateProduct(p))

	assert.Equal(t, "hiking-boots", p.Slug)
	assert.Equal(t, models.StockStatusOutOfStock, p.StockStatus)
	assert.Equal(t, ts, p.CreatedAt)
	assert.Equal(t, ts, p.UpdatedAt)
}

func TestBeforeUpdateProductKeepsCreatedAt(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	freezeNow(t, updated)

	p := &models.Product{PID: "HB-1", Name: "Hiking Boots", Slug: "hiking-boots",
		StockStatus: models.StockStatusInStock, CreatedAt: created}
	require.NoError(t, beforeUpdateProduct(p))

	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, updated, p.UpdatedAt)
	assert.Equal(t, "hiking-boots", p.Slug)
}

func TestBeforeUpdateProductLeavesEmptyStockStatus(t *testing.T) {
	p := &models.Product{PID: "HB-1", Name: "Hiking Boots"}
	require.NoError(t, beforeUpdateProduct(p))
	assert.Empty(t, p.StockStatus)
}

func TestBeforeCreateProductLineAssignsSKU(t *testing.T) {
	l := lineOf(1, "49.99", 1)
	require.NoError(t, beforeCreateProductLine(l))
	assert.NotEqual(t, uuid.Nil, l.SKU)
	assert.Equal(t, uuid.Version(4), l.SKU.Version())

	sku := uuid.New()
	l = lineOf(1, "49.99", 1)
	l.SKU = sku
	require.NoError(t, beforeCreateProductLine(l))
	assert.Equal(t, sku, l.SKU)
}

func TestBeforeCreateProductLineRequiresPrice(t *testing.T) {
	l := lineOf(1, "49.99", 1)
	l.Price = decimal.NullDecimal{}

	err := beforeCreateProductLine(l)
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "price", verr.Field)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		code pq.ErrorCode
		want error
	}{
		{"23505", ErrDuplicate},
		{"23503", ErrReferenceIntegrity},
		{"23001", ErrReferenceIntegrity},
		{"23514", ErrValidation},
		{"23502", ErrValidation},
		{"22003", ErrValidation},
	}

	for _, tt := range tests {
		pqErr := &pq.Error{Code: tt.code, Constraint: "c"}
		err := classify(pqErr)
		assert.True(t, errors.Is(err, tt.want), string(tt.code))

		var unwrapped *pq.Error
		assert.True(t, errors.As(err, &unwrapped))
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, classify(other))
	assert.Nil(t, classify(nil))
}

func TestNotFound(t *testing.T) {
	err := notFound(sql.ErrNoRows, "product", int64(3))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "product 3")
}

func TestTableNamesOrder(t *testing.T) {
	names := TableNames()
	index := map[string]int{}
	for i, n := range names {
		index[n] = i
	}

	assert.Less(t, index["categories"], index["products"])
	assert.Less(t, index["seasonal_events"], index["products"])
	assert.Less(t, index["products"], index["product_lines"])
	assert.Less(t, index["product_lines"], index["product_images"])
	assert.Less(t, index["attribute_values"], index["product_line_attribute_values"])
	assert.Less(t, index["product_types"], index["product_product_types"])
}

func TestSchemaSQLCoversEveryTable(t *testing.T) {
	ddl := SchemaSQL()
	for _, name := range TableNames() {
		assert.Contains(t, ddl, "-- "+name+"\n")
		assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS "+name+" (")
	}
}
