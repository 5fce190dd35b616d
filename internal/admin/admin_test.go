package admin

import (
	"context"
	"errors"
	"testing"

	"inventory-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryProduct(t *testing.T) {
	r := Default()

	m, ok := r.Get(models.EntityProduct)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "category", "stock_status", "is_active"}, m.ListDisplay)
	assert.True(t, m.AllowsFilter("stock_status"))
	assert.False(t, m.AllowsFilter("pid"))
	assert.True(t, m.Searchable())

	require.Len(t, m.Inlines, 1)
	line := m.Inlines[0]
	assert.Equal(t, models.EntityProductLine, line.Model)
	assert.Equal(t, Stacked, line.Style)
	require.Len(t, line.Inlines, 1)
	assert.Equal(t, models.EntityProductImage, line.Inlines[0].Model)
}

func TestDefaultRegistryHierarchies(t *testing.T) {
	r := Default()

	for _, model := range []string{models.EntityCategory, models.EntityProductType} {
		m, ok := r.Get(model)
		require.True(t, ok, model)
		require.Len(t, m.Inlines, 1)
		assert.Equal(t, model, m.Inlines[0].Model)
		assert.Equal(t, "parent", m.Inlines[0].FKName)
		assert.Equal(t, Tabular, m.Inlines[0].Style)
	}

	attr, ok := r.Get(models.EntityAttribute)
	require.True(t, ok)
	assert.Equal(t, models.EntityAttributeValue, attr.Inlines[0].Model)
	assert.Equal(t, []string{"__str__"}, attr.ListDisplay)
	assert.False(t, attr.Searchable())

	_, ok = r.Get(models.EntityProductImage)
	assert.False(t, ok)
	assert.Len(t, r.Models(), 6)
}

func TestParentName(t *testing.T) {
	parent := &models.Category{ID: 1, Name: "Outdoor Gear"}
	lookup := func(_ context.Context, id int64) (*models.Category, error) {
		if id == parent.ID {
			return parent, nil
		}
		return nil, errors.New("not found")
	}

	name, err := ParentName(context.Background(), lookup, &models.Category{ID: 2, Name: "Tents", ParentID: &parent.ID})
	require.NoError(t, err)
	require.NotNil(t, name)
	assert.Equal(t, "Outdoor Gear", *name)

	name, err = ParentName(context.Background(), lookup, parent)
	require.NoError(t, err)
	assert.Nil(t, name)
}

func TestCategoryRows(t *testing.T) {
	rootID := int64(1)
	missing := int64(99)
	rows := CategoryRows([]models.Category{
		{ID: 1, Name: "Outdoor Gear"},
		{ID: 2, Name: "Tents", ParentID: &rootID},
		{ID: 3, Name: "Orphan", ParentID: &missing},
	})

	require.Len(t, rows, 3)
	assert.Nil(t, rows[0].ParentName)
	require.NotNil(t, rows[1].ParentName)
	assert.Equal(t, "Outdoor Gear", *rows[1].ParentName)
	assert.Nil(t, rows[2].ParentName)
}
