package redisclient

import (
	"testing"

	"inventory-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "catalog:product:slug:hiking-boots", ProductSlugKey("hiking-boots"))
	assert.Equal(t, "catalog:category:tree", CategoryTreeKey())
}

func TestInvalidationKeys(t *testing.T) {
	assert.Equal(t, []string{"catalog:category:tree"}, InvalidationKeys(models.EntityCategory, "tents"))
	assert.Equal(t, []string{"catalog:product:slug:hiking-boots"}, InvalidationKeys(models.EntityProduct, "hiking-boots"))
	assert.Empty(t, InvalidationKeys(models.EntityProduct, ""))
	assert.Empty(t, InvalidationKeys(models.EntityProductImage, ""))
}
