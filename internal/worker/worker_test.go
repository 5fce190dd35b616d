package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"inventory-service/internal/broker"
	"inventory-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	deleted   []string
	seen      map[string]bool
	deleteErr error
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deleted = append(c.deleted, keys...)
	return nil
}

func (c *fakeCache) EventSeen(_ context.Context, id string) (bool, error) {
	return c.seen[id], nil
}

func (c *fakeCache) MarkEventSeen(_ context.Context, id string, _ time.Duration) error {
	c.seen[id] = true
	return nil
}

func TestHandleCatalogEventSkipsRedelivery(t *testing.T) {
	cache := &fakeCache{seen: map[string]bool{}}
	w := &CacheInvalidationWorker{cache: cache}

	event := broker.NewCatalogEvent(models.EventTypeCatalogUpdated, models.EntityProduct, 2, "hiking-boots")
	require.NoError(t, w.HandleCatalogEvent(context.Background(), event))
	require.NoError(t, w.HandleCatalogEvent(context.Background(), event))

	assert.Equal(t, []string{"catalog:product:slug:hiking-boots"}, cache.deleted)
}

func TestHandleCatalogEventRetriesFailedDelete(t *testing.T) {
	cache := &fakeCache{seen: map[string]bool{}, deleteErr: errors.New("redis down")}
	w := &CacheInvalidationWorker{cache: cache}

	event := broker.NewCatalogEvent(models.EventTypeCatalogUpdated, models.EntityProduct, 2, "hiking-boots")
	require.Error(t, w.HandleCatalogEvent(context.Background(), event))
	assert.False(t, cache.seen[event.EventID])

	cache.deleteErr = nil
	require.NoError(t, w.HandleCatalogEvent(context.Background(), event))
	assert.Equal(t, []string{"catalog:product:slug:hiking-boots"}, cache.deleted)
	assert.True(t, cache.seen[event.EventID])
}

func TestHandleCatalogEventIgnoresUncachedEntities(t *testing.T) {
	cache := &fakeCache{seen: map[string]bool{}}
	w := &CacheInvalidationWorker{cache: cache}

	event := broker.NewCatalogEvent(models.EventTypeCatalogDeleted, models.EntityProductImage, 9, "")
	require.NoError(t, w.HandleCatalogEvent(context.Background(), event))

	assert.Empty(t, cache.deleted)
	assert.Empty(t, cache.seen)
}
