package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
	"inventory-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCache struct {
	entries map[string][]byte
	deleted []string
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dest interface{}) error {
	if c.getErr != nil {
		return c.getErr
	}
	data, ok := c.entries[key]
	if !ok {
		return redisclient.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.deleted = append(c.deleted, keys...)
	return nil
}

type fakePublisher struct {
	events []*models.CatalogEvent
	err    error
}

func (p *fakePublisher) PublishCatalogEvent(_ context.Context, e *models.CatalogEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func newTestService(cache Cache, events EventPublisher) *CatalogService {
	return &CatalogService{cache: cache, events: events, logger: zap.NewNop()}
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, KindValidation, ErrorKind(&models.ValidationError{Field: "name", Message: "is required"}))
	assert.Equal(t, KindNotFound, ErrorKind(fmt.Errorf("%w: product 3", store.ErrNotFound)))
	assert.Equal(t, KindDuplicate, ErrorKind(fmt.Errorf("%w (products_name_key)", store.ErrDuplicate)))
	assert.Equal(t, KindReferenceIntegrity, ErrorKind(store.ErrReferenceIntegrity))
	assert.Equal(t, KindInternal, ErrorKind(errors.New("connection reset")))
}

func TestBuildCategoryTree(t *testing.T) {
	outdoor, tents := int64(1), int64(3)
	tree := buildCategoryTree([]models.Category{
		{ID: 1, Name: "Outdoor Gear"},
		{ID: 2, Name: "Apparel"},
		{ID: 3, Name: "Tents", ParentID: &outdoor},
		{ID: 4, Name: "Backpacks", ParentID: &outdoor},
		{ID: 5, Name: "Dome Tents", ParentID: &tents},
	})

	require.Len(t, tree, 2)
	assert.Equal(t, "Apparel", tree[0].Name)
	assert.Empty(t, tree[0].Children)

	gear := tree[1]
	assert.Equal(t, "Outdoor Gear", gear.Name)
	require.Len(t, gear.Children, 2)
	assert.Equal(t, "Backpacks", gear.Children[0].Name)
	assert.Equal(t, "Tents", gear.Children[1].Name)
	require.Len(t, gear.Children[1].Children, 1)
	assert.Equal(t, "Dome Tents", gear.Children[1].Children[0].Name)
}

func TestBuildCategoryTreeEmpty(t *testing.T) {
	tree := buildCategoryTree(nil)
	assert.NotNil(t, tree)
	assert.Empty(t, tree)
}

func TestAnnounceInvalidatesAndPublishes(t *testing.T) {
	cache := newFakeCache()
	pub := &fakePublisher{}
	s := newTestService(cache, pub)

	s.announce(context.Background(),
		change{eventType: models.EventTypeCatalogUpdated, entity: models.EntityProduct, id: 2, slug: "hiking-boots",
			staleKeys: []string{redisclient.ProductSlugKey("boots")}},
		change{eventType: models.EventTypeCatalogDeleted, entity: models.EntityCategory, id: 1},
	)

	assert.ElementsMatch(t, []string{
		"catalog:product:slug:hiking-boots",
		"catalog:product:slug:boots",
		"catalog:category:tree",
	}, cache.deleted)

	require.Len(t, pub.events, 2)
	assert.Equal(t, models.EventTypeCatalogUpdated, pub.events[0].EventType)
	assert.Equal(t, "hiking-boots", pub.events[0].Slug)
	assert.Equal(t, models.EntityCategory, pub.events[1].Entity)
}

func TestAnnounceSurvivesPublishFailure(t *testing.T) {
	cache := newFakeCache()
	s := newTestService(cache, &fakePublisher{err: errors.New("broker down")})

	assert.NotPanics(t, func() {
		s.announce(context.Background(), change{eventType: models.EventTypeCatalogCreated, entity: models.EntityCategory, id: 1})
	})
	assert.Equal(t, []string{"catalog:category:tree"}, cache.deleted)
}

func TestAnnounceWithoutCacheOrEvents(t *testing.T) {
	s := newTestService(nil, nil)
	assert.NotPanics(t, func() {
		s.announce(context.Background(), change{eventType: models.EventTypeCatalogCreated, entity: models.EntityProduct, id: 1, slug: "x"})
	})
}

func TestReadThrough(t *testing.T) {
	cache := newFakeCache()
	s := newTestService(cache, nil)
	loads := 0
	load := func(context.Context) (*models.Product, error) {
		loads++
		return &models.Product{ID: 7, Name: "Hiking Boots", Slug: "hiking-boots"}, nil
	}

	key := redisclient.ProductSlugKey("hiking-boots")
	p, err := readThrough(context.Background(), s, "product", key, load)
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)

	p, err = readThrough(context.Background(), s, "product", key, load)
	require.NoError(t, err)
	assert.Equal(t, "Hiking Boots", p.Name)
	assert.Equal(t, 1, loads)
}

func TestReadThroughFallsBackOnCacheError(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	s := newTestService(cache, nil)

	v, err := readThrough(context.Background(), s, "category_tree", redisclient.CategoryTreeKey(),
		func(context.Context) ([]models.Category, error) {
			return []models.Category{{ID: 1, Name: "Tents"}}, nil
		})
	require.NoError(t, err)
	assert.Len(t, v, 1)
}

func TestReadThroughDoesNotCacheErrors(t *testing.T) {
	cache := newFakeCache()
	s := newTestService(cache, nil)

	_, err := readThrough(context.Background(), s, "product", "k",
		func(context.Context) (*models.Product, error) {
			return nil, store.ErrNotFound
		})
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.Empty(t, cache.entries)
}

func TestNotOwnedIsValidation(t *testing.T) {
	err := notOwned("lines", "product line", 4)
	assert.True(t, errors.Is(err, store.ErrValidation))
	assert.Contains(t, err.Error(), "product line 4")
}

func TestCompactLinesDropsDeletedRows(t *testing.T) {
	lines := []LineForm{
		{ProductLine: models.ProductLine{ID: 1}, Images: []ImageForm{
			{ProductImage: models.ProductImage{ID: 10}},
			{ProductImage: models.ProductImage{ID: 11}, Delete: true},
		}},
		{ProductLine: models.ProductLine{ID: 2}, Delete: true},
	}

	kept := compactLines(lines)
	require.Len(t, kept, 1)
	assert.Equal(t, int64(1), kept[0].ID)
	require.Len(t, kept[0].Images, 1)
	assert.Equal(t, int64(10), kept[0].Images[0].ID)
}

func TestProductFormJSONFlattensRows(t *testing.T) {
	var form ProductForm
	body := `{"product":{"name":"Hiking Boots","pid":"HB-1"},
		"lines":[{"id":3,"price":"19.99","stock_qty":4,"delete":true,
			"images":[{"alternative_text":"side","url":"https://img/1.png"}]}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &form))

	require.Len(t, form.Lines, 1)
	assert.Equal(t, int64(3), form.Lines[0].ID)
	assert.True(t, form.Lines[0].Delete)
	assert.Equal(t, "19.99", form.Lines[0].Price.Decimal.StringFixed(2))
	assert.Equal(t, "side", form.Lines[0].Images[0].AlternativeText)
}
