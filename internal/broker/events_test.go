package broker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"inventory-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	msgs []Message
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, msgs ...Message) error {
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msgs...)
	return nil
}

func TestPublishCatalogEventKey(t *testing.T) {
	pub := &recordingPublisher{}
	ep := NewEventPublisher(pub)

	event := NewCatalogEvent(models.EventTypeCatalogUpdated, models.EntityProduct, 42, "hiking-boots")
	require.NoError(t, ep.PublishCatalogEvent(context.Background(), event))

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "product-42", pub.msgs[0].Key)
	assert.Same(t, event, pub.msgs[0].Value)
	assert.NotEmpty(t, event.EventID)
}

func TestPublishCatalogEventError(t *testing.T) {
	ep := NewEventPublisher(&recordingPublisher{err: errors.New("broker down")})
	err := ep.PublishCatalogEvent(context.Background(), NewCatalogEvent(models.EventTypeCatalogDeleted, models.EntityCategory, 1, ""))
	assert.EqualError(t, err, "broker down")
}

func TestHandleMessageRoutesCatalogEvents(t *testing.T) {
	var got *models.CatalogEvent
	h := NewEventHandler()
	h.OnCatalogEvent(func(_ context.Context, e *models.CatalogEvent) error {
		got = e
		return nil
	})

	value, err := json.Marshal(NewCatalogEvent(models.EventTypeCatalogCreated, models.EntityCategory, 3, "tents"))
	require.NoError(t, err)

	require.NoError(t, h.HandleMessage(context.Background(), kafka.Message{Value: value}))
	require.NotNil(t, got)
	assert.Equal(t, models.EntityCategory, got.Entity)
	assert.Equal(t, int64(3), got.EntityID)
	assert.Equal(t, "tents", got.Slug)
}

func TestHandleMessageIgnoresUnknownTypes(t *testing.T) {
	called := false
	h := NewEventHandler()
	h.OnCatalogEvent(func(context.Context, *models.CatalogEvent) error {
		called = true
		return nil
	})

	err := h.HandleMessage(context.Background(), kafka.Message{Value: []byte(`{"event_type":"ORDER_CREATED"}`)})
	require.NoError(t, err)
	assert.False(t, called)

	err = h.HandleMessage(context.Background(), kafka.Message{Value: []byte(`not json`)})
	assert.Error(t, err)
}
