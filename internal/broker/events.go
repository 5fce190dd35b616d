package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/util"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher writes messages to the catalog topic
type Publisher interface {
	Publish(ctx context.Context, msgs ...Message) error
}

// EventPublisher handles publishing catalog change events
type EventPublisher struct {
	producer Publisher
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer Publisher) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// NewCatalogEvent builds a change event for one catalog row
func NewCatalogEvent(eventType, entity string, id int64, slug string) *models.CatalogEvent {
	return &models.CatalogEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now().UTC(),
		},
		Entity:   entity,
		EntityID: id,
		Slug:     slug,
	}
}

// EventKey is the partition key of an event: all changes of a row stay ordered
func EventKey(event *models.CatalogEvent) string {
	return fmt.Sprintf("%s-%d", event.Entity, event.EntityID)
}

// PublishCatalogEvent publishes a catalog change event
func (ep *EventPublisher) PublishCatalogEvent(ctx context.Context, event *models.CatalogEvent) error {
	err := ep.producer.Publish(ctx, Message{Key: EventKey(event), Value: event})
	if err != nil {
		util.CatalogEventsFailedTotal.Inc()
		return err
	}
	util.CatalogEventsPublishedTotal.WithLabelValues(event.EventType).Inc()
	return nil
}

// EventHandler handles incoming events
type EventHandler struct {
	onCatalogEvent func(context.Context, *models.CatalogEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnCatalogEvent registers a handler for catalog change events
func (eh *EventHandler) OnCatalogEvent(handler func(context.Context, *models.CatalogEvent) error) {
	eh.onCatalogEvent = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	util.GetLogger().Debug("handling event",
		zap.String("type", baseEvent.EventType), zap.String("id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypeCatalogCreated, models.EventTypeCatalogUpdated, models.EventTypeCatalogDeleted:
		if eh.onCatalogEvent != nil {
			var event models.CatalogEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal catalog event: %w", err)
			}
			return eh.onCatalogEvent(ctx, &event)
		}

	default:
		util.GetLogger().Warn("unhandled event type", zap.String("type", baseEvent.EventType))
	}

	return nil
}
