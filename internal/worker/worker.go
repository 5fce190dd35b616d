package worker

import (
	"context"
	"time"

	"inventory-service/internal/broker"
	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
	"inventory-service/internal/util"

	"go.uber.org/zap"
)

const seenEventTTL = 24 * time.Hour

// Cache is the part of the redis client the worker needs
type Cache interface {
	Delete(ctx context.Context, keys ...string) error
	EventSeen(ctx context.Context, eventID string) (bool, error)
	MarkEventSeen(ctx context.Context, eventID string, ttl time.Duration) error
}

// CacheInvalidationWorker drops cached catalog reads when catalog events arrive,
// so that other replicas stop serving stale product details and category trees.
type CacheInvalidationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	cache        Cache
}

// NewCacheInvalidationWorker creates a new cache invalidation worker
func NewCacheInvalidationWorker(consumer *broker.Consumer, cache Cache) *CacheInvalidationWorker {
	w := &CacheInvalidationWorker{
		consumer:     consumer,
		eventHandler: broker.NewEventHandler(),
		cache:        cache,
	}
	w.eventHandler.OnCatalogEvent(w.HandleCatalogEvent)
	return w
}

// Start starts the worker
func (w *CacheInvalidationWorker) Start(ctx context.Context) error {
	util.GetLogger().Info("starting cache invalidation worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CacheInvalidationWorker) Stop() error {
	util.GetLogger().Info("stopping cache invalidation worker")
	return w.consumer.Close()
}

// HandleCatalogEvent invalidates the keys affected by one event.
// The event is marked seen only once its keys are gone, so a failed delete
// is retried when the message is redelivered.
func (w *CacheInvalidationWorker) HandleCatalogEvent(ctx context.Context, event *models.CatalogEvent) error {
	keys := redisclient.InvalidationKeys(event.Entity, event.Slug)
	if len(keys) == 0 {
		return nil
	}

	seen, err := w.cache.EventSeen(ctx, event.EventID)
	if err != nil {
		return err
	}
	if seen {
		util.GetLogger().Debug("skipping redelivered event", zap.String("event_id", event.EventID))
		return nil
	}

	if err := w.cache.Delete(ctx, keys...); err != nil {
		return err
	}
	util.CacheInvalidationsTotal.Add(float64(len(keys)))
	util.GetLogger().Debug("invalidated cache",
		zap.String("entity", event.Entity), zap.Int64("id", event.EntityID), zap.Strings("keys", keys))

	if err := w.cache.MarkEventSeen(ctx, event.EventID, seenEventTTL); err != nil {
		util.GetLogger().Warn("failed to mark event seen",
			zap.String("event_id", event.EventID), zap.Error(err))
	}
	return nil
}
