package service

import (
	"context"
	"errors"
	"time"

	"inventory-service/internal/broker"
	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Write operations, used as the op label of catalog_writes_total
const (
	opCreate   = "create"
	opUpdate   = "update"
	opDelete   = "delete"
	opLink     = "link"
	opUnlink   = "unlink"
	opSaveForm = "save_form"
)

// Error kinds, used as the kind label of catalog_write_errors_total
const (
	KindValidation         = "validation"
	KindNotFound           = "not_found"
	KindDuplicate          = "duplicate"
	KindReferenceIntegrity = "reference_integrity"
	KindInternal           = "internal"
)

// Cache is the read-through cache in front of product and category reads
type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, keys ...string) error
}

// EventPublisher publishes catalog change events
type EventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event *models.CatalogEvent) error
}

// CatalogService handles catalog business logic. Cache and events are optional.
type CatalogService struct {
	store  *store.Store
	cache  Cache
	events EventPublisher
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store, cache Cache, events EventPublisher) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  cache,
		events: events,
		logger: util.GetLogger(),
	}
}

// Ping checks the database connection
func (s *CatalogService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// ErrorKind names the class of a store error
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, store.ErrValidation):
		return KindValidation
	case errors.Is(err, store.ErrNotFound):
		return KindNotFound
	case errors.Is(err, store.ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, store.ErrReferenceIntegrity):
		return KindReferenceIntegrity
	}
	return KindInternal
}

// change is a committed write to announce
type change struct {
	eventType string
	entity    string
	id        int64
	slug      string
	staleKeys []string
}

// write runs fn inside a span and records the outcome
func (s *CatalogService) write(ctx context.Context, entity, op string, fn func(ctx context.Context) error) error {
	ctx, span := util.StartSpan(ctx, "CatalogService."+op,
		attribute.String("catalog.entity", entity), attribute.String("catalog.op", op))

	start := time.Now()
	err := fn(ctx)
	util.StoreQueryLatency.WithLabelValues(entity, op).Observe(time.Since(start).Seconds())
	util.EndSpan(span, err)

	if err != nil {
		kind := ErrorKind(err)
		util.CatalogWriteErrorsTotal.WithLabelValues(entity, kind).Inc()

		fields := []zap.Field{zap.String("entity", entity), zap.String("op", op), zap.String("kind", kind), zap.Error(err)}
		if kind == KindInternal {
			s.logger.Error("catalog write failed", fields...)
		} else {
			s.logger.Info("catalog write rejected", fields...)
		}
		return err
	}

	util.CatalogWritesTotal.WithLabelValues(entity, op).Inc()
	return nil
}

// announce invalidates cached reads and publishes one event per change.
// Failures are logged and never fail the write.
func (s *CatalogService) announce(ctx context.Context, changes ...change) {
	var keys []string
	for _, c := range changes {
		keys = append(keys, redisclient.InvalidationKeys(c.entity, c.slug)...)
		keys = append(keys, c.staleKeys...)
	}
	s.invalidate(ctx, keys...)

	for _, c := range changes {
		s.logger.Info("catalog changed",
			zap.String("event_type", c.eventType),
			zap.String("entity", c.entity),
			zap.Int64("id", c.id))

		if s.events == nil {
			continue
		}
		event := broker.NewCatalogEvent(c.eventType, c.entity, c.id, c.slug)
		if err := s.events.PublishCatalogEvent(ctx, event); err != nil {
			s.logger.Error("failed to publish catalog event",
				zap.String("event_id", event.EventID), zap.Error(err))
		}
	}
}

func (s *CatalogService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil || len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("failed to invalidate cache", zap.Strings("keys", keys), zap.Error(err))
	}
}

// traced runs a read inside a span
func traced[T any](ctx context.Context, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService."+name)
	v, err := fn(ctx)
	util.EndSpan(span, err)
	return v, err
}

// readThrough serves key from the cache, loading and caching it on a miss.
// label keeps the cache metrics low-cardinality.
func readThrough[T any](ctx context.Context, s *CatalogService, label, key string, load func(ctx context.Context) (T, error)) (T, error) {
	var v T
	if s.cache != nil {
		err := s.cache.GetJSON(ctx, key, &v)
		if err == nil {
			util.CacheHitsTotal.WithLabelValues(label).Inc()
			return v, nil
		}
		if !errors.Is(err, redisclient.ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		util.CacheMissesTotal.WithLabelValues(label).Inc()
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, v); err != nil {
			s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}

// productSlugKeys returns the cache keys of the given products
func productSlugKeys(products []models.Product) []string {
	keys := make([]string, 0, len(products))
	for _, p := range products {
		keys = append(keys, redisclient.ProductSlugKey(p.Slug))
	}
	return keys
}
