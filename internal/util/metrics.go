package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_writes_total",
		Help: "Total number of successful catalog writes",
	}, []string{"entity", "op"})

	CatalogWriteErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_write_errors_total",
		Help: "Total number of rejected catalog writes",
	}, []string{"entity", "kind"})

	CatalogEventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_events_published_total",
		Help: "Total number of catalog change events published",
	}, []string{"event_type"})

	CatalogEventsFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_events_failed_total",
		Help: "Total number of catalog change events that could not be published",
	})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Total number of catalog cache hits",
	}, []string{"key"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Total number of catalog cache misses",
	}, []string{"key"})

	CacheInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_invalidations_total",
		Help: "Total number of cache entries invalidated by catalog events",
	})

	StoreQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_store_latency_seconds",
		Help:    "Latency of catalog store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"entity", "op"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
