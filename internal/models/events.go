package models

import "time"

// Event types
const (
	EventTypeCatalogCreated = "CATALOG_CREATED"
	EventTypeCatalogUpdated = "CATALOG_UPDATED"
	EventTypeCatalogDeleted = "CATALOG_DELETED"
)

// Entity names used in events, metrics and the admin registry
const (
	EntityCategory       = "category"
	EntitySeasonalEvent  = "seasonal_event"
	EntityProductType    = "product_type"
	EntityProduct        = "product"
	EntityAttribute      = "attribute"
	EntityAttributeValue = "attribute_value"
	EntityProductLine    = "product_line"
	EntityProductImage   = "product_image"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CatalogEvent is published after every successful catalog write
type CatalogEvent struct {
	BaseEvent
	Entity   string `json:"entity"`
	EntityID int64  `json:"entity_id"`
	Slug     string `json:"slug,omitempty"`
}
