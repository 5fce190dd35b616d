package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock statuses
const (
	StockStatusInStock     = "IS"
	StockStatusOutOfStock  = "OOS"
	StockStatusBackOrdered = "BO"
)

// StockStatusLabels maps stock status codes to their display labels
var StockStatusLabels = map[string]string{
	StockStatusInStock:     "In Stock",
	StockStatusOutOfStock:  "Out of Stock",
	StockStatusBackOrdered: "Back Ordered",
}

// Category organizes products; categories form a tree through ParentID
type Category struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name" validate:"required,max=100"`
	Slug     string `db:"slug" json:"slug" validate:"omitempty,max=255,slug"`
	IsActive bool   `db:"is_active" json:"is_active"`
	ParentID *int64 `db:"parent_id" json:"parent_id,omitempty"`

	Children []Category `db:"-" json:"children,omitempty"`
}

// SeasonalEvent is a dated sales event a product can belong to
type SeasonalEvent struct {
	ID        int64     `db:"id" json:"id"`
	StartDate time.Time `db:"start_date" json:"start_date" validate:"required"`
	EndDate   time.Time `db:"end_date" json:"end_date" validate:"required,gtefield=StartDate"`
	Name      string    `db:"name" json:"name" validate:"required,max=100"`
}

// ProductType classifies products; types form a tree through ParentID
type ProductType struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name" validate:"required,max=100"`
	ParentID *int64 `db:"parent_id" json:"parent_id,omitempty"`
}

// Product is the aggregate root of a catalog item
type Product struct {
	ID              int64     `db:"id" json:"id"`
	PID             string    `db:"pid" json:"pid" validate:"required,max=255"`
	Name            string    `db:"name" json:"name" validate:"required,max=100"`
	Slug            string    `db:"slug" json:"slug" validate:"omitempty,max=255,slug"`
	Description     *string   `db:"description" json:"description,omitempty"`
	IsDigital       bool      `db:"is_digital" json:"is_digital"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	StockStatus     string    `db:"stock_status" json:"stock_status" validate:"omitempty,stock_status"`
	CategoryID      *int64    `db:"category_id" json:"category_id,omitempty"`
	SeasonalEventID *int64    `db:"seasonal_event_id" json:"seasonal_event_id,omitempty"`
}

// StockStatusLabel returns the display label of the product stock status
func (p *Product) StockStatusLabel() string {
	return StockStatusLabels[p.StockStatus]
}

// ProductProductType links a product to a product type
type ProductProductType struct {
	ID            int64 `db:"id" json:"id"`
	ProductID     int64 `db:"product_id" json:"product_id"`
	ProductTypeID int64 `db:"product_type_id" json:"product_type_id"`
}

// Attribute is a named property such as "colour" or "size"
type Attribute struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name" validate:"required,max=100"`
	Description *string `db:"description" json:"description,omitempty"`
}

// AttributeValue is one value of an attribute
type AttributeValue struct {
	ID             int64  `db:"id" json:"id"`
	AttributeValue string `db:"attribute_value" json:"attribute_value" validate:"required,max=100"`
	AttributeID    int64  `db:"attribute_id" json:"attribute_id" validate:"gt=0"`

	// AttributeName is filled by queries joining attributes
	AttributeName string `db:"attribute_name" json:"attribute_name,omitempty"`
}

// String renders the value as "<attribute name>: <value>"
func (v AttributeValue) String() string {
	return fmt.Sprintf("%s: %s", v.AttributeName, v.AttributeValue)
}

// ProductLine is a sellable variant of a product
type ProductLine struct {
	ID        int64               `db:"id" json:"id"`
	Price     decimal.NullDecimal `db:"price" json:"price"`
	SKU       uuid.UUID           `db:"sku" json:"sku"`
	StockQty  int                 `db:"stock_qty" json:"stock_qty" validate:"gte=0"`
	IsActive  bool                `db:"is_active" json:"is_active"`
	Order     *int                `db:"order" json:"order" validate:"required"`
	Weight    *float64            `db:"weight" json:"weight" validate:"required"`
	ProductID int64               `db:"product_id" json:"product_id" validate:"gt=0"`
}

func (l *ProductLine) check() *ValidationError {
	if !l.Price.Valid {
		return &ValidationError{Field: "price", Message: "this field is required"}
	}
	if !ValidPrice(l.Price.Decimal) {
		return &ValidationError{Field: "price", Message: "ensure there are no more than 5 digits in total and no more than 2 decimal places"}
	}
	return nil
}

// ProductLineAttributeValue links a product line to an attribute value
type ProductLineAttributeValue struct {
	ID               int64 `db:"id" json:"id"`
	ProductLineID    int64 `db:"product_line_id" json:"product_line_id"`
	AttributeValueID int64 `db:"attribute_value_id" json:"attribute_value_id"`
}

// ProductImage is an image of a product line
type ProductImage struct {
	ID              int64  `db:"id" json:"id"`
	AlternativeText string `db:"alternative_text" json:"alternative_text" validate:"required,max=100"`
	URL             string `db:"url" json:"url" validate:"required,max=255"`
	Order           *int   `db:"order" json:"order" validate:"required"`
	ProductLineID   int64  `db:"product_line_id" json:"product_line_id" validate:"gt=0"`
}

// ProductFilter narrows product listings
type ProductFilter struct {
	CategoryID      *int64
	SeasonalEventID *int64
	StockStatus     *string
	IsActive        *bool
	Search          string
}
