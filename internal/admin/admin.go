// Package admin describes how catalog entities surface in the back-office:
// list columns, filters, search fields and nested inline editing.
package admin

import (
	"context"
	"errors"
	"sort"

	"inventory-service/internal/models"
)

// Inline styles
const (
	Stacked = "stacked"
	Tabular = "tabular"
)

// Inline is a related model edited inside its parent's form
type Inline struct {
	Model   string   `json:"model"`
	FKName  string   `json:"fk_name,omitempty"`
	Style   string   `json:"style"`
	Extra   int      `json:"extra"`
	Inlines []Inline `json:"inlines,omitempty"`
}

// ModelAdmin is the presentation config of one model
type ModelAdmin struct {
	Model        string   `json:"model"`
	ListDisplay  []string `json:"list_display"`
	ListFilter   []string `json:"list_filter,omitempty"`
	SearchFields []string `json:"search_fields,omitempty"`
	Inlines      []Inline `json:"inlines,omitempty"`
}

// AllowsFilter reports whether field is one of the list filters
func (m *ModelAdmin) AllowsFilter(field string) bool {
	return contains(m.ListFilter, field)
}

// Searchable reports whether the list view has a search box
func (m *ModelAdmin) Searchable() bool {
	return len(m.SearchFields) > 0
}

// Registry holds the registered model admins
type Registry struct {
	models map[string]*ModelAdmin
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*ModelAdmin)}
}

// Register adds a model admin; a model without list columns lists its string form
func (r *Registry) Register(m *ModelAdmin) {
	if len(m.ListDisplay) == 0 {
		m.ListDisplay = []string{"__str__"}
	}
	r.models[m.Model] = m
}

// Get returns the admin of a model
func (r *Registry) Get(model string) (*ModelAdmin, bool) {
	m, ok := r.models[model]
	return m, ok
}

// Models returns all registered admins sorted by model name
func (r *Registry) Models() []*ModelAdmin {
	out := make([]*ModelAdmin, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// Default returns the catalog back-office registry
func Default() *Registry {
	r := NewRegistry()

	r.Register(&ModelAdmin{Model: models.EntityProductLine})

	r.Register(&ModelAdmin{
		Model:        models.EntityProduct,
		ListDisplay:  []string{"name", "category", "stock_status", "is_active"},
		ListFilter:   []string{"category", "stock_status", "is_active"},
		SearchFields: []string{"name"},
		Inlines: []Inline{{
			Model: models.EntityProductLine,
			Style: Stacked,
			Extra: 1,
			Inlines: []Inline{{
				Model: models.EntityProductImage,
				Style: Stacked,
				Extra: 1,
			}},
		}},
	})

	r.Register(&ModelAdmin{
		Model:       models.EntitySeasonalEvent,
		ListDisplay: []string{"name", "start_date", "end_date"},
	})

	r.Register(&ModelAdmin{
		Model:   models.EntityAttribute,
		Inlines: []Inline{{Model: models.EntityAttributeValue, Style: Tabular, Extra: 1}},
	})

	r.Register(&ModelAdmin{
		Model:   models.EntityProductType,
		Inlines: []Inline{{Model: models.EntityProductType, FKName: "parent", Style: Tabular, Extra: 1}},
	})

	r.Register(&ModelAdmin{
		Model:       models.EntityCategory,
		ListDisplay: []string{"name", "parent_name"},
		Inlines:     []Inline{{Model: models.EntityCategory, FKName: "parent", Style: Tabular, Extra: 1}},
	})

	return r
}

// CategoryLookup loads a category by ID
type CategoryLookup func(ctx context.Context, id int64) (*models.Category, error)

// ParentName returns the name of the category's parent, or nil when it has none
func ParentName(ctx context.Context, lookup CategoryLookup, c *models.Category) (*string, error) {
	if c.ParentID == nil {
		return nil, nil
	}
	parent, err := lookup(ctx, *c.ParentID)
	if err != nil {
		return nil, err
	}
	return &parent.Name, nil
}

var errParentMissing = errors.New("parent category not loaded")

// CategoryRow is a category as shown in the category list view
type CategoryRow struct {
	models.Category
	ParentName *string `json:"parent_name"`
}

// CategoryRows pairs each category with its parent's name using the already loaded set
func CategoryRows(categories []models.Category) []CategoryRow {
	byID := make(map[int64]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	lookup := func(_ context.Context, id int64) (*models.Category, error) {
		if c, ok := byID[id]; ok {
			return c, nil
		}
		return nil, errParentMissing
	}

	rows := make([]CategoryRow, len(categories))
	for i, c := range categories {
		name, err := ParentName(context.Background(), lookup, &c)
		if err != nil {
			name = nil
		}
		rows[i] = CategoryRow{Category: c, ParentName: name}
	}
	return rows
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
