package menu

import (
	"slices"
	"time"
)

// Category is the course a dish belongs to.
type Category string

const (
	Salads      Category = "Салаты"
	Hot         Category = "Горячее"
	Single      Category = "Одно блюдо"
	LegacySoups Category = "Супы"
)

// Categories lists the menu categories in display order.
var Categories = []Category{Salads, Hot, Single}

// Rank is the display position of a category. Unknown categories sort last.
func (c Category) Rank() int {
	if i := slices.Index(Categories, c); i >= 0 {
		return i
	}
	return len(Categories)
}

// Known reports whether c is a valid catalog category, including the legacy
// value kept for old data.
func (c Category) Known() bool {
	return c == LegacySoups || slices.Contains(Categories, c)
}

// Dish is one catalog entry. Optional numeric fields are pointers so an absent
// value survives a round trip.
type Dish struct {
	ID               string   `json:"id" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	Category         Category `json:"category" validate:"required,dishcategory"`
	Price            *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Composition      string   `json:"composition"`
	Protein          *float64 `json:"protein,omitempty"`
	Carbs            *float64 `json:"carbs,omitempty"`
	Fats             *float64 `json:"fats,omitempty"`
	GarnishGrams     *float64 `json:"garnishGrams,omitempty"`
	SideDishGrams    *float64 `json:"sideDishGrams,omitempty"`
	AvailableSideIDs []string `json:"availableSideIds,omitempty"`
	IsActive         *bool    `json:"isActive,omitempty"`
}

// Active is false only when the dish was explicitly deactivated.
func (d Dish) Active() bool {
	return d.IsActive == nil || *d.IsActive
}

// HasSide reports whether sideID is offered with the dish.
func (d Dish) HasSide(sideID string) bool {
	return slices.Contains(d.AvailableSideIDs, sideID)
}

// PriceOrZero is the dish price, 0 when none is set.
func (d Dish) PriceOrZero() float64 {
	if d.Price == nil {
		return 0
	}
	return *d.Price
}

type SideDish struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Catalog is everything a city can order from.
type Catalog struct {
	Items []Dish     `json:"items"`
	Sides []SideDish `json:"sides"`
}

// DishIndex maps dish ids to dishes.
func (c Catalog) DishIndex() map[string]Dish {
	idx := make(map[string]Dish, len(c.Items))
	for _, d := range c.Items {
		idx[d.ID] = d
	}
	return idx
}

// SideIndex maps side ids to sides.
func (c Catalog) SideIndex() map[string]SideDish {
	idx := make(map[string]SideDish, len(c.Sides))
	for _, s := range c.Sides {
		idx[s.ID] = s
	}
	return idx
}

// MenuCategory is the admin-curated list of dishes shown for one category.
type MenuCategory struct {
	ID      Category `json:"id"`
	Name    string   `json:"name"`
	DishIDs []string `json:"dishIds"`
}

// Config is the visible menu of a city.
type Config struct {
	Categories  []MenuCategory `json:"categories"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// Clone deep-copies the config so callers can mutate it freely.
func (c Config) Clone() Config {
	out := Config{LastUpdated: c.LastUpdated}
	if c.Categories != nil {
		out.Categories = make([]MenuCategory, len(c.Categories))
		for i, cat := range c.Categories {
			cat.DishIDs = append([]string(nil), cat.DishIDs...)
			out.Categories[i] = cat
		}
	}
	return out
}

// Source tells where a resolved catalog or config came from.
type Source string

const (
	Loaded            Source = "loaded"
	FellBackToDefault Source = "default"
	FellBackToSeed    Source = "seed"
)

// VisibleCategory is one block of the menu as employees see it.
type VisibleCategory struct {
	ID     Category `json:"id"`
	Name   string   `json:"name"`
	Dishes []Dish   `json:"dishes"`
}
