// Package summary rolls employee orders up into kitchen-facing totals.
package summary

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/xtanyr/lunch/internal/menu"
	"github.com/xtanyr/lunch/internal/order"
)

// AggregatedItem is the total quantity of one (dish, side) pair.
type AggregatedItem struct {
	DishID           string        `json:"dishId"`
	DishName         string        `json:"dishName"`
	Category         menu.Category `json:"category"`
	SelectedSideID   string        `json:"selectedSideId,omitempty"`
	SelectedSideName string        `json:"selectedSideName,omitempty"`
	Composition      string        `json:"composition,omitempty"`
	Price            *float64      `json:"price,omitempty"`
	TotalQuantity    int           `json:"totalQuantity"`
}

// Amount is price times quantity, 0 when the dish has no price.
func (a AggregatedItem) Amount() float64 {
	if a.Price == nil {
		return 0
	}
	return *a.Price * float64(a.TotalQuantity)
}

// Aggregate counts every order item as one unit of its (dish, side) pair.
// Items whose dish is missing from dishes are skipped; an unknown side keeps
// its id with an empty name. The result is sorted by category display order,
// then by dish name in Russian collation, and does not depend on the order
// of the input.
func Aggregate(orders []order.EmployeeOrder, dishes []menu.Dish, sides []menu.SideDish) []AggregatedItem {
	dishByID := make(map[string]menu.Dish, len(dishes))
	for _, d := range dishes {
		dishByID[d.ID] = d
	}
	sideByID := make(map[string]menu.SideDish, len(sides))
	for _, s := range sides {
		sideByID[s.ID] = s
	}

	type key struct{ dish, side string }
	totals := make(map[key]*AggregatedItem)
	for _, o := range orders {
		for _, it := range o.Items {
			dish, ok := dishByID[it.DishID]
			if !ok {
				continue
			}
			k := key{dish.ID, it.SelectedSideID}
			if agg, ok := totals[k]; ok {
				agg.TotalQuantity++
				continue
			}
			totals[k] = &AggregatedItem{
				DishID:           dish.ID,
				DishName:         dish.Name,
				Category:         dish.Category,
				SelectedSideID:   it.SelectedSideID,
				SelectedSideName: sideByID[it.SelectedSideID].Name,
				Composition:      dish.Composition,
				Price:            dish.Price,
				TotalQuantity:    1,
			}
		}
	}

	out := make([]AggregatedItem, 0, len(totals))
	for _, agg := range totals {
		out = append(out, *agg)
	}
	sortItems(out)
	return out
}

// sortItems orders rows for display. Every key after the dish name only
// breaks ties so the order is total.
func sortItems(items []AggregatedItem) {
	coll := collate.New(language.Russian)
	slices.SortFunc(items, func(a, b AggregatedItem) int {
		if c := cmp.Compare(a.Category.Rank(), b.Category.Rank()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		if c := coll.CompareString(a.DishName, b.DishName); c != 0 {
			return c
		}
		if c := cmp.Compare(a.DishName, b.DishName); c != 0 {
			return c
		}
		if c := cmp.Compare(a.DishID, b.DishID); c != 0 {
			return c
		}
		if c := coll.CompareString(a.SelectedSideName, b.SelectedSideName); c != 0 {
			return c
		}
		return cmp.Compare(a.SelectedSideID, b.SelectedSideID)
	})
}

// Group is the aggregated rows of one category.
type Group struct {
	Category menu.Category    `json:"category"`
	Items    []AggregatedItem `json:"items"`
}

// GroupByCategory splits rows sorted by Aggregate into one group per
// category, in display order. Categories without rows are left out.
func GroupByCategory(items []AggregatedItem) []Group {
	var groups []Group
	for _, it := range items {
		if n := len(groups); n > 0 && groups[n-1].Category == it.Category {
			groups[n-1].Items = append(groups[n-1].Items, it)
			continue
		}
		groups = append(groups, Group{Category: it.Category, Items: []AggregatedItem{it}})
	}
	return groups
}
