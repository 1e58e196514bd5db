package order

import (
	"errors"
	"slices"

	"github.com/xtanyr/lunch/internal/menu"
)

var (
	ErrUnknownDish        = errors.New("dish is not on the menu")
	ErrSingleDishSelected = errors.New("a single dish is already selected")
	ErrNotSelected        = errors.New("dish is not in the draft")
	ErrSideNotAvailable   = errors.New("side is not offered with this dish")
)

// Draft is an order being composed. It holds at most one dish per category,
// or exactly one single dish and nothing else.
type Draft struct {
	dishes map[string]menu.Dish
	items  []Item
}

func NewDraft(dishes []menu.Dish) *Draft {
	idx := make(map[string]menu.Dish, len(dishes))
	for _, d := range dishes {
		idx[d.ID] = d
	}
	return &Draft{dishes: idx}
}

// Select toggles a dish. A single dish replaces everything, and picking it
// again empties the draft. Any other dish replaces the one already chosen in
// its category, or is removed if it was that dish.
func (d *Draft) Select(dishID string) error {
	dish, ok := d.dishes[dishID]
	if !ok {
		return ErrUnknownDish
	}

	if dish.Category == menu.Single {
		if len(d.items) == 1 && d.items[0].DishID == dishID {
			d.items = nil
		} else {
			d.items = []Item{{DishID: dishID}}
		}
		return nil
	}

	if slices.ContainsFunc(d.items, func(it Item) bool {
		return d.categoryOf(it.DishID) == menu.Single
	}) {
		return ErrSingleDishSelected
	}

	i := slices.IndexFunc(d.items, func(it Item) bool {
		return d.categoryOf(it.DishID) == dish.Category
	})
	switch {
	case i >= 0 && d.items[i].DishID == dishID:
		d.items = slices.Delete(d.items, i, i+1)
	case i >= 0:
		d.items[i] = Item{DishID: dishID, SelectedSideID: defaultSide(dish)}
	default:
		d.items = append(d.items, Item{DishID: dishID, SelectedSideID: defaultSide(dish)})
	}
	return nil
}

// SetSide changes the side of a selected dish.
func (d *Draft) SetSide(dishID, sideID string) error {
	i := slices.IndexFunc(d.items, func(it Item) bool { return it.DishID == dishID })
	if i < 0 {
		return ErrNotSelected
	}
	if !d.dishes[dishID].HasSide(sideID) {
		return ErrSideNotAvailable
	}
	d.items[i].SelectedSideID = sideID
	return nil
}

// Items returns a copy of the selection.
func (d *Draft) Items() []Item {
	return append([]Item(nil), d.items...)
}

func (d *Draft) Clear() {
	d.items = nil
}

func (d *Draft) categoryOf(dishID string) menu.Category {
	return d.dishes[dishID].Category
}

// defaultSide preselects the first offered side for hot dishes.
func defaultSide(dish menu.Dish) string {
	if dish.Category == menu.Hot && len(dish.AvailableSideIDs) > 0 {
		return dish.AvailableSideIDs[0]
	}
	return ""
}
