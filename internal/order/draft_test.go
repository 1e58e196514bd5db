package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtanyr/lunch/internal/menu"
)

func testDishes() []menu.Dish {
	return []menu.Dish{
		{ID: "salad_a", Name: "A", Category: menu.Salads},
		{ID: "salad_b", Name: "B", Category: menu.Salads},
		{ID: "hot_a", Name: "Hot A", Category: menu.Hot, AvailableSideIDs: []string{"bulgur", "grechka"}},
		{ID: "hot_b", Name: "Hot B", Category: menu.Hot},
		{ID: "single", Name: "Single", Category: menu.Single, AvailableSideIDs: []string{"bulgur"}},
	}
}

func TestDraft_OnePerCategory(t *testing.T) {
	d := NewDraft(testDishes())

	require.NoError(t, d.Select("salad_a"))
	require.NoError(t, d.Select("hot_a"))
	assert.Equal(t, []Item{{DishID: "salad_a"}, {DishID: "hot_a", SelectedSideID: "bulgur"}}, d.Items())

	require.NoError(t, d.Select("salad_b"))
	assert.Equal(t, []Item{{DishID: "salad_b"}, {DishID: "hot_a", SelectedSideID: "bulgur"}}, d.Items())

	require.NoError(t, d.Select("salad_b"))
	assert.Equal(t, []Item{{DishID: "hot_a", SelectedSideID: "bulgur"}}, d.Items())
}

func TestDraft_SingleDishExclusive(t *testing.T) {
	d := NewDraft(testDishes())

	require.NoError(t, d.Select("salad_a"))
	require.NoError(t, d.Select("single"))
	assert.Equal(t, []Item{{DishID: "single"}}, d.Items(), "single dishes get no default side")

	assert.ErrorIs(t, d.Select("hot_b"), ErrSingleDishSelected)

	require.NoError(t, d.Select("single"))
	assert.Empty(t, d.Items())
}

func TestDraft_SetSide(t *testing.T) {
	d := NewDraft(testDishes())

	assert.ErrorIs(t, d.SetSide("hot_a", "grechka"), ErrNotSelected)
	assert.ErrorIs(t, d.Select("nope"), ErrUnknownDish)

	require.NoError(t, d.Select("hot_a"))
	require.NoError(t, d.SetSide("hot_a", "grechka"))
	assert.ErrorIs(t, d.SetSide("hot_a", "apple"), ErrSideNotAvailable)
	assert.Equal(t, "grechka", d.Items()[0].SelectedSideID)

	d.Clear()
	assert.Empty(t, d.Items())
}

func TestProfile_SubmissionFromDraft(t *testing.T) {
	p := NewProfile("omsk", "kamergersky:1", clockAt("2025-06-09"))
	p.Remember(EmployeeOrder{EmployeeName: "Анна", Department: "Маркетинг", OrderDate: "2025-06-30"})

	d := NewDraft(testDishes())
	require.NoError(t, d.Select("salad_a"))

	sub := p.Submission(d)
	assert.Equal(t, "2025-07-01", sub.OrderDate)
	assert.Equal(t, "Анна", sub.EmployeeName)
	assert.Equal(t, "Камергерский", sub.Department, "shop orders are filed under the shop")
	assert.Equal(t, []Item{{DishID: "salad_a"}}, sub.Items)
}
