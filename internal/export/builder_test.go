package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xtanyr/lunch/internal/menu"
	"github.com/xtanyr/lunch/internal/summary"
)

func price(v float64) *float64 { return &v }

func openRows(t *testing.T, wb *Workbook, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(wb.Data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func contains(rows [][]string, want ...string) bool {
	for _, row := range rows {
		if len(row) < len(want) {
			continue
		}
		match := true
		for i, v := range want {
			if row[i] != v {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func sampleReport(withTotals bool) Report {
	office := Location{ID: "office", Label: "Офис"}
	mira := Location{ID: "mira", Label: "Мира"}
	salad := summary.AggregatedItem{DishID: "s", DishName: "Салат", Category: menu.Salads, Price: price(150), TotalQuantity: 2}
	hot := summary.AggregatedItem{DishID: "h", DishName: "Котлета", Category: menu.Hot, SelectedSideName: "Гречка", TotalQuantity: 1}

	day := Day{
		Date: "2025-06-10",
		Locations: []LocationDay{
			{Location: office, Items: []summary.AggregatedItem{salad, hot}},
			{Location: mira, Items: []summary.AggregatedItem{{DishID: "s", DishName: "Салат", Category: menu.Salads, Price: price(150), TotalQuantity: 1}}},
		},
	}
	if withTotals {
		all := salad
		all.TotalQuantity = 3
		day.Totals = []summary.AggregatedItem{all, hot}
	}
	return Report{
		City:       "omsk",
		Start:      "2025-06-10",
		End:        "2025-06-11",
		Dates:      []string{"2025-06-10", "2025-06-11"},
		Locations:  []Location{office, mira},
		Days:       []Day{day, {Date: "2025-06-11"}},
		WithTotals: withTotals,
	}
}

func TestBuild_DaySheet(t *testing.T) {
	wb, err := Build(sampleReport(false))
	require.NoError(t, err)
	assert.Equal(t, 1, wb.Sheets)
	assert.Equal(t, "Сводный_заказ_10-06-2025_11-06-2025.xlsx", wb.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(wb.Data))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.06.2025", "ИТОГИ"}, f.GetSheetList())
	require.NoError(t, f.Close())

	rows := openRows(t, wb, "10.06.2025")
	assert.Equal(t, []string{"Сводный заказ за 10.06.2025"}, rows[0])
	assert.True(t, contains(rows, "Офис"))
	assert.True(t, contains(rows, "Блюдо", "Гарнир", "Кол-во", "Цена", "Сумма"))
	assert.True(t, contains(rows, "Салат", "---", "2", "150", "300"))
	assert.True(t, contains(rows, "Котлета", "Гречка", "1", "0", "0"))
	assert.True(t, contains(rows, "", "", "", "Итого:", "300"))
	assert.True(t, contains(rows, "", "", "", "Итого:", "150"))
	assert.True(t, contains(rows, "", "", "", "ОБЩАЯ СУММА:", "450"))
	assert.False(t, contains(rows, "Итого по блюдам за день"))
}

func TestBuild_DaySheetLayout(t *testing.T) {
	wb, err := Build(sampleReport(false))
	require.NoError(t, err)

	rows := openRows(t, wb, "10.06.2025")
	require.Len(t, rows, 14)
	assert.Empty(t, rows[1])
	assert.Equal(t, []string{"Офис"}, rows[2])
	assert.Equal(t, []string{"", "", "", "Итого:", "300"}, rows[6])
	assert.Empty(t, rows[7])
	assert.Equal(t, []string{"Мира"}, rows[8])
	assert.Empty(t, rows[12])
	assert.Equal(t, []string{"", "", "", "ОБЩАЯ СУММА:", "450"}, rows[13])
}

func TestBuild_WithTotals(t *testing.T) {
	wb, err := Build(sampleReport(true))
	require.NoError(t, err)
	assert.Equal(t, "Сводный_заказ_с_итогами_10-06-2025_11-06-2025.xlsx", wb.FileName)

	rows := openRows(t, wb, "10.06.2025")
	assert.True(t, contains(rows, "Итого по блюдам за день"))
	assert.True(t, contains(rows, "Блюдо", "Гарнир", "Общее кол-во"))
	assert.True(t, contains(rows, "Салат", "---", "3"))
}

func TestBuild_SummarySheet(t *testing.T) {
	wb, err := Build(sampleReport(false))
	require.NoError(t, err)

	rows := openRows(t, wb, "ИТОГИ")
	assert.Equal(t, []string{"Итоги по адресам за период"}, rows[0])
	assert.True(t, contains(rows, "Наименование", "10.06.2025", "11.06.2025", "ИТОГО"))
	assert.True(t, contains(rows, "Офис", "300", "0", "300"))
	assert.True(t, contains(rows, "Мира", "150", "0", "150"))
	assert.True(t, contains(rows, "ИТОГО ПО ДНЯМ", "450", "0", "450"))
}

func TestBuild_NoData(t *testing.T) {
	_, err := Build(Report{Start: "2025-06-10", End: "2025-06-10", Dates: []string{"2025-06-10"}, Days: []Day{{Date: "2025-06-10"}}})
	assert.ErrorIs(t, err, errNoData)
}

func TestFileName_SingleDay(t *testing.T) {
	assert.Equal(t, "Сводный_заказ_10-06-2025.xlsx", FileName(Report{Start: "2025-06-10", End: "2025-06-10"}))
}
