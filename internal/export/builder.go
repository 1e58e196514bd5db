package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xtanyr/lunch/internal/calendar"
	"github.com/xtanyr/lunch/internal/summary"
)

const (
	summarySheet = "ИТОГИ"
	noSide       = "---"
)

var (
	itemHeader  = []any{"Блюдо", "Гарнир", "Кол-во", "Цена", "Сумма"}
	totalHeader = []any{"Блюдо", "Гарнир", "Общее кол-во"}
	dayWidths   = []float64{45, 30, 10, 12, 15}
)

// sheetWriter appends rows to one worksheet.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
}

// skip leaves one blank row.
func (w *sheetWriter) skip() { w.row++ }

func (w *sheetWriter) add(values ...any) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(w.sheet, cell, &values)
}

// Build renders r. Dates without any location data get no sheet; a report
// with no dated sheets at all is an error.
func Build(r Report) (*Workbook, error) {
	f := excelize.NewFile()
	defer f.Close()

	dayTotals := make(map[string]map[string]float64, len(r.Days))
	sheets := 0
	for _, day := range r.Days {
		if len(day.Locations) == 0 {
			continue
		}
		totals, err := writeDay(f, day, r.WithTotals)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", day.Date, err)
		}
		dayTotals[day.Date] = totals
		sheets++
	}
	if sheets == 0 {
		return nil, errNoData
	}

	if err := writeSummary(f, r, dayTotals); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &Workbook{FileName: FileName(r), Data: buf.Bytes(), Sheets: sheets}, nil
}

func writeDay(f *excelize.File, day Day, withTotals bool) (map[string]float64, error) {
	name := calendar.Reformat(day.Date, calendar.SheetLayout)
	if _, err := f.NewSheet(name); err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, sheet: name}

	if err := w.add("Сводный заказ за " + name); err != nil {
		return nil, err
	}
	w.skip()

	totals := make(map[string]float64, len(day.Locations))
	var grand float64
	for _, loc := range day.Locations {
		if err := w.add(loc.Location.Label); err != nil {
			return nil, err
		}
		if err := w.add(itemHeader...); err != nil {
			return nil, err
		}
		for _, it := range loc.Items {
			price := 0.0
			if it.Price != nil {
				price = *it.Price
			}
			if err := w.add(it.DishName, sideLabel(it), it.TotalQuantity, price, it.Amount()); err != nil {
				return nil, err
			}
		}
		total := loc.Total()
		if err := w.add("", "", "", "Итого:", total); err != nil {
			return nil, err
		}
		w.skip()
		totals[loc.Location.ID] = total
		grand += total
	}
	if err := w.add("", "", "", "ОБЩАЯ СУММА:", grand); err != nil {
		return nil, err
	}

	if withTotals {
		w.skip()
		if err := w.add("Итого по блюдам за день"); err != nil {
			return nil, err
		}
		if err := w.add(totalHeader...); err != nil {
			return nil, err
		}
		for _, it := range day.Totals {
			if err := w.add(it.DishName, sideLabel(it), it.TotalQuantity); err != nil {
				return nil, err
			}
		}
	}

	for i, width := range dayWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(name, col, col, width); err != nil {
			return nil, err
		}
	}
	return totals, nil
}

func writeSummary(f *excelize.File, r Report, dayTotals map[string]map[string]float64) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	w := &sheetWriter{f: f, sheet: summarySheet}

	if err := w.add("Итоги по адресам за период"); err != nil {
		return err
	}
	w.skip()

	header := []any{"Наименование"}
	for _, d := range r.Dates {
		header = append(header, calendar.Reformat(d, calendar.SheetLayout))
	}
	header = append(header, "ИТОГО")
	if err := w.add(header...); err != nil {
		return err
	}

	perDate := make([]float64, len(r.Dates))
	var grand float64
	for _, loc := range r.Locations {
		row := []any{loc.Label}
		var rowTotal float64
		for i, d := range r.Dates {
			v := dayTotals[d][loc.ID]
			row = append(row, v)
			rowTotal += v
			perDate[i] += v
		}
		row = append(row, rowTotal)
		grand += rowTotal
		if err := w.add(row...); err != nil {
			return err
		}
	}

	footer := []any{"ИТОГО ПО ДНЯМ"}
	for _, v := range perDate {
		footer = append(footer, v)
	}
	footer = append(footer, grand)
	if err := w.add(footer...); err != nil {
		return err
	}

	last, err := excelize.ColumnNumberToName(len(r.Dates) + 2)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return err
	}
	if len(r.Dates) > 0 {
		lastDate, err := excelize.ColumnNumberToName(len(r.Dates) + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(summarySheet, "B", lastDate, 12); err != nil {
			return err
		}
	}
	return f.SetColWidth(summarySheet, last, last, 14)
}

func sideLabel(it summary.AggregatedItem) string {
	if it.SelectedSideName == "" {
		return noSide
	}
	return it.SelectedSideName
}

// FileName is the download name of the export, e.g.
// Сводный_заказ_с_итогами_09-06-2025_11-06-2025.xlsx.
func FileName(r Report) string {
	var b strings.Builder
	b.WriteString("Сводный_заказ_")
	if r.WithTotals {
		b.WriteString("с_итогами_")
	}
	b.WriteString(calendar.Reformat(r.Start, calendar.FileLayout))
	if r.End != r.Start {
		b.WriteString("_")
		b.WriteString(calendar.Reformat(r.End, calendar.FileLayout))
	}
	b.WriteString(".xlsx")
	return b.String()
}
