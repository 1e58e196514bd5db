// Package export renders order summaries for a date range as an xlsx
// workbook.
package export

import "github.com/xtanyr/lunch/internal/summary"

// MaxDays is the longest range a single export may cover.
const MaxDays = 31

// Request selects what to export.
type Request struct {
	City       string
	Start      string
	End        string
	WithTotals bool
}

// Location is a delivery point as it appears in the workbook.
type Location struct {
	ID    string
	Label string
}

// LocationDay is one location's aggregated rows for one date.
type LocationDay struct {
	Location Location
	Items    []summary.AggregatedItem
}

// Total is the money total of the location's rows.
func (l LocationDay) Total() float64 {
	var total float64
	for _, it := range l.Items {
		total += it.Amount()
	}
	return total
}

// Day is everything exported for one date. Locations without orders are
// absent.
type Day struct {
	Date      string
	Locations []LocationDay
	// Totals is the city-wide aggregation, filled only for exports with
	// totals.
	Totals []summary.AggregatedItem
}

// Report is the fully fetched input of the workbook builder.
type Report struct {
	City       string
	Start      string
	End        string
	Dates      []string
	Locations  []Location
	Days       []Day
	WithTotals bool
}

// Workbook is a rendered export.
type Workbook struct {
	FileName string
	Data     []byte
	// Sheets counts the date sheets, not including the summary sheet.
	Sheets int
}
