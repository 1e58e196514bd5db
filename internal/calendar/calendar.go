// Package calendar works with order dates, which travel as zero-padded
// YYYY-MM-DD strings and always mean a local calendar day.
package calendar

import (
	"fmt"
	"time"
)

const (
	// Layout is the wire format of every order date.
	Layout = "2006-01-02"
	// SheetLayout is how dates are shown in exported workbooks.
	SheetLayout = "02.01.2006"
	// FileLayout is how dates appear in export file names.
	FileLayout = "02-01-2006"
)

// Clock supplies "now". Services take one so tests can pin the date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Today is the clock's current local calendar day.
func Today(c Clock) string {
	return c.Now().Format(Layout)
}

// Parse reads a YYYY-MM-DD date as midnight UTC.
func Parse(date string) (time.Time, error) {
	t, err := time.Parse(Layout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t, nil
}

// Valid reports whether date is a real YYYY-MM-DD calendar day.
func Valid(date string) bool {
	if len(date) != len(Layout) {
		return false
	}
	_, err := time.Parse(Layout, date)
	return err == nil
}

// AddDays shifts date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(Layout), nil
}

// Range lists every date from start to end inclusive. An end before start
// yields nil.
func Range(start, end string) ([]string, error) {
	from, err := Parse(start)
	if err != nil {
		return nil, err
	}
	to, err := Parse(end)
	if err != nil {
		return nil, err
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(Layout))
	}
	return dates, nil
}

// Reformat converts an ISO date into another layout, returning the input
// unchanged when it does not parse.
func Reformat(date, layout string) string {
	t, err := Parse(date)
	if err != nil {
		return date
	}
	return t.Format(layout)
}
