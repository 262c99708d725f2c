// Package calendar builds the month grid the date picker renders.
package calendar

import (
	"time"

	"github.com/taskbot-dev/taskbot/internal/date"
)

// Month identifies one calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// Cell is one slot in the grid. A zero Day is padding before the first
// of the month.
type Cell struct {
	Day int
}

// Of returns the month containing d.
func Of(d date.Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// Next returns the following month.
func (m Month) Next() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Prev returns the preceding month.
func (m Month) Prev() Month {
	t := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return Month{Year: t.Year(), Month: t.Month()}
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Date returns the given day of the month as a date.
func (m Month) Date(day int) date.Date {
	return date.New(m.Year, m.Month, day)
}

// Title returns the month heading, e.g. "May 2024".
func (m Month) Title() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Cells returns the grid for the month: leading padding so the first
// day lands on its weekday in a Monday-first week, then one cell per
// day. The slice length is always a multiple of 7.
func (m Month) Cells() []Cell {
	first := time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)

	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	lead := (int(first.Weekday()) + 6) % 7

	days := m.Days()
	total := lead + days
	if rem := total % 7; rem != 0 {
		total += 7 - rem
	}

	cells := make([]Cell, total)
	for d := 1; d <= days; d++ {
		cells[lead+d-1] = Cell{Day: d}
	}
	return cells
}

// Weekdays returns the Monday-first column headers.
func Weekdays() []string {
	return []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
}
