package calendar

import (
	"time"

	"github.com/alexanderramin/strata/internal/dates"
)

// Cell is one real day in a month grid.
type Cell struct {
	Date  time.Time
	Items []Item
}

// Month is a Sunday-first grid. Cells starts with one nil placeholder per
// weekday before the 1st, followed by one cell per day of the month.
type Month struct {
	Year  int
	Month time.Month
	Cells []*Cell
}

// BuildMonth lays out the month and buckets items into their calendar day.
// Items are matched by year, month and day in their own location, so an
// item at 23:59 and one at 00:01 on the same local date share a cell.
func BuildMonth(year int, month time.Month, items []Item) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday())
	n := dates.DaysInMonth(year, month)

	cells := make([]*Cell, lead, lead+n)
	for d := 1; d <= n; d++ {
		cells = append(cells, &Cell{Date: time.Date(year, month, d, 0, 0, 0, 0, time.UTC)})
	}

	for _, it := range items {
		y, m, d := it.Date.Date()
		if y != year || m != month {
			continue
		}
		c := cells[lead+d-1]
		c.Items = append(c.Items, it)
	}
	return Month{Year: year, Month: month, Cells: cells}
}

// Weeks splits the grid into rows of seven. The final row may be short.
func (m Month) Weeks() [][]*Cell {
	var rows [][]*Cell
	for i := 0; i < len(m.Cells); i += 7 {
		end := i + 7
		if end > len(m.Cells) {
			end = len(m.Cells)
		}
		rows = append(rows, m.Cells[i:end])
	}
	return rows
}

// Day returns the cell for the given day of the month, or nil if out of
// range.
func (m Month) Day(d int) *Cell {
	lead := len(m.Cells) - dates.DaysInMonth(m.Year, m.Month)
	i := lead + d - 1
	if d < 1 || i >= len(m.Cells) {
		return nil
	}
	return m.Cells[i]
}

// ItemsOn returns the items whose date falls on day's calendar date.
func ItemsOn(items []Item, day time.Time) []Item {
	var out []Item
	for _, it := range items {
		if dates.SameDay(it.Date, day) {
			out = append(out, it)
		}
	}
	return out
}
