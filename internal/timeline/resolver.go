// Package timeline places strategies, projects and actions on a shared
// day-granular horizontal axis.
//
// All functions are pure: the current time and the viewer's timezone are
// always passed in.
package timeline

import (
	"time"

	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/domain"
)

// PixelsPerDay is the horizontal scale of the axis.
const PixelsPerDay = 10

// Range is the visible window of the timeline. MinDate and MaxDate are
// calendar days at midnight UTC; TotalDays counts both ends.
type Range struct {
	MinDate   time.Time
	MaxDate   time.Time
	TotalDays int
	Months    []time.Time
}

// Resolve computes the window that spans every dated record. Zero and nil
// dates are skipped. With no dates at all the window collapses onto the
// calendar day of now.
func Resolve(strategies []domain.Strategy, projects []domain.Project, actions []domain.Action, now time.Time) Range {
	var (
		minDate, maxDate time.Time
		found            bool
	)
	consider := func(t time.Time) {
		if t.IsZero() {
			return
		}
		d := dates.Day(t)
		if !found {
			minDate, maxDate, found = d, d, true
			return
		}
		minDate = dates.Min(minDate, d)
		maxDate = dates.Max(maxDate, d)
	}
	considerPtr := func(t *time.Time) {
		if t != nil {
			consider(*t)
		}
	}

	for _, s := range strategies {
		consider(s.StartDate)
		consider(s.TargetDate)
	}
	for _, p := range projects {
		considerPtr(p.StartDate)
		considerPtr(p.DueDate)
	}
	for _, a := range actions {
		considerPtr(a.DueDate)
	}

	if !found {
		minDate = dates.Day(now)
		maxDate = minDate
	}
	return NewRange(minDate, maxDate)
}

// NewRange builds a Range from two calendar dates. The bounds are swapped
// if given in reverse order.
func NewRange(minDate, maxDate time.Time) Range {
	minDate, maxDate = dates.Day(minDate), dates.Day(maxDate)
	if dates.Before(maxDate, minDate) {
		minDate, maxDate = maxDate, minDate
	}
	return Range{
		MinDate:   minDate,
		MaxDate:   maxDate,
		TotalDays: dates.Between(minDate, maxDate) + 1,
		Months:    monthsBetween(minDate, maxDate),
	}
}

// monthsBetween lists the first of every month from from's month through
// to's month, inclusive.
func monthsBetween(from, to time.Time) []time.Time {
	last := dates.MonthStart(to)
	var months []time.Time
	for m := dates.MonthStart(from); !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// Contains reports whether d's calendar date lies inside the window.
func (r Range) Contains(d time.Time) bool {
	return !dates.Before(d, r.MinDate) && !dates.Before(r.MaxDate, d)
}
