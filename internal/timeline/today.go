package timeline

import (
	"math"
	"time"

	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/domain"
)

// TodayMarker locates the current calendar day on the axis.
type TodayMarker struct {
	Position       float64
	IsOutsideRange bool
	IsBeforeStart  bool
	IsAfterEnd     bool
	Date           time.Time
}

// ResolveLocation loads the named IANA zone. It falls back to
// domain.DefaultTimezone and then to UTC, so it always returns a location.
func ResolveLocation(name string) *time.Location {
	for _, candidate := range []string{name, domain.DefaultTimezone} {
		if candidate == "" {
			continue
		}
		if loc, err := time.LoadLocation(candidate); err == nil {
			return loc
		}
	}
	return time.UTC
}

// LocateToday converts now into the viewer's calendar day and positions it
// within r. Days before the window pin to 0 and days after pin to 100.
func LocateToday(r Range, now time.Time, tz string) TodayMarker {
	today := dates.Day(now.In(ResolveLocation(tz)))
	m := TodayMarker{Date: today}
	switch {
	case dates.Before(today, r.MinDate):
		m.IsBeforeStart = true
		m.IsOutsideRange = true
		m.Position = 0
	case dates.Before(r.MaxDate, today):
		m.IsAfterEnd = true
		m.IsOutsideRange = true
		m.Position = 100
	default:
		m.Position = r.PercentOffset(today)
	}
	return m
}

// PixelOffset returns the marker's position on an axis of the given width,
// rounded to the nearest pixel.
func (m TodayMarker) PixelOffset(axisWidth int) int {
	return int(math.Round(m.Position / 100 * float64(axisWidth)))
}

// CenterScroll returns the scroll offset that centres offset within a
// viewport, clamped so the viewport never runs past either end of the axis.
func CenterScroll(axisWidth, viewport, offset int) int {
	maxScroll := axisWidth - viewport
	if maxScroll <= 0 {
		return 0
	}
	s := offset - viewport/2
	if s < 0 {
		return 0
	}
	if s > maxScroll {
		return maxScroll
	}
	return s
}
