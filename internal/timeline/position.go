package timeline

import (
	"time"

	"github.com/alexanderramin/strata/internal/dates"
)

// MonthSpan is one month header cell on the axis, in pixels.
type MonthSpan struct {
	Month   time.Time
	Label   string
	StartPx int
	EndPx   int
}

func (s MonthSpan) WidthPx() int {
	return s.EndPx - s.StartPx
}

// Bar is a horizontal extent on the axis.
type Bar struct {
	LeftPx   int
	WidthPx  int
	LeftPct  float64
	WidthPct float64
}

// AxisWidth returns the total axis length in pixels.
func (r Range) AxisWidth() int {
	return r.TotalDays * PixelsPerDay
}

// PixelOffset returns the distance of d from MinDate. Dates outside the
// window extrapolate past either end of the axis.
func (r Range) PixelOffset(d time.Time) int {
	return dates.Between(r.MinDate, d) * PixelsPerDay
}

// PercentOffset returns d's position as a percentage of the window,
// clamped to [0, 100].
func (r Range) PercentOffset(d time.Time) float64 {
	return r.percentOfDays(dates.Between(r.MinDate, d))
}

func (r Range) percentOfDays(days int) float64 {
	if r.TotalDays <= 0 {
		return 0
	}
	return clampPercent(float64(days) / float64(r.TotalDays) * 100)
}

// MonthSpans returns one header span per month. Spans are clipped to the
// window so together they tile [0, AxisWidth] exactly.
func (r Range) MonthSpans() []MonthSpan {
	end := dates.AddDays(r.MaxDate, 1)
	spans := make([]MonthSpan, 0, len(r.Months))
	for _, m := range r.Months {
		next := m.AddDate(0, 1, 0)
		from := dates.Max(m, r.MinDate)
		to := dates.Min(next, end)
		spans = append(spans, MonthSpan{
			Month:   m,
			Label:   m.Format("Jan 2006"),
			StartPx: r.PixelOffset(from),
			EndPx:   r.PixelOffset(to),
		})
	}
	return spans
}

// Bar returns the extent of an inclusive date interval. The interval covers
// at least one day.
func (r Range) Bar(start, end time.Time) Bar {
	if dates.Before(end, start) {
		start, end = end, start
	}
	days := dates.Between(start, end) + 1
	leftDays := dates.Between(r.MinDate, start)

	leftPct := r.percentOfDays(leftDays)
	rightPct := r.percentOfDays(leftDays + days)
	return Bar{
		LeftPx:   leftDays * PixelsPerDay,
		WidthPx:  days * PixelsPerDay,
		LeftPct:  leftPct,
		WidthPct: rightPct - leftPct,
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
