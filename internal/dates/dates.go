// Package dates provides calendar-day arithmetic shared by the timeline,
// calendar and urgency engines.
//
// Every function works on the civil date (year, month, day) of a time.Time
// as observed in that value's own location. Clock time and offsets are
// ignored, so DST transitions never shift a day boundary.
package dates

import "time"

const (
	// DateLayout is the wire and storage layout for calendar dates.
	DateLayout = "2006-01-02"

	// MonthLayout is the layout used by month pickers and flags.
	MonthLayout = "2006-01"
)

// Day returns midnight UTC of t's calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Serial returns the number of days between 1970-01-01 and t's calendar date.
// It uses integer civil-calendar arithmetic and cannot overflow for any
// representable time.Time.
func Serial(t time.Time) int64 {
	y, m, d := t.Date()
	return daysFromCivil(int64(y), int64(m), int64(d))
}

// Between returns the signed number of calendar days from a to b.
func Between(a, b time.Time) int {
	return int(Serial(b) - Serial(a))
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// instantUTC has a zero offset like time.UTC but is a different location,
// so an instant that falls on midnight UTC never reads as a calendar date.
var instantUTC = time.FixedZone("UTC", 0)

// IsCalendarDate reports whether t encodes a calendar date rather than an
// instant. Calendar dates are midnight in time.UTC.
func IsCalendarDate(t time.Time) bool {
	return t.Location() == time.UTC && t.Equal(Day(t))
}

// Instant marks t as an instant without changing the moment it denotes.
func Instant(t time.Time) time.Time {
	return t.In(instantUTC)
}

// InZone moves an instant into loc so its calendar date is the one seen
// there. Calendar dates are returned unchanged.
func InZone(t time.Time, loc *time.Location) time.Time {
	if IsCalendarDate(t) {
		return t
	}
	if loc == nil || loc == time.UTC {
		return Instant(t)
	}
	return t.In(loc)
}

// InZonePtr is InZone for optional dates.
func InZonePtr(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	z := InZone(*t, loc)
	return &z
}

// AddDays returns the calendar day n days after t's date, at midnight UTC.
func AddDays(t time.Time, n int) time.Time {
	return Day(t).AddDate(0, 0, n)
}

// MonthStart returns the first day of t's month at midnight UTC.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Before reports whether a's calendar date is strictly before b's.
func Before(a, b time.Time) bool {
	return Serial(a) < Serial(b)
}

// Min returns the earlier calendar date of a and b.
func Min(a, b time.Time) time.Time {
	if Serial(b) < Serial(a) {
		return b
	}
	return a
}

// Max returns the later calendar date of a and b.
func Max(a, b time.Time) time.Time {
	if Serial(b) > Serial(a) {
		return b
	}
	return a
}

// daysFromCivil converts a proleptic Gregorian date to a day count relative
// to 1970-01-01 using 400-year eras.
func daysFromCivil(y, m, d int64) int64 {
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 && y%400 != 0 {
		era--
	}
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return era*146097 + doe - 719468
}
