// Package urgency classifies due dates into severity buckets relative to
// the viewer's today.
package urgency

import (
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/dates"
)

// Bucket is a named band of days-until-due.
type Bucket string

const (
	DueMonthOut      Bucket = "due_month_out"
	DueThreeWeeks    Bucket = "due_three_weeks"
	DueTwoWeeks      Bucket = "due_two_weeks"
	DueOneWeek       Bucket = "due_one_week"
	DueFewDays       Bucket = "due_few_days"
	DueImminent      Bucket = "due_imminent"
	DueToday         Bucket = "due_today"
	OverdueOneDay    Bucket = "overdue_one_day"
	OverdueWeek      Bucket = "overdue_week"
	OverdueTwoWeeks  Bucket = "overdue_two_weeks"
	OverdueMonth     Bucket = "overdue_month"
	OverdueSixWeeks  Bucket = "overdue_six_weeks"
	OverdueTwoMonths Bucket = "overdue_two_months"
	OverdueLong      Bucket = "overdue_long"
)

// band maps an inclusive lower bound of days-until-due to a bucket. Bands
// are listed from least to most urgent; a bucket's Severity is its index.
type band struct {
	minDays int
	bucket  Bucket
}

var bands = []band{
	{30, DueMonthOut},
	{21, DueThreeWeeks},
	{14, DueTwoWeeks},
	{7, DueOneWeek},
	{3, DueFewDays},
	{1, DueImminent},
	{0, DueToday},
	{-1, OverdueOneDay},
	{-7, OverdueWeek},
	{-14, OverdueTwoWeeks},
	{-30, OverdueMonth},
	{-45, OverdueSixWeeks},
	{-60, OverdueTwoMonths},
}

// Buckets lists every bucket from least to most urgent.
func Buckets() []Bucket {
	out := make([]Bucket, 0, len(bands)+1)
	for _, b := range bands {
		out = append(out, b.bucket)
	}
	return append(out, OverdueLong)
}

// MaxSeverity is the severity of the most urgent bucket.
var MaxSeverity = len(bands)

// Urgency describes a single due date.
type Urgency struct {
	DaysUntilDue int
	Bucket       Bucket
	Severity     int
	Label        string
}

// IsOverdue reports whether the due date has passed.
func (u Urgency) IsOverdue() bool {
	return u.DaysUntilDue < 0
}

// DaysUntilDue returns the whole calendar days from today to due. Both
// values are reduced to their calendar dates first, so clock time never
// shifts the result.
func DaysUntilDue(due, today time.Time) int {
	return dates.Between(today, due)
}

// Classify buckets due relative to today.
func Classify(due, today time.Time) Urgency {
	n := DaysUntilDue(due, today)
	bucket, severity := bucketFor(n)
	return Urgency{
		DaysUntilDue: n,
		Bucket:       bucket,
		Severity:     severity,
		Label:        Label(n),
	}
}

func bucketFor(days int) (Bucket, int) {
	for i, b := range bands {
		if days >= b.minDays {
			return b.bucket, i
		}
	}
	return OverdueLong, len(bands)
}

// Label renders the due caption for a days-until-due value.
func Label(days int) string {
	switch {
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due in 1 day"
	case days > 1:
		return fmt.Sprintf("Due in %d days", days)
	case days == -1:
		return "1 day overdue"
	default:
		return fmt.Sprintf("%d days overdue", -days)
	}
}

// Counts tallies urgencies per bucket.
func Counts(us []Urgency) map[Bucket]int {
	out := make(map[Bucket]int, len(us))
	for _, u := range us {
		out[u.Bucket]++
	}
	return out
}
