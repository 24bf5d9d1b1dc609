package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/dates"
)

// localLayouts are wall-clock forms without an offset. They are read in the
// viewer's location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDate reads a calendar date field.
//
// A bare YYYY-MM-DD and a timestamp at exactly UTC midnight both mean a
// calendar date and are returned as midnight UTC. Other timestamps with an
// offset are instants moved into loc; timestamps without one are read in
// loc. Instants are re-zoned whenever the viewer's zone changes, so only
// their moment is significant.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if len(s) == len(dates.DateLayout) {
		t, err := time.Parse(dates.DateLayout, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date format %q (expected YYYY-MM-DD)", s)
		}
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		if _, offset := t.Zone(); offset == 0 && t.Equal(dates.Day(t)) {
			return t.UTC(), nil
		}
		return dates.InZone(t, loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format %q (expected YYYY-MM-DD or ISO-8601 timestamp)", s)
}

// ParseTimestamp reads an instant such as createdAt. An empty value yields
// the zero time.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(dates.DateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func parseOptionalDate(s *string, loc *time.Location) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := ParseDate(*s, loc)
	if err != nil {
		return nil
	}
	return &t
}
