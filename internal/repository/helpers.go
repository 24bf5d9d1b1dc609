package repository

import (
	"database/sql"
	"time"

	"github.com/alexanderramin/strata/internal/dates"
)

// formatDate stores calendar dates as YYYY-MM-DD and instants as UTC
// RFC3339. No zone is persisted; readers move instants into the viewer's
// zone.
func formatDate(t time.Time) string {
	if dates.IsCalendarDate(t) {
		return t.Format(dates.DateLayout)
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// parseDate is the inverse of formatDate. Instants come back marked with
// dates.Instant.
func parseDate(s string) (time.Time, error) {
	if len(s) == len(dates.DateLayout) {
		return time.Parse(dates.DateLayout, s)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return dates.Instant(t), nil
}

// parseNullableDate returns nil for NULL, empty or unparsable values.
func parseNullableDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := parseDate(s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableDate converts a *time.Time to a value suitable for SQLite storage.
func nullableDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTimestamp returns the zero time for values that do not parse.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
