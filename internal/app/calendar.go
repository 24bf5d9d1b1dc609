package app

import (
	"time"

	"github.com/alexanderramin/strata/internal/calendar"
)

// CalendarRequest selects a month. A zero Year or Month means the month
// containing today in the viewer's timezone.
type CalendarRequest struct {
	Now   *time.Time
	Year  int
	Month time.Month
}

type CalendarResponse struct {
	Month    calendar.Month
	Items    []calendar.Item
	Today    time.Time
	Timezone string
}
