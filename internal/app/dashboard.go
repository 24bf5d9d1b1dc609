package app

import (
	"time"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/rollup"
	"github.com/alexanderramin/strata/internal/urgency"
)

type DashboardRequest struct {
	Now *time.Time
}

// StrategySummary compares the progress value stored on the strategy with
// the completion derived from its projects and actions.
type StrategySummary struct {
	Strategy         domain.Strategy
	ReportedProgress int
	Projects         rollup.Completion
	Actions          rollup.Completion
	Urgency          map[urgency.Bucket]int
	Overdue          int
}

type DashboardResponse struct {
	GeneratedAt time.Time
	Today       time.Time
	Timezone    string
	Strategies  []StrategySummary
	Projects    rollup.Completion
	Actions     rollup.Completion
	Sync        *domain.SyncState
}
