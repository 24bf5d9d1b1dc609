package app

import (
	"time"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/rollup"
	"github.com/alexanderramin/strata/internal/timeline"
	"github.com/alexanderramin/strata/internal/urgency"
)

type TimelineRequest struct {
	Now *time.Time
	// StrategyID limits the view to one strategy. The axis is still
	// resolved from that strategy's records only.
	StrategyID string
}

type MilestoneView struct {
	Project domain.Project
	Bar     timeline.Bar
	HasBar  bool
}

type MarkerView struct {
	Action   domain.Action
	OffsetPx int
	Urgency  urgency.Urgency
}

type FrameworkView struct {
	Strategy   domain.Strategy
	Bar        timeline.Bar
	Milestones []MilestoneView
	Markers    []MarkerView
	Projects   rollup.Completion
	Actions    rollup.Completion
}

type TimelineResponse struct {
	Range      timeline.Range
	AxisWidth  int
	Months     []timeline.MonthSpan
	Today      timeline.TodayMarker
	TodayPx    int
	Timezone   string
	Frameworks []FrameworkView
}
