package service

import (
	"context"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/rollup"
	"github.com/alexanderramin/strata/internal/timeline"
	"github.com/alexanderramin/strata/internal/urgency"
)

type dashboardService struct {
	uow      db.UnitOfWork
	timezone string
	clock    Clock
	observer UseCaseObserver
}

func NewDashboardService(uow db.UnitOfWork, timezone string, clock Clock, observers ...UseCaseObserver) app.DashboardUseCase {
	return &dashboardService{
		uow:      uow,
		timezone: timezone,
		clock:    clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, req app.DashboardRequest) (resp *app.DashboardResponse, err error) {
	fields := map[string]any{}
	defer track(ctx, s.observer, "dashboard", fields)(&err)

	snap, err := readSnapshot(ctx, s.uow, false, s.timezone)
	if err != nil {
		return nil, err
	}
	tz, loc := snap.Timezone, snap.Location
	now := nowOr(req.Now, s.clock)
	today := dates.Day(now.In(loc))

	byStrategy := actionsByStrategy(snap.Actions)
	resp = &app.DashboardResponse{
		GeneratedAt: now.UTC(),
		Today:       today,
		Timezone:    tz,
		Projects:    rollup.ProjectCompletion(snap.Projects),
		Actions:     rollup.ActionCompletion(snap.Actions),
		Sync:        snap.Sync,
	}
	// Frameworks give the same strategy order as the timeline.
	for _, fw := range timeline.BuildFrameworks(snap.Strategies, snap.Projects, nil) {
		actions := byStrategy[fw.Strategy.ID]
		sum := app.StrategySummary{
			Strategy:         fw.Strategy,
			ReportedProgress: domain.ClampPercent(fw.Strategy.Progress),
			Projects:         rollup.ProjectCompletion(fw.Milestones),
			Actions:          rollup.ActionCompletion(actions),
		}
		var us []urgency.Urgency
		for _, a := range actions {
			if a.DueDate == nil || !a.IsOpen() {
				continue
			}
			u := urgency.Classify(*a.DueDate, today)
			if u.IsOverdue() {
				sum.Overdue++
			}
			us = append(us, u)
		}
		sum.Urgency = urgency.Counts(us)
		resp.Strategies = append(resp.Strategies, sum)
	}
	fields["strategies"] = len(resp.Strategies)
	return resp, nil
}
