package service

import (
	"context"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/rollup"
	"github.com/alexanderramin/strata/internal/timeline"
	"github.com/alexanderramin/strata/internal/urgency"
)

type timelineService struct {
	uow      db.UnitOfWork
	timezone string
	clock    Clock
	observer UseCaseObserver
}

func NewTimelineService(uow db.UnitOfWork, timezone string, clock Clock, observers ...UseCaseObserver) app.TimelineUseCase {
	return &timelineService{
		uow:      uow,
		timezone: timezone,
		clock:    clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *timelineService) GetTimeline(ctx context.Context, req app.TimelineRequest) (resp *app.TimelineResponse, err error) {
	fields := map[string]any{"strategy": req.StrategyID}
	defer track(ctx, s.observer, "timeline", fields)(&err)

	snap, err := readSnapshot(ctx, s.uow, false, s.timezone)
	if err != nil {
		return nil, err
	}
	if err := snap.filterByStrategy(req.StrategyID); err != nil {
		return nil, err
	}

	tz, loc := snap.Timezone, snap.Location
	now := nowOr(req.Now, s.clock)
	today := dates.Day(now.In(loc))

	r := timeline.Resolve(snap.Strategies, snap.Projects, snap.Actions, today)
	axis := r.AxisWidth()
	marker := timeline.LocateToday(r, now, tz)

	byStrategy := actionsByStrategy(snap.Actions)
	frameworks := timeline.BuildFrameworks(snap.Strategies, snap.Projects, snap.Actions)
	views := make([]app.FrameworkView, 0, len(frameworks))
	for _, fw := range frameworks {
		view := app.FrameworkView{
			Strategy: fw.Strategy,
			Bar:      r.StrategyBar(fw.Strategy),
			Projects: rollup.ProjectCompletion(fw.Milestones),
			Actions:  rollup.ActionCompletion(byStrategy[fw.Strategy.ID]),
		}
		for _, p := range fw.Milestones {
			bar, ok := r.MilestoneBar(p)
			view.Milestones = append(view.Milestones, app.MilestoneView{Project: p, Bar: bar, HasBar: ok})
		}
		for _, a := range fw.Markers {
			view.Markers = append(view.Markers, app.MarkerView{
				Action:   a,
				OffsetPx: r.PixelOffset(*a.DueDate),
				Urgency:  urgency.Classify(*a.DueDate, today),
			})
		}
		views = append(views, view)
	}
	fields["frameworks"] = len(views)
	fields["total_days"] = r.TotalDays

	return &app.TimelineResponse{
		Range:      r,
		AxisWidth:  axis,
		Months:     r.MonthSpans(),
		Today:      marker,
		TodayPx:    marker.PixelOffset(axis),
		Timezone:   tz,
		Frameworks: views,
	}, nil
}
