package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/calendar"
	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/db"
)

type calendarService struct {
	uow      db.UnitOfWork
	timezone string
	clock    Clock
	observer UseCaseObserver
}

func NewCalendarService(uow db.UnitOfWork, timezone string, clock Clock, observers ...UseCaseObserver) app.CalendarUseCase {
	return &calendarService{
		uow:      uow,
		timezone: timezone,
		clock:    clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *calendarService) GetMonth(ctx context.Context, req app.CalendarRequest) (resp *app.CalendarResponse, err error) {
	fields := map[string]any{}
	defer track(ctx, s.observer, "calendar", fields)(&err)

	snap, err := readSnapshot(ctx, s.uow, false, s.timezone)
	if err != nil {
		return nil, err
	}
	tz, loc := snap.Timezone, snap.Location
	today := dates.Day(nowOr(req.Now, s.clock).In(loc))

	year, month := req.Year, req.Month
	if year == 0 || month == 0 {
		year, month = today.Year(), today.Month()
	}
	fields["month"] = fmt.Sprintf("%04d-%02d", year, int(month))

	items := calendar.BuildItems(year, month, snap.Strategies, snap.Projects, snap.Actions)
	fields["items"] = len(items)
	return &app.CalendarResponse{
		Month:    calendar.BuildMonth(year, month, items),
		Items:    items,
		Today:    today,
		Timezone: tz,
	}, nil
}
