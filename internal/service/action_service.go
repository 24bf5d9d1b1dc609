package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/apiclient"
	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/repository"
	"github.com/alexanderramin/strata/internal/rollup"
	"github.com/alexanderramin/strata/internal/urgency"
)

type actionService struct {
	api      apiclient.Client
	uow      db.UnitOfWork
	timezone string
	clock    Clock
	observer UseCaseObserver
}

// NewActionService builds the action list, detail and status use cases.
// api may be nil; SetStatus then fails with apiclient.ErrNotConfigured.
func NewActionService(api apiclient.Client, uow db.UnitOfWork, timezone string, clock Clock, observers ...UseCaseObserver) app.ActionUseCase {
	return &actionService{
		api:      api,
		uow:      uow,
		timezone: timezone,
		clock:    clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *actionService) List(ctx context.Context, req app.ActionListRequest) (resp *app.ActionListResponse, err error) {
	by, ok := app.ParseActionGrouping(string(req.By))
	if !ok {
		return nil, fmt.Errorf("unknown grouping %q (expected due or project)", req.By)
	}
	fields := map[string]any{"strategy": req.StrategyID, "by": string(by)}
	defer track(ctx, s.observer, "actions", fields)(&err)

	snap, err := readSnapshot(ctx, s.uow, false, s.timezone)
	if err != nil {
		return nil, err
	}
	if err := snap.filterByStrategy(req.StrategyID); err != nil {
		return nil, err
	}
	loc := snap.Location
	today := dates.Day(nowOr(req.Now, s.clock).In(loc))
	rows := newRowBuilder(snap, today)

	resp = &app.ActionListResponse{By: by, Today: today}
	switch by {
	case app.GroupByDue:
		actions := append([]domain.Action(nil), snap.Actions...)
		rollup.SortByDueDate(actions)
		for _, a := range actions {
			resp.Rows = append(resp.Rows, rows.row(a))
		}
	default:
		for _, g := range rollup.GroupActionsByProject(snap.Actions, snap.Projects) {
			view := app.ActionGroupView{Group: g}
			for _, a := range g.Children {
				view.Rows = append(view.Rows, rows.row(a))
			}
			resp.Groups = append(resp.Groups, view)
		}
	}
	fields["actions"] = len(snap.Actions)
	return resp, nil
}

func (s *actionService) Show(ctx context.Context, req app.ActionShowRequest) (detail *app.ActionDetail, err error) {
	defer track(ctx, s.observer, "action-show", map[string]any{"action": req.ID})(&err)

	var (
		action *domain.Action
		items  []*domain.ChecklistItem
	)
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if action, err = repository.NewSQLiteActionRepo(tx).GetByID(ctx, req.ID); err != nil {
			return err
		}
		items, err = repository.NewSQLiteChecklistRepo(tx).ListByAction(ctx, req.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	snap, err := readSnapshot(ctx, s.uow, true, s.timezone)
	if err != nil {
		return nil, err
	}
	loc := snap.Location
	today := dates.Day(nowOr(req.Now, s.clock).In(loc))

	checklist := values(items)
	rollup.SortChecklist(checklist)
	return &app.ActionDetail{
		Row:       newRowBuilder(snap, today).row(actionInZone(*action, loc)),
		Checklist: checklist,
		Progress:  rollup.ChecklistCompletion(checklist),
	}, nil
}

// SetStatus changes an action's status on the server and then in the local
// snapshot. The viewer's role must allow editing actions.
func (s *actionService) SetStatus(ctx context.Context, id string, status domain.ActionStatus) (action *domain.Action, err error) {
	fields := map[string]any{"action": id, "status": string(status)}
	defer track(ctx, s.observer, "action-set-status", fields)(&err)

	var profile *domain.UserProfile
	err = s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteActionRepo(tx).GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		profile, err = optional(repository.NewSQLiteUserProfileRepo(tx).Get(ctx))
		return err
	})
	if err != nil {
		return nil, err
	}

	role := domain.RoleViewer
	if profile != nil {
		role = profile.Role
	}
	fields["role"] = string(role)
	if !domain.Can(role, domain.CapEditAction) {
		return nil, fmt.Errorf("role %s cannot change action status: %w", role, domain.ErrForbidden)
	}
	if s.api == nil {
		return nil, apiclient.ErrNotConfigured
	}

	rec, err := s.api.UpdateActionStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	// The server's answer wins when it carries a status.
	if rec != nil && rec.Status != "" {
		if st, perr := domain.ParseActionStatus(rec.Status); perr == nil {
			status = st
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		actions := repository.NewSQLiteActionRepo(tx)
		if err := actions.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		action, err = actions.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating local action: %w", err)
	}
	return action, nil
}

// rowBuilder decorates actions with parent titles and urgency.
type rowBuilder struct {
	strategies map[string]string
	projects   map[string]string
	today      time.Time
}

func newRowBuilder(snap *localSnapshot, today time.Time) rowBuilder {
	return rowBuilder{
		strategies: snap.strategyTitles(),
		projects:   snap.projectTitles(),
		today:      today,
	}
}

func (b rowBuilder) row(a domain.Action) app.ActionRow {
	row := app.ActionRow{
		Action:        a,
		StrategyTitle: domain.CoalesceStr(b.strategies[a.StrategyID], a.StrategyID),
	}
	if id, ok := a.Project.ID(); ok {
		row.ProjectTitle = domain.CoalesceStr(b.projects[id], id)
	}
	if a.DueDate != nil && a.IsOpen() {
		u := urgency.Classify(*a.DueDate, b.today)
		row.Urgency = &u
	}
	return row
}
