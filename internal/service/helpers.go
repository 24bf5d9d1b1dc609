package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/dates"
	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/repository"
	"github.com/alexanderramin/strata/internal/timeline"
)

// Clock returns the current instant. Services take one so tests can pin
// today.
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

func nowOr(override *time.Time, clock Clock) time.Time {
	if override != nil {
		return *override
	}
	return clock()
}

// localSnapshot is everything the derived views read, loaded in one
// read transaction and expressed in the viewer's zone.
type localSnapshot struct {
	Strategies []domain.Strategy
	Projects   []domain.Project
	Actions    []domain.Action
	Profile    *domain.UserProfile
	Sync       *domain.SyncState

	Timezone string
	Location *time.Location
}

// readSnapshot loads the local snapshot and moves every stored instant into
// the viewer's current zone, so day bucketing never depends on the zone in
// force when the records were imported. Archived actions are left out
// unless includeArchived is set.
func readSnapshot(ctx context.Context, uow db.UnitOfWork, includeArchived bool, configuredTZ string) (*localSnapshot, error) {
	var out localSnapshot
	err := uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		strategies, err := repository.NewSQLiteStrategyRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		projects, err := repository.NewSQLiteProjectRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		actions, err := repository.NewSQLiteActionRepo(tx).List(ctx, includeArchived)
		if err != nil {
			return err
		}
		profile, err := optional(repository.NewSQLiteUserProfileRepo(tx).Get(ctx))
		if err != nil {
			return err
		}
		sync, err := optional(repository.NewSQLiteSyncStateRepo(tx).Get(ctx))
		if err != nil {
			return err
		}
		out = localSnapshot{
			Strategies: values(strategies),
			Projects:   values(projects),
			Actions:    values(actions),
			Profile:    profile,
			Sync:       sync,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading local snapshot: %w", err)
	}

	out.Timezone, out.Location = timezoneFor(out.Profile, configuredTZ)
	for i := range out.Strategies {
		out.Strategies[i] = strategyInZone(out.Strategies[i], out.Location)
	}
	for i := range out.Projects {
		out.Projects[i] = projectInZone(out.Projects[i], out.Location)
	}
	for i := range out.Actions {
		out.Actions[i] = actionInZone(out.Actions[i], out.Location)
	}
	return &out, nil
}

func strategyInZone(s domain.Strategy, loc *time.Location) domain.Strategy {
	s.StartDate = dates.InZone(s.StartDate, loc)
	s.TargetDate = dates.InZone(s.TargetDate, loc)
	s.CompletionDate = dates.InZonePtr(s.CompletionDate, loc)
	return s
}

func projectInZone(p domain.Project, loc *time.Location) domain.Project {
	p.StartDate = dates.InZonePtr(p.StartDate, loc)
	p.DueDate = dates.InZonePtr(p.DueDate, loc)
	return p
}

func actionInZone(a domain.Action, loc *time.Location) domain.Action {
	a.DueDate = dates.InZonePtr(a.DueDate, loc)
	return a
}

// optional turns ErrNotFound into a nil result.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func values[T any](ptrs []*T) []T {
	out := make([]T, 0, len(ptrs))
	for _, p := range ptrs {
		out = append(out, *p)
	}
	return out
}

// timezoneFor picks the viewer's zone: profile, then configured, then the
// default.
func timezoneFor(profile *domain.UserProfile, configured string) (string, *time.Location) {
	name := profile.EffectiveTimezone(configured)
	loc := timeline.ResolveLocation(name)
	return loc.String(), loc
}

// filterByStrategy narrows a snapshot to one strategy. It returns
// ErrNotFound when the strategy is not in the snapshot.
func (s *localSnapshot) filterByStrategy(id string) error {
	if id == "" {
		return nil
	}
	var kept []domain.Strategy
	for _, st := range s.Strategies {
		if st.ID == id {
			kept = append(kept, st)
		}
	}
	if len(kept) == 0 {
		return fmt.Errorf("strategy %s: %w", id, repository.ErrNotFound)
	}
	s.Strategies = kept

	var projects []domain.Project
	for _, p := range s.Projects {
		if p.StrategyID == id {
			projects = append(projects, p)
		}
	}
	s.Projects = projects

	var actions []domain.Action
	for _, a := range s.Actions {
		if a.StrategyID == id {
			actions = append(actions, a)
		}
	}
	s.Actions = actions
	return nil
}

func (s *localSnapshot) strategyTitles() map[string]string {
	out := make(map[string]string, len(s.Strategies))
	for _, st := range s.Strategies {
		out[st.ID] = st.Title
	}
	return out
}

func (s *localSnapshot) projectTitles() map[string]string {
	out := make(map[string]string, len(s.Projects))
	for _, p := range s.Projects {
		out[p.ID] = p.Title
	}
	return out
}

func actionsByStrategy(actions []domain.Action) map[string][]domain.Action {
	out := make(map[string][]domain.Action)
	for _, a := range actions {
		out[a.StrategyID] = append(out[a.StrategyID], a)
	}
	return out
}
