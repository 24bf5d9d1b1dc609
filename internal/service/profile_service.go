package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/repository"
)

type profileService struct {
	uow      db.UnitOfWork
	timezone string
	observer UseCaseObserver
}

// NewProfileService builds the profile use cases. timezone is the zone
// from configuration, used when the profile has none.
func NewProfileService(uow db.UnitOfWork, timezone string, observers ...UseCaseObserver) app.ProfileUseCase {
	return &profileService{
		uow:      uow,
		timezone: timezone,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *profileService) Show(ctx context.Context) (view *app.ProfileView, err error) {
	defer track(ctx, s.observer, "profile-show", nil)(&err)
	return s.load(ctx)
}

func (s *profileService) SetTimezone(ctx context.Context, tz string) (view *app.ProfileView, err error) {
	defer track(ctx, s.observer, "profile-set-timezone", map[string]any{"timezone": tz})(&err)

	if tz == "" {
		return nil, fmt.Errorf("timezone must not be empty")
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteUserProfileRepo(tx).SetTimezone(ctx, tz)
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx)
}

func (s *profileService) EffectiveTimezone(ctx context.Context) (string, error) {
	view, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	return view.EffectiveTimezone, nil
}

func (s *profileService) load(ctx context.Context) (*app.ProfileView, error) {
	var view app.ProfileView
	err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if view.Profile, err = optional(repository.NewSQLiteUserProfileRepo(tx).Get(ctx)); err != nil {
			return err
		}
		view.Sync, err = optional(repository.NewSQLiteSyncStateRepo(tx).Get(ctx))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	view.EffectiveTimezone, _ = timezoneFor(view.Profile, s.timezone)
	return &view, nil
}
