package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/apiclient"
	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/importer"
	"github.com/alexanderramin/strata/internal/repository"
)

type snapshotService struct {
	api      apiclient.Client
	uow      db.UnitOfWork
	timezone string
	source   string
	clock    Clock
	observer UseCaseObserver
}

// NewSnapshotService builds the ingestion use case. api may be nil, in
// which case SyncFromAPI reports apiclient.ErrNotConfigured. source labels
// API syncs in the sync state.
func NewSnapshotService(
	api apiclient.Client,
	uow db.UnitOfWork,
	timezone string,
	source string,
	clock Clock,
	observers ...UseCaseObserver,
) app.SnapshotUseCase {
	return &snapshotService{
		api:      api,
		uow:      uow,
		timezone: timezone,
		source:   source,
		clock:    clockOrNow(clock),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *snapshotService) SyncFromAPI(ctx context.Context) (result *app.SyncResult, err error) {
	fields := map[string]any{"source": s.source}
	defer track(ctx, s.observer, "sync", fields)(&err)

	if s.api == nil {
		return nil, apiclient.ErrNotConfigured
	}
	// A sync always reads the server, never another process's cached copy.
	if err := s.api.Refresh(ctx); err != nil {
		return nil, err
	}
	schema, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	result, err = s.replace(ctx, schema, s.source)
	if err != nil {
		return nil, err
	}
	fields["strategies"] = result.Strategies
	fields["actions"] = result.Actions
	return result, nil
}

func (s *snapshotService) fetch(ctx context.Context) (*importer.SnapshotSchema, error) {
	var (
		schema importer.SnapshotSchema
		err    error
	)
	if schema.Strategies, err = s.api.Strategies(ctx); err != nil {
		return nil, err
	}
	if schema.Projects, err = s.api.Projects(ctx); err != nil {
		return nil, err
	}
	if schema.Actions, err = s.api.Actions(ctx); err != nil {
		return nil, err
	}
	if schema.ChecklistItems, err = s.api.ChecklistItems(ctx); err != nil {
		return nil, err
	}
	if schema.Profile, err = s.api.Me(ctx); err != nil {
		return nil, err
	}
	return &schema, nil
}

func (s *snapshotService) ImportFile(ctx context.Context, path string) (result *app.SyncResult, err error) {
	defer track(ctx, s.observer, "import", map[string]any{"path": path})(&err)

	schema, err := importer.LoadSnapshotSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot file: %w", err)
	}
	return s.replace(ctx, schema, path)
}

func (s *snapshotService) ImportSchema(ctx context.Context, schema *importer.SnapshotSchema, source string) (result *app.SyncResult, err error) {
	defer track(ctx, s.observer, "import", map[string]any{"source": source})(&err)
	return s.replace(ctx, schema, source)
}

// replace validates schema and swaps it in for the current local snapshot.
// Nothing is written unless every record validates.
func (s *snapshotService) replace(ctx context.Context, schema *importer.SnapshotSchema, source string) (*app.SyncResult, error) {
	loc, err := s.ingestLocation(ctx, schema)
	if err != nil {
		return nil, err
	}
	snap, err := importer.Convert(schema, loc)
	if err != nil {
		return nil, err
	}

	result := &app.SyncResult{
		Source:         source,
		SyncedAt:       s.clock().UTC(),
		Strategies:     len(snap.Strategies),
		Projects:       len(snap.Projects),
		Actions:        len(snap.Actions),
		ChecklistItems: len(snap.ChecklistItems),
		ProfileUpdated: snap.Profile != nil,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		strategies := repository.NewSQLiteStrategyRepo(tx)
		projects := repository.NewSQLiteProjectRepo(tx)
		actions := repository.NewSQLiteActionRepo(tx)
		checklist := repository.NewSQLiteChecklistRepo(tx)

		if err := strategies.DeleteAll(ctx); err != nil {
			return err
		}
		for i := range snap.Strategies {
			if err := strategies.Create(ctx, &snap.Strategies[i]); err != nil {
				return fmt.Errorf("storing strategy %s: %w", snap.Strategies[i].ID, err)
			}
		}
		for i := range snap.Projects {
			if err := projects.Create(ctx, &snap.Projects[i]); err != nil {
				return fmt.Errorf("storing project %s: %w", snap.Projects[i].ID, err)
			}
		}
		for i := range snap.Actions {
			if err := actions.Create(ctx, &snap.Actions[i]); err != nil {
				return fmt.Errorf("storing action %s: %w", snap.Actions[i].ID, err)
			}
		}
		for i := range snap.ChecklistItems {
			if err := checklist.Create(ctx, &snap.ChecklistItems[i]); err != nil {
				return fmt.Errorf("storing checklist item %s: %w", snap.ChecklistItems[i].ID, err)
			}
		}
		if snap.Profile != nil {
			profiles := repository.NewSQLiteUserProfileRepo(tx)
			// A zone chosen locally survives syncs that carry none.
			if snap.Profile.Timezone == "" {
				existing, err := optional(profiles.Get(ctx))
				if err != nil {
					return err
				}
				if existing != nil {
					snap.Profile.Timezone = existing.Timezone
				}
			}
			if err := profiles.Upsert(ctx, snap.Profile); err != nil {
				return err
			}
		}
		return repository.NewSQLiteSyncStateRepo(tx).Put(ctx, &domain.SyncState{
			Source:     source,
			SyncedAt:   result.SyncedAt,
			Strategies: result.Strategies,
			Projects:   result.Projects,
			Actions:    result.Actions,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("replacing local snapshot: %w", err)
	}
	return result, nil
}

// ingestLocation is the zone offset-less timestamps are read in. A profile
// arriving with the snapshot wins over the stored one.
func (s *snapshotService) ingestLocation(ctx context.Context, schema *importer.SnapshotSchema) (*time.Location, error) {
	var profile *domain.UserProfile
	if schema.Profile != nil {
		profile = importer.ConvertProfile(*schema.Profile)
	} else {
		err := s.uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			var err error
			profile, err = optional(repository.NewSQLiteUserProfileRepo(tx).Get(ctx))
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
	}
	_, loc := timezoneFor(profile, s.timezone)
	return loc, nil
}
