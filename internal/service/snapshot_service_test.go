package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/apiclient"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/importer"
	"github.com/alexanderramin/strata/internal/repository"
	"github.com/alexanderramin/strata/internal/testutil"
)

func TestSnapshotService_ImportSchema_StoresEverything(t *testing.T) {
	database, _ := seededUoW(t)
	ctx := context.Background()

	strategies, err := repository.NewSQLiteStrategyRepo(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, strategies, 1)
	assert.Equal(t, 40, strategies[0].Progress)

	actions, err := repository.NewSQLiteActionRepo(database).List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, actions, 5)

	p1, err := repository.NewSQLiteProjectRepo(database).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectCompleted, p1.Status)

	profile, err := repository.NewSQLiteUserProfileRepo(database).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID)
	assert.Equal(t, domain.RoleContributor, profile.Role)

	state, err := repository.NewSQLiteSyncStateRepo(database).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fixture", state.Source)
	assert.True(t, state.SyncedAt.Equal(testNow))
	assert.Equal(t, 5, state.Actions)
}

func TestSnapshotService_ImportSchema_ReplacesPreviousSnapshot(t *testing.T) {
	database, uow := seededUoW(t)
	ctx := context.Background()
	svc := NewSnapshotService(nil, uow, "", "test", fixedClock)

	next := &importer.SnapshotSchema{
		Strategies: []importer.StrategyRecord{{ID: "s9", Title: "New", StartDate: "2026-01-01", TargetDate: "2026-02-01"}},
	}
	res, err := svc.ImportSchema(ctx, next, "second")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Strategies)
	assert.False(t, res.ProfileUpdated)

	strategies, err := repository.NewSQLiteStrategyRepo(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, strategies, 1)
	assert.Equal(t, "s9", strategies[0].ID)

	actions, err := repository.NewSQLiteActionRepo(database).List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, actions)

	// The profile from the earlier sync is kept.
	profile, err := repository.NewSQLiteUserProfileRepo(database).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID)
}

func TestSnapshotService_ImportSchema_RejectsInvalidSnapshot(t *testing.T) {
	database, uow := seededUoW(t)
	ctx := context.Background()
	svc := NewSnapshotService(nil, uow, "", "test", fixedClock)

	bad := sampleSchema()
	bad.Strategies[0].StartDate = "2025-13-45"
	bad.Actions[0].IsArchived = importer.StringBool{Raw: "maybe"}

	_, err := svc.ImportSchema(ctx, bad, "bad")
	require.Error(t, err)
	var verr *importer.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.GreaterOrEqual(t, len(verr.Errs), 2)

	// Nothing was replaced.
	state, err := repository.NewSQLiteSyncStateRepo(database).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fixture", state.Source)
}

func TestSnapshotService_ImportSchema_RollsBackOnWriteFailure(t *testing.T) {
	database, _ := seededUoW(t)
	ctx := context.Background()

	// Exec 1 deletes strategies, 2 inserts s1, 3 inserts p1.
	failing := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: errors.New("disk full")}
	svc := NewSnapshotService(nil, failing, "", "test", fixedClock)

	_, err := svc.ImportSchema(ctx, sampleSchema(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, int32(3), failing.Execs, "stops at the failing write")

	actions, err := repository.NewSQLiteActionRepo(database).List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, actions, 5)
}

func TestSnapshotService_ImportFile(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	svc := NewSnapshotService(nil, uow, "", "test", fixedClock)

	data, err := json.Marshal(sampleSchema())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	res, err := svc.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Source)
	assert.Equal(t, 2, res.Projects)
	assert.Equal(t, 2, res.ChecklistItems)

	_, err = svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSnapshotService_SyncFromAPI(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}
	api := &fakeAPI{schema: sampleSchema()}
	svc := NewSnapshotService(api, uow, "", "https://plan.example.com", fixedClock, obs)

	res, err := svc.SyncFromAPI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://plan.example.com", res.Source)
	assert.True(t, res.ProfileUpdated)
	assert.Equal(t, []string{"refresh", "strategies"}, api.calls, "cached reads are dropped before fetching")

	require.Len(t, obs.events, 1)
	assert.Equal(t, "sync", obs.events[0].Name)
	assert.True(t, obs.events[0].Success())
	assert.Equal(t, 1, obs.events[0].Fields["strategies"])
}

func TestSnapshotService_SyncFromAPI_Errors(t *testing.T) {
	uow := testutil.NewTestUoW(testutil.NewTestDB(t))

	_, err := NewSnapshotService(nil, uow, "", "x", fixedClock).SyncFromAPI(context.Background())
	assert.ErrorIs(t, err, apiclient.ErrNotConfigured)

	obs := &recordingObserver{}
	api := &fakeAPI{schema: sampleSchema(), err: apiclient.ErrUnavailable}
	_, err = NewSnapshotService(api, uow, "", "x", fixedClock, obs).SyncFromAPI(context.Background())
	assert.ErrorIs(t, err, apiclient.ErrUnavailable)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success())
}

func TestSnapshotService_SyncKeepsLocalTimezoneWhenRemoteHasNone(t *testing.T) {
	database, uow := seededUoW(t)
	ctx := context.Background()
	require.NoError(t, repository.NewSQLiteUserProfileRepo(database).SetTimezone(ctx, "Europe/Berlin"))

	schema := sampleSchema()
	schema.Profile.Timezone = ""
	_, err := NewSnapshotService(&fakeAPI{schema: schema}, uow, "", "api", fixedClock).SyncFromAPI(ctx)
	require.NoError(t, err)

	profile, err := repository.NewSQLiteUserProfileRepo(database).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", profile.Timezone)
}
