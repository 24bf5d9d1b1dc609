package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/importer"
	"github.com/alexanderramin/strata/internal/testutil"
)

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// sampleSchema is a one-strategy portfolio as of testNow:
//
//	p1 Launch  2025-02-01..2025-03-31  completed
//	p2 Expand  ..2025-05-15            on track
//	a1 Ship beta      p1  due 03-10  achieved
//	a2 Hire           p2  due 03-20  in progress (checklist 1/2)
//	a3 Review         --  undated
//	a4 Old            p2  due 03-01  archived
//	a5 Renew license  --  due 03-01  overdue
func sampleSchema() *importer.SnapshotSchema {
	return &importer.SnapshotSchema{
		Strategies: []importer.StrategyRecord{{
			ID: "s1", Title: "Grow revenue", ColorCode: "#10B981", Status: "active",
			StartDate: "2025-01-01", TargetDate: "2025-06-30", Progress: intPtr(40),
			CreatedAt: "2024-12-01T00:00:00Z",
		}},
		Projects: []importer.ProjectRecord{
			{ID: "p1", StrategyID: "s1", Title: "Launch", Status: "C",
				StartDate: strPtr("2025-02-01"), DueDate: strPtr("2025-03-31"), CreatedAt: "2025-01-02T00:00:00Z"},
			{ID: "p2", StrategyID: "s1", Title: "Expand", Status: "OT",
				DueDate: strPtr("2025-05-15"), CreatedAt: "2025-01-03T00:00:00Z"},
		},
		Actions: []importer.ActionRecord{
			{ID: "a1", StrategyID: "s1", ProjectID: strPtr("p1"), Title: "Ship beta", Status: "achieved",
				DueDate: strPtr("2025-03-10"), IsArchived: importer.Bool(false), CreatedAt: "2025-01-04T00:00:00Z"},
			{ID: "a2", StrategyID: "s1", ProjectID: strPtr("p2"), Title: "Hire", Status: "in_progress",
				DueDate: strPtr("2025-03-20"), IsArchived: importer.Bool(false), CreatedAt: "2025-01-04T00:00:00Z"},
			{ID: "a3", StrategyID: "s1", Title: "Review", Status: "not_started",
				IsArchived: importer.Bool(false), CreatedAt: "2025-01-05T00:00:00Z"},
			{ID: "a4", StrategyID: "s1", ProjectID: strPtr("p2"), Title: "Old", Status: "on_hold",
				DueDate: strPtr("2025-03-01"), IsArchived: importer.Bool(true), CreatedAt: "2025-01-01T00:00:00Z"},
			{ID: "a5", StrategyID: "s1", Title: "Renew license", Status: "not_started",
				DueDate: strPtr("2025-03-01"), IsArchived: importer.Bool(false), CreatedAt: "2025-01-06T00:00:00Z"},
		},
		ChecklistItems: []importer.ChecklistRecord{
			{ID: "c1", ActionID: "a2", Title: "Post job", IsCompleted: true, OrderIndex: 1, CreatedAt: "2025-01-04T00:00:00Z"},
			{ID: "c2", ActionID: "a2", Title: "Write description", OrderIndex: 0, CreatedAt: "2025-01-04T00:00:00Z"},
		},
		Profile: &importer.ProfileRecord{ID: "u-1", Name: "Dana", Timezone: "UTC", Role: "contributor"},
	}
}

// seededUoW returns a store loaded with sampleSchema.
func seededUoW(t *testing.T) (*sql.DB, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	svc := NewSnapshotService(nil, uow, "", "test", fixedClock)
	_, err := svc.ImportSchema(context.Background(), sampleSchema(), "fixture")
	require.NoError(t, err)
	return database, uow
}

// fakeAPI serves a fixed schema and records status updates.
type fakeAPI struct {
	schema   *importer.SnapshotSchema
	err      error
	mu       sync.Mutex
	updates  []string
	response *importer.ActionRecord
	// calls records Refresh and Strategies in order.
	calls []string
}

func (f *fakeAPI) Refresh(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "refresh")
	return nil
}

func (f *fakeAPI) Strategies(context.Context) ([]importer.StrategyRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "strategies")
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.schema.Strategies, nil
}

func (f *fakeAPI) Projects(context.Context) ([]importer.ProjectRecord, error) {
	return f.schema.Projects, nil
}

func (f *fakeAPI) Actions(context.Context) ([]importer.ActionRecord, error) {
	return f.schema.Actions, nil
}

func (f *fakeAPI) ChecklistItems(context.Context) ([]importer.ChecklistRecord, error) {
	return f.schema.ChecklistItems, nil
}

func (f *fakeAPI) Me(context.Context) (*importer.ProfileRecord, error) {
	return f.schema.Profile, nil
}

func (f *fakeAPI) UpdateActionStatus(_ context.Context, id string, status domain.ActionStatus) (*importer.ActionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.updates = append(f.updates, id+"="+string(status))
	if f.response != nil {
		return f.response, nil
	}
	return &importer.ActionRecord{ID: id, Status: string(status)}, nil
}

// recordingObserver collects use-case events.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}
