package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/strata/internal/apiclient"
	"github.com/alexanderramin/strata/internal/cache"
	"github.com/alexanderramin/strata/internal/importer"
	"github.com/alexanderramin/strata/internal/service"
	"github.com/alexanderramin/strata/internal/testutil"
)

const fixturePath = "testdata/snapshot.json"

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// fakeServer serves the fixture snapshot over the planning API paths and
// records PATCH bodies.
type fakeServer struct {
	*httptest.Server
	mu      sync.Mutex
	patches []string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	schema, err := importer.LoadSnapshotSchema(fixturePath)
	require.NoError(t, err)

	fs := &fakeServer{}
	mux := http.NewServeMux()
	serve := func(path string, v any) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(v)
		})
	}
	serve(apiclient.PathStrategies, schema.Strategies)
	serve(apiclient.PathProjects, schema.Projects)
	serve(apiclient.PathChecklistItems, schema.ChecklistItems)
	serve(apiclient.PathMe, schema.Profile)
	mux.HandleFunc(apiclient.PathActions, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(schema.Actions)
	})
	mux.HandleFunc(apiclient.PathActions+"/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &req)
		id := strings.TrimPrefix(r.URL.Path, apiclient.PathActions+"/")

		fs.mu.Lock()
		fs.patches = append(fs.patches, id+"="+req.Status)
		fs.mu.Unlock()

		json.NewEncoder(w).Encode(importer.ActionRecord{ID: id, Status: req.Status})
	})
	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func (fs *fakeServer) patched() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.patches...)
}

// testApp wires a full App on an empty in-memory store. A nil server
// leaves the API unconfigured.
func testApp(t *testing.T, srv *fakeServer) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	var api apiclient.Client
	if srv != nil {
		api = apiclient.New(apiclient.Config{
			BaseURL:   srv.URL,
			TimeoutMs: 2000,
			CacheTTL:  time.Minute,
		}, cache.NewMemoryCache(), nil)
	}

	return &App{
		Snapshot:   service.NewSnapshotService(api, uow, "", "api", fixedClock),
		Timeline:   service.NewTimelineService(uow, "", fixedClock),
		Calendar:   service.NewCalendarService(uow, "", fixedClock),
		Actions:    service.NewActionService(api, uow, "", fixedClock),
		Dashboard:  service.NewDashboardService(uow, "", fixedClock),
		Profile:    service.NewProfileService(uow, ""),
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
	}
}

// seededApp is testApp with the fixture imported.
func seededApp(t *testing.T, srv *fakeServer) *App {
	t.Helper()
	a := testApp(t, srv)
	_, err := executeCmd(t, a, "import", fixturePath)
	require.NoError(t, err)
	return a
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- sync / import ---

func TestImportCmd(t *testing.T) {
	a := testApp(t, nil)
	out, err := executeCmd(t, a, "import", fixturePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Synced 1 strategies, 2 projects, 5 actions, 2 checklist items")
	assert.Contains(t, out, "from "+fixturePath)
	assert.Contains(t, out, "profile updated")
}

func TestImportCmd_MissingFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t, nil), "import", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestImportCmd_RequiresFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t, nil), "import")
	require.Error(t, err)
}

func TestSyncCmd_FromAPI(t *testing.T) {
	srv := newFakeServer(t)
	a := testApp(t, srv)

	out, err := executeCmd(t, a, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Synced 1 strategies, 2 projects, 5 actions")
	assert.Contains(t, out, "from api")

	out, err = executeCmd(t, a, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "from api")
}

func TestSyncCmd_NotConfigured(t *testing.T) {
	_, err := executeCmd(t, testApp(t, nil), "sync")
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrNotConfigured)
}

// --- timeline ---

func TestTimelineCmd(t *testing.T) {
	a := seededApp(t, nil)

	out, err := executeCmd(t, a, "timeline")
	require.NoError(t, err)
	assert.Contains(t, out, "Grow revenue")
	assert.Contains(t, out, "today Mar 15")
	assert.NotContains(t, out, "Launch")

	out, err = executeCmd(t, a, "timeline", "--expand")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "Expand")
	assert.Contains(t, out, "◆")
}

func TestTimelineCmd_UnknownStrategy(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "timeline", "--strategy", "missing")
	require.Error(t, err)
}

func TestTimelineCmd_InteractiveNeedsTerminal(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "timeline", "-i")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a terminal")
}

func TestTimelineCmd_RejectsBadScale(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "timeline", "--days-per-col", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--days-per-col")
}

// --- calendar ---

func TestCalendarCmd_DefaultsToCurrentMonth(t *testing.T) {
	out, err := executeCmd(t, seededApp(t, nil), "calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "MARCH 2025")
	assert.Contains(t, out, "Hire")
	assert.Contains(t, out, "Launch")
	assert.NotContains(t, out, "Old")
}

func TestCalendarCmd_MonthFlag(t *testing.T) {
	out, err := executeCmd(t, seededApp(t, nil), "calendar", "--month", "2025-05")
	require.NoError(t, err)
	assert.Contains(t, out, "MAY 2025")
	assert.Contains(t, out, "Expand")
	assert.NotContains(t, out, "Hire")
}

func TestCalendarCmd_BadMonth(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "calendar", "--month", "May")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM")
}

func TestMonthValue(t *testing.T) {
	var m monthValue
	assert.Equal(t, "", m.String())
	require.NoError(t, m.Set("2025-02"))
	assert.Equal(t, 2025, m.year)
	assert.Equal(t, time.February, m.month)
	assert.Equal(t, "2025-02", m.String())
	assert.Error(t, m.Set("2025-13"))
	assert.Equal(t, "YYYY-MM", m.Type())
}

// --- actions ---

func TestActionsCmd_ByProject(t *testing.T) {
	out, err := executeCmd(t, seededApp(t, nil), "actions")
	require.NoError(t, err)
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "Expand")
	assert.Contains(t, out, "Unlinked actions")
	assert.Contains(t, out, "Renew license")
	assert.NotContains(t, out, "Old")
}

func TestActionsCmd_ByDue(t *testing.T) {
	out, err := executeCmd(t, seededApp(t, nil), "actions", "--by", "due")
	require.NoError(t, err)
	assert.Contains(t, out, "URGENCY")
	assert.Contains(t, out, "14 days overdue")
	assert.Contains(t, out, "Due in 5 days")
	assert.Less(t, strings.Index(out, "Renew license"), strings.Index(out, "Hire"))
}

func TestActionsCmd_BadGrouping(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "actions", "--by", "owner")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--by")
}

func TestActionShowCmd_ResolvesPrefix(t *testing.T) {
	out, err := executeCmd(t, seededApp(t, nil), "action", "show", "a2")
	require.NoError(t, err)
	assert.Contains(t, out, "Hire")
	assert.Contains(t, out, "Write description")
	assert.Contains(t, out, "1/2 complete")
	assert.Less(t, strings.Index(out, "Write description"), strings.Index(out, "Post job"))
}

func TestActionShowCmd_AmbiguousPrefix(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "action", "show", "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestActionShowCmd_ArchivedByFullID(t *testing.T) {
	out, err := executeCmd(t, seededApp(t, nil), "action", "show", "a4-old")
	require.NoError(t, err)
	assert.Contains(t, out, "Old")
	assert.Contains(t, out, "Archived")
}

func TestActionSetStatusCmd(t *testing.T) {
	srv := newFakeServer(t)
	a := seededApp(t, srv)

	out, err := executeCmd(t, a, "action", "set-status", "a2", "achieved")
	require.NoError(t, err)
	assert.Contains(t, out, "Hire")
	assert.Contains(t, out, "Achieved")
	assert.Equal(t, []string{"a2-hire=achieved"}, srv.patched())

	out, err = executeCmd(t, a, "action", "show", "a2-hire")
	require.NoError(t, err)
	assert.Contains(t, out, "Achieved")
}

func TestActionSetStatusCmd_BadStatus(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "action", "set-status", "a2", "finished")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action status")
}

func TestActionSetStatusCmd_NotConfigured(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "action", "set-status", "a2", "achieved")
	require.Error(t, err)
	assert.ErrorIs(t, err, apiclient.ErrNotConfigured)
}

// --- dashboard / profile / config ---

func TestDashboardCmd(t *testing.T) {
	out, err := executeCmd(t, seededApp(t, nil), "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Grow revenue")
	assert.Contains(t, out, " 40%")
	assert.Contains(t, out, "1/2 complete")
	assert.Contains(t, out, "1 overdue")
	assert.Contains(t, out, "from "+fixturePath)
}

func TestDashboardCmd_Empty(t *testing.T) {
	out, err := executeCmd(t, testApp(t, nil), "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "never synced")
	assert.Contains(t, out, "No strategies yet")
}

func TestProfileShowCmd(t *testing.T) {
	out, err := executeCmd(t, seededApp(t, nil), "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Dana")
	assert.Contains(t, out, "contributor")
	assert.Contains(t, out, "UTC")
}

func TestProfileTimezoneCmd(t *testing.T) {
	a := seededApp(t, nil)

	out, err := executeCmd(t, a, "profile", "timezone")
	require.NoError(t, err)
	assert.Equal(t, "UTC\n", out)

	out, err = executeCmd(t, a, "profile", "timezone", "Europe/Berlin")
	require.NoError(t, err)
	assert.Contains(t, out, "Timezone set to Europe/Berlin")

	out, err = executeCmd(t, a, "profile", "timezone")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin\n", out)
}

func TestProfileTimezoneCmd_RejectsUnknownZone(t *testing.T) {
	_, err := executeCmd(t, seededApp(t, nil), "profile", "timezone", "Mars/Olympus_Mons")
	require.Error(t, err)
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, validateTimezone("UTC"))
	assert.NoError(t, validateTimezone(" America/New_York "))
	assert.Error(t, validateTimezone(""))
	assert.Error(t, validateTimezone("Nowhere/Special"))
}

func TestConfigInitCmd(t *testing.T) {
	a := testApp(t, nil)

	out, err := executeCmd(t, a, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	_, err = os.Stat(a.ConfigPath)
	require.NoError(t, err)

	out, err = executeCmd(t, a, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}
