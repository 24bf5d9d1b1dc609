package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/calendar"
	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/rollup"
	"github.com/alexanderramin/strata/internal/urgency"
)

func TestFormatCalendar_GridAndAgenda(t *testing.T) {
	strategies := []domain.Strategy{{ID: "s1", Title: "Grow revenue", ColorCode: "#10B981"}}
	projects := []domain.Project{{ID: "p1", StrategyID: "s1", Title: "Launch", DueDate: ptr(day(2025, 3, 31))}}
	actions := []domain.Action{
		{ID: "a1", StrategyID: "s1", Title: "Kickoff", DueDate: ptr(day(2025, 3, 15))},
		{ID: "a2", StrategyID: "s1", Title: "Old", DueDate: ptr(day(2025, 3, 2)), IsArchived: true},
	}
	items := calendar.BuildItems(2025, time.March, strategies, projects, actions)

	out := stripANSI(FormatCalendar(&app.CalendarResponse{
		Month:    calendar.BuildMonth(2025, time.March, items),
		Items:    items,
		Today:    day(2025, 3, 15),
		Timezone: "UTC",
	}))

	assert.Contains(t, out, "MARCH 2025")
	assert.Contains(t, out, "Sun  Mon")
	assert.Contains(t, out, "31")
	assert.Contains(t, out, "AGENDA")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "Kickoff  Grow revenue")
	assert.Contains(t, out, "Mar 31, 2025")
	assert.NotContains(t, out, "Old")
}

func TestFormatCalendar_EmptyMonth(t *testing.T) {
	out := stripANSI(FormatCalendar(&app.CalendarResponse{
		Month:    calendar.BuildMonth(2025, time.February, nil),
		Today:    day(2025, 3, 15),
		Timezone: "UTC",
	}))
	assert.Contains(t, out, "FEBRUARY 2025")
	assert.Contains(t, out, "Nothing due this month.")
}

func sampleRows(today time.Time) []app.ActionRow {
	due := day(2025, 3, 20)
	u := urgency.Classify(due, today)
	return []app.ActionRow{
		{
			Action:        domain.Action{ID: "a2-0000000001", StrategyID: "s1", Project: domain.Linked("p2"), Title: "Hire", Status: domain.ActionInProgress, DueDate: &due},
			StrategyTitle: "Grow revenue",
			ProjectTitle:  "Expand",
			Urgency:       &u,
		},
		{
			Action:        domain.Action{ID: "a3", StrategyID: "s1", Title: "Review", Status: domain.ActionNotStarted},
			StrategyTitle: "Grow revenue",
		},
	}
}

func TestFormatActionsByDue(t *testing.T) {
	out := stripANSI(FormatActionList(&app.ActionListResponse{
		By:   app.GroupByDue,
		Rows: sampleRows(day(2025, 3, 15)),
	}))

	assert.Contains(t, out, "URGENCY")
	assert.Contains(t, out, "2025-03-20")
	assert.Contains(t, out, "Due in 5 days")
	assert.Contains(t, out, "In progress")
	assert.Contains(t, out, "a2-00000")
	assert.NotContains(t, out, "a2-0000000001")
}

func TestFormatActionGroups(t *testing.T) {
	rows := sampleRows(day(2025, 3, 15))
	groups := rollup.GroupActionsByProject(
		[]domain.Action{rows[0].Action, rows[1].Action},
		[]domain.Project{{ID: "p2", Title: "Expand"}},
	)
	resp := &app.ActionListResponse{By: app.GroupByProject}
	for _, g := range groups {
		view := app.ActionGroupView{Group: g}
		for _, a := range g.Children {
			for _, r := range rows {
				if r.Action.ID == a.ID {
					view.Rows = append(view.Rows, r)
				}
			}
		}
		resp.Groups = append(resp.Groups, view)
	}

	out := stripANSI(FormatActionList(resp))
	assert.Contains(t, out, "Expand")
	assert.Contains(t, out, "└─ ▶ Hire")
	assert.Contains(t, out, "Mar 20 · Due in 5 days")
	assert.Contains(t, out, rollup.UnlinkedGroupTitle)
	assert.Contains(t, out, "no due date")
	assert.Contains(t, out, "0/1 complete")
}

func TestFormatActionList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatActionList(&app.ActionListResponse{By: app.GroupByProject})), "No actions.")
}

func TestFormatActionDetail(t *testing.T) {
	rows := sampleRows(day(2025, 3, 15))
	items := []domain.ChecklistItem{
		{ID: "c2", Title: "Write description"},
		{ID: "c1", Title: "Post job", Done: true},
	}
	out := stripANSI(FormatActionDetail(&app.ActionDetail{
		Row:       rows[0],
		Checklist: items,
		Progress:  rollup.ChecklistCompletion(items),
	}))

	assert.Contains(t, out, "Hire")
	assert.Contains(t, out, "Expand")
	assert.Contains(t, out, "Due in 5 days")
	assert.Contains(t, out, "[ ] Write description")
	assert.Contains(t, out, "[x] Post job")
	assert.Contains(t, out, "1/2 complete")
}

func TestFormatActionDetail_UnlinkedEmptyChecklist(t *testing.T) {
	rows := sampleRows(day(2025, 3, 15))
	out := stripANSI(FormatActionDetail(&app.ActionDetail{Row: rows[1]}))
	assert.Contains(t, out, "unlinked")
	assert.Contains(t, out, "(empty)")
}

func TestFormatDashboard(t *testing.T) {
	resp := &app.DashboardResponse{
		Today:    day(2025, 3, 15),
		Timezone: "UTC",
		Projects: rollup.NewCompletion(1, 2),
		Actions:  rollup.NewCompletion(1, 4),
		Strategies: []app.StrategySummary{{
			Strategy:         domain.Strategy{ID: "s1", Title: "Grow revenue", StartDate: day(2025, 1, 1), TargetDate: day(2025, 6, 30)},
			ReportedProgress: 40,
			Projects:         rollup.NewCompletion(1, 2),
			Actions:          rollup.NewCompletion(1, 4),
			Urgency:          map[urgency.Bucket]int{urgency.DueFewDays: 1, urgency.OverdueTwoWeeks: 1},
			Overdue:          1,
		}},
	}

	out := stripANSI(FormatDashboard(resp))
	assert.Contains(t, out, "never synced")
	assert.Contains(t, out, "Grow revenue")
	assert.Contains(t, out, " 40%")
	assert.Contains(t, out, "1/4 complete")
	assert.Contains(t, out, "overdue two weeks 1 · due few days 1")
	assert.Contains(t, out, "1 overdue")
}

func TestFormatDashboard_ShowsSync(t *testing.T) {
	out := stripANSI(FormatDashboard(&app.DashboardResponse{
		Today: day(2025, 3, 15),
		Sync:  &domain.SyncState{Source: "api", SyncedAt: time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)},
	}))
	assert.Contains(t, out, "last sync Mar 15 09:30 UTC from api")
	assert.Contains(t, out, "No strategies yet")
}

func TestFormatProfile(t *testing.T) {
	out := stripANSI(FormatProfile(&app.ProfileView{
		Profile:           &domain.UserProfile{DisplayName: "Dana", Role: domain.RoleContributor},
		EffectiveTimezone: "America/New_York",
	}))
	assert.Contains(t, out, "Dana")
	assert.Contains(t, out, "contributor")
	assert.Contains(t, out, "(not set)")
	assert.Contains(t, out, "America/New_York")

	out = stripANSI(FormatProfile(&app.ProfileView{EffectiveTimezone: "UTC"}))
	assert.Contains(t, out, "No profile synced yet.")
}

func TestFormatSyncResult(t *testing.T) {
	out := stripANSI(FormatSyncResult(&app.SyncResult{
		Source: "fixture", SyncedAt: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC),
		Strategies: 1, Projects: 2, Actions: 5, ChecklistItems: 2, ProfileUpdated: true,
	}))
	assert.Contains(t, out, "Synced 1 strategies, 2 projects, 5 actions, 2 checklist items")
	assert.Contains(t, out, "from fixture")
	assert.Contains(t, out, "profile updated")
}
