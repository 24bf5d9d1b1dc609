package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/domain"
)

// FormatActionList renders an action listing in the grouping it was
// built with.
func FormatActionList(resp *app.ActionListResponse) string {
	if resp.By == app.GroupByDue {
		return FormatActionsByDue(resp.Rows)
	}
	return FormatActionGroups(resp.Groups)
}

// FormatActionGroups renders one tree per project, unlinked actions last.
func FormatActionGroups(groups []app.ActionGroupView) string {
	if len(groups) == 0 {
		return Dim("No actions.") + "\n"
	}

	var items []TreeItem
	for _, g := range groups {
		heading := Bold(g.Group.ParentTitle)
		if !g.Group.Linked {
			heading = StyleDim.Bold(true).Render(g.Group.ParentTitle)
		}
		items = append(items, TreeItem{
			Title:  heading,
			Detail: g.Group.Progress.Label(),
		})
		for i, row := range g.Rows {
			items = append(items, TreeItem{
				Title:  row.Action.Title,
				Level:  1,
				IsLast: i == len(g.Rows)-1,
				Status: row.Action.Status,
				Detail: dueDetail(row),
			})
		}
	}
	return RenderTree(items)
}

// FormatActionsByDue renders a flat table ordered by due date.
func FormatActionsByDue(rows []app.ActionRow) string {
	if len(rows) == 0 {
		return Dim("No actions.") + "\n"
	}

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			OptionalDate(r.Action.DueDate),
			UrgencyBadge(r.Urgency),
			Truncate(r.Action.Title, 40),
			ActionStatusPill(r.Action.Status),
			Truncate(r.ProjectTitle, 24),
			Truncate(r.StrategyTitle, 24),
			TruncID(r.Action.ID),
		})
	}
	return RenderTable([]string{"DUE", "URGENCY", "ACTION", "STATUS", "PROJECT", "STRATEGY", "ID"}, table)
}

// FormatActionDetail renders one action with its checklist.
func FormatActionDetail(d *app.ActionDetail) string {
	a := d.Row.Action

	var b strings.Builder
	b.WriteString(Bold(a.Title))
	b.WriteString("\n\n")

	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", PadRight(Dim(name), 10), value))
	}
	field("Status", ActionStatusPill(a.Status))
	field("Due", OptionalDate(a.DueDate))
	if d.Row.Urgency != nil {
		field("", UrgencyBadge(d.Row.Urgency))
	}
	field("Strategy", d.Row.StrategyTitle)
	project := d.Row.ProjectTitle
	if project == "" {
		project = Dim("unlinked")
	}
	field("Project", project)
	if a.IsArchived {
		field("Archived", StyleYellow.Render("yes"))
	}
	field("ID", Dim(a.ID))

	b.WriteString("\n")
	b.WriteString(StyleHeader.Render("CHECKLIST"))
	b.WriteString("  ")
	b.WriteString(RenderCompletion(d.Progress, 20))
	b.WriteString("\n")
	if len(d.Checklist) == 0 {
		b.WriteString(Dim("  (empty)"))
		b.WriteString("\n")
	}
	for _, item := range d.Checklist {
		b.WriteString(formatChecklistItem(item))
	}
	return RenderBox("Action", strings.TrimRight(b.String(), "\n"))
}

func formatChecklistItem(item domain.ChecklistItem) string {
	if item.Done {
		return fmt.Sprintf("  %s %s\n", StyleGreen.Render("[x]"), Dim(item.Title))
	}
	return fmt.Sprintf("  [ ] %s\n", item.Title)
}

func dueDetail(r app.ActionRow) string {
	if r.Action.DueDate == nil {
		return "no due date"
	}
	if r.Urgency == nil {
		return r.Action.DueDate.Format("Jan 2")
	}
	return r.Action.DueDate.Format("Jan 2") + " · " + r.Urgency.Label
}
