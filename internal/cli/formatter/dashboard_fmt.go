package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/urgency"
)

// FormatDashboard renders portfolio totals followed by one block per
// strategy comparing its reported progress with the derived rollups.
func FormatDashboard(resp *app.DashboardResponse) string {
	var b strings.Builder

	b.WriteString(Header("Dashboard"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s  ·  %s", resp.Today.Format("Mon Jan 2, 2006"), resp.Timezone)))
	b.WriteString("\n")
	b.WriteString(Dim(formatSyncLine(resp)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n", PadRight("Projects", 10), RenderCompletion(resp.Projects, 24)))
	b.WriteString(fmt.Sprintf("%s %s\n", PadRight("Actions", 10), RenderCompletion(resp.Actions, 24)))

	if len(resp.Strategies) == 0 {
		b.WriteString("\n")
		b.WriteString(Dim("No strategies yet. Run `strata sync` or `strata import FILE`."))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range resp.Strategies {
		b.WriteString("\n")
		b.WriteString(StrategyStyle(s.Strategy).Render("■ "))
		b.WriteString(Bold(s.Strategy.Title))
		b.WriteString("  ")
		b.WriteString(Dim(fmt.Sprintf("%s → %s",
			s.Strategy.StartDate.Format("Jan 2"), s.Strategy.TargetDate.Format("Jan 2, 2006"))))
		b.WriteString("\n")

		b.WriteString(fmt.Sprintf("  %s %s\n", PadRight(Dim("Reported"), 10), RenderProgress(s.ReportedProgress, 20)))
		b.WriteString(fmt.Sprintf("  %s %s\n", PadRight(Dim("Projects"), 10), RenderCompletion(s.Projects, 20)))
		b.WriteString(fmt.Sprintf("  %s %s\n", PadRight(Dim("Actions"), 10), RenderCompletion(s.Actions, 20)))
		if line := formatUrgencyCounts(s.Urgency); line != "" {
			b.WriteString("  " + line + "\n")
		}
		if s.Overdue > 0 {
			b.WriteString("  " + StyleRed.Render(fmt.Sprintf("%d overdue", s.Overdue)) + "\n")
		}
	}
	return b.String()
}

func formatSyncLine(resp *app.DashboardResponse) string {
	if resp.Sync == nil {
		return "never synced"
	}
	return fmt.Sprintf("last sync %s from %s", resp.Sync.SyncedAt.Format("Jan 2 15:04 MST"), resp.Sync.Source)
}

// formatUrgencyCounts lists non-empty buckets from most to least urgent.
func formatUrgencyCounts(counts map[urgency.Bucket]int) string {
	buckets := urgency.Buckets()
	var parts []string
	for i := len(buckets) - 1; i >= 0; i-- {
		n := counts[buckets[i]]
		if n == 0 {
			continue
		}
		parts = append(parts, SeverityStyle(i).Render(fmt.Sprintf("%s %d", bucketCaption(buckets[i]), n)))
	}
	return strings.Join(parts, Dim(" · "))
}

func bucketCaption(b urgency.Bucket) string {
	return strings.ReplaceAll(string(b), "_", " ")
}
