package formatter

import (
	"fmt"

	"github.com/alexanderramin/strata/internal/app"
)

// FormatSyncResult summarises a completed sync or import.
func FormatSyncResult(r *app.SyncResult) string {
	msg := fmt.Sprintf("%s Synced %d strategies, %d projects, %d actions, %d checklist items",
		StyleGreen.Render("✔"), r.Strategies, r.Projects, r.Actions, r.ChecklistItems)
	msg += "\n" + Dim(fmt.Sprintf("  from %s at %s", r.Source, r.SyncedAt.Format("2006-01-02 15:04:05 MST")))
	if r.ProfileUpdated {
		msg += "\n" + Dim("  profile updated")
	}
	return msg + "\n"
}
