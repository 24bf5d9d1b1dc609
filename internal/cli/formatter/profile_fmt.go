package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/strata/internal/app"
)

// FormatProfile renders the local profile and the zone used for today.
func FormatProfile(v *app.ProfileView) string {
	var b strings.Builder
	field := func(name, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", PadRight(Dim(name), 12), value))
	}

	if v.Profile == nil {
		b.WriteString(Dim("No profile synced yet."))
		b.WriteString("\n\n")
	} else {
		field("Name", Bold(v.Profile.DisplayName))
		if v.Profile.Email != "" {
			field("Email", v.Profile.Email)
		}
		field("Role", string(v.Profile.Role))
		tz := v.Profile.Timezone
		if tz == "" {
			tz = Dim("(not set)")
		}
		field("Timezone", tz)
	}
	field("Effective", StyleGreen.Render(v.EffectiveTimezone))

	if v.Sync != nil {
		field("Last sync", fmt.Sprintf("%s %s", v.Sync.SyncedAt.Format("2006-01-02 15:04 MST"), Dim("("+v.Sync.Source+")")))
	}
	return RenderBox("Profile", strings.TrimRight(b.String(), "\n"))
}
