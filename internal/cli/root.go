package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/app"
)

// App holds the use cases behind every command.
type App struct {
	Snapshot  app.SnapshotUseCase
	Timeline  app.TimelineUseCase
	Calendar  app.CalendarUseCase
	Actions   app.ActionUseCase
	Dashboard app.DashboardUseCase
	Profile   app.ProfileUseCase

	// ConfigPath is where `config init` writes the starter file.
	ConfigPath string

	// IsInteractive reports whether prompts, spinners and the full-screen
	// timeline may be used. Nil means never.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "strata" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "strata",
		Short:         "Strategy timeline, calendar and progress from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newSyncCmd(a),
		newImportCmd(a),
		newTimelineCmd(a),
		newCalendarCmd(a),
		newActionsCmd(a),
		newActionCmd(a),
		newDashboardCmd(a),
		newProfileCmd(a),
		newConfigCmd(a),
	)

	return root
}
