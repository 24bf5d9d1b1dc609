package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/cli/formatter"
)

func newSyncCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replace the local snapshot with the latest data from the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				result *app.SyncResult
				err    error
			)
			withSpinner(a, cmd, "Syncing from API...", func() {
				result, err = a.Snapshot.SyncFromAPI(cmd.Context())
			})
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSyncResult(result))
			return nil
		},
	}
}

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the local snapshot with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.Snapshot.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSyncResult(result))
			return nil
		},
	}
}

// withSpinner runs fn behind a spinner on stderr when attached to a
// terminal.
func withSpinner(a *App, cmd *cobra.Command, message string, fn func()) {
	if !a.interactive() {
		fn()
		return
	}
	stop := formatter.StartSpinner(cmd.ErrOrStderr(), message)
	defer stop()
	fn()
}
