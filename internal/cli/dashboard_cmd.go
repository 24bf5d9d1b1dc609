package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/cli/formatter"
)

func newDashboardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show portfolio progress and urgency by strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Dashboard.GetDashboard(cmd.Context(), app.DashboardRequest{})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(resp))
			return nil
		},
	}
}
