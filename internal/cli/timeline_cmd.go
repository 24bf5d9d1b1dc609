package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/cli/formatter"
)

func newTimelineCmd(a *App) *cobra.Command {
	var (
		strategyID  string
		interactive bool
		expand      bool
		daysPerCol  int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show strategies, milestones and actions on a shared date axis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if daysPerCol <= 0 {
				return fmt.Errorf("--days-per-col must be positive, got %d", daysPerCol)
			}
			req := app.TimelineRequest{StrategyID: strategyID}

			if interactive {
				if !a.interactive() {
					return fmt.Errorf("interactive timeline needs a terminal")
				}
				m := newTimelineModel(cmd.Context(), a.Timeline, req, daysPerCol)
				_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
				return err
			}

			resp, err := a.Timeline.GetTimeline(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimeline(resp, formatter.TimelineOptions{
				DaysPerCol: daysPerCol,
				Cursor:     -1,
				Expanded:   func(string) bool { return expand },
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyID, "strategy", "", "Limit to one strategy ID")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the scrollable timeline")
	cmd.Flags().BoolVar(&expand, "expand", false, "Show milestones and action markers")
	cmd.Flags().IntVar(&daysPerCol, "days-per-col", formatter.DefaultDaysPerCol, "Days per terminal column")

	return cmd
}
