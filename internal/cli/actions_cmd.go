package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/domain"
)

func newActionsCmd(a *App) *cobra.Command {
	var strategyID, by string

	cmd := &cobra.Command{
		Use:   "actions",
		Short: "List open and achieved actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			grouping, ok := app.ParseActionGrouping(by)
			if !ok {
				return fmt.Errorf("--by must be %q or %q, got %q", app.GroupByProject, app.GroupByDue, by)
			}
			resp, err := a.Actions.List(cmd.Context(), app.ActionListRequest{
				StrategyID: strategyID,
				By:         grouping,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActionList(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&strategyID, "strategy", "", "Limit to one strategy ID")
	cmd.Flags().StringVar(&by, "by", string(app.GroupByProject), "Grouping: project or due")

	return cmd
}

func newActionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Inspect or update a single action",
	}

	cmd.AddCommand(
		newActionShowCmd(a),
		newActionSetStatusCmd(a),
	)

	return cmd
}

func newActionShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an action with its checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveActionID(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			detail, err := a.Actions.Show(cmd.Context(), app.ActionShowRequest{ID: id})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActionDetail(detail))
			return nil
		},
	}
}

func newActionSetStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change an action's status on the server and locally",
		Long: "Change an action's status. STATUS is one of not_started, in_progress,\n" +
			"at_risk, on_hold or achieved. Requires a contributor role or higher.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := domain.ParseActionStatus(args[1])
			if err != nil {
				return err
			}
			id, err := resolveActionID(cmd.Context(), a, args[0])
			if err != nil {
				return err
			}
			action, err := a.Actions.SetStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n",
				formatter.StyleGreen.Render("✔"), action.Title, formatter.ActionStatusPill(action.Status))
			return nil
		},
	}
}
