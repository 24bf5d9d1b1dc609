package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/strata/internal/app"
	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/dates"
)

// monthValue is a YYYY-MM flag. The zero value means the current month.
type monthValue struct {
	year  int
	month time.Month
}

var _ pflag.Value = (*monthValue)(nil)

func (m *monthValue) String() string {
	if m.year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

func (m *monthValue) Set(s string) error {
	t, err := time.Parse(dates.MonthLayout, s)
	if err != nil {
		return fmt.Errorf("expected YYYY-MM, got %q", s)
	}
	m.year, m.month = t.Year(), t.Month()
	return nil
}

func (m *monthValue) Type() string { return "YYYY-MM" }

func newCalendarCmd(a *App) *cobra.Command {
	var month monthValue

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month of project and action due dates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.Calendar.GetMonth(cmd.Context(), app.CalendarRequest{
				Year:  month.year,
				Month: month.month,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCalendar(resp))
			return nil
		},
	}

	cmd.Flags().Var(&month, "month", "Month to show (default: the current month)")

	return cmd
}
