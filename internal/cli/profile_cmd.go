package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/cli/formatter"
)

// commonTimezones seeds suggestions in the timezone prompt.
var commonTimezones = []string{
	"UTC",
	"America/New_York",
	"America/Chicago",
	"America/Denver",
	"America/Los_Angeles",
	"Europe/London",
	"Europe/Berlin",
	"Asia/Kolkata",
	"Asia/Tokyo",
	"Australia/Sydney",
}

func newProfileCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or adjust the local user profile",
	}

	cmd.AddCommand(
		newProfileShowCmd(a),
		newProfileTimezoneCmd(a),
	)

	return cmd
}

func newProfileShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the synced profile and the timezone used for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.Profile.Show(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(view))
			return nil
		},
	}
}

func newProfileTimezoneCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "timezone [ZONE]",
		Short: "Set the IANA timezone used to decide what day it is",
		Long: "Set the IANA timezone used to decide what day it is. Without ZONE,\n" +
			"prompts for one on a terminal and prints the effective zone otherwise.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var zone string
			switch {
			case len(args) == 1:
				zone = args[0]
			case a.interactive():
				current, err := a.Profile.EffectiveTimezone(cmd.Context())
				if err != nil {
					return err
				}
				zone = current
				if err := timezoneForm(&zone).Run(); err != nil {
					return err
				}
			default:
				tz, err := a.Profile.EffectiveTimezone(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tz)
				return nil
			}

			view, err := a.Profile.SetTimezone(cmd.Context(), strings.TrimSpace(zone))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Timezone set to %s\n",
				formatter.StyleGreen.Render("✔"), view.EffectiveTimezone)
			return nil
		},
	}
}

// timezoneForm prompts for an IANA zone name.
func timezoneForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("IANA name, e.g. America/New_York").
				Suggestions(commonTimezones).
				Value(value).
				Validate(validateTimezone),
		),
	).WithTheme(strataHuhTheme()).WithShowHelp(false)
}

func validateTimezone(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("timezone is required")
	}
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown timezone %q", s)
	}
	return nil
}
