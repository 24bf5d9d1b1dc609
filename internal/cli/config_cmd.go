package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/strata/internal/cli/formatter"
	"github.com/alexanderramin/strata/internal/config"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the strata config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented starter config unless one exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.ConfigPath == "" {
				return fmt.Errorf("no config path")
			}
			written, err := config.WriteDefault(a.ConfigPath)
			if err != nil {
				return err
			}
			if !written {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", a.ConfigPath)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", formatter.StyleGreen.Render("✔"), a.ConfigPath)
			return nil
		},
	})

	return cmd
}
