package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obspy/obshub/internal/application/commands"
)

// NewValidateCommand creates the validate-config command
func NewValidateCommand(container *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-config",
		Short: "Check a configuration file",
		Long: `Check that the configuration file holds every recognized key with a
value of the right kind and nothing else. Exit status is 2 when it does not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd, container, "")
			if err != nil {
				return err
			}

			path := configPath(cmd, rt)
			if _, err := rt.Service.LoadConfig(cmd.Context(), commands.NewValidateConfigCommand(path)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", successStyle.Render("Valid"), path)
			return nil
		},
	}

	addPathFlag(cmd)
	return cmd
}
