package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obspy/obshub/internal/application/commands"
)

// NewReadValueCommand creates the read-config-value command
func NewReadValueCommand(container *CLIContainer) *cobra.Command {
	var sep, prefix string

	cmd := &cobra.Command{
		Use:   "read-config-value <key>",
		Short: "Print one value of the configuration file",
		Long: `Print the value of a recognized key for use in shell scripts.

Sets are printed sorted and joined with --sep, each item prefixed with
--prefix. Booleans print as true or false.

Exit status is 2 when the file is invalid, 3 when the key is unknown
and 4 when the value is empty.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd, container, "")
			if err != nil {
				return err
			}

			readCmd := commands.NewReadValueCommand(args[0], configPath(cmd, rt))
			readCmd.Separator = sep
			readCmd.Prefix = prefix

			value, err := rt.Service.ReadValue(cmd.Context(), readCmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	addPathFlag(cmd)
	cmd.Flags().StringVar(&sep, "sep", " ", "Separator between set items")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for every set item (e.g. obspy.)")

	return cmd
}
