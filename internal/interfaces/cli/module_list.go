package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obspy/obshub/internal/application/commands"
	"github.com/obspy/obshub/internal/core/modules"
)

// NewModuleListCommand creates the get-module-list command
func NewModuleListCommand(container *CLIContainer) *cobra.Command {
	var (
		group      string
		sep        string
		prefix     string
		groupsFile string
		resolve    bool
	)

	cmd := &cobra.Command{
		Use:   "get-module-list",
		Short: "Print the modules to test",
		Long: `Print a module group from the catalog. With --resolve the group is
extended by the modules and flags of the configuration file:
all_modules selects every module, network adds the network group.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd, container, "")
			if err != nil {
				return err
			}

			listCmd := commands.NewModuleListCommand(group)
			listCmd.Separator = sep
			listCmd.Prefix = prefix
			listCmd.GroupsFile = groupsFile
			if groupsFile == "" {
				listCmd.GroupsFile = rt.Settings.Store.GroupsFile
			}
			if resolve || cmd.Flags().Changed("path") {
				listCmd.ConfigPath = configPath(cmd, rt)
			}

			mods, err := rt.Service.ModuleList(cmd.Context(), listCmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(mods, listCmd.Separator))
			return nil
		},
	}

	addPathFlag(cmd)
	cmd.Flags().StringVar(&group, "group", modules.GroupDefault, "Module group: default, network or all")
	cmd.Flags().StringVar(&sep, "sep", " ", "Separator between modules")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for every module (e.g. obspy.)")
	cmd.Flags().StringVar(&groupsFile, "groups-file", "", "YAML module catalog (default is the built-in ObsPy catalog)")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "Resolve the group against the configuration file")

	return cmd
}
