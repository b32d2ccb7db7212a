package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obspy/obshub/internal/application/commands"
	settings "github.com/obspy/obshub/internal/config"
	"github.com/obspy/obshub/internal/core/config"
)

// NewShowConfigCommand creates the show-config command
func NewShowConfigCommand(container *CLIContainer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show-config",
		Short: "Show the configuration file as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd, container, "")
			if err != nil {
				return err
			}

			path := configPath(cmd, rt)
			cfg, err := rt.Service.LoadConfig(cmd.Context(), commands.NewValidateConfigCommand(path))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(path))
			fmt.Fprintln(cmd.OutOrStdout(), renderConfig(cfg))
			return nil
		},
	}

	addPathFlag(cmd)
	return cmd
}

func renderConfig(cfg *config.Configuration) string {
	rows := make([][]string, 0, cfg.Len())
	for _, spec := range config.Keys() {
		v, _ := cfg.Get(spec.Name)
		value := config.Render(v, config.RenderOptions{Separator: ", "})
		if v.IsEmpty() {
			value = mutedStyle.Render("(empty)")
		}
		rows = append(rows, []string{spec.Name, spec.Kind.String(), value})
	}
	return renderTable([]string{"KEY", "KIND", "VALUE"}, rows)
}

// NewKeysCommand creates the keys command
func NewKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the recognized configuration keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := config.Keys()
			rows := make([][]string, len(specs))
			for i, spec := range specs {
				rows[i] = []string{
					spec.Name,
					spec.Kind.String(),
					config.Render(spec.Default, config.RenderOptions{}),
					spec.Description,
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"KEY", "KIND", "DEFAULT", "DESCRIPTION"}, rows))
			return nil
		},
	}
}

// NewSettingsCommand creates the settings command
func NewSettingsCommand(container *CLIContainer) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the effective process settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd, container, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderSettings(rt.Settings))
			return nil
		},
	}
}

func renderSettings(s *settings.Config) string {
	orDefault := func(v string) string {
		if v == "" {
			return mutedStyle.Render("(not set)")
		}
		return v
	}

	return renderTable([]string{"SETTING", "VALUE"}, [][]string{
		{"github.repository", s.GitHub.Repository},
		{"github.api_url", orDefault(s.GitHub.APIURL)},
		{"github.token", maskToken(s.GitHub.Token)},
		{"github.timeout", s.GitHub.Timeout.String()},
		{"config.path", s.Store.Path},
		{"config.groups_file", orDefault(s.Store.GroupsFile)},
		{"directives.sentinel", s.Directives.Sentinel},
		{"directives.strict", fmt.Sprint(s.Directives.Strict)},
		{"directives.legacy", fmt.Sprint(s.Directives.Legacy)},
		{"log.level", s.Log.Level},
	})
}

// maskToken masks the GitHub token for display
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + strings.Repeat("*", 4) + token[len(token)-4:]
}
