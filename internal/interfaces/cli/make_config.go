package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/obspy/obshub/internal/application/commands"
	"github.com/obspy/obshub/internal/application/services"
)

// NewMakeConfigCommand creates the make-config command
func NewMakeConfigCommand(container *CLIContainer) *cobra.Command {
	var (
		commentsFile string
		strict       bool
	)

	cmd := &cobra.Command{
		Use:   "make-config <issue-number>",
		Short: "Build the CI configuration file from an issue thread",
		Long: `Fetch the body and comments of an issue or pull request, fold every
directive into the default configuration and write the result as JSON.

Nothing is written when the merged configuration does not validate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("issue number must be an integer, got %q", args[0])
			}

			rt, err := buildRuntime(cmd, container, commentsFile)
			if err != nil {
				return err
			}

			makeCmd := commands.NewMakeConfigCommand(number, configPath(cmd, rt))
			makeCmd.Strict = strict

			result, err := rt.Service.MakeConfig(cmd.Context(), makeCmd)
			if err != nil {
				return err
			}

			printMakeConfigResult(cmd, result)
			return nil
		},
	}

	addPathFlag(cmd)
	cmd.Flags().StringVar(&commentsFile, "comments-file", "", "Read comments from a JSON dump instead of GitHub")
	cmd.Flags().BoolVar(&strict, "strict", false, "Report directives with unrecognized keys")

	return cmd
}

func printMakeConfigResult(cmd *cobra.Command, result *services.MakeConfigResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s %s from issue #%d (%s, %s)\n",
		successStyle.Render("Wrote"),
		result.Path,
		result.IssueNumber,
		pluralize(result.Comments, "comment"),
		pluralize(result.Applied, "directive"))

	for _, is := range result.Issues {
		fmt.Fprintf(out, "  %s %s\n", warnStyle.Render("ignored"), is)
	}
}
