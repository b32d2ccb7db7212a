package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obspy/obshub/internal/application/commands"
)

// NewDocsBuildRequestsCommand creates the docs-build-requests command
func NewDocsBuildRequestsCommand(container *CLIContainer) *cobra.Command {
	var (
		sep   string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "docs-build-requests",
		Short: "Print open pull requests that request a docs build",
		Long: `Check the threads of all open pull requests, most recently updated first,
and print the numbers of those whose directives set docs to true, either
with "+CI docs=true" or the legacy "+DOCS".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd, container, "")
			if err != nil {
				return err
			}

			docsCmd := commands.NewDocsBuildCommand()
			docsCmd.Limit = limit

			prs, err := rt.Repository.DocsBuildRequests(cmd.Context(), docsCmd)
			if err != nil {
				return err
			}

			numbers := make([]string, len(prs))
			for i, pr := range prs {
				numbers[i] = strconv.Itoa(pr.Number)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(numbers, sep))
			return nil
		},
	}

	cmd.Flags().StringVar(&sep, "sep", " ", "Separator between pull request numbers")
	cmd.Flags().IntVar(&limit, "limit", 0, "Check at most this many pull requests (0 checks all)")

	return cmd
}

// NewCommitStatusCommand creates the commit-status command
func NewCommitStatusCommand(container *CLIContainer) *cobra.Command {
	var statusContext string

	cmd := &cobra.Command{
		Use:   "commit-status <sha>",
		Short: "Print the current status of a commit",
		Long: `Print the current state of one status context on a commit, or the
combined state of all contexts when --context is not given.

Exit status is 3 when the commit has no matching status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd, container, "")
			if err != nil {
				return err
			}

			state, err := rt.Repository.CommitStatus(cmd.Context(), commands.NewCommitStatusCommand(args[0], statusContext))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}

	cmd.Flags().StringVar(&statusContext, "context", "", "Status context, e.g. docs or docker-testbot")

	return cmd
}

// NewSetCommitStatusCommand creates the set-commit-status command
func NewSetCommitStatusCommand(container *CLIContainer) *cobra.Command {
	var (
		statusContext    string
		description      string
		targetURL        string
		onlyWhenChanged  bool
		onlyWhenNoStatus bool
	)

	cmd := &cobra.Command{
		Use:   "set-commit-status <sha> <state>",
		Short: "Post a status to a commit",
		Long: `Post a pending, success, error or failure status to a commit. The token
needs the repo:status scope.

GitHub keeps every status posted, up to 1000 per commit. Use
--only-when-changed or --only-when-no-status to avoid posting duplicates.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(cmd, container, "")
			if err != nil {
				return err
			}

			setCmd := commands.NewSetCommitStatusCommand(args[0], args[1], statusContext)
			setCmd.Description = description
			setCmd.TargetURL = targetURL
			setCmd.OnlyWhenChanged = onlyWhenChanged
			setCmd.OnlyWhenNoStatus = onlyWhenNoStatus

			result, err := rt.Repository.SetCommitStatus(cmd.Context(), setCmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.Created {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("Skipped: %s is already %s", statusContext, result.Previous)))
				return nil
			}
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Set %s to %s on %s", statusContext, args[1], args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusContext, "context", "", "Status context (required)")
	cmd.Flags().StringVar(&description, "description", "", "Short description shown next to the status")
	cmd.Flags().StringVar(&targetURL, "target-url", "", "Link shown with the status")
	cmd.Flags().BoolVar(&onlyWhenChanged, "only-when-changed", false, "Skip when the context already has this state")
	cmd.Flags().BoolVar(&onlyWhenNoStatus, "only-when-no-status", false, "Skip when the context has any status")
	_ = cmd.MarkFlagRequired("context")

	return cmd
}
