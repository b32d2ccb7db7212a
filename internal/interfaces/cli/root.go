package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/obspy/obshub/internal/application/services"
	settings "github.com/obspy/obshub/internal/config"
	"github.com/obspy/obshub/internal/core/config"
	"github.com/obspy/obshub/internal/core/status"
)

var (
	Version   = "dev"     // Overridden by ldflags
	BuildTime = "unknown" // Overridden by ldflags
)

// Process exit codes
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitEmpty      = 4
)

// BuildOptions carries the flag values that shape the runtime
type BuildOptions struct {
	SettingsFile string
	LogLevel     string
	Repository   string
	// CommentsFile selects the local JSON comment source instead of GitHub
	CommentsFile string
	LogOutput    io.Writer
}

// Runtime is what a command needs to run
type Runtime struct {
	Settings *settings.Config
	Service  *services.ConfigService
	// Repository talks to GitHub regardless of the comment source
	Repository *services.RepositoryService
	Logger     *slog.Logger
}

// CLIContainer holds all the dependencies for CLI commands
type CLIContainer struct {
	// Build assembles the runtime once flags are parsed
	Build func(opts BuildOptions) (*Runtime, error)
}

// NewRootCommand creates the obshub root command
func NewRootCommand(container *CLIContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "obshub",
		Short: "obshub - CI configuration from issue comments",
		Long: `obshub turns directives written in GitHub issue and pull request comments
into a JSON configuration file for CI jobs, and reads values back from it.

A comment line such as

  +CI modules+=io.sac,signal

adds modules to the test run. Later comments override earlier ones.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Set custom version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("{{.Name}} version {{.Version}}\nBuild time: %s\nGo version: %s\nPlatform: %s/%s\n",
		BuildTime, goVersion(), runtime.GOOS, runtime.GOARCH))

	// Add persistent flags
	rootCmd.PersistentFlags().String("settings", "", "Settings file (default is .obshub.yaml in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("repo", "", "GitHub repository as owner/name")

	// Add subcommands
	rootCmd.AddCommand(NewMakeConfigCommand(container))
	rootCmd.AddCommand(NewReadValueCommand(container))
	rootCmd.AddCommand(NewModuleListCommand(container))
	rootCmd.AddCommand(NewValidateCommand(container))
	rootCmd.AddCommand(NewShowConfigCommand(container))
	rootCmd.AddCommand(NewKeysCommand())
	rootCmd.AddCommand(NewSettingsCommand(container))
	rootCmd.AddCommand(NewDocsBuildRequestsCommand(container))
	rootCmd.AddCommand(NewCommitStatusCommand(container))
	rootCmd.AddCommand(NewSetCommitStatusCommand(container))

	return rootCmd
}

// goVersion returns the Go version used to build the binary
func goVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.GoVersion
	}
	return "unknown"
}

// buildRuntime collects the persistent flags and asks the container for a
// runtime
func buildRuntime(cmd *cobra.Command, container *CLIContainer, commentsFile string) (*Runtime, error) {
	flags := cmd.Flags()
	settingsFile, _ := flags.GetString("settings")
	logLevel, _ := flags.GetString("log-level")
	repo, _ := flags.GetString("repo")

	rt, err := container.Build(BuildOptions{
		SettingsFile: settingsFile,
		LogLevel:     logLevel,
		Repository:   repo,
		CommentsFile: commentsFile,
		LogOutput:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return rt, nil
}

// configPath returns the --path flag, falling back to the settings
func configPath(cmd *cobra.Command, rt *Runtime) string {
	if path, _ := cmd.Flags().GetString("path"); path != "" {
		return path
	}
	return rt.Settings.Store.Path
}

func addPathFlag(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "Configuration file (default from settings, "+settings.DefaultConfigPath+")")
}

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, config.ErrValidation):
		return ExitValidation
	case errors.Is(err, config.ErrKeyNotFound), errors.Is(err, status.ErrNoStatus):
		return ExitNotFound
	case errors.Is(err, config.ErrKeyEmpty):
		return ExitEmpty
	default:
		return ExitFailure
	}
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context, container *CLIContainer) int {
	rootCmd := NewRootCommand(container)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, renderError(err))
		return ExitCode(err)
	}
	return ExitOK
}
