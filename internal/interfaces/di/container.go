package di

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/obspy/obshub/internal/application/ports"
	"github.com/obspy/obshub/internal/application/services"
	settings "github.com/obspy/obshub/internal/config"
	"github.com/obspy/obshub/internal/core/directive"
	"github.com/obspy/obshub/internal/infrastructure/catalog"
	"github.com/obspy/obshub/internal/infrastructure/commentfile"
	githubinfra "github.com/obspy/obshub/internal/infrastructure/github"
	"github.com/obspy/obshub/internal/infrastructure/storage"
	"github.com/obspy/obshub/internal/interfaces/cli"
	"github.com/obspy/obshub/internal/logging"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure shared by every runtime
	Store    *storage.JSONStore
	Catalogs *catalog.YAMLLoader

	// CLI
	CLIContainer *cli.CLIContainer
}

// NewContainer creates and configures the dependency injection container
func NewContainer() *Container {
	c := &Container{
		Store:    storage.NewJSONStore(),
		Catalogs: catalog.NewYAMLLoader(),
	}
	c.CLIContainer = &cli.CLIContainer{Build: c.Build}
	return c
}

// GetCLIContainer returns the CLI container for command execution
func (c *Container) GetCLIContainer() *cli.CLIContainer {
	return c.CLIContainer
}

// Build loads settings and wires the services for one command invocation
func (c *Container) Build(opts cli.BuildOptions) (*cli.Runtime, error) {
	// 1. Load settings, flags override file and environment
	overrides := map[string]any{}
	if opts.LogLevel != "" {
		overrides["log.level"] = opts.LogLevel
	}
	if opts.Repository != "" {
		overrides["github.repository"] = opts.Repository
	}

	cfg, err := settings.Load(settings.LoadOptions{
		File:      opts.SettingsFile,
		Overrides: overrides,
	})
	if err != nil {
		return nil, err
	}

	// 2. Logger
	var logOutput io.Writer = os.Stderr
	if opts.LogOutput != nil {
		logOutput = opts.LogOutput
	}
	logger, err := logging.Setup(cfg.Log.Level, logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	// 3. GitHub client and comment source
	client, err := c.githubClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	var source ports.CommentSource = client
	if opts.CommentsFile != "" {
		source = commentfile.NewCommentSource(opts.CommentsFile)
	}

	// 4. Application services
	parserOptions := directive.Options{
		Sentinel: cfg.Directives.Sentinel,
		Strict:   cfg.Directives.Strict,
		Legacy:   cfg.Directives.Legacy,
	}
	service := services.NewConfigService(source, c.Store, c.Catalogs, parserOptions, logger)
	repository := services.NewRepositoryService(client, client, client, parserOptions, logger)

	logger.Debug("runtime initialized",
		"source", source.Name(),
		"config_path", cfg.Store.Path,
		"sentinel", cfg.Directives.Sentinel)

	return &cli.Runtime{
		Settings:   cfg,
		Service:    service,
		Repository: repository,
		Logger:     logger,
	}, nil
}

func (c *Container) githubClient(cfg *settings.Config, logger *slog.Logger) (*githubinfra.Client, error) {
	owner, repo, err := githubinfra.ParseRepository(cfg.GitHub.Repository)
	if err != nil {
		return nil, err
	}

	return githubinfra.NewClient(githubinfra.Options{
		Owner:   owner,
		Repo:    repo,
		Token:   cfg.GitHub.Token,
		BaseURL: cfg.GitHub.APIURL,
		Timeout: cfg.GitHub.Timeout,
	}, logger)
}
