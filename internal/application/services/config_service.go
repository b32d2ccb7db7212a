package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obspy/obshub/internal/application/commands"
	"github.com/obspy/obshub/internal/application/ports"
	"github.com/obspy/obshub/internal/core/config"
	"github.com/obspy/obshub/internal/core/directive"
	"github.com/obspy/obshub/internal/core/merge"
	"github.com/obspy/obshub/internal/core/modules"
)

// ConfigService orchestrates comment retrieval, directive merging,
// validation and storage of the CI configuration file
type ConfigService struct {
	source        ports.CommentSource
	store         ports.ConfigStore
	catalogs      ports.CatalogLoader
	parserOptions directive.Options
	logger        *slog.Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(
	source ports.CommentSource,
	store ports.ConfigStore,
	catalogs ports.CatalogLoader,
	parserOptions directive.Options,
	logger *slog.Logger,
) *ConfigService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigService{
		source:        source,
		store:         store,
		catalogs:      catalogs,
		parserOptions: parserOptions,
		logger:        logger,
	}
}

// MakeConfigResult describes a generated configuration file
type MakeConfigResult struct {
	Path        string
	IssueNumber int
	Comments    int
	Applied     int
	Issues      []directive.Issue
	Config      *config.Configuration
}

// MakeConfig fetches the issue thread, merges its directives and writes the
// validated configuration to cmd.Path. Nothing is written when validation
// fails.
func (s *ConfigService) MakeConfig(ctx context.Context, cmd *commands.MakeConfigCommand) (*MakeConfigResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	opts := s.parserOptions
	opts.Strict = opts.Strict || cmd.Strict
	parser, err := directive.NewParser(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create directive parser: %w", err)
	}

	thread, err := s.source.FetchThread(ctx, cmd.IssueNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue #%d from %s: %w", cmd.IssueNumber, s.source.Name(), err)
	}
	s.logger.Debug("fetched issue thread",
		"issue", thread.Number,
		"comments", len(thread.Comments),
		"source", s.source.Name())

	merged := merge.NewMerger(parser).Merge(thread.Comments)
	for _, is := range merged.Issues {
		s.logger.Warn("ignored directive",
			"issue", cmd.IssueNumber,
			"position", is.Position,
			"author", is.Author,
			"line", is.Line,
			"reason", is.Reason,
			"text", is.Text)
	}

	cfg, err := config.Validate(merged.Config)
	if err != nil {
		return nil, fmt.Errorf("refusing to write %s: %w", cmd.Path, err)
	}

	if err := s.store.Save(cmd.Path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}

	s.logger.Info("configuration written",
		"path", cmd.Path,
		"issue", cmd.IssueNumber,
		"directives", merged.Applied,
		"issues", len(merged.Issues))

	return &MakeConfigResult{
		Path:        cmd.Path,
		IssueNumber: cmd.IssueNumber,
		Comments:    len(thread.Comments),
		Applied:     merged.Applied,
		Issues:      merged.Issues,
		Config:      cfg,
	}, nil
}

// LoadConfig loads and validates the configuration file at path
func (s *ConfigService) LoadConfig(ctx context.Context, cmd *commands.ValidateConfigCommand) (*config.Configuration, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	cfg, err := s.store.Load(cmd.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	validated, err := config.Validate(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cmd.Path, err)
	}
	return validated, nil
}

// ReadValue loads the configuration file and renders one key for the shell
func (s *ConfigService) ReadValue(ctx context.Context, cmd *commands.ReadValueCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	cfg, err := s.LoadConfig(ctx, commands.NewValidateConfigCommand(cmd.Path))
	if err != nil {
		return "", err
	}

	return config.ReadValueWith(cfg, cmd.Key, config.RenderOptions{
		Separator: cmd.Separator,
		Prefix:    cmd.Prefix,
	})
}

// ModuleList returns the modules of a group. With a configuration path the
// group is resolved against the requested modules and flags.
func (s *ConfigService) ModuleList(ctx context.Context, cmd *commands.ModuleListCommand) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	catalog, err := s.catalogs.LoadCatalog(cmd.GroupsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load module catalog: %w", err)
	}

	var mods []string
	if cmd.ConfigPath == "" {
		mods, err = catalog.Group(cmd.Group)
	} else {
		var cfg *config.Configuration
		cfg, err = s.LoadConfig(ctx, commands.NewValidateConfigCommand(cmd.ConfigPath))
		if err != nil {
			return nil, err
		}
		mods, err = catalog.Resolve(cfg, cmd.Group)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Prefix != "" {
		mods = modules.Qualify(mods, cmd.Prefix)
	}
	return mods, nil
}
