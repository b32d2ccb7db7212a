// Package config loads process settings for the obshub command from defaults,
// an optional YAML settings file and OBSHUB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every settings environment variable
const EnvPrefix = "OBSHUB"

// DefaultConfigPath is where make-config writes and the readers look
const DefaultConfigPath = "obspy_config/conf.json"

// Config holds all process settings.
type Config struct {
	GitHub     GitHubConfig     `mapstructure:"github" validate:"required"`
	Store      StoreConfig      `mapstructure:"config" validate:"required"`
	Directives DirectivesConfig `mapstructure:"directives" validate:"required"`
	Log        LogConfig        `mapstructure:"log" validate:"required"`
}

// GitHubConfig contains the comment source settings.
type GitHubConfig struct {
	// Repository is "owner/name"
	Repository string        `mapstructure:"repository" validate:"required"`
	APIURL     string        `mapstructure:"api_url" validate:"omitempty,url"`
	Token      string        `mapstructure:"token"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// StoreConfig contains configuration file locations.
type StoreConfig struct {
	Path       string `mapstructure:"path" validate:"required"`
	GroupsFile string `mapstructure:"groups_file"`
}

// DirectivesConfig contains directive parser settings.
type DirectivesConfig struct {
	Sentinel string `mapstructure:"sentinel" validate:"required"`
	Strict   bool   `mapstructure:"strict"`
	Legacy   bool   `mapstructure:"legacy"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// LoadOptions controls where settings are read from
type LoadOptions struct {
	// File is an explicit settings file. When empty, .obshub.yaml in
	// SearchPaths is used if present.
	File        string
	SearchPaths []string
	// Overrides are applied last, typically from command line flags
	Overrides map[string]any
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads settings. Precedence, highest first: overrides, environment,
// settings file, defaults.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %w", opts.File, err)
		}
	} else {
		v.SetConfigName(".obshub")
		searchPaths := opts.SearchPaths
		if len(searchPaths) == 0 {
			searchPaths = []string{"."}
		}
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read settings file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind token environment: %w", err)
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if strings.ContainsFunc(cfg.Directives.Sentinel, unicode.IsSpace) {
		return nil, fmt.Errorf("invalid settings: directives.sentinel %q contains whitespace", cfg.Directives.Sentinel)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("github.repository", "obspy/obspy")
	v.SetDefault("github.api_url", "")
	v.SetDefault("github.token", "")
	v.SetDefault("github.timeout", 30*time.Second)
	v.SetDefault("config.path", DefaultConfigPath)
	v.SetDefault("config.groups_file", "")
	v.SetDefault("directives.sentinel", "+CI")
	v.SetDefault("directives.strict", false)
	v.SetDefault("directives.legacy", true)
	v.SetDefault("log.level", "warn")
}
