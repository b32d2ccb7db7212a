package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty directory with no settings variables set
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, name := range []string{
		"GITHUB_TOKEN",
		"OBSHUB_GITHUB_TOKEN",
		"OBSHUB_GITHUB_REPOSITORY",
		"OBSHUB_LOG_LEVEL",
		"OBSHUB_CONFIG_PATH",
		"OBSHUB_DIRECTIVES_STRICT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "obspy/obspy", cfg.GitHub.Repository)
	assert.Equal(t, 30*time.Second, cfg.GitHub.Timeout)
	assert.Empty(t, cfg.GitHub.Token)
	assert.Equal(t, DefaultConfigPath, cfg.Store.Path)
	assert.Equal(t, "+CI", cfg.Directives.Sentinel)
	assert.True(t, cfg.Directives.Legacy)
	assert.False(t, cfg.Directives.Strict)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".obshub.yaml"), []byte(`
github:
  repository: megies/obspy
log:
  level: info
config:
  path: from-file.json
`), 0644))

	t.Setenv("OBSHUB_LOG_LEVEL", "debug")
	t.Setenv("GITHUB_TOKEN", "ghp_secret")

	cfg, err := Load(LoadOptions{
		Overrides: map[string]any{"config.path": "from-flag.json"},
	})
	require.NoError(t, err)

	assert.Equal(t, "megies/obspy", cfg.GitHub.Repository, "file beats default")
	assert.Equal(t, "debug", cfg.Log.Level, "environment beats file")
	assert.Equal(t, "from-flag.json", cfg.Store.Path, "override beats file")
	assert.Equal(t, "ghp_secret", cfg.GitHub.Token)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("directives:\n  sentinel: /ci\n  strict: true\n"), 0644))

	cfg, err := Load(LoadOptions{File: path})
	require.NoError(t, err)
	assert.Equal(t, "/ci", cfg.Directives.Sentinel)
	assert.True(t, cfg.Directives.Strict)

	_, err = Load(LoadOptions{File: filepath.Join(dir, "missing.yml")})
	assert.Error(t, err)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]any
	}{
		{name: "bad_log_level", overrides: map[string]any{"log.level": "loud"}},
		{name: "sentinel_with_space", overrides: map[string]any{"directives.sentinel": "+C I"}},
		{name: "empty_path", overrides: map[string]any{"config.path": ""}},
		{name: "bad_api_url", overrides: map[string]any{"github.api_url": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			_, err := Load(LoadOptions{Overrides: tt.overrides})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid settings")
		})
	}
}
