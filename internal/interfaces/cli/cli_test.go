package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obspy/obshub/internal/application/services"
	settings "github.com/obspy/obshub/internal/config"
	"github.com/obspy/obshub/internal/core/config"
	"github.com/obspy/obshub/internal/core/directive"
	"github.com/obspy/obshub/internal/core/status"
	"github.com/obspy/obshub/internal/core/testfixtures"
	"github.com/obspy/obshub/internal/infrastructure/catalog"
	"github.com/obspy/obshub/internal/infrastructure/commentfile"
	"github.com/obspy/obshub/internal/infrastructure/storage"
)

// testEnv runs commands against a temporary directory. Comments always come
// from a JSON dump so no network is involved.
type testEnv struct {
	dir  string
	path string
	dump string
	// api is the GitHub API base URL of repository commands
	api string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		dir:  dir,
		path: filepath.Join(dir, "obspy_config", "conf.json"),
		dump: filepath.Join(dir, "comments.json"),
	}
}

func (e *testEnv) writeComments(t *testing.T, thread *testfixtures.ThreadBuilder) {
	t.Helper()
	require.NoError(t, os.WriteFile(e.dump, thread.JSON(), 0644))
}

func (e *testEnv) writeConfig(t *testing.T, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(e.path), 0755))
	require.NoError(t, os.WriteFile(e.path, content, 0644))
}

func (e *testEnv) container() *CLIContainer {
	return &CLIContainer{
		Build: func(opts BuildOptions) (*Runtime, error) {
			if opts.LogLevel == "bogus" {
				return nil, errors.New("invalid settings")
			}
			cfg := &settings.Config{
				GitHub: settings.GitHubConfig{Repository: "obspy/obspy", Timeout: time.Second},
				Store:  settings.StoreConfig{Path: e.path},
				Directives: settings.DirectivesConfig{
					Sentinel: directive.DefaultSentinel,
					Legacy:   true,
				},
				Log: settings.LogConfig{Level: "warn"},
			}
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			service := services.NewConfigService(
				commentfile.NewCommentSource(e.dump),
				storage.NewJSONStore(),
				catalog.NewYAMLLoader(),
				directive.DefaultOptions(),
				logger,
			)
			return &Runtime{Settings: cfg, Service: service, Logger: logger}, nil
		},
	}
}

// run executes the root command and returns stdout and the error
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(e.container())
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestMakeConfigCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeComments(t, testfixtures.NewThreadBuilder(42).
		WithBody("Adds SAC support.\n\n+TESTS:io.sac").
		WithDirectives("alice", "modules+=signal", "docs=yes").
		WithDirectives("bob", "docs=perhaps"))

	out, err := env.run(t, "make-config", "42", "--comments-file", env.dump)
	require.NoError(t, err)
	assert.Contains(t, out, env.path)
	assert.Contains(t, out, "issue #42")
	assert.Contains(t, out, "3 comments")
	assert.Contains(t, out, "3 directives")
	assert.Contains(t, out, "docs=perhaps")

	data, err := os.ReadFile(env.path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"docs": true`)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
}

func TestMakeConfigCommand_Errors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "make-config", "forty-two")
	assert.Error(t, err)

	_, err = env.run(t, "make-config")
	assert.Error(t, err)

	_, err = env.run(t, "make-config", "3", "--log-level", "bogus")
	assert.ErrorContains(t, err, "failed to initialize")

	_, err = env.run(t, "make-config", "3")
	assert.ErrorContains(t, err, "failed to read comments file")
	_, statErr := os.Stat(env.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadValueCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testfixtures.NewConfigBuilder().
		WithModules("signal", "core").
		WithFlag(config.KeyNetwork, true).
		WithText(config.KeyPython, "3.12").
		JSON())

	tests := []struct {
		name     string
		args     []string
		want     string
		wantCode int
	}{
		{name: "string", args: []string{"python"}, want: "3.12\n"},
		{name: "set", args: []string{"modules"}, want: "core signal\n"},
		{name: "set_with_options", args: []string{"modules", "--sep", ",", "--prefix", "obspy."}, want: "obspy.core,obspy.signal\n"},
		{name: "bool_false", args: []string{"docs"}, want: "false\n"},
		{name: "case_insensitive", args: []string{"NETWORK"}, want: "true\n"},
		{name: "empty_string", args: []string{"label"}, wantCode: ExitEmpty},
		{name: "empty_set", args: []string{"platforms"}, wantCode: ExitEmpty},
		{name: "unknown_key", args: []string{"bogus"}, wantCode: ExitNotFound},
		{name: "empty_key", args: []string{""}, wantCode: ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.run(t, append([]string{"read-config-value"}, tt.args...)...)
			assert.Equal(t, tt.wantCode, ExitCode(err), "err: %v", err)
			if tt.wantCode == ExitOK {
				assert.Equal(t, tt.want, out)
			}
		})
	}
}

func TestReadValueCommand_InvalidFile(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, []byte(`{"docs": "yes"}`))

	_, err := env.run(t, "read-config-value", "docs")
	assert.Equal(t, ExitValidation, ExitCode(err))

	_, err = env.run(t, "validate-config")
	assert.Equal(t, ExitValidation, ExitCode(err))
}

func TestMakeThenReadRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.writeComments(t, testfixtures.NewThreadBuilder(7).
		WithBody("+CI platforms+=linux\n+CI label=nightly build").
		WithDirectives("carol", "platforms+=macos"))

	_, err := env.run(t, "make-config", "7", "--comments-file", env.dump)
	require.NoError(t, err)

	out, err := env.run(t, "read-config-value", "platforms", "--sep", ",")
	require.NoError(t, err)
	assert.Equal(t, "linux,macos\n", out)

	out, err = env.run(t, "read-config-value", "label")
	require.NoError(t, err)
	assert.Equal(t, "nightly build\n", out)

	out, err = env.run(t, "validate-config")
	require.NoError(t, err)
	assert.Contains(t, out, env.path)
}

func TestModuleListCommand(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testfixtures.NewConfigBuilder().WithModules("clients.fdsn").JSON())

	out, err := env.run(t, "get-module-list", "--group", "network", "--sep", ",")
	require.NoError(t, err)
	assert.Equal(t, "clients.earthworm,clients.fdsn,clients.iris,clients.neic,clients.nrl,clients.seedlink,clients.syngine\n", out)

	out, err = env.run(t, "get-module-list")
	require.NoError(t, err)
	assert.NotContains(t, out, "clients.fdsn")
	assert.Contains(t, out, "core")

	out, err = env.run(t, "get-module-list", "--resolve", "--prefix", "obspy.")
	require.NoError(t, err)
	assert.Contains(t, out, "obspy.clients.fdsn")
	assert.Contains(t, out, "obspy.core")

	_, err = env.run(t, "get-module-list", "--group", "nope")
	assert.ErrorContains(t, err, "unknown module group")
}

func TestShowConfigAndKeysCommands(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, testfixtures.NewConfigBuilder().
		WithFlag(config.KeyAllModules, true).
		WithModules("core", "io.sac").
		WithText(config.KeyPython, "3.11").
		JSON())

	out, err := env.run(t, "show-config")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "core, io.sac")
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "3.11")

	out, err = env.run(t, "keys")
	require.NoError(t, err)
	for _, spec := range config.Keys() {
		assert.Contains(t, out, spec.Name)
		assert.Contains(t, out, spec.Description)
	}
}

func TestSettingsCommand_MasksToken(t *testing.T) {
	assert.Equal(t, "(not set)", maskToken(""))
	assert.Equal(t, "***", maskToken("short"))
	assert.Equal(t, "ghp_****wxyz", maskToken("ghp_abcdefghijklmnopqrstuvwxyz"))

	env := newTestEnv(t)
	out, err := env.run(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "obspy/obspy")
	assert.Contains(t, out, "directives.sentinel")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "validation", err: fmt.Errorf("wrapped: %w", &config.ValidationError{Key: "docs", Reason: "x"}), want: ExitValidation},
		{name: "not_found", err: fmt.Errorf("x: %w", config.ErrKeyNotFound), want: ExitNotFound},
		{name: "empty", err: config.ErrKeyEmpty, want: ExitEmpty},
		{name: "no_commit_status", err: fmt.Errorf("x: %w", status.ErrNoStatus), want: ExitNotFound},
		{name: "other", err: errors.New("disk full"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

// serveGitHub points the environment at a fake GitHub API
func (e *testEnv) serveGitHub(t *testing.T, mux *http.ServeMux) {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	e.api = server.URL
}

func serveThread(mux *http.ServeMux, number int, body string, comments ...string) {
	mux.HandleFunc(fmt.Sprintf("GET /repos/obspy/obspy/issues/%d", number), func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"number":%d,"body":%q}`, number, body)
	})
	mux.HandleFunc(fmt.Sprintf("GET /repos/obspy/obspy/issues/%d/comments", number), func(w http.ResponseWriter, r *http.Request) {
		items := make([]string, len(comments))
		for i, c := range comments {
			items[i] = fmt.Sprintf(`{"body":%q}`, c)
		}
		fmt.Fprint(w, "["+strings.Join(items, ",")+"]")
	})
}

func TestDocsBuildRequestsCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/obspy/obspy/pulls", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "open", r.URL.Query().Get("state"))
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		fmt.Fprint(w, `[
			{"number":31,"head":{"sha":"c31"}},
			{"number":28,"head":{"sha":"c28"}},
			{"number":12,"head":{"sha":"c12"}}
		]`)
	})
	serveThread(mux, 31, "Typo fix", "+CI docs=true")
	serveThread(mux, 28, "Refactor +DOCS", "+CI docs=off")
	serveThread(mux, 12, "New reader\n\n+DOCS")

	env := newTestEnv(t)
	env.serveGitHub(t, mux)

	out, err := env.run(t, "docs-build-requests", "--sep", ",")
	require.NoError(t, err)
	assert.Equal(t, "31,12\n", out)

	out, err = env.run(t, "docs-build-requests", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, "31\n", out)
}

func TestCommitStatusCommands(t *testing.T) {
	var posted []string

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/obspy/obspy/commits/abc123/statuses", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"context":"docs","state":"success","updated_at":"2024-03-01T09:00:00Z"},
			{"context":"docker-testbot","state":"pending","updated_at":"2024-03-01T08:00:00Z"}
		]`)
	})
	mux.HandleFunc("POST /repos/obspy/obspy/statuses/abc123", func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		posted = append(posted, string(data))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{}`)
	})

	env := newTestEnv(t)
	env.serveGitHub(t, mux)

	out, err := env.run(t, "commit-status", "abc123", "--context", "docs")
	require.NoError(t, err)
	assert.Equal(t, "success\n", out)

	out, err = env.run(t, "commit-status", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "pending\n", out)

	_, err = env.run(t, "commit-status", "abc123", "--context", "coverage")
	assert.Equal(t, ExitNotFound, ExitCode(err))

	out, err = env.run(t, "set-commit-status", "abc123", "pending", "--context", "docker-testbot", "--only-when-no-status")
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped")
	assert.Empty(t, posted)

	out, err = env.run(t, "set-commit-status", "abc123", "failure", "--context", "docker-testbot",
		"--only-when-changed", "--description", "3 tests failed")
	require.NoError(t, err)
	assert.Contains(t, out, "Set docker-testbot to failure")
	require.Len(t, posted, 1)
	assert.Contains(t, posted[0], `"state":"failure"`)
	assert.Contains(t, posted[0], `"description":"3 tests failed"`)

	_, err = env.run(t, "set-commit-status", "abc123", "done", "--context", "docs")
	assert.Error(t, err)
	assert.Len(t, posted, 1)

	_, err = env.run(t, "set-commit-status", "abc123", "success")
	assert.ErrorContains(t, err, "context")
}
