package testfixtures

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pgregory.net/rapid"

	"github.com/obspy/obshub/internal/core/config"
	"github.com/obspy/obshub/internal/core/issue"
)

// ThreadBuilder provides a builder pattern for creating test issue threads
type ThreadBuilder struct {
	number   int
	comments []issue.Comment
	start    time.Time
}

// NewThreadBuilder creates a new ThreadBuilder with an empty issue body
func NewThreadBuilder(number int) *ThreadBuilder {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &ThreadBuilder{
		number: number,
		start:  start,
		comments: []issue.Comment{{
			Position:  0,
			Author:    "reporter",
			CreatedAt: start,
		}},
	}
}

// WithBody sets the issue body
func (b *ThreadBuilder) WithBody(body string) *ThreadBuilder {
	b.comments[0].Body = body
	return b
}

// WithComment appends a comment by author
func (b *ThreadBuilder) WithComment(author, body string) *ThreadBuilder {
	pos := len(b.comments)
	b.comments = append(b.comments, issue.Comment{
		Body:      body,
		Position:  pos,
		Author:    author,
		CreatedAt: b.start.Add(time.Duration(pos) * time.Minute),
	})
	return b
}

// WithDirectives appends a comment made of sentinel lines, e.g.
// WithDirectives("alice", "docs=true", "modules+=core")
func (b *ThreadBuilder) WithDirectives(author string, directives ...string) *ThreadBuilder {
	lines := make([]string, len(directives))
	for i, d := range directives {
		lines[i] = "+CI " + d
	}
	return b.WithComment(author, strings.Join(lines, "\n"))
}

// Comments returns the comments in position order
func (b *ThreadBuilder) Comments() []issue.Comment {
	out := make([]issue.Comment, len(b.comments))
	copy(out, b.comments)
	return out
}

// Build creates the thread
func (b *ThreadBuilder) Build() issue.Thread {
	return issue.Thread{Number: b.number, Comments: b.Comments()}
}

// JSON encodes the comments in the dump format read by the file source
func (b *ThreadBuilder) JSON() []byte {
	data, err := json.MarshalIndent(b.comments, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("testfixtures: encode comments: %v", err))
	}
	return data
}

// ConfigBuilder provides a builder pattern for creating test configurations
type ConfigBuilder struct {
	cfg *config.Configuration
}

// NewConfigBuilder creates a new ConfigBuilder starting from the defaults
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{cfg: config.Defaults()}
}

// WithModules sets the modules set
func (b *ConfigBuilder) WithModules(mods ...string) *ConfigBuilder {
	b.cfg.Set(config.KeyModules, config.SetValue(mods...))
	return b
}

// WithPlatforms sets the platforms set
func (b *ConfigBuilder) WithPlatforms(platforms ...string) *ConfigBuilder {
	b.cfg.Set(config.KeyPlatforms, config.SetValue(platforms...))
	return b
}

// WithFlag sets a boolean key
func (b *ConfigBuilder) WithFlag(key string, on bool) *ConfigBuilder {
	b.cfg.Set(key, config.BoolValue(on))
	return b
}

// WithText sets a string key
func (b *ConfigBuilder) WithText(key, text string) *ConfigBuilder {
	b.cfg.Set(key, config.StringValue(text))
	return b
}

// WithValue sets any value, including ones that fail validation
func (b *ConfigBuilder) WithValue(key string, v config.Value) *ConfigBuilder {
	b.cfg.Set(key, v)
	return b
}

// Without removes a key
func (b *ConfigBuilder) Without(key string) *ConfigBuilder {
	b.cfg.Delete(key)
	return b
}

// Build returns a copy of the configuration
func (b *ConfigBuilder) Build() *config.Configuration {
	return b.cfg.Clone()
}

// JSON encodes the configuration the way the file store does
func (b *ConfigBuilder) JSON() []byte {
	data, err := json.MarshalIndent(b.cfg, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("testfixtures: encode configuration: %v", err))
	}
	return append(data, '\n')
}

// Generators for property-based tests

// ModuleName generates names accepted by the modules key
func ModuleName() *rapid.Generator[string] {
	return rapid.StringMatching(`[a-z][a-z0-9_]{0,7}(\.[a-z][a-z0-9_]{0,7}){0,2}`)
}

// Platform generates names accepted by the platforms key
func Platform() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"linux", "macos", "windows", "ubuntu-22.04", "py3.12"})
}

// ValidConfiguration generates configurations that pass validation
func ValidConfiguration() *rapid.Generator[*config.Configuration] {
	return rapid.Custom(func(t *rapid.T) *config.Configuration {
		return NewConfigBuilder().
			WithModules(rapid.SliceOfN(ModuleName(), 0, 6).Draw(t, "modules")...).
			WithPlatforms(rapid.SliceOfN(Platform(), 0, 3).Draw(t, "platforms")...).
			WithFlag(config.KeyAllModules, rapid.Bool().Draw(t, "all_modules")).
			WithFlag(config.KeyDocs, rapid.Bool().Draw(t, "docs")).
			WithFlag(config.KeyNetwork, rapid.Bool().Draw(t, "network")).
			WithText(config.KeyPython, rapid.SampledFrom([]string{"", "3.10", "3.11", "3.12"}).Draw(t, "python")).
			WithText(config.KeyLabel, rapid.String().Draw(t, "label")).
			Build()
	})
}
