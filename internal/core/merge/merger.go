package merge

import (
	"github.com/obspy/obshub/internal/core/config"
	"github.com/obspy/obshub/internal/core/directive"
	"github.com/obspy/obshub/internal/core/issue"
)

// Parser extracts directives from one comment body
type Parser interface {
	Parse(text string) ([]directive.Directive, []directive.Issue)
}

// Result is the outcome of folding a comment sequence.
type Result struct {
	Config *config.Configuration
	// Applied counts the directives folded into Config
	Applied int
	Issues  []directive.Issue
}

// Merger folds the directives of an ordered comment sequence into one
// configuration.
type Merger struct {
	parser Parser
}

// NewMerger creates a new merger
func NewMerger(parser Parser) *Merger {
	return &Merger{parser: parser}
}

// Merge starts from the defaults and applies every directive in comment
// order, then in parse order within each comment. Later directives win for
// REPLACE; APPEND unions into the current set.
func (m *Merger) Merge(comments []issue.Comment) Result {
	result := Result{Config: config.Defaults()}

	for _, c := range comments {
		directives, issues := m.parser.Parse(c.Body)
		for _, d := range directives {
			Apply(result.Config, d)
			result.Applied++
		}
		for _, is := range issues {
			is.Position = c.Position
			is.Author = c.Author
			result.Issues = append(result.Issues, is)
		}
	}

	return result
}

// Apply folds a single directive into cfg.
func Apply(cfg *config.Configuration, d directive.Directive) {
	if d.Kind() == directive.KindAppend {
		current, ok := cfg.Get(d.Key())
		if ok && current.Kind() == config.KindSet {
			cfg.Set(d.Key(), current.Union(d.Value()))
			return
		}
	}
	cfg.Set(d.Key(), d.Value())
}
