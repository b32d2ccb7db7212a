package directive

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/obspy/obshub/internal/core/config"
)

// DefaultSentinel starts every directive, as in "+CI docs=true".
const DefaultSentinel = "+CI"

// Options configure a Parser.
type Options struct {
	// Sentinel introduces a directive, DefaultSentinel when empty
	Sentinel string
	// Strict reports unrecognized keys as issues instead of ignoring them
	Strict bool
	// Legacy enables the +DOCS and +TESTS: magic strings
	Legacy bool
}

// DefaultOptions returns the options used by the CLI unless overridden.
func DefaultOptions() Options {
	return Options{
		Sentinel: DefaultSentinel,
		Legacy:   true,
	}
}

var (
	legacyDocsPattern  = regexp.MustCompile(`\+DOCS\b`)
	legacyTestsPattern = regexp.MustCompile(`\+TESTS:([A-Za-z0-9_.,]*)`)
)

const legacyAllModules = "ALL"

// Parser extracts directives from free text. A Parser is immutable and safe
// for concurrent use.
type Parser struct {
	sentinel string
	strict   bool
	legacy   bool
}

// NewParser creates a Parser with validation
func NewParser(opts Options) (*Parser, error) {
	sentinel := opts.Sentinel
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	if strings.IndexFunc(sentinel, unicode.IsSpace) >= 0 {
		return nil, fmt.Errorf("sentinel cannot contain whitespace: %q", sentinel)
	}
	return &Parser{sentinel: sentinel, strict: opts.Strict, legacy: opts.Legacy}, nil
}

// Sentinel returns the marker the parser looks for
func (p *Parser) Sentinel() string {
	return p.sentinel
}

type markerType int

const (
	markerSentinel markerType = iota
	markerDocs
	markerTests
)

// marker is a match of a directive introducer within one line.
type marker struct {
	typ   markerType
	start int
	// end of the introducer, where the payload begins
	end int
	// payload captured by the legacy +TESTS: pattern
	arg string
}

// Parse scans text and returns the directives in the order they appear,
// along with issues for the candidates it dropped. It never fails.
func (p *Parser) Parse(text string) ([]Directive, []Issue) {
	var (
		directives []Directive
		issues     []Issue
	)

	for n, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		markers := p.findMarkers(line)

		for i, m := range markers {
			segmentEnd := len(line)
			if i+1 < len(markers) {
				segmentEnd = markers[i+1].start
			}
			snippet := strings.TrimSpace(line[m.start:segmentEnd])

			var (
				found []Directive
				issue *Issue
			)
			switch m.typ {
			case markerSentinel:
				found, issue = p.parseSentinel(line[m.end:segmentEnd], n+1, snippet)
			case markerDocs:
				found = []Directive{newDirective(config.KeyDocs, "+DOCS", config.BoolValue(true), KindReplace, n+1)}
			case markerTests:
				found, issue = p.parseLegacyTests(m.arg, n+1, strings.TrimSpace(line[m.start:m.end]))
			}

			directives = append(directives, found...)
			if issue != nil {
				issues = append(issues, *issue)
			}
		}
	}

	return directives, issues
}

func (p *Parser) findMarkers(line string) []marker {
	var markers []marker

	for offset := 0; offset < len(line); {
		i := strings.Index(line[offset:], p.sentinel)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(p.sentinel)
		if atWordStart(line, start) && atWordEnd(line, end) {
			markers = append(markers, marker{typ: markerSentinel, start: start, end: end})
		}
		offset = end
	}

	if p.legacy {
		for _, loc := range legacyDocsPattern.FindAllStringIndex(line, -1) {
			markers = append(markers, marker{typ: markerDocs, start: loc[0], end: loc[1]})
		}
		for _, loc := range legacyTestsPattern.FindAllStringSubmatchIndex(line, -1) {
			markers = append(markers, marker{
				typ:   markerTests,
				start: loc[0],
				end:   loc[1],
				arg:   line[loc[2]:loc[3]],
			})
		}
	}

	slices.SortFunc(markers, func(a, b marker) int {
		return a.start - b.start
	})
	return markers
}

func atWordStart(line string, i int) bool {
	if i == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(line[:i])
	return !unicode.IsLetter(prev) && !unicode.IsDigit(prev)
}

func atWordEnd(line string, i int) bool {
	if i == len(line) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(line[i:])
	return unicode.IsSpace(next)
}

// parseSentinel handles the text that follows a sentinel: key=value or
// key+=value.
func (p *Parser) parseSentinel(payload string, line int, text string) ([]Directive, *Issue) {
	rest := strings.TrimLeftFunc(payload, unicode.IsSpace)

	keyEnd := strings.IndexFunc(rest, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-')
	})
	if keyEnd < 0 {
		keyEnd = len(rest)
	}
	key := rest[:keyEnd]
	rest = strings.TrimLeftFunc(rest[keyEnd:], unicode.IsSpace)

	var kind Kind
	switch {
	case strings.HasPrefix(rest, "+="):
		kind = KindAppend
		rest = rest[2:]
	case strings.HasPrefix(rest, "="):
		kind = KindReplace
		rest = rest[1:]
	}
	if key == "" || kind == "" {
		return nil, &Issue{Line: line, Text: text, Reason: "malformed directive, expected key=value or key+=value"}
	}

	spec, ok := config.Lookup(key)
	if !ok {
		if p.strict {
			return nil, &Issue{Line: line, Text: text, Reason: fmt.Sprintf("unrecognized key %q", key)}
		}
		return nil, nil
	}

	raw := cleanPayload(rest)
	d, issue := buildDirective(spec, raw, kind, line, text)
	if issue != nil {
		return nil, issue
	}
	return []Directive{d}, nil
}

func (p *Parser) parseLegacyTests(arg string, line int, text string) ([]Directive, *Issue) {
	// sentence punctuation after the module list
	arg = strings.TrimRight(arg, ".,")
	if arg == legacyAllModules {
		return []Directive{newDirective(config.KeyAllModules, arg, config.BoolValue(true), KindReplace, line)}, nil
	}

	spec, _ := config.Lookup(config.KeyModules)
	d, issue := buildDirective(spec, arg, KindAppend, line, text)
	if issue != nil {
		return nil, issue
	}
	return []Directive{d}, nil
}

// buildDirective normalizes raw for spec. Candidates that cannot be
// normalized are returned as an issue.
func buildDirective(spec config.KeySpec, raw string, kind Kind, line int, text string) (Directive, *Issue) {
	reject := func(reason string) (Directive, *Issue) {
		return Directive{}, &Issue{Line: line, Text: text, Reason: reason}
	}

	if kind == KindAppend && spec.Kind != config.KindSet {
		return reject(fmt.Sprintf("%q is not a set, append is not allowed", spec.Name))
	}

	switch spec.Kind {
	case config.KindBool:
		b, ok := config.ParseBool(raw)
		if !ok {
			return reject(fmt.Sprintf("%q is not a boolean literal (true/false, yes/no, on/off)", raw))
		}
		return newDirective(spec.Name, raw, config.BoolValue(b), kind, line), nil

	case config.KindSet:
		items := splitItems(raw)
		if len(items) == 0 && kind == KindAppend {
			return reject("nothing to append")
		}
		for _, item := range items {
			if !spec.AcceptsItem(item) {
				return reject(fmt.Sprintf("%q is not a valid %s item", item, spec.Name))
			}
		}
		return newDirective(spec.Name, raw, config.SetValue(items...), kind, line), nil

	default:
		return newDirective(spec.Name, raw, config.StringValue(raw), kind, line), nil
	}
}

func cleanPayload(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")
	return strings.TrimSpace(s)
}

func splitItems(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
