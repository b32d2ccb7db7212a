package directive

import (
	"fmt"

	"github.com/obspy/obshub/internal/core/config"
)

// Kind controls how a directive combines with the current value of its key.
type Kind string

const (
	// KindReplace overwrites any prior value
	KindReplace Kind = "replace"
	// KindAppend unions items into a set-valued key
	KindAppend Kind = "append"
)

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Operator returns the operator spelling used in directive text
func (k Kind) Operator() string {
	if k == KindAppend {
		return "+="
	}
	return "="
}

// Directive is one parsed configuration instruction.
type Directive struct {
	key   string
	raw   string
	value config.Value
	kind  Kind
	line  int
}

func newDirective(key, raw string, value config.Value, kind Kind, line int) Directive {
	return Directive{key: key, raw: raw, value: value, kind: kind, line: line}
}

// Key returns the recognized key name in canonical (lower) case
func (d Directive) Key() string {
	return d.key
}

// Raw returns the payload text as written
func (d Directive) Raw() string {
	return d.raw
}

// Value returns the normalized value
func (d Directive) Value() config.Value {
	return d.value
}

// Kind returns the directive kind
func (d Directive) Kind() Kind {
	return d.kind
}

// Line returns the 1-based line the directive was found on
func (d Directive) Line() int {
	return d.line
}

// String returns a string representation of the directive
func (d Directive) String() string {
	return fmt.Sprintf("%s%s%s", d.key, d.kind.Operator(), d.raw)
}

// Issue is a non-fatal problem found while scanning text. The directive it
// describes was dropped.
type Issue struct {
	// Line is 1-based within the scanned text
	Line   int
	Text   string
	Reason string
	// Position and Author identify the comment, set by the merger
	Position int
	Author   string
}

// String returns a string representation of the issue
func (i Issue) String() string {
	where := fmt.Sprintf("line %d", i.Line)
	if i.Position > 0 || i.Author != "" {
		where = fmt.Sprintf("comment #%d %s", i.Position, where)
	}
	return fmt.Sprintf("%s: %s (%q)", where, i.Reason, i.Text)
}
