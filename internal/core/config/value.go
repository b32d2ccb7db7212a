package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind is the shape of a configuration value.
type Kind string

const (
	KindString  Kind = "string"
	KindBool    Kind = "bool"
	KindSet     Kind = "set"
	KindInvalid Kind = "invalid"
)

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Value is a tagged configuration value. Only the field matching Kind is
// meaningful. Set items are kept sorted and unique.
type Value struct {
	kind  Kind
	text  string
	flag  bool
	items []string
	// describes the raw shape for KindInvalid values
	invalid string
}

// StringValue creates a scalar string value
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// BoolValue creates a boolean value
func BoolValue(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// SetValue creates a set value from the given items. Duplicates are removed
// and the items are sorted.
func SetValue(items ...string) Value {
	return Value{kind: KindSet, items: normalizeItems(items)}
}

// InvalidValue records a value whose shape matches no Kind.
func InvalidValue(shape string) Value {
	return Value{kind: KindInvalid, invalid: shape}
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the scalar string
func (v Value) Text() string {
	return v.text
}

// Bool returns the boolean
func (v Value) Bool() bool {
	return v.flag
}

// Items returns a copy of the set items in ascending order
func (v Value) Items() []string {
	return slices.Clone(v.items)
}

// Shape describes the value for error messages
func (v Value) Shape() string {
	if v.kind == KindInvalid {
		return v.invalid
	}
	return v.kind.String()
}

// IsEmpty reports whether the value carries nothing. Booleans are never empty.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindString:
		return v.text == ""
	case KindSet:
		return len(v.items) == 0
	case KindBool:
		return false
	default:
		return true
	}
}

// Union returns a set containing the items of both values.
func (v Value) Union(other Value) Value {
	merged := make([]string, 0, len(v.items)+len(other.items))
	merged = append(merged, v.items...)
	merged = append(merged, other.items...)
	return SetValue(merged...)
}

// Equal compares kind and content
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.text == other.text
	case KindBool:
		return v.flag == other.flag
	case KindSet:
		return slices.Equal(v.items, other.items)
	default:
		return v.invalid == other.invalid
	}
}

// String renders the value with the default rendering contract
func (v Value) String() string {
	return Render(v, RenderOptions{})
}

// GoString is used by %#v and by test failure output
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return fmt.Sprintf("StringValue(%q)", v.text)
	case KindBool:
		return fmt.Sprintf("BoolValue(%t)", v.flag)
	case KindSet:
		return fmt.Sprintf("SetValue(%s)", strings.Join(quoteAll(v.items), ", "))
	default:
		return fmt.Sprintf("InvalidValue(%q)", v.invalid)
	}
}

// RenderOptions control how set values are joined for the shell.
type RenderOptions struct {
	// Separator between set items, a single space when empty
	Separator string
	// Prefix prepended to every set item
	Prefix string
}

// Render turns a value into the text printed for shell consumption.
func Render(v Value, opts RenderOptions) string {
	switch v.kind {
	case KindString:
		return v.text
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindSet:
		sep := opts.Separator
		if sep == "" {
			sep = " "
		}
		if opts.Prefix == "" {
			return strings.Join(v.items, sep)
		}
		prefixed := make([]string, len(v.items))
		for i, item := range v.items {
			prefixed[i] = opts.Prefix + item
		}
		return strings.Join(prefixed, sep)
	default:
		return ""
	}
}

func normalizeItems(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func quoteAll(items []string) []string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return quoted
}
