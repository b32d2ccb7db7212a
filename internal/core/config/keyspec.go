package config

import (
	"regexp"
	"strings"
)

// KeySpec describes one recognized configuration key.
type KeySpec struct {
	Name        string
	Kind        Kind
	Default     Value
	Description string
	// ItemPattern restricts the items of set-valued keys, nil accepts any item
	ItemPattern *regexp.Regexp
}

// AcceptsItem reports whether item is allowed in this key's set.
func (s KeySpec) AcceptsItem(item string) bool {
	if s.ItemPattern == nil {
		return true
	}
	return s.ItemPattern.MatchString(item)
}

// Recognized key names
const (
	KeyModules    = "modules"
	KeyAllModules = "all_modules"
	KeyDocs       = "docs"
	KeyNetwork    = "network"
	KeyPlatforms  = "platforms"
	KeyPython     = "python"
	KeyLabel      = "label"
)

var (
	modulePattern   = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)*$`)
	platformPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
)

// recognizedKeys is the RecognizedKeySpec table. Table order is the order
// used for validation and listing.
var recognizedKeys = []KeySpec{
	{
		Name:        KeyModules,
		Kind:        KindSet,
		Default:     SetValue(),
		Description: "additional modules to test",
		ItemPattern: modulePattern,
	},
	{
		Name:        KeyAllModules,
		Kind:        KindBool,
		Default:     BoolValue(false),
		Description: "test every module",
	},
	{
		Name:        KeyDocs,
		Kind:        KindBool,
		Default:     BoolValue(false),
		Description: "build the documentation",
	},
	{
		Name:        KeyNetwork,
		Kind:        KindBool,
		Default:     BoolValue(false),
		Description: "include network modules in the test run",
	},
	{
		Name:        KeyPlatforms,
		Kind:        KindSet,
		Default:     SetValue(),
		Description: "CI platforms to run on",
		ItemPattern: platformPattern,
	},
	{
		Name:        KeyPython,
		Kind:        KindString,
		Default:     StringValue(""),
		Description: "python version override",
	},
	{
		Name:        KeyLabel,
		Kind:        KindString,
		Default:     StringValue(""),
		Description: "free-text label for the run",
	},
}

var keyIndex = func() map[string]int {
	idx := make(map[string]int, len(recognizedKeys))
	for i, spec := range recognizedKeys {
		idx[spec.Name] = i
	}
	return idx
}()

// Keys returns the recognized key specs in table order.
func Keys() []KeySpec {
	out := make([]KeySpec, len(recognizedKeys))
	copy(out, recognizedKeys)
	return out
}

// Lookup finds the spec for name, ignoring case.
func Lookup(name string) (KeySpec, bool) {
	i, ok := keyIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return KeySpec{}, false
	}
	return recognizedKeys[i], true
}

// ParseBool maps the accepted boolean literals (true/false, yes/no, on/off),
// ignoring case.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on":
		return true, true
	case "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
