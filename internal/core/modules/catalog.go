package modules

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/obspy/obshub/internal/core/config"
)

// Well-known group names
const (
	GroupDefault = "default"
	GroupNetwork = "network"
	GroupAll     = "all"
)

// DefaultPrefix qualifies module names as importable packages.
const DefaultPrefix = "obspy."

// Catalog maps group names to module lists.
type Catalog struct {
	groups map[string][]string
}

// NewCatalog creates a Catalog with validation. The "all" group is derived
// from "default" and "network" when it is not given.
func NewCatalog(groups map[string][]string) (*Catalog, error) {
	if len(groups[GroupDefault]) == 0 {
		return nil, fmt.Errorf("module catalog must define a non-empty %q group", GroupDefault)
	}

	spec, _ := config.Lookup(config.KeyModules)
	out := make(map[string][]string, len(groups)+1)
	for name, mods := range groups {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			return nil, fmt.Errorf("module group name cannot be empty")
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("module group %q defined twice", name)
		}
		for _, mod := range mods {
			if !spec.AcceptsItem(mod) {
				return nil, fmt.Errorf("module group %q: invalid module name %q", name, mod)
			}
		}
		out[name] = sortedUnique(mods)
	}

	if _, ok := out[GroupAll]; !ok {
		out[GroupAll] = sortedUnique(append(slices.Clone(out[GroupDefault]), out[GroupNetwork]...))
	}

	return &Catalog{groups: out}, nil
}

// Group returns a copy of the named group
func (c *Catalog) Group(name string) ([]string, error) {
	mods, ok := c.groups[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown module group %q (known: %s)", name, strings.Join(c.Names(), ", "))
	}
	return slices.Clone(mods), nil
}

// Names returns the group names in ascending order
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.groups))
}

// Resolve returns the modules to test for cfg. all_modules selects the
// "all" group. Otherwise the base group is extended with the requested
// modules and, when network is set, the "network" group.
func (c *Catalog) Resolve(cfg *config.Configuration, base string) ([]string, error) {
	if v, ok := cfg.Get(config.KeyAllModules); ok && v.Bool() {
		return c.Group(GroupAll)
	}

	mods, err := c.Group(base)
	if err != nil {
		return nil, err
	}

	if v, ok := cfg.Get(config.KeyModules); ok {
		mods = append(mods, v.Items()...)
	}
	if v, ok := cfg.Get(config.KeyNetwork); ok && v.Bool() {
		mods = append(mods, c.groups[GroupNetwork]...)
	}

	return sortedUnique(mods), nil
}

// Qualify prepends prefix to every module name.
func Qualify(mods []string, prefix string) []string {
	out := make([]string, len(mods))
	for i, mod := range mods {
		out[i] = prefix + mod
	}
	return out
}

func sortedUnique(mods []string) []string {
	out := slices.Clone(mods)
	slices.Sort(out)
	return slices.Compact(out)
}
