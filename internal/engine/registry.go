package engine

import (
	"sort"

	"autocell/internal/rule"
)

// Preset is a named rule set with the grid rank it is written for.
type Preset struct {
	Name  string
	Rank  int
	Rules []rule.Rule
}

// Factory constructs a Preset using an optional configuration map.
type Factory func(cfg map[string]string) (Preset, error)

var presets = map[string]Factory{}

// Register adds a preset factory under the provided name. It is meant to be
// called from package init functions.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	presets[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	f, ok := presets[name]
	return f, ok
}

// PresetNames lists the registered presets alphabetically.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
