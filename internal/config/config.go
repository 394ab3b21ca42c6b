// Package config gathers everything needed to build an engine for a run:
// where the grid and rules come from, how a fresh grid is generated, and the
// pacing of the viewers.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"autocell/internal/core"
	"autocell/internal/engine"
	"autocell/internal/format"
	"autocell/internal/grid"

	"gopkg.in/yaml.v3"
)

// Config describes a run. A grid file takes precedence over generation and a
// rule file takes precedence over the preset.
type Config struct {
	Preset     string            `yaml:"preset"`
	PresetArgs map[string]string `yaml:"preset_args"`
	GridFile   string            `yaml:"grid_file"`
	RuleFile   string            `yaml:"rule_file"`

	Dimensions string `yaml:"dimensions"`
	Generation string `yaml:"generation"`
	StateMax   uint   `yaml:"state_max"`
	Density    int    `yaml:"density"`
	Seed       int64  `yaml:"seed"`

	Steps int `yaml:"steps"`
	TPS   int `yaml:"tps"`
	Scale int `yaml:"scale"`
}

// DefaultConfig returns a random 64x64 Game of Life.
func DefaultConfig() Config {
	return Config{
		Preset:     "life",
		PresetArgs: map[string]string{},
		Dimensions: "64x64",
		Generation: "random",
		StateMax:   1,
		Density:    20,
		Seed:       42,
		Steps:      1,
		TPS:        10,
		Scale:      8,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	if c.PresetArgs == nil {
		c.PresetArgs = map[string]string{}
	}
	fs.StringVar(&c.Preset, "preset", c.Preset, "rule preset ("+strings.Join(engine.PresetNames(), ", ")+")")
	fs.Var(argMap(c.PresetArgs), "set", "preset argument in key=value form (repeatable)")
	fs.StringVar(&c.GridFile, "grid", c.GridFile, "grid file to load instead of generating one")
	fs.StringVar(&c.RuleFile, "rules", c.RuleFile, "rule file to load instead of the preset")
	fs.StringVar(&c.Dimensions, "dims", c.Dimensions, "grid dimensions, e.g. 64x64 or 16x16x16")
	fs.StringVar(&c.Generation, "gen", c.Generation, "initial generation: empty, random or symmetric")
	fs.UintVar(&c.StateMax, "state-max", c.StateMax, "largest state drawn by generation")
	fs.IntVar(&c.Density, "density", c.Density, "percentage of live cells drawn by generation")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for generation")
	fs.IntVar(&c.Steps, "steps", c.Steps, "generations to advance")
	fs.IntVar(&c.TPS, "tps", c.TPS, "viewer steps per second")
	fs.IntVar(&c.Scale, "scale", c.Scale, "viewer pixel scale multiplier")
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Values that fail to parse keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["preset"]; ok && v != "" {
		c.Preset = v
	}
	if v, ok := cfg["grid"]; ok {
		c.GridFile = v
	}
	if v, ok := cfg["rules"]; ok {
		c.RuleFile = v
	}
	if v, ok := cfg["dims"]; ok && v != "" {
		c.Dimensions = v
	}
	if v, ok := cfg["gen"]; ok && v != "" {
		c.Generation = v
	}
	if v, ok := cfg["state_max"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 0); err == nil && parsed > 0 {
			c.StateMax = uint(parsed)
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 100 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Steps = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TPS = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Scale = parsed
		}
	}
	return c
}

// LoadFile reads a YAML run file over the defaults and validates the result.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	if err := c.overlay(path); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

// ApplyFile overlays a YAML run file onto c. Flags explicitly set on fs win
// over values from the file, so fs must be the set c was bound to.
func (c *Config) ApplyFile(path string, fs *flag.FlagSet) error {
	set := map[string]string{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
	if err := c.overlay(path); err != nil {
		return err
	}
	for name, value := range set {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("config: reapply -%s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) overlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	if c.PresetArgs == nil {
		c.PresetArgs = map[string]string{}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}

// Validate reports the first setting that cannot produce an engine.
func (c Config) Validate() error {
	if c.GridFile == "" {
		if _, err := grid.ParseDimensions(c.Dimensions); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if _, err := grid.ParseGeneration(c.Generation); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if c.RuleFile == "" {
		if _, ok := engine.Lookup(c.Preset); !ok {
			return fmt.Errorf("config: unknown preset %q", c.Preset)
		}
	}
	switch {
	case c.StateMax == 0:
		return errors.New("config: state_max must be at least 1")
	case c.Density < 0 || c.Density > 100:
		return fmt.Errorf("config: density %d outside [0,100]", c.Density)
	case c.Steps < 0:
		return fmt.Errorf("config: steps %d is negative", c.Steps)
	case c.TPS <= 0:
		return fmt.Errorf("config: tps %d must be positive", c.TPS)
	case c.Scale <= 0:
		return fmt.Errorf("config: scale %d must be positive", c.Scale)
	}
	return nil
}

// GenerateOptions returns the grid generation settings.
func (c Config) GenerateOptions() (grid.GenerateOptions, error) {
	gen, err := grid.ParseGeneration(c.Generation)
	if err != nil {
		return grid.GenerateOptions{}, err
	}
	return grid.GenerateOptions{Type: gen, StateMax: c.StateMax, Density: c.Density, Seed: c.Seed}, nil
}

// NewEngine builds the grid and the rule list described by c. A preset that
// takes a "rank" argument is given the grid rank unless one is set.
func (c Config) NewEngine() (*engine.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	g, err := c.newGrid()
	if err != nil {
		return nil, err
	}
	if c.RuleFile != "" {
		rules, err := format.LoadRules(c.RuleFile, g.Rank())
		if err != nil {
			return nil, err
		}
		return engine.New(g, rules...)
	}

	factory, _ := engine.Lookup(c.Preset)
	args := map[string]string{"rank": strconv.Itoa(g.Rank())}
	for k, v := range c.PresetArgs {
		args[k] = v
	}
	preset, err := factory(args)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", c.Preset, err)
	}
	if preset.Rank != g.Rank() {
		return nil, fmt.Errorf("%w: preset %s is %d-dimensional, grid is %d-dimensional",
			core.ErrDimensionMismatch, preset.Name, preset.Rank, g.Rank())
	}
	return engine.New(g, preset.Rules...)
}

func (c Config) newGrid() (*grid.Grid, error) {
	if c.GridFile != "" {
		return format.LoadGrid(c.GridFile)
	}
	dims, err := grid.ParseDimensions(c.Dimensions)
	if err != nil {
		return nil, err
	}
	opts, err := c.GenerateOptions()
	if err != nil {
		return nil, err
	}
	return grid.NewGenerated(dims, opts)
}

// argMap is a repeatable key=value flag. A single value may carry several
// comma separated pairs.
type argMap map[string]string

func (m argMap) String() string {
	pairs := make([]string, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (m argMap) Set(value string) error {
	for _, pair := range strings.Split(value, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid argument %q, want key=value", pair)
		}
		m[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return nil
}
