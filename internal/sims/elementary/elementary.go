// Package elementary turns a Wolfram code into position rules for a 1D grid.
package elementary

import (
	"strconv"

	"autocell/internal/core"
	"autocell/internal/engine"
	"autocell/internal/rule"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Rule uint8
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Rule: 110}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	return c
}

// Rules returns one position rule per left/center/right pattern. Bit
// (left<<2 | center<<1 | right) of code is the next center state. The end
// cells of a grid lack one neighbour, so no rule matches them and they keep
// their state.
func Rules(code uint8) []rule.Rule {
	rules := make([]rule.Rule, 0, 8)
	for idx := 7; idx >= 0; idx-- {
		left := core.State(idx>>2) & 1
		center := core.State(idx>>1) & 1
		right := core.State(idx) & 1
		bit := core.State(code>>idx) & 1

		r := rule.NewPositionRule(bit, []core.State{center})
		// both offsets are valid 1D neighbours, so Constrain cannot fail
		_ = r.Constrain(core.Offset{-1}, left)
		_ = r.Constrain(core.Offset{1}, right)
		rules = append(rules, r)
	}
	return rules
}

func init() {
	engine.Register("elementary", func(cfg map[string]string) (engine.Preset, error) {
		c := FromMap(cfg)
		return engine.Preset{Name: "elementary", Rank: 1, Rules: Rules(c.Rule)}, nil
	})
}
