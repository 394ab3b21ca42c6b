// Package life expresses Conway's Game of Life, and other B/S totalistic
// variants, as counting rules.
package life

import (
	"fmt"
	"strconv"
	"strings"

	"autocell/internal/core"
	"autocell/internal/engine"
	"autocell/internal/rule"
)

// Config holds the birth/survival notation and grid rank of a Life-like rule.
type Config struct {
	Rule string
	Rank int
}

// DefaultConfig returns Conway's B3/S23 on a 2D grid.
func DefaultConfig() Config {
	return Config{Rule: "B3/S23", Rank: 2}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["rank"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Rank = parsed
		}
	}
	return c
}

// Rules builds the rule list for a B/S notation such as "B36/S23". Births
// come first, then survivals, then a catch-all death for live cells. B0 and
// S0 cannot be expressed since a count range may not end at zero.
func Rules(notation string, rank int) ([]rule.Rule, error) {
	birth, survive, err := parseNotation(notation)
	if err != nil {
		return nil, err
	}
	max := uint(core.NeighborCount(rank))
	alive := []core.State{1}
	var rules []rule.Rule
	for _, n := range birth {
		if n == 0 || n > max {
			return nil, fmt.Errorf("%w: birth count %d outside [1,%d]", core.ErrInvalidRange, n, max)
		}
		r, err := rule.NewCountRule(1, []core.State{0}, n, n, alive)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	for _, n := range survive {
		if n == 0 || n > max {
			return nil, fmt.Errorf("%w: survival count %d outside [1,%d]", core.ErrInvalidRange, n, max)
		}
		r, err := rule.NewCountRule(1, alive, n, n, alive)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	death, err := rule.NewCountRule(0, alive, 0, max, nil)
	if err != nil {
		return nil, err
	}
	return append(rules, death), nil
}

func parseNotation(s string) (birth, survive []uint, err error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "B") || !strings.HasPrefix(parts[1], "S") {
		return nil, nil, fmt.Errorf("%w: life notation %q, want B<digits>/S<digits>", core.ErrMalformedRule, s)
	}
	digits := func(p string) ([]uint, error) {
		var out []uint
		for _, r := range p[1:] {
			if r < '0' || r > '9' {
				return nil, fmt.Errorf("%w: life notation %q", core.ErrMalformedRule, s)
			}
			out = append(out, uint(r-'0'))
		}
		return out, nil
	}
	if birth, err = digits(parts[0]); err != nil {
		return nil, nil, err
	}
	if survive, err = digits(parts[1]); err != nil {
		return nil, nil, err
	}
	return birth, survive, nil
}

func init() {
	engine.Register("life", func(cfg map[string]string) (engine.Preset, error) {
		c := FromMap(cfg)
		rules, err := Rules(c.Rule, c.Rank)
		if err != nil {
			return engine.Preset{}, err
		}
		return engine.Preset{Name: "life", Rank: c.Rank, Rules: rules}, nil
	})
	engine.Register("highlife", func(cfg map[string]string) (engine.Preset, error) {
		c := FromMap(cfg)
		rules, err := Rules("B36/S23", c.Rank)
		if err != nil {
			return engine.Preset{}, err
		}
		return engine.Preset{Name: "highlife", Rank: c.Rank, Rules: rules}, nil
	})
}
