package format

import (
	"fmt"
	"os"

	"autocell/internal/core"
	"autocell/internal/grid"
	"autocell/internal/rule"
)

// LoadGrid reads a grid file from disk.
func LoadGrid(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	defer f.Close()
	g, err := DecodeGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// SaveGrid writes g to path, replacing any existing file.
func SaveGrid(path string, g *grid.Grid) error {
	return writeFile(path, func(f *os.File) error { return EncodeGrid(f, g) })
}

// LoadRules reads a rule file for a grid of the given rank.
func LoadRules(path string, rank int) ([]rule.Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	defer f.Close()
	rules, err := DecodeRules(f, rank)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// SaveRules writes rules to path in priority order.
func SaveRules(path string, rules []rule.Rule) error {
	return writeFile(path, func(f *os.File) error { return EncodeRules(f, rules) })
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return nil
}
