package grid

import (
	"fmt"
	"strings"

	"autocell/internal/core"
)

// Generation selects how initial states are drawn.
type Generation int

const (
	// Empty leaves every cell dead.
	Empty Generation = iota
	// Random draws every cell independently.
	Random
	// Symmetric draws the first half of the leading axis and mirrors it.
	Symmetric
)

func (g Generation) String() string {
	switch g {
	case Empty:
		return "empty"
	case Random:
		return "random"
	case Symmetric:
		return "symmetric"
	}
	return fmt.Sprintf("generation(%d)", int(g))
}

// ParseGeneration accepts the names returned by Generation.String.
func ParseGeneration(s string) (Generation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "empty":
		return Empty, nil
	case "random":
		return Random, nil
	case "symmetric", "symetric":
		return Symmetric, nil
	}
	return Empty, fmt.Errorf("unknown generation %q", s)
}

// GenerateOptions controls random generation. A cell is dead with probability
// (100-Density)%, otherwise it gets a uniform state in [1, StateMax].
type GenerateOptions struct {
	Type     Generation
	StateMax core.State
	Density  int
	Seed     int64
}

// DefaultGenerateOptions returns the standard generation settings.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{Type: Empty, StateMax: 1, Density: 20, Seed: 42}
}

// NewGenerated builds a grid and fills it according to opts.
func NewGenerated(dims []int, opts GenerateOptions) (*Grid, error) {
	g, err := New(dims)
	if err != nil {
		return nil, err
	}
	g.Generate(opts)
	return g, nil
}

// Generate replaces every cell state and discards all history, so the
// generated states become the ones ResetAll returns to.
func (g *Grid) Generate(opts GenerateOptions) {
	rng := core.NewRNG(opts.Seed)
	draw := func() core.State {
		if rng.Percent(opts.Density) {
			return rng.StateIn(opts.StateMax)
		}
		return 0
	}

	switch opts.Type {
	case Random:
		for i := range g.cells {
			g.cells[i].reinit(draw())
		}
	case Symmetric:
		n := g.dims[0]
		block := g.strides[0]
		for i := 0; i < (n+1)/2; i++ {
			mirror := n - 1 - i
			for j := 0; j < block; j++ {
				s := draw()
				g.cells[i*block+j].reinit(s)
				g.cells[mirror*block+j].reinit(s)
			}
		}
	default:
		for i := range g.cells {
			g.cells[i].reinit(0)
		}
	}
}
