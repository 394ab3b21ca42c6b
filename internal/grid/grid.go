// Package grid holds the N-dimensional cell store of an automaton: cells,
// their fixed Moore neighbourhoods, and the synchronized commit primitive.
package grid

import (
	"errors"
	"fmt"

	"autocell/internal/core"
)

// MaxCells bounds the number of cells a single grid may hold.
const MaxCells = 1 << 26

// ErrOutOfBounds reports a coordinate outside the grid.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Grid owns every cell of an automaton, stored in row-major order with the
// last axis varying fastest. Neighbour topology is computed once when the
// grid is built.
type Grid struct {
	dims    []int
	strides []int
	cells   []Cell
}

// New builds a grid of dead cells.
func New(dims []int) (*Grid, error) {
	return build(dims, nil)
}

// FromStates builds a grid from a flat row-major state sequence whose length
// must equal the product of dims. Negative values are rejected.
func FromStates(dims []int, states []int) (*Grid, error) {
	if err := validateDims(dims); err != nil {
		return nil, err
	}
	if want := core.Volume(dims); len(states) != want {
		return nil, fmt.Errorf("%w: %d cells for dimensions %s, want %d", core.ErrMalformedGrid, len(states), FormatDimensions(dims), want)
	}
	vals := make([]core.State, len(states))
	for i, s := range states {
		if s < 0 {
			return nil, fmt.Errorf("%w: negative state %d at cell %d", core.ErrMalformedGrid, s, i)
		}
		vals[i] = core.State(s)
	}
	return build(dims, vals)
}

func validateDims(dims []int) error {
	if len(dims) == 0 {
		return fmt.Errorf("%w: no dimensions", core.ErrMalformedGrid)
	}
	total := 1
	for i, d := range dims {
		if d <= 0 {
			return fmt.Errorf("%w: dimension %d has size %d", core.ErrMalformedGrid, i, d)
		}
		if total > MaxCells/d {
			return fmt.Errorf("%w: more than %d cells", core.ErrMalformedGrid, MaxCells)
		}
		total *= d
	}
	return nil
}

func build(dims []int, states []core.State) (*Grid, error) {
	if err := validateDims(dims); err != nil {
		return nil, err
	}
	g := &Grid{dims: append([]int(nil), dims...)}
	g.strides = make([]int, len(dims))
	stride := 1
	for i := len(dims) - 1; i >= 0; i-- {
		g.strides[i] = stride
		stride *= dims[i]
	}

	g.cells = make([]Cell, core.Volume(dims))
	for i := range g.cells {
		c := &g.cells[i]
		c.g = g
		c.index = i
		var s core.State
		if states != nil {
			s = states[i]
		}
		c.reinit(s)
	}
	g.linkNeighbors()
	return g, nil
}

func (g *Grid) linkNeighbors() {
	per := core.NeighborCount(len(g.dims))
	links := make([]int, per*len(g.cells))
	for i := range links {
		links[i] = noNeighbor
	}
	for i := range g.cells {
		c := &g.cells[i]
		c.neighbors = links[i*per : (i+1)*per : (i+1)*per]
		ns, _ := core.ResolveNeighbors(g.CoordOf(i), g.dims)
		for _, n := range ns {
			k, _ := core.OffsetIndex(n.Offset)
			idx, _ := g.Index(n.Coord)
			c.neighbors[k] = idx
		}
	}
}

// Dimensions returns the per-axis sizes.
func (g *Grid) Dimensions() []int { return append([]int(nil), g.dims...) }

// Rank is the number of dimensions.
func (g *Grid) Rank() int { return len(g.dims) }

// Len is the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Index converts a coordinate to its row-major position.
func (g *Grid) Index(c core.Coord) (int, bool) {
	if !core.InBounds(c, g.dims) {
		return 0, false
	}
	idx := 0
	for i, v := range c {
		idx += v * g.strides[i]
	}
	return idx, true
}

// CoordOf converts a row-major position back to a coordinate.
func (g *Grid) CoordOf(idx int) core.Coord {
	c := make(core.Coord, len(g.dims))
	for i, s := range g.strides {
		c[i] = idx / s
		idx %= s
	}
	return c
}

// At returns the cell at a row-major position.
func (g *Grid) At(idx int) *Cell { return &g.cells[idx] }

// Cell returns the cell at c, or false when c is outside the grid.
func (g *Grid) Cell(c core.Coord) (*Cell, bool) {
	idx, ok := g.Index(c)
	if !ok {
		return nil, false
	}
	return &g.cells[idx], true
}

// SetState forces the cell at c to s, recording the change in its history.
func (g *Grid) SetState(c core.Coord, s core.State) error {
	if len(c) != len(g.dims) {
		return fmt.Errorf("%w: coord %v on a %d-dimensional grid", core.ErrDimensionMismatch, c, len(g.dims))
	}
	cell, ok := g.Cell(c)
	if !ok {
		return fmt.Errorf("%w: %v outside %s", ErrOutOfBounds, c, FormatDimensions(g.dims))
	}
	cell.ForceState(s)
	return nil
}

// StepAll commits every pending state. Rule evaluation for a step must be
// finished before this is called: no cell may see another's new state early.
func (g *Grid) StepAll() {
	for i := range g.cells {
		g.cells[i].Commit()
	}
}

// UndoAll steps every cell back once. It is all-or-nothing: if any cell has
// no earlier state nothing changes and it reports false.
func (g *Grid) UndoAll() bool {
	for i := range g.cells {
		if g.cells[i].HistoryLen() <= 1 {
			return false
		}
	}
	for i := range g.cells {
		g.cells[i].Undo()
	}
	return true
}

// ResetAll returns every cell to its initial state.
func (g *Grid) ResetAll() {
	for i := range g.cells {
		g.cells[i].ResetToInitial()
	}
}

// States returns the current states in row-major order.
func (g *Grid) States() []core.State {
	out := make([]core.State, len(g.cells))
	for i := range g.cells {
		out[i] = g.cells[i].state
	}
	return out
}

// Population counts the cells that are not dead.
func (g *Grid) Population() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].state != 0 {
			n++
		}
	}
	return n
}
