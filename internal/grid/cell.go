package grid

import (
	"autocell/internal/core"
)

const noNeighbor = -1

// Cell holds a current state, the state it will take on the next commit, and
// the stack of states it has held. Cells are owned by their Grid; neighbour
// links are indices into the grid's cell store.
type Cell struct {
	g       *Grid
	index   int
	state   core.State
	pending core.State
	history []core.State

	// neighbors is indexed by core.OffsetIndex; noNeighbor marks offsets that
	// leave the grid.
	neighbors []int
}

// State returns the current state.
func (c *Cell) State() core.State { return c.state }

// Pending returns the state the cell will take on the next commit.
func (c *Cell) Pending() core.State { return c.pending }

// Coord returns the cell position.
func (c *Cell) Coord() core.Coord { return c.g.CoordOf(c.index) }

// SetState stages s as the next state. It has no visible effect until Commit.
func (c *Cell) SetState(s core.State) { c.pending = s }

// Commit makes the pending state current and records it.
func (c *Cell) Commit() {
	c.state = c.pending
	c.history = append(c.history, c.state)
}

// ForceState stages and commits s at once. It is meant for direct edits that
// bypass the simultaneous update of a simulation step.
func (c *Cell) ForceState(s core.State) {
	c.SetState(s)
	c.Commit()
}

// Undo returns to the previously recorded state. It reports false when the
// cell is already at its earliest state.
func (c *Cell) Undo() bool {
	if len(c.history) <= 1 {
		return false
	}
	c.history = c.history[:len(c.history)-1]
	c.state = c.history[len(c.history)-1]
	c.pending = c.state
	return true
}

// ResetToInitial drops every recorded state but the first and returns to it.
func (c *Cell) ResetToInitial() {
	c.history = c.history[:1]
	c.state = c.history[0]
	c.pending = c.state
}

// HistoryLen is the number of recorded states, including the initial one.
func (c *Cell) HistoryLen() int { return len(c.history) }

// History returns a copy of the recorded states, oldest first.
func (c *Cell) History() []core.State { return append([]core.State(nil), c.history...) }

// CountNeighbors returns how many neighbours are not dead.
func (c *Cell) CountNeighbors() int {
	n := 0
	for _, idx := range c.neighbors {
		if idx != noNeighbor && c.g.cells[idx].state != 0 {
			n++
		}
	}
	return n
}

// CountNeighborsWithState returns how many neighbours currently hold s.
func (c *Cell) CountNeighborsWithState(s core.State) int {
	n := 0
	for _, idx := range c.neighbors {
		if idx != noNeighbor && c.g.cells[idx].state == s {
			n++
		}
	}
	return n
}

// NeighborAt returns the neighbour at a relative offset, or false when the
// offset leaves the grid or is not part of the Moore neighbourhood.
func (c *Cell) NeighborAt(off core.Offset) (*Cell, bool) {
	if len(off) != len(c.g.dims) {
		return nil, false
	}
	i, ok := core.OffsetIndex(off)
	if !ok {
		return nil, false
	}
	idx := c.neighbors[i]
	if idx == noNeighbor {
		return nil, false
	}
	return &c.g.cells[idx], true
}

// NeighborLen is the number of in-bounds neighbours.
func (c *Cell) NeighborLen() int {
	n := 0
	for _, idx := range c.neighbors {
		if idx != noNeighbor {
			n++
		}
	}
	return n
}

// EachNeighbor calls fn for every in-bounds neighbour with its offset, in
// offset order.
func (c *Cell) EachNeighbor(fn func(off core.Offset, n *Cell)) {
	offs := core.NeighborOffsets(len(c.g.dims))
	for i, idx := range c.neighbors {
		if idx == noNeighbor {
			continue
		}
		fn(offs[i], &c.g.cells[idx])
	}
}

// reinit discards history and starts over from s.
func (c *Cell) reinit(s core.State) {
	c.state = s
	c.pending = s
	c.history = append(c.history[:0], s)
}
