// Package render turns grid states into something a viewer can draw: a
// palette, 2D planes of N-dimensional grids and a scrolling trail for 1D runs.
package render

import (
	"autocell/internal/core"
	"autocell/internal/grid"
)

// PlaneSize returns the width and height of the plane shown for g. Axis 0
// runs down and axis 1 runs across; a 1D grid is a single row.
func PlaneSize(g *grid.Grid) (w, h int) {
	dims := g.Dimensions()
	if len(dims) == 1 {
		return dims[0], 1
	}
	return dims[1], dims[0]
}

// Plane copies the states of one 2D plane of g into dst, reallocating it when
// too small. For grids of rank three or more, depth fixes the coordinates of
// the remaining axes; missing entries are zero and values are clamped.
func Plane(g *grid.Grid, depth []int, dst []core.State) []core.State {
	w, h := PlaneSize(g)
	if cap(dst) < w*h {
		dst = make([]core.State, w*h)
	}
	dst = dst[:w*h]
	if g.Rank() <= 2 {
		copy(dst, g.States())
		return dst
	}
	dims := g.Dimensions()
	coord := make(core.Coord, len(dims))
	for axis := 2; axis < len(dims); axis++ {
		d := 0
		if i := axis - 2; i < len(depth) {
			d = depth[i]
		}
		coord[axis] = min(max(d, 0), dims[axis]-1)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			coord[0], coord[1] = y, x
			c, _ := g.Cell(coord)
			dst[y*w+x] = c.State()
		}
	}
	return dst
}

// Trail keeps the most recent rows of a 1D run so that time reads downwards.
type Trail struct {
	width int
	rows  [][]core.State
	limit int
}

// NewTrail holds up to limit rows of the given width.
func NewTrail(width, limit int) *Trail {
	if limit < 1 {
		limit = 1
	}
	return &Trail{width: width, limit: limit}
}

// Push appends a row, dropping the oldest once the trail is full.
func (t *Trail) Push(states []core.State) {
	row := make([]core.State, t.width)
	copy(row, states)
	if len(t.rows) == t.limit {
		copy(t.rows, t.rows[1:])
		t.rows[len(t.rows)-1] = row
		return
	}
	t.rows = append(t.rows, row)
}

// Pop drops the newest row, mirroring an undo.
func (t *Trail) Pop() {
	if len(t.rows) > 0 {
		t.rows = t.rows[:len(t.rows)-1]
	}
}

// Clear drops every row.
func (t *Trail) Clear() { t.rows = t.rows[:0] }

// Len returns the number of rows held.
func (t *Trail) Len() int { return len(t.rows) }

// Size returns the trail's plane size.
func (t *Trail) Size() (w, h int) { return t.width, t.limit }

// Fill writes the trail into a width x limit plane, oldest row on top. Rows
// not yet recorded are dead.
func (t *Trail) Fill(dst []core.State) []core.State {
	n := t.width * t.limit
	if cap(dst) < n {
		dst = make([]core.State, n)
	}
	dst = dst[:n]
	clear(dst)
	for i, row := range t.rows {
		copy(dst[i*t.width:], row)
	}
	return dst
}
