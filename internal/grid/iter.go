package grid

import "autocell/internal/core"

// Iterator walks the cells of a grid in row-major order. Besides the current
// cell it reports how many trailing dimensions rolled over since the previous
// cell, which marks row and plane boundaries.
type Iterator struct {
	g      *Grid
	pos    int
	coord  core.Coord
	rolled int
}

// Iter returns an iterator positioned before the first cell.
func (g *Grid) Iter() *Iterator {
	it := &Iterator{g: g}
	it.Reset()
	return it
}

// Reset rewinds the iterator so the sequence can be walked again.
func (it *Iterator) Reset() {
	it.pos = -1
	it.coord = make(core.Coord, len(it.g.dims))
	it.rolled = 0
}

// Next advances to the next cell and reports whether there is one.
func (it *Iterator) Next() bool {
	if it.pos+1 >= len(it.g.cells) {
		it.pos = len(it.g.cells)
		return false
	}
	it.pos++
	it.rolled = 0
	if it.pos == 0 {
		return true
	}
	for axis := len(it.coord) - 1; axis >= 0; axis-- {
		it.coord[axis]++
		if it.coord[axis] < it.g.dims[axis] {
			break
		}
		it.coord[axis] = 0
		it.rolled++
	}
	return true
}

// Cell returns the current cell.
func (it *Iterator) Cell() *Cell { return &it.g.cells[it.pos] }

// Index returns the row-major position of the current cell.
func (it *Iterator) Index() int { return it.pos }

// Coord returns a copy of the current coordinate.
func (it *Iterator) Coord() core.Coord { return it.coord.Clone() }

// Rolled is the number of trailing dimensions that wrapped back to zero when
// moving to the current cell. It is zero for the first cell.
func (it *Iterator) Rolled() int { return it.rolled }
