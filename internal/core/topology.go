package core

import (
	"fmt"
	"sync"
)

var offsetCache = struct {
	sync.Mutex
	byDims map[int][]Offset
}{byDims: map[int][]Offset{}}

// NeighborOffsets returns every vector in {-1,0,1}^dims except the zero
// vector, 3^dims - 1 offsets in lexicographic order. The list is computed once
// per dimensionality and shared, so callers must not modify it.
func NeighborOffsets(dims int) []Offset {
	if dims <= 0 {
		return nil
	}
	offsetCache.Lock()
	defer offsetCache.Unlock()
	if offs, ok := offsetCache.byDims[dims]; ok {
		return offs
	}
	offs := enumerateOffsets(dims)
	offsetCache.byDims[dims] = offs
	return offs
}

// NeighborCount is the size of a full Moore neighbourhood in dims dimensions.
func NeighborCount(dims int) int {
	if dims <= 0 {
		return 0
	}
	return pow3(dims) - 1
}

func enumerateOffsets(dims int) []Offset {
	total := pow3(dims)
	center := total / 2
	offs := make([]Offset, 0, total-1)
	for code := 0; code < total; code++ {
		if code == center {
			continue
		}
		off := make(Offset, dims)
		rest := code
		for axis := dims - 1; axis >= 0; axis-- {
			off[axis] = rest%3 - 1
			rest /= 3
		}
		offs = append(offs, off)
	}
	return offs
}

// OffsetIndex returns the position of off within NeighborOffsets(len(off)).
// It reports false for the zero vector or a component outside {-1,0,1}.
func OffsetIndex(off Offset) (int, bool) {
	if len(off) == 0 {
		return 0, false
	}
	code := 0
	for _, v := range off {
		if v < -1 || v > 1 {
			return 0, false
		}
		code = code*3 + v + 1
	}
	center := pow3(len(off)) / 2
	switch {
	case code == center:
		return 0, false
	case code > center:
		return code - 1, true
	}
	return code, true
}

// Neighbor pairs an in-bounds neighbour coordinate with the offset that
// produced it.
type Neighbor struct {
	Offset Offset
	Coord  Coord
}

// ResolveNeighbors applies every neighbour offset to c and keeps the results
// that fall inside dims. There is no wraparound: cells on a boundary simply
// get fewer neighbours.
func ResolveNeighbors(c Coord, dims []int) ([]Neighbor, error) {
	if len(c) != len(dims) {
		return nil, fmt.Errorf("%w: coord has %d components, grid %d", ErrDimensionMismatch, len(c), len(dims))
	}
	offs := NeighborOffsets(len(dims))
	out := make([]Neighbor, 0, len(offs))
	for _, off := range offs {
		n := make(Coord, len(c))
		inside := true
		for i := range c {
			n[i] = c[i] + off[i]
			if n[i] < 0 || n[i] >= dims[i] {
				inside = false
				break
			}
		}
		if inside {
			out = append(out, Neighbor{Offset: off, Coord: n})
		}
	}
	return out, nil
}

// InBounds reports whether c addresses a cell of a grid with the given sizes.
func InBounds(c Coord, dims []int) bool {
	if len(c) != len(dims) {
		return false
	}
	for i, v := range c {
		if v < 0 || v >= dims[i] {
			return false
		}
	}
	return true
}

// Volume is the number of cells in a grid with the given sizes.
func Volume(dims []int) int {
	if len(dims) == 0 {
		return 0
	}
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

func pow3(n int) int {
	out := 1
	for i := 0; i < n; i++ {
		out *= 3
	}
	return out
}
