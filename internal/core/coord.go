package core

import (
	"fmt"
	"strconv"
	"strings"
)

// State is the discrete value held by a cell. Zero is the dead state.
type State = uint

// Coord identifies a cell in an N-dimensional grid. Components are
// non-negative and the length equals the grid dimensionality.
type Coord []int

// Offset is a relative position between two coordinates.
type Offset []int

// Equal reports whether both coordinates have identical components.
func (c Coord) Equal(o Coord) bool { return equalInts(c, o) }

// Compare orders coordinates lexicographically. A shorter coordinate that is
// a prefix of the longer one sorts first.
func (c Coord) Compare(o Coord) int { return compareInts(c, o) }

// Clone returns an independent copy.
func (c Coord) Clone() Coord { return append(Coord(nil), c...) }

// Add applies an offset. The result may fall outside any grid.
func (c Coord) Add(off Offset) (Coord, error) {
	if len(c) != len(off) {
		return nil, fmt.Errorf("%w: coord has %d components, offset %d", ErrDimensionMismatch, len(c), len(off))
	}
	out := make(Coord, len(c))
	for i := range c {
		out[i] = c[i] + off[i]
	}
	return out, nil
}

func (c Coord) String() string { return joinInts(c) }

// Equal reports whether both offsets have identical components.
func (o Offset) Equal(p Offset) bool { return equalInts(o, p) }

// Compare orders offsets lexicographically.
func (o Offset) Compare(p Offset) int { return compareInts(o, p) }

// IsZero reports whether every component is zero.
func (o Offset) IsZero() bool {
	for _, v := range o {
		if v != 0 {
			return false
		}
	}
	return true
}

func (o Offset) String() string { return joinInts(o) }

// RelativePosition returns b - a component-wise.
func RelativePosition(a, b Coord) (Offset, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d components", ErrDimensionMismatch, len(a), len(b))
	}
	out := make(Offset, len(a))
	for i := range a {
		out[i] = b[i] - a[i]
	}
	return out, nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func compareInts(a, b []int) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return "(" + strings.Join(parts, ",") + ")"
}
