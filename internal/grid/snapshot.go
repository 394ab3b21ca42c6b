package grid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"autocell/internal/core"
)

var dimensionsPattern = regexp.MustCompile(`^([0-9]+x)*[0-9]+$`)

// Snapshot is the serializable form of a grid: its sizes and the flat
// row-major state sequence.
type Snapshot struct {
	Dimensions []int
	Cells      []core.State
}

// Snapshot captures the current states.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{Dimensions: g.Dimensions(), Cells: g.States()}
}

// FromSnapshot rebuilds a grid from a snapshot. Histories start over at the
// captured states.
func FromSnapshot(s Snapshot) (*Grid, error) {
	if err := validateDims(s.Dimensions); err != nil {
		return nil, err
	}
	if want := core.Volume(s.Dimensions); len(s.Cells) != want {
		return nil, fmt.Errorf("%w: %d cells for dimensions %s, want %d", core.ErrMalformedGrid, len(s.Cells), FormatDimensions(s.Dimensions), want)
	}
	return build(s.Dimensions, s.Cells)
}

// FormatDimensions renders sizes as "d1xd2x...xdn".
func FormatDimensions(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}

// ParseDimensions parses "d1xd2x...xdn". Every size must be positive.
func ParseDimensions(s string) ([]int, error) {
	if !dimensionsPattern.MatchString(s) {
		return nil, fmt.Errorf("%w: dimensions %q", core.ErrMalformedGrid, s)
	}
	parts := strings.Split(s, "x")
	dims := make([]int, len(parts))
	for i, p := range parts {
		d, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: dimension %q: %v", core.ErrMalformedGrid, p, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%w: dimension %d has size %d", core.ErrMalformedGrid, i, d)
		}
		dims[i] = d
	}
	return dims, nil
}
