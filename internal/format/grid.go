// Package format reads and writes the two JSON file shapes of an automaton:
// the grid file and the rule file. Decoding is strict and never returns a
// partially built grid or rule list.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"autocell/internal/core"
	"autocell/internal/grid"
)

// GridFile is the on-disk grid shape.
type GridFile struct {
	Dimensions string       `json:"dimensions"`
	Cells      []core.State `json:"cells"`
}

type wireGrid struct {
	Dimensions *string            `json:"dimensions"`
	Cells      *[]json.RawMessage `json:"cells"`
}

// DecodeGrid reads a grid file. Any shape or value violation fails with
// core.ErrMalformedGrid.
func DecodeGrid(r io.Reader) (*grid.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	var w wireGrid
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedGrid, err)
	}
	if w.Dimensions == nil {
		return nil, fmt.Errorf("%w: missing \"dimensions\"", core.ErrMalformedGrid)
	}
	if w.Cells == nil {
		return nil, fmt.Errorf("%w: missing \"cells\"", core.ErrMalformedGrid)
	}
	dims, err := grid.ParseDimensions(*w.Dimensions)
	if err != nil {
		return nil, err
	}
	states := make([]int, len(*w.Cells))
	for i, raw := range *w.Cells {
		v, err := strconv.ParseInt(string(bytes.TrimSpace(raw)), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d is %s, not an integer", core.ErrMalformedGrid, i, raw)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: cell %d has negative state %d", core.ErrMalformedGrid, i, v)
		}
		states[i] = int(v)
	}
	return grid.FromStates(dims, states)
}

// EncodeGrid writes g as a grid file.
func EncodeGrid(w io.Writer, g *grid.Grid) error {
	s := g.Snapshot()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(GridFile{Dimensions: grid.FormatDimensions(s.Dimensions), Cells: s.Cells}); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return nil
}
