package grid

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Print writes the states as text: values on a row are separated by spaces
// and each rolled-over dimension adds a line break, so planes of a 3D grid are
// separated by a blank line.
func (g *Grid) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	it := g.Iter()
	first := true
	for it.Next() {
		if !first {
			if r := it.Rolled(); r > 0 {
				bw.WriteString(strings.Repeat("\n", r))
			} else {
				bw.WriteByte(' ')
			}
		}
		first = false
		bw.WriteString(strconv.FormatUint(uint64(it.Cell().State()), 10))
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

// String renders the grid with Print.
func (g *Grid) String() string {
	var sb strings.Builder
	_ = g.Print(&sb)
	return sb.String()
}
