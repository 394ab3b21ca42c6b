package grid

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"autocell/internal/core"
)

func mustStates(t *testing.T, dims []int, states []int) *Grid {
	t.Helper()
	g, err := FromStates(dims, states)
	if err != nil {
		t.Fatalf("FromStates: %v", err)
	}
	return g
}

func TestBoundaryClipping1D(t *testing.T) {
	g := mustStates(t, []int{3}, []int{1, 1, 1})
	last, ok := g.Cell(core.Coord{2})
	if !ok {
		t.Fatal("missing last cell")
	}
	if n := last.NeighborLen(); n != 1 {
		t.Fatalf("last cell has %d neighbours, want 1", n)
	}
	left, ok := last.NeighborAt(core.Offset{-1})
	if !ok || !left.Coord().Equal(core.Coord{1}) {
		t.Fatal("expected the neighbour at [1]")
	}
	if _, ok := last.NeighborAt(core.Offset{1}); ok {
		t.Fatal("last cell must not wrap around to [0]")
	}
}

func TestCountNeighbors3x3(t *testing.T) {
	g := mustStates(t, []int{3, 3}, []int{
		1, 1, 1,
		1, 0, 1,
		1, 1, 1,
	})
	center, _ := g.Cell(core.Coord{1, 1})
	if n := center.CountNeighbors(); n != 8 {
		t.Fatalf("center counts %d live neighbours, want 8", n)
	}
	corner, _ := g.Cell(core.Coord{0, 0})
	if n := corner.CountNeighborsWithState(1); n != 2 {
		t.Fatalf("corner counts %d neighbours in state 1, want 2", n)
	}
	if n := corner.CountNeighborsWithState(0); n != 1 {
		t.Fatalf("corner counts %d dead neighbours, want 1", n)
	}

	full := mustStates(t, []int{3, 3}, []int{1, 1, 1, 1, 1, 1, 1, 1, 1})
	corner, _ = full.Cell(core.Coord{2, 2})
	if n := corner.CountNeighborsWithState(1); n != 3 {
		t.Fatalf("corner of a full grid counts %d, want 3", n)
	}
}

func TestNeighborLinksMatchTopology(t *testing.T) {
	g, err := New([]int{3, 4, 2})
	if err != nil {
		t.Fatal(err)
	}
	it := g.Iter()
	for it.Next() {
		c := it.Cell()
		want, _ := core.ResolveNeighbors(it.Coord(), g.Dimensions())
		if c.NeighborLen() != len(want) {
			t.Fatalf("%v: %d neighbours, want %d", it.Coord(), c.NeighborLen(), len(want))
		}
		c.EachNeighbor(func(off core.Offset, n *Cell) {
			rel, _ := core.RelativePosition(c.Coord(), n.Coord())
			if !rel.Equal(off) {
				t.Fatalf("%v: neighbour %v stored under %v", c.Coord(), n.Coord(), off)
			}
		})
	}
}

func TestPendingStateInvisibleUntilCommit(t *testing.T) {
	g := mustStates(t, []int{2}, []int{0, 1})
	c := g.At(0)
	c.SetState(5)
	if c.State() != 0 || c.Pending() != 5 {
		t.Fatalf("state=%d pending=%d before commit", c.State(), c.Pending())
	}
	if n := g.At(1).CountNeighborsWithState(5); n != 0 {
		t.Fatal("neighbour observed a pending state")
	}
	g.StepAll()
	if c.State() != 5 {
		t.Fatalf("state=%d after commit", c.State())
	}
	if g.At(1).State() != 1 {
		t.Fatal("untouched cell changed on commit")
	}
}

func TestCellUndoAndReset(t *testing.T) {
	g := mustStates(t, []int{1}, []int{3})
	c := g.At(0)
	if c.Undo() {
		t.Fatal("undo at the initial state must fail")
	}
	c.ForceState(4)
	c.ForceState(5)
	if !c.Undo() || c.State() != 4 || c.Pending() != 4 {
		t.Fatalf("after undo state=%d pending=%d", c.State(), c.Pending())
	}
	c.ForceState(9)
	c.ResetToInitial()
	if c.State() != 3 || c.Pending() != 3 || c.HistoryLen() != 1 {
		t.Fatalf("after reset state=%d history=%d", c.State(), c.HistoryLen())
	}
}

func TestUndoAllIsAllOrNothing(t *testing.T) {
	g := mustStates(t, []int{2}, []int{0, 0})
	g.At(0).ForceState(1)
	if g.UndoAll() {
		t.Fatal("UndoAll must fail when one cell has no history")
	}
	if g.At(0).State() != 1 {
		t.Fatal("UndoAll must not partially undo")
	}
	g.At(1).ForceState(2)
	if !g.UndoAll() {
		t.Fatal("UndoAll should succeed once every cell has history")
	}
	if !slices.Equal(g.States(), []core.State{0, 0}) {
		t.Fatalf("states %v after undo", g.States())
	}
}

func TestFromStatesRejectsMalformed(t *testing.T) {
	cases := []struct {
		name   string
		dims   []int
		states []int
	}{
		{"short", []int{2, 2}, []int{0, 0, 0}},
		{"long", []int{2}, []int{0, 0, 0}},
		{"negative", []int{2}, []int{0, -1}},
		{"zero axis", []int{0, 2}, []int{}},
		{"no dims", nil, nil},
	}
	for _, tc := range cases {
		if _, err := FromStates(tc.dims, tc.states); !errors.Is(err, core.ErrMalformedGrid) {
			t.Fatalf("%s: expected ErrMalformedGrid, got %v", tc.name, err)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	opts := DefaultGenerateOptions()
	opts.Type = Random
	opts.StateMax = 4
	opts.Density = 60
	g, err := NewGenerated([]int{4, 3, 2}, opts)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromSnapshot(g.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back.Dimensions(), g.Dimensions()) {
		t.Fatalf("dimensions %v, want %v", back.Dimensions(), g.Dimensions())
	}
	it := g.Iter()
	for it.Next() {
		other, _ := back.Cell(it.Coord())
		if other.State() != it.Cell().State() {
			t.Fatalf("%v: state %d, want %d", it.Coord(), other.State(), it.Cell().State())
		}
	}

	if _, err := FromSnapshot(Snapshot{Dimensions: []int{2, 2}, Cells: []core.State{1}}); !errors.Is(err, core.ErrMalformedGrid) {
		t.Fatalf("expected ErrMalformedGrid, got %v", err)
	}
}

func TestRandomGeneration(t *testing.T) {
	opts := GenerateOptions{Type: Random, StateMax: 3, Density: 50, Seed: 5}
	a, _ := NewGenerated([]int{16, 16}, opts)
	b, _ := NewGenerated([]int{16, 16}, opts)
	if !slices.Equal(a.States(), b.States()) {
		t.Fatal("generation with the same seed must be deterministic")
	}
	live := 0
	for _, s := range a.States() {
		if s > 3 {
			t.Fatalf("state %d above StateMax", s)
		}
		if s != 0 {
			live++
		}
	}
	if live == 0 || live == a.Len() {
		t.Fatalf("density 50 produced %d live cells of %d", live, a.Len())
	}

	opts.Density = 0
	empty, _ := NewGenerated([]int{8}, opts)
	if empty.Population() != 0 {
		t.Fatal("density 0 must produce no live cells")
	}
	for i := 0; i < empty.Len(); i++ {
		if empty.At(i).HistoryLen() != 1 {
			t.Fatal("generation must leave a single history entry")
		}
	}
}

func TestSymmetricGeneration(t *testing.T) {
	for _, rows := range []int{4, 5} {
		opts := GenerateOptions{Type: Symmetric, StateMax: 5, Density: 70, Seed: 11}
		g, err := NewGenerated([]int{rows, 6}, opts)
		if err != nil {
			t.Fatal(err)
		}
		for y := 0; y < rows; y++ {
			for x := 0; x < 6; x++ {
				a, _ := g.Cell(core.Coord{y, x})
				b, _ := g.Cell(core.Coord{rows - 1 - y, x})
				if a.State() != b.State() {
					t.Fatalf("rows=%d: (%d,%d)=%d mirrors to %d", rows, y, x, a.State(), b.State())
				}
			}
		}
	}
}

func TestIteratorRolledDimensions(t *testing.T) {
	g, _ := New([]int{2, 2, 2})
	it := g.Iter()
	var rolled []int
	var coords []core.Coord
	for it.Next() {
		rolled = append(rolled, it.Rolled())
		coords = append(coords, it.Coord())
	}
	want := []int{0, 0, 1, 0, 2, 0, 1, 0}
	if !slices.Equal(rolled, want) {
		t.Fatalf("rolled %v, want %v", rolled, want)
	}
	for i := 1; i < len(coords); i++ {
		if coords[i-1].Compare(coords[i]) >= 0 {
			t.Fatal("iteration is not in row-major order")
		}
	}

	it.Reset()
	n := 0
	for it.Next() {
		n++
	}
	if n != g.Len() {
		t.Fatalf("restarted iterator visited %d cells, want %d", n, g.Len())
	}
}

func TestPrint(t *testing.T) {
	g := mustStates(t, []int{2, 2, 2}, []int{1, 0, 0, 1, 2, 2, 0, 3})
	want := "1 0\n0 1\n\n2 2\n0 3\n"
	if got := g.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSetState(t *testing.T) {
	g, _ := New([]int{3, 3})
	if err := g.SetState(core.Coord{1, 2}, 7); err != nil {
		t.Fatal(err)
	}
	c, _ := g.Cell(core.Coord{1, 2})
	if c.State() != 7 || c.HistoryLen() != 2 {
		t.Fatalf("state=%d history=%d", c.State(), c.HistoryLen())
	}
	if err := g.SetState(core.Coord{3, 0}, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := g.SetState(core.Coord{0}, 1); !errors.Is(err, core.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestParseDimensions(t *testing.T) {
	dims, err := ParseDimensions("10x20x3")
	if err != nil || !slices.Equal(dims, []int{10, 20, 3}) {
		t.Fatalf("got %v, %v", dims, err)
	}
	for _, bad := range []string{"", "x3", "3x", "3xx4", "a", "3x0", "-3"} {
		if _, err := ParseDimensions(bad); !errors.Is(err, core.ErrMalformedGrid) {
			t.Fatalf("%q: expected ErrMalformedGrid, got %v", bad, err)
		}
	}
	if s := FormatDimensions([]int{4, 5}); !strings.EqualFold(s, "4x5") {
		t.Fatalf("format %q", s)
	}
}
