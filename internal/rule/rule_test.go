package rule

import (
	"errors"
	"slices"
	"testing"

	"autocell/internal/core"
	"autocell/internal/grid"
)

func cellAt(t *testing.T, g *grid.Grid, c ...int) *grid.Cell {
	t.Helper()
	cell, ok := g.Cell(core.Coord(c))
	if !ok {
		t.Fatalf("no cell at %v", c)
	}
	return cell
}

func mustGrid(t *testing.T, dims []int, states []int) *grid.Grid {
	t.Helper()
	g, err := grid.FromStates(dims, states)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCountRuleRange(t *testing.T) {
	cases := []struct {
		min, max uint
		err      error
	}{
		{3, 3, nil},
		{0, 1, nil},
		{4, 2, core.ErrInvalidRange},
		{0, 0, core.ErrInvalidRange},
	}
	for _, tc := range cases {
		_, err := NewCountRule(1, nil, tc.min, tc.max, nil)
		if !errors.Is(err, tc.err) {
			t.Fatalf("[%d,%d]: got %v, want %v", tc.min, tc.max, err, tc.err)
		}
	}
}

func TestCountRuleBirth(t *testing.T) {
	g := mustGrid(t, []int{3, 3}, []int{
		1, 1, 0,
		0, 0, 0,
		0, 0, 1,
	})
	birth := MustCountRule(1, []core.State{0}, 3, 3, []core.State{1})
	if !birth.Matches(cellAt(t, g, 1, 1)) {
		t.Fatal("dead center with 3 live neighbours should match")
	}
	if birth.Matches(cellAt(t, g, 0, 0)) {
		t.Fatal("a live cell is not admissible")
	}
	if birth.Matches(cellAt(t, g, 1, 0)) {
		t.Fatal("cell with 2 live neighbours should not match")
	}
}

func TestCountRuleSumsCountedStates(t *testing.T) {
	g := mustGrid(t, []int{3, 3}, []int{
		1, 2, 3,
		0, 0, 0,
		0, 0, 0,
	})
	center := cellAt(t, g, 1, 1)
	r := MustCountRule(9, nil, 2, 2, []core.State{1, 2})
	if r.Count(center) != 2 || !r.Matches(center) {
		t.Fatalf("counted %d", r.Count(center))
	}
	all := MustCountRule(9, nil, 3, 3, nil)
	if all.Count(center) != 3 || !all.Matches(center) {
		t.Fatalf("unfiltered count %d", all.Count(center))
	}
	dup := MustCountRule(9, nil, 1, 1, []core.State{3, 3})
	if !dup.Matches(center) {
		t.Fatal("duplicate counted states must count once")
	}
}

func TestEmptyCurrentStatesMatchAny(t *testing.T) {
	g := mustGrid(t, []int{2}, []int{4, 1})
	r := MustCountRule(0, nil, 1, 1, nil)
	if !r.Matches(cellAt(t, g, 0)) || !r.Matches(cellAt(t, g, 1)) {
		t.Fatal("empty current-state set should admit any state")
	}
}

func TestPositionRuleMatches(t *testing.T) {
	g := mustGrid(t, []int{3, 3}, []int{
		0, 2, 0,
		0, 1, 0,
		0, 3, 0,
	})
	r := NewPositionRule(5, []core.State{1})
	if err := r.Constrain(core.Offset{-1, 0}, 2); err != nil {
		t.Fatal(err)
	}
	if err := r.Constrain(core.Offset{1, 0}, 3, 4); err != nil {
		t.Fatal(err)
	}
	if !r.Matches(cellAt(t, g, 1, 1)) {
		t.Fatal("center should match")
	}

	strict := NewPositionRule(5, nil)
	if err := strict.Constrain(core.Offset{0, 1}, 1); err != nil {
		t.Fatal(err)
	}
	if strict.Matches(cellAt(t, g, 1, 1)) {
		t.Fatal("neighbour state 0 is not admissible")
	}
}

func TestPositionRuleRejectsMissingNeighbor(t *testing.T) {
	g := mustGrid(t, []int{3}, []int{0, 0, 0})
	r := NewPositionRule(1, nil)
	if err := r.Constrain(core.Offset{1}, 0); err != nil {
		t.Fatal(err)
	}
	if r.Matches(cellAt(t, g, 2)) {
		t.Fatal("an offset beyond the boundary must never match")
	}
	if !r.Matches(cellAt(t, g, 1)) {
		t.Fatal("interior cell should match")
	}
}

func TestPositionRuleConstrainValidation(t *testing.T) {
	r := NewPositionRule(1, nil)
	if err := r.Constrain(core.Offset{0, 0}, 1); !errors.Is(err, core.ErrMalformedRule) {
		t.Fatalf("zero offset: %v", err)
	}
	if err := r.Constrain(core.Offset{2, 0}, 1); !errors.Is(err, core.ErrMalformedRule) {
		t.Fatalf("far offset: %v", err)
	}
	if err := r.Constrain(core.Offset{1, 0}, 1); err != nil {
		t.Fatal(err)
	}
	if err := r.Constrain(core.Offset{1}, 1); !errors.Is(err, core.ErrDimensionMismatch) {
		t.Fatalf("rank change: %v", err)
	}
	if err := r.Constrain(core.Offset{1, 0}, 2); err != nil {
		t.Fatal(err)
	}
	var states []core.State
	r.Constraints(func(off core.Offset, s StateSet) { states = s.Sorted() })
	if !slices.Equal(states, []core.State{1, 2}) {
		t.Fatalf("merged states %v", states)
	}
}

func TestSpecRoundTrip(t *testing.T) {
	count := MustCountRule(1, []core.State{0}, 3, 3, []core.State{1})
	pos := NewPositionRule(2, []core.State{1, 0})
	if err := pos.Constrain(core.Offset{0, -1}, 1); err != nil {
		t.Fatal(err)
	}
	if err := pos.Constrain(core.Offset{-1, 0}, 0, 1); err != nil {
		t.Fatal(err)
	}

	for _, r := range []Rule{count, pos} {
		back, err := FromSpec(r.Spec(), 2)
		if err != nil {
			t.Fatal(err)
		}
		if back.Kind() != r.Kind() || back.OutputState() != r.OutputState() {
			t.Fatalf("%v: kind/output changed", r)
		}
		a, b := r.Spec(), back.Spec()
		if !slices.Equal(a.CurrentStates, b.CurrentStates) || !slices.Equal(a.CountStates, b.CountStates) || len(a.Neighbours) != len(b.Neighbours) {
			t.Fatalf("spec changed: %+v vs %+v", a, b)
		}
	}

	unfiltered := MustCountRule(0, nil, 1, 2, nil).Spec()
	if unfiltered.CountStates != nil {
		t.Fatal("unfiltered count rule must omit neighbourStates")
	}
	if unfiltered.CurrentStates == nil {
		t.Fatal("currentStates must always be present")
	}
}

func TestFromSpecErrors(t *testing.T) {
	one := uint(1)
	cases := []struct {
		name string
		spec Spec
		want error
	}{
		{"unknown type", Spec{Type: "diagonal"}, core.ErrMalformedRule},
		{"missing range", Spec{Type: "neighbour"}, core.ErrMalformedRule},
		{"bad range", Spec{Type: "neighbour", CountMin: &one, CountMax: new(uint)}, core.ErrInvalidRange},
		{"rank", Spec{Type: "matrix", Neighbours: []NeighbourSpec{{RelativePosition: []int{1}}}}, core.ErrMalformedRule},
	}
	for _, tc := range cases {
		if _, err := FromSpec(tc.spec, 2); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
	if _, err := FromSpec(Spec{Type: "MATRIX"}, 2); err != nil {
		t.Fatalf("type tags are case-insensitive: %v", err)
	}
}
