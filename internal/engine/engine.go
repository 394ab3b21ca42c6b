// Package engine runs an automaton: it evaluates an ordered rule list against
// every cell of a grid and then commits all new states at once.
package engine

import (
	"errors"
	"fmt"

	"autocell/internal/core"
	"autocell/internal/grid"
	"autocell/internal/rule"
)

var (
	// ErrDuplicateRule reports a rule that is already in the list.
	ErrDuplicateRule = errors.New("rule already present")
	// ErrUnknownRule reports a rule that is not in the list.
	ErrUnknownRule = errors.New("rule not present")
	// ErrPriority reports a priority rank outside the list.
	ErrPriority = errors.New("priority out of range")
)

// Engine holds a grid and its rules. Rule order is priority: index 0 is
// evaluated first and the first matching rule decides a cell's next state.
//
// An Engine is not safe for concurrent use. Edits to the grid or the rules
// must not overlap a Step.
type Engine struct {
	grid       *grid.Grid
	rules      []rule.Rule
	generation int
}

// New builds an engine over g with the given rules in priority order.
func New(g *grid.Grid, rules ...rule.Rule) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil grid", core.ErrMalformedGrid)
	}
	e := &Engine{grid: g}
	for _, r := range rules {
		if err := e.Append(r); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Grid returns the grid being simulated.
func (e *Engine) Grid() *grid.Grid { return e.grid }

// Rules returns a copy of the rule list in priority order.
func (e *Engine) Rules() []rule.Rule { return append([]rule.Rule(nil), e.rules...) }

// Generation counts committed steps since the initial state.
func (e *Engine) Generation() int { return e.generation }

// Step runs n simulation steps. Each step evaluates every cell against the
// rules and only then commits, so no cell observes another cell's new state
// during evaluation.
func (e *Engine) Step(n int) {
	for i := 0; i < n; i++ {
		e.evaluate()
		e.grid.StepAll()
		e.generation++
	}
}

func (e *Engine) evaluate() {
	it := e.grid.Iter()
	for it.Next() {
		c := it.Cell()
		if r := e.match(c); r != nil {
			c.SetState(r.OutputState())
		}
	}
}

// match returns the highest priority rule matching c, or nil.
func (e *Engine) match(c *grid.Cell) rule.Rule {
	for _, r := range e.rules {
		if r.Matches(c) {
			return r
		}
	}
	return nil
}

// Match returns the rule that would decide the next state of the cell at c,
// its index in the list, or -1 when no rule matches.
func (e *Engine) Match(c core.Coord) (rule.Rule, int, error) {
	cell, ok := e.grid.Cell(c)
	if !ok {
		return nil, -1, fmt.Errorf("%w: %v", grid.ErrOutOfBounds, c)
	}
	for i, r := range e.rules {
		if r.Matches(cell) {
			return r, i, nil
		}
	}
	return nil, -1, nil
}

// Undo steps the whole grid back once. Nothing changes if any cell is
// already at its earliest state.
func (e *Engine) Undo() error {
	if !e.grid.UndoAll() {
		return core.ErrNoHistory
	}
	if e.generation > 0 {
		e.generation--
	}
	return nil
}

// Reset returns every cell to its initial state.
func (e *Engine) Reset() {
	e.grid.ResetAll()
	e.generation = 0
}

// IndexOf returns the priority rank of r, or -1.
func (e *Engine) IndexOf(r rule.Rule) int {
	for i, have := range e.rules {
		if have == r {
			return i
		}
	}
	return -1
}

// Append adds r with the lowest priority.
func (e *Engine) Append(r rule.Rule) error {
	return e.Insert(r, len(e.rules))
}

// Insert places r at priority rank at, shifting lower priority rules down.
func (e *Engine) Insert(r rule.Rule, at int) error {
	if r == nil {
		return fmt.Errorf("%w: nil rule", core.ErrMalformedRule)
	}
	if e.IndexOf(r) >= 0 {
		return ErrDuplicateRule
	}
	if at < 0 || at > len(e.rules) {
		return fmt.Errorf("%w: %d not in [0,%d]", ErrPriority, at, len(e.rules))
	}
	if err := e.checkRank(r); err != nil {
		return err
	}
	e.rules = append(e.rules, nil)
	copy(e.rules[at+1:], e.rules[at:])
	e.rules[at] = r
	return nil
}

// MoveToPriority moves r to rank to. Other rules keep their relative order.
func (e *Engine) MoveToPriority(r rule.Rule, to int) error {
	from := e.IndexOf(r)
	if from < 0 {
		return ErrUnknownRule
	}
	if to < 0 || to >= len(e.rules) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrPriority, to, len(e.rules))
	}
	switch {
	case from < to:
		copy(e.rules[from:to], e.rules[from+1:to+1])
	case from > to:
		copy(e.rules[to+1:from+1], e.rules[to:from])
	}
	e.rules[to] = r
	return nil
}

// Remove deletes r from the list.
func (e *Engine) Remove(r rule.Rule) error {
	i := e.IndexOf(r)
	if i < 0 {
		return ErrUnknownRule
	}
	e.rules = append(e.rules[:i], e.rules[i+1:]...)
	return nil
}

// SetRules replaces the whole rule list.
func (e *Engine) SetRules(rules []rule.Rule) error {
	prev := e.rules
	e.rules = nil
	for _, r := range rules {
		if err := e.Append(r); err != nil {
			e.rules = prev
			return err
		}
	}
	return nil
}

func (e *Engine) checkRank(r rule.Rule) error {
	pr, ok := r.(*rule.PositionRule)
	if !ok || pr.Rank() == 0 {
		return nil
	}
	if pr.Rank() != e.grid.Rank() {
		return fmt.Errorf("%w: %d-dimensional rule on a %d-dimensional grid", core.ErrDimensionMismatch, pr.Rank(), e.grid.Rank())
	}
	return nil
}

// Parameters describes the engine for status displays.
func (e *Engine) Parameters() core.ParameterSnapshot {
	counts := map[rule.Kind]int{}
	for _, r := range e.rules {
		counts[r.Kind()]++
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.StringParam("dimensions", "Dimensions", grid.FormatDimensions(e.grid.Dimensions())),
				core.IntParam("cells", "Cells", e.grid.Len()),
				core.IntParam("population", "Population", e.grid.Population()),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				core.IntParam("rules", "Rules", len(e.rules)),
				core.IntParam("rules_neighbour", "Neighbour rules", counts[rule.KindCount]),
				core.IntParam("rules_matrix", "Matrix rules", counts[rule.KindPosition]),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.IntParam("generation", "Generation", e.generation),
			},
		},
	}}
}
