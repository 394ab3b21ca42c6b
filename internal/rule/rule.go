// Package rule implements the transition rules of an automaton: a counting
// rule keyed on how many neighbours hold given states, and a position rule
// keyed on the exact states at exact neighbour offsets.
package rule

import (
	"autocell/internal/core"
	"autocell/internal/grid"
)

// Kind tags the closed set of rule variants.
type Kind int

const (
	// KindCount is a CountRule, "neighbour" in rule files.
	KindCount Kind = iota
	// KindPosition is a PositionRule, "matrix" in rule files.
	KindPosition
)

// Type tags used in rule files.
const (
	TypeNeighbour = "neighbour"
	TypeMatrix    = "matrix"
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return TypeNeighbour
	case KindPosition:
		return TypeMatrix
	}
	return "unknown"
}

// Rule decides whether a cell matches and which state it then takes. The
// variants are CountRule and PositionRule; the interface is closed.
type Rule interface {
	Kind() Kind
	// Matches reads only current states, never pending ones.
	Matches(c *grid.Cell) bool
	OutputState() core.State
	// CurrentStates is the set a cell must hold to be considered; empty means any.
	CurrentStates() StateSet
	// Spec returns the rule parameters in the rule-file shape.
	Spec() Spec
	sealed()
}

// Spec is the external rule-file form of a rule. Count fields are set only
// for "neighbour" rules and Neighbours only for "matrix" rules.
type Spec struct {
	Type          string          `json:"type"`
	FinalState    core.State      `json:"finalState"`
	CurrentStates []core.State    `json:"currentStates"`
	CountMin      *uint           `json:"neighbourNumberMin,omitempty"`
	CountMax      *uint           `json:"neighbourNumberMax,omitempty"`
	CountStates   []core.State    `json:"neighbourStates,omitempty"`
	Neighbours    []NeighbourSpec `json:"neighbours,omitempty"`
}

// NeighbourSpec constrains one relative position of a matrix rule.
type NeighbourSpec struct {
	RelativePosition []int        `json:"relativePosition"`
	NeighbourStates  []core.State `json:"neighbourStates"`
}

type base struct {
	output  core.State
	current StateSet
}

func (b base) OutputState() core.State { return b.output }

func (b base) CurrentStates() StateSet { return b.current }

func (b base) admits(c *grid.Cell) bool { return b.current.Admits(c.State()) }

func (b base) spec(kind Kind) Spec {
	return Spec{Type: kind.String(), FinalState: b.output, CurrentStates: b.current.Sorted()}
}
