package rule

import (
	"fmt"
	"slices"

	"autocell/internal/core"
	"autocell/internal/grid"
)

type constraint struct {
	offset core.Offset
	states StateSet
}

// PositionRule matches a cell when every constrained neighbour offset exists
// and holds one of its admissible states. Offsets without a constraint are
// not inspected.
type PositionRule struct {
	base
	rank        int
	constraints []constraint
}

// NewPositionRule builds a position rule with no constraints yet.
func NewPositionRule(output core.State, current []core.State) *PositionRule {
	return &PositionRule{base: base{output: output, current: NewStateSet(current...)}}
}

// Constrain adds admissible states for the neighbour at off. Repeated calls for
// the same offset extend its set. The offset must be a non-zero vector in
// {-1,0,1}^D and every offset of a rule must share the same D.
func (r *PositionRule) Constrain(off core.Offset, states ...core.State) error {
	if r.rank != 0 && len(off) != r.rank {
		return fmt.Errorf("%w: offset %v on a %d-dimensional rule", core.ErrDimensionMismatch, off, r.rank)
	}
	if _, ok := core.OffsetIndex(off); !ok {
		return fmt.Errorf("%w: %v is not a neighbour offset", core.ErrMalformedRule, off)
	}
	r.rank = len(off)
	i, found := slices.BinarySearchFunc(r.constraints, off, func(c constraint, o core.Offset) int {
		return c.offset.Compare(o)
	})
	if found {
		r.constraints[i].states = r.constraints[i].states.merge(states...)
		return nil
	}
	c := constraint{offset: append(core.Offset(nil), off...), states: NewStateSet(states...)}
	r.constraints = slices.Insert(r.constraints, i, c)
	return nil
}

// Kind reports KindPosition.
func (r *PositionRule) Kind() Kind { return KindPosition }

// Rank is the dimensionality of the constrained offsets, or 0 when the rule
// has no constraint.
func (r *PositionRule) Rank() int { return r.rank }

// Constraints calls fn for each constrained offset in lexicographic order.
func (r *PositionRule) Constraints(fn func(off core.Offset, states StateSet)) {
	for _, c := range r.constraints {
		fn(c.offset, c.states)
	}
}

// Matches reports whether c is admissible and every constrained neighbour is
// present and admissible. A constrained offset beyond the grid boundary never
// matches.
func (r *PositionRule) Matches(c *grid.Cell) bool {
	if !r.admits(c) {
		return false
	}
	for _, con := range r.constraints {
		n, ok := c.NeighborAt(con.offset)
		if !ok {
			return false
		}
		if !con.states.Has(n.State()) {
			return false
		}
	}
	return true
}

// Spec returns the "matrix" rule-file form.
func (r *PositionRule) Spec() Spec {
	s := r.spec(KindPosition)
	for _, c := range r.constraints {
		s.Neighbours = append(s.Neighbours, NeighbourSpec{
			RelativePosition: append([]int(nil), c.offset...),
			NeighbourStates:  c.states.Sorted(),
		})
	}
	return s
}

func (r *PositionRule) String() string {
	return fmt.Sprintf("matrix(current=%v, %d constraints -> %d)", r.current.Sorted(), len(r.constraints), r.output)
}

func (*PositionRule) sealed() {}
