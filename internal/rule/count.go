package rule

import (
	"fmt"

	"autocell/internal/core"
	"autocell/internal/grid"
)

// CountRule matches a cell when the number of neighbours holding one of the
// counted states falls inside [Min, Max]. With no counted states every
// non-dead neighbour is counted.
type CountRule struct {
	base
	min, max uint
	counted  StateSet
}

// NewCountRule builds a counting rule. It fails with core.ErrInvalidRange when
// min > max or max == 0.
func NewCountRule(output core.State, current []core.State, min, max uint, counted []core.State) (*CountRule, error) {
	if min > max {
		return nil, fmt.Errorf("%w: min %d > max %d", core.ErrInvalidRange, min, max)
	}
	if max == 0 {
		return nil, fmt.Errorf("%w: max is 0", core.ErrInvalidRange)
	}
	return &CountRule{
		base:    base{output: output, current: NewStateSet(current...)},
		min:     min,
		max:     max,
		counted: NewStateSet(counted...),
	}, nil
}

// MustCountRule is NewCountRule for fixed, known-good parameters.
func MustCountRule(output core.State, current []core.State, min, max uint, counted []core.State) *CountRule {
	r, err := NewCountRule(output, current, min, max, counted)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind reports KindCount.
func (r *CountRule) Kind() Kind { return KindCount }

// Range returns the inclusive neighbour count interval.
func (r *CountRule) Range() (min, max uint) { return r.min, r.max }

// CountedStates returns the states that are counted; empty means non-dead.
func (r *CountRule) CountedStates() StateSet { return r.counted }

// Count returns how many neighbours of c this rule counts.
func (r *CountRule) Count(c *grid.Cell) uint {
	if r.counted.Empty() {
		return uint(c.CountNeighbors())
	}
	var n uint
	r.counted.set.Each(func(s core.State) {
		n += uint(c.CountNeighborsWithState(s))
	})
	return n
}

// Matches reports whether c holds an admissible state and its counted
// neighbours fall inside the range.
func (r *CountRule) Matches(c *grid.Cell) bool {
	if !r.admits(c) {
		return false
	}
	n := r.Count(c)
	return n >= r.min && n <= r.max
}

// Spec returns the "neighbour" rule-file form.
func (r *CountRule) Spec() Spec {
	s := r.spec(KindCount)
	min, max := r.min, r.max
	s.CountMin = &min
	s.CountMax = &max
	if !r.counted.Empty() {
		s.CountStates = r.counted.Sorted()
	}
	return s
}

func (r *CountRule) String() string {
	return fmt.Sprintf("neighbour(current=%v count%v in [%d,%d] -> %d)", r.current.Sorted(), r.counted.Sorted(), r.min, r.max, r.output)
}

func (*CountRule) sealed() {}
