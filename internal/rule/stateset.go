package rule

import (
	"slices"

	"github.com/zyedidia/generic/mapset"

	"autocell/internal/core"
)

// StateSet is an unordered set of cell states. The zero value is an empty set
// and is safe to read.
type StateSet struct {
	set mapset.Set[core.State]
}

// NewStateSet returns a set holding states; duplicates collapse.
func NewStateSet(states ...core.State) StateSet {
	return StateSet{set: mapset.Of(states...)}
}

// Len is the number of distinct states.
func (s StateSet) Len() int { return s.set.Size() }

// Empty reports whether the set holds no state.
func (s StateSet) Empty() bool { return s.set.Size() == 0 }

// Has reports whether v is in the set.
func (s StateSet) Has(v core.State) bool { return s.set.Has(v) }

// Admits treats an empty set as "any state".
func (s StateSet) Admits(v core.State) bool { return s.Empty() || s.set.Has(v) }

// Sorted returns the states in ascending order, never nil.
func (s StateSet) Sorted() []core.State {
	out := make([]core.State, 0, s.Len())
	s.set.Each(func(v core.State) { out = append(out, v) })
	slices.Sort(out)
	return out
}

func (s StateSet) merge(states ...core.State) StateSet {
	out := NewStateSet(s.Sorted()...)
	for _, v := range states {
		out.set.Put(v)
	}
	return out
}
