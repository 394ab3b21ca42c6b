package rule

import (
	"fmt"
	"strings"

	"autocell/internal/core"
)

// FromSpec builds a rule from its rule-file form. Type tags are matched
// case-insensitively. For "matrix" rules every relative position must have
// rank components, a rank of zero skipping that check, and each component
// must be -1, 0 or 1 with at least one non-zero: an offset outside the Moore
// neighbourhood is ErrMalformedRule rather than a constraint that never matches.
func FromSpec(s Spec, rank int) (Rule, error) {
	switch strings.ToLower(s.Type) {
	case TypeNeighbour:
		if s.CountMin == nil || s.CountMax == nil {
			return nil, fmt.Errorf("%w: neighbour rule needs neighbourNumberMin and neighbourNumberMax", core.ErrMalformedRule)
		}
		return NewCountRule(s.FinalState, s.CurrentStates, *s.CountMin, *s.CountMax, s.CountStates)
	case TypeMatrix:
		r := NewPositionRule(s.FinalState, s.CurrentStates)
		for i, n := range s.Neighbours {
			if rank > 0 && len(n.RelativePosition) != rank {
				return nil, fmt.Errorf("%w: neighbour %d has %d components on a %d-dimensional grid: %w",
					core.ErrMalformedRule, i, len(n.RelativePosition), rank, core.ErrDimensionMismatch)
			}
			if err := r.Constrain(core.Offset(n.RelativePosition), n.NeighbourStates...); err != nil {
				return nil, fmt.Errorf("%w: neighbour %d: %w", core.ErrMalformedRule, i, err)
			}
		}
		return r, nil
	}
	return nil, fmt.Errorf("%w: unknown type %q", core.ErrMalformedRule, s.Type)
}

// Specs converts rules to their rule-file form, preserving priority order.
func Specs(rules []Rule) []Spec {
	out := make([]Spec, len(rules))
	for i, r := range rules {
		out[i] = r.Spec()
	}
	return out
}
