// Package briansbrain expresses Brian's Brain as counting rules.
package briansbrain

import (
	"fmt"
	"strconv"

	"autocell/internal/core"
	"autocell/internal/engine"
	"autocell/internal/rule"
)

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2
)

// Rules returns the three Brian's Brain transitions for a grid of the given
// rank: firing cells start dying, dying cells die, and dead cells with exactly
// two firing neighbours fire. A rank below one has no neighbours to count.
func Rules(rank int) ([]rule.Rule, error) {
	if rank < 1 {
		return nil, fmt.Errorf("%w: rank %d has no neighbours", core.ErrInvalidRange, rank)
	}
	max := uint(core.NeighborCount(rank))
	return []rule.Rule{
		rule.MustCountRule(stateDying, []core.State{stateOn}, 0, max, nil),
		rule.MustCountRule(stateDead, []core.State{stateDying}, 0, max, nil),
		rule.MustCountRule(stateOn, []core.State{stateDead}, 2, 2, []core.State{stateOn}),
	}, nil
}

func init() {
	engine.Register("briansbrain", func(cfg map[string]string) (engine.Preset, error) {
		rank := 2
		if v, ok := cfg["rank"]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				rank = parsed
			}
		}
		rules, err := Rules(rank)
		if err != nil {
			return engine.Preset{}, err
		}
		return engine.Preset{Name: "briansbrain", Rank: rank, Rules: rules}, nil
	})
}
