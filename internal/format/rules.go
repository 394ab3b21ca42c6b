package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"autocell/internal/core"
	"autocell/internal/rule"
)

// RuleFile is the on-disk rule shape. Array order is priority order.
type RuleFile struct {
	Rules []rule.Spec `json:"rules"`
}

type wireRuleFile struct {
	Rules *[]json.RawMessage `json:"rules"`
}

type wireRule struct {
	Type          *string          `json:"type"`
	FinalState    *uint            `json:"finalState"`
	CurrentStates *[]uint          `json:"currentStates"`
	CountMin      *uint            `json:"neighbourNumberMin"`
	CountMax      *uint            `json:"neighbourNumberMax"`
	CountStates   *[]uint          `json:"neighbourStates"`
	Neighbours    *[]wireNeighbour `json:"neighbours"`
}

type wireNeighbour struct {
	RelativePosition *[]int  `json:"relativePosition"`
	NeighbourStates  *[]uint `json:"neighbourStates"`
}

// DecodeRules reads a rule file for a grid of the given rank. The document is
// an object with a "rules" array; a bare top-level array is also accepted.
// Any violation rejects the whole file with core.ErrMalformedRule, or
// core.ErrInvalidRange for a bad neighbour count interval.
func DecodeRules(r io.Reader, rank int) ([]rule.Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	var raws []json.RawMessage
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raws); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedRule, err)
		}
	} else {
		var f wireRuleFile
		if err := json.Unmarshal(trimmed, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedRule, err)
		}
		if f.Rules == nil {
			return nil, fmt.Errorf("%w: missing \"rules\" array", core.ErrMalformedRule)
		}
		raws = *f.Rules
	}

	rules := make([]rule.Rule, 0, len(raws))
	for i, raw := range raws {
		spec, err := decodeSpec(raw)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		r, err := rule.FromSpec(spec, rank)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func decodeSpec(raw json.RawMessage) (rule.Spec, error) {
	var w wireRule
	if err := json.Unmarshal(raw, &w); err != nil {
		return rule.Spec{}, fmt.Errorf("%w: %v", core.ErrMalformedRule, err)
	}
	if w.Type == nil {
		return rule.Spec{}, fmt.Errorf("%w: missing \"type\"", core.ErrMalformedRule)
	}
	if w.FinalState == nil {
		return rule.Spec{}, fmt.Errorf("%w: missing \"finalState\"", core.ErrMalformedRule)
	}
	if w.CurrentStates == nil {
		return rule.Spec{}, fmt.Errorf("%w: missing \"currentStates\"", core.ErrMalformedRule)
	}
	s := rule.Spec{
		Type:          *w.Type,
		FinalState:    *w.FinalState,
		CurrentStates: *w.CurrentStates,
		CountMin:      w.CountMin,
		CountMax:      w.CountMax,
	}
	if w.CountStates != nil {
		s.CountStates = *w.CountStates
	}
	if w.Neighbours != nil {
		for i, n := range *w.Neighbours {
			if n.RelativePosition == nil {
				return rule.Spec{}, fmt.Errorf("%w: neighbour %d: missing \"relativePosition\"", core.ErrMalformedRule, i)
			}
			if n.NeighbourStates == nil {
				return rule.Spec{}, fmt.Errorf("%w: neighbour %d: missing \"neighbourStates\"", core.ErrMalformedRule, i)
			}
			s.Neighbours = append(s.Neighbours, rule.NeighbourSpec{
				RelativePosition: *n.RelativePosition,
				NeighbourStates:  *n.NeighbourStates,
			})
		}
	}
	return s, nil
}

// EncodeRules writes rules as a rule file, highest priority first.
func EncodeRules(w io.Writer, rules []rule.Rule) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(RuleFile{Rules: rule.Specs(rules)}); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return nil
}
