package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Percent reports true with probability p/100. Values outside [0,100] clamp.
func (r *RNG) Percent(p int) bool {
	if p <= 0 {
		return false
	}
	if p >= 100 {
		return true
	}
	return r.r.IntN(100) < p
}

// StateIn returns a uniform state in [1, max]. A max of zero yields 1.
func (r *RNG) StateIn(max State) State {
	if max <= 1 {
		return 1
	}
	return State(r.r.Uint64N(uint64(max))) + 1
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
