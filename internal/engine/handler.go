package engine

// Handler is an explicitly owned collection of live engines. The application
// holds one and passes it where needed.
type Handler struct {
	engines []*Engine
}

// NewHandler returns an empty collection.
func NewHandler() *Handler { return &Handler{} }

// Add appends e and returns its index.
func (h *Handler) Add(e *Engine) int {
	h.engines = append(h.engines, e)
	return len(h.engines) - 1
}

// Get returns the engine at index i.
func (h *Handler) Get(i int) (*Engine, bool) {
	if i < 0 || i >= len(h.engines) {
		return nil, false
	}
	return h.engines[i], true
}

// Len is the number of engines held.
func (h *Handler) Len() int { return len(h.engines) }

// Remove drops e and reports whether it was held.
func (h *Handler) Remove(e *Engine) bool {
	for i, have := range h.engines {
		if have == e {
			h.engines = append(h.engines[:i], h.engines[i+1:]...)
			return true
		}
	}
	return false
}

// StepAll advances every engine by n steps.
func (h *Handler) StepAll(n int) {
	for _, e := range h.engines {
		e.Step(n)
	}
}

// Each calls fn for every engine in insertion order.
func (h *Handler) Each(fn func(i int, e *Engine)) {
	for i, e := range h.engines {
		fn(i, e)
	}
}
