package core

import "errors"

// Failure kinds shared by the grid, rule and engine packages. Callers classify
// wrapped errors with errors.Is.
var (
	// ErrMalformedGrid reports a grid shape, type or range violation on load.
	ErrMalformedGrid = errors.New("malformed grid")
	// ErrMalformedRule reports a missing or mistyped rule field.
	ErrMalformedRule = errors.New("malformed rule")
	// ErrInvalidRange reports a count rule whose interval is min > max or max == 0.
	ErrInvalidRange = errors.New("invalid neighbour count range")
	// ErrNoHistory reports an undo past the earliest recorded state.
	ErrNoHistory = errors.New("no history to undo")
	// ErrDimensionMismatch reports coordinate arithmetic across differing lengths.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrIO reports a file that could not be read or written.
	ErrIO = errors.New("i/o failure")
)
