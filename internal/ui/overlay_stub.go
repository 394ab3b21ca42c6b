//go:build !ebiten

package ui

import (
	"autocell/internal/core"
	"autocell/internal/engine"
)

// Locator maps a plane position in cells to a grid coordinate.
type Locator func(x, y int) (core.Coord, bool)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(*engine.Engine, Locator, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
