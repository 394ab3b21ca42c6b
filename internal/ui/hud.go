//go:build ebiten

package ui

import (
	"image/color"

	"autocell/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// ParameterProvider reports a description of a running automaton.
type ParameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the grid view.
type HUD struct {
	source     ParameterProvider
	title      string
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot
}

// NewHUD constructs a HUD for the provided source and panel width.
func NewHUD(title string, source ParameterProvider, width int) *HUD {
	if width < 0 {
		width = 0
	}
	if title == "" {
		title = "Automaton"
	}
	return &HUD{source: source, title: title, width: width}
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached parameter snapshot.
func (h *HUD) Update() {
	if h == nil || h.source == nil {
		return
	}
	h.snapshot = h.source.Parameters()
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawParams()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawParams() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for _, group := range h.snapshot.Groups {
		y += groupSpacing
		text.Draw(h.panel, group.Name, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		for _, p := range group.Params {
			y += lineHeight
			text.Draw(h.panel, p.Label, face, panelPadding, y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		}
	}
}

const (
	panelPadding   = 12
	lineHeight     = 18
	groupSpacing   = 28
	headerBaseline = 18
)
