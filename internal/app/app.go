//go:build ebiten

package app

import (
	"time"

	"autocell/internal/engine"
	"autocell/internal/render"
	"autocell/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 220

// Game adapts an engine view to the ebiten.Game interface.
type Game struct {
	view    *View
	painter *render.GridPainter
	palette render.Palette
	hud     *ui.HUD
	overlay *ui.Overlay
	scale   int
}

// New constructs a Game for the provided engine.
func New(eng *engine.Engine, title string, scale, tps int) *Game {
	if scale <= 0 {
		scale = 1
	}
	v := NewView(eng, tps, 128)
	w, h := v.Size()
	return &Game{
		view:    v,
		painter: render.NewGridPainter(w, h),
		palette: render.DefaultPalette(),
		hud:     ui.NewHUD(title, eng, hudWidth),
		overlay: ui.NewOverlay(eng, v.CoordAt, scale),
		scale:   scale,
	}
}

// WindowSize returns the window size needed to show the grid and the panel.
func (g *Game) WindowSize() (int, int) { return g.Layout(0, 0) }

var keymap = []struct {
	key ebiten.Key
	cmd Command
}{
	{ebiten.KeyQ, CmdQuit},
	{ebiten.KeyEscape, CmdQuit},
	{ebiten.KeySpace, CmdPause},
	{ebiten.KeyN, CmdStep},
	{ebiten.KeyU, CmdUndo},
	{ebiten.KeyR, CmdReset},
	{ebiten.KeyBracketRight, CmdDeeper},
	{ebiten.KeyBracketLeft, CmdShallower},
}

// Update handles per-frame input and advances the automaton.
func (g *Game) Update() error {
	for _, k := range keymap {
		if inpututil.IsKeyJustPressed(k.key) && g.view.Handle(k.cmd) {
			return ebiten.Termination
		}
	}
	g.view.Tick(time.Now())
	g.hud.Update()
	g.overlay.Update()
	return nil
}

// Draw renders the current plane, the overlay and the parameter panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.view.Plane(), g.palette, g.scale)
	g.overlay.Draw(screen)
	w, h := g.view.Size()
	g.hud.Draw(screen, w*g.scale, h*g.scale)
	ebiten.SetWindowTitle(g.view.Status())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.view.Size()
	return w*g.scale + g.hud.Width(), h * g.scale
}
