//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"autocell/internal/core"
	"autocell/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Locator maps a plane position in cells to a grid coordinate.
type Locator func(x, y int) (core.Coord, bool)

// Overlay inspects the cell under the cursor: it outlines the cell, tints the
// neighbours that lie in the shown plane and names the rule that would fire.
type Overlay struct {
	eng    *engine.Engine
	locate Locator
	scale  int
	show   bool
	pixel  *ebiten.Image

	hoverX, hoverY int
	hovering       bool
	neighbours     [][2]int
	info           string
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(eng *engine.Engine, locate Locator, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{eng: eng, locate: locate, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay with I and follows the cursor.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.show = !o.show
	}
	o.hovering = false
	if !o.show {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/o.scale, my/o.scale
	coord, ok := o.locate(x, y)
	if !ok {
		return
	}
	o.hovering = true
	o.hoverX, o.hoverY = x, y
	o.inspect(coord)
}

func (o *Overlay) inspect(coord core.Coord) {
	cell, ok := o.eng.Grid().Cell(coord)
	if !ok {
		o.hovering = false
		return
	}
	o.neighbours = o.neighbours[:0]
	nbs, err := core.ResolveNeighbors(coord, o.eng.Grid().Dimensions())
	if err != nil {
		o.hovering = false
		return
	}
	for _, n := range nbs {
		if dx, dy, ok := planeDelta(n.Offset); ok {
			o.neighbours = append(o.neighbours, [2]int{o.hoverX + dx, o.hoverY + dy})
		}
	}
	r, idx, err := o.eng.Match(coord)
	switch {
	case err != nil:
		o.info = err.Error()
	case r == nil:
		o.info = fmt.Sprintf("%v state %d: no rule", coord, cell.State())
	default:
		o.info = fmt.Sprintf("%v state %d: rule %d %v", coord, cell.State(), idx, r)
	}
}

// planeDelta projects an offset onto the drawn plane. Offsets that leave the
// plane along a deeper axis are not visible.
func planeDelta(off core.Offset) (dx, dy int, ok bool) {
	if len(off) == 1 {
		return off[0], 0, true
	}
	for _, d := range off[2:] {
		if d != 0 {
			return 0, 0, false
		}
	}
	return off[1], off[0], true
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	if o.hovering {
		for _, p := range o.neighbours {
			o.fillCell(screen, p[0], p[1], color.RGBA{R: 64, G: 164, B: 223, A: 96})
		}
		o.outlineCell(screen, o.hoverX, o.hoverY, color.RGBA{R: 255, G: 120, B: 40, A: 255})
		text.Draw(screen, o.info, basicfont.Face7x13, 4, screen.Bounds().Dy()-6, color.RGBA{R: 230, G: 230, B: 240, A: 255})
	}
}

func (o *Overlay) fillCell(screen *ebiten.Image, x, y int, c color.RGBA) {
	o.rect(screen, float64(x*o.scale), float64(y*o.scale), float64(o.scale), float64(o.scale), c)
}

func (o *Overlay) outlineCell(screen *ebiten.Image, x, y int, c color.RGBA) {
	s := float64(o.scale)
	px, py := float64(x*o.scale), float64(y*o.scale)
	o.rect(screen, px, py, s, 1, c)
	o.rect(screen, px, py+s-1, s, 1, c)
	o.rect(screen, px, py, 1, s, c)
	o.rect(screen, px+s-1, py, 1, s, c)
}

func (o *Overlay) rect(screen *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(o.pixel, op)
}
