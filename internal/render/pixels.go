package render

import (
	"image/color"

	"autocell/internal/core"
)

// Palette maps cell states to colours. States past the end use the last entry.
type Palette []color.RGBA

// DefaultPalette is black for dead cells, white for state 1 and a fixed ramp
// for higher states.
func DefaultPalette() Palette {
	return Palette{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 64, G: 164, B: 223, A: 255},
		{R: 255, G: 120, B: 40, A: 255},
		{R: 120, G: 200, B: 90, A: 255},
		{R: 200, G: 80, B: 160, A: 255},
		{R: 230, G: 210, B: 70, A: 255},
	}
}

// Color returns the colour for state s.
func (p Palette) Color(s core.State) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{}
	}
	if last := core.State(len(p) - 1); s > last {
		s = last
	}
	return p[s]
}

// fillPaletteRGBA converts cell states into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []core.State, palette Palette) {
	for i, s := range cells {
		col := palette.Color(s)
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

var glyphs = []rune{' ', '█', '▓', '▒', '░'}

// Glyph returns the terminal character for state s.
func Glyph(s core.State) rune {
	if int(s) < len(glyphs) {
		return glyphs[s]
	}
	return '#'
}
