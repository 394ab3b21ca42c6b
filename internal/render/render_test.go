package render

import (
	"image/color"
	"slices"
	"testing"

	"autocell/internal/core"
	"autocell/internal/grid"
)

func TestPaletteClampsHighStates(t *testing.T) {
	p := Palette{{R: 1, A: 255}, {G: 2, A: 255}}
	if got := p.Color(7); got != (color.RGBA{G: 2, A: 255}) {
		t.Fatalf("Color(7) = %v", got)
	}
	if got := Palette(nil).Color(1); got != (color.RGBA{}) {
		t.Fatalf("empty palette Color = %v", got)
	}
}

func TestFillPaletteRGBA(t *testing.T) {
	buf := make([]byte, 8)
	fillPaletteRGBA(buf, []core.State{0, 1}, DefaultPalette())
	want := []byte{0, 0, 0, 255, 255, 255, 255, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("buf = %v, want %v", buf, want)
	}
}

func TestPlane2D(t *testing.T) {
	g, err := grid.FromStates([]int{2, 3}, []int{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("FromStates: %v", err)
	}
	if w, h := PlaneSize(g); w != 3 || h != 2 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if got := Plane(g, nil, nil); !slices.Equal(got, []core.State{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("plane = %v", got)
	}
}

func TestPlane3D(t *testing.T) {
	states := make([]int, 8)
	for i := range states {
		states[i] = i
	}
	g, err := grid.FromStates([]int{2, 2, 2}, states)
	if err != nil {
		t.Fatalf("FromStates: %v", err)
	}
	if got := Plane(g, []int{1}, nil); !slices.Equal(got, []core.State{1, 3, 5, 7}) {
		t.Fatalf("depth 1 plane = %v", got)
	}
	if got := Plane(g, []int{9}, nil); !slices.Equal(got, []core.State{1, 3, 5, 7}) {
		t.Fatalf("clamped plane = %v", got)
	}
	if got := Plane(g, nil, nil); !slices.Equal(got, []core.State{0, 2, 4, 6}) {
		t.Fatalf("default plane = %v", got)
	}
}

func TestTrail(t *testing.T) {
	tr := NewTrail(2, 2)
	tr.Push([]core.State{1, 0})
	if got := tr.Fill(nil); !slices.Equal(got, []core.State{1, 0, 0, 0}) {
		t.Fatalf("fill = %v", got)
	}
	tr.Push([]core.State{0, 1})
	tr.Push([]core.State{1, 1})
	if got := tr.Fill(nil); !slices.Equal(got, []core.State{0, 1, 1, 1}) {
		t.Fatalf("scrolled fill = %v", got)
	}
	tr.Pop()
	if tr.Len() != 1 {
		t.Fatalf("len after pop = %d", tr.Len())
	}
	tr.Clear()
	if tr.Len() != 0 {
		t.Fatalf("len after clear = %d", tr.Len())
	}
}

func TestGlyph(t *testing.T) {
	if Glyph(0) != ' ' || Glyph(1) != '█' || Glyph(99) != '#' {
		t.Fatalf("unexpected glyphs")
	}
}
