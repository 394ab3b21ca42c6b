// Package term shows an automaton in a terminal with tcell. Each cell is two
// columns wide so that square grids look square.
package term

import (
	"context"
	"time"

	"autocell/internal/app"
	"autocell/internal/core"
	"autocell/internal/render"

	"github.com/gdamore/tcell/v2"
)

const frameInterval = 16 * time.Millisecond

// Viewer draws a View on a tcell screen and feeds it key presses.
type Viewer struct {
	screen  tcell.Screen
	view    *app.View
	palette render.Palette
	mono    bool
}

// New returns a viewer on an initialised screen. On screens with fewer than
// 256 colours cells are drawn as glyphs instead of coloured blocks.
func New(screen tcell.Screen, view *app.View) *Viewer {
	return &Viewer{
		screen:  screen,
		view:    view,
		palette: render.DefaultPalette(),
		mono:    screen.Colors() < 256,
	}
}

// SetMono forces glyph rendering.
func (v *Viewer) SetMono(mono bool) { v.mono = mono }

// Draw paints the visible part of the plane and a status line on the last row.
func (v *Viewer) Draw() {
	v.screen.Clear()
	sw, sh := v.screen.Size()
	w, h := v.view.Size()
	plane := v.view.Plane()
	rows := min(h, sh-1)
	cols := min(w, sw/2)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v.drawCell(x, y, plane[y*w+x])
		}
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, r := range []rune(v.view.Status()) {
		if i >= sw {
			break
		}
		v.screen.SetContent(i, sh-1, r, nil, style)
	}
	v.screen.Show()
}

func (v *Viewer) drawCell(x, y int, s core.State) {
	if v.mono {
		g := render.Glyph(s)
		v.screen.SetContent(x*2, y, g, nil, tcell.StyleDefault)
		v.screen.SetContent(x*2+1, y, g, nil, tcell.StyleDefault)
		return
	}
	c := v.palette.Color(s)
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	v.screen.SetContent(x*2, y, ' ', nil, style)
	v.screen.SetContent(x*2+1, y, ' ', nil, style)
}

// Command maps a key press to a viewer command.
func Command(ev *tcell.EventKey) app.Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return app.CmdQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return app.CmdQuit
		case ' ':
			return app.CmdPause
		case 'n', 'N':
			return app.CmdStep
		case 'u', 'U':
			return app.CmdUndo
		case 'r', 'R':
			return app.CmdReset
		case ']':
			return app.CmdDeeper
		case '[':
			return app.CmdShallower
		}
	}
	return app.CmdNone
}

// Run draws and steps until the user quits or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	frame := time.NewTicker(frameInterval)
	defer frame.Stop()

	v.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if v.view.Handle(Command(ev)) {
					return nil
				}
			case *tcell.EventResize:
				v.screen.Sync()
			case nil:
				return nil
			}
			v.Draw()
		case now := <-frame.C:
			if v.view.Tick(now) {
				v.Draw()
			}
		}
	}
}
