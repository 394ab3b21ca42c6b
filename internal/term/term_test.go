package term

import (
	"context"
	"strings"
	"testing"
	"time"

	"autocell/internal/app"
	"autocell/internal/engine"
	"autocell/internal/grid"
	"autocell/internal/sims/life"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func blinker(t *testing.T) *app.View {
	t.Helper()
	g, err := grid.FromStates([]int{3, 3}, []int{
		0, 1, 0,
		0, 1, 0,
		0, 1, 0,
	})
	if err != nil {
		t.Fatalf("FromStates: %v", err)
	}
	rules, err := life.Rules("B3/S23", 2)
	if err != nil {
		t.Fatalf("Rules: %v", err)
	}
	e, err := engine.New(g, rules...)
	if err != nil {
		t.Fatalf("engine.New: %v", err)
	}
	return app.NewView(e, 10, 1)
}

func row(cells []tcell.SimCell, width, y int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(c.Runes[0])
	}
	return b.String()
}

func TestDrawMono(t *testing.T) {
	s := newScreen(t, 40, 5)
	v := New(s, blinker(t))
	v.SetMono(true)
	v.Draw()
	cells, w, _ := s.GetContents()
	if got := row(cells, w, 0); !strings.HasPrefix(got, "  ██  ") {
		t.Fatalf("row 0 = %q", got)
	}
	if got := row(cells, w, 4); !strings.HasPrefix(got, "gen 0") {
		t.Fatalf("status row = %q", got)
	}
}

func TestCommand(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want app.Command
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), app.CmdQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), app.CmdQuit},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), app.CmdPause},
		{tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), app.CmdStep},
		{tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone), app.CmdUndo},
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), app.CmdReset},
		{tcell.NewEventKey(tcell.KeyRune, ']', tcell.ModNone), app.CmdDeeper},
		{tcell.NewEventKey(tcell.KeyRune, '[', tcell.ModNone), app.CmdShallower},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), app.CmdNone},
	}
	for _, tc := range cases {
		if got := Command(tc.ev); got != tc.want {
			t.Errorf("Command(%v) = %v, want %v", tc.ev.Name(), got, tc.want)
		}
	}
}

func TestRunHandlesKeys(t *testing.T) {
	s := newScreen(t, 40, 5)
	view := blinker(t)
	view.SetPaused(true)
	v := New(s, view)
	v.SetMono(true)

	s.InjectKey(tcell.KeyRune, 'n', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := v.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("Run returned on timeout, not on quit")
	}
	if gen := view.Engine().Generation(); gen != 1 {
		t.Fatalf("generation = %d, want 1", gen)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newScreen(t, 20, 5)
	v := New(s, blinker(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := v.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
