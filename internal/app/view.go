package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"autocell/internal/core"
	"autocell/internal/engine"
	"autocell/internal/render"
)

// Command is a viewer action, independent of the toolkit that produced it.
type Command int

const (
	CmdNone Command = iota
	CmdPause
	CmdStep
	CmdUndo
	CmdReset
	CmdDeeper
	CmdShallower
	CmdQuit
)

// View is the toolkit-neutral state of a viewer: which plane of the grid is
// shown, the 1D trail, pacing and pause state.
type View struct {
	eng    *engine.Engine
	ticker *core.FixedStep
	trail  *render.Trail
	depth  []int
	plane  []core.State
	paused bool
	notice string
}

// NewView wraps eng. A 1D grid is shown as a trail of the last trailRows
// generations.
func NewView(eng *engine.Engine, tps, trailRows int) *View {
	v := &View{eng: eng, ticker: core.NewFixedStep(tps)}
	if r := eng.Grid().Rank(); r > 2 {
		v.depth = make([]int, r-2)
	}
	if eng.Grid().Rank() == 1 {
		v.trail = render.NewTrail(eng.Grid().Len(), trailRows)
		v.trail.Push(eng.Grid().States())
	}
	return v
}

// Engine returns the wrapped engine.
func (v *View) Engine() *engine.Engine { return v.eng }

// Paused reports whether automatic stepping is off.
func (v *View) Paused() bool { return v.paused }

// SetPaused turns automatic stepping off or on.
func (v *View) SetPaused(paused bool) { v.paused = paused }

// Depth returns the fixed coordinates of the axes past the first two.
func (v *View) Depth() []int { return v.depth }

// Size returns the width and height of the plane in cells.
func (v *View) Size() (w, h int) {
	if v.trail != nil {
		return v.trail.Size()
	}
	return render.PlaneSize(v.eng.Grid())
}

// Plane returns the states to draw, row by row. The slice is reused.
func (v *View) Plane() []core.State {
	if v.trail != nil {
		v.plane = v.trail.Fill(v.plane)
	} else {
		v.plane = render.Plane(v.eng.Grid(), v.depth, v.plane)
	}
	return v.plane
}

// Handle applies cmd and reports whether the viewer should close.
func (v *View) Handle(cmd Command) bool {
	v.notice = ""
	switch cmd {
	case CmdPause:
		v.paused = !v.paused
	case CmdStep:
		v.step()
	case CmdUndo:
		if err := v.eng.Undo(); err != nil {
			if errors.Is(err, core.ErrNoHistory) {
				v.notice = "nothing to undo"
			} else {
				v.notice = err.Error()
			}
			break
		}
		if v.trail != nil {
			v.trail.Pop()
			if v.trail.Len() == 0 {
				v.trail.Push(v.eng.Grid().States())
			}
		}
	case CmdReset:
		v.eng.Reset()
		if v.trail != nil {
			v.trail.Clear()
			v.trail.Push(v.eng.Grid().States())
		}
	case CmdDeeper:
		v.moveDepth(1)
	case CmdShallower:
		v.moveDepth(-1)
	case CmdQuit:
		return true
	}
	return false
}

// Tick advances one generation when running and a step is due.
func (v *View) Tick(now time.Time) bool {
	if !v.ticker.Advance(now) || v.paused {
		return false
	}
	v.step()
	return true
}

func (v *View) step() {
	v.eng.Step(1)
	if v.trail != nil {
		v.trail.Push(v.eng.Grid().States())
	}
}

func (v *View) moveDepth(delta int) {
	if len(v.depth) == 0 {
		return
	}
	limit := v.eng.Grid().Dimensions()[2]
	v.depth[0] = min(max(v.depth[0]+delta, 0), limit-1)
}

// CoordAt maps a plane position to a grid coordinate.
func (v *View) CoordAt(x, y int) (core.Coord, bool) {
	w, h := v.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return nil, false
	}
	if v.trail != nil {
		return core.Coord{x}, true
	}
	c := core.Coord{y, x}
	return append(c, v.depth...), true
}

// Status is a one-line summary for a status bar.
func (v *View) Status() string {
	g := v.eng.Grid()
	parts := []string{
		fmt.Sprintf("gen %d", v.eng.Generation()),
		fmt.Sprintf("pop %d/%d", g.Population(), g.Len()),
		fmt.Sprintf("rules %d", len(v.eng.Rules())),
	}
	if len(v.depth) > 0 {
		parts = append(parts, fmt.Sprintf("depth %d/%d", v.depth[0], g.Dimensions()[2]-1))
	}
	if v.paused {
		parts = append(parts, "paused")
	}
	if v.notice != "" {
		parts = append(parts, v.notice)
	}
	return strings.Join(parts, "  ")
}
