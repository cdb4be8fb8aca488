// Package terminal shows a live impact run as a top-down damage map in a
// tcell screen.
package terminal

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/olivierh59500/particle-impact-go/impact"
	"github.com/olivierh59500/particle-impact-go/render"
)

// FrameInterval is the time between two steps.
const FrameInterval = time.Second / render.FramesPerSecond

// levels shades a cell by its damage relative to the most damaged cell.
var levels = []rune(" .:-=+*#%@")

// Terminal draws an engine into a tcell screen. Each grid cell takes
// cellWidth columns and one row; the bottom row is a status line.
type Terminal struct {
	screen  tcell.Screen
	engine  *impact.Engine
	texture *render.Texture
}

const cellWidth = 2

// New creates a terminal view of e. The screen must already be initialised.
func New(screen tcell.Screen, e *impact.Engine) *Terminal {
	s := e.Surface()
	return &Terminal{
		screen:  screen,
		engine:  e,
		texture: render.NewTexture(s.Material, s.Width, s.Height),
	}
}

// Run opens the terminal and blocks until the engine terminates or the user
// quits with q, Escape or Ctrl-C. closed reports the latter.
func Run(e *impact.Engine) (closed bool, err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return false, err
	}
	if err := screen.Init(); err != nil {
		return false, err
	}
	defer screen.Fini()

	return New(screen, e).Run(FrameInterval)
}

// Run steps the engine once per interval and redraws after every step.
// Input is read on a separate goroutine; only Run touches the engine.
func (t *Terminal) Run(interval time.Duration) (closed bool, err error) {
	quit := make(chan struct{})
	go t.pollQuit(quit)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t.Draw()
	for !t.engine.Terminated() {
		select {
		case <-quit:
			return true, nil
		case <-ticker.C:
			if err := t.engine.Step(); err != nil {
				return false, err
			}
			t.Draw()
		}
	}
	return false, nil
}

// pollQuit closes quit when the user asks to stop. It returns when the
// screen is finalised.
func (t *Terminal) pollQuit(quit chan<- struct{}) {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			if isQuit(ev) {
				close(quit)
				return
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Draw renders the current engine state.
func (t *Terminal) Draw() {
	t.screen.Clear()
	s := t.engine.Surface()
	w, h := t.screen.Size()

	maxDamage := s.MaxDamage()
	for x := 0; x < s.Width; x++ {
		for y := 0; y < s.Height; y++ {
			col, row := x*cellWidth, y
			if col+cellWidth > w || row >= h-1 {
				continue
			}
			d := render.Normalize(s.Damage(x, y), maxDamage)
			r := levels[int(d*float64(len(levels)-1))]
			style := tcell.StyleDefault.
				Background(rgb(t.texture.Plate(x, y))).
				Foreground(rgb(render.Viridis.At(d)))
			for c := 0; c < cellWidth; c++ {
				t.screen.SetContent(col+c, row, r, nil, style)
			}
		}
	}

	// Particles in free flight first, so that those in the surface cover them.
	report := t.engine.LastStep()
	for _, inSurface := range []bool{false, true} {
		for i, p := range t.engine.Particles() {
			if !render.Visible(&report, i) || p.InSurface(s.Thickness) != inSurface {
				continue
			}
			x, y, ok := s.Cell(p.Pos.X, p.Pos.Y)
			if !ok {
				continue
			}
			col, row := x*cellWidth, y
			if col+cellWidth > w || row >= h-1 {
				continue
			}
			t.screen.SetContent(col, row, glyph(p, inSurface), nil, tcell.StyleDefault.
				Background(rgb(t.texture.Plate(x, y))).
				Foreground(rgb(particleColor(p))))
		}
	}

	sum := t.engine.Summary()
	t.status(h-1, fmt.Sprintf("step %d  particles %d (%d fragments)  damage %.2f  [q] quit",
		t.engine.CurrentTime(), sum.Particles, sum.Fragments, sum.Total))
	t.screen.Show()
}

// FreeFlight marks a cell with a particle that has not reached the surface.
const FreeFlight = '·'

func glyph(p *impact.Particle, inSurface bool) rune {
	if !inSurface {
		return FreeFlight
	}
	if _, marker := render.Style(p); marker == render.Triangle {
		return '^'
	}
	return 'o'
}

func particleColor(p *impact.Particle) color.RGBA {
	c, _ := render.Style(p)
	return c
}

func (t *Terminal) status(row int, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(i, row, r, nil, tcell.StyleDefault)
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
