package terminal

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/particle-impact-go/impact"
	"github.com/olivierh59500/particle-impact-go/render"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(40, 10)
	t.Cleanup(screen.Fini)
	return screen
}

func newEngine(t *testing.T, steps int, ps ...*impact.Particle) *impact.Engine {
	t.Helper()
	s, err := impact.NewSurface(4, 3, 1, "stealth")
	require.NoError(t, err)

	cfg := impact.DefaultConfig()
	cfg.SimulationTimeSteps = steps
	e, err := impact.NewEngine(s, ps, cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return e
}

func statusLine(screen tcell.SimulationScreen) string {
	w, h := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, h-1)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDrawParticles(t *testing.T) {
	screen := newScreen(t)
	e := newEngine(t, 100,
		&impact.Particle{Pos: impact.Vec3{X: 1.5, Y: 2.5, Z: 0.5}, Size: 1},
		&impact.Particle{Pos: impact.Vec3{X: 3.2, Y: 0.1, Z: 0.2}, Size: 1, Kind: impact.Special},
		&impact.Particle{Pos: impact.Vec3{X: 0.5, Y: 0.5, Z: 5}, Size: 1},
	)

	New(screen, e).Draw()

	r, _, style, _ := screen.GetContent(2, 2)
	assert.Equal(t, 'o', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, rgb(render.Intact), fg)

	r, _, _, _ = screen.GetContent(6, 0)
	assert.Equal(t, '^', r)

	// Not yet at the surface.
	r, _, _, _ = screen.GetContent(0, 0)
	assert.Equal(t, FreeFlight, r)

	assert.Contains(t, statusLine(screen), "step 0  particles 3 (0 fragments)")
}

func TestDrawDamageShading(t *testing.T) {
	screen := newScreen(t)
	e := newEngine(t, 100, &impact.Particle{Pos: impact.Vec3{X: 1.5, Y: 2.5, Z: 0.5}, Size: 1})

	require.NoError(t, e.Step())
	New(screen, e).Draw()

	// The particle covers the first column of its cell; the second shows
	// the damage level of the most damaged cell.
	r, _, _, _ := screen.GetContent(3, 2)
	assert.Equal(t, '@', r)
	r, _, _, _ = screen.GetContent(1, 0)
	assert.Equal(t, ' ', r)
	assert.Contains(t, statusLine(screen), "step 1")
}

func TestDrawSurfaceParticleOverFreeFlight(t *testing.T) {
	screen := newScreen(t)
	e := newEngine(t, 100,
		&impact.Particle{Pos: impact.Vec3{X: 1.5, Y: 1.5, Z: 0.5}, Size: 1},
		&impact.Particle{Pos: impact.Vec3{X: 1.2, Y: 1.7, Z: 4}, Size: 1},
		&impact.Particle{Pos: impact.Vec3{X: 2.5, Y: 1.5, Z: 9}, Size: 1},
	)

	New(screen, e).Draw()

	r, _, _, _ := screen.GetContent(2, 1)
	assert.Equal(t, 'o', r)
	r, _, style, _ := screen.GetContent(4, 1)
	assert.Equal(t, FreeFlight, r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, rgb(render.Intact), fg)
}

func TestDrawFragmentsInBlack(t *testing.T) {
	screen := newScreen(t)
	e := newEngine(t, 100, &impact.Particle{Pos: impact.Vec3{X: 0.5, Y: 0.5, Z: 0.5}, Size: 0.01})

	require.NoError(t, e.Step())
	require.Len(t, e.LastStep().Fragmented, 1)
	New(screen, e).Draw()

	r, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, 'o', r)
	fg, _, _ := style.Decompose()
	assert.Equal(t, rgb(render.Fragment), fg)
}

func TestDrawClipsToScreen(t *testing.T) {
	screen := newScreen(t)
	screen.SetSize(3, 2)

	e := newEngine(t, 100, &impact.Particle{Pos: impact.Vec3{X: 3.5, Y: 2.5, Z: 0.5}, Size: 1})
	assert.NotPanics(t, func() { New(screen, e).Draw() })
}

func TestRunStopsWhenTerminated(t *testing.T) {
	screen := newScreen(t)
	e := newEngine(t, 3, &impact.Particle{Pos: impact.Vec3{X: 1.5, Y: 1.5, Z: 0}, Size: 1})

	closed, err := New(screen, e).Run(time.Millisecond)
	require.NoError(t, err)
	assert.False(t, closed)
	assert.Equal(t, 3, e.CurrentTime())
	assert.Contains(t, statusLine(screen), "step 3")
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t)
	e := newEngine(t, 1000000)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	closed, err := New(screen, e).Run(time.Millisecond)
	require.NoError(t, err)
	assert.True(t, closed)
	assert.False(t, e.Terminated())
}

func TestIsQuit(t *testing.T) {
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	assert.True(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, isQuit(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}
