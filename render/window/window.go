// Package window shows a live impact run in an ebiten window. Every frame
// advances the engine by one Step and redraws it.
package window

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-impact-go/export"
	"github.com/olivierh59500/particle-impact-go/impact"
	"github.com/olivierh59500/particle-impact-go/render"
)

// Window constants
const (
	ScreenWidth  = 1000
	ScreenHeight = 800
	barWidth     = 3.0
	MinZoom      = 0.2
	SnapshotFile = "snapshot.csv"
)

var background = color.RGBA{235, 235, 230, 255}

// Window implements ebiten.Game over an impact engine.
type Window struct {
	engine  *impact.Engine
	camera  render.Camera
	texture *render.Texture
	depth   float64 // height of the view volume

	Paused         bool
	Zoom           *render.Ease
	CamX, CamY     float64 // camera pan in screen pixels
	PrevMX, PrevMY float64 // previous mouse position for drag

	closed bool
	err    error
}

// New creates a window view of e.
func New(e *impact.Engine) *Window {
	s := e.Surface()
	depth := render.Depth(e.Particles(), s.Thickness)
	return &Window{
		engine:  e,
		camera:  render.NewCamera(s.Width, s.Height, depth, ScreenWidth, ScreenHeight),
		texture: render.NewTexture(s.Material, s.Width, s.Height),
		depth:   depth,
		Zoom:    render.NewEase(1),
	}
}

// Run opens the window and blocks until the engine terminates or the user
// closes the window. closed reports the latter. Ebiten supports a single
// window per process, so Run must only be called once.
func Run(e *impact.Engine, title string) (closed bool, err error) {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(render.FramesPerSecond)

	w := New(e)
	if err := ebiten.RunGame(w); err != nil {
		return false, err
	}
	if w.err != nil {
		return false, w.err
	}
	return w.closed || !e.Terminated(), nil
}

// Update is called each tick by ebiten and advances the engine by one step.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		w.closed = true
		return ebiten.Termination
	}
	w.handleInput()
	if w.Paused {
		return nil
	}
	return w.advance()
}

// handleInput processes keyboard and mouse input.
func (w *Window) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.Paused = !w.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := export.SaveCSV(SnapshotFile, w.engine.Surface()); err != nil {
			log.Printf("Saving snapshot: %s", err.Error())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.Zoom.Target, w.CamX, w.CamY = 1, 0, 0
	}

	// Zoom
	_, wheelY := ebiten.Wheel()
	w.Zoom.Target += wheelY * 0.1
	if w.Zoom.Target < MinZoom {
		w.Zoom.Target = MinZoom
	}
	w.Zoom.Step()

	// Pan (drag)
	mx, my := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		w.CamX += float64(mx) - w.PrevMX
		w.CamY += float64(my) - w.PrevMY
	}
	w.PrevMX = float64(mx)
	w.PrevMY = float64(my)
}

// project maps simulation coordinates to the screen through the camera,
// the zoom about the screen centre and the pan.
func (w *Window) project(x, y, z float64) (float64, float64) {
	sx, sy := w.camera.Project(x, y, z)
	sx = (sx-ScreenWidth/2)*w.Zoom.Pos + ScreenWidth/2 + w.CamX
	sy = (sy-ScreenHeight/2)*w.Zoom.Pos + ScreenHeight/2 + w.CamY
	return sx, sy
}

// advance runs one step unless the engine has already terminated.
func (w *Window) advance() error {
	if w.engine.Terminated() {
		return ebiten.Termination
	}
	if err := w.engine.Step(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Draw is called each frame by ebiten.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	s := w.engine.Surface()
	w.drawPlate(screen, s)
	w.drawFields(screen, s)
	w.drawParticles(screen, s)

	sum := w.engine.Summary()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"step %d (%s)  particles %d (%d fragments)\ndamage total %.2f max %.3f  deformation max %.3f\n%s  [space] pause  [s] save  [r] reset view  [q] quit",
		w.engine.CurrentTime(), sum.Reason, sum.Particles, sum.Fragments,
		sum.Total, sum.Max, sum.MaxDeformation, s.Material,
	))
}

// drawPlate draws every cell of the bare plate as a textured diamond outline.
func (w *Window) drawPlate(screen *ebiten.Image, s *impact.Surface) {
	for x := 0; x < s.Width; x++ {
		for y := 0; y < s.Height; y++ {
			col := w.texture.Plate(x, y)
			x0, y0 := w.project(float64(x), float64(y), 0)
			x1, y1 := w.project(float64(x+1), float64(y), 0)
			x2, y2 := w.project(float64(x+1), float64(y+1), 0)
			x3, y3 := w.project(float64(x), float64(y+1), 0)
			cx, cy := w.project(float64(x)+0.5, float64(y)+0.5, 0)
			r := float32(w.camera.Scale * w.Zoom.Pos * 0.45)
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), r, col, true)
			line(screen, x0, y0, x1, y1, color.RGBA{120, 120, 120, 255})
			line(screen, x1, y1, x2, y2, color.RGBA{120, 120, 120, 255})
			line(screen, x2, y2, x3, y3, color.RGBA{120, 120, 120, 255})
			line(screen, x3, y3, x0, y0, color.RGBA{120, 120, 120, 255})
		}
	}
}

// drawFields raises a bar per cell for the damage (viridis) and deformation
// (coolwarm) height-fields, both scaled to a quarter of the view depth.
func (w *Window) drawFields(screen *ebiten.Image, s *impact.Surface) {
	maxDamage, maxDeform := s.MaxDamage(), s.MaxDeformation()
	for x := 0; x < s.Width; x++ {
		for y := 0; y < s.Height; y++ {
			d := render.Normalize(s.Damage(x, y), maxDamage)
			if d > 0 {
				bx, by := w.project(float64(x)+0.35, float64(y)+0.5, 0)
				tx, ty := w.project(float64(x)+0.35, float64(y)+0.5, d*w.depth/4)
				vector.StrokeLine(screen, float32(bx), float32(by), float32(tx), float32(ty), barWidth, render.Viridis.At(d), true)
			}
			f := render.Normalize(s.Deformation(x, y), maxDeform)
			if f > 0 {
				bx, by := w.project(float64(x)+0.65, float64(y)+0.5, 0)
				tx, ty := w.project(float64(x)+0.65, float64(y)+0.5, f*w.depth/4)
				vector.StrokeLine(screen, float32(bx), float32(by), float32(tx), float32(ty), barWidth, render.CoolWarm.At(f), true)
			}
		}
	}
}

// drawParticles draws every particle above the plate, including those still in
// free flight, skipping those that fragmented in the last step.
func (w *Window) drawParticles(screen *ebiten.Image, s *impact.Surface) {
	report := w.engine.LastStep()
	for i, p := range w.engine.Particles() {
		if !render.Visible(&report, i) {
			continue
		}
		if p.Pos.X < 0 || p.Pos.X > float64(s.Width) || p.Pos.Y < 0 || p.Pos.Y > float64(s.Height) {
			continue
		}
		col, marker := render.Style(p)
		sx, sy := w.project(p.Pos.X, p.Pos.Y, p.Pos.Z)
		r := render.Radius(p.Size) * w.Zoom.Pos
		switch marker {
		case render.Triangle:
			line(screen, sx, sy-r, sx+r, sy+r, col)
			line(screen, sx+r, sy+r, sx-r, sy+r, col)
			line(screen, sx-r, sy+r, sx, sy-r, col)
		default:
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), float32(r), col, true)
		}
	}
}

func line(screen *ebiten.Image, x0, y0, x1, y1 float64, col color.Color) {
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, col, true)
}

// Layout returns the screen size.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}
