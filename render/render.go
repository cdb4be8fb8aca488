// Package render holds the drawing policy shared by the window and terminal
// views: particle colours and markers, height-field colour ramps, the
// surface material texture and the 3D projection.
package render

import (
	"hash/fnv"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/harmonica"

	"github.com/olivierh59500/particle-impact-go/impact"
)

// Frame constants
const (
	FramesPerSecond = 20 // one Step per frame, 50ms apart
	MarkerScale     = 100.0
)

var (
	Intact   = color.RGBA{220, 30, 30, 255} // red
	Fragment = color.RGBA{0, 0, 0, 255}     // black
)

// Marker is the glyph a particle is drawn with.
type Marker int

const (
	Circle Marker = iota
	Triangle
)

// Style returns the colour and marker for p.
func Style(p *impact.Particle) (color.RGBA, Marker) {
	col := Intact
	if p.Fragment {
		col = Fragment
	}
	if p.Kind == impact.Special {
		return col, Triangle
	}
	return col, Circle
}

// Radius converts a particle size into a marker radius in pixels. The marker
// area is proportional to the size.
func Radius(size float64) float64 {
	return math.Max(1, math.Sqrt(size*MarkerScale/math.Pi)*2)
}

// Visible reports whether particle i is drawn this frame. A particle that
// fragmented during the last step is skipped for that frame only.
func Visible(report *impact.StepReport, i int) bool {
	return !report.JustFragmented(i)
}

// Depth returns the height of the view volume: the plate thickness or the
// highest particle, whichever is larger.
func Depth(ps []*impact.Particle, thickness float64) float64 {
	d := thickness
	for _, p := range ps {
		if p.Pos.Z > d {
			d = p.Pos.Z
		}
	}
	return d
}

// ramp is a piecewise linear colour map over [0, 1].
type ramp []color.RGBA

var (
	// Viridis shades the damage field.
	Viridis = ramp{
		{68, 1, 84, 255},
		{59, 82, 139, 255},
		{33, 145, 140, 255},
		{94, 201, 98, 255},
		{253, 231, 37, 255},
	}
	// CoolWarm shades the deformation field.
	CoolWarm = ramp{
		{59, 76, 192, 255},
		{141, 176, 254, 255},
		{221, 221, 221, 255},
		{244, 154, 123, 255},
		{180, 4, 38, 255},
	}
)

// At returns the colour at t, clamped to [0, 1].
func (r ramp) At(t float64) color.RGBA {
	t = clamp(t)
	pos := t * float64(len(r)-1)
	i := int(pos)
	if i >= len(r)-1 {
		return r[len(r)-1]
	}
	f := pos - float64(i)
	a, b := r[i], r[i+1]
	return color.RGBA{
		lerp(a.R, b.R, f), lerp(a.G, b.G, f), lerp(a.B, b.B, f), 255,
	}
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}

func clamp(t float64) float64 {
	if !(t > 0) {
		return 0
	} else if t > 1 {
		return 1
	}
	return t
}

// Normalize maps v onto [0, 1] relative to peak. A zero peak maps everything
// to zero.
func Normalize(v, peak float64) float64 {
	if !(peak > 0) {
		return 0
	}
	return clamp(v / peak)
}

// Texture is per-cell perlin noise used to shade the bare plate so that
// different materials look different.
type Texture struct {
	Width, Height int
	shade         []float64
}

// Perlin parameters for the material texture.
const (
	perlinAlpha  = 2.0
	perlinBeta   = 2.0
	perlinOctave = 3
	textureScale = 4.0 // cells per noise period
)

// NewTexture computes the texture of a width x height plate made of the
// named material. The same material always gives the same texture.
func NewTexture(material string, width, height int) *Texture {
	h := fnv.New64a()
	h.Write([]byte(material))
	p := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctave, int64(h.Sum64()))

	t := &Texture{width, height, make([]float64, width*height)}
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			n := p.Noise2D(float64(x)/textureScale, float64(y)/textureScale)
			t.shade[x*height+y] = clamp(0.5 + n/2)
		}
	}
	return t
}

// Shade returns the texture value of cell (x, y) in [0, 1].
func (t *Texture) Shade(x, y int) float64 {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return 0
	}
	return t.shade[x*t.Height+y]
}

// Plate returns the base colour of cell (x, y): a grey whose lightness
// follows the texture.
func (t *Texture) Plate(x, y int) color.RGBA {
	g := uint8(150 + 60*t.Shade(x, y))
	return color.RGBA{g, g, g, 255}
}

// Camera projects simulation coordinates onto the screen with an isometric
// view: the plate lies in the x-y plane and z points up the screen.
type Camera struct {
	OX, OY float64 // screen position of the plate origin
	Scale  float64 // pixels per grid unit in x and y
	ZScale float64 // pixels per unit of z
}

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

// NewCamera fits a width x height plate, and heights up to zMax, into a
// screenW x screenH image.
func NewCamera(width, height int, zMax float64, screenW, screenH int) Camera {
	const margin = 0.1
	w, h := float64(width), float64(height)
	sw, sh := float64(screenW)*(1-2*margin), float64(screenH)*(1-2*margin)

	// The projected plate spans (w+h)cos30 across and (w+h)sin30 down; half
	// of the height is left for z.
	scale := math.Min(sw/((w+h)*cos30), sh/2/((w+h)*sin30))
	zScale := sh / 2
	if zMax > 0 {
		zScale /= zMax
	}
	return Camera{
		OX:     float64(screenW)*margin + h*cos30*scale,
		OY:     float64(screenH)*(1-margin) - (w+h)*sin30*scale,
		Scale:  scale,
		ZScale: zScale,
	}
}

// Project returns the screen position of the point (x, y, z).
func (c Camera) Project(x, y, z float64) (sx, sy float64) {
	sx = c.OX + (x-y)*cos30*c.Scale
	sy = c.OY + (x+y)*sin30*c.Scale - z*c.ZScale
	return sx, sy
}

// Spring parameters for view easing.
const (
	easeFrequency = 6.0
	easeDamping   = 1.0 // critically damped
)

// Ease moves a view parameter such as the zoom towards its target on a
// spring, one frame at a time.
type Ease struct {
	spring harmonica.Spring
	Pos    float64
	Target float64
	vel    float64
}

// NewEase returns an Ease at rest at pos.
func NewEase(pos float64) *Ease {
	return &Ease{
		spring: harmonica.NewSpring(harmonica.FPS(FramesPerSecond), easeFrequency, easeDamping),
		Pos:    pos,
		Target: pos,
	}
}

// Step advances the spring by one frame and returns the new position.
func (e *Ease) Step() float64 {
	e.Pos, e.vel = e.spring.Update(e.Pos, e.vel, e.Target)
	return e.Pos
}
