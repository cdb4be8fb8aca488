package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olivierh59500/particle-impact-go/impact"
)

func TestStyle(t *testing.T) {
	tests := []struct {
		p      impact.Particle
		col    interface{}
		marker Marker
	}{
		{impact.Particle{}, Intact, Circle},
		{impact.Particle{Kind: impact.Special}, Intact, Triangle},
		{impact.Particle{Fragment: true}, Fragment, Circle},
		{impact.Particle{Fragment: true, Kind: impact.Special}, Fragment, Triangle},
	}
	for _, tt := range tests {
		col, marker := Style(&tt.p)
		assert.Equal(t, tt.col, col)
		assert.Equal(t, tt.marker, marker)
	}
}

func TestRadiusGrowsWithSize(t *testing.T) {
	assert.Equal(t, 1.0, Radius(0))
	assert.Less(t, Radius(0.05), Radius(0.5))
}

func TestVisible(t *testing.T) {
	report := &impact.StepReport{Fragmented: []int{2, 5}}
	assert.True(t, Visible(report, 0))
	assert.False(t, Visible(report, 2))
	assert.False(t, Visible(report, 5))
	assert.True(t, Visible(&impact.StepReport{}, 2))
}

func TestRampEndpoints(t *testing.T) {
	assert.Equal(t, Viridis[0], Viridis.At(0))
	assert.Equal(t, Viridis[len(Viridis)-1], Viridis.At(1))
	assert.Equal(t, Viridis[0], Viridis.At(-3))
	assert.Equal(t, CoolWarm[len(CoolWarm)-1], CoolWarm.At(7))
	assert.Equal(t, CoolWarm[2], CoolWarm.At(0.5))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(3, 0))
	assert.Equal(t, 0.5, Normalize(1, 2))
	assert.Equal(t, 1.0, Normalize(5, 2))
}

func TestTexture(t *testing.T) {
	a := NewTexture("stealth", 6, 4)
	b := NewTexture("stealth", 6, 4)
	for x := 0; x < 6; x++ {
		for y := 0; y < 4; y++ {
			assert.Equal(t, a.Shade(x, y), b.Shade(x, y))
			assert.GreaterOrEqual(t, a.Shade(x, y), 0.0)
			assert.LessOrEqual(t, a.Shade(x, y), 1.0)
		}
	}
	assert.Zero(t, a.Shade(6, 0))
	assert.Zero(t, a.Shade(0, -1))
}

func TestCameraFitsPlate(t *testing.T) {
	c := NewCamera(10, 10, 1, 800, 600)
	for _, corner := range [][2]float64{{0, 0}, {10, 0}, {0, 10}, {10, 10}} {
		sx, sy := c.Project(corner[0], corner[1], 0)
		assert.GreaterOrEqual(t, sx, 0.0)
		assert.LessOrEqual(t, sx, 800.0)
		assert.GreaterOrEqual(t, sy, 0.0)
		assert.LessOrEqual(t, sy, 600.0)
	}

	_, low := c.Project(5, 5, 0)
	_, high := c.Project(5, 5, 1)
	assert.Less(t, high, low, "z points up the screen")
	assert.GreaterOrEqual(t, high, 0.0)
}

func TestEaseSettlesOnTarget(t *testing.T) {
	e := NewEase(1)
	assert.Equal(t, 1.0, e.Step())

	e.Target = 2
	first := e.Step()
	assert.Greater(t, first, 1.0)
	assert.Less(t, first, 2.0)

	for i := 0; i < 200; i++ {
		e.Step()
	}
	assert.InDelta(t, 2, e.Pos, 1e-3)
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 1.0, Depth(nil, 1))
	ps := []*impact.Particle{
		{Pos: impact.Vec3{Z: 0.5}},
		{Pos: impact.Vec3{Z: 7.5}},
		{Pos: impact.Vec3{Z: 3}},
	}
	assert.Equal(t, 7.5, Depth(ps, 1))
	assert.Equal(t, 9.0, Depth(ps, 9))
}
