package menu

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/particle-impact-go/export"
	"github.com/olivierh59500/particle-impact-go/impact"
)

func smallConfig() impact.Config {
	cfg := impact.DefaultConfig()
	cfg.ParticleCount = 50
	cfg.SimulationTimeSteps = 40
	cfg.Seed = 8
	return cfg
}

func TestRunnerHeadless(t *testing.T) {
	dir := t.TempDir()
	out := &bytes.Buffer{}
	r := &Runner{
		Driver:    Headless,
		Out:       out,
		CSVPath:   filepath.Join(dir, "simulation_data.csv"),
		TablePath: filepath.Join(dir, "damage.dat"),
	}

	done, err := r.Run(smallConfig())
	require.NoError(t, err)
	assert.True(t, done)
	assert.Contains(t, out.String(), "Simulation terminated.")
	assert.Contains(t, out.String(), "simulation time limit exceeded")

	data, err := os.ReadFile(r.CSVPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "X,Y,Z,Damage", lines[0])
	assert.Len(t, lines, 1+10*10)

	s, err := export.ReadTable(r.TablePath, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 10, s.Height)
}

func TestRunnerClosedEarly(t *testing.T) {
	steps := 0
	r := &Runner{
		Driver: func(e *impact.Engine) (bool, error) {
			for i := 0; i < 5; i++ {
				require.NoError(t, e.Step())
				steps++
			}
			return true, nil
		},
		Out: &bytes.Buffer{},
	}

	done, err := r.Run(smallConfig())
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 5, steps)
}

func TestRunnerInvalidConfig(t *testing.T) {
	out := &bytes.Buffer{}
	r := &Runner{Driver: Headless, Out: out}

	cfg := smallConfig()
	cfg.SurfaceThickness = 0
	done, err := r.Run(cfg)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Contains(t, out.String(), "Cannot start simulation")
	assert.Contains(t, out.String(), "SurfaceThickness")
}
