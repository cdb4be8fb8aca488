package menu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/particle-impact-go/impact"
)

// recorder is a RunFunc that remembers the configurations it was given.
type recorder struct {
	cfgs []impact.Config
	done bool
	err  error
}

func (r *recorder) run(cfg impact.Config) (bool, error) {
	r.cfgs = append(r.cfgs, cfg)
	return r.done, r.err
}

func TestMenuExit(t *testing.T) {
	out := &bytes.Buffer{}
	rec := &recorder{}
	require.NoError(t, New(strings.NewReader("3\n"), out, impact.DefaultConfig(), rec.run).Loop())

	assert.Contains(t, out.String(), "1. Start Simulation")
	assert.Contains(t, out.String(), "Exiting...")
	assert.Empty(t, rec.cfgs)
}

func TestMenuInvalidChoice(t *testing.T) {
	out := &bytes.Buffer{}
	rec := &recorder{}
	require.NoError(t, New(strings.NewReader("7\nstart\n3\n"), out, impact.DefaultConfig(), rec.run).Loop())

	assert.Equal(t, 2, strings.Count(out.String(), "Invalid choice. Please try again."))
	assert.Equal(t, 3, strings.Count(out.String(), "Enter your choice: "))
}

func TestMenuEOF(t *testing.T) {
	out := &bytes.Buffer{}
	require.NoError(t, New(strings.NewReader(""), out, impact.DefaultConfig(), (&recorder{}).run).Loop())
	assert.Contains(t, out.String(), "Exiting...")
}

func TestMenuRunUntilTerminated(t *testing.T) {
	rec := &recorder{}
	m := New(strings.NewReader("1\n1\n3\n"), &bytes.Buffer{}, impact.DefaultConfig(), rec.run)
	require.NoError(t, m.Loop())
	// Neither run terminated, so the menu came back both times.
	assert.Len(t, rec.cfgs, 2)

	rec = &recorder{done: true}
	m = New(strings.NewReader("1\n1\n3\n"), &bytes.Buffer{}, impact.DefaultConfig(), rec.run)
	require.NoError(t, m.Loop())
	assert.Len(t, rec.cfgs, 1)
}

func TestMenuRunError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{err: boom}
	err := New(strings.NewReader("1\n"), &bytes.Buffer{}, impact.DefaultConfig(), rec.run).Loop()
	assert.Equal(t, boom, err)
}

func TestMenuCustomizeThenStart(t *testing.T) {
	answers := "25\n" + strings.Repeat("\n", 10)
	rec := &recorder{}
	m := New(strings.NewReader("2\n"+answers+"1\n3\n"), &bytes.Buffer{}, impact.DefaultConfig(), rec.run)
	require.NoError(t, m.Loop())

	require.Len(t, rec.cfgs, 1)
	assert.Equal(t, 25, rec.cfgs[0].SurfaceWidth)
	assert.Equal(t, 10, rec.cfgs[0].SurfaceHeight)
	assert.Equal(t, 25, m.Config().SurfaceWidth)
}
