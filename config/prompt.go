package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olivierh59500/particle-impact-go/impact"
)

// field is one prompted parameter. get renders the current value for the
// bracketed default and set parses and checks a replacement.
type field struct {
	label string
	get   func(c *impact.Config) string
	set   func(c *impact.Config, s string) error
}

var fields = []field{
	intField("surface width", 1, func(c *impact.Config) *int { return &c.SurfaceWidth }),
	intField("surface height", 1, func(c *impact.Config) *int { return &c.SurfaceHeight }),
	floatField("surface thickness", positive, func(c *impact.Config) *float64 { return &c.SurfaceThickness }),
	intField("number of particles", 1, func(c *impact.Config) *int { return &c.ParticleCount }),
	floatField("maximum particle speed", positive, func(c *impact.Config) *float64 { return &c.MaxSpeed }),
	floatField("mean particle size", unbounded, func(c *impact.Config) *float64 { return &c.ParticleSizeMean }),
	floatField("particle size standard deviation", nonNegative, func(c *impact.Config) *float64 { return &c.ParticleSizeStdDev }),
	floatField("mean particle velocity", unbounded, func(c *impact.Config) *float64 { return &c.ParticleVelocityMean }),
	floatField("particle velocity standard deviation", nonNegative, func(c *impact.Config) *float64 { return &c.ParticleVelocityStdDev }),
	floatField("damage threshold", positive, func(c *impact.Config) *float64 { return &c.DamageThreshold }),
	intField("simulation time", 1, func(c *impact.Config) *int { return &c.SimulationTimeSteps }),
}

type bound int

const (
	unbounded bound = iota
	nonNegative
	positive
)

func (b bound) check(x float64) error {
	switch {
	case b == positive && !(x > 0):
		return fmt.Errorf("must be positive")
	case b == nonNegative && !(x >= 0):
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func intField(label string, least int, ptr func(*impact.Config) *int) field {
	return field{
		label: label,
		get:   func(c *impact.Config) string { return strconv.Itoa(*ptr(c)) },
		set: func(c *impact.Config, s string) error {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("'%s' is not a whole number", s)
			}
			if n < least {
				return fmt.Errorf("must be at least %d", least)
			}
			*ptr(c) = n
			return nil
		},
	}
}

func floatField(label string, b bound, ptr func(*impact.Config) *float64) field {
	return field{
		label: label,
		get:   func(c *impact.Config) string { return strconv.FormatFloat(*ptr(c), 'g', -1, 64) },
		set: func(c *impact.Config, s string) error {
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("'%s' is not a number", s)
			}
			if err := b.check(x); err != nil {
				return err
			}
			*ptr(c) = x
			return nil
		},
	}
}

// Prompt asks for every scenario parameter in turn, showing the value from
// base in brackets. An empty answer keeps that value and a malformed one is
// asked again. base is not modified; the answers are returned as a new
// configuration. The only error is a failure to read from in, such as io.EOF.
func Prompt(in *bufio.Reader, out io.Writer, base impact.Config) (impact.Config, error) {
	cfg := base
	for _, f := range fields {
		for {
			fmt.Fprintf(out, "Enter %s [%s]: ", f.label, f.get(&cfg))
			line, err := in.ReadString('\n')
			line = strings.TrimSpace(line)
			if err != nil && (err != io.EOF || line == "") {
				return base, err
			}
			if line == "" {
				break
			}
			if serr := f.set(&cfg, line); serr != nil {
				fmt.Fprintf(out, "Invalid %s: %v. Please try again.\n", f.label, serr)
				if err == io.EOF {
					return base, err
				}
				continue
			}
			break
		}
	}
	return cfg, nil
}
