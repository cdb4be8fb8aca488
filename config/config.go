// Package config reads impact scenarios from INI or TOML files and from
// interactive prompts.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/gcfg.v1"

	"github.com/olivierh59500/particle-impact-go/impact"
)

// File is the layout of a scenario file:
//
//	[surface]
//	width = 10
//	height = 10
//	thickness = 1
//	material = stealth
//
//	[particles]
//	count = 500
//	maxSpeed = 0.1
//	sizeMean = 0.05
//	sizeStdDev = 0.02
//	velocityMean = 0.05
//	velocityStdDev = 0.02
//
//	[run]
//	damageThreshold = 500
//	steps = 1000
//	wallClockSeconds = 0
//	deformEachStep = true
//	seed = 0
//
// Files ending in .toml use the same sections and keys in TOML syntax.
// Missing variables keep their default values.
type File struct {
	Surface struct {
		Width, Height int
		Thickness     float64
		Material      string
	}
	Particles struct {
		Count          int
		MaxSpeed       float64
		SizeMean       float64
		SizeStdDev     float64
		VelocityMean   float64
		VelocityStdDev float64
	}
	Run struct {
		DamageThreshold  float64
		Steps            int
		WallClockSeconds float64
		DeformEachStep   bool
		Seed             int64
	}
}

func fileFromConfig(cfg impact.Config) *File {
	f := &File{}
	f.Surface.Width = cfg.SurfaceWidth
	f.Surface.Height = cfg.SurfaceHeight
	f.Surface.Thickness = cfg.SurfaceThickness
	f.Surface.Material = cfg.Material

	f.Particles.Count = cfg.ParticleCount
	f.Particles.MaxSpeed = cfg.MaxSpeed
	f.Particles.SizeMean = cfg.ParticleSizeMean
	f.Particles.SizeStdDev = cfg.ParticleSizeStdDev
	f.Particles.VelocityMean = cfg.ParticleVelocityMean
	f.Particles.VelocityStdDev = cfg.ParticleVelocityStdDev

	f.Run.DamageThreshold = cfg.DamageThreshold
	f.Run.Steps = cfg.SimulationTimeSteps
	f.Run.WallClockSeconds = cfg.WallClockCap.Seconds()
	f.Run.DeformEachStep = cfg.DeformEachStep
	f.Run.Seed = cfg.Seed
	return f
}

// Config converts the file contents into a scenario configuration.
func (f *File) Config() impact.Config {
	return impact.Config{
		SurfaceWidth:     f.Surface.Width,
		SurfaceHeight:    f.Surface.Height,
		SurfaceThickness: f.Surface.Thickness,
		Material:         f.Surface.Material,

		ParticleCount:          f.Particles.Count,
		MaxSpeed:               f.Particles.MaxSpeed,
		ParticleSizeMean:       f.Particles.SizeMean,
		ParticleSizeStdDev:     f.Particles.SizeStdDev,
		ParticleVelocityMean:   f.Particles.VelocityMean,
		ParticleVelocityStdDev: f.Particles.VelocityStdDev,

		DamageThreshold:     f.Run.DamageThreshold,
		SimulationTimeSteps: f.Run.Steps,
		WallClockCap:        time.Duration(f.Run.WallClockSeconds * float64(time.Second)),
		DeformEachStep:      f.Run.DeformEachStep,
		Seed:                f.Run.Seed,
	}
}

// Load reads the scenario file fname on top of impact.DefaultConfig. The
// format is chosen by extension: .toml is TOML, anything else is INI.
func Load(fname string) (impact.Config, error) {
	f := fileFromConfig(impact.DefaultConfig())
	if strings.EqualFold(filepath.Ext(fname), ".toml") {
		md, err := toml.DecodeFile(fname, f)
		if err != nil {
			return impact.Config{}, fmt.Errorf("reading scenario '%s': %w", fname, err)
		}
		if err := undecoded(md); err != nil {
			return impact.Config{}, fmt.Errorf("reading scenario '%s': %w", fname, err)
		}
		return checked(f.Config())
	}

	if err := gcfg.ReadFileInto(f, fname); err != nil {
		return impact.Config{}, fmt.Errorf("reading scenario '%s': %w", fname, err)
	}
	return checked(f.Config())
}

// ParseTOML reads TOML scenario text on top of impact.DefaultConfig.
func ParseTOML(text string) (impact.Config, error) {
	f := fileFromConfig(impact.DefaultConfig())
	md, err := toml.Decode(text, f)
	if err != nil {
		return impact.Config{}, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := undecoded(md); err != nil {
		return impact.Config{}, fmt.Errorf("parsing scenario: %w", err)
	}
	return checked(f.Config())
}

// undecoded rejects keys that match no scenario variable, as gcfg does.
func undecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("unknown variable '%s'", keys[0])
	}
	return nil
}

// Parse reads scenario text on top of impact.DefaultConfig.
func Parse(text string) (impact.Config, error) {
	f := fileFromConfig(impact.DefaultConfig())
	if err := gcfg.ReadStringInto(f, text); err != nil {
		return impact.Config{}, fmt.Errorf("parsing scenario: %w", err)
	}
	return checked(f.Config())
}

func checked(cfg impact.Config) (impact.Config, error) {
	if err := cfg.Validate(); err != nil {
		return impact.Config{}, err
	}
	return cfg, nil
}
