package impact

import (
	"time"
)

// Config holds the parameters of one simulation run. It is a value: callers
// derive new configurations instead of mutating a shared one.
type Config struct {
	SurfaceWidth     int
	SurfaceHeight    int
	SurfaceThickness float64
	Material         string

	ParticleCount          int
	MaxSpeed               float64 // z speed of the primary particle
	ParticleSizeMean       float64
	ParticleSizeStdDev     float64
	ParticleVelocityMean   float64
	ParticleVelocityStdDev float64

	DamageThreshold     float64 // total damage that ends the run
	SimulationTimeSteps int     // step budget

	WallClockCap   time.Duration // 0 disables the real-time limit
	DeformEachStep bool          // run CalculateDeformation at the end of every Step
	Seed           int64         // 0 seeds from the clock
}

// DefaultConfig returns the stock scenario: a 10x10 plate hit by 500 particles.
func DefaultConfig() Config {
	return Config{
		SurfaceWidth:     10,
		SurfaceHeight:    10,
		SurfaceThickness: 1,
		Material:         "stealth",

		ParticleCount:          500,
		MaxSpeed:               0.1,
		ParticleSizeMean:       0.05,
		ParticleSizeStdDev:     0.02,
		ParticleVelocityMean:   0.05,
		ParticleVelocityStdDev: 0.02,

		DamageThreshold:     500,
		SimulationTimeSteps: 1000,

		DeformEachStep: true,
	}
}

// Validate returns a *ConfigError for the first parameter outside its range.
func (c Config) Validate() error {
	switch {
	case c.SurfaceWidth <= 0:
		return &ConfigError{"SurfaceWidth", c.SurfaceWidth, "must be positive"}
	case c.SurfaceHeight <= 0:
		return &ConfigError{"SurfaceHeight", c.SurfaceHeight, "must be positive"}
	case !(c.SurfaceThickness > 0):
		return &ConfigError{"SurfaceThickness", c.SurfaceThickness, "must be positive"}
	case c.ParticleCount < 1:
		return &ConfigError{"ParticleCount", c.ParticleCount, "must be at least 1"}
	case !(c.MaxSpeed > 0):
		return &ConfigError{"MaxSpeed", c.MaxSpeed, "must be positive"}
	case !(c.ParticleSizeStdDev >= 0):
		return &ConfigError{"ParticleSizeStdDev", c.ParticleSizeStdDev, "must not be negative"}
	case !(c.ParticleVelocityStdDev >= 0):
		return &ConfigError{"ParticleVelocityStdDev", c.ParticleVelocityStdDev, "must not be negative"}
	case !(c.DamageThreshold > 0):
		return &ConfigError{"DamageThreshold", c.DamageThreshold, "must be positive"}
	case c.SimulationTimeSteps <= 0:
		return &ConfigError{"SimulationTimeSteps", c.SimulationTimeSteps, "must be positive"}
	case c.WallClockCap < 0:
		return &ConfigError{"WallClockCap", c.WallClockCap, "must not be negative"}
	}
	return nil
}
