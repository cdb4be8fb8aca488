package impact

import (
	"math"
	"math/rand"
	"time"
)

// Scenario constants
const (
	PrimarySize        = 0.05
	MinParticleSize    = 0.01
	SpecialProbability = 0.2
	primaryMargin      = 0.2 // primary particle starts in the central 60% of the plate
)

// NewScenario builds the surface and particle swarm described by cfg and
// wraps them in an Engine. The first particle is the primary projectile,
// launched from z=0 straight into the surface at cfg.MaxSpeed; the rest are
// scattered through a cube of side cfg.SurfaceWidth.
//
// When rng is nil the source is seeded from cfg.Seed, or from the clock if
// the seed is zero.
func NewScenario(cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	surface, err := NewSurface(cfg.SurfaceWidth, cfg.SurfaceHeight, cfg.SurfaceThickness, cfg.Material)
	if err != nil {
		return nil, err
	}

	w, h := float64(cfg.SurfaceWidth), float64(cfg.SurfaceHeight)
	particles := make([]*Particle, 0, cfg.ParticleCount)

	particles = append(particles, &Particle{
		Pos: Vec3{
			uniform(rng, w*primaryMargin, w*(1-primaryMargin)),
			uniform(rng, h*primaryMargin, h*(1-primaryMargin)),
			0,
		},
		Vel: Vec3{
			rng.NormFloat64() * cfg.MaxSpeed / 2,
			rng.NormFloat64() * cfg.MaxSpeed / 2,
			cfg.MaxSpeed,
		},
		Size: PrimarySize,
		Kind: Normal,
	})

	for i := 1; i < cfg.ParticleCount; i++ {
		p := &Particle{
			// All three axes scale with the width.
			Pos: Vec3{rng.Float64() * w, rng.Float64() * w, rng.Float64() * w},
			Vel: Vec3{
				normal(rng, cfg.ParticleVelocityMean, cfg.ParticleVelocityStdDev),
				normal(rng, cfg.ParticleVelocityMean, cfg.ParticleVelocityStdDev),
				normal(rng, cfg.ParticleVelocityMean, cfg.ParticleVelocityStdDev),
			},
			Size: math.Max(MinParticleSize, normal(rng, cfg.ParticleSizeMean, cfg.ParticleSizeStdDev)),
			Kind: Normal,
		}
		if rng.Float64() >= 1-SpecialProbability {
			p.Kind = Special
		}
		particles = append(particles, p)
	}

	return NewEngine(surface, particles, cfg, rng)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func normal(rng *rand.Rand, mean, stddev float64) float64 {
	return mean + rng.NormFloat64()*stddev
}
