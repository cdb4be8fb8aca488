package impact

import (
	"math"
	"math/rand"
	"time"
)

// Impact constants
const (
	PenetrationStep   = 0.01 // extra depth gained per step inside the surface
	DamagePerImpact   = 0.01 // damage added to a cell per qualifying impact
	DeformationFactor = 0.5  // deformation added per unit of particle size

	MinFragments        = 2 // inclusive
	MaxFragments        = 5 // exclusive
	MinFragmentSize     = 0.01
	FragmentSizeStdDev  = 0.01
	FragmentSpeedStdDev = 0.05
)

// Reason names the condition that ended a run.
type Reason int

const (
	Running Reason = iota
	DamageThresholdReached
	StepBudgetExhausted
	WallClockCapReached
)

func (r Reason) String() string {
	switch r {
	case DamageThresholdReached:
		return "damage threshold reached"
	case StepBudgetExhausted:
		return "simulation time limit exceeded"
	case WallClockCapReached:
		return "wall clock cap reached"
	}
	return "running"
}

// StepReport describes what happened during a single Step.
type StepReport struct {
	Impacts     int   // particles that damaged a cell
	OutOfBounds int   // in-surface particles that left the grid in x or y
	Fragmented  []int // indices of particles that fragmented this step
	Spawned     int   // fragments appended this step
}

// JustFragmented reports whether particle i fragmented during the step.
func (r *StepReport) JustFragmented(i int) bool {
	for _, j := range r.Fragmented {
		if j == i {
			return true
		}
	}
	return false
}

// Engine advances a swarm of particles against a surface. It is not safe for
// concurrent use: one goroutine owns it and calls Step to completion before
// the next call.
type Engine struct {
	surface   *Surface
	particles []*Particle

	damageThreshold float64
	simulationTime  int
	currentTime     int
	wallClockCap    time.Duration
	deformEachStep  bool

	start time.Time
	now   func() time.Time
	rng   *rand.Rand

	last StepReport
	err  error
}

// NewEngine takes ownership of surface and particles. The surface geometry
// comes from surface; cfg supplies the limits and options. A nil rng is
// replaced with a clock-seeded source.
func NewEngine(surface *Surface, particles []*Particle, cfg Config, rng *rand.Rand) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if surface == nil {
		return nil, &ConfigError{"Surface", nil, "must not be nil"}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &Engine{
		surface:         surface,
		particles:       particles,
		damageThreshold: cfg.DamageThreshold,
		simulationTime:  cfg.SimulationTimeSteps,
		wallClockCap:    cfg.WallClockCap,
		deformEachStep:  cfg.DeformEachStep,
		now:             time.Now,
		rng:             rng,
	}
	e.start = e.now()
	return e, nil
}

// Surface returns the impacted surface. Callers must not mutate it.
func (e *Engine) Surface() *Surface { return e.surface }

// Particles returns the particle collection in insertion order. Callers must
// not mutate it.
func (e *Engine) Particles() []*Particle { return e.particles }

// CurrentTime returns the number of completed steps.
func (e *Engine) CurrentTime() int { return e.currentTime }

// LastStep returns the report of the most recent Step.
func (e *Engine) LastStep() StepReport { return e.last }

// Step advances every particle that has reached the surface by one frame,
// accumulates damage and spawns fragments. Fragments appended during a step
// are first visited by the next one, including by the deformation pass.
func (e *Engine) Step() error {
	if e.err != nil {
		return e.err
	}

	s := e.surface
	var report StepReport

	n := len(e.particles)
	for i := 0; i < n; i++ {
		p := e.particles[i]
		if !p.InSurface(s.Thickness) {
			continue // free flight
		}

		p.Pos = p.Pos.Add(p.Vel)
		p.Pos.Z += PenetrationStep

		x, y, ok := s.Cell(p.Pos.X, p.Pos.Y)
		if !ok {
			report.OutOfBounds++
			continue
		}
		if err := s.AccumulateDamage(x, y, DamagePerImpact); err != nil {
			e.err = err
			return err
		}
		report.Impacts++

		if s.Damage(x, y) >= p.Size && !p.Fragment {
			report.Spawned += e.fragment(p)
			report.Fragmented = append(report.Fragmented, i)
		}
	}

	if e.deformEachStep {
		if err := e.deform(n); err != nil {
			e.err = err
			return err
		}
	}

	e.currentTime++
	e.last = report
	return nil
}

// fragment marks p as fragmented and appends its children.
func (e *Engine) fragment(p *Particle) int {
	p.Fragment = true

	count := MinFragments + e.rng.Intn(MaxFragments-MinFragments)
	for k := 0; k < count; k++ {
		vel := Vec3{
			e.rng.NormFloat64() * FragmentSpeedStdDev,
			e.rng.NormFloat64() * FragmentSpeedStdDev,
			e.rng.NormFloat64() * FragmentSpeedStdDev,
		}
		size := math.Max(MinFragmentSize, p.Size/2+e.rng.NormFloat64()*FragmentSizeStdDev)
		e.particles = append(e.particles, &Particle{
			Pos:      p.Pos,
			Vel:      vel,
			Size:     size,
			Fragment: true,
			Kind:     Normal,
		})
	}
	return count
}

// CalculateDeformation adds Size*DeformationFactor to the cell under every
// particle inside the surface. Each call accumulates again, so it must run at
// most once per step; NewEngine arranges that when Config.DeformEachStep is
// set.
func (e *Engine) CalculateDeformation() error {
	return e.deform(len(e.particles))
}

// deform runs the deformation pass over the first n particles.
func (e *Engine) deform(n int) error {
	s := e.surface
	for _, p := range e.particles[:n] {
		if !p.InSurface(s.Thickness) {
			continue
		}
		x, y, ok := s.Cell(p.Pos.X, p.Pos.Y)
		if !ok {
			continue
		}
		if err := s.AccumulateDeformation(x, y, p.Size*DeformationFactor); err != nil {
			return err
		}
	}
	return nil
}

// TerminationReason returns the first limit the run has hit, or Running.
func (e *Engine) TerminationReason() Reason {
	switch {
	case e.surface.TotalDamage() >= e.damageThreshold:
		return DamageThresholdReached
	case e.currentTime >= e.simulationTime:
		return StepBudgetExhausted
	case e.wallClockCap > 0 && e.now().Sub(e.start) >= e.wallClockCap:
		return WallClockCapReached
	}
	return Running
}

// Terminated reports whether the run should stop.
func (e *Engine) Terminated() bool {
	return e.TerminationReason() != Running
}

// Run steps the engine until it terminates, calling observe after each step
// when it is non-nil. It returns the number of steps taken.
func (e *Engine) Run(observe func(*Engine)) (int, error) {
	steps := 0
	for !e.Terminated() {
		if err := e.Step(); err != nil {
			return steps, err
		}
		steps++
		if observe != nil {
			observe(e)
		}
	}
	return steps, nil
}
