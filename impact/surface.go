package impact

import (
	"fmt"
)

// Surface is the impacted plate: a Width x Height grid of cumulative damage
// and deformation. Cells are stored x-outer, so cell (x, y) lives at
// x*Height + y.
type Surface struct {
	Width, Height int
	Thickness     float64 // particles with Z < Thickness are inside the surface
	Material      string

	damage      []float64
	deformation []float64
}

// NewSurface allocates a zeroed surface.
func NewSurface(width, height int, thickness float64, material string) (*Surface, error) {
	switch {
	case width <= 0:
		return nil, &ConfigError{"SurfaceWidth", width, "must be positive"}
	case height <= 0:
		return nil, &ConfigError{"SurfaceHeight", height, "must be positive"}
	case !(thickness > 0):
		return nil, &ConfigError{"SurfaceThickness", thickness, "must be positive"}
	}

	return &Surface{
		Width:       width,
		Height:      height,
		Thickness:   thickness,
		Material:    material,
		damage:      make([]float64, width*height),
		deformation: make([]float64, width*height),
	}, nil
}

// Cell maps a real-valued position to its grid cell. ok is false when the
// position lies outside [0, Width) x [0, Height). Indices truncate toward zero.
func (s *Surface) Cell(px, py float64) (x, y int, ok bool) {
	if !(px >= 0 && px < float64(s.Width) && py >= 0 && py < float64(s.Height)) {
		return 0, 0, false
	}
	return int(px), int(py), true
}

func (s *Surface) index(x, y int) (int, error) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return 0, &GridIndexError{x, y, s.Width, s.Height}
	}
	return x*s.Height + y, nil
}

// AccumulateDamage adds amount to the damage of cell (x, y).
func (s *Surface) AccumulateDamage(x, y int, amount float64) error {
	return s.accumulate(s.damage, "damage", x, y, amount)
}

// AccumulateDeformation adds amount to the deformation of cell (x, y).
func (s *Surface) AccumulateDeformation(x, y int, amount float64) error {
	return s.accumulate(s.deformation, "deformation", x, y, amount)
}

func (s *Surface) accumulate(grid []float64, name string, x, y int, amount float64) error {
	i, err := s.index(x, y)
	if err != nil {
		return err
	}
	// Cells only ever grow.
	if amount < 0 {
		return fmt.Errorf("impact: negative %s amount %g at (%d, %d)", name, amount, x, y)
	}
	grid[i] += amount
	return nil
}

// Damage returns the damage of cell (x, y), or 0 off the grid.
func (s *Surface) Damage(x, y int) float64 {
	i, err := s.index(x, y)
	if err != nil {
		return 0
	}
	return s.damage[i]
}

// Deformation returns the deformation of cell (x, y), or 0 off the grid.
func (s *Surface) Deformation(x, y int) float64 {
	i, err := s.index(x, y)
	if err != nil {
		return 0
	}
	return s.deformation[i]
}

// DamageGrid returns a copy of the damage field indexed [x][y].
func (s *Surface) DamageGrid() [][]float64 { return s.grid(s.damage) }

// DeformationGrid returns a copy of the deformation field indexed [x][y].
func (s *Surface) DeformationGrid() [][]float64 { return s.grid(s.deformation) }

func (s *Surface) grid(cells []float64) [][]float64 {
	out := make([][]float64, s.Width)
	for x := range out {
		out[x] = make([]float64, s.Height)
		copy(out[x], cells[x*s.Height:(x+1)*s.Height])
	}
	return out
}

// TotalDamage sums the damage field.
func (s *Surface) TotalDamage() float64 { return sum(s.damage) }

// TotalDeformation sums the deformation field.
func (s *Surface) TotalDeformation() float64 { return sum(s.deformation) }

// MaxDamage returns the largest single-cell damage.
func (s *Surface) MaxDamage() float64 { return maxOf(s.damage) }

// MaxDeformation returns the largest single-cell deformation.
func (s *Surface) MaxDeformation() float64 { return maxOf(s.deformation) }

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func maxOf(xs []float64) float64 {
	m := 0.0
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}
