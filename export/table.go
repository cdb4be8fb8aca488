package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/olivierh59500/particle-impact-go/impact"
)

// WriteTable writes the surface as a whitespace separated table with one
// "x y damage deformation" row per cell. The first lines are '#' comments
// recording the grid geometry.
func WriteTable(w io.Writer, s *impact.Surface) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# width %d height %d thickness %g material %s\n",
		s.Width, s.Height, s.Thickness, s.Material)
	fmt.Fprintln(bw, "# x y damage deformation")

	damage, deform := s.DamageGrid(), s.DeformationGrid()
	for x := range damage {
		for y := range damage[x] {
			fmt.Fprintf(bw, "%d %d %.17g %.17g\n", x, y, damage[x][y], deform[x][y])
		}
	}
	return bw.Flush()
}

// SaveTable writes the table form of s to fname.
func SaveTable(fname string, s *impact.Surface) error {
	return save(fname, func(w io.Writer) error { return WriteTable(w, s) })
}

// ReadTable rebuilds a surface from a file written by SaveTable. The grid
// extent is taken from the largest indices present; thickness is not
// recorded in the columns and is supplied by the caller.
func ReadTable(fname string, thickness float64) (*impact.Surface, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, err
	}
	xs, ys, damage, deform := cols[0], cols[1], cols[2], cols[3]
	if len(xs) == 0 {
		return nil, fmt.Errorf("damage table '%s' has no rows", fname)
	}

	width, height := 0, 0
	for i := range xs {
		if xs[i] < 0 || ys[i] < 0 || xs[i] != math.Trunc(xs[i]) || ys[i] != math.Trunc(ys[i]) {
			return nil, fmt.Errorf("row %d of '%s' has a bad cell (%g, %g)", i, fname, xs[i], ys[i])
		}
		if int(xs[i])+1 > width {
			width = int(xs[i]) + 1
		}
		if int(ys[i])+1 > height {
			height = int(ys[i]) + 1
		}
	}

	s, err := impact.NewSurface(width, height, thickness, "")
	if err != nil {
		return nil, err
	}
	for i := range xs {
		x, y := int(xs[i]), int(ys[i])
		if err := s.AccumulateDamage(x, y, damage[i]); err != nil {
			return nil, fmt.Errorf("row %d of '%s': %w", i, fname, err)
		}
		if err := s.AccumulateDeformation(x, y, deform[i]); err != nil {
			return nil, fmt.Errorf("row %d of '%s': %w", i, fname, err)
		}
	}
	return s, nil
}
