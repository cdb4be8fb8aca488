package export

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/olivierh59500/particle-impact-go/impact"
)

// Profiles collapses the damage and deformation fields onto the x axis by
// summing over y.
func Profiles(s *impact.Surface) (xs, damage, deform []float64) {
	xs = make([]float64, s.Width)
	damage = make([]float64, s.Width)
	deform = make([]float64, s.Width)

	dg, fg := s.DamageGrid(), s.DeformationGrid()
	for x := range dg {
		xs[x] = float64(x) + 0.5
		for y := range dg[x] {
			damage[x] += dg[x][y]
			deform[x] += fg[x][y]
		}
	}
	return xs, damage, deform
}

// footprint splits the in-grid particle positions into intact particles and
// fragments.
func footprint(e *impact.Engine) (xs, ys, fxs, fys []float64) {
	s := e.Surface()
	for _, p := range e.Particles() {
		if _, _, ok := s.Cell(p.Pos.X, p.Pos.Y); !ok {
			continue
		}
		if p.Fragment {
			fxs, fys = append(fxs, p.Pos.X), append(fys, p.Pos.Y)
		} else {
			xs, ys = append(xs, p.Pos.X), append(ys, p.Pos.Y)
		}
	}
	return xs, ys, fxs, fys
}

// Report queues two matplotlib figures describing the run: the damage and
// deformation profiles, and the final particle footprint on the plate. The
// figures are written to base+"_profile.png" and base+"_particles.png" once
// the script is run with plt.Execute.
func Report(e *impact.Engine, base string) []string {
	s := e.Surface()
	sum := e.Summary()
	files := []string{base + "_profile.png", base + "_particles.png"}

	plt.Reset()

	xs, damage, deform := Profiles(s)
	plt.Figure()
	plt.Plot(xs, damage, "r", plt.LW(2))
	plt.Plot(xs, deform, "b", plt.LW(2))
	plt.Title(fmt.Sprintf("Total damage %.3g after %d steps", sum.Total, sum.Steps))
	plt.XLabel(`$X$`, plt.FontSize(16))
	plt.YLabel(`Damage (red), deformation (blue)`, plt.FontSize(16))
	plt.XLim(0, float64(s.Width))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(files[0])

	pxs, pys, fxs, fys := footprint(e)
	plt.Figure(plt.FigSize(8, 8))
	if len(pxs) > 0 {
		plt.Plot(pxs, pys, "or")
	}
	if len(fxs) > 0 {
		plt.Plot(fxs, fys, "ok")
	}
	plt.Title(fmt.Sprintf("%d particles, %d fragments", sum.Particles, sum.Fragments))
	plt.XLabel(`$X$`, plt.FontSize(16))
	plt.YLabel(`$Y$`, plt.FontSize(16))
	plt.XLim(0, float64(s.Width))
	plt.YLim(0, float64(s.Height))
	plt.SaveFig(files[1])

	return files
}

// Execute runs the queued matplotlib script.
func Execute() {
	plt.Execute()
}
