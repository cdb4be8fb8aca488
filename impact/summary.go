package impact

import (
	"fmt"
)

// DamageSummary is the post-run analysis of a surface and its swarm.
type DamageSummary struct {
	Total float64 // sum of all damage cells
	Max   float64 // largest single-cell damage
	Mean  float64 // Total / Cells
	Cells int

	TotalDeformation float64
	MaxDeformation   float64

	Particles int
	Fragments int
	Steps     int
	Reason    Reason
}

// Summary computes a DamageSummary. It does not modify the engine.
func (e *Engine) Summary() DamageSummary {
	s := e.surface
	d := DamageSummary{
		Total:            s.TotalDamage(),
		Max:              s.MaxDamage(),
		Cells:            s.Width * s.Height,
		TotalDeformation: s.TotalDeformation(),
		MaxDeformation:   s.MaxDeformation(),
		Particles:        len(e.particles),
		Steps:            e.currentTime,
		Reason:           e.TerminationReason(),
	}
	d.Mean = d.Total / float64(d.Cells)
	for _, p := range e.particles {
		if p.Fragment {
			d.Fragments++
		}
	}
	return d
}

func (d DamageSummary) String() string {
	return fmt.Sprintf(
		"total damage %.4g, max %.4g, mean %.4g over %d cells; "+
			"deformation total %.4g, max %.4g; %d particles (%d fragments) after %d steps",
		d.Total, d.Max, d.Mean, d.Cells, d.TotalDeformation, d.MaxDeformation,
		d.Particles, d.Fragments, d.Steps,
	)
}
