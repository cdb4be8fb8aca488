package menu

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/olivierh59500/particle-impact-go/export"
	"github.com/olivierh59500/particle-impact-go/impact"
)

// Driver shows a run and advances it until it terminates or the viewer is
// closed. closed reports the latter.
type Driver func(e *impact.Engine) (closed bool, err error)

// Headless steps the engine to termination without drawing anything.
func Headless(e *impact.Engine) (bool, error) {
	_, err := e.Run(nil)
	return false, err
}

// Runner builds an engine for each configuration, drives it and writes the
// requested exports.
type Runner struct {
	Driver Driver
	Out    io.Writer

	CSVPath   string // damage CSV, written after every run when set
	TablePath string // damage/deformation table, written after every run when set
	PlotBase  string // matplotlib report prefix, generated after every run when set
}

// Run implements RunFunc.
func (r *Runner) Run(cfg impact.Config) (bool, error) {
	e, err := impact.NewScenario(cfg, nil)
	if errors.Is(err, impact.ErrInvalidConfiguration) {
		fmt.Fprintf(r.Out, "Cannot start simulation: %v\n", err)
		return false, nil
	} else if err != nil {
		return false, err
	}

	log.Printf("Starting run: %d particles on a %dx%d %s plate, %d steps, damage threshold %g.",
		cfg.ParticleCount, cfg.SurfaceWidth, cfg.SurfaceHeight, cfg.Material,
		cfg.SimulationTimeSteps, cfg.DamageThreshold)

	closed, err := r.Driver(e)
	if err != nil {
		return false, fmt.Errorf("run stopped at step %d: %w", e.CurrentTime(), err)
	}
	if err := r.export(e); err != nil {
		return false, err
	}

	sum := e.Summary()
	if closed && !e.Terminated() {
		log.Printf("Run closed after %d steps: %s.", e.CurrentTime(), sum)
		return false, nil
	}

	fmt.Fprintln(r.Out, "Simulation terminated. Damage threshold reached or simulation time limit exceeded.")
	fmt.Fprintf(r.Out, "Reason: %s\n%s\n", sum.Reason, sum)
	log.Printf("Run ended (%s): %s.", sum.Reason, sum)
	return true, nil
}

func (r *Runner) export(e *impact.Engine) error {
	s := e.Surface()
	if r.CSVPath != "" {
		if err := export.SaveCSV(r.CSVPath, s); err != nil {
			return err
		}
		log.Printf("Damage grid written to %s.", r.CSVPath)
	}
	if r.TablePath != "" {
		if err := export.SaveTable(r.TablePath, s); err != nil {
			return err
		}
		log.Printf("Damage table written to %s.", r.TablePath)
	}
	if r.PlotBase != "" {
		files := export.Report(e, r.PlotBase)
		export.Execute()
		log.Printf("Report figures: %v.", files)
	}
	return nil
}
