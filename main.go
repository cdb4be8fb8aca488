package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/olivierh59500/particle-impact-go/config"
	"github.com/olivierh59500/particle-impact-go/export"
	"github.com/olivierh59500/particle-impact-go/impact"
	"github.com/olivierh59500/particle-impact-go/menu"
	"github.com/olivierh59500/particle-impact-go/render/terminal"
	"github.com/olivierh59500/particle-impact-go/render/window"
)

const windowTitle = "Particle Impact Simulation"

func main() {
	var (
		logPath, configPath, renderer string
		csvPath, tablePath, plotBase  string
		summarizePath                 string
		thickness                     float64
	)

	flag.StringVar(&logPath, "log", "",
		"Location to write log statements to. Default is stderr.")
	flag.StringVar(&configPath, "config", "",
		"Scenario file (INI, or TOML with a .toml extension) to start from. Default is the built-in scenario.")
	flag.StringVar(&renderer, "renderer", "window",
		"How runs are shown: window, terminal or none.")
	flag.StringVar(&csvPath, "csv", "simulation_data.csv",
		"Damage CSV written after each run. Empty disables it.")
	flag.StringVar(&tablePath, "table", "",
		"Damage/deformation table written after each run.")
	flag.StringVar(&plotBase, "plot", "",
		"Prefix of the matplotlib report figures generated after each run.")
	flag.StringVar(&summarizePath, "summarize", "",
		"Print the damage summary of a table written with -table and exit.")
	flag.Float64Var(&thickness, "thickness", 1,
		"Surface thickness assumed by -summarize.")
	flag.Parse()

	if logPath != "" {
		if lf, err := os.Create(logPath); err != nil {
			log.Fatalln(err.Error())
		} else {
			log.SetOutput(lf)
			defer lf.Close()
		}
	}

	if summarizePath != "" {
		if err := summarize(summarizePath, thickness); err != nil {
			log.Fatal(err.Error())
		}
		return
	}

	cfg := impact.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal(err.Error())
		}
	}

	driver, err := newDriver(renderer)
	if err != nil {
		log.Fatal(err.Error())
	}

	r := &menu.Runner{
		Driver:    driver,
		Out:       os.Stdout,
		CSVPath:   csvPath,
		TablePath: tablePath,
		PlotBase:  plotBase,
	}
	if err := menu.New(os.Stdin, os.Stdout, cfg, r.Run).Loop(); err != nil {
		log.Fatal(err.Error())
	}
}

// newDriver returns the driver for the named renderer.
func newDriver(name string) (menu.Driver, error) {
	switch name {
	case "window":
		// Ebiten allows one window per process; later runs use the terminal.
		opened := false
		return func(e *impact.Engine) (bool, error) {
			if opened {
				log.Println("Window already used by this process, showing the run in the terminal.")
				return terminal.Run(e)
			}
			opened = true
			return window.Run(e, windowTitle)
		}, nil
	case "terminal":
		return terminal.Run, nil
	case "none":
		return menu.Headless, nil
	}
	return nil, fmt.Errorf(
		"Renderer '%s' is not one of window, terminal or none.", name,
	)
}

func summarize(fname string, thickness float64) error {
	s, err := export.ReadTable(fname, thickness)
	if err != nil {
		return err
	}
	cfg := impact.DefaultConfig()
	cfg.SurfaceWidth, cfg.SurfaceHeight, cfg.SurfaceThickness = s.Width, s.Height, s.Thickness
	e, err := impact.NewEngine(s, nil, cfg, nil)
	if err != nil {
		return err
	}

	sum := e.Summary()
	fmt.Printf("%s: %dx%d cells\n", fname, s.Width, s.Height)
	fmt.Printf("total damage:  %.6g\n", sum.Total)
	fmt.Printf("max damage:    %.6g\n", sum.Max)
	fmt.Printf("mean damage:   %.6g\n", sum.Mean)
	fmt.Printf("deformation:   total %.6g, max %.6g\n", sum.TotalDeformation, sum.MaxDeformation)
	return nil
}
