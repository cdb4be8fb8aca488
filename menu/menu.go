// Package menu implements the interactive text menu: start a run, customise
// the scenario, or exit.
package menu

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/olivierh59500/particle-impact-go/config"
	"github.com/olivierh59500/particle-impact-go/impact"
)

// RunFunc runs one simulation with cfg. done reports that the run reached a
// termination condition, which ends the menu loop.
type RunFunc func(cfg impact.Config) (done bool, err error)

// Menu is the top-level loop. Each start builds a fresh engine from the
// current configuration; customising replaces the configuration with a new
// value.
type Menu struct {
	in  *bufio.Reader
	out io.Writer
	cfg impact.Config
	run RunFunc
}

// New creates a menu reading choices from in and writing prompts to out.
func New(in io.Reader, out io.Writer, cfg impact.Config, run RunFunc) *Menu {
	return &Menu{bufio.NewReader(in), out, cfg, run}
}

// Config returns the configuration the next run will use.
func (m *Menu) Config() impact.Config { return m.cfg }

func (m *Menu) show() {
	fmt.Fprintln(m.out, "Welcome to Particle Impact Simulation")
	fmt.Fprintln(m.out, "----------------------------------------------------------")
	fmt.Fprintln(m.out, "1. Start Simulation")
	fmt.Fprintln(m.out, "2. Customize Simulation Parameters")
	fmt.Fprintln(m.out, "3. Exit")
	fmt.Fprint(m.out, "Enter your choice: ")
}

// Loop shows the menu until the user exits, input ends, or a run
// terminates. Invalid choices are reported and asked again.
func (m *Menu) Loop() error {
	for {
		m.show()
		line, err := m.in.ReadString('\n')
		choice := strings.TrimSpace(line)
		if err != nil && choice == "" {
			if err == io.EOF {
				fmt.Fprintln(m.out, "\nExiting...")
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			done, err := m.run(m.cfg)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case "2":
			cfg, err := config.Prompt(m.in, m.out, m.cfg)
			if err == io.EOF {
				fmt.Fprintln(m.out, "\nExiting...")
				return nil
			} else if err != nil {
				return err
			}
			m.cfg = cfg
		case "3":
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}
