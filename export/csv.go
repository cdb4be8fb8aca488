// Package export writes the final state of an impact run to disk.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olivierh59500/particle-impact-go/impact"
)

// CSVHeader is the header row of a damage CSV file. The third column is
// labelled Z for compatibility with existing readers, but rows only carry
// x, y and the damage value: the header has four fields and every row has
// three, so readers must not enforce a fixed field count (with
// encoding/csv, set FieldsPerRecord to -1).
var CSVHeader = []string{"X", "Y", "Z", "Damage"}

// WriteCSV writes one row per surface cell, x outer and y inner.
func WriteCSV(w io.Writer, s *impact.Surface) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	grid := s.DamageGrid()
	row := make([]string, 3)
	for x := range grid {
		for y, d := range grid[x] {
			row[0] = strconv.Itoa(x)
			row[1] = strconv.Itoa(y)
			row[2] = strconv.FormatFloat(d, 'g', -1, 64)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the damage grid of s to fname.
func SaveCSV(fname string, s *impact.Surface) error {
	return save(fname, func(w io.Writer) error { return WriteCSV(w, s) })
}

func save(fname string, write func(io.Writer) error) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing '%s': %w", fname, err)
	}
	return f.Close()
}
