package ncio

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"

	"github.com/y624745579/pism/internal/grid"
)

// Writer accumulates 2-D fields over one grid and materializes them as a
// NetCDF file on Close. The two-phase Declare/Write split mirrors the
// define-mode/data-mode discipline of the format: declarations fix the
// header, writes queue data records.
type Writer struct {
	path     string
	grid     *grid.Grid
	declared []*grid.Scalar
	queued   []*grid.Scalar
}

func NewWriter(path string, g *grid.Grid) *Writer {
	return &Writer{path: path, grid: g}
}

// Declare registers a field's name and attributes in the header.
// Declaring the same name twice keeps the first declaration.
func (w *Writer) Declare(s *grid.Scalar) {
	for _, d := range w.declared {
		if d.Name == s.Name {
			return
		}
	}
	w.declared = append(w.declared, s)
}

// Write queues a field's data, declaring it if needed.
func (w *Writer) Write(s *grid.Scalar) {
	w.Declare(s)
	w.queued = append(w.queued, s)
}

func (w *Writer) Close() error {
	h := cdf.NewHeader([]string{"y", "x"}, []int{w.grid.My, w.grid.Mx})

	for _, s := range w.declared {
		h.AddVariable(s.Name, []string{"y", "x"}, []float64{0})
		if s.Units != "" {
			h.AddAttribute(s.Name, "units", s.Units)
		}
		if s.LongName != "" {
			h.AddAttribute(s.Name, "long_name", s.LongName)
		}
		if s.StandardName != "" {
			h.AddAttribute(s.Name, "standard_name", s.StandardName)
		}
	}
	h.Define()

	ff, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("ncio: %w", err)
	}
	defer ff.Close()

	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("ncio: creating %s: %w", w.path, err)
	}

	for _, s := range w.queued {
		if err := writeVar(f, s.Name, s.Data().Elements); err != nil {
			return fmt.Errorf("ncio: writing %q to %s: %w", s.Name, w.path, err)
		}
	}

	if err := cdf.UpdateNumRecs(ff); err != nil {
		return fmt.Errorf("ncio: finalizing %s: %w", w.path, err)
	}
	return nil
}

func writeVar(f *cdf.File, name string, data []float64) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	wr := f.Writer(name, start, end)
	_, err := wr.Write(data)
	return err
}

// WriteFields creates a NetCDF file holding the given fields.
func WriteFields(path string, g *grid.Grid, fields ...*grid.Scalar) error {
	w := NewWriter(path, g)
	for _, s := range fields {
		w.Write(s)
	}
	return w.Close()
}
