// Package ncio reads and writes the NetCDF files the toolkit consumes and
// produces. Variable names and units follow the external schema of the
// simulator's files and are never remapped.
package ncio

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"

	"github.com/y624745579/pism/internal/grid"
)

// File is a read-only handle on a NetCDF dataset.
type File struct {
	path string
	f    *cdf.File
	ff   *os.File
}

func Open(path string) (*File, error) {
	ff, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ncio: %w", err)
	}
	f, err := cdf.Open(ff)
	if err != nil {
		ff.Close()
		return nil, fmt.Errorf("ncio: opening %s: %w", path, err)
	}
	return &File{path: path, f: f, ff: ff}, nil
}

func (f *File) Close() error {
	return f.ff.Close()
}

func (f *File) HasVariable(name string) bool {
	return len(f.f.Header.Lengths(name)) > 0
}

// ReadArray reads a variable in full, squeezing any size-1 dimensions
// (such as a single time record) from the front of the shape.
func (f *File) ReadArray(name string) (*sparse.DenseArray, error) {
	dims := f.f.Header.Lengths(name)
	if len(dims) == 0 {
		return nil, fmt.Errorf("ncio: variable %q not found in %s", name, f.path)
	}

	nread := 1
	for _, d := range dims {
		nread *= d
	}

	r := f.f.Reader(name, nil, nil)
	buf := r.Zero(nread)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("ncio: reading %q from %s: %w", name, f.path, err)
	}

	for len(dims) > 1 && dims[0] == 1 {
		dims = dims[1:]
	}

	data := sparse.ZerosDense(dims...)
	if err := fillFloat64(data.Elements, buf); err != nil {
		return nil, fmt.Errorf("ncio: variable %q in %s: %w", name, f.path, err)
	}
	return data, nil
}

// ReadScalarInto reads a 2-D variable into an existing field; the variable
// shape must match the field's grid.
func (f *File) ReadScalarInto(s *grid.Scalar) error {
	a, err := f.ReadArray(s.Name)
	if err != nil {
		return err
	}
	return s.SetData(a)
}

// ReadScalar reads a named 2-D variable as a field over g.
func ReadScalar(path, name string, g *grid.Grid) (*grid.Scalar, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s := grid.NewScalar(g, name)
	if err := f.ReadScalarInto(s); err != nil {
		return nil, err
	}
	return s, nil
}

func fillFloat64(dst []float64, buf interface{}) error {
	switch v := buf.(type) {
	case []float64:
		if len(v) < len(dst) {
			return fmt.Errorf("short read: %d of %d values", len(v), len(dst))
		}
		copy(dst, v)
	case []float32:
		if len(v) < len(dst) {
			return fmt.Errorf("short read: %d of %d values", len(v), len(dst))
		}
		for i := range dst {
			dst[i] = float64(v[i])
		}
	case []int32:
		if len(v) < len(dst) {
			return fmt.Errorf("short read: %d of %d values", len(v), len(dst))
		}
		for i := range dst {
			dst[i] = float64(v[i])
		}
	default:
		return fmt.Errorf("unsupported data type %T", buf)
	}
	return nil
}
