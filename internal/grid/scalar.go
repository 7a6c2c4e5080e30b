package grid

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// Scalar is a named 2-D field over a grid. Data is stored row-major with
// shape (My, Mx); the (i, j) accessors take i along x and j along y.
type Scalar struct {
	Name         string
	LongName     string
	Units        string
	StandardName string

	grid *Grid
	data *sparse.DenseArray
}

func NewScalar(g *Grid, name string) *Scalar {
	return &Scalar{
		Name: name,
		grid: g,
		data: sparse.ZerosDense(g.My, g.Mx),
	}
}

// SetAttrs attaches descriptive metadata carried into output files.
func (s *Scalar) SetAttrs(longName, units, standardName string) *Scalar {
	s.LongName = longName
	s.Units = units
	s.StandardName = standardName
	return s
}

func (s *Scalar) Grid() *Grid              { return s.grid }
func (s *Scalar) Data() *sparse.DenseArray { return s.data }

func (s *Scalar) Get(i, j int) float64 {
	return s.data.Get(j, i)
}

func (s *Scalar) Set(i, j int, v float64) {
	s.data.Set(v, j, i)
}

// Fill sets every cell to v.
func (s *Scalar) Fill(v float64) {
	for k := range s.data.Elements {
		s.data.Elements[k] = v
	}
}

// Shift adds dv to every cell.
func (s *Scalar) Shift(dv float64) {
	for k := range s.data.Elements {
		s.data.Elements[k] += dv
	}
}

// Scale multiplies every cell by f.
func (s *Scalar) Scale(f float64) {
	for k := range s.data.Elements {
		s.data.Elements[k] *= f
	}
}

func (s *Scalar) Mean() float64 {
	sum := 0.0
	for _, v := range s.data.Elements {
		sum += v
	}
	return sum / float64(len(s.data.Elements))
}

func (s *Scalar) Min() float64 {
	m := math.Inf(1)
	for _, v := range s.data.Elements {
		m = math.Min(m, v)
	}
	return m
}

func (s *Scalar) Max() float64 {
	m := math.Inf(-1)
	for _, v := range s.data.Elements {
		m = math.Max(m, v)
	}
	return m
}

func (s *Scalar) Copy() *Scalar {
	c := NewScalar(s.grid, s.Name)
	c.LongName = s.LongName
	c.Units = s.Units
	c.StandardName = s.StandardName
	copy(c.data.Elements, s.data.Elements)
	return c
}

// CopyFrom overwrites this field's values with those of other.
func (s *Scalar) CopyFrom(other *Scalar) error {
	if !s.grid.Same(other.grid) {
		return fmt.Errorf("grid: field %q (%dx%d) incompatible with %q (%dx%d)",
			s.Name, s.grid.Mx, s.grid.My, other.Name, other.grid.Mx, other.grid.My)
	}
	copy(s.data.Elements, other.data.Elements)
	return nil
}

// Sub returns the elementwise difference s - other as a new field.
func (s *Scalar) Sub(other *Scalar) (*Scalar, error) {
	if !s.grid.Same(other.grid) {
		return nil, fmt.Errorf("grid: field %q (%dx%d) incompatible with %q (%dx%d)",
			s.Name, s.grid.Mx, s.grid.My, other.Name, other.grid.Mx, other.grid.My)
	}
	d := NewScalar(s.grid, s.Name+"_diff")
	for k := range d.data.Elements {
		d.data.Elements[k] = s.data.Elements[k] - other.data.Elements[k]
	}
	return d, nil
}

// SetData replaces the backing array; its shape must match the grid.
func (s *Scalar) SetData(a *sparse.DenseArray) error {
	if len(a.Shape) != 2 || a.Shape[0] != s.grid.My || a.Shape[1] != s.grid.Mx {
		return fmt.Errorf("grid: array shape %v does not match %dx%d grid",
			a.Shape, s.grid.Mx, s.grid.My)
	}
	s.data = a
	return nil
}
