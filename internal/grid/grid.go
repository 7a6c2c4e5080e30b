package grid

import "fmt"

// Grid is a uniform 2-D computational grid. Mx counts cells in x, My in y.
type Grid struct {
	Mx, My int
	Dx, Dy float64
}

func New(mx, my int, dx, dy float64) (*Grid, error) {
	if mx < 1 || my < 1 {
		return nil, fmt.Errorf("grid: dimensions must be positive, got %dx%d", mx, my)
	}
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("grid: spacing must be positive, got %gx%g", dx, dy)
	}
	return &Grid{Mx: mx, My: my, Dx: dx, Dy: dy}, nil
}

// Shallow returns the small grid used by the regression fixtures.
func Shallow() *Grid {
	return &Grid{Mx: 5, My: 3, Dx: 1000, Dy: 1000}
}

func (g *Grid) Cells() int {
	return g.Mx * g.My
}

func (g *Grid) Same(other *Grid) bool {
	return g.Mx == other.Mx && g.My == other.My
}
