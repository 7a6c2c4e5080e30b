package atmosphere

import (
	"fmt"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
)

// CosineYearlyCycle reads mean annual and mean summer temperature fields
// plus precipitation from a file and applies the standard cosine cycle.
type CosineYearlyCycle struct {
	yearlyCycle
	path string
}

func NewCosineYearlyCycle(g *grid.Grid, cfg *config.Config) (*CosineYearlyCycle, error) {
	return &CosineYearlyCycle{
		yearlyCycle: newYearlyCycle(g, cfg.Atmosphere.FaustoAirTemp.SummerPeakDay),
		path:        cfg.Atmosphere.YearlyCycle.File,
	}, nil
}

func (m *CosineYearlyCycle) Init(geom *geometry.Geometry) error {
	if m.path == "" {
		return fmt.Errorf("atmosphere: yearly_cycle: no input file set")
	}
	f, err := ncio.Open(m.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.ReadScalarInto(m.precip); err != nil {
		return err
	}
	if err := f.ReadScalarInto(m.tMeanAnnual); err != nil {
		return err
	}
	return f.ReadScalarInto(m.tMeanSummer)
}

func (m *CosineYearlyCycle) Update(geom *geometry.Geometry, t, dt float64) error {
	return nil
}
