package atmosphere

import (
	"fmt"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/forcing"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
)

// FracP scales the wrapped model's precipitation by a scalar factor read
// from a frac_P forcing file.
type FracP struct {
	modifier
	path    string
	factors *forcing.Scalar
	ts      []float64
	precip  *grid.Scalar
}

func NewFracP(input Model, g *grid.Grid, cfg *config.Config) (*FracP, error) {
	return &FracP{
		modifier: modifier{input: input},
		path:     cfg.Atmosphere.FracP.File,
		precip:   newPrecipField(g),
	}, nil
}

func (m *FracP) Init(geom *geometry.Geometry) error {
	if err := m.input.Init(geom); err != nil {
		return err
	}
	if m.path == "" {
		return fmt.Errorf("atmosphere: frac_P: no forcing file set")
	}
	var err error
	m.factors, err = forcing.ReadScalar(m.path, "frac_P")
	return err
}

func (m *FracP) Update(geom *geometry.Geometry, t, dt float64) error {
	if err := m.input.Update(geom, t, dt); err != nil {
		return err
	}
	if err := m.precip.CopyFrom(m.input.MeanPrecipitation()); err != nil {
		return err
	}
	m.precip.Scale(m.factors.Average(t, dt))
	return nil
}

func (m *FracP) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *FracP) InitTimeseries(ts []float64) error {
	m.ts = append([]float64(nil), ts...)
	return m.input.InitTimeseries(ts)
}

func (m *FracP) PrecipTimeSeries(i, j int) []float64 {
	result := m.input.PrecipTimeSeries(i, j)
	for k, t := range m.ts {
		result[k] *= m.factors.Value(t)
	}
	return result
}

func (m *FracP) MaxTimestep(t float64) MaxTimestep {
	restriction := m.input.MaxTimestep(t)
	if dt, finite := m.factors.MaxTimestep(t); finite {
		restriction = minTimestep(restriction, Limited(dt))
	}
	return restriction
}

func (m *FracP) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
