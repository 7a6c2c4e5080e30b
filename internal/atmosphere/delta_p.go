package atmosphere

import (
	"fmt"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/forcing"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
)

// DeltaP shifts the wrapped model's precipitation by a scalar offset read
// from a delta_P forcing file.
type DeltaP struct {
	modifier
	path    string
	offsets *forcing.Scalar
	ts      []float64
	precip  *grid.Scalar
}

func NewDeltaP(input Model, g *grid.Grid, cfg *config.Config) (*DeltaP, error) {
	return &DeltaP{
		modifier: modifier{input: input},
		path:     cfg.Atmosphere.DeltaP.File,
		precip:   newPrecipField(g),
	}, nil
}

func (m *DeltaP) Init(geom *geometry.Geometry) error {
	if err := m.input.Init(geom); err != nil {
		return err
	}
	if m.path == "" {
		return fmt.Errorf("atmosphere: delta_P: no forcing file set")
	}
	var err error
	m.offsets, err = forcing.ReadScalar(m.path, "delta_P")
	return err
}

func (m *DeltaP) Update(geom *geometry.Geometry, t, dt float64) error {
	if err := m.input.Update(geom, t, dt); err != nil {
		return err
	}
	if err := m.precip.CopyFrom(m.input.MeanPrecipitation()); err != nil {
		return err
	}
	m.precip.Shift(m.offsets.Average(t, dt))
	return nil
}

func (m *DeltaP) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *DeltaP) InitTimeseries(ts []float64) error {
	m.ts = append([]float64(nil), ts...)
	return m.input.InitTimeseries(ts)
}

func (m *DeltaP) PrecipTimeSeries(i, j int) []float64 {
	result := m.input.PrecipTimeSeries(i, j)
	for k, t := range m.ts {
		result[k] += m.offsets.Value(t)
	}
	return result
}

func (m *DeltaP) MaxTimestep(t float64) MaxTimestep {
	restriction := m.input.MaxTimestep(t)
	if dt, finite := m.offsets.MaxTimestep(t); finite {
		restriction = minTimestep(restriction, Limited(dt))
	}
	return restriction
}

func (m *DeltaP) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
