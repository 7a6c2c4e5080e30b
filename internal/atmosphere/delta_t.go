package atmosphere

import (
	"fmt"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/forcing"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
)

// DeltaT shifts the wrapped model's air temperature by a scalar offset
// read from a delta_T forcing file.
type DeltaT struct {
	modifier
	path    string
	offsets *forcing.Scalar
	ts      []float64
	temp    *grid.Scalar
}

func NewDeltaT(input Model, g *grid.Grid, cfg *config.Config) (*DeltaT, error) {
	return &DeltaT{
		modifier: modifier{input: input},
		path:     cfg.Atmosphere.DeltaT.File,
		temp:     newTempField(g),
	}, nil
}

func (m *DeltaT) Init(geom *geometry.Geometry) error {
	if err := m.input.Init(geom); err != nil {
		return err
	}
	if m.path == "" {
		return fmt.Errorf("atmosphere: delta_T: no forcing file set")
	}
	var err error
	m.offsets, err = forcing.ReadScalar(m.path, "delta_T")
	return err
}

func (m *DeltaT) Update(geom *geometry.Geometry, t, dt float64) error {
	if err := m.input.Update(geom, t, dt); err != nil {
		return err
	}
	if err := m.temp.CopyFrom(m.input.MeanAnnualTemp()); err != nil {
		return err
	}
	m.temp.Shift(m.offsets.Average(t, dt))
	return nil
}

func (m *DeltaT) MeanAnnualTemp() *grid.Scalar { return m.temp }

func (m *DeltaT) InitTimeseries(ts []float64) error {
	m.ts = append([]float64(nil), ts...)
	return m.input.InitTimeseries(ts)
}

func (m *DeltaT) TempTimeSeries(i, j int) []float64 {
	result := m.input.TempTimeSeries(i, j)
	for k, t := range m.ts {
		result[k] += m.offsets.Value(t)
	}
	return result
}

func (m *DeltaT) MaxTimestep(t float64) MaxTimestep {
	restriction := m.input.MaxTimestep(t)
	if dt, finite := m.offsets.MaxTimestep(t); finite {
		restriction = minTimestep(restriction, Limited(dt))
	}
	return restriction
}

func (m *DeltaT) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
