package atmosphere

import (
	"fmt"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
)

// Anomaly adds gridded air_temp_anomaly and precipitation_anomaly fields
// read from a file to the wrapped model's output.
type Anomaly struct {
	modifier
	path string

	tAnomaly *grid.Scalar
	pAnomaly *grid.Scalar
	temp     *grid.Scalar
	precip   *grid.Scalar
	nts      int
}

func NewAnomaly(input Model, g *grid.Grid, cfg *config.Config) (*Anomaly, error) {
	return &Anomaly{
		modifier: modifier{input: input},
		path:     cfg.Atmosphere.Anomaly.File,
		tAnomaly: grid.NewScalar(g, "air_temp_anomaly").
			SetAttrs("near-surface air temperature anomaly", "Kelvin", ""),
		pAnomaly: grid.NewScalar(g, "precipitation_anomaly").
			SetAttrs("precipitation anomaly", "kg m-2 s-1", ""),
		temp:   newTempField(g),
		precip: newPrecipField(g),
	}, nil
}

func (m *Anomaly) Init(geom *geometry.Geometry) error {
	if err := m.input.Init(geom); err != nil {
		return err
	}
	if m.path == "" {
		return fmt.Errorf("atmosphere: anomaly: no input file set")
	}
	f, err := ncio.Open(m.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.ReadScalarInto(m.tAnomaly); err != nil {
		return err
	}
	return f.ReadScalarInto(m.pAnomaly)
}

func (m *Anomaly) Update(geom *geometry.Geometry, t, dt float64) error {
	if err := m.input.Update(geom, t, dt); err != nil {
		return err
	}
	if err := m.temp.CopyFrom(m.input.MeanAnnualTemp()); err != nil {
		return err
	}
	if err := m.precip.CopyFrom(m.input.MeanPrecipitation()); err != nil {
		return err
	}
	for k, dv := range m.tAnomaly.Data().Elements {
		m.temp.Data().Elements[k] += dv
	}
	for k, dv := range m.pAnomaly.Data().Elements {
		m.precip.Data().Elements[k] += dv
	}
	return nil
}

func (m *Anomaly) MeanAnnualTemp() *grid.Scalar    { return m.temp }
func (m *Anomaly) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *Anomaly) InitTimeseries(ts []float64) error {
	m.nts = len(ts)
	return m.input.InitTimeseries(ts)
}

func (m *Anomaly) TempTimeSeries(i, j int) []float64 {
	result := m.input.TempTimeSeries(i, j)
	dv := m.tAnomaly.Get(i, j)
	for k := range result {
		result[k] += dv
	}
	return result
}

func (m *Anomaly) PrecipTimeSeries(i, j int) []float64 {
	result := m.input.PrecipTimeSeries(i, j)
	dv := m.pAnomaly.Get(i, j)
	for k := range result {
		result[k] += dv
	}
	return result
}

func (m *Anomaly) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
