package atmosphere

import (
	"fmt"
	"math"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/forcing"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
)

// PaleoPrecip scales the wrapped model's precipitation exponentially with
// a temperature offset read from a delta_T forcing file:
//
//	P = P_input * exp(C * dT)
type PaleoPrecip struct {
	modifier
	path     string
	exponent float64
	offsets  *forcing.Scalar
	ts       []float64
	precip   *grid.Scalar
}

func NewPaleoPrecip(input Model, g *grid.Grid, cfg *config.Config) (*PaleoPrecip, error) {
	return &PaleoPrecip{
		modifier: modifier{input: input},
		path:     cfg.Atmosphere.PaleoPrecip.File,
		exponent: cfg.Atmosphere.PrecipExponentialFactorForTemperature,
		precip:   newPrecipField(g),
	}, nil
}

func (m *PaleoPrecip) Init(geom *geometry.Geometry) error {
	if err := m.input.Init(geom); err != nil {
		return err
	}
	if m.path == "" {
		return fmt.Errorf("atmosphere: paleo_precip: no forcing file set")
	}
	var err error
	m.offsets, err = forcing.ReadScalar(m.path, "delta_T")
	return err
}

func (m *PaleoPrecip) factor(dT float64) float64 {
	return math.Exp(m.exponent * dT)
}

func (m *PaleoPrecip) Update(geom *geometry.Geometry, t, dt float64) error {
	if err := m.input.Update(geom, t, dt); err != nil {
		return err
	}
	if err := m.precip.CopyFrom(m.input.MeanPrecipitation()); err != nil {
		return err
	}
	m.precip.Scale(m.factor(m.offsets.Average(t, dt)))
	return nil
}

func (m *PaleoPrecip) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *PaleoPrecip) InitTimeseries(ts []float64) error {
	m.ts = append([]float64(nil), ts...)
	return m.input.InitTimeseries(ts)
}

func (m *PaleoPrecip) PrecipTimeSeries(i, j int) []float64 {
	result := m.input.PrecipTimeSeries(i, j)
	for k, t := range m.ts {
		result[k] *= m.factor(m.offsets.Value(t))
	}
	return result
}

func (m *PaleoPrecip) MaxTimestep(t float64) MaxTimestep {
	restriction := m.input.MaxTimestep(t)
	if dt, finite := m.offsets.MaxTimestep(t); finite {
		restriction = minTimestep(restriction, Limited(dt))
	}
	return restriction
}

func (m *PaleoPrecip) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
