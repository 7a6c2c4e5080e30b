package atmosphere

import (
	"fmt"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
	"github.com/y624745579/pism/internal/units"
)

// LapseRates corrects the wrapped model's output for surface elevation
// changes relative to a reference surface read from a file:
//
//	dT = -gamma_T * dh / 1000
//	dP = -gamma_P * dh / 1000   (gamma_P in kg m-2 year-1 per km)
type LapseRates struct {
	modifier
	path string
	dTdz float64 // K per km
	dPdz float64 // kg m-2 year-1 per km

	refSurface *grid.Scalar
	dT         *grid.Scalar
	dP         *grid.Scalar
	temp       *grid.Scalar
	precip     *grid.Scalar
}

func NewLapseRates(input Model, g *grid.Grid, cfg *config.Config) (*LapseRates, error) {
	return &LapseRates{
		modifier: modifier{input: input},
		path:     cfg.Atmosphere.LapseRate.File,
		dTdz:     cfg.Atmosphere.LapseRate.TemperatureLapseRate,
		dPdz:     cfg.Atmosphere.LapseRate.PrecipitationLapseRate,
		refSurface: grid.NewScalar(g, "usurf").
			SetAttrs("reference ice surface elevation", "m", "surface_altitude"),
		dT:     grid.NewScalar(g, "dT"),
		dP:     grid.NewScalar(g, "dP"),
		temp:   newTempField(g),
		precip: newPrecipField(g),
	}, nil
}

func (m *LapseRates) Init(geom *geometry.Geometry) error {
	if err := m.input.Init(geom); err != nil {
		return err
	}
	if m.path == "" {
		return fmt.Errorf("atmosphere: lapse_rate: no reference surface file set")
	}
	f, err := ncio.Open(m.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.ReadScalarInto(m.refSurface)
}

func (m *LapseRates) Update(geom *geometry.Geometry, t, dt float64) error {
	if err := m.input.Update(geom, t, dt); err != nil {
		return err
	}
	if err := m.temp.CopyFrom(m.input.MeanAnnualTemp()); err != nil {
		return err
	}
	if err := m.precip.CopyFrom(m.input.MeanPrecipitation()); err != nil {
		return err
	}

	g := m.refSurface.Grid()
	for j := 0; j < g.My; j++ {
		for i := 0; i < g.Mx; i++ {
			dh := geom.IceSurfaceElevation.Get(i, j) - m.refSurface.Get(i, j)

			dT := -m.dTdz * dh / 1000.0
			dP := units.MustConvert(-m.dPdz*dh/1000.0, "kg m-2 year-1", "kg m-2 s-1")

			m.dT.Set(i, j, dT)
			m.dP.Set(i, j, dP)
			m.temp.Set(i, j, m.temp.Get(i, j)+dT)
			m.precip.Set(i, j, m.precip.Get(i, j)+dP)
		}
	}
	return nil
}

func (m *LapseRates) MeanAnnualTemp() *grid.Scalar    { return m.temp }
func (m *LapseRates) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *LapseRates) TempTimeSeries(i, j int) []float64 {
	result := m.input.TempTimeSeries(i, j)
	dv := m.dT.Get(i, j)
	for k := range result {
		result[k] += dv
	}
	return result
}

func (m *LapseRates) PrecipTimeSeries(i, j int) []float64 {
	result := m.input.PrecipTimeSeries(i, j)
	dv := m.dP.Get(i, j)
	for k := range result {
		result[k] += dv
	}
	return result
}

func (m *LapseRates) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
