package atmosphere

import (
	"fmt"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/forcing"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
)

// WeatherStation spreads scalar air_temp and precipitation time series
// from a single observation point uniformly over the grid.
type WeatherStation struct {
	grid   *grid.Grid
	path   string
	temps  *forcing.Scalar
	precs  *forcing.Scalar
	temp   *grid.Scalar
	precip *grid.Scalar
	ts     []float64
}

func NewWeatherStation(g *grid.Grid, cfg *config.Config) (*WeatherStation, error) {
	return &WeatherStation{
		grid:   g,
		path:   cfg.Atmosphere.OneStation.File,
		temp:   newTempField(g),
		precip: newPrecipField(g),
	}, nil
}

func (m *WeatherStation) Init(geom *geometry.Geometry) error {
	if m.path == "" {
		return fmt.Errorf("atmosphere: weather_station: no input file set")
	}
	var err error
	if m.temps, err = forcing.ReadScalar(m.path, "air_temp"); err != nil {
		return err
	}
	if m.precs, err = forcing.ReadScalar(m.path, "precipitation"); err != nil {
		return err
	}
	return nil
}

func (m *WeatherStation) Update(geom *geometry.Geometry, t, dt float64) error {
	m.temp.Fill(m.temps.Average(t, dt))
	m.precip.Fill(m.precs.Average(t, dt))
	return nil
}

func (m *WeatherStation) MeanAnnualTemp() *grid.Scalar    { return m.temp }
func (m *WeatherStation) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *WeatherStation) InitTimeseries(ts []float64) error {
	m.ts = append([]float64(nil), ts...)
	return nil
}

func (m *WeatherStation) BeginPointwiseAccess() {}
func (m *WeatherStation) EndPointwiseAccess()   {}

func (m *WeatherStation) TempTimeSeries(i, j int) []float64 {
	result := make([]float64, len(m.ts))
	for k, t := range m.ts {
		result[k] = m.temps.Value(t)
	}
	return result
}

func (m *WeatherStation) PrecipTimeSeries(i, j int) []float64 {
	result := make([]float64, len(m.ts))
	for k, t := range m.ts {
		result[k] = m.precs.Value(t)
	}
	return result
}

func (m *WeatherStation) MaxTimestep(t float64) MaxTimestep {
	dt, finite := m.temps.MaxTimestep(t)
	if dp, f := m.precs.MaxTimestep(t); f && (!finite || dp < dt) {
		dt, finite = dp, true
	}
	if !finite {
		return Unlimited()
	}
	return Limited(dt)
}

func (m *WeatherStation) DefineModelState(w *ncio.Writer) {
	w.Declare(m.precip)
	w.Declare(m.temp)
}

func (m *WeatherStation) WriteModelState(w *ncio.Writer) {
	w.Write(m.precip)
	w.Write(m.temp)
}

func (m *WeatherStation) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
