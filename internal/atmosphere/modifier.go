package atmosphere

import (
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
)

// modifier delegates the full Model interface to the wrapped model.
// Concrete modifiers embed it and override what they change.
type modifier struct {
	input Model
}

func (m *modifier) Init(geom *geometry.Geometry) error {
	return m.input.Init(geom)
}

func (m *modifier) Update(geom *geometry.Geometry, t, dt float64) error {
	return m.input.Update(geom, t, dt)
}

func (m *modifier) MeanAnnualTemp() *grid.Scalar    { return m.input.MeanAnnualTemp() }
func (m *modifier) MeanPrecipitation() *grid.Scalar { return m.input.MeanPrecipitation() }

func (m *modifier) InitTimeseries(ts []float64) error {
	return m.input.InitTimeseries(ts)
}

func (m *modifier) BeginPointwiseAccess() { m.input.BeginPointwiseAccess() }
func (m *modifier) EndPointwiseAccess()   { m.input.EndPointwiseAccess() }

func (m *modifier) TempTimeSeries(i, j int) []float64 {
	return m.input.TempTimeSeries(i, j)
}

func (m *modifier) PrecipTimeSeries(i, j int) []float64 {
	return m.input.PrecipTimeSeries(i, j)
}

func (m *modifier) MaxTimestep(t float64) MaxTimestep {
	return m.input.MaxTimestep(t)
}

func (m *modifier) DefineModelState(w *ncio.Writer) { m.input.DefineModelState(w) }
func (m *modifier) WriteModelState(w *ncio.Writer)  { m.input.WriteModelState(w) }

func (m *modifier) Diagnostics() map[string]*grid.Scalar {
	return m.input.Diagnostics()
}
