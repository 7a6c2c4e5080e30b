package atmosphere

import (
	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
	"github.com/y624745579/pism/internal/units"
)

// Uniform supplies constant-in-time, spatially-uniform temperature and
// precipitation taken from the configuration.
type Uniform struct {
	grid   *grid.Grid
	temp   *grid.Scalar
	precip *grid.Scalar
	tval   float64
	pval   float64
	nts    int
}

func NewUniform(g *grid.Grid, cfg *config.Config) (*Uniform, error) {
	return &Uniform{
		grid:   g,
		temp:   newTempField(g),
		precip: newPrecipField(g),
		tval:   cfg.Atmosphere.Uniform.Temperature,
		pval: units.MustConvert(cfg.Atmosphere.Uniform.Precipitation,
			"kg m-2 year-1", "kg m-2 s-1"),
	}, nil
}

func (m *Uniform) Init(geom *geometry.Geometry) error {
	m.temp.Fill(m.tval)
	m.precip.Fill(m.pval)
	return nil
}

func (m *Uniform) Update(geom *geometry.Geometry, t, dt float64) error {
	return nil
}

func (m *Uniform) MeanAnnualTemp() *grid.Scalar    { return m.temp }
func (m *Uniform) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *Uniform) InitTimeseries(ts []float64) error {
	m.nts = len(ts)
	return nil
}

func (m *Uniform) BeginPointwiseAccess() {}
func (m *Uniform) EndPointwiseAccess()   {}

func (m *Uniform) TempTimeSeries(i, j int) []float64 {
	return constantSeries(m.nts, m.temp.Get(i, j))
}

func (m *Uniform) PrecipTimeSeries(i, j int) []float64 {
	return constantSeries(m.nts, m.precip.Get(i, j))
}

func (m *Uniform) MaxTimestep(t float64) MaxTimestep {
	return Unlimited()
}

func (m *Uniform) DefineModelState(w *ncio.Writer) {
	w.Declare(m.precip)
	w.Declare(m.temp)
}

func (m *Uniform) WriteModelState(w *ncio.Writer) {
	w.Write(m.precip)
	w.Write(m.temp)
}

func (m *Uniform) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
