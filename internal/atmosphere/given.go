package atmosphere

import (
	"fmt"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
)

// Given reads time-independent air_temp and precipitation fields from a
// file and reports them unchanged.
type Given struct {
	grid   *grid.Grid
	path   string
	temp   *grid.Scalar
	precip *grid.Scalar
	nts    int
}

func NewGiven(g *grid.Grid, cfg *config.Config) (*Given, error) {
	return &Given{
		grid:   g,
		path:   cfg.Atmosphere.Given.File,
		temp:   newTempField(g),
		precip: newPrecipField(g),
	}, nil
}

func (m *Given) Init(geom *geometry.Geometry) error {
	if m.path == "" {
		return fmt.Errorf("atmosphere: given: no input file set")
	}
	f, err := ncio.Open(m.path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.ReadScalarInto(m.temp); err != nil {
		return err
	}
	return f.ReadScalarInto(m.precip)
}

func (m *Given) Update(geom *geometry.Geometry, t, dt float64) error {
	return nil
}

func (m *Given) MeanAnnualTemp() *grid.Scalar    { return m.temp }
func (m *Given) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *Given) InitTimeseries(ts []float64) error {
	m.nts = len(ts)
	return nil
}

func (m *Given) BeginPointwiseAccess() {}
func (m *Given) EndPointwiseAccess()   {}

func (m *Given) TempTimeSeries(i, j int) []float64 {
	return constantSeries(m.nts, m.temp.Get(i, j))
}

func (m *Given) PrecipTimeSeries(i, j int) []float64 {
	return constantSeries(m.nts, m.precip.Get(i, j))
}

func (m *Given) MaxTimestep(t float64) MaxTimestep {
	return Unlimited()
}

func (m *Given) DefineModelState(w *ncio.Writer) {
	w.Declare(m.precip)
	w.Declare(m.temp)
}

func (m *Given) WriteModelState(w *ncio.Writer) {
	w.Write(m.precip)
	w.Write(m.temp)
}

func (m *Given) Diagnostics() map[string]*grid.Scalar {
	return snapshotDiagnostics(m)
}
