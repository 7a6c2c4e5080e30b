package atmosphere

import (
	"math"

	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
	"github.com/y624745579/pism/internal/units"
)

// Model supplies near-surface air temperature and precipitation forcing.
// The call discipline is: Init once, then Update for each time window,
// then query mean fields or (between BeginPointwiseAccess and
// EndPointwiseAccess) per-cell sub-year series prepared by InitTimeseries.
type Model interface {
	Init(geom *geometry.Geometry) error
	Update(geom *geometry.Geometry, t, dt float64) error

	MeanAnnualTemp() *grid.Scalar
	MeanPrecipitation() *grid.Scalar

	InitTimeseries(ts []float64) error
	BeginPointwiseAccess()
	EndPointwiseAccess()
	TempTimeSeries(i, j int) []float64
	PrecipTimeSeries(i, j int) []float64

	MaxTimestep(t float64) MaxTimestep

	DefineModelState(w *ncio.Writer)
	WriteModelState(w *ncio.Writer)
	Diagnostics() map[string]*grid.Scalar
}

// MaxTimestep is a timestep restriction; a zero-value restriction does not
// exist (Finite false means unlimited).
type MaxTimestep struct {
	Value  float64
	Finite bool
}

func Unlimited() MaxTimestep {
	return MaxTimestep{}
}

func Limited(dt float64) MaxTimestep {
	return MaxTimestep{Value: dt, Finite: true}
}

func (m MaxTimestep) Infinite() bool {
	return !m.Finite
}

func minTimestep(a, b MaxTimestep) MaxTimestep {
	switch {
	case !a.Finite:
		return b
	case !b.Finite:
		return a
	case a.Value <= b.Value:
		return a
	default:
		return b
	}
}

// yearFraction maps a model time in seconds to [0, 1) on the 365-day
// calendar.
func yearFraction(t float64) float64 {
	year := units.SecondsPerModelYear
	f := math.Mod(t, year) / year
	if f < 0 {
		f += 1.0
	}
	return f
}

func newTempField(g *grid.Grid) *grid.Scalar {
	return grid.NewScalar(g, "air_temp").
		SetAttrs("mean annual near-surface air temperature", "Kelvin", "")
}

func newPrecipField(g *grid.Grid) *grid.Scalar {
	return grid.NewScalar(g, "precipitation").
		SetAttrs("precipitation", "kg m-2 s-1", "precipitation_flux")
}

func snapshotDiagnostics(m Model) map[string]*grid.Scalar {
	T := m.MeanAnnualTemp().Copy()
	T.Name = "air_temp"
	P := m.MeanPrecipitation().Copy()
	P.Name = "precipitation"
	return map[string]*grid.Scalar{
		"air_temp":      T,
		"precipitation": P,
	}
}

func constantSeries(n int, v float64) []float64 {
	s := make([]float64, n)
	for k := range s {
		s[k] = v
	}
	return s
}
