package atmosphere

import (
	"fmt"
	"math"

	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
)

// yearlyCycle is the shared core of models whose sub-year temperature
// follows a cosine cycle between a mean-annual and a mean-summer field:
//
//	T(t) = T_ma + (T_summer - T_ma) * cos(2*pi*(yearfrac(t) - peak/365))
//
// Precipitation is constant in time.
type yearlyCycle struct {
	grid          *grid.Grid
	summerPeakDay float64

	tMeanAnnual *grid.Scalar
	tMeanSummer *grid.Scalar
	precip      *grid.Scalar

	tsTimes []float64
	tsCos   []float64
}

func newYearlyCycle(g *grid.Grid, summerPeakDay float64) yearlyCycle {
	return yearlyCycle{
		grid:          g,
		summerPeakDay: summerPeakDay,
		tMeanAnnual: grid.NewScalar(g, "air_temp_mean_annual").
			SetAttrs("mean annual near-surface air temperature", "Kelvin", ""),
		tMeanSummer: grid.NewScalar(g, "air_temp_mean_summer").
			SetAttrs("mean summer near-surface air temperature", "Kelvin", ""),
		precip: newPrecipField(g),
	}
}

// readPrecipitation loads the constant-in-time precipitation field.
func (m *yearlyCycle) readPrecipitation(path string) error {
	if path == "" {
		return fmt.Errorf("atmosphere: no input file for precipitation")
	}
	f, err := ncio.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.ReadScalarInto(m.precip)
}

func (m *yearlyCycle) MeanAnnualTemp() *grid.Scalar    { return m.tMeanAnnual }
func (m *yearlyCycle) MeanPrecipitation() *grid.Scalar { return m.precip }

func (m *yearlyCycle) InitTimeseries(ts []float64) error {
	peak := m.summerPeakDay / 365.0

	m.tsTimes = append([]float64(nil), ts...)
	m.tsCos = make([]float64, len(ts))
	for k, t := range ts {
		m.tsCos[k] = math.Cos(2.0 * math.Pi * (yearFraction(t) - peak))
	}
	return nil
}

func (m *yearlyCycle) BeginPointwiseAccess() {}
func (m *yearlyCycle) EndPointwiseAccess()   {}

func (m *yearlyCycle) TempTimeSeries(i, j int) []float64 {
	ma := m.tMeanAnnual.Get(i, j)
	summer := m.tMeanSummer.Get(i, j)

	result := make([]float64, len(m.tsCos))
	for k, c := range m.tsCos {
		result[k] = ma + (summer-ma)*c
	}
	return result
}

func (m *yearlyCycle) PrecipTimeSeries(i, j int) []float64 {
	return constantSeries(len(m.tsCos), m.precip.Get(i, j))
}

func (m *yearlyCycle) MaxTimestep(t float64) MaxTimestep {
	return Unlimited()
}

func (m *yearlyCycle) DefineModelState(w *ncio.Writer) {
	w.Declare(m.precip)
}

func (m *yearlyCycle) WriteModelState(w *ncio.Writer) {
	w.Write(m.precip)
}

func (m *yearlyCycle) Diagnostics() map[string]*grid.Scalar {
	T := m.tMeanAnnual.Copy()
	T.Name = "air_temp"
	P := m.precip.Copy()
	return map[string]*grid.Scalar{
		"air_temp":             T,
		"precipitation":        P,
		"air_temp_mean_annual": m.tMeanAnnual.Copy(),
		"air_temp_mean_summer": m.tMeanSummer.Copy(),
	}
}
