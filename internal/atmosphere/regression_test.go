package atmosphere_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/y624745579/pism/internal/atmosphere"
	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
	"github.com/y624745579/pism/internal/ncio"
	"github.com/y624745579/pism/internal/units"
)

const (
	tempTol   = 1e-6
	precipTol = 1e-12
)

var tmpDir string

var _ = BeforeEach(func() {
	var err error
	tmpDir, err = os.MkdirTemp("", "atmosphere")
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterEach(func() {
	Expect(os.RemoveAll(tmpDir)).To(Succeed())
})

func scratch(name string) string {
	return filepath.Join(tmpDir, name)
}

func constantField(g *grid.Grid, name, longName, unitStr, standardName string, v float64) *grid.Scalar {
	s := grid.NewScalar(g, name).SetAttrs(longName, unitStr, standardName)
	s.Fill(v)
	return s
}

func precipitationField(g *grid.Grid, v float64) *grid.Scalar {
	return constantField(g, "precipitation", "precipitation", "kg m-2 s-1", "precipitation_flux", v)
}

func airTempField(g *grid.Grid, v float64) *grid.Scalar {
	return constantField(g, "air_temp", "near-surface air temperature", "Kelvin", "", v)
}

// writeState exercises the model-state and diagnostics output paths, then
// discards the files.
func writeState(m atmosphere.Model, g *grid.Grid) {
	GinkgoHelper()

	statePath := scratch("tmp_model_state.nc")
	w := ncio.NewWriter(statePath, g)
	m.DefineModelState(w)
	m.WriteModelState(w)
	Expect(w.Close()).To(Succeed())

	f, err := ncio.Open(statePath)
	Expect(err).NotTo(HaveOccurred())
	Expect(f.HasVariable("precipitation")).To(BeTrue())
	Expect(f.Close()).To(Succeed())

	diagPath := scratch("tmp_diagnostics.nc")
	dw := ncio.NewWriter(diagPath, g)
	for _, d := range m.Diagnostics() {
		dw.Write(d)
	}
	Expect(dw.Close()).To(Succeed())

	Expect(os.Remove(statePath)).To(Succeed())
	Expect(os.Remove(diagPath)).To(Succeed())
}

func checkModel(m atmosphere.Model, g *grid.Grid, T, P float64, ts, Ts, Ps []float64) {
	GinkgoHelper()

	Expect(m.MeanAnnualTemp().Get(0, 0)).To(BeNumerically("~", T, tempTol))
	Expect(m.MeanPrecipitation().Get(0, 0)).To(BeNumerically("~", P, precipTol))

	Expect(m.InitTimeseries(ts)).To(Succeed())
	m.BeginPointwiseAccess()
	temps := m.TempTimeSeries(0, 0)
	precs := m.PrecipTimeSeries(0, 0)
	m.EndPointwiseAccess()

	Expect(temps).To(HaveLen(len(Ts)))
	Expect(precs).To(HaveLen(len(Ps)))
	for k := range Ts {
		Expect(temps[k]).To(BeNumerically("~", Ts[k], tempTol))
		Expect(precs[k]).To(BeNumerically("~", Ps[k], precipTol))
	}

	writeState(m, g)

	m.MaxTimestep(ts[0])
}

// checkModifier asserts the differences between the modifier's output and
// the wrapped model's output.
func checkModifier(model, mod atmosphere.Model, g *grid.Grid, dT, dP float64, ts, Ts, Ps []float64) {
	GinkgoHelper()

	Expect(mod.MeanAnnualTemp().Get(0, 0) - model.MeanAnnualTemp().Get(0, 0)).
		To(BeNumerically("~", dT, tempTol))
	Expect(mod.MeanPrecipitation().Get(0, 0) - model.MeanPrecipitation().Get(0, 0)).
		To(BeNumerically("~", dP, precipTol))

	Expect(model.InitTimeseries(ts)).To(Succeed())
	Expect(mod.InitTimeseries(ts)).To(Succeed())

	model.BeginPointwiseAccess()
	mod.BeginPointwiseAccess()
	tempsModel := model.TempTimeSeries(0, 0)
	tempsMod := mod.TempTimeSeries(0, 0)
	precsModel := model.PrecipTimeSeries(0, 0)
	precsMod := mod.PrecipTimeSeries(0, 0)
	mod.EndPointwiseAccess()
	model.EndPointwiseAccess()

	for k := range Ts {
		Expect(tempsMod[k] - tempsModel[k]).To(BeNumerically("~", Ts[k], tempTol))
		Expect(precsMod[k] - precsModel[k]).To(BeNumerically("~", Ps[k], precipTol))
	}

	writeState(mod, g)

	mod.MaxTimestep(ts[0])
}

var _ = Describe("uniform", func() {
	It("reports the configured temperature and precipitation", func() {
		g := grid.Shallow()
		geom := geometry.New(g)

		cfg := config.Default()
		cfg.Atmosphere.Uniform.Temperature = 250.0
		cfg.Atmosphere.Uniform.Precipitation = 5.0

		model, err := atmosphere.NewUniform(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Init(geom)).To(Succeed())
		Expect(model.Update(geom, 0, 1)).To(Succeed())

		P := 1.5844382320409246e-07 // 5 kg m-2 year-1
		checkModel(model, g, 250.0, P, []float64{0.5}, []float64{250.0}, []float64{P})
	})
})

var _ = Describe("given", func() {
	It("reads temperature and precipitation fields from a file", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		path := scratch("atmosphere_given_input.nc")

		T, P := 250.0, 10.0
		Expect(ncio.WriteFields(path, g,
			precipitationField(g, P), airTempField(g, T))).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.Given.File = path

		model, err := atmosphere.NewGiven(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Init(geom)).To(Succeed())
		Expect(model.Update(geom, 0, 1)).To(Succeed())

		checkModel(model, g, T, P, []float64{0.5}, []float64{T}, []float64{P})
	})
})

var _ = Describe("pik", func() {
	var (
		g    *grid.Grid
		geom *geometry.Geometry
		cfg  *config.Config
	)
	const P = 10.0

	BeforeEach(func() {
		g = grid.Shallow()
		geom = geometry.New(g)
		geom.Latitude.Fill(-80.0)
		geom.EnsureConsistency(0.0)

		path := scratch("atmosphere_pik_input.nc")
		Expect(ncio.WriteFields(path, g, precipitationField(g, P))).To(Succeed())

		cfg = config.Default()
		cfg.Atmosphere.PIK.File = path
	})

	type expectation struct {
		name   string
		annual float64
		sample float64
	}
	expectations := []expectation{
		{"martin", 248.13, 248.13},
		{"huybrechts_dewolde", 252.59, 237.97337298281036},
		{"martin_huybrechts_dewolde", 248.13, 233.51337298281038},
		{"era_interim", 256.27, 243.0939774032151},
		{"era_interim_sin", 255.3157700297666, 241.79758406646044},
		{"era_interim_lon", 248.8857700297666, 233.3629602444976},
	}

	for _, e := range expectations {
		e := e
		It("computes the "+e.name+" parameterization", func() {
			cfg.Atmosphere.PIK.Parameterization = e.name

			model, err := atmosphere.NewPIK(g, cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(model.Init(geom)).To(Succeed())
			Expect(model.Update(geom, 0, 1)).To(Succeed())

			checkModel(model, g, e.annual, P,
				[]float64{0.5}, []float64{e.sample}, []float64{P})
			Expect(model.MaxTimestep(0).Infinite()).To(BeTrue())
		})
	}

	It("rejects an unknown parameterization", func() {
		cfg.Atmosphere.PIK.Parameterization = "invalid"
		_, err := atmosphere.NewPIK(g, cfg)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("searise_greenland", func() {
	It("computes the Fausto parameterization", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		geom.Latitude.Fill(70.0)
		geom.Longitude.Fill(-45.0)
		geom.IceThickness.Fill(2500.0)
		geom.EnsureConsistency(0.0)

		const P = 10.0
		path := scratch("atmosphere_searise_input.nc")
		Expect(ncio.WriteFields(path, g, precipitationField(g, P))).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.SeaRISEGreenland.File = path

		model, err := atmosphere.NewSeaRISEGreenland(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Init(geom)).To(Succeed())
		Expect(model.Update(geom, 0, 1)).To(Succeed())

		checkModel(model, g, 251.9085, P,
			[]float64{0.5}, []float64{238.66192632210235}, []float64{P})
	})
})

var _ = Describe("yearly_cycle", func() {
	It("interpolates between annual and summer means over the year", func() {
		g := grid.Shallow()
		geom := geometry.New(g)

		const (
			TMean   = 250.0
			TSummer = 270.0
			P       = 15.0
		)

		path := scratch("yearly_cycle.nc")
		Expect(ncio.WriteFields(path, g,
			precipitationField(g, P),
			constantField(g, "air_temp_mean_annual",
				"mean annual near-surface air temperature", "Kelvin", "", TMean),
			constantField(g, "air_temp_mean_summer",
				"mean summer near-surface air temperature", "Kelvin", "", TSummer),
		)).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.YearlyCycle.File = path

		model, err := atmosphere.NewCosineYearlyCycle(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Init(geom)).To(Succeed())

		oneYear := units.SecondsPerModelYear
		Expect(model.Update(geom, 0, oneYear)).To(Succeed())

		ts := make([]float64, 13)
		for k := range ts {
			ts[k] = float64(k) * oneYear / 12.0
		}
		Ts := []float64{
			230.53763325533475, 230.84203927904434, 236.27980540656114,
			245.39388659538776, 255.74217215122638, 264.5518473163434,
			269.46236674466525, 269.15796072095566, 263.72019459343886,
			254.60611340461224, 244.25782784877362, 235.4481526836566,
			230.53763325533475,
		}
		Ps := make([]float64, len(ts))
		for k := range Ps {
			Ps[k] = P
		}

		checkModel(model, g, TMean, P, ts, Ts, Ps)
	})
})

var _ = Describe("weather_station", func() {
	It("applies station time series over the whole domain", func() {
		g := grid.Shallow()
		geom := geometry.New(g)

		const (
			T = 263.15
			P = 10.0
		)

		path := scratch("one_station.nc")
		Expect(ncio.WriteSeries(path, []float64{0},
			ncio.SeriesVar{Name: "precipitation", Units: "kg m-2 s-1", Values: []float64{P}},
			ncio.SeriesVar{Name: "air_temp", Units: "Kelvin", Values: []float64{T}},
		)).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.OneStation.File = path

		model, err := atmosphere.NewWeatherStation(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(model.Init(geom)).To(Succeed())
		Expect(model.Update(geom, 0, 1)).To(Succeed())

		checkModel(model, g, T, P, []float64{0.5}, []float64{T}, []float64{P})
	})
})

var _ = Describe("delta_T", func() {
	It("shifts air temperature by the forcing offset", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		geom.IceThickness.Fill(1000.0)

		const dT = -5.0
		path := scratch("delta_T_input.nc")
		Expect(ncio.WriteScalarSeries(path, "delta_T", "Kelvin",
			[]float64{dT}, []float64{0})).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.DeltaT.File = path

		model, err := atmosphere.NewUniform(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		mod, err := atmosphere.NewDeltaT(model, g, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(mod.Init(geom)).To(Succeed())
		Expect(mod.Update(geom, 0, 1)).To(Succeed())

		checkModifier(model, mod, g, dT, 0,
			[]float64{0.5}, []float64{dT}, []float64{0})
	})

	It("requires a forcing file", func() {
		g := grid.Shallow()
		geom := geometry.New(g)

		cfg := config.Default()
		model, err := atmosphere.NewUniform(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		mod, err := atmosphere.NewDeltaT(model, g, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(mod.Init(geom)).NotTo(Succeed())
	})
})

var _ = Describe("delta_P", func() {
	It("shifts precipitation by the forcing offset", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		geom.IceThickness.Fill(1000.0)

		const dP = 5.0
		path := scratch("delta_P_input.nc")
		Expect(ncio.WriteScalarSeries(path, "delta_P", "kg m-2 s-1",
			[]float64{dP}, []float64{0})).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.DeltaP.File = path

		model, err := atmosphere.NewUniform(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		mod, err := atmosphere.NewDeltaP(model, g, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(mod.Init(geom)).To(Succeed())
		Expect(mod.Update(geom, 0, 1)).To(Succeed())

		checkModifier(model, mod, g, 0, dP,
			[]float64{0.5}, []float64{0}, []float64{dP})
	})
})

var _ = Describe("frac_P", func() {
	It("scales precipitation by the forcing factor", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		geom.IceThickness.Fill(1000.0)

		const ratio = 5.0
		path := scratch("frac_P_input.nc")
		Expect(ncio.WriteScalarSeries(path, "frac_P", "1",
			[]float64{ratio}, []float64{0})).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.FracP.File = path

		model, err := atmosphere.NewUniform(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		mod, err := atmosphere.NewFracP(model, g, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(mod.Init(geom)).To(Succeed())
		Expect(mod.Update(geom, 0, 1)).To(Succeed())

		Expect(mod.MeanPrecipitation().Get(0, 0) / model.MeanPrecipitation().Get(0, 0)).
			To(BeNumerically("~", ratio, tempTol))

		const dP = 0.00012675505856327396
		checkModifier(model, mod, g, 0, dP,
			[]float64{0.5}, []float64{0}, []float64{dP})
	})
})

var _ = Describe("paleo_precip", func() {
	It("scales precipitation exponentially with the temperature offset", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		geom.IceThickness.Fill(1000.0)

		const dT = 5.0
		path := scratch("paleo_precip_input.nc")
		Expect(ncio.WriteScalarSeries(path, "delta_T", "Kelvin",
			[]float64{dT}, []float64{0})).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.PaleoPrecip.File = path

		model, err := atmosphere.NewUniform(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		mod, err := atmosphere.NewPaleoPrecip(model, g, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(mod.Init(geom)).To(Succeed())
		Expect(mod.Update(geom, 0, 1)).To(Succeed())

		const dP = 1.3373513439500526e-05
		checkModifier(model, mod, g, 0, dP,
			[]float64{0.5}, []float64{0}, []float64{dP})
	})
})

var _ = Describe("anomaly", func() {
	It("adds 2-D temperature and precipitation anomalies", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		geom.IceThickness.Fill(1000.0)

		const (
			dT = -5.0
			dP = 20.0
		)

		path := scratch("anomaly_input.nc")
		Expect(ncio.WriteFields(path, g,
			constantField(g, "air_temp_anomaly", "air temperature anomaly", "Kelvin", "", dT),
			constantField(g, "precipitation_anomaly", "precipitation anomaly", "kg m-2 s-1", "", dP),
		)).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.Anomaly.File = path

		model, err := atmosphere.NewUniform(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		mod, err := atmosphere.NewAnomaly(model, g, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(mod.Init(geom)).To(Succeed())
		Expect(mod.Update(geom, 0, 1)).To(Succeed())

		checkModifier(model, mod, g, dT, dP,
			[]float64{0.5}, []float64{dT}, []float64{dP})
	})
})

var _ = Describe("lapse_rate", func() {
	It("corrects for elevation change against a reference surface", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		geom.EnsureConsistency(0.0)

		const (
			dTdz = 1.0    // K / km
			dPdz = 1000.0 // (kg m-2 year-1) / km
			dz   = 1000.0 // m
		)
		dT := -dTdz * dz / 1000.0
		dP := -units.MustConvert(dPdz*dz/1000.0, "kg m-2 year-1", "kg m-2 s-1")

		path := scratch("reference_surface.nc")
		Expect(ncio.WriteFields(path, g, geom.IceSurfaceElevation)).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.LapseRate.File = path
		cfg.Atmosphere.LapseRate.TemperatureLapseRate = dTdz
		cfg.Atmosphere.LapseRate.PrecipitationLapseRate = dPdz

		model, err := atmosphere.NewUniform(g, cfg)
		Expect(err).NotTo(HaveOccurred())
		mod, err := atmosphere.NewLapseRates(model, g, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(mod.Init(geom)).To(Succeed())

		geom.IceSurfaceElevation.Shift(dz)

		Expect(mod.Update(geom, 0, 1)).To(Succeed())

		checkModifier(model, mod, g, dT, dP,
			[]float64{0.5}, []float64{dT}, []float64{dP})
	})
})

var _ = Describe("registry", func() {
	It("lists models and modifiers", func() {
		registry := atmosphere.NewRegistry()
		Expect(registry.Models()).To(Equal([]string{
			"given", "pik", "searise_greenland", "uniform",
			"weather_station", "yearly_cycle",
		}))
		Expect(registry.Modifiers()).To(Equal([]string{
			"anomaly", "delta_P", "delta_T", "frac_P",
			"lapse_rate", "paleo_precip",
		}))
	})

	It("composes modifiers around a base model", func() {
		g := grid.Shallow()
		geom := geometry.New(g)
		geom.IceThickness.Fill(1000.0)

		const dT = -5.0
		path := scratch("delta_T_input.nc")
		Expect(ncio.WriteScalarSeries(path, "delta_T", "Kelvin",
			[]float64{dT}, []float64{0})).To(Succeed())

		cfg := config.Default()
		cfg.Atmosphere.DeltaT.File = path

		registry := atmosphere.NewRegistry()
		model, err := registry.Create("uniform+delta_T", g, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(model.Init(geom)).To(Succeed())
		Expect(model.Update(geom, 0, 1)).To(Succeed())

		Expect(model.MeanAnnualTemp().Get(0, 0)).
			To(BeNumerically("~", cfg.Atmosphere.Uniform.Temperature+dT, tempTol))
	})

	It("rejects unknown names", func() {
		g := grid.Shallow()
		cfg := config.Default()

		registry := atmosphere.NewRegistry()
		_, err := registry.Create("nonesuch", g, cfg)
		Expect(err).To(HaveOccurred())
		_, err = registry.Create("uniform+nonesuch", g, cfg)
		Expect(err).To(HaveOccurred())
	})
})
