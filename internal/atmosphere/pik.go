package atmosphere

import (
	"fmt"
	"math"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
)

// PIK parameterizes Antarctic near-surface air temperature from latitude,
// longitude and surface elevation; precipitation is read from a file.
type PIK struct {
	yearlyCycle
	path          string
	param         string
	parameterized func(h, lat, lon float64) (tMa, tSummer float64)
}

var pikParameterizations = map[string]func(h, lat, lon float64) (float64, float64){
	"martin":                    pikMartin,
	"huybrechts_dewolde":        pikHuybrechtsDeWolde,
	"martin_huybrechts_dewolde": pikMartinHuybrechtsDeWolde,
	"era_interim":               pikERAInterim,
	"era_interim_sin":           pikERAInterimSin,
	"era_interim_lon":           pikERAInterimLon,
}

func NewPIK(g *grid.Grid, cfg *config.Config) (*PIK, error) {
	name := cfg.Atmosphere.PIK.Parameterization
	p, ok := pikParameterizations[name]
	if !ok {
		return nil, fmt.Errorf("atmosphere: pik: unknown parameterization %q", name)
	}
	return &PIK{
		yearlyCycle:   newYearlyCycle(g, cfg.Atmosphere.FaustoAirTemp.SummerPeakDay),
		path:          cfg.Atmosphere.PIK.File,
		param:         name,
		parameterized: p,
	}, nil
}

func (m *PIK) Init(geom *geometry.Geometry) error {
	return m.readPrecipitation(m.path)
}

func (m *PIK) Update(geom *geometry.Geometry, t, dt float64) error {
	for j := 0; j < m.grid.My; j++ {
		for i := 0; i < m.grid.Mx; i++ {
			h := geom.IceSurfaceElevation.Get(i, j)
			lat := geom.Latitude.Get(i, j)
			lon := geom.Longitude.Get(i, j)

			ma, summer := m.parameterized(h, lat, lon)
			m.tMeanAnnual.Set(i, j, ma)
			m.tMeanSummer.Set(i, j, summer)
		}
	}
	return nil
}

// Martin et al (2011), equation 13; no seasonal cycle.
func pikMartin(h, lat, lon float64) (float64, float64) {
	ma := 273.15 + 30.0 - 0.0075*h - 0.68775*math.Abs(lat)
	return ma, ma
}

// Huybrechts & de Wolde (1999) annual and summer fits.
func pikHuybrechtsDeWolde(h, lat, lon float64) (float64, float64) {
	ma := 273.15 + 34.46 - 0.00914*h - 0.68775*math.Abs(lat)
	summer := 273.15 + 16.81 - 0.00692*h - 0.27937*math.Abs(lat)
	return ma, summer
}

// Martin annual mean with the Huybrechts & de Wolde seasonal amplitude.
func pikMartinHuybrechtsDeWolde(h, lat, lon float64) (float64, float64) {
	ma, _ := pikMartin(h, lat, lon)
	hdMa, hdSummer := pikHuybrechtsDeWolde(h, lat, lon)
	return ma, ma + (hdSummer - hdMa)
}

// Multiple regression of ERA-Interim reanalysis data.
func pikERAInterim(h, lat, lon float64) (float64, float64) {
	ma := 273.15 + 29.2 - 0.0082*h - 0.576*math.Abs(lat)
	summer := 273.15 + 16.5 - 0.0068*h - 0.248*math.Abs(lat)
	return ma, summer
}

// ERA-Interim fit with a sin(latitude) dependence. The truncated pi in the
// latitude terms is part of the published fit.
func pikERAInterimSin(h, lat, lon float64) (float64, float64) {
	q := (math.Sin(3.1415*lat/180.0) + 0.8910) / (1.0 - 0.8910)
	ma := 273.15 - 2.0 - 0.0082*h + 18.4*q
	summer := 273.15 + 3.2 - 0.0068*h + 8.3*q
	return ma, summer
}

// ERA-Interim sin(latitude) fit with a cos(longitude) modulation.
func pikERAInterimLon(h, lat, lon float64) (float64, float64) {
	c := math.Cos(3.1415 * lon / 180.0)
	ma, summer := pikERAInterimSin(h, lat, lon)
	return ma - 6.43*c, summer - 4.37*c
}
