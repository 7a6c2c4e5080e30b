package atmosphere

import (
	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/geometry"
	"github.com/y624745579/pism/internal/grid"
)

// Fausto et al (2009) air temperature fits for Greenland.
const (
	faustoDMa     = 41.83
	faustoGammaMa = -6.309e-3 // K/m
	faustoCMa     = -0.7189   // K/degree latitude
	faustoKappaMa = -0.0672   // K/degree longitude

	faustoDSummer     = 14.70
	faustoGammaSummer = -5.426e-3
	faustoCSummer     = -0.1585
	faustoKappaSummer = -0.0518
)

// SeaRISEGreenland parameterizes Greenland near-surface air temperature
// after Fausto et al (2009); precipitation is read from a file.
type SeaRISEGreenland struct {
	yearlyCycle
	path string
}

func NewSeaRISEGreenland(g *grid.Grid, cfg *config.Config) (*SeaRISEGreenland, error) {
	return &SeaRISEGreenland{
		yearlyCycle: newYearlyCycle(g, cfg.Atmosphere.FaustoAirTemp.SummerPeakDay),
		path:        cfg.Atmosphere.SeaRISEGreenland.File,
	}, nil
}

func (m *SeaRISEGreenland) Init(geom *geometry.Geometry) error {
	return m.readPrecipitation(m.path)
}

func (m *SeaRISEGreenland) Update(geom *geometry.Geometry, t, dt float64) error {
	for j := 0; j < m.grid.My; j++ {
		for i := 0; i < m.grid.Mx; i++ {
			h := geom.IceSurfaceElevation.Get(i, j)
			lat := geom.Latitude.Get(i, j)
			lon := geom.Longitude.Get(i, j)

			m.tMeanAnnual.Set(i, j,
				273.15+faustoDMa+faustoGammaMa*h+faustoCMa*lat+faustoKappaMa*lon)
			m.tMeanSummer.Set(i, j,
				273.15+faustoDSummer+faustoGammaSummer*h+faustoCSummer*lat+faustoKappaSummer*lon)
		}
	}
	return nil
}
