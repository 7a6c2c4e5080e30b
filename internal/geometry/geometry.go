package geometry

import "github.com/y624745579/pism/internal/grid"

const (
	IceDensity   = 910.0  // kg m-3
	OceanDensity = 1028.0 // kg m-3
)

// Cell types assigned by EnsureConsistency. The grounded-ice value matches
// the mask convention of the inversion output files.
const (
	CellIceFree  = 0.0
	CellGrounded = 2.0
	CellFloating = 3.0
)

// Geometry bundles the surface description an atmosphere model reads.
type Geometry struct {
	Grid *grid.Grid

	Latitude            *grid.Scalar
	Longitude           *grid.Scalar
	BedElevation        *grid.Scalar
	SeaLevel            *grid.Scalar
	IceThickness        *grid.Scalar
	IceSurfaceElevation *grid.Scalar
	CellType            *grid.Scalar
}

func New(g *grid.Grid) *Geometry {
	geom := &Geometry{
		Grid:                g,
		Latitude:            grid.NewScalar(g, "lat").SetAttrs("latitude", "degree_north", "latitude"),
		Longitude:           grid.NewScalar(g, "lon").SetAttrs("longitude", "degree_east", "longitude"),
		BedElevation:        grid.NewScalar(g, "topg").SetAttrs("bedrock surface elevation", "m", "bedrock_altitude"),
		SeaLevel:            grid.NewScalar(g, "sea_level").SetAttrs("sea level elevation", "m", ""),
		IceThickness:        grid.NewScalar(g, "thk").SetAttrs("land ice thickness", "m", "land_ice_thickness"),
		IceSurfaceElevation: grid.NewScalar(g, "usurf").SetAttrs("ice upper surface elevation", "m", "surface_altitude"),
		CellType:            grid.NewScalar(g, "mask").SetAttrs("ice extent mask", "", ""),
	}
	return geom
}

// EnsureConsistency recomputes surface elevation and cell type from bed,
// sea level and thickness using the flotation criterion.
func (g *Geometry) EnsureConsistency(thicknessThreshold float64) {
	for j := 0; j < g.Grid.My; j++ {
		for i := 0; i < g.Grid.Mx; i++ {
			bed := g.BedElevation.Get(i, j)
			sea := g.SeaLevel.Get(i, j)
			thk := g.IceThickness.Get(i, j)

			waterDepth := sea - bed
			grounded := thk*IceDensity >= waterDepth*OceanDensity

			switch {
			case thk <= thicknessThreshold:
				g.CellType.Set(i, j, CellIceFree)
				if grounded {
					g.IceSurfaceElevation.Set(i, j, bed)
				} else {
					g.IceSurfaceElevation.Set(i, j, sea)
				}
			case grounded:
				g.CellType.Set(i, j, CellGrounded)
				g.IceSurfaceElevation.Set(i, j, bed+thk)
			default:
				g.CellType.Set(i, j, CellFloating)
				g.IceSurfaceElevation.Set(i, j, sea+thk*(1.0-IceDensity/OceanDensity))
			}
		}
	}
}
