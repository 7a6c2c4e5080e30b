package render

import (
	"image/color"
	"math"
)

// A Colormap maps a normalized value in [0, 1] to a color.
type Colormap func(t float64) color.RGBA

// BlueWhiteRed is a diverging scale for signed difference fields: blue
// below the midpoint, white at it, red above.
func BlueWhiteRed(t float64) color.RGBA {
	t = clamp01(t)
	if t < 0.5 {
		f := t * 2
		return color.RGBA{
			R: uint8(255 * f),
			G: uint8(255 * f),
			B: 255,
			A: 255,
		}
	}
	f := (t - 0.5) * 2
	return color.RGBA{
		R: 255,
		G: uint8(255 * (1 - f)),
		B: uint8(255 * (1 - f)),
		A: 255,
	}
}

// viridisStops are control points of the matplotlib viridis scale.
var viridisStops = [][3]float64{
	{0.267, 0.005, 0.329},
	{0.283, 0.141, 0.458},
	{0.254, 0.265, 0.530},
	{0.207, 0.372, 0.553},
	{0.164, 0.471, 0.558},
	{0.128, 0.567, 0.551},
	{0.135, 0.659, 0.518},
	{0.267, 0.749, 0.441},
	{0.478, 0.821, 0.318},
	{0.741, 0.873, 0.150},
	{0.993, 0.906, 0.144},
}

// Viridis is a sequential scale for magnitude fields.
func Viridis(t float64) color.RGBA {
	t = clamp01(t)
	pos := t * float64(len(viridisStops)-1)
	i := int(pos)
	if i >= len(viridisStops)-1 {
		i = len(viridisStops) - 2
	}
	f := pos - float64(i)
	a, b := viridisStops[i], viridisStops[i+1]
	return color.RGBA{
		R: uint8(255 * (a[0] + f*(b[0]-a[0]))),
		G: uint8(255 * (a[1] + f*(b[1]-a[1]))),
		B: uint8(255 * (a[2] + f*(b[2]-a[2]))),
		A: 255,
	}
}

// A Norm maps data values to [0, 1], clamping out-of-range values.
type Norm struct {
	lo, hi float64
	log    bool
}

// Linear normalizes linearly between lo and hi.
func Linear(lo, hi float64) Norm {
	return Norm{lo: lo, hi: hi}
}

// Symmetric normalizes linearly on [-cap, +cap], putting zero at 0.5.
func Symmetric(cap float64) Norm {
	return Norm{lo: -cap, hi: cap}
}

// Log normalizes logarithmically between lo and hi; lo must be positive.
// Values at or below lo map to 0.
func Log(lo, hi float64) Norm {
	return Norm{lo: lo, hi: hi, log: true}
}

func (n Norm) Apply(v float64) float64 {
	if n.log {
		if v <= n.lo {
			return 0
		}
		return clamp01(math.Log(v/n.lo) / math.Log(n.hi/n.lo))
	}
	return clamp01((v - n.lo) / (n.hi - n.lo))
}

// Ticks returns evenly spaced tick values for a colorbar; logarithmic
// norms tick at powers spaced evenly in log space.
func (n Norm) Ticks(count int) []float64 {
	if count < 2 {
		count = 2
	}
	ticks := make([]float64, count)
	for i := range ticks {
		f := float64(i) / float64(count-1)
		if n.log {
			ticks[i] = n.lo * math.Pow(n.hi/n.lo, f)
		} else {
			ticks[i] = n.lo + f*(n.hi-n.lo)
		}
	}
	return ticks
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
