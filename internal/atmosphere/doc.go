// Package atmosphere provides near-surface air temperature and
// precipitation models for ice-sheet surface forcing.
//
// Each model implements the [Model] interface and reports two 2-D
// fields, mean annual air temperature (K) and precipitation flux
// (kg m-2 s-1), plus in-year time series at every grid point:
//
//   - [Uniform]: constant temperature and precipitation everywhere
//   - [Given]: fields read from a NetCDF file
//   - [CosineYearlyCycle]: prescribed annual mean and summer mean fields
//   - [PIK]: Antarctic temperature parameterizations (Martin et al.,
//     Huybrechts & de Wolde, ERA-Interim fits)
//   - [SeaRISEGreenland]: Fausto et al. (2009) Greenland parameterization
//   - [WeatherStation]: scalar time series applied over the whole domain
//
// Modifiers wrap any model and adjust its output; they compose left to
// right via [Registry.Create] using "+" separated specs, for example
// "searise_greenland+delta_T+paleo_precip":
//
//   - [DeltaT], [DeltaP]: scalar offsets from a forcing file
//   - [FracP]: scalar precipitation scaling
//   - [PaleoPrecip]: precipitation scaled by exp(c * delta_T)
//   - [Anomaly]: 2-D temperature and precipitation anomalies
//   - [LapseRates]: elevation-dependent corrections against a reference
//     surface
//
// # In-year cycle
//
// Models with distinct annual and summer means interpolate between them
// with a cosine of the fraction of the 365-day model year, peaking at
// the configured summer peak day.
package atmosphere
