// Package forcing provides scalar time-dependent forcing read from NetCDF
// files: temperature offsets, precipitation offsets and scaling factors.
package forcing

import (
	"fmt"

	"github.com/y624745579/pism/internal/ncio"
)

// Scalar is a spatially-uniform forcing time series.
type Scalar struct {
	name   string
	times  []float64
	values []float64
}

func NewScalar(name string, times, values []float64) (*Scalar, error) {
	if len(times) == 0 {
		return nil, fmt.Errorf("forcing: %q has no records", name)
	}
	if len(times) != len(values) {
		return nil, fmt.Errorf("forcing: %q has %d values for %d times",
			name, len(values), len(times))
	}
	for k := 1; k < len(times); k++ {
		if times[k] <= times[k-1] {
			return nil, fmt.Errorf("forcing: %q has non-increasing times", name)
		}
	}
	return &Scalar{name: name, times: times, values: values}, nil
}

// ReadScalar loads a forcing series from a NetCDF file.
func ReadScalar(path, name string) (*Scalar, error) {
	times, values, err := ncio.ReadScalarSeries(path, name)
	if err != nil {
		return nil, err
	}
	return NewScalar(name, times, values)
}

func (s *Scalar) Name() string { return s.name }

// Times returns the record times in model seconds.
func (s *Scalar) Times() []float64 { return s.times }

// Value interpolates the series at time t: piecewise-linear between
// records, clamped outside the record range. A one-record series is
// constant everywhere.
func (s *Scalar) Value(t float64) float64 {
	n := len(s.times)
	if t <= s.times[0] {
		return s.values[0]
	}
	if t >= s.times[n-1] {
		return s.values[n-1]
	}
	k := 1
	for s.times[k] < t {
		k++
	}
	w := (t - s.times[k-1]) / (s.times[k] - s.times[k-1])
	return s.values[k-1] + w*(s.values[k]-s.values[k-1])
}

// Average returns the mean of the series over [t, t+dt].
func (s *Scalar) Average(t, dt float64) float64 {
	if dt <= 0 {
		return s.Value(t)
	}
	// midpoint rule, exact between records of a piecewise-linear series
	return s.Value(t + 0.5*dt)
}

// MaxTimestep reports how far an update starting at t may extend without
// crossing the end of the record range. A series with one record imposes
// no restriction.
func (s *Scalar) MaxTimestep(t float64) (float64, bool) {
	n := len(s.times)
	if n < 2 {
		return 0, false
	}
	last := s.times[n-1]
	if t >= last {
		return 0, false
	}
	return last - t, true
}
