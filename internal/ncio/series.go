package ncio

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// SeriesVar is one scalar time-series variable in a forcing file.
type SeriesVar struct {
	Name   string
	Units  string
	Values []float64
}

// WriteSeries creates a forcing file with a time coordinate and one or more
// scalar variables defined along it.
func WriteSeries(path string, times []float64, vars ...SeriesVar) error {
	for _, v := range vars {
		if len(v.Values) != len(times) {
			return fmt.Errorf("ncio: series %q has %d values for %d times",
				v.Name, len(v.Values), len(times))
		}
	}

	h := cdf.NewHeader([]string{"time"}, []int{len(times)})
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "seconds since 1-1-1")
	h.AddAttribute("time", "calendar", "365_day")
	for _, v := range vars {
		h.AddVariable(v.Name, []string{"time"}, []float64{0})
		h.AddAttribute(v.Name, "units", v.Units)
	}
	h.Define()

	ff, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ncio: %w", err)
	}
	defer ff.Close()

	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("ncio: creating %s: %w", path, err)
	}

	if err := writeVar(f, "time", times); err != nil {
		return fmt.Errorf("ncio: writing time to %s: %w", path, err)
	}
	for _, v := range vars {
		if err := writeVar(f, v.Name, v.Values); err != nil {
			return fmt.Errorf("ncio: writing %q to %s: %w", v.Name, path, err)
		}
	}

	if err := cdf.UpdateNumRecs(ff); err != nil {
		return fmt.Errorf("ncio: finalizing %s: %w", path, err)
	}
	return nil
}

// WriteScalarSeries writes a single-variable forcing file.
func WriteScalarSeries(path, name, units string, values, times []float64) error {
	return WriteSeries(path, times, SeriesVar{Name: name, Units: units, Values: values})
}

// ReadScalarSeries reads a scalar variable and its time coordinate.
func ReadScalarSeries(path, name string) (times, values []float64, err error) {
	f, err := Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	read1d := func(v string) ([]float64, error) {
		a, err := f.ReadArray(v)
		if err != nil {
			return nil, err
		}
		if len(a.Shape) != 1 {
			return nil, fmt.Errorf("ncio: %q in %s is not one-dimensional", v, path)
		}
		return a.Elements, nil
	}

	times, err = read1d("time")
	if err != nil {
		return nil, nil, err
	}
	values, err = read1d(name)
	if err != nil {
		return nil, nil, err
	}
	if len(times) != len(values) {
		return nil, nil, fmt.Errorf("ncio: %q in %s has %d values for %d times",
			name, path, len(values), len(times))
	}
	return times, values, nil
}
