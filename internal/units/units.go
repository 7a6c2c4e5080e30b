package units

import "fmt"

const (
	// SecondsPerYear is the length of the unit "year" used in conversions
	// between per-year and per-second rates (udunits convention).
	SecondsPerYear = 3.15569259747e7

	// SecondsPerModelYear is the length of a model year on the 365-day
	// calendar, used for the yearly temperature cycle.
	SecondsPerModelYear = 365.0 * 86400.0
)

// Secpera converts a velocity in m s-1 to m year-1.
func Secpera(v float64) float64 {
	return v * SecondsPerYear
}

type pair struct {
	from, to string
}

var factors = map[pair]float64{
	{"kg m-2 year-1", "kg m-2 s-1"}: 1.0 / SecondsPerYear,
	{"kg m-2 s-1", "kg m-2 year-1"}: SecondsPerYear,
	{"m s-1", "m year-1"}:           SecondsPerYear,
	{"m year-1", "m s-1"}:           1.0 / SecondsPerYear,
}

func Convert(v float64, from, to string) (float64, error) {
	if from == to {
		return v, nil
	}
	f, ok := factors[pair{from, to}]
	if !ok {
		return 0, fmt.Errorf("units: no conversion from %q to %q", from, to)
	}
	return v * f, nil
}

// MustConvert is Convert for unit pairs known at compile time.
func MustConvert(v float64, from, to string) float64 {
	out, err := Convert(v, from, to)
	if err != nil {
		panic(err)
	}
	return out
}
