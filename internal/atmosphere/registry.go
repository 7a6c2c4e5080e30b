package atmosphere

import (
	"fmt"
	"sort"
	"strings"

	"github.com/y624745579/pism/internal/config"
	"github.com/y624745579/pism/internal/grid"
)

type ModelFactory func(g *grid.Grid, cfg *config.Config) (Model, error)

type ModifierFactory func(input Model, g *grid.Grid, cfg *config.Config) (Model, error)

// Registry maps model and modifier names to factories. Specs compose with
// "+": "uniform+delta_T+lapse_rate" wraps the uniform model in two
// modifiers, applied left to right.
type Registry struct {
	models    map[string]ModelFactory
	modifiers map[string]ModifierFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		models:    make(map[string]ModelFactory),
		modifiers: make(map[string]ModifierFactory),
	}

	r.models["uniform"] = func(g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewUniform(g, cfg)
	}
	r.models["given"] = func(g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewGiven(g, cfg)
	}
	r.models["yearly_cycle"] = func(g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewCosineYearlyCycle(g, cfg)
	}
	r.models["pik"] = func(g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewPIK(g, cfg)
	}
	r.models["searise_greenland"] = func(g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewSeaRISEGreenland(g, cfg)
	}
	r.models["weather_station"] = func(g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewWeatherStation(g, cfg)
	}

	r.modifiers["delta_T"] = func(in Model, g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewDeltaT(in, g, cfg)
	}
	r.modifiers["delta_P"] = func(in Model, g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewDeltaP(in, g, cfg)
	}
	r.modifiers["frac_P"] = func(in Model, g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewFracP(in, g, cfg)
	}
	r.modifiers["paleo_precip"] = func(in Model, g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewPaleoPrecip(in, g, cfg)
	}
	r.modifiers["anomaly"] = func(in Model, g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewAnomaly(in, g, cfg)
	}
	r.modifiers["lapse_rate"] = func(in Model, g *grid.Grid, cfg *config.Config) (Model, error) {
		return NewLapseRates(in, g, cfg)
	}

	return r
}

// Create builds a model from a spec string.
func (r *Registry) Create(spec string, g *grid.Grid, cfg *config.Config) (Model, error) {
	parts := strings.Split(spec, "+")

	factory, ok := r.models[parts[0]]
	if !ok {
		return nil, fmt.Errorf("atmosphere: unknown model %q (available: %s)",
			parts[0], strings.Join(r.Models(), ", "))
	}
	model, err := factory(g, cfg)
	if err != nil {
		return nil, err
	}

	for _, name := range parts[1:] {
		wrap, ok := r.modifiers[name]
		if !ok {
			return nil, fmt.Errorf("atmosphere: unknown modifier %q (available: %s)",
				name, strings.Join(r.Modifiers(), ", "))
		}
		if model, err = wrap(model, g, cfg); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func (r *Registry) Models() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Modifiers() []string {
	names := make([]string, 0, len(r.modifiers))
	for name := range r.modifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
