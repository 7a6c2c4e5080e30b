package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultUniformTemperature   = 273.15 // K
	DefaultUniformPrecipitation = 1000.0 // kg m-2 year-1
	DefaultSummerPeakDay        = 196.0  // day of year
	DefaultPrecipExpFactor      = 0.07041666
)

type Config struct {
	Time       TimeConfig       `yaml:"time"`
	Atmosphere AtmosphereConfig `yaml:"atmosphere"`
	Probe      ProbeConfig      `yaml:"probe"`
}

type TimeConfig struct {
	Calendar string `yaml:"calendar"`
}

// ProbeConfig selects the cell reported by point diagnostics.
type ProbeConfig struct {
	I int `yaml:"i"`
	J int `yaml:"j"`
}

type AtmosphereConfig struct {
	Uniform          UniformConfig   `yaml:"uniform"`
	Given            FileConfig      `yaml:"given"`
	PIK              PIKConfig       `yaml:"pik"`
	SeaRISEGreenland FileConfig      `yaml:"searise_greenland"`
	YearlyCycle      FileConfig      `yaml:"yearly_cycle"`
	OneStation       FileConfig      `yaml:"one_station"`
	DeltaT           FileConfig      `yaml:"delta_t"`
	DeltaP           FileConfig      `yaml:"delta_p"`
	FracP            FileConfig      `yaml:"frac_p"`
	PaleoPrecip      FileConfig      `yaml:"paleo_precip"`
	Anomaly          FileConfig      `yaml:"anomaly"`
	LapseRate        LapseRateConfig `yaml:"lapse_rate"`
	FaustoAirTemp    FaustoConfig    `yaml:"fausto_air_temp"`

	// Exponential precipitation sensitivity to temperature offsets,
	// 1/Kelvin, used by the paleo_precip modifier.
	PrecipExponentialFactorForTemperature float64 `yaml:"precip_exponential_factor_for_temperature"`
}

type UniformConfig struct {
	Temperature   float64 `yaml:"temperature"`   // K
	Precipitation float64 `yaml:"precipitation"` // kg m-2 year-1
}

type FileConfig struct {
	File string `yaml:"file"`
}

type PIKConfig struct {
	File             string `yaml:"file"`
	Parameterization string `yaml:"parameterization"`
}

type LapseRateConfig struct {
	File string `yaml:"file"`
	// lapse rates per km of elevation gain
	TemperatureLapseRate   float64 `yaml:"temperature_lapse_rate"`   // K / km
	PrecipitationLapseRate float64 `yaml:"precipitation_lapse_rate"` // (kg m-2 year-1) / km
}

type FaustoConfig struct {
	SummerPeakDay float64 `yaml:"summer_peak_day"`
}

func Default() *Config {
	return &Config{
		Time: TimeConfig{Calendar: "365_day"},
		Atmosphere: AtmosphereConfig{
			Uniform: UniformConfig{
				Temperature:   DefaultUniformTemperature,
				Precipitation: DefaultUniformPrecipitation,
			},
			PIK: PIKConfig{Parameterization: "martin"},
			FaustoAirTemp: FaustoConfig{
				SummerPeakDay: DefaultSummerPeakDay,
			},
			PrecipExponentialFactorForTemperature: DefaultPrecipExpFactor,
		},
	}
}

// Load overlays a yaml file on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Time.Calendar != "365_day" {
		return nil, fmt.Errorf("config: unsupported calendar %q", cfg.Time.Calendar)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
