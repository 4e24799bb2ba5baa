package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fitcsv/internal/amplitude"
	"github.com/san-kum/fitcsv/internal/bininfo"
)

const (
	DefaultOutput  = "fits.csv"
	DefaultBinsOut = "data.csv"
)

// Config holds the extraction settings a run can load from yaml.
// Command-line flags override whatever is set here.
type Config struct {
	// Output is the csv path; a missing .csv suffix is appended.
	Output string `yaml:"output"`
	// AcceptanceCorrected selects generated instead of detected
	// intensities.
	AcceptanceCorrected bool `yaml:"acceptance_corrected"`
	// Sorted orders input files by the last number in their path so
	// row order follows bin order.
	Sorted bool `yaml:"sorted"`
	// BackgroundMarkers flag amplitudes excluded from decoding.
	BackgroundMarkers []string `yaml:"background_markers"`
	// MassColumn names the invariant-mass column of bin data files.
	MassColumn string `yaml:"mass_column"`
	// Live enables the terminal progress view.
	Live bool `yaml:"live"`
}

func DefaultConfig() *Config {
	return &Config{
		Output:            DefaultOutput,
		Sorted:            true,
		BackgroundMarkers: append([]string(nil), amplitude.DefaultMarkers...),
		MassColumn:        bininfo.DefaultMassColumn,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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
