// Package config holds the YAML experiment configuration for the CLI
// runner: model architecture, training hyperparameters, scan geometry and
// output settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one reconstruction experiment.
type Config struct {
	// Model parameters
	Model struct {
		// HiddenLayers is the number of hidden sine layers
		HiddenLayers int `yaml:"hiddenLayers"`

		// HiddenFeatures is the width of the hidden layers
		HiddenFeatures int `yaml:"hiddenFeatures"`

		// FirstOmega is the frequency factor of the first layer
		FirstOmega float64 `yaml:"firstOmega"`

		// HiddenOmega is the frequency factor of the hidden layers
		HiddenOmega float64 `yaml:"hiddenOmega"`

		// Seed seeds weight initialization
		Seed int64 `yaml:"seed"`
	} `yaml:"model"`

	// Training parameters
	Training struct {
		// Mode selects the fit: "sinogram" or "direct"
		Mode string `yaml:"mode"`

		// LearningRate for the optimizer
		LearningRate float32 `yaml:"learningRate"`

		// Epochs is the number of passes over the data
		Epochs int `yaml:"epochs"`

		// Optimizer is "adam" or "sgd"
		Optimizer string `yaml:"optimizer"`

		// Seed seeds batch sampling and angle shuffling
		Seed int64 `yaml:"seed"`
	} `yaml:"training"`

	// Scan geometry
	Scan struct {
		// Angles is the number of projection angles over [0, pi)
		Angles int `yaml:"angles"`

		// Bins is the number of detector bins
		Bins int `yaml:"bins"`

		// Samples is the number of integration samples per ray
		// (0 defaults to Bins)
		Samples int `yaml:"samples"`
	} `yaml:"scan"`

	// Output parameters
	Output struct {
		// Size is the side length of the phantom and the reconstruction
		Size int `yaml:"size"`

		// Dir is the directory PNG results are written to
		Dir string `yaml:"dir"`

		// Phantom selects the test scene: "disk", "gaussian" or "squares"
		Phantom string `yaml:"phantom"`
	} `yaml:"output"`
}

// Default returns a configuration with default values.
func Default() *Config {
	cfg := &Config{}

	cfg.Model.HiddenLayers = 3
	cfg.Model.HiddenFeatures = 256
	cfg.Model.FirstOmega = 30
	cfg.Model.HiddenOmega = 30

	cfg.Training.Mode = "sinogram"
	cfg.Training.LearningRate = 1e-4
	cfg.Training.Epochs = 100
	cfg.Training.Optimizer = "adam"

	cfg.Scan.Angles = 90
	cfg.Scan.Bins = 64

	cfg.Output.Size = 64
	cfg.Output.Dir = "out"
	cfg.Output.Phantom = "disk"

	return cfg
}

// Load reads a YAML configuration file over the defaults.
// If the file does not exist, the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}
