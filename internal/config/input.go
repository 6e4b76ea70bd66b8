// Package config loads and validates experiment configuration. All runs work
// with zero configuration: the defaults reproduce the canonical demo and
// sweep parameters.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DemoSettings configures the fixed demonstration run.
type DemoSettings struct {
	Seed             uint64  `yaml:"seed"`
	Runtime          float64 `yaml:"runtime"`
	MeanInterarrival float64 `yaml:"mean_interarrival"`
	ServiceLow       float64 `yaml:"service_low"`
	ServiceHigh      float64 `yaml:"service_high"`
}

// SweepSettings configures the sweep of the service-time upper bound.
type SweepSettings struct {
	Low              float64 `yaml:"low"`
	High             float64 `yaml:"high"`
	Points           int     `yaml:"points"`
	Trials           int     `yaml:"trials"`
	Horizon          float64 `yaml:"horizon"`
	MeanInterarrival float64 `yaml:"mean_interarrival"`
	ServiceLow       float64 `yaml:"service_low"`
	Seed             uint64  `yaml:"seed"`
	Parallelism      int     `yaml:"parallelism"`
}

// OutputSettings selects the report format.
type OutputSettings struct {
	Format string `yaml:"format"`
}

// Config is the full experiment configuration.
type Config struct {
	Demo   DemoSettings   `yaml:"demo"`
	Sweep  SweepSettings  `yaml:"sweep"`
	Output OutputSettings `yaml:"output"`
}

// Default returns the canonical configuration: a 10-unit demo run with seed
// 13579 and service bounds [0, 0.8], and a sweep of 10 values of b from 0.1
// to 3.0 with 25 trials of 1000 time units each.
func Default() *Config {
	return &Config{
		Demo: DemoSettings{
			Seed:             13579,
			Runtime:          10,
			MeanInterarrival: 1.2,
			ServiceLow:       0,
			ServiceHigh:      0.8,
		},
		Sweep: SweepSettings{
			Low:              0.1,
			High:             3.0,
			Points:           10,
			Trials:           25,
			Horizon:          1000,
			MeanInterarrival: 1.2,
			ServiceLow:       0,
			Seed:             13579,
		},
		Output: OutputSettings{Format: "console"},
	}
}

// InputParser handles parsing of configuration files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file. Fields absent from the
// file keep their default values.
func (ip *InputParser) LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfiguration rejects configurations the simulation cannot run.
// Errors name the offending field.
func (ip *InputParser) ValidateConfiguration(config *Config) error {
	if config.Demo.Runtime <= 0 {
		return fmt.Errorf("demo.runtime must be positive, got %g", config.Demo.Runtime)
	}
	if config.Demo.MeanInterarrival <= 0 {
		return fmt.Errorf("demo.mean_interarrival must be positive, got %g", config.Demo.MeanInterarrival)
	}
	if config.Demo.ServiceLow > config.Demo.ServiceHigh {
		return fmt.Errorf("demo.service_low %g exceeds demo.service_high %g",
			config.Demo.ServiceLow, config.Demo.ServiceHigh)
	}
	if config.Sweep.Points < 2 {
		return fmt.Errorf("sweep.points must be at least 2, got %d", config.Sweep.Points)
	}
	if config.Sweep.Low > config.Sweep.High {
		return fmt.Errorf("sweep.low %g exceeds sweep.high %g", config.Sweep.Low, config.Sweep.High)
	}
	if config.Sweep.Trials <= 0 {
		return fmt.Errorf("sweep.trials must be positive, got %d", config.Sweep.Trials)
	}
	if config.Sweep.Horizon <= 0 {
		return fmt.Errorf("sweep.horizon must be positive, got %g", config.Sweep.Horizon)
	}
	if config.Sweep.MeanInterarrival <= 0 {
		return fmt.Errorf("sweep.mean_interarrival must be positive, got %g", config.Sweep.MeanInterarrival)
	}
	if config.Sweep.Parallelism < 0 {
		return fmt.Errorf("sweep.parallelism must not be negative, got %d", config.Sweep.Parallelism)
	}
	switch config.Output.Format {
	case "console", "csv", "json":
	default:
		return fmt.Errorf("output.format must be one of console, csv, json; got %q", config.Output.Format)
	}
	return nil
}
