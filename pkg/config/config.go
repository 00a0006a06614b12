// Package config loads and validates the run configuration for an OldSpot
// simulation: iteration count, mechanism subset, trace parsing options,
// time-unit display, output selection, metrics exposition, and logging.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete OldSpot run configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Mechanisms MechanismsConfig `yaml:"mechanisms"`
	Trace      TraceConfig      `yaml:"trace"`
	Reporting  ReportingConfig  `yaml:"reporting"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig controls the Monte-Carlo run itself.
type SimulationConfig struct {
	SystemFile string `yaml:"system_file"`
	Iterations int    `yaml:"iterations"`
	Seed       int64  `yaml:"seed"`
	TimeUnit   string `yaml:"time_unit"`
}

// MechanismsConfig selects which wearout mechanisms are active. An empty
// Enabled list means "all known mechanisms".
type MechanismsConfig struct {
	Enabled    []string `yaml:"enabled"`
	ParamsFile string   `yaml:"params_file"`
}

// TraceConfig controls activity-trace parsing.
type TraceConfig struct {
	Delimiter string `yaml:"delimiter"`
}

// ReportingConfig controls report persistence and formatting.
type ReportingConfig struct {
	OutputDir string   `yaml:"output_dir"`
	KeepLastN int      `yaml:"keep_last_n"`
	Formats   []string `yaml:"formats"`
}

// MetricsConfig controls the optional Prometheus progress exporter.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LoggingConfig controls the zerolog-backed logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Simulation: SimulationConfig{
			SystemFile: "system.xml",
			Iterations: 1000,
			Seed:       time.Now().UnixNano(),
			TimeUnit:   "years",
		},
		Mechanisms: MechanismsConfig{
			Enabled:    nil,
			ParamsFile: "",
		},
		Trace: TraceConfig{
			Delimiter: ",",
		},
		Reporting: ReportingConfig{
			OutputDir: "./reports",
			KeepLastN: 50,
			Formats:   []string{"json", "table"},
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Listen:  ":9101",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// path doesn't exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = "oldspot.yaml"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))
	if err := yaml.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for obvious errors.
func (c *Config) Validate() error {
	if c.Simulation.SystemFile == "" {
		return fmt.Errorf("simulation.system_file is required")
	}
	if c.Simulation.Iterations < 1 {
		return fmt.Errorf("simulation.iterations must be at least 1")
	}
	if c.Reporting.OutputDir == "" {
		return fmt.Errorf("reporting.output_dir is required")
	}
	if c.Reporting.KeepLastN < 0 {
		return fmt.Errorf("reporting.keep_last_n must not be negative")
	}
	if len(c.Trace.Delimiter) != 1 {
		return fmt.Errorf("trace.delimiter must be a single character")
	}
	return nil
}
