package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEquation  = 1
	DefaultLower     = 0.0
	DefaultUpper     = 3.141592653589793
	DefaultIntervals = 10
	DefaultDataDir   = ".simpson"
	DefaultLogLevel  = "warn"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Equation  int     `yaml:"equation"`
	Lower     float64 `yaml:"lower"`
	Upper     float64 `yaml:"upper"`
	Intervals int     `yaml:"intervals"`
	// Epsilon overrides the repair offset; zero means half a step.
	Epsilon float64 `yaml:"epsilon"`
	// SingularityTable enables the per-equation asymptote pre-check.
	SingularityTable bool   `yaml:"singularity_table"`
	Estimate         bool   `yaml:"estimate"`
	Save             bool   `yaml:"save"`
	DataDir          string `yaml:"data_dir"`
	LogLevel         string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Equation:         DefaultEquation,
		Lower:            DefaultLower,
		Upper:            DefaultUpper,
		Intervals:        DefaultIntervals,
		SingularityTable: true,
		Estimate:         true,
		DataDir:          DefaultDataDir,
		LogLevel:         DefaultLogLevel,
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
	if err := cfg.Validate(); err != nil {
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

// Validate checks the values an input provider would otherwise enforce.
// Whether Equation exists is left to the registry.
func (c *Config) Validate() error {
	if c.Lower >= c.Upper {
		return fmt.Errorf("%w: lower %g must be below upper %g", ErrInvalidConfig, c.Lower, c.Upper)
	}
	if c.Intervals <= 0 || c.Intervals%2 != 0 {
		return fmt.Errorf("%w: intervals must be a positive even integer, got %d", ErrInvalidConfig, c.Intervals)
	}
	if c.Epsilon < 0 {
		return fmt.Errorf("%w: epsilon must not be negative, got %g", ErrInvalidConfig, c.Epsilon)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
