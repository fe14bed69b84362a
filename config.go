package drawpack

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration file cannot be used.
var ErrInvalidConfig = errors.New("drawpack: invalid config")

// Config is the file form of the Context options. Zero fields keep
// their defaults.
//
//	tolerance: 0.1
//	max_slabs: 16
//	geometry_cache_size: 512
//	depth_base: 0
type Config struct {
	Tolerance         float64 `yaml:"tolerance"`
	MaxSlabs          int     `yaml:"max_slabs"`
	GeometryCacheSize *int    `yaml:"geometry_cache_size"`
	DepthBase         int32   `yaml:"depth_base"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("drawpack: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes and validates a YAML configuration.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.Tolerance < 0 || math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0):
		return fmt.Errorf("%w: tolerance %v", ErrInvalidConfig, c.Tolerance)
	case c.MaxSlabs < 0:
		return fmt.Errorf("%w: max_slabs %d", ErrInvalidConfig, c.MaxSlabs)
	case c.GeometryCacheSize != nil && *c.GeometryCacheSize < 0:
		return fmt.Errorf("%w: geometry_cache_size %d", ErrInvalidConfig, *c.GeometryCacheSize)
	}
	return nil
}

// Options converts c to Context options. Options passed to NewContext
// after these override them.
func (c Config) Options() []Option {
	var opts []Option
	if c.Tolerance > 0 {
		opts = append(opts, WithTolerance(c.Tolerance))
	}
	if c.MaxSlabs > 0 {
		opts = append(opts, WithMaxSlabs(c.MaxSlabs))
	}
	if c.GeometryCacheSize != nil {
		opts = append(opts, WithGeometryCacheSize(*c.GeometryCacheSize))
	}
	if c.DepthBase != 0 {
		opts = append(opts, WithDepthBase(c.DepthBase))
	}
	return opts
}
