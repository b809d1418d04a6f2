// Package config defines tool configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Defaults for the recognized tunables.
const (
	defaultLogLevel  = "info"
	defaultTolerance = "0.2"
	defaultSamples   = 10
	defaultPrecision = 16

	// minPrecision is the smallest decimal working precision that keeps
	// the recomputation stable ahead of the tolerance comparison.
	minPrecision = 12
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Tolerance is the absolute score difference, in points, still
	// counted as a match. Kept as a decimal string to avoid float drift.
	Tolerance string `koanf:"tolerance"`

	// Samples caps the mismatch lines printed per report category.
	Samples int `koanf:"samples"`

	// Precision sets the decimal division precision in digits.
	Precision int `koanf:"precision"`

	// Bonus overrides entries of the shape bonus table,
	// task kind -> decimal fraction string.
	Bonus map[string]string `koanf:"bonus"`

	// MetricsOut, when set, is the path the Prometheus textfile is
	// written to after the run. Empty disables metrics export.
	MetricsOut string `koanf:"metrics_out"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:  defaultLogLevel,
		Tolerance: defaultTolerance,
		Samples:   defaultSamples,
		Precision: defaultPrecision,
	}
}

// Validate checks the tunables. It runs after loading and again after
// CLI flag overrides.
func (c *Config) Validate() error {
	tol, err := decimal.NewFromString(c.Tolerance)
	if err != nil {
		return fmt.Errorf("%w: tolerance %q is not a decimal", ErrInvalidConfig, c.Tolerance)
	}
	if tol.IsNegative() {
		return fmt.Errorf("%w: tolerance must not be negative", ErrInvalidConfig)
	}
	if c.Samples < 0 {
		return fmt.Errorf("%w: samples must not be negative", ErrInvalidConfig)
	}
	if c.Precision < minPrecision {
		return fmt.Errorf("%w: precision must be at least %d digits", ErrInvalidConfig, minPrecision)
	}
	for kind, val := range c.Bonus {
		if _, err := decimal.NewFromString(val); err != nil {
			return fmt.Errorf("%w: bonus for %q is not a decimal", ErrInvalidConfig, kind)
		}
	}
	return nil
}

// ToleranceDecimal returns the parsed tolerance. Validate must have
// succeeded first.
func (c *Config) ToleranceDecimal() decimal.Decimal {
	return decimal.RequireFromString(c.Tolerance)
}
