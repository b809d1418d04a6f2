package app

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/ryanwoodie/dmst-verify/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTolerance sets the absolute score difference still counted as a match.
func WithTolerance(tol decimal.Decimal) Option {
	return func(s *Service) {
		if !tol.IsNegative() {
			s.tolerance = tol
		}
	}
}

// WithSampleLimit caps the sample lines per mismatch category.
func WithSampleLimit(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.samples = n
		}
	}
}

// WithPrecision sets the decimal division precision in digits.
func WithPrecision(digits int) Option {
	return func(s *Service) {
		if digits > 0 {
			s.precision = digits
		}
	}
}

// WithBonusOverrides replaces entries of the shape bonus table,
// task kind -> decimal fraction string.
func WithBonusOverrides(overrides map[string]string) Option {
	return func(s *Service) {
		s.bonusOverrides = overrides
	}
}

// WithMetricsPath enables the Prometheus textfile export after the run.
func WithMetricsPath(path string) Option {
	return func(s *Service) {
		s.metricsPath = path
	}
}

// WithOutput redirects the report, which defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Service) {
		if w != nil {
			s.out = w
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}
