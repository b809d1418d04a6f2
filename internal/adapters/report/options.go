package report

import "github.com/shopspring/decimal"

// Option applies a configuration option to the Reporter.
type Option func(*Reporter)

// WithTolerance sets the absolute score difference still counted as a match.
func WithTolerance(tol decimal.Decimal) Option {
	return func(r *Reporter) {
		if !tol.IsNegative() {
			r.tolerance = tol
		}
	}
}

// WithSampleLimit caps the number of sample lines per mismatch category.
func WithSampleLimit(n int) Option {
	return func(r *Reporter) {
		if n >= 0 {
			r.samples = n
		}
	}
}
