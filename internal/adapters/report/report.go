// Package report renders the mismatch summary for a verification run.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/ryanwoodie/dmst-verify/internal/domain/scoring"
)

// Defaults match the published DMSt QA procedure.
const (
	defaultSampleLimit = 10
	defaultTolerance   = "0.2"
)

// Reporter partitions comparisons into mismatches and prints the
// plain-text summary.
type Reporter struct {
	tolerance decimal.Decimal
	samples   int
}

// New creates a reporter with configuration options.
func New(opts ...Option) *Reporter {
	r := &Reporter{
		tolerance: decimal.RequireFromString(defaultTolerance),
		samples:   defaultSampleLimit,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Summary holds the partitioned outcome of one run. Mismatch slices keep
// encounter order.
type Summary struct {
	Checked        int
	FreeMismatches []scoring.Comparison
	TaskMismatches []scoring.Comparison
}

// Summarize partitions results by score type. A comparison with a nil
// expected or actual side matches vacuously and never lands in a
// mismatch slice.
func (r *Reporter) Summarize(results []scoring.Comparison) Summary {
	s := Summary{Checked: len(results)}
	for _, c := range results {
		if !c.FreeMatches(r.tolerance) {
			s.FreeMismatches = append(s.FreeMismatches, c)
		}
		if !c.TaskMatches(r.tolerance) {
			s.TaskMismatches = append(s.TaskMismatches, c)
		}
	}
	return s
}

// Write prints the summary for results to w: counts first, then up to
// the sample limit of mismatch lines per category. A clean run prints
// counts only.
func (r *Reporter) Write(w io.Writer, results []scoring.Comparison) Summary {
	s := r.Summarize(results)

	fmt.Fprintf(w, "Checked %d flights\n", s.Checked)
	fmt.Fprintf(w, "DMSt Free mismatches: %d\n", len(s.FreeMismatches))
	fmt.Fprintf(w, "DMSt Task mismatches: %d\n", len(s.TaskMismatches))

	if len(s.FreeMismatches) > 0 {
		fmt.Fprintf(w, "\nSample free mismatches:\n")
		for _, c := range capped(s.FreeMismatches, r.samples) {
			fmt.Fprintf(w, "flight %d (H=%d) -> calc %s / api %s\n",
				c.FlightID, c.Index, decString(c.FreeExpected), decString(c.FreeActual))
		}
	}
	if len(s.TaskMismatches) > 0 {
		fmt.Fprintf(w, "\nSample task mismatches:\n")
		for _, c := range capped(s.TaskMismatches, r.samples) {
			fmt.Fprintf(w, "flight %d (H=%d) -> calc %s / api %s [%s]\n",
				c.FlightID, c.Index, decString(c.TaskExpected), decString(c.TaskActual), c.TaskNote)
		}
	}
	return s
}

func capped(items []scoring.Comparison, n int) []scoring.Comparison {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func decString(d *decimal.Decimal) string {
	if d == nil {
		return "none"
	}
	return d.String()
}
