// Package app composes the loader, verifier, and reporter into one
// verification run.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ryanwoodie/dmst-verify/internal/adapters/jsonl"
	"github.com/ryanwoodie/dmst-verify/internal/adapters/report"
	"github.com/ryanwoodie/dmst-verify/internal/domain/model"
	"github.com/ryanwoodie/dmst-verify/internal/domain/scoring"
	"github.com/ryanwoodie/dmst-verify/pkg/logger"
	"github.com/ryanwoodie/dmst-verify/pkg/metrics"
)

// Default run configuration.
const (
	defaultSamples   = 10
	defaultPrecision = 16
)

// Service runs the DMSt verification pipeline: stream records, recompute
// scores, report mismatches. One pass, single-threaded; the results
// slice lives for the run and is discarded with it.
type Service struct {
	runID string

	tolerance      decimal.Decimal
	samples        int
	precision      int
	bonusOverrides map[string]string
	metricsPath    string
	out            io.Writer
	log            logger.Logger
}

// New creates a service with configuration options.
func New(opts ...Option) *Service {
	s := &Service{
		runID:     uuid.NewString(),
		tolerance: decimal.RequireFromString("0.2"),
		samples:   defaultSamples,
		precision: defaultPrecision,
		out:       os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	s.log = s.log.Named("verify")
	return s
}

// Run verifies every record in the JSONL file at path and prints the
// summary. Mismatches are the tool's output, not an error; Run fails
// only on a missing file, a malformed line, or bad tunables.
func (s *Service) Run(ctx context.Context, path string) error {
	start := time.Now()

	// Working precision for all decimal division in this run.
	decimal.DivisionPrecision = s.precision

	table := scoring.DefaultBonusTable()
	if err := table.Override(s.bonusOverrides); err != nil {
		return fmt.Errorf("bonus overrides: %w", err)
	}
	verifier := scoring.NewVerifier(scoring.WithBonusTable(table))

	s.log.Info(ctx, "starting verification",
		logger.String("run_id", s.runID),
		logger.String("input", path),
		logger.String("tolerance", s.tolerance.String()))

	var results []scoring.Comparison
	skipped := 0
	reader := jsonl.NewReader()
	err := reader.Each(ctx, path, func(rec model.FlightRecord) error {
		cmp, ok := verifier.Verify(&rec)
		if !ok {
			skipped++
			s.log.Debug(ctx, "record out of scope", logger.Int64("flight_id", rec.ID))
			return nil
		}
		results = append(results, cmp)
		return nil
	})
	if err != nil {
		return err
	}

	reporter := report.New(
		report.WithTolerance(s.tolerance),
		report.WithSampleLimit(s.samples),
	)
	summary := reporter.Write(s.out, results)

	m := metrics.NewManager(metrics.WithConstLabels(map[string]string{"run": s.runID}))
	m.RecordChecked(summary.Checked)
	m.RecordSkipped(skipped)
	m.RecordMismatches(len(summary.FreeMismatches), len(summary.TaskMismatches))
	m.RecordRunDuration(time.Since(start))
	if s.metricsPath != "" {
		if err := m.WriteTextfile(s.metricsPath); err != nil {
			// Metrics export is best-effort; the verification itself succeeded.
			s.log.Warn(ctx, "metrics export failed", logger.Error(err))
		}
	}

	s.log.Info(ctx, "verification complete",
		logger.String("run_id", s.runID),
		logger.Int("checked", summary.Checked),
		logger.Int("skipped", skipped),
		logger.Int("free_mismatches", len(summary.FreeMismatches)),
		logger.Int("task_mismatches", len(summary.TaskMismatches)),
		logger.String("duration", time.Since(start).String()))
	return nil
}
