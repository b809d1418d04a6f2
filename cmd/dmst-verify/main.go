// Command dmst-verify recomputes DMSt scores from flight geometry and
// flags records whose reported points disagree with the recomputation.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ryanwoodie/dmst-verify/internal/app"
	"github.com/ryanwoodie/dmst-verify/internal/config"
	"github.com/ryanwoodie/dmst-verify/pkg/logger"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dmst-verify",
		Short:         "Validate reported DMSt scores against recomputed values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newVerifyCmd())
	return root
}

func newVerifyCmd() *cobra.Command {
	var (
		tolerance  string
		samples    int
		logLevel   string
		metricsOut string
	)

	cmd := &cobra.Command{
		Use:   "verify <flights.jsonl>",
		Short: "Recompute DMSt free and task scores and report mismatches",
		Long: `Reads one flight detail record per line, recomputes the DMSt free and
task scores from geometry and handicap index, and compares them against
the points reported by the API. Mismatches beyond the tolerance are
printed for human review; they do not fail the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := logger.Init(); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			log := logger.Get()

			// Config layering: defaults -> file -> env, then explicit flags.
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("tolerance") {
				cfg.Tolerance = tolerance
			}
			if cmd.Flags().Changed("samples") {
				cfg.Samples = samples
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if cmd.Flags().Changed("metrics-out") {
				cfg.MetricsOut = metricsOut
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := logger.SetLevelString(cfg.LogLevel); err != nil {
				log.Warn(ctx, "invalid log_level; falling back to info",
					logger.String("log_level", cfg.LogLevel), logger.Error(err))
				_ = logger.SetLevelString("info")
			}

			svc := app.New(
				app.WithLogger(log),
				app.WithTolerance(cfg.ToleranceDecimal()),
				app.WithSampleLimit(cfg.Samples),
				app.WithPrecision(cfg.Precision),
				app.WithBonusOverrides(cfg.Bonus),
				app.WithMetricsPath(cfg.MetricsOut),
				app.WithOutput(cmd.OutOrStdout()),
			)
			return svc.Run(ctx, args[0])
		},
	}

	cmd.Flags().StringVar(&tolerance, "tolerance", config.New().Tolerance, "points tolerance before a score is flagged")
	cmd.Flags().IntVar(&samples, "samples", config.New().Samples, "sample lines per mismatch category")
	cmd.Flags().StringVar(&logLevel, "log-level", config.New().LogLevel, "log verbosity: debug, info, warn, error")
	cmd.Flags().StringVar(&metricsOut, "metrics-out", "", "write Prometheus textfile metrics to this path")
	return cmd
}
