package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lightcurve/analysis/pipeline"
	"github.com/cwbudde/algo-lightcurve/analysis/prewhiten"
	"github.com/cwbudde/algo-lightcurve/internal/config"
	"github.com/cwbudde/algo-lightcurve/internal/logging"
)

type options struct {
	configPath     string
	period         float64
	gap            float64
	format         string
	logLevel       string
	weightedErrors bool
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "lcfreq [flags] <light-curve>",
		Short: "Extract frequencies and orbital harmonics from a light curve",
		Long: "lcfreq prewhitens a light curve with Lomb-Scargle periodograms, finds the\n" +
			"orbital period, locks its harmonics and reduces the sinusoid model.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	f.Float64Var(&opts.period, "period", 0, "known orbital period (0 searches for it)")
	f.Float64Var(&opts.gap, "gap", 0, "start a new segment where the time step exceeds this (0 = one segment)")
	f.StringVar(&opts.format, "format", "table", "output format (table, json)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level override (trace, debug, info, warn, error, disabled)")
	f.BoolVar(&opts.weightedErrors, "weighted-errors", false, "keep per-point flux errors instead of their maximum")
	return cmd
}

func run(cmd *cobra.Command, path string, opts options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	lc, err := readLightCurveFile(path, opts.gap)
	if err != nil {
		return err
	}
	s, err := prewhiten.NewSeries(lc.times, lc.flux, lc.errs, lc.segs)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	logger.Info().
		Str("file", path).
		Int("points", s.Len()).
		Int("segments", len(lc.segs)).
		Float64("span", s.Span()).
		Msg("light curve loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, runErr := pipeline.Run(ctx, s, cfg.Analysis.Pipeline(logger))
	if len(report.Stages) > 0 {
		if err := writeReport(cmd.OutOrStdout(), opts.format, s, report); err != nil {
			return err
		}
	}
	return runErr
}

// loadConfig applies command-line overrides on top of the file or defaults.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.Default()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("period") {
		cfg.Analysis.Period = opts.period
	}
	if flags.Changed("weighted-errors") {
		cfg.Analysis.WeightedErrors = opts.weightedErrors
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
