// Package pipeline runs the frequency analysis of an eclipsing-binary light
// curve as a fixed sequence of prewhitening stages:
//
//  1. extract all frequencies
//  3. find the orbital period and lock its harmonics
//  4. add missing harmonics
//  5. extract further free frequencies
//  7. reduce the model
//
// Stage numbers follow the full analysis recipe; the non-linear fits of
// stages 2, 6 and 8 are not part of this package. Every stage is recorded
// with its model, statistics and formal errors.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
	"github.com/cwbudde/algo-lightcurve/analysis/period"
	"github.com/cwbudde/algo-lightcurve/analysis/prewhiten"
	"github.com/cwbudde/algo-lightcurve/dsp/periodogram"
	"github.com/cwbudde/algo-lightcurve/stats/selection"
	"github.com/cwbudde/algo-lightcurve/stats/uncertainty"
)

var (
	// ErrNoFrequencies is returned when the initial extraction finds nothing.
	ErrNoFrequencies = errors.New("pipeline: no frequencies found")
	// ErrPeriodTooLong is returned when the time base covers less than 1.1
	// orbital periods.
	ErrPeriodTooLong = errors.New("pipeline: period over time base is too long")
	// ErrTooFewHarmonics is returned when fewer than Config.MinHarmonics
	// harmonics of the orbital period were extracted.
	ErrTooFewHarmonics = errors.New("pipeline: not enough harmonics found")
)

// Stage numbers.
const (
	StageExtract               = 1
	StageLockHarmonics         = 3
	StageAdditionalHarmonics   = 4
	StageAdditionalFrequencies = 5
	StageReduce                = 7
)

var stageNames = map[int]string{
	StageExtract:               "extract",
	StageLockHarmonics:         "lock-harmonics",
	StageAdditionalHarmonics:   "additional-harmonics",
	StageAdditionalFrequencies: "additional-frequencies",
	StageReduce:                "reduce",
}

// Config controls Run.
type Config struct {
	// Period is a known orbital period. Zero searches for it.
	Period float64
	// DoublePeriodThreshold is passed to period.FindOrbitalPeriod.
	DoublePeriodThreshold float64
	// HarmonicTolerance overrides the tolerance for recognising locked
	// harmonics. Zero keeps harmonic.TightTolerance.
	HarmonicTolerance float64
	// MinHarmonics is the least number of harmonics needed to lock the period.
	MinHarmonics int
	// UniformErrors replaces all flux errors by their maximum.
	UniformErrors bool
	// NoiseWindow is the width of the running mean for the noise level at
	// each frequency.
	NoiseWindow float64
	// Logger receives stage summaries.
	Logger zerolog.Logger
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		DoublePeriodThreshold: period.DefaultDoublePeriodThreshold,
		MinHarmonics:          2,
		UniformErrors:         true,
		NoiseWindow:           1,
		Logger:                zerolog.Nop(),
	}
}

// Stage is the outcome of one analysis stage.
type Stage struct {
	Number   int
	Name     string
	POrb     float64
	Result   prewhiten.Result
	State    selection.State
	Errors   uncertainty.Errors
	POrbErr  float64
	SNR      []float64
	Duration time.Duration
}

// Report collects all stages run so far.
type Report struct {
	Stages      []Stage
	POrb        float64
	SNThreshold float64
}

// Final returns the last stage, or false when no stage completed.
func (r Report) Final() (Stage, bool) {
	if len(r.Stages) == 0 {
		return Stage{}, false
	}
	return r.Stages[len(r.Stages)-1], true
}

// Run analyses s. The returned report holds every completed stage even when
// an error stops the analysis early. ctx is checked between stages.
func Run(ctx context.Context, s *prewhiten.Series, cfg Config) (Report, error) {
	if cfg.MinHarmonics < 1 {
		cfg.MinHarmonics = 1
	}
	if cfg.UniformErrors {
		s = s.WithUniformErrors()
	}
	opts := []prewhiten.Option{
		prewhiten.WithLogger(cfg.Logger),
		prewhiten.WithHarmonicTolerance(cfg.HarmonicTolerance),
	}
	r := runner{s: s, cfg: cfg, opts: opts}
	r.report.SNThreshold = selection.SNThreshold(s.Len())

	if err := canceled(ctx); err != nil {
		return r.report, err
	}
	res, err := r.timed(StageExtract, 0, func() (prewhiten.Result, error) {
		return prewhiten.ExtractAll(s, opts...)
	})
	if err != nil {
		return r.report, err
	}
	if len(res.Sinusoids) == 0 {
		return r.report, ErrNoFrequencies
	}

	if err := canceled(ctx); err != nil {
		return r.report, err
	}
	pOrb, err := r.orbitalPeriod(res)
	r.report.POrb = pOrb
	if err != nil {
		return r.report, err
	}

	stages := []struct {
		number int
		run    func(prewhiten.Result) (prewhiten.Result, error)
	}{
		{StageLockHarmonics, func(in prewhiten.Result) (prewhiten.Result, error) {
			return prewhiten.FixHarmonicFrequency(s, in, pOrb, opts...)
		}},
		{StageAdditionalHarmonics, func(in prewhiten.Result) (prewhiten.Result, error) {
			return prewhiten.ExtractAdditionalHarmonics(s, in, pOrb, opts...)
		}},
		{StageAdditionalFrequencies, func(in prewhiten.Result) (prewhiten.Result, error) {
			return prewhiten.ExtractAdditionalFrequencies(s, in, pOrb, opts...)
		}},
		{StageReduce, func(in prewhiten.Result) (prewhiten.Result, error) {
			return prewhiten.ReduceFrequenciesHarmonics(s, in, pOrb, opts...)
		}},
	}
	for _, st := range stages {
		if err := canceled(ctx); err != nil {
			return r.report, err
		}
		in := res
		if res, err = r.timed(st.number, pOrb, func() (prewhiten.Result, error) { return st.run(in) }); err != nil {
			return r.report, err
		}
	}
	return r.report, nil
}

func canceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

type runner struct {
	s      *prewhiten.Series
	cfg    Config
	opts   []prewhiten.Option
	report Report
}

// orbitalPeriod returns the configured or searched period and applies the
// time base and harmonic count guards.
func (r *runner) orbitalPeriod(res prewhiten.Result) (float64, error) {
	pOrb := r.cfg.Period
	if pOrb <= 0 {
		var err error
		pOrb, err = period.FindOrbitalPeriod(r.s.Times(), r.s.Flux(), res.Sinusoids.Freqs(),
			period.WithDoublePeriodThreshold(r.cfg.DoublePeriodThreshold),
			period.WithLogger(r.cfg.Logger))
		if err != nil {
			return 0, fmt.Errorf("pipeline: orbital period: %w", err)
		}
	}

	cycles := r.s.Span() / pOrb
	if cycles < 2 {
		r.cfg.Logger.Warn().Float64("p_orb", pOrb).Float64("cycles", cycles).Msg("period over time base is less than two")
		if cycles < 1.1 {
			return pOrb, fmt.Errorf("%w: %.3f cycles", ErrPeriodTooLong, cycles)
		}
		return pOrb, nil
	}
	harm := harmonic.FromPattern(res.Sinusoids.Freqs(), pOrb, r.s.Resolution()/2)
	if len(harm) < r.cfg.MinHarmonics {
		return pOrb, fmt.Errorf("%w: %d < %d", ErrTooFewHarmonics, len(harm), r.cfg.MinHarmonics)
	}
	return pOrb, nil
}

// timed runs one stage and appends its record.
func (r *runner) timed(number int, pOrb float64, run func() (prewhiten.Result, error)) (prewhiten.Result, error) {
	start := time.Now()
	res, err := run()
	if err != nil {
		return prewhiten.Result{}, fmt.Errorf("pipeline: stage %d (%s): %w", number, stageNames[number], err)
	}
	st, err := r.describe(number, pOrb, res)
	if err != nil {
		return prewhiten.Result{}, fmt.Errorf("pipeline: stage %d (%s): %w", number, stageNames[number], err)
	}
	st.Duration = time.Since(start)
	r.report.Stages = append(r.report.Stages, st)

	r.cfg.Logger.Info().
		Int("stage", number).
		Str("name", st.Name).
		Int("n_sin", len(res.Sinusoids)).
		Int("n_param", st.State.NParam).
		Float64("bic", st.State.BIC).
		Float64("noise", st.State.NoiseLevel).
		Dur("took", st.Duration).
		Msg("stage complete")
	return res, nil
}

// describe computes the statistics, formal errors and S/N of a stage result.
func (r *runner) describe(number int, pOrb float64, res prewhiten.Result) (Stage, error) {
	st := Stage{Number: number, Name: stageNames[number], POrb: pOrb, Result: res}

	var err error
	if st.State, err = r.s.State(res, pOrb, r.opts...); err != nil {
		return Stage{}, err
	}
	resid := r.s.Residual(res)
	if st.Errors, err = uncertainty.Formal(r.s.Times(), resid, res.Sinusoids, r.s.Segments()); err != nil {
		return Stage{}, err
	}

	if len(res.Sinusoids) > 0 {
		noise, err := periodogram.NoiseAt(res.Sinusoids.Freqs(), r.s.Times(), resid, r.cfg.NoiseWindow)
		if err != nil {
			return Stage{}, err
		}
		st.SNR = make([]float64, len(noise))
		for i, nl := range noise {
			st.SNR[i] = res.Sinusoids[i].Ampl / nl
		}
	}

	if pOrb > 0 {
		tol := r.cfg.HarmonicTolerance
		if tol <= 0 {
			tol = harmonic.TightTolerance
		}
		harm := harmonic.FromPattern(res.Sinusoids.Freqs(), pOrb, tol)
		errs := make([]float64, len(harm))
		usable := len(harm) > 0
		for i, m := range harm {
			errs[i] = st.Errors.Freq[m.Index]
			usable = usable && errs[i] > 0
		}
		// A noiseless fit has zero formal errors and no period error.
		if usable {
			if st.POrbErr, err = uncertainty.PeriodError(pOrb, errs, harm.Numbers()); err != nil {
				return Stage{}, err
			}
		}
	}
	return st, nil
}
