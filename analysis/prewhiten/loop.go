package prewhiten

import (
	"math"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

// ExtractAll prewhitens the series from scratch: starting with a linear trend
// only, it appends the strongest residual peak, refines the sinusoids it is
// not resolved from, refits the trend, and continues while the BIC improves
// by more than 2. The last accepted model is returned.
func ExtractAll(s *Series, opts ...Option) (Result, error) {
	w := newWorkspace(s)
	tr, err := w.fitTrend(nil)
	if err != nil {
		return Result{}, err
	}
	return prewhiten(s, Result{Trend: tr}, FreeSearch, 0, opts)
}

// ExtractAdditionalFrequencies continues prewhitening from an existing model
// with locked harmonics of pOrb, skipping frequencies close to the harmonics.
// Harmonics keep their frequency whenever close frequencies are refined.
func ExtractAdditionalFrequencies(s *Series, in Result, pOrb float64, opts ...Option) (Result, error) {
	if !(pOrb > 0) {
		return Result{}, ErrBadPeriod
	}
	if err := s.validateResult(in); err != nil {
		return Result{}, err
	}
	return prewhiten(s, in.Clone(), HarmonicAware, pOrb, opts)
}

func prewhiten(s *Series, start Result, mode Mode, pOrb float64, opts []Option) (Result, error) {
	cfg := applyOptions(opts)
	w := newWorkspace(s)
	res := s.Resolution()

	nHarm := 0
	if mode == HarmonicAware {
		nHarm = len(harmonic.FromPattern(start.Sinusoids.Freqs(), pOrb, cfg.harmonTol))
	}

	accepted := start.Sinusoids.Clone()
	cand := start
	resid := w.residual(cand.Trend, cand.Sinusoids)
	bicPrev := math.Inf(1)
	bic := w.bic(resid, w.paramCount(len(cand.Sinusoids), nHarm))

	first := true
	for bicPrev-bic > 2 {
		accepted = cand.Sinusoids.Clone()
		bicPrev = bic

		sin, err := extract(s, resid, mode, pOrb, 0, 0, opts)
		if err != nil {
			return Result{}, err
		}
		if sin == (signal.Sinusoid{}) {
			break
		}
		cand.Sinusoids = cand.Sinusoids.With(sin)

		newest := len(cand.Sinusoids) - 1
		near := harmonic.WithinRayleigh(newest, cand.Sinusoids.Freqs(), res)
		cand, err = RefineSubset(s, cand, near, pOrb, first, opts...)
		if err != nil {
			return Result{}, err
		}

		nParam := w.paramCount(len(cand.Sinusoids), nHarm)
		cand.Trend, resid, bic, err = w.evaluate(cand.Sinusoids, nParam)
		if err != nil {
			return Result{}, err
		}
		first = false

		cfg.logger.Debug().
			Str("mode", mode.String()).
			Int("n_sin", len(cand.Sinusoids)).
			Float64("freq", sin.Freq).
			Float64("ampl", sin.Ampl).
			Float64("bic", bic).
			Msg("extracted frequency")
	}

	tr, err := w.fitTrend(accepted)
	if err != nil {
		return Result{}, err
	}
	cfg.logger.Info().
		Str("mode", mode.String()).
		Int("n_sin", len(accepted)).
		Float64("bic", bicPrev).
		Msg("prewhitening finished")
	return Result{Trend: tr, Sinusoids: accepted}, nil
}
