package prewhiten

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
	"github.com/cwbudde/algo-lightcurve/dsp/core"
	"github.com/cwbudde/algo-lightcurve/dsp/signal"
	"github.com/cwbudde/algo-lightcurve/stats/selection"
)

// HarmonicModel is a constant plus harmonics of an orbital period.
type HarmonicModel struct {
	Const     float64
	Sinusoids signal.Set
}

// ExtractAdditionalHarmonics tries every harmonic n/pOrb below the
// pseudo-Nyquist frequency that the model does not contain yet, in ascending
// n. Each candidate takes its amplitude and phase from the current residual
// and is kept when the BIC, after refitting the trend, improves by more than
// 2. It fails with ErrNoHarmonics when the model has no harmonics of pOrb.
func ExtractAdditionalHarmonics(s *Series, in Result, pOrb float64, opts ...Option) (Result, error) {
	if !(pOrb > 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrBadPeriod, pOrb)
	}
	if err := s.validateResult(in); err != nil {
		return Result{}, err
	}
	cfg := applyOptions(opts)
	w := newWorkspace(s)

	harm := harmonic.FromPattern(in.Sinusoids.Freqs(), pOrb, cfg.harmonTol)
	if len(harm) == 0 {
		return Result{}, ErrNoHarmonics
	}
	present := make(map[int]bool, len(harm))
	for _, m := range harm {
		present[m.N] = true
	}

	accepted := in.Sinusoids.Clone()
	tr := in.Trend.Clone()
	resid := w.residual(tr, accepted)
	nParam := w.paramCount(len(accepted), len(harm))
	bicPrev := w.bic(resid, nParam)

	added := 0
	for n := 1; float64(n) < pOrb*s.nyquist; n++ {
		if present[n] {
			continue
		}
		f := float64(n) / pOrb
		a, ph, err := w.amplPhase(resid, f)
		if err != nil {
			return Result{}, err
		}
		cand := accepted.With(signal.Sinusoid{Freq: f, Ampl: a, Phase: ph})
		candTr, candResid, bic, err := w.evaluate(cand, nParam+2*(added+1))
		if err != nil {
			return Result{}, err
		}
		if !selection.Improved(bicPrev, bic, selection.Significant) {
			continue
		}
		accepted, tr, resid, bicPrev = cand, candTr, candResid, bic
		added++
		cfg.logger.Debug().Int("n", n).Float64("ampl", a).Float64("bic", bic).Msg("added harmonic")
	}

	cfg.logger.Info().Int("added", added).Float64("bic", bicPrev).Msg("additional harmonics finished")
	return Result{Trend: tr, Sinusoids: accepted}, nil
}

// ExtractHarmonics builds a constant plus harmonics model of the series flux.
// Harmonics n/pOrb below the pseudo-Nyquist frequency are tried in ascending
// n with amplitude and phase taken from the residual, and kept when the BIC
// improves by more than 2.
func ExtractHarmonics(s *Series, pOrb float64, opts ...Option) (HarmonicModel, error) {
	if !(pOrb > 0) {
		return HarmonicModel{}, fmt.Errorf("%w: %v", ErrBadPeriod, pOrb)
	}
	cfg := applyOptions(opts)
	w := newWorkspace(s)

	mean := stat.Mean(s.flux, nil)
	base := core.Clone(s.flux)
	floats.AddConst(-mean, base)
	resid := core.Clone(base)
	bicPrev := w.bic(resid, 2)

	var accepted signal.Set
	model := make([]float64, s.Len())
	for n := 1; float64(n) < pOrb*s.nyquist; n++ {
		f := float64(n) / pOrb
		a, ph, err := w.amplPhase(resid, f)
		if err != nil {
			return HarmonicModel{}, err
		}
		cand := accepted.With(signal.Sinusoid{Freq: f, Ampl: a, Phase: ph})
		candResid := signal.SinesResidualTo(model, base, s.times, cand)
		floats.AddConst(-stat.Mean(candResid, nil), candResid)
		bic := w.bic(candResid, 2+2*len(cand))
		if !selection.Improved(bicPrev, bic, selection.Significant) {
			continue
		}
		accepted, bicPrev = cand, bic
		resid = core.Clone(candResid)
	}

	c := stat.Mean(signal.SinesResidualTo(model, base, s.times, accepted), nil) + mean
	cfg.logger.Info().Int("n_harm", len(accepted)).Float64("bic", bicPrev).Msg("harmonic model finished")
	return HarmonicModel{Const: c, Sinusoids: accepted}, nil
}

// ExtractAllHarmonics adds every harmonic n/pOrb up to fMax without any
// selection, then re-derives the amplitude and phase of each harmonic once
// against the residual of all others. A non-positive fMax selects the
// pseudo-Nyquist frequency.
func ExtractAllHarmonics(s *Series, pOrb, fMax float64, opts ...Option) (HarmonicModel, error) {
	if !(pOrb > 0) {
		return HarmonicModel{}, fmt.Errorf("%w: %v", ErrBadPeriod, pOrb)
	}
	cfg := applyOptions(opts)
	w := newWorkspace(s)
	if fMax <= 0 {
		fMax = s.nyquist
	}

	base := core.Clone(s.flux)
	floats.AddConst(-stat.Mean(base, nil), base)

	var set signal.Set
	resid := core.Clone(base)
	for n := 1; float64(n) < pOrb*fMax+0.01; n++ {
		f := float64(n) / pOrb
		a, ph, err := w.amplPhase(resid, f)
		if err != nil {
			return HarmonicModel{}, err
		}
		set = set.With(signal.Sinusoid{Freq: f, Ampl: a, Phase: ph})
		resid = signal.SinesResidualTo(resid, base, s.times, set)
	}

	for i := range set {
		resid = signal.SinesResidualTo(resid, base, s.times, set.Without(i))
		a, ph, err := w.amplPhase(resid, set[i].Freq)
		if err != nil {
			return HarmonicModel{}, err
		}
		set[i].Ampl, set[i].Phase = a, ph
	}

	resid = signal.SinesResidualTo(resid, s.flux, s.times, set)
	c := stat.Mean(resid, nil)
	cfg.logger.Info().Int("n_harm", len(set)).Msg("all harmonics extracted")
	return HarmonicModel{Const: c, Sinusoids: set}, nil
}

// FixHarmonicFrequency locks every sinusoid within tolerance of a harmonic of
// pOrb to the exact frequency n/pOrb. Harmonic numbers are processed in
// ascending order: all sinusoids mapping to n are replaced by one sinusoid at
// n/pOrb whose amplitude and phase come from the residual of the rest of the
// model, and the trend is refit. Afterwards every remaining free sinusoid is
// re-extracted within one frequency resolution of its value.
//
// The tolerance is harmonic.DefaultTolerance. ErrNoHarmonics is returned when
// no sinusoid matches.
func FixHarmonicFrequency(s *Series, in Result, pOrb float64, opts ...Option) (Result, error) {
	if !(pOrb > 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrBadPeriod, pOrb)
	}
	if err := s.validateResult(in); err != nil {
		return Result{}, err
	}
	cfg := applyOptions(opts)
	w := newWorkspace(s)
	res := s.Resolution()
	tol := harmonic.DefaultTolerance(s.span, pOrb)

	matches := harmonic.WithinTolerance(in.Sinusoids.Freqs(), pOrb, tol)
	if len(matches) == 0 {
		return Result{}, ErrNoHarmonics
	}

	set := in.Sinusoids.Clone()
	tr := in.Trend.Clone()
	for _, n := range matches.UniqueNumbers() {
		var drop []int
		for _, m := range harmonic.WithinTolerance(set.Freqs(), pOrb, tol) {
			if m.N == n {
				drop = append(drop, m.Index)
			}
		}
		set = set.Without(drop...)

		f := float64(n) / pOrb
		a, ph, err := w.amplPhase(w.residual(tr, set), f)
		if err != nil {
			return Result{}, err
		}
		set = set.With(signal.Sinusoid{Freq: f, Ampl: a, Phase: ph})
		if tr, err = w.fitTrend(set); err != nil {
			return Result{}, err
		}
		cfg.logger.Debug().Int("n", n).Int("replaced", len(drop)).Float64("ampl", a).Msg("locked harmonic")
	}

	locked := harmonic.FromPattern(set.Freqs(), pOrb, cfg.harmonTol).Mask(len(set))
	for i := range set {
		if locked[i] {
			continue
		}
		f := set[i].Freq
		sin, err := ExtractSingle(s, w.residual(tr, set.Without(i)), f-res, f+res, opts...)
		if err != nil {
			return Result{}, err
		}
		set[i] = sin
		if tr, err = w.fitTrend(set); err != nil {
			return Result{}, err
		}
	}

	cfg.logger.Info().
		Int("n_harm", len(matches.UniqueNumbers())).
		Int("n_sin", len(set)).
		Msg("harmonics locked")
	return Result{Trend: tr, Sinusoids: set}, nil
}
