package prewhiten

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lightcurve/dsp/periodogram"
	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

// ExtractSingle returns the sinusoid at the highest amplitude peak of resid
// between f0 and fn. A zero fn searches up to the pseudo-Nyquist frequency.
//
// The peak is located on a grid of step 0.1/T and refined on a grid a hundred
// times finer spanning one coarse step on either side. Peaks on the edge of
// either grid are logged as warnings but still returned.
func ExtractSingle(s *Series, resid []float64, f0, fn float64, opts ...Option) (signal.Sinusoid, error) {
	cfg := applyOptions(opts)
	if len(resid) != s.Len() {
		return signal.Sinusoid{}, fmt.Errorf("%w: %d != %d", ErrResidualLength, len(resid), s.Len())
	}
	times := s.times
	df := 0.1 / s.span

	freqs, ampls, err := periodogram.Scargle(times, resid, f0, fn, df)
	if err != nil {
		return signal.Sinusoid{}, err
	}
	p1 := floats.MaxIdx(ampls)
	warnEdge(cfg, "coarse", p1, len(ampls), freqs[p1])

	lo := math.Max(freqs[p1]-df, 0.01/s.span)
	hi := freqs[p1] + df
	freqs, ampls, err = periodogram.Scargle(times, resid, lo, hi, df/100)
	if err != nil {
		return signal.Sinusoid{}, err
	}
	p2 := floats.MaxIdx(ampls)
	warnEdge(cfg, "fine", p2, len(ampls), freqs[p2])

	ph, err := periodogram.PhaseSingle(times, resid, freqs[p2])
	if err != nil {
		return signal.Sinusoid{}, err
	}
	return signal.Sinusoid{Freq: freqs[p2], Ampl: ampls[p2], Phase: ph}, nil
}

// ExtractSingleHarmonics is ExtractSingle restricted to frequencies that are
// not close to a harmonic of pOrb. Frequencies whose remainder modulo 1/pOrb
// lies within avoid/2 of 0 or 1/pOrb are excluded, where
// avoid = (1.5/T) / (T/pOrb). A third refinement stage with a step of
// 1e-5/T is added. When every grid frequency is excluded the zero Sinusoid
// is returned.
func ExtractSingleHarmonics(s *Series, resid []float64, pOrb, f0, fn float64, opts ...Option) (signal.Sinusoid, error) {
	cfg := applyOptions(opts)
	if !(pOrb > 0) {
		return signal.Sinusoid{}, fmt.Errorf("%w: %v", ErrBadPeriod, pOrb)
	}
	if len(resid) != s.Len() {
		return signal.Sinusoid{}, fmt.Errorf("%w: %d != %d", ErrResidualLength, len(resid), s.Len())
	}
	times := s.times
	df := 0.1 / s.span
	fOrb := 1 / pOrb
	avoid := harmonicGuard(s.span, pOrb)

	freqs, ampls, err := periodogram.Scargle(times, resid, f0, fn, df)
	if err != nil {
		return signal.Sinusoid{}, err
	}
	keep := 0
	for i, f := range freqs {
		if m := math.Mod(f, fOrb); m > avoid/2 && m < fOrb-avoid/2 {
			freqs[keep], ampls[keep] = f, ampls[i]
			keep++
		}
	}
	if keep == 0 {
		cfg.logger.Warn().Float64("p_orb", pOrb).Msg("no frequencies left after masking harmonics")
		return signal.Sinusoid{}, nil
	}
	freqs, ampls = freqs[:keep], ampls[:keep]
	p1 := floats.MaxIdx(ampls)
	warnEdge(cfg, "coarse", p1, len(ampls), freqs[p1])

	lo := math.Max(freqs[p1]-df, 0.01/s.span)
	hi := freqs[p1] + df
	freqs, ampls, err = periodogram.Scargle(times, resid, lo, hi, df/100)
	if err != nil {
		return signal.Sinusoid{}, err
	}
	p2 := floats.MaxIdx(ampls)
	warnEdge(cfg, "fine", p2, len(ampls), freqs[p2])

	lo = math.Max(freqs[p2]-df/100, 0.01/s.span)
	hi = freqs[p2] + df/100
	freqs, ampls, err = periodogram.Scargle(times, resid, lo, hi, df/10000)
	if err != nil {
		return signal.Sinusoid{}, err
	}
	p3 := floats.MaxIdx(ampls)
	warnEdge(cfg, "finest", p3, len(ampls), freqs[p3])

	ph, err := periodogram.PhaseSingle(times, resid, freqs[p3])
	if err != nil {
		return signal.Sinusoid{}, err
	}
	return signal.Sinusoid{Freq: freqs[p3], Ampl: ampls[p3], Phase: ph}, nil
}

// harmonicGuard returns the width of the band around each harmonic that the
// harmonic-aware extractor leaves alone.
func harmonicGuard(span, pOrb float64) float64 {
	return (1.5 / span) / (span / pOrb)
}

func warnEdge(cfg config, stage string, idx, n int, f float64) {
	if n > 1 && (idx == 0 || idx == n-1) {
		cfg.logger.Warn().
			Str("stage", stage).
			Float64("freq", f).
			Msg("periodogram peak on grid boundary")
	}
}

// extract dispatches to the extractor selected by mode.
func extract(s *Series, resid []float64, mode Mode, pOrb, f0, fn float64, opts []Option) (signal.Sinusoid, error) {
	if mode == HarmonicAware {
		return ExtractSingleHarmonics(s, resid, pOrb, f0, fn, opts...)
	}
	return ExtractSingle(s, resid, f0, fn, opts...)
}
