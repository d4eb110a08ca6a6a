// Package period searches for the orbital period of an eclipsing binary
// from the frequencies of a sinusoid model, combining phase dispersion
// minimisation, Lomb-Scargle amplitudes and the length of harmonic series.
package period

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
	"github.com/cwbudde/algo-lightcurve/dsp/core"
	"github.com/cwbudde/algo-lightcurve/dsp/periodogram"
)

// DefaultDoublePeriodThreshold is the ratio of harmonic-series scores above
// which twice the best period is preferred.
const DefaultDoublePeriodThreshold = 1.5

var (
	// ErrLengthMismatch is returned when times and signal differ in length.
	ErrLengthMismatch = errors.New("period: times and signal differ in length")
	// ErrNoCandidates is returned when no candidate period lies between twice
	// the smallest time step and the time base.
	ErrNoCandidates = errors.New("period: no candidate periods in range")
	// ErrTooFewPoints is returned for series too short to bin.
	ErrTooFewPoints = errors.New("period: too few points for phase binning")
)

type config struct {
	doubleThreshold float64
	logger          zerolog.Logger
}

// Option configures FindOrbitalPeriod.
type Option func(*config)

// WithDoublePeriodThreshold overrides DefaultDoublePeriodThreshold.
// Non-positive values are ignored.
func WithDoublePeriodThreshold(v float64) Option {
	return func(cfg *config) {
		if v > 0 {
			cfg.doubleThreshold = v
		}
	}
}

// WithLogger sets the logger for the search summary.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// Fold maps times onto orbital phase in [-0.5, 0.5) relative to zero.
func Fold(times []float64, period, zero float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		p := math.Mod((t-zero)/period+0.5, 1)
		if p < 0 {
			p++
		}
		if p >= 1 {
			p = 0
		}
		out[i] = p - 0.5
	}
	return out
}

// PhaseDispersion returns the summed within-bin scatter of signal over nBins
// equal phase bins, divided by the overall scatter. Empty bins contribute
// nothing. phases must lie in [-0.5, 0.5).
func PhaseDispersion(phases, signal []float64, nBins int) (float64, error) {
	if len(phases) != len(signal) {
		return 0, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(phases), len(signal))
	}
	if nBins < 1 || len(signal) < 2 {
		return 0, fmt.Errorf("%w: %d points, %d bins", ErrTooFewPoints, len(signal), nBins)
	}

	bin := make([]int, len(phases))
	sums := make([]float64, nBins)
	counts := make([]float64, nBins)
	for i, p := range phases {
		b := int((p + 0.5) * float64(nBins))
		b = max(0, min(nBins-1, b))
		bin[i] = b
		sums[b] += signal[i]
		counts[b]++
	}
	for b := range sums {
		if counts[b] > 0 {
			sums[b] /= counts[b]
		}
	}
	var within float64
	for i, v := range signal {
		d := v - sums[bin[i]]
		within += d * d
	}

	n := float64(len(signal))
	_, variance := stat.MeanVariance(signal, nil)
	overall := variance * (n - 1) / n
	return within / n / overall, nil
}

// PDM computes the phase dispersion at candidate periods derived from freqs.
// With local set the candidates are 1/f, otherwise k/f for k = 1..7.
// Candidates outside (2*min(dt), T) are dropped. The number of bins is
// N/10, capped at 1000.
func PDM(times, signal, freqs []float64, local bool) (periods, disp []float64, err error) {
	if len(times) != len(signal) {
		return nil, nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(times), len(signal))
	}
	nBins := min(len(times)/10, 1000)
	if nBins < 1 {
		return nil, nil, fmt.Errorf("%w: %d points", ErrTooFewPoints, len(times))
	}

	span := core.PeakToPeak(times)
	minP := 2 * core.MinDiff(times)
	kMax := 7
	if local {
		kMax = 1
	}
	for _, f := range freqs {
		for k := 1; k <= kMax; k++ {
			if p := float64(k) / f; p < span && p > minP {
				periods = append(periods, p)
			}
		}
	}

	disp = make([]float64, len(periods))
	for i, p := range periods {
		if disp[i], err = PhaseDispersion(Fold(times, p, 0), signal, nBins); err != nil {
			return nil, nil, err
		}
	}
	return periods, disp, nil
}

// FindOrbitalPeriod returns the most likely orbital period for a light curve
// whose sinusoid model has the frequencies freqs.
//
// Each PDM candidate is scored by LS amplitude over phase dispersion, times
// the harmonic count and completeness of its base frequency. The best
// candidate is refined on a dense grid within 1% where the longest harmonic
// series with the smallest frequency offsets wins. The same refinement at
// twice the period replaces the result when its harmonic score exceeds the
// double-period threshold times the single one.
func FindOrbitalPeriod(times, signal, freqs []float64, opts ...Option) (float64, error) {
	cfg := config{doubleThreshold: DefaultDoublePeriodThreshold, logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	periods, disp, err := PDM(times, signal, freqs, false)
	if err != nil {
		return 0, err
	}
	if len(periods) == 0 {
		return 0, ErrNoCandidates
	}

	span := core.PeakToPeak(times)
	res := harmonic.Resolution(span)
	nyquist := core.Nyquist(times)

	centred := core.Clone(signal)
	floats.AddConst(-stat.Mean(centred, nil), centred)
	test := make([]float64, len(periods))
	for i, p := range periods {
		test[i] = 1 / p
	}
	ampls, err := periodogram.Amplitude(times, centred, test)
	if err != nil {
		return 0, err
	}

	series := harmonic.SeriesLength(test, freqs, res, nyquist)
	psi := make([]float64, len(periods))
	for i := range psi {
		psi[i] = ampls[i] / disp[i] * float64(series[i].Count) * series[i].Completeness
	}
	base := periods[floats.MaxIdx(psi)]

	pOrb := resolveDouble(base, freqs, res, nyquist, cfg.doubleThreshold)
	cfg.logger.Info().
		Float64("base", base).
		Float64("p_orb", pOrb).
		Int("candidates", len(periods)).
		Msg("orbital period found")
	return pOrb, nil
}

// resolveDouble refines base and twice base and picks the double period when
// its harmonic score is more than threshold times that of base.
func resolveDouble(base float64, freqs []float64, res, nyquist, threshold float64) float64 {
	p1, h1 := refine(base, freqs, res, nyquist)
	p2, h2 := refine(2*base, freqs, res, nyquist)
	if h2/h1 > threshold {
		return p2
	}
	return p1
}

// refine scans base frequencies within 1% of 1/p in steps of 1e-4/p. Among
// the bases with the most harmonics the one with the smallest summed offset
// wins. It returns the winning period and its count times completeness.
func refine(p float64, freqs []float64, res, nyquist float64) (float64, float64) {
	const steps = 200
	test := make([]float64, steps)
	for k := range test {
		test[k] = 0.99/p + float64(k)*0.0001/p
	}
	series := harmonic.SeriesLength(test, freqs, res, nyquist)

	maxCount := 0
	for _, s := range series {
		maxCount = max(maxCount, s.Count)
	}
	best := -1
	for k, s := range series {
		if s.Count == maxCount && (best < 0 || s.Distance < series[best].Distance) {
			best = k
		}
	}
	return 1 / test[best], float64(series[best].Count) * series[best].Completeness
}
