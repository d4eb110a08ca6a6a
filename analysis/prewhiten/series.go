package prewhiten

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
	"github.com/cwbudde/algo-lightcurve/dsp/core"
	"github.com/cwbudde/algo-lightcurve/dsp/signal"
	"github.com/cwbudde/algo-lightcurve/stats/residual"
	"github.com/cwbudde/algo-lightcurve/stats/selection"
)

// Series is a validated light curve. It is immutable once built and safe for
// concurrent use by independent operations.
type Series struct {
	t0    float64
	times []float64
	flux  []float64
	errs  []float64
	segs  signal.Segments

	span    float64
	nyquist float64
}

// NewSeries copies the input into a Series. Times are shifted so that the
// first one is zero. fluxErr may hold one value per point, a single value for
// all points, or be nil for unit errors. A nil segs selects one segment
// spanning the whole series.
func NewSeries(times, flux, fluxErr []float64, segs signal.Segments) (*Series, error) {
	n := len(times)
	if len(flux) != n {
		return nil, fmt.Errorf("%w: times %d, flux %d", ErrLengthMismatch, n, len(flux))
	}
	if n < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, n)
	}
	for i := 0; i < n; i++ {
		if !finite(times[i]) || !finite(flux[i]) {
			return nil, fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
		if i > 0 && times[i] <= times[i-1] {
			return nil, fmt.Errorf("%w at index %d", ErrNotIncreasing, i)
		}
	}

	errs := make([]float64, n)
	switch len(fluxErr) {
	case 0:
		for i := range errs {
			errs[i] = 1
		}
	case 1:
		for i := range errs {
			errs[i] = fluxErr[0]
		}
	case n:
		copy(errs, fluxErr)
	default:
		return nil, fmt.Errorf("%w: times %d, errors %d", ErrLengthMismatch, n, len(fluxErr))
	}
	for i, e := range errs {
		if !(e > 0) || math.IsInf(e, 0) {
			return nil, fmt.Errorf("%w: index %d has %v", ErrBadErrors, i, e)
		}
	}

	if segs == nil {
		segs = signal.Whole(n)
	}
	if err := segs.Validate(n); err != nil {
		return nil, fmt.Errorf("prewhiten: %w", err)
	}

	s := &Series{
		t0:   times[0],
		flux: core.Clone(flux),
		errs: errs,
		segs: segs.Clone(),
	}
	s.times = make([]float64, n)
	for i, t := range times {
		s.times[i] = t - s.t0
	}
	s.span = core.PeakToPeak(s.times)
	s.nyquist = core.Nyquist(s.times)
	return s, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Len returns the number of points.
func (s *Series) Len() int { return len(s.times) }

// T0 returns the time stamp subtracted from the input times.
func (s *Series) T0() float64 { return s.t0 }

// Times returns the zero-referenced time stamps. The slice must not be modified.
func (s *Series) Times() []float64 { return s.times }

// Flux returns the flux values. The slice must not be modified.
func (s *Series) Flux() []float64 { return s.flux }

// Errors returns the per-point flux errors. The slice must not be modified.
func (s *Series) Errors() []float64 { return s.errs }

// Segments returns a copy of the segment table.
func (s *Series) Segments() signal.Segments { return s.segs.Clone() }

// Span returns the total time base T.
func (s *Series) Span() float64 { return s.span }

// Resolution returns the frequency resolution 1.5/T.
func (s *Series) Resolution() float64 { return harmonic.Resolution(s.span) }

// Nyquist returns the pseudo-Nyquist frequency 1/(2*min(dt)).
func (s *Series) Nyquist() float64 { return s.nyquist }

// WithUniformErrors returns a copy of s in which every point carries the
// largest error of s. The Gaussian likelihood behind the BIC assumes equal
// errors.
func (s *Series) WithUniformErrors() *Series {
	out := *s
	out.errs = make([]float64, len(s.errs))
	e := floats.Max(s.errs)
	for i := range out.errs {
		out.errs[i] = e
	}
	return &out
}

// Result is a fitted model: a piecewise-linear trend plus sinusoids.
type Result struct {
	Trend     signal.Trend
	Sinusoids signal.Set
}

// Clone returns a deep copy of r.
func (r Result) Clone() Result {
	return Result{Trend: r.Trend.Clone(), Sinusoids: r.Sinusoids.Clone()}
}

// Residual returns flux minus the model r.
func (s *Series) Residual(r Result) []float64 {
	return signal.ResidualTo(nil, s.flux, s.times, r.Trend, s.segs, r.Sinusoids)
}

// Model evaluates r on the series time stamps.
func (s *Series) Model(r Result) []float64 {
	out := signal.LinearCurve(s.times, r.Trend, s.segs)
	signal.AddSines(out, s.times, r.Sinusoids)
	return out
}

// State returns the parameter count, BIC and residual standard deviation of r.
// Sinusoids that sit on harmonics of pOrb count as locked; pOrb <= 0 treats
// every sinusoid as free.
func (s *Series) State(r Result, pOrb float64, opts ...Option) (selection.State, error) {
	if err := s.validateResult(r); err != nil {
		return selection.State{}, err
	}
	cfg := applyOptions(opts)
	nHarm := 0
	if pOrb > 0 {
		nHarm = len(harmonic.FromPattern(r.Sinusoids.Freqs(), pOrb, cfg.harmonTol))
	}
	resid := s.Residual(r)
	k := selection.ParamCount(len(s.segs), len(r.Sinusoids), nHarm)
	return selection.State{
		NParam:     k,
		BIC:        selection.BICWeighted(resid, s.errs, k),
		NoiseLevel: math.Sqrt(residual.Calculate(resid).Variance),
	}, nil
}

// validateResult checks that r has one trend entry per segment and only
// positive, finite frequencies.
func (s *Series) validateResult(r Result) error {
	if len(r.Trend.Const) != len(s.segs) || len(r.Trend.Slope) != len(s.segs) {
		return fmt.Errorf("%w: trend has %d constants and %d slopes, series %d segments",
			ErrLengthMismatch, len(r.Trend.Const), len(r.Trend.Slope), len(s.segs))
	}
	for i, sin := range r.Sinusoids {
		if !(sin.Freq > 0) || math.IsInf(sin.Freq, 0) {
			return fmt.Errorf("%w: sinusoid %d has %v", ErrBadFrequency, i, sin.Freq)
		}
	}
	return nil
}
