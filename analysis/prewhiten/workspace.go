package prewhiten

import (
	"github.com/cwbudde/algo-lightcurve/dsp/periodogram"
	"github.com/cwbudde/algo-lightcurve/dsp/signal"
	"github.com/cwbudde/algo-lightcurve/stats/selection"
	"github.com/cwbudde/algo-lightcurve/stats/trend"
)

// workspace bundles a series with scratch space for the trend refits that
// every operation repeats after changing its sinusoid set.
type workspace struct {
	s       *Series
	scratch []float64
}

func newWorkspace(s *Series) *workspace {
	return &workspace{s: s, scratch: make([]float64, s.Len())}
}

// fitTrend fits the piecewise-linear trend to flux minus the sinusoids.
func (w *workspace) fitTrend(set signal.Set) (signal.Trend, error) {
	w.scratch = signal.SinesResidualTo(w.scratch, w.s.flux, w.s.times, set)
	return trend.Fit(w.s.times, w.scratch, w.s.segs)
}

// residual returns flux - trend - sinusoids in a new slice.
func (w *workspace) residual(tr signal.Trend, set signal.Set) []float64 {
	return signal.ResidualTo(nil, w.s.flux, w.s.times, tr, w.s.segs, set)
}

// evaluate refits the trend for set and returns it with the residual and BIC.
func (w *workspace) evaluate(set signal.Set, nParam int) (signal.Trend, []float64, float64, error) {
	tr, err := w.fitTrend(set)
	if err != nil {
		return signal.Trend{}, nil, 0, err
	}
	resid := w.residual(tr, set)
	return tr, resid, w.bic(resid, nParam), nil
}

func (w *workspace) bic(resid []float64, nParam int) float64 {
	return selection.BICWeighted(resid, w.s.errs, nParam)
}

// paramCount counts the free parameters of set given nHarm locked harmonics.
func (w *workspace) paramCount(nSin, nHarm int) int {
	return selection.ParamCount(len(w.s.segs), nSin, nHarm)
}

// amplPhase returns amplitude and phase of resid at f.
func (w *workspace) amplPhase(resid []float64, f float64) (float64, float64, error) {
	ev, err := periodogram.NewEvaluator(w.s.times, resid)
	if err != nil {
		return 0, 0, err
	}
	a, ph := ev.At(f)
	return a, ph, nil
}
