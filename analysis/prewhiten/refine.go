package prewhiten

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
	"github.com/cwbudde/algo-lightcurve/stats/selection"
)

// RefineSubset re-extracts the sinusoids at the indices in idx one at a
// time, each against the residual of the trend and all other sinusoids, and
// repeats the sweep while the BIC improves. Sinusoids that are harmonics of
// pOrb keep their frequency and only get a new amplitude and phase; pOrb <= 0
// treats every sinusoid as free. Free sinusoids are searched within one
// frequency resolution of their current value.
//
// Nothing is refined when first is set or idx holds fewer than two
// indices; the input is then returned unchanged. The trend of the returned
// model is refit to the refined sinusoids.
func RefineSubset(s *Series, in Result, idx []int, pOrb float64, first bool, opts ...Option) (Result, error) {
	if err := s.validateResult(in); err != nil {
		return Result{}, err
	}
	if first || len(idx) < 2 {
		return in.Clone(), nil
	}
	for _, j := range idx {
		if j < 0 || j >= len(in.Sinusoids) {
			return Result{}, fmt.Errorf("prewhiten: refine index %d out of range [0, %d)", j, len(in.Sinusoids))
		}
	}
	cfg := applyOptions(opts)
	w := newWorkspace(s)
	res := s.Resolution()

	var harm harmonic.Matches
	if pOrb > 0 {
		harm = harmonic.FromPattern(in.Sinusoids.Freqs(), pOrb, cfg.harmonTol)
	}
	locked := harm.Mask(len(in.Sinusoids))
	nParam := w.paramCount(len(in.Sinusoids), len(harm))

	accepted := in.Sinusoids.Clone()
	temp := in.Sinusoids.Clone()
	tr := in.Trend.Clone()
	bicPrev := math.Inf(1)
	bic := w.bic(w.residual(tr, temp), nParam)

	for selection.Improved(bicPrev, bic, selection.AnyImprovement) {
		copy(accepted, temp)
		bicPrev = bic

		for _, j := range idx {
			resid := w.residual(tr, temp.Without(j))
			if locked[j] {
				a, ph, err := w.amplPhase(resid, temp[j].Freq)
				if err != nil {
					return Result{}, err
				}
				temp[j].Ampl, temp[j].Phase = a, ph
				continue
			}
			f := temp[j].Freq
			sin, err := ExtractSingle(s, resid, f-res, f+res, opts...)
			if err != nil {
				return Result{}, err
			}
			temp[j] = sin
		}

		var err error
		tr, _, bic, err = w.evaluate(temp, nParam)
		if err != nil {
			return Result{}, err
		}
		cfg.logger.Debug().
			Int("n_close", len(idx)).
			Float64("bic", bic).
			Msg("refined close frequencies")
	}

	tr, err := w.fitTrend(accepted)
	if err != nil {
		return Result{}, err
	}
	return Result{Trend: tr, Sinusoids: accepted}, nil
}
