package prewhiten

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
	"github.com/cwbudde/algo-lightcurve/dsp/signal"
	"github.com/cwbudde/algo-lightcurve/stats/selection"
)

// ReduceFrequencies simplifies a model of free sinusoids.
//
// The first pass removes single sinusoids whenever that lowers the BIC,
// sweeping until a sweep removes nothing. The second pass looks at every
// contiguous run of at least two sinusoids that are not resolved from their
// neighbours and replaces the run by one sinusoid extracted from the residual
// within the frequency span of the run, again while the BIC improves. Runs
// that share a member with an accepted replacement are skipped from then on.
func ReduceFrequencies(s *Series, in Result, opts ...Option) (Result, error) {
	return reduce(s, in, 0, opts)
}

// ReduceFrequenciesHarmonics is ReduceFrequencies for a model with locked
// harmonics of pOrb. Harmonics are never removed or merged into a free
// sinusoid; the single removal and merge passes only touch free sinusoids.
// A third pass replaces runs that contain at least one harmonic by just those
// harmonics, with amplitudes and phases taken from the residual.
func ReduceFrequenciesHarmonics(s *Series, in Result, pOrb float64, opts ...Option) (Result, error) {
	if !(pOrb > 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrBadPeriod, pOrb)
	}
	return reduce(s, in, pOrb, opts)
}

// reducer carries the state shared by the reduction passes.
type reducer struct {
	s     *Series
	w     *workspace
	cfg   config
	opts  []Option
	pOrb  float64
	nHarm int

	set     signal.Set
	bicPrev float64
}

func reduce(s *Series, in Result, pOrb float64, opts []Option) (Result, error) {
	if err := s.validateResult(in); err != nil {
		return Result{}, err
	}
	r := &reducer{
		s:    s,
		w:    newWorkspace(s),
		cfg:  applyOptions(opts),
		opts: opts,
		pOrb: pOrb,
		set:  in.Sinusoids.Clone(),
	}
	r.nHarm = len(r.harmonics())
	r.bicPrev = r.w.bic(s.Residual(in), r.paramCount(len(r.set)))

	if err := r.removeSingles(); err != nil {
		return Result{}, err
	}
	if err := r.mergeChains(false); err != nil {
		return Result{}, err
	}
	if pOrb > 0 {
		if err := r.mergeChains(true); err != nil {
			return Result{}, err
		}
	}

	tr, err := r.w.fitTrend(r.set)
	if err != nil {
		return Result{}, err
	}
	r.cfg.logger.Info().
		Int("n_in", len(in.Sinusoids)).
		Int("n_out", len(r.set)).
		Float64("bic", r.bicPrev).
		Msg("frequencies reduced")
	return Result{Trend: tr, Sinusoids: r.set}, nil
}

func (r *reducer) harmonics() harmonic.Matches {
	if r.pOrb <= 0 {
		return nil
	}
	return harmonic.FromPattern(r.set.Freqs(), r.pOrb, r.cfg.harmonTol)
}

func (r *reducer) paramCount(nSin int) int {
	return r.w.paramCount(nSin, r.nHarm)
}

// score refits the trend for set and returns the BIC.
func (r *reducer) score(set signal.Set) (float64, error) {
	_, _, bic, err := r.w.evaluate(set, r.paramCount(len(set)))
	return bic, err
}

func (r *reducer) removeSingles() error {
	locked := r.harmonics().Mask(len(r.set))
	removed := make([]bool, len(r.set))
	var drop []int

	for nPrev := -1; len(drop) > nPrev; {
		nPrev = len(drop)
		for i := range r.set {
			if locked[i] || removed[i] {
				continue
			}
			bic, err := r.score(r.set.Without(append(drop, i)...))
			if err != nil {
				return err
			}
			if selection.Improved(r.bicPrev, bic, selection.AnyImprovement) {
				drop = append(drop, i)
				removed[i] = true
				r.bicPrev = bic
				r.cfg.logger.Debug().Float64("freq", r.set[i].Freq).Float64("bic", bic).Msg("removed frequency")
			}
		}
	}

	r.set = r.set.Without(drop...)
	return nil
}

// chainCandidates lists every contiguous sub-run of length >= 2 of the chains
// among the indices in pool. With needHarm only runs containing a harmonic
// are kept.
func (r *reducer) chainCandidates(pool []int, locked []bool, needHarm bool) [][]int {
	freqs := make([]float64, len(pool))
	for k, i := range pool {
		freqs[k] = r.set[i].Freq
	}

	var out [][]int
	for _, chain := range harmonic.ChainsWithinRayleigh(freqs, r.s.Resolution()) {
		for p1 := 0; p1 < len(chain)-1; p1++ {
			for p2 := p1 + 2; p2 <= len(chain); p2++ {
				cand := make([]int, 0, p2-p1)
				hasHarm := false
				for _, k := range chain[p1:p2] {
					cand = append(cand, pool[k])
					hasHarm = hasHarm || locked[pool[k]]
				}
				if needHarm && !hasHarm {
					continue
				}
				out = append(out, cand)
			}
		}
	}
	return out
}

// mergeChains replaces runs of unresolved sinusoids. Without harmonics only
// free sinusoids take part and each run becomes one new free sinusoid; with
// harmonics every sinusoid takes part, runs must contain a harmonic and are
// replaced by their harmonics.
func (r *reducer) mergeChains(withHarm bool) error {
	locked := r.harmonics().Mask(len(r.set))
	var pool []int
	for i := range r.set {
		if withHarm || !locked[i] {
			pool = append(pool, i)
		}
	}
	cands := r.chainCandidates(pool, locked, withHarm)
	if len(cands) == 0 {
		return nil
	}

	consumed := make([]bool, len(r.set))
	var (
		gone        []int
		replacement signal.Set
		nAcc        int
	)
	for nPrev := -1; nAcc > nPrev; {
		nPrev = nAcc
		for _, cand := range cands {
			if anyConsumed(consumed, cand) {
				continue
			}
			base := r.set.Without(append(gone, cand...)...).With(replacement...)
			tr, err := r.w.fitTrend(base)
			if err != nil {
				return err
			}
			resid := r.w.residual(tr, base)

			var repl signal.Set
			if withHarm {
				for _, i := range cand {
					if !locked[i] {
						continue
					}
					f := r.set[i].Freq
					a, ph, err := r.w.amplPhase(resid, f)
					if err != nil {
						return err
					}
					repl = append(repl, signal.Sinusoid{Freq: f, Ampl: a, Phase: ph})
				}
			} else {
				lo, hi := math.Inf(1), math.Inf(-1)
				for _, i := range cand {
					lo = math.Min(lo, r.set[i].Freq)
					hi = math.Max(hi, r.set[i].Freq)
				}
				res := r.s.Resolution()
				sin, err := ExtractSingle(r.s, resid, lo-res, hi+res, r.opts...)
				if err != nil {
					return err
				}
				repl = signal.Set{sin}
			}

			bic, err := r.score(base.With(repl...))
			if err != nil {
				return err
			}
			if !selection.Improved(r.bicPrev, bic, selection.AnyImprovement) {
				continue
			}
			for _, i := range cand {
				consumed[i] = true
			}
			gone = append(gone, cand...)
			replacement = append(replacement, repl...)
			r.bicPrev = bic
			nAcc++
			r.cfg.logger.Debug().
				Bool("harmonics", withHarm).
				Int("merged", len(cand)).
				Int("replaced_by", len(repl)).
				Float64("bic", bic).
				Msg("merged close frequencies")
		}
	}

	r.set = r.set.Without(gone...).With(replacement...)
	return nil
}

func anyConsumed(consumed []bool, idx []int) bool {
	for _, i := range idx {
		if consumed[i] {
			return true
		}
	}
	return false
}
