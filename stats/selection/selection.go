// Package selection implements the Bayesian Information Criterion used to
// accept or reject model changes, together with the parameter-count rules
// for sinusoid models.
package selection

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-lightcurve/dsp/core"
)

// Acceptance thresholds on a BIC improvement.
const (
	// AnyImprovement accepts every strictly positive (rounded) improvement.
	AnyImprovement = 0.0
	// Significant requires an improvement of more than 2.
	Significant = 2.0
)

// State summarises a model: its parameter count, BIC and residual noise level.
type State struct {
	NParam     int
	BIC        float64
	NoiseLevel float64
}

// LogLikelihood returns the Gaussian log-likelihood of normalised residuals
// with the variance estimated from the residuals themselves:
//
//	ln L = -n/2 * (ln(2*pi*sum(r^2)/n) + 1)
func LogLikelihood(resid []float64) float64 {
	n := float64(len(resid))
	ss := floats.Dot(resid, resid)
	return -n / 2 * (math.Log(2*math.Pi*ss/n) + 1)
}

// BIC returns n*ln(2*pi*sum(r^2)/n) + n + k*ln(n) for normalised residuals r
// and k free parameters. Lower is better. A zero residual gives -Inf.
func BIC(resid []float64, nParam int) float64 {
	n := float64(len(resid))
	ss := floats.Dot(resid, resid)
	return n*math.Log(2*math.Pi*ss/n) + n + float64(nParam)*math.Log(n)
}

// BICWeighted is BIC of (y - model)/err without materialising the
// normalised residual. err may hold one value per point or a single value.
func BICWeighted(resid, errs []float64, nParam int) float64 {
	n := float64(len(resid))
	var ss float64
	switch len(errs) {
	case 0:
		ss = floats.Dot(resid, resid)
	case 1:
		ss = floats.Dot(resid, resid) / (errs[0] * errs[0])
	default:
		for i, r := range resid {
			v := r / errs[i]
			ss += v * v
		}
	}
	return n*math.Log(2*math.Pi*ss/n) + n + float64(nParam)*math.Log(n)
}

// ParamCount returns the free parameters of a model with nSeg linear
// segments and nSin sinusoids of which nHarm are locked harmonics.
// Free sinusoids count 3, harmonics 2 (their frequency follows from the
// period), and the period itself counts once when any harmonic is present.
func ParamCount(nSeg, nSin, nHarm int) int {
	k := 2*nSeg + 3*(nSin-nHarm) + 2*nHarm
	if nHarm > 0 {
		k++
	}
	return k
}

// Improved reports whether going from BIC before to after is an improvement
// above threshold. The difference is rounded to two decimals first.
func Improved(before, after, threshold float64) bool {
	return core.Round(before-after, 2) > threshold
}

// SNThreshold returns the signal-to-noise acceptance threshold for a series
// of n points (Baran & Koen 2021, eq. 6), rounded to two decimals.
func SNThreshold(n int) float64 {
	return core.Round(1.201*math.Sqrt(1.05*math.Log(float64(n))+7.184), 2)
}
