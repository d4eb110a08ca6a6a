// Package residual summarises model residuals: moments, extrema and the
// correlation of consecutive signs.
package residual

import "math"

// Stats holds residual statistics.
type Stats struct {
	Length   int
	Mean     float64
	RMS      float64
	Max      float64
	MaxPos   int
	Min      float64
	MinPos   int
	Variance float64 // population variance
	Skewness float64
	Kurtosis float64 // excess kurtosis
	// SignChanges counts positions where r[i] > 0 differs from r[i-1] > 0.
	SignChanges int
	// DFactor is the square root of the mean length of same-sign runs.
	// It is 1 for white noise alternating every point and grows with
	// correlated residuals.
	DFactor float64
}

// Calculate computes all statistics in a single pass using Welford's online
// algorithm for the higher-order moments.
func Calculate(resid []float64) Stats {
	n := len(resid)
	if n == 0 {
		return Stats{}
	}

	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	var (
		sumSq   float64
		maxVal  = resid[0]
		maxPos  int
		minVal  = resid[0]
		minPos  int
		changes int
	)

	for i, x := range resid {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}

		if i > 0 && (resid[i-1] > 0) != (x > 0) {
			changes++
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:      n,
		Mean:        mean,
		RMS:         math.Sqrt(sumSq / nf),
		Max:         maxVal,
		MaxPos:      maxPos,
		Min:         minVal,
		MinPos:      minPos,
		Variance:    variance,
		Skewness:    skewness,
		Kurtosis:    kurtosis,
		SignChanges: changes,
		DFactor:     math.Sqrt(nf / float64(changes+1)),
	}
}

// DFactor returns the square root of the mean number of consecutive points
// of the same sign. Zero counts as negative. An empty input returns 0.
func DFactor(resid []float64) float64 {
	if len(resid) == 0 {
		return 0
	}
	return math.Sqrt(float64(len(resid)) / float64(SignChanges(resid)+1))
}

// SignChanges counts sign changes between consecutive residuals.
func SignChanges(resid []float64) int {
	var count int
	for i := 1; i < len(resid); i++ {
		if (resid[i-1] > 0) != (resid[i] > 0) {
			count++
		}
	}
	return count
}

// StdDev returns sqrt(sum(r^2)/dof), the residual scatter for a model with
// len(resid)-dof free parameters. It returns NaN when dof is not positive.
func StdDev(resid []float64, dof int) float64 {
	if dof <= 0 {
		return math.NaN()
	}
	var ss float64
	for _, r := range resid {
		ss += r * r
	}
	return math.Sqrt(ss / float64(dof))
}

// Moments returns the mean, population variance, skewness, and excess kurtosis
// of the residuals.
func Moments(resid []float64) (mean, variance, skewness, kurtosis float64) {
	s := Calculate(resid)
	return s.Mean, s.Variance, s.Skewness, s.Kurtosis
}
