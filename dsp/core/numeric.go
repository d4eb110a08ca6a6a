package core

import "math"

// WrapPhase maps a phase in radians onto the interval (-pi, pi].
func WrapPhase(phase float64) float64 {
	w := math.Mod(phase+math.Pi, 2*math.Pi)
	if w < 0 {
		w += 2 * math.Pi
	}
	w -= math.Pi
	// Mod puts an exact +pi input at -pi.
	if w <= -math.Pi {
		w += 2 * math.Pi
	}

	return w
}

// Round rounds x half away from zero to the given number of decimals.
//
// Model-selection decisions compare BIC differences after Round(x, 2) so
// that floating-point noise cannot flip an accept/reject outcome.
func Round(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(x*scale) / scale
}

// PeakToPeak returns max(x) - min(x), or 0 for an empty slice.
func PeakToPeak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	lo, hi := x[0], x[0]
	for _, v := range x[1:] {
		if v < lo {
			lo = v
		}

		if v > hi {
			hi = v
		}
	}

	return hi - lo
}

// MinDiff returns the smallest difference between consecutive elements.
// It returns +Inf when x has fewer than two elements.
func MinDiff(x []float64) float64 {
	minD := math.Inf(1)
	for i := 1; i < len(x); i++ {
		if d := x[i] - x[i-1]; d < minD {
			minD = d
		}
	}

	return minD
}

// Nyquist returns the pseudo-Nyquist frequency 1/(2*min(dt)) of a sorted
// time array.
func Nyquist(times []float64) float64 {
	return 1 / (2 * MinDiff(times))
}
