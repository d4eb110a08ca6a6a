package signal

import (
	"math"

	"github.com/cwbudde/algo-lightcurve/dsp/core"
)

// SumSines evaluates the sum of all sinusoids in set at times.
func SumSines(times []float64, set Set) []float64 {
	out := make([]float64, len(times))
	AddSines(out, times, set)
	return out
}

// SumSinesTo overwrites dst with the sum of all sinusoids in set at times.
// dst must have the same length as times.
func SumSinesTo(dst, times []float64, set Set) {
	core.Zero(dst)
	AddSines(dst, times, set)
}

// AddSines accumulates the sum of all sinusoids in set into dst.
func AddSines(dst, times []float64, set Set) {
	for _, s := range set {
		w := 2 * math.Pi * s.Freq
		for i, t := range times {
			dst[i] += s.Ampl * math.Sin(w*t+s.Phase)
		}
	}
}

// SumSinesDeriv evaluates the deriv-th time derivative (deriv >= 1) of the
// sum of sinusoids in set.
func SumSinesDeriv(times []float64, set Set, deriv int) []float64 {
	out := make([]float64, len(times))
	if deriv < 1 {
		AddSines(out, times, set)
		return out
	}
	mod2 := deriv % 2
	mod4 := deriv % 4
	phCos := (math.Pi / 2) * float64(mod2)
	sign := 1.0
	if (mod4-mod2)/2 == 1 {
		sign = -1
	}
	for _, s := range set {
		w := 2 * math.Pi * s.Freq
		scale := sign * math.Pow(w, float64(deriv)) * s.Ampl
		for i, t := range times {
			out[i] += scale * math.Sin(w*t+s.Phase+phCos)
		}
	}
	return out
}

// LinearCurve evaluates the piecewise-linear trend over the given segments.
// Points not covered by any segment are zero.
func LinearCurve(times []float64, trend Trend, segs Segments) []float64 {
	out := make([]float64, len(times))
	LinearCurveTo(out, times, trend, segs)
	return out
}

// LinearCurveTo overwrites dst with the piecewise-linear trend.
func LinearCurveTo(dst, times []float64, trend Trend, segs Segments) {
	core.Zero(dst)
	for k, seg := range segs {
		c, sl := trend.Const[k], trend.Slope[k]
		for i := seg.Start; i < seg.End; i++ {
			dst[i] = c + sl*times[i]
		}
	}
}

// ResidualTo writes y - (trend + sines) into dst and returns dst resized to len(y).
func ResidualTo(dst, y, times []float64, trend Trend, segs Segments, set Set) []float64 {
	dst = core.EnsureLen(dst, len(y))
	LinearCurveTo(dst, times, trend, segs)
	AddSines(dst, times, set)
	for i := range dst {
		dst[i] = y[i] - dst[i]
	}
	return dst
}

// SinesResidualTo writes y - sines into dst and returns dst resized to len(y).
func SinesResidualTo(dst, y, times []float64, set Set) []float64 {
	dst = core.EnsureLen(dst, len(y))
	SumSinesTo(dst, times, set)
	for i := range dst {
		dst[i] = y[i] - dst[i]
	}
	return dst
}
