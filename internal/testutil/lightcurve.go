package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

// LightCurve is a synthetic series with its generating model.
type LightCurve struct {
	Times    []float64
	Flux     []float64
	FluxErr  []float64
	Segments signal.Segments
	Trend    signal.Trend
	Truth    signal.Set
}

// UniformTimes returns n time stamps spaced by dt starting at 0.
func UniformTimes(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}
	return out
}

// DeterministicNoise generates zero-mean Gaussian noise with a fixed seed.
func DeterministicNoise(seed int64, sigma float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// SyntheticLightCurve samples truth on n uniform points of step dt, adds a
// constant offset and Gaussian noise of the given sigma. Errors are set to
// sigma, or to 1 when sigma is 0.
func SyntheticLightCurve(truth signal.Set, n int, dt, offset, sigma float64, seed int64) LightCurve {
	times := UniformTimes(n, dt)
	segs := signal.Whole(n)
	trend := signal.Trend{Const: []float64{offset}, Slope: []float64{0}}

	g := signal.NewGenerator(signal.WithSeed(seed))
	flux, err := g.LightCurve(times, trend, segs, truth, sigma)
	if err != nil {
		panic(err)
	}

	e := sigma
	if e == 0 {
		e = 1
	}
	errs := make([]float64, n)
	for i := range errs {
		errs[i] = e
	}

	return LightCurve{Times: times, Flux: flux, FluxErr: errs, Segments: segs, Trend: trend, Truth: truth}
}

// HarmonicSeries returns sinusoids at n/pOrb for n = 1..count with amplitudes
// decaying as a0/n and fixed phases.
func HarmonicSeries(pOrb, a0 float64, count int) signal.Set {
	out := make(signal.Set, count)
	for n := 1; n <= count; n++ {
		out[n-1] = signal.Sinusoid{
			Freq:  float64(n) / pOrb,
			Ampl:  a0 / float64(n),
			Phase: math.Mod(0.7*float64(n), 2*math.Pi) - math.Pi,
		}
	}
	return out
}

// NearestFreq returns the index of the sinusoid in set closest in frequency to
// f and the absolute distance, or -1 for an empty set.
func NearestFreq(set signal.Set, f float64) (int, float64) {
	best, dist := -1, math.Inf(1)
	for i, s := range set {
		if d := math.Abs(s.Freq - f); d < dist {
			best, dist = i, d
		}
	}
	return best, dist
}
