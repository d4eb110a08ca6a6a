package periodogram

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// sumsBuf holds pooled accumulators for the grid periodogram.
type sumsBuf struct {
	data []float64
}

var sumsPool = sync.Pool{
	New: func() any { return &sumsBuf{} },
}

// getSums returns six zeroed slices of length n backed by pooled memory.
func getSums(n int) (ss, sc, ss2, sc2, t0, t1 []float64, buf *sumsBuf) {
	buf = sumsPool.Get().(*sumsBuf)
	need := 6 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
		clear(buf.data)
	}
	d := buf.data
	return d[:n], d[n : 2*n], d[2*n : 3*n], d[3*n : 4*n], d[4*n : 5*n], d[5*n:], buf
}

func putSums(buf *sumsBuf) {
	sumsPool.Put(buf)
}

// Scargle computes the Lomb-Scargle amplitude spectrum of signal on the grid
// chosen by [ResolveGrid].
//
// The trigonometric sums are advanced from bin to bin with the Cuypers
// rotation recurrence, so no explicit tau is computed per frequency.
// A non-finite first bin (possible at very low f0) is reported as 0.
func Scargle(times, signal []float64, f0, fn, df float64) (freqs, ampls []float64, err error) {
	if err := validateSeries(times, signal); err != nil {
		return nil, nil, err
	}
	grid, err := ResolveGrid(times, f0, fn, df)
	if err != nil {
		return nil, nil, err
	}
	return grid.Freqs(), scargleGrid(times, signal, grid), nil
}

// ScargleGrid is like [Scargle] for an already resolved grid.
func ScargleGrid(times, signal []float64, grid Grid) ([]float64, error) {
	if err := validateSeries(times, signal); err != nil {
		return nil, err
	}
	if grid.N < 1 || grid.Step <= 0 {
		return nil, ErrBadGrid
	}
	return scargleGrid(times, signal, grid), nil
}

func scargleGrid(times, signal []float64, grid Grid) []float64 {
	nf := grid.N
	ss, sc, ss2, sc2, num, den, buf := getSums(nf)
	defer putSums(buf)

	twoPi := 2 * math.Pi
	for i, t := range times {
		tf0 := math.Mod(t*twoPi*grid.F0, twoPi)
		sinF0, cosF0 := math.Sincos(tf0)
		mc1a := 2 * sinF0 * cosF0
		mc1b := cosF0*cosF0 - sinF0*sinF0

		tdf := math.Mod(t*twoPi*grid.Step, twoPi)
		sinDf, cosDf := math.Sincos(tdf)
		mc2a := 2 * sinDf * cosDf
		mc2b := cosDf*cosDf - sinDf*sinDf

		sinS := sinF0 * signal[i]
		cosS := cosF0 * signal[i]
		for j := 0; j < nf; j++ {
			ss[j] += sinS
			sc[j] += cosS
			cosS, sinS = cosS*cosDf-sinS*sinDf, sinS*cosDf+cosS*sinDf
			ss2[j] += mc1a
			sc2[j] += mc1b
			mc1b, mc1a = mc1b*mc2b-mc1a*mc2a, mc1a*mc2b+mc1b*mc2a
		}
	}

	n := float64(len(times))

	// den = sc2^2 + ss2^2, num = ss*sc
	vecmath.Power(den, sc2, ss2)
	vecmath.MulBlock(num, ss, sc)

	out := make([]float64, nf)
	scale := math.Sqrt(4 / n)
	for j := 0; j < nf; j++ {
		p := (sc[j]*sc[j]*(n-sc2[j]) + ss[j]*ss[j]*(n+sc2[j]) - 2*num[j]*ss2[j]) / (n*n - den[j])
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			p = 0
		}
		out[j] = scale * math.Sqrt(p)
	}
	return out
}
