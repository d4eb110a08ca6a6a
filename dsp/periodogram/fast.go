package periodogram

import (
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// fastOversampling is the FFT length relative to the number of grid bins.
	fastOversampling = 5
	// extirpolationOrder is the number of grid points each sample is spread over.
	extirpolationOrder = 4
)

// Fast approximates [Scargle] with the Press-Rybicki method: samples are
// extirpolated onto a regular grid and the trigonometric sums are evaluated
// with an FFT. The grid rules and amplitude normalisation match [Scargle].
//
// Accuracy degrades for very narrow grids far from zero frequency; use
// [Scargle] when exact amplitudes matter.
func Fast(times, signal []float64, f0, fn, df float64) (freqs, ampls []float64, err error) {
	if err := validateSeries(times, signal); err != nil {
		return nil, nil, err
	}
	grid, err := ResolveGrid(times, f0, fn, df)
	if err != nil {
		return nil, nil, err
	}

	n := len(times)
	w := 1 / float64(n)
	wy := make([]float64, n)
	wt := make([]float64, n)
	for i, v := range signal {
		wy[i] = w * v
		wt[i] = w
	}

	sh, ch, err := trigSum(times, wy, grid, 1)
	if err != nil {
		return nil, nil, err
	}
	s2, c2, err := trigSum(times, wt, grid, 2)
	if err != nil {
		return nil, nil, err
	}

	yc := make([]float64, grid.N)
	ys := make([]float64, grid.N)
	for k := 0; k < grid.N; k++ {
		c2w, s2w := 1.0, 0.0
		if h := math.Hypot(c2[k], s2[k]); h > 0 {
			c2w, s2w = c2[k]/h, s2[k]/h
		}
		cw := math.Sqrt(0.5 * (1 + c2w))
		sw := math.Sqrt(math.Max(0, 0.5*(1-c2w)))
		if s2w < 0 {
			sw = -sw
		}

		cc := 0.5 * (1 + c2[k]*c2w + s2[k]*s2w)
		ss := 0.5 * (1 - c2[k]*c2w - s2[k]*s2w)
		if cc > 0 {
			yc[k] = (ch[k]*cw + sh[k]*sw) / math.Sqrt(cc)
		}
		if ss > 0 {
			ys[k] = (sh[k]*cw - ch[k]*sw) / math.Sqrt(ss)
		}
	}

	ampls = make([]float64, grid.N)
	vecmath.Magnitude(ampls, yc, ys)
	for k := range ampls {
		ampls[k] *= math.Sqrt2
	}
	return grid.Freqs(), ampls, nil
}

// trigSum returns S[k] = sum h*sin(2*pi*f_k*t) and C[k] = sum h*cos(2*pi*f_k*t)
// for f_k = factor*(F0 + k*Step).
func trigSum(times, h []float64, grid Grid, factor float64) (s, c []float64, err error) {
	df := grid.Step * factor
	f0 := grid.F0 * factor
	nfft := nextPow2(grid.N * fastOversampling)
	if nfft < 2*extirpolationOrder {
		nfft = 2 * extirpolationOrder
	}

	t0 := times[0]
	values := make([]complex128, len(times))
	pos := make([]float64, len(times))
	for i, t := range times {
		dt := t - t0
		v := complex(h[i], 0)
		if f0 > 0 {
			sn, cs := math.Sincos(2 * math.Pi * f0 * dt)
			v *= complex(cs, sn)
		}
		values[i] = v
		pos[i] = math.Mod(dt*float64(nfft)*df, float64(nfft))
	}

	gridVals := extirpolate(pos, values, nfft, extirpolationOrder)

	// sum g[m]*exp(+i*2*pi*k*m/nfft) == conj(FFT(conj(g)))[k]
	for m := range gridVals {
		gridVals[m] = complex(real(gridVals[m]), -imag(gridVals[m]))
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, nil, fmt.Errorf("periodogram: fft plan: %w", err)
	}
	spec := make([]complex128, nfft)
	if err := plan.Forward(spec, gridVals); err != nil {
		return nil, nil, fmt.Errorf("periodogram: fft: %w", err)
	}

	s = make([]float64, grid.N)
	c = make([]float64, grid.N)
	for k := 0; k < grid.N; k++ {
		v := complex(real(spec[k]), -imag(spec[k]))
		if t0 != 0 {
			f := f0 + df*float64(k)
			sn, cs := math.Sincos(2 * math.Pi * t0 * f)
			v *= complex(cs, sn)
		}
		c[k] = real(v)
		s[k] = imag(v)
	}
	return s, c, nil
}

// extirpolate spreads each value y[i] at fractional position x[i] onto m
// neighbouring points of an n-point grid so that sums of smooth functions
// over the samples are preserved.
func extirpolate(x []float64, y []complex128, n, m int) []complex128 {
	out := make([]complex128, n)

	fact := 1.0
	for j := 2; j < m; j++ {
		fact *= float64(j)
	}

	for i, xi := range x {
		if xi == math.Trunc(xi) {
			idx := int(xi) % n
			out[idx] += y[i]
			continue
		}

		ilo := int(xi - float64(m/2))
		if ilo < 0 {
			ilo = 0
		}
		if ilo > n-m {
			ilo = n - m
		}

		prod := 1.0
		for j := 0; j < m; j++ {
			prod *= xi - float64(ilo) - float64(j)
		}
		num := y[i] * complex(prod, 0)

		den := fact
		for j := 0; j < m; j++ {
			if j > 0 {
				den *= float64(j) / float64(j-m)
			}
			ind := ilo + m - 1 - j
			out[ind] += num / complex(den*(xi-float64(ind)), 0)
		}
	}
	return out
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
