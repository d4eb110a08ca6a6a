package periodogram

import (
	"fmt"
	"math"
)

// NoiseSpectrum returns a smoothed amplitude spectrum: the running mean of the
// default [Fast] spectrum over a window of the given width in frequency units.
// The spectrum is mirrored at both ends before smoothing.
func NoiseSpectrum(times, signal []float64, width float64) (freqs, noise []float64, err error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, nil, fmt.Errorf("periodogram: noise window width must be > 0: %v", width)
	}
	freqs, ampls, err := Fast(times, signal, 0, 0, 0)
	if err != nil {
		return nil, nil, err
	}
	if len(freqs) < 2 {
		return freqs, append([]float64(nil), ampls...), nil
	}
	return freqs, runningMean(ampls, int(math.Ceil(width/math.Abs(freqs[1]-freqs[0])))), nil
}

// runningMean averages a centred window of w points with mirrored edges.
func runningMean(x []float64, w int) []float64 {
	n := len(x)
	out := make([]float64, n)
	if w <= 1 {
		copy(out, x)
		return out
	}

	at := func(i int) float64 {
		for i < 0 || i >= n {
			if i < 0 {
				i = -i - 1
			}
			if i >= n {
				i = 2*n - i - 1
			}
		}
		return x[i]
	}

	lo := -(w / 2)
	hi := lo + w
	var sum float64
	for j := lo; j < hi; j++ {
		sum += at(j)
	}
	for i := 0; i < n; i++ {
		out[i] = sum / float64(w)
		sum += at(i+hi) - at(i+lo)
	}
	return out
}

// NoiseAt returns the mean [Fast] amplitude in a window of the given width
// around each frequency in fs. When a window holds no grid point the nearest
// grid amplitude is used.
func NoiseAt(fs, times, signal []float64, width float64) ([]float64, error) {
	if width <= 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return nil, fmt.Errorf("periodogram: noise window width must be > 0: %v", width)
	}
	freqs, ampls, err := Fast(times, signal, 0, 0, 0)
	if err != nil {
		return nil, err
	}

	margin := width / 2
	out := make([]float64, len(fs))
	for i, f := range fs {
		var sum float64
		var cnt int
		nearest, best := 0, math.Inf(1)
		for k, fk := range freqs {
			if fk > f-margin && fk <= f+margin {
				sum += ampls[k]
				cnt++
			}
			if d := math.Abs(fk - f); d < best {
				nearest, best = k, d
			}
		}
		if cnt > 0 {
			out[i] = sum / float64(cnt)
		} else {
			out[i] = ampls[nearest]
		}
	}
	return out, nil
}
