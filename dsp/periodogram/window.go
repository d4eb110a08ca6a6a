package periodogram

import "math"

// SpectralWindow returns |W(f)|^2 of the sampling pattern at each frequency,
// where W is the Fourier transform of a unit comb at times. The result is
// normalised to 1 at f = 0.
func SpectralWindow(times, freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	if len(times) == 0 {
		return out
	}
	n2 := float64(len(times)) * float64(len(times))
	for k, f := range freqs {
		var c, s float64
		w := 2 * math.Pi * f
		for _, t := range times {
			sn, cs := math.Sincos(w * t)
			c += cs
			s += sn
		}
		out[k] = (c*c + s*s) / n2
	}
	return out
}
