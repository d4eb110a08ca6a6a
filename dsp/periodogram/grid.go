package periodogram

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lightcurve/dsp/core"
)

// Grid describes an equidistant frequency grid F0 + k*Step for k in [0, N).
type Grid struct {
	F0   float64
	Step float64
	N    int
}

// Freqs returns the grid frequencies.
func (g Grid) Freqs() []float64 {
	out := make([]float64, g.N)
	for k := range out {
		out[k] = g.F0 + float64(k)*g.Step
	}
	return out
}

// ResolveGrid applies the default grid rules for a series with the given time
// stamps. A zero fn selects the pseudo-Nyquist frequency 1/(2*min(dt)), a zero
// df selects 0.1/T, and f0 is raised to at least 0.01/T (so a negative f0 is
// allowed and means "from the lowest frequency").
func ResolveGrid(times []float64, f0, fn, df float64) (Grid, error) {
	if len(times) < 2 {
		return Grid{}, ErrEmpty
	}
	for _, v := range []float64{f0, fn, df} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Grid{}, fmt.Errorf("%w: f0=%v fn=%v df=%v", ErrBadGrid, f0, fn, df)
		}
	}
	if fn < 0 || df < 0 {
		return Grid{}, fmt.Errorf("%w: fn=%v df=%v must not be negative", ErrBadGrid, fn, df)
	}

	span := times[len(times)-1] - times[0]
	minStep := core.MinDiff(times)
	if span <= 0 || minStep <= 0 {
		return Grid{}, ErrDegenerateTimes
	}

	f0 = math.Max(f0, 0.01/span)
	if df == 0 {
		df = 0.1 / span
	}
	if fn == 0 {
		fn = 1 / (2 * minStep)
	}

	nf := int((fn-f0)/df+0.001) + 1
	if nf < 1 {
		nf = 1
	}

	return Grid{F0: f0, Step: df, N: nf}, nil
}

func validateSeries(times, signal []float64) error {
	if len(times) != len(signal) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(times), len(signal))
	}
	if len(times) < 2 {
		return ErrEmpty
	}
	return nil
}
