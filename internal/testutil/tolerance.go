package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want), "length mismatch")
	for i := range got {
		require.InDeltaf(t, want[i], got[i], eps, "index %d", i)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireRecovered fails t unless got holds a sinusoid within fTol of want's
// frequency whose amplitude is within aRel (relative) of want's amplitude.
func RequireRecovered(t *testing.T, got signal.Set, want signal.Sinusoid, fTol, aRel float64) {
	t.Helper()
	idx, d := NearestFreq(got, want.Freq)
	require.GreaterOrEqualf(t, idx, 0, "no sinusoids recovered, want f=%v", want.Freq)
	require.LessOrEqualf(t, d, fTol, "frequency %v not recovered (nearest %v)", want.Freq, got[idx].Freq)
	require.InEpsilonf(t, want.Ampl, got[idx].Ampl, aRel, "amplitude at f=%v", want.Freq)
}

// NearlyEqual reports whether a and b agree within eps, absolute for values
// near zero and relative otherwise. A non-positive eps selects 1e-12.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = 1e-12
	}
	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff/largest <= eps
}
