package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

func TestNearestFreqTolerance(t *testing.T) {
	set := signal.Set{{Freq: 1}, {Freq: 2.5}, {Freq: 4}}

	idx, d := NearestFreq(set, 2.3)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 0.2, d, 1e-12)

	idx, d = NearestFreq(nil, 2.3)
	assert.Equal(t, -1, idx)
	assert.True(t, math.IsInf(d, 1))
}

func TestRequireHelpersPass(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2.0000001}, []float64{1, 2}, 1e-6)
	RequireFinite(t, []float64{0, -1, 1e300})

	set := signal.Set{{Freq: 0.5, Ampl: 0.1}, {Freq: 1.3, Ampl: 0.0202}}
	RequireRecovered(t, set, signal.Sinusoid{Freq: 1.3001, Ampl: 0.02}, 1e-3, 0.02)
}

func TestNearlyEqual(t *testing.T) {
	assert.True(t, NearlyEqual(1.0, 1.0+1e-13, 1e-12))
	assert.True(t, NearlyEqual(1e6, 1e6+1e-7, 1e-12))
	assert.True(t, NearlyEqual(0, 1e-13, 0))
	assert.False(t, NearlyEqual(1.0, 1.1, 1e-3))
}
