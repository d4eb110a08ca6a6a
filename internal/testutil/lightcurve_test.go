package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

func TestUniformTimes(t *testing.T) {
	ts := UniformTimes(4, 0.5)
	RequireSliceNearlyEqual(t, ts, []float64{0, 0.5, 1, 1.5}, 0)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	require.Len(t, a, 64)
	assert.Equal(t, a, b)

	c := DeterministicNoise(43, 1.0, 64)
	assert.NotEqual(t, a, c)
}

func TestSyntheticLightCurveNoiseless(t *testing.T) {
	truth := signal.Set{{Freq: 0.3, Ampl: 1, Phase: 0.2}}
	lc := SyntheticLightCurve(truth, 50, 0.1, 5, 0, 1)
	require.Len(t, lc.Flux, 50)
	assert.Equal(t, Ones(50), lc.FluxErr)
	for i, tm := range lc.Times {
		want := 5 + math.Sin(2*math.Pi*0.3*tm+0.2)
		assert.InDelta(t, want, lc.Flux[i], 1e-12)
	}
}

func TestHarmonicSeries(t *testing.T) {
	s := HarmonicSeries(2, 1, 3)
	require.Len(t, s, 3)
	assert.InDelta(t, 1.5, s[2].Freq, 1e-15)
	assert.InDelta(t, 1.0/3, s[2].Ampl, 1e-15)
	for _, v := range s {
		assert.True(t, v.Phase > -math.Pi && v.Phase <= math.Pi)
	}
}

func TestNearestFreq(t *testing.T) {
	s := signal.Set{{Freq: 1}, {Freq: 2}, {Freq: 4}}
	idx, d := NearestFreq(s, 2.9)
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 0.9, d, 1e-12)

	idx, _ = NearestFreq(nil, 1)
	assert.Equal(t, -1, idx)
}
