package harmonic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPatternBasic(t *testing.T) {
	p := 2.0
	freqs := []float64{0.5, 1.3, 1.0001, 0.7, 1.5}
	m := FromPattern(freqs, p, 0.01)
	assert.Equal(t, []int{0, 2, 4}, m.Indices())
	assert.Equal(t, []int{1, 2, 3}, m.Numbers())
}

func TestFromPatternClosestWins(t *testing.T) {
	p := 1.0
	freqs := []float64{2.004, 1.0, 1.998, 2.0005}
	m := FromPattern(freqs, p, 0.01)
	assert.Equal(t, []int{1, 3}, m.Indices())
	assert.Equal(t, []int{1, 2}, m.Numbers())

	all := WithinTolerance(freqs, p, 0.01)
	assert.Len(t, all, 4)
}

func TestFromPatternZeroMapsToOne(t *testing.T) {
	// round(0.3*1) = 0 -> treated as n=1, 0.7 away
	m := FromPattern([]float64{0.3, 0.999}, 1, 0.01)
	assert.Equal(t, []int{1}, m.Indices())
	assert.Equal(t, []int{1}, m.Numbers())
}

func TestFromPatternIdempotent(t *testing.T) {
	freqs := []float64{0.25, 0.5, 0.74, 1.0, 3.3}
	a := FromPattern(freqs, 4, 0.02)
	b := FromPattern(freqs, 4, 0.02)
	assert.Equal(t, a, b)
	assert.Equal(t, []float64{0.25, 0.5, 0.74, 1.0, 3.3}, freqs)
}

func TestFromPatternTightTolerance(t *testing.T) {
	p := 3.7
	freqs := []float64{2 / p, 5/p + 1e-6, 0.123}
	m := FromPattern(freqs, p, TightTolerance)
	assert.Equal(t, []int{0}, m.Indices())
	assert.Equal(t, []int{2}, m.Numbers())
}

func TestFromPatternNonPositivePeriod(t *testing.T) {
	assert.Empty(t, FromPattern([]float64{1, 2}, 0, 0.1))
}

func TestMatchesHelpers(t *testing.T) {
	m := Matches{{Index: 3, N: 2}, {Index: 0, N: 5}, {Index: 1, N: 2}}
	assert.True(t, m.Contains(0))
	assert.False(t, m.Contains(2))
	assert.Equal(t, []bool{true, true, false, true}, m.Mask(4))
	assert.Equal(t, []int{2, 5}, m.UniqueNumbers())
}

func TestDefaultTolerance(t *testing.T) {
	assert.InDelta(t, 1.5/(2*100), DefaultTolerance(100, 2), 1e-15)
	// long period relative to T: half the harmonic spacing wins
	assert.InDelta(t, 1/(2*100.0), DefaultTolerance(1, 100), 1e-15)
}

func TestWithinRayleigh(t *testing.T) {
	freqs := []float64{1.0, 3.0, 1.05, 1.12, 2.0, 1.2}
	res := 0.1
	chain := WithinRayleigh(2, freqs, res)
	assert.Equal(t, []int{0, 2, 3, 5}, chain)

	alone := WithinRayleigh(4, freqs, res)
	assert.Equal(t, []int{4}, alone)

	assert.Nil(t, WithinRayleigh(9, freqs, res))
}

func TestChainsWithinRayleigh(t *testing.T) {
	freqs := []float64{5.0, 1.0, 5.05, 1.05, 3.0, 1.5, 5.3}
	chains := ChainsWithinRayleigh(freqs, 0.1)
	require.Len(t, chains, 2)
	assert.Equal(t, []int{1, 3}, chains[0])
	assert.Equal(t, []int{0, 2}, chains[1])

	assert.Empty(t, ChainsWithinRayleigh([]float64{1, 2, 3}, 0.1))
}

func TestSeriesLength(t *testing.T) {
	base := 0.25
	freqs := []float64{0.25, 0.5, 1.0, 0.9, 2.0}
	s := SeriesLength([]float64{base, 0.33}, freqs, 0.02, 10)
	require.Len(t, s, 2)
	assert.Equal(t, 4, s[0].Count)
	assert.InDelta(t, 4.0/8, s[0].Completeness, 1e-12)
	assert.InDelta(t, 0, s[0].Distance, 1e-20)

	// Nyquist cut removes n=8
	cut := SeriesLength([]float64{base}, freqs, 0.02, 1.5)
	assert.Equal(t, 3, cut[0].Count)
	assert.InDelta(t, 3.0/4, cut[0].Completeness, 1e-12)
}
