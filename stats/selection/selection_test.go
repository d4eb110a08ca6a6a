package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBICClosedForm(t *testing.T) {
	r := []float64{1, -1, 1, -1}
	// n ln(2 pi) + n + k ln n with sum(r^2)/n = 1
	want := 4*math.Log(2*math.Pi) + 4 + 3*math.Log(4)
	assert.InDelta(t, want, BIC(r, 3), 1e-12)
}

func TestBICLikelihoodRelation(t *testing.T) {
	r := []float64{0.3, -1.2, 0.8, 0.1, -0.4}
	k := 4
	want := -2*LogLikelihood(r) + float64(k)*math.Log(float64(len(r)))
	assert.InDelta(t, want, BIC(r, k), 1e-12)
}

func TestBICWeighted(t *testing.T) {
	resid := []float64{0.2, -0.4, 0.6}
	errs := []float64{0.1, 0.2, 0.3}
	norm := []float64{2, -2, 2}
	assert.InDelta(t, BIC(norm, 5), BICWeighted(resid, errs, 5), 1e-12)
	assert.InDelta(t, BIC([]float64{2, -4, 6}, 5), BICWeighted(resid, []float64{0.1}, 5), 1e-12)
	assert.InDelta(t, BIC(resid, 5), BICWeighted(resid, nil, 5), 1e-12)
}

func TestBICZeroResidual(t *testing.T) {
	assert.True(t, math.IsInf(BIC([]float64{0, 0, 0}, 1), -1))
}

func TestParamCount(t *testing.T) {
	tests := []struct {
		seg, sin, harm, want int
	}{
		{1, 0, 0, 2},
		{1, 1, 0, 5},
		{2, 3, 0, 13},
		{1, 3, 2, 2 + 3 + 4 + 1},
		{3, 5, 5, 6 + 10 + 1},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ParamCount(tc.seg, tc.sin, tc.harm), "%+v", tc)
	}
}

func TestImprovedRounding(t *testing.T) {
	assert.True(t, Improved(10, 7.99, Significant))
	assert.False(t, Improved(10, 8, Significant))
	// 2.004 rounds to 2.00, not above 2
	assert.False(t, Improved(10.004, 8, Significant))
	assert.True(t, Improved(1, 0.99, AnyImprovement))
	// 0.004 rounds to 0
	assert.False(t, Improved(1.004, 1, AnyImprovement))
	assert.False(t, Improved(1, 2, AnyImprovement))
}

func TestSNThreshold(t *testing.T) {
	want := math.Round(1.201*math.Sqrt(1.05*math.Log(1000)+7.184)*100) / 100
	assert.Equal(t, want, SNThreshold(1000))
	assert.Greater(t, SNThreshold(100000), SNThreshold(100))
}
