package core_test

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-lightcurve/dsp/core"
	"github.com/cwbudde/algo-lightcurve/internal/testutil"
)

func TestWrapPhase(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi / 2, math.Pi / 2},
		{0.25, 0.25},
	}

	for _, tt := range tests {
		got := core.WrapPhase(tt.in)
		if !testutil.NearlyEqual(got, tt.want, 1e-12) {
			t.Fatalf("WrapPhase(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Fatalf("WrapPhase(%v) = %v outside (-pi, pi]", tt.in, got)
		}
	}
}

func TestRound(t *testing.T) {
	if got := core.Round(2.004999, 2); got != 2.0 {
		t.Fatalf("Round = %v, want 2", got)
	}
	if got := core.Round(-1.2351, 2); got != -1.24 {
		t.Fatalf("Round = %v, want -1.24", got)
	}
}

func TestPeakToPeakAndMinDiff(t *testing.T) {
	x := []float64{0, 0.5, 0.7, 2.0}
	if got := core.PeakToPeak(x); got != 2.0 {
		t.Fatalf("PeakToPeak = %v, want 2", got)
	}
	if got := core.MinDiff(x); !testutil.NearlyEqual(got, 0.2, 1e-12) {
		t.Fatalf("MinDiff = %v, want 0.2", got)
	}
	if got := core.Nyquist(x); !testutil.NearlyEqual(got, 2.5, 1e-12) {
		t.Fatalf("Nyquist = %v, want 2.5", got)
	}
	if !math.IsInf(core.MinDiff([]float64{1}), 1) {
		t.Fatal("expected +Inf for single element")
	}
}
