// Package uncertainty derives formal errors for sinusoid and trend
// parameters from the residuals of a fitted model (Montgomery & O'Donoghue
// 1999, with the correlation correction of Schwarzenberg-Czerny 1991).
package uncertainty

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-lightcurve/dsp/core"
	"github.com/cwbudde/algo-lightcurve/dsp/signal"
	"github.com/cwbudde/algo-lightcurve/stats/residual"
)

// ErrTooFewPoints is returned when the model has at least as many parameters
// as data points.
var ErrTooFewPoints = errors.New("uncertainty: not enough degrees of freedom")

// Errors holds one formal error per model parameter.
type Errors struct {
	Const []float64
	Slope []float64
	Freq  []float64
	Ampl  []float64
	Phase []float64
}

// Formal returns formal errors for a model with the given sinusoids fitted
// to times, where resid are the final model residuals.
//
// All sinusoid errors are scaled by the D-factor of the residuals.
// Trend errors use the residual scatter of each segment.
func Formal(times, resid []float64, set signal.Set, segs signal.Segments) (Errors, error) {
	n := len(resid)
	if len(times) != n {
		return Errors{}, fmt.Errorf("uncertainty: times and residuals differ in length: %d != %d", len(times), n)
	}
	if err := segs.Validate(n); err != nil {
		return Errors{}, err
	}
	dof := n - (2*len(segs) + 3*len(set))
	if dof <= 0 {
		return Errors{}, fmt.Errorf("%w: %d points, %d parameters", ErrTooFewPoints, n, n-dof)
	}

	std := residual.StdDev(resid, dof)
	d := residual.DFactor(resid)
	span := core.PeakToPeak(times)
	nf := float64(n)

	out := Errors{
		Const: make([]float64, len(segs)),
		Slope: make([]float64, len(segs)),
		Freq:  make([]float64, len(set)),
		Ampl:  make([]float64, len(set)),
		Phase: make([]float64, len(set)),
	}

	sigmaA := d * std * math.Sqrt(2/nf)
	for i, s := range set {
		out.Freq[i] = d * std * math.Sqrt(6/nf) / (math.Pi * s.Ampl * span)
		out.Ampl[i] = sigmaA
		out.Phase[i] = sigmaA / s.Ampl
	}

	for k, s := range segs {
		t := times[s.Start:s.End]
		r := resid[s.Start:s.End]
		segStd := residual.StdDev(r, s.Len()-2)
		if s.Len() <= 2 {
			segStd = std
		}
		mean := stat.Mean(t, nil)
		var ssxx float64
		for _, v := range t {
			ssxx += (v - mean) * (v - mean)
		}
		out.Const[k] = segStd * math.Sqrt(1/float64(s.Len())+mean*mean/ssxx)
		out.Slope[k] = segStd / math.Sqrt(ssxx)
	}
	return out, nil
}

// PeriodError returns the error of the orbital period pOrb as obtained from
// the inverse-variance weighted mean of the harmonic frequencies. freqErr
// holds the frequency errors of the harmonics and harmonicN their orders.
func PeriodError(pOrb float64, freqErr []float64, harmonicN []int) (float64, error) {
	if len(freqErr) != len(harmonicN) || len(freqErr) == 0 {
		return 0, fmt.Errorf("uncertainty: need matching, non-empty harmonic errors: %d, %d", len(freqErr), len(harmonicN))
	}
	var w float64
	for i, e := range freqErr {
		if e <= 0 || harmonicN[i] <= 0 {
			return 0, fmt.Errorf("uncertainty: invalid harmonic error %v for n=%d", e, harmonicN[i])
		}
		scaled := e / float64(harmonicN[i])
		w += 1 / (scaled * scaled)
	}
	return pOrb * pOrb / math.Sqrt(w), nil
}
