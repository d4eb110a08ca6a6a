package periodogram

import (
	"math"

	"github.com/cwbudde/algo-lightcurve/dsp/core"
)

// Evaluator computes the Lomb-Scargle amplitude and phase of a fixed series
// at individual frequencies.
//
// Each evaluation uses an explicit time shift
//
//	tau = atan2(sum sin(4*pi*f*t), sum cos(4*pi*f*t)) / (4*pi*f)
//
// which decorrelates the sine and cosine terms. The phase refers to the model
// a*sin(2*pi*f*t + phase) and is wrapped to (-pi, pi].
//
// An Evaluator does not copy its inputs; the caller must not modify them while
// the Evaluator is in use.
type Evaluator struct {
	times  []float64
	signal []float64
}

// NewEvaluator creates an evaluator for the given series.
func NewEvaluator(times, signal []float64) (*Evaluator, error) {
	if err := validateSeries(times, signal); err != nil {
		return nil, err
	}
	return &Evaluator{times: times, signal: signal}, nil
}

// At returns amplitude and phase at frequency f in a single pass pair.
func (e *Evaluator) At(f float64) (ampl, phase float64) {
	return evalSingle(e.times, e.signal, f)
}

// Amplitude returns the amplitude at frequency f.
func (e *Evaluator) Amplitude(f float64) float64 {
	a, _ := evalSingle(e.times, e.signal, f)
	return a
}

// Phase returns the phase at frequency f.
func (e *Evaluator) Phase(f float64) float64 {
	_, ph := evalSingle(e.times, e.signal, f)
	return ph
}

// AmplitudeSingle returns the Lomb-Scargle amplitude of signal at frequency f.
func AmplitudeSingle(times, signal []float64, f float64) (float64, error) {
	if err := validateSeries(times, signal); err != nil {
		return 0, err
	}
	a, _ := evalSingle(times, signal, f)
	return a, nil
}

// PhaseSingle returns the phase of signal at frequency f.
func PhaseSingle(times, signal []float64, f float64) (float64, error) {
	if err := validateSeries(times, signal); err != nil {
		return 0, err
	}
	_, ph := evalSingle(times, signal, f)
	return ph, nil
}

// Amplitude evaluates AmplitudeSingle at every frequency in fs.
func Amplitude(times, signal, fs []float64) ([]float64, error) {
	if err := validateSeries(times, signal); err != nil {
		return nil, err
	}
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i], _ = evalSingle(times, signal, f)
	}
	return out, nil
}

// Phase evaluates PhaseSingle at every frequency in fs.
func Phase(times, signal, fs []float64) ([]float64, error) {
	if err := validateSeries(times, signal); err != nil {
		return nil, err
	}
	out := make([]float64, len(fs))
	for i, f := range fs {
		_, out[i] = evalSingle(times, signal, f)
	}
	return out, nil
}

func evalSingle(times, signal []float64, f float64) (ampl, phase float64) {
	fourPiF := 4 * math.Pi * f
	twoPiF := 2 * math.Pi * f

	var tau float64
	if f != 0 {
		var cosTau, sinTau float64
		for _, t := range times {
			s, c := math.Sincos(fourPiF * t)
			sinTau += s
			cosTau += c
		}
		tau = math.Atan2(sinTau, cosTau) / fourPiF
	}

	var sCos, cos2, sSin, sin2 float64
	for i, t := range times {
		s, c := math.Sincos(twoPiF * (t - tau))
		sCos += signal[i] * c
		cos2 += c * c
		sSin += signal[i] * s
		sin2 += s * s
	}

	var aCos2, bSin2, aCos, bSin float64
	if cos2 > 0 {
		aCos2 = sCos * sCos / cos2
		aCos = sCos / math.Sqrt(cos2)
	}
	if sin2 > 0 {
		bSin2 = sSin * sSin / sin2
		bSin = sSin / math.Sqrt(sin2)
	}

	ampl = math.Sqrt(4/float64(len(times))) * math.Sqrt((aCos2+bSin2)/2)
	phase = core.WrapPhase(math.Pi/2 - math.Atan2(bSin, aCos) - twoPiF*tau)
	return ampl, phase
}
