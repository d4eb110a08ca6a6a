// Package periodogram computes Lomb-Scargle amplitude spectra of unevenly
// sampled time series.
//
// Amplitudes use the convention sqrt(4/N)*sqrt(P), where P is the classical
// Scargle power, so that a pure sinusoid of amplitude A produces a peak of
// height close to A. Phases follow the model a*sin(2*pi*f*t + phase).
//
// The exact grid periodogram ([Scargle]) uses the Cuypers recurrence and
// costs O(N*nf). [Fast] approximates the same spectrum with Press-Rybicki
// extirpolation and an FFT. Single frequencies are evaluated with an explicit
// time shift tau by [Evaluator], [AmplitudeSingle] and [PhaseSingle].
//
// Inputs are never modified and no mean is subtracted; callers pass residuals.
package periodogram
