package prewhiten

import "errors"

var (
	// ErrLengthMismatch is returned when times, flux and errors differ in length.
	ErrLengthMismatch = errors.New("prewhiten: input lengths differ")
	// ErrTooFewPoints is returned for series shorter than three points.
	ErrTooFewPoints = errors.New("prewhiten: at least three points are required")
	// ErrNotIncreasing is returned when time stamps are not strictly increasing.
	ErrNotIncreasing = errors.New("prewhiten: times must be strictly increasing")
	// ErrNonFinite is returned for NaN or infinite input values.
	ErrNonFinite = errors.New("prewhiten: non-finite input value")
	// ErrBadErrors is returned for zero or negative measurement errors.
	ErrBadErrors = errors.New("prewhiten: flux errors must be positive")
	// ErrBadPeriod is returned for a non-positive orbital period.
	ErrBadPeriod = errors.New("prewhiten: orbital period must be positive")
	// ErrNoHarmonics is returned when an operation needs harmonics of the
	// orbital period but the model contains none.
	ErrNoHarmonics = errors.New("prewhiten: no harmonics of the orbital period found")
	// ErrBadFrequency is returned for a model sinusoid with a non-positive or
	// non-finite frequency.
	ErrBadFrequency = errors.New("prewhiten: model frequencies must be positive and finite")
	// ErrResidualLength is returned when a residual does not match the series.
	ErrResidualLength = errors.New("prewhiten: residual length does not match series")
)
