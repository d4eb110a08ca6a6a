package periodogram

import "errors"

var (
	// ErrEmpty is returned when the series has fewer than two points.
	ErrEmpty = errors.New("periodogram: need at least 2 points")

	// ErrLengthMismatch is returned when times and signal differ in length.
	ErrLengthMismatch = errors.New("periodogram: times and signal must have the same length")

	// ErrDegenerateTimes is returned when the time base or the minimum time
	// step is not positive.
	ErrDegenerateTimes = errors.New("periodogram: time stamps must be strictly increasing")

	// ErrBadGrid is returned for a frequency grid with non-finite or negative parameters.
	ErrBadGrid = errors.New("periodogram: invalid frequency grid")
)
