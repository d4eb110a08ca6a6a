package signal

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when parallel parameter arrays differ in length.
	ErrLengthMismatch = errors.New("signal: parameter arrays must have the same length")

	// ErrBadSegment is returned for a segment outside [0, n) or with fewer than two points.
	ErrBadSegment = errors.New("signal: invalid segment")
)

func validateSegment(i int, s Segment, n int) error {
	if s.Start < 0 || s.End > n || s.Start >= s.End {
		return fmt.Errorf("%w %d: [%d, %d) not within [0, %d)", ErrBadSegment, i, s.Start, s.End, n)
	}
	if s.End-s.Start < 2 {
		return fmt.Errorf("%w %d: [%d, %d) has fewer than 2 points", ErrBadSegment, i, s.Start, s.End)
	}
	return nil
}
