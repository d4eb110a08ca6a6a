package signal

import "fmt"

// Sinusoid is one term a*sin(2*pi*f*t + phase) of a harmonic model.
type Sinusoid struct {
	Freq  float64
	Ampl  float64
	Phase float64
}

// Set is an insertion-ordered collection of sinusoids. The order carries no
// meaning for the model value; the last element is the most recently added.
type Set []Sinusoid

// NewSet zips parallel frequency, amplitude and phase arrays into a Set.
func NewSet(freqs, ampls, phases []float64) (Set, error) {
	if len(freqs) != len(ampls) || len(freqs) != len(phases) {
		return nil, fmt.Errorf("%w: %d, %d, %d", ErrLengthMismatch, len(freqs), len(ampls), len(phases))
	}
	out := make(Set, len(freqs))
	for i := range freqs {
		out[i] = Sinusoid{Freq: freqs[i], Ampl: ampls[i], Phase: phases[i]}
	}
	return out, nil
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	copy(out, s)
	return out
}

// Without returns a copy of s with the elements at the given indices removed.
// Indices refer to positions in s; duplicates and out-of-range values are ignored.
// The relative order of the remaining elements is preserved.
func (s Set) Without(idx ...int) Set {
	if len(idx) == 0 {
		return s.Clone()
	}
	drop := make([]bool, len(s))
	for _, i := range idx {
		if i >= 0 && i < len(s) {
			drop[i] = true
		}
	}
	out := make(Set, 0, len(s))
	for i, v := range s {
		if !drop[i] {
			out = append(out, v)
		}
	}
	return out
}

// With returns a copy of s with extra appended at the end.
func (s Set) With(extra ...Sinusoid) Set {
	out := make(Set, len(s), len(s)+len(extra))
	copy(out, s)
	return append(out, extra...)
}

// Freqs returns the frequencies of s.
func (s Set) Freqs() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Freq
	}
	return out
}

// Ampls returns the amplitudes of s.
func (s Set) Ampls() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Ampl
	}
	return out
}

// Phases returns the phases of s.
func (s Set) Phases() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Phase
	}
	return out
}

// Segment is a half-open index range [Start, End) of a time series that gets
// its own linear trend.
type Segment struct {
	Start int
	End   int
}

// Len returns the number of points in the segment.
func (s Segment) Len() int { return s.End - s.Start }

// Segments is an ordered table of segments.
type Segments []Segment

// Whole returns a single segment covering n points.
func Whole(n int) Segments {
	return Segments{{Start: 0, End: n}}
}

// Validate checks every segment against a series of n points.
func (s Segments) Validate(n int) error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty segment table", ErrBadSegment)
	}
	for i, seg := range s {
		if err := validateSegment(i, seg, n); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent copy of s.
func (s Segments) Clone() Segments {
	out := make(Segments, len(s))
	copy(out, s)
	return out
}

// Trend holds one y-intercept and slope per segment.
type Trend struct {
	Const []float64
	Slope []float64
}

// NewTrend returns a zero trend for n segments.
func NewTrend(n int) Trend {
	return Trend{Const: make([]float64, n), Slope: make([]float64, n)}
}

// Len returns the number of segments the trend describes.
func (t Trend) Len() int { return len(t.Const) }

// Clone returns an independent copy of t.
func (t Trend) Clone() Trend {
	c := Trend{Const: make([]float64, len(t.Const)), Slope: make([]float64, len(t.Slope))}
	copy(c.Const, t.Const)
	copy(c.Slope, t.Slope)
	return c
}
