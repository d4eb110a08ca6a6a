package signal

import (
	"fmt"
	"math/rand"
)

// Generator creates deterministic synthetic light curves.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured light-curve generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Sampling describes an observing cadence with periodic data gaps.
type Sampling struct {
	// Cadence is the time step between consecutive points.
	Cadence float64
	// Span is the total time base.
	Span float64
	// Start is the first time stamp.
	Start float64
	// GapEvery starts a gap every GapEvery time units. Zero disables gaps.
	GapEvery float64
	// GapLength is the duration of each gap.
	GapLength float64
}

// Times generates the sorted time stamps described by s. The returned
// segments split the series at every gap.
func (g *Generator) Times(s Sampling) ([]float64, Segments, error) {
	if s.Cadence <= 0 {
		return nil, nil, fmt.Errorf("sampling cadence must be > 0: %f", s.Cadence)
	}
	if s.Span <= s.Cadence {
		return nil, nil, fmt.Errorf("sampling span must exceed cadence: %f", s.Span)
	}
	if s.GapEvery < 0 || s.GapLength < 0 || (s.GapEvery > 0 && s.GapLength >= s.GapEvery) {
		return nil, nil, fmt.Errorf("invalid gap layout: every=%f length=%f", s.GapEvery, s.GapLength)
	}

	n := int(s.Span / s.Cadence)
	times := make([]float64, 0, n)
	var segs Segments
	segStart := 0
	inGap := false
	for i := 0; i < n; i++ {
		rel := float64(i) * s.Cadence
		if s.GapEvery > 0 {
			phase := rel - s.GapEvery*float64(int(rel/s.GapEvery))
			gap := phase >= s.GapEvery-s.GapLength
			if gap {
				inGap = true
				continue
			}
			if inGap {
				if len(times)-segStart >= 2 {
					segs = append(segs, Segment{Start: segStart, End: len(times)})
					segStart = len(times)
				}
				inGap = false
			}
		}
		times = append(times, s.Start+rel)
	}
	if len(times)-segStart >= 2 {
		segs = append(segs, Segment{Start: segStart, End: len(times)})
	} else if len(segs) > 0 {
		segs[len(segs)-1].End = len(times)
	}
	if len(segs) == 0 {
		return nil, nil, fmt.Errorf("sampling produced %d points", len(times))
	}
	return times, segs, nil
}

// GaussianNoise generates deterministic zero-mean Gaussian noise with the given
// standard deviation.
func (g *Generator) GaussianNoise(sigma float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if sigma < 0 {
		return nil, fmt.Errorf("noise sigma must be >= 0: %f", sigma)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out, nil
}

// LightCurve evaluates trend plus sinusoids at times and adds Gaussian noise
// of standard deviation sigma.
func (g *Generator) LightCurve(times []float64, trend Trend, segs Segments, set Set, sigma float64) ([]float64, error) {
	if err := segs.Validate(len(times)); err != nil {
		return nil, err
	}
	if trend.Len() != len(segs) || len(trend.Slope) != len(segs) {
		return nil, fmt.Errorf("%w: trend has %d entries for %d segments", ErrLengthMismatch, trend.Len(), len(segs))
	}
	noise, err := g.GaussianNoise(sigma, len(times))
	if err != nil {
		return nil, err
	}
	out := LinearCurve(times, trend, segs)
	AddSines(out, times, set)
	for i := range out {
		out[i] += noise[i]
	}
	return out, nil
}
