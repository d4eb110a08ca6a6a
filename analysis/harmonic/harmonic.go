package harmonic

import (
	"math"
	"sort"
)

// TightTolerance matches frequencies that were locked to n/pOrb exactly.
const TightTolerance = 1e-9

// RayleighFactor scales 1/T into the frequency resolution used for grouping.
const RayleighFactor = 1.5

// Resolution returns the Rayleigh resolution 1.5/T for a time base T.
func Resolution(span float64) float64 {
	return RayleighFactor / span
}

// DefaultTolerance returns the matching tolerance used before harmonics are
// locked: half the Rayleigh resolution, but never more than half the
// harmonic spacing 1/pOrb.
func DefaultTolerance(span, pOrb float64) float64 {
	return math.Min(Resolution(span)/2, 1/(2*pOrb))
}

// Match pairs an index into a frequency slice with its harmonic number.
type Match struct {
	Index int
	N     int
}

// Matches is a harmonic classification in ascending index order.
type Matches []Match

// Indices returns the matched indices.
func (m Matches) Indices() []int {
	out := make([]int, len(m))
	for i, v := range m {
		out[i] = v.Index
	}
	return out
}

// Numbers returns the matched harmonic numbers.
func (m Matches) Numbers() []int {
	out := make([]int, len(m))
	for i, v := range m {
		out[i] = v.N
	}
	return out
}

// Contains reports whether index i is classified as a harmonic.
func (m Matches) Contains(i int) bool {
	for _, v := range m {
		if v.Index == i {
			return true
		}
	}
	return false
}

// Mask returns a boolean slice of length n marking matched indices.
func (m Matches) Mask(n int) []bool {
	out := make([]bool, n)
	for _, v := range m {
		if v.Index >= 0 && v.Index < n {
			out[v.Index] = true
		}
	}
	return out
}

// UniqueNumbers returns the distinct harmonic numbers in ascending order.
func (m Matches) UniqueNumbers() []int {
	seen := make(map[int]bool, len(m))
	var out []int
	for _, v := range m {
		if !seen[v.N] {
			seen[v.N] = true
			out = append(out, v.N)
		}
	}
	sort.Ints(out)
	return out
}

// nearest returns the harmonic number closest to f, never below 1.
func nearest(f, pOrb float64) int {
	n := int(math.Round(f * pOrb))
	if n < 1 {
		n = 1
	}
	return n
}

// WithinTolerance returns every frequency within tol of some n/pOrb.
// Several frequencies may share a harmonic number.
func WithinTolerance(freqs []float64, pOrb, tol float64) Matches {
	if pOrb <= 0 {
		return nil
	}
	var out Matches
	for i, f := range freqs {
		n := nearest(f, pOrb)
		if math.Abs(f-float64(n)/pOrb) < tol {
			out = append(out, Match{Index: i, N: n})
		}
	}
	return out
}

// FromPattern returns the frequencies within tol of some n/pOrb, keeping for
// each harmonic number only the closest frequency. Ties keep the lower index.
func FromPattern(freqs []float64, pOrb, tol float64) Matches {
	all := WithinTolerance(freqs, pOrb, tol)
	if len(all) == 0 {
		return nil
	}

	best := make(map[int]Match, len(all))
	for _, m := range all {
		prev, ok := best[m.N]
		if !ok {
			best[m.N] = m
			continue
		}
		target := float64(m.N) / pOrb
		if math.Abs(freqs[m.Index]-target) < math.Abs(freqs[prev.Index]-target) {
			best[m.N] = m
		}
	}

	out := make(Matches, 0, len(best))
	for _, m := range all {
		if best[m.N] == m {
			out = append(out, m)
		}
	}
	return out
}

// sortedOrder returns the indices of freqs in ascending frequency order.
func sortedOrder(freqs []float64) []int {
	order := make([]int, len(freqs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return freqs[order[a]] < freqs[order[b]] })
	return order
}

// WithinRayleigh returns the chain of indices around index i whose
// consecutive (frequency-sorted) spacing is below res. The chain is in
// ascending frequency order and always contains i.
func WithinRayleigh(i int, freqs []float64, res float64) []int {
	if i < 0 || i >= len(freqs) {
		return nil
	}
	order := sortedOrder(freqs)
	pos := 0
	for k, idx := range order {
		if idx == i {
			pos = k
			break
		}
	}

	lo := pos
	for lo > 0 && freqs[order[lo]]-freqs[order[lo-1]] < res {
		lo--
	}
	hi := pos
	for hi < len(order)-1 && freqs[order[hi+1]]-freqs[order[hi]] < res {
		hi++
	}

	out := make([]int, hi-lo+1)
	copy(out, order[lo:hi+1])
	return out
}

// ChainsWithinRayleigh returns all chains of at least two frequencies whose
// consecutive spacing is below res. Chains are ordered by frequency and each
// lists its indices in ascending frequency order.
func ChainsWithinRayleigh(freqs []float64, res float64) [][]int {
	order := sortedOrder(freqs)
	var chains [][]int
	start := 0
	for k := 1; k <= len(order); k++ {
		if k < len(order) && freqs[order[k]]-freqs[order[k-1]] < res {
			continue
		}
		if k-start >= 2 {
			chain := make([]int, k-start)
			copy(chain, order[start:k])
			chains = append(chains, chain)
		}
		start = k
	}
	return chains
}

// Series describes how well a base frequency explains a set of frequencies.
type Series struct {
	// Count is the number of harmonics found.
	Count int
	// Completeness is Count divided by the highest harmonic number found.
	Completeness float64
	// Distance is the sum of squared offsets of the harmonics from n*base.
	Distance float64
}

// SeriesLength scores each test base frequency against freqs. A frequency
// counts as harmonic n when it lies within res/2 of n*base and n*base does
// not exceed fNyquist.
func SeriesLength(testFreqs, freqs []float64, res, fNyquist float64) []Series {
	out := make([]Series, len(testFreqs))
	for k, base := range testFreqs {
		if base <= 0 {
			continue
		}
		matches := FromPattern(freqs, 1/base, res/2)
		maxN := 0
		var s Series
		for _, m := range matches {
			if float64(m.N)*base > fNyquist {
				continue
			}
			d := freqs[m.Index] - float64(m.N)*base
			s.Count++
			s.Distance += d * d
			if m.N > maxN {
				maxN = m.N
			}
		}
		if maxN > 0 {
			s.Completeness = float64(s.Count) / float64(maxN)
		}
		out[k] = s
	}
	return out
}
