package signal

import (
	"math"
	"testing"
)

func TestTimesWithoutGaps(t *testing.T) {
	g := NewGenerator()
	times, segs, err := g.Times(Sampling{Cadence: 0.5, Span: 10})
	if err != nil {
		t.Fatalf("Times() error = %v", err)
	}
	if len(times) != 20 {
		t.Fatalf("len = %d, want 20", len(times))
	}
	if len(segs) != 1 || segs[0] != (Segment{Start: 0, End: 20}) {
		t.Fatalf("segments = %v, want single [0,20)", segs)
	}
}

func TestTimesWithGaps(t *testing.T) {
	g := NewGenerator()
	times, segs, err := g.Times(Sampling{Cadence: 0.1, Span: 30, GapEvery: 10, GapLength: 1})
	if err != nil {
		t.Fatalf("Times() error = %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("segments = %d, want 3", len(segs))
	}
	if err := segs.Validate(len(times)); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			t.Fatalf("times not increasing at %d", i)
		}
	}
	for k := 1; k < len(segs); k++ {
		gap := times[segs[k].Start] - times[segs[k-1].End-1]
		if gap < 1 {
			t.Fatalf("gap %d = %f, want >= 1", k, gap)
		}
	}
}

func TestTimesRejectsBadSampling(t *testing.T) {
	g := NewGenerator()
	tests := []Sampling{
		{Cadence: 0, Span: 10},
		{Cadence: 1, Span: 0.5},
		{Cadence: 0.1, Span: 10, GapEvery: 1, GapLength: 2},
	}
	for _, s := range tests {
		if _, _, err := g.Times(s); err == nil {
			t.Fatalf("Times(%+v) expected error", s)
		}
	}
}

func TestGaussianNoiseDeterministic(t *testing.T) {
	g1 := NewGenerator(WithSeed(42))
	g2 := NewGenerator(WithSeed(42))

	n1, err := g1.GaussianNoise(1, 16)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}
	n2, err := g2.GaussianNoise(1, 16)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.GaussianNoise(1, 8)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.GaussianNoise(1, 8)
	if err != nil {
		t.Fatalf("GaussianNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different noise for different seeds")
	}
}

func TestGaussianNoiseValidation(t *testing.T) {
	g := NewGenerator()
	if _, err := g.GaussianNoise(1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
	if _, err := g.GaussianNoise(-1, 4); err == nil {
		t.Fatal("expected error for negative sigma")
	}
}

func TestLightCurveNoiseless(t *testing.T) {
	g := NewGenerator()
	times := []float64{0, 0.25, 0.5, 0.75, 1}
	segs := Whole(len(times))
	trend := Trend{Const: []float64{2}, Slope: []float64{0.5}}
	set := Set{{Freq: 1, Ampl: 1, Phase: 0}}

	y, err := g.LightCurve(times, trend, segs, set, 0)
	if err != nil {
		t.Fatalf("LightCurve() error = %v", err)
	}
	for i, tm := range times {
		want := 2 + 0.5*tm + math.Sin(2*math.Pi*tm)
		if math.Abs(y[i]-want) > 1e-12 {
			t.Fatalf("y[%d] = %v, want %v", i, y[i], want)
		}
	}
}

func TestLightCurveTrendMismatch(t *testing.T) {
	g := NewGenerator()
	times := []float64{0, 1, 2, 3}
	segs := Segments{{0, 2}, {2, 4}}
	if _, err := g.LightCurve(times, NewTrend(1), segs, nil, 0); err == nil {
		t.Fatal("expected error for trend/segment mismatch")
	}
}
