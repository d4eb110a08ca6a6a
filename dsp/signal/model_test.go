package signal

import (
	"errors"
	"math"
	"testing"
)

func TestNewSet(t *testing.T) {
	s, err := NewSet([]float64{1, 2}, []float64{0.5, 0.25}, []float64{0, 1})
	if err != nil {
		t.Fatalf("NewSet() error = %v", err)
	}
	if len(s) != 2 || s[1] != (Sinusoid{Freq: 2, Ampl: 0.25, Phase: 1}) {
		t.Fatalf("unexpected set %v", s)
	}
	if _, err := NewSet([]float64{1}, nil, []float64{0}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestSetWithoutKeepsOrder(t *testing.T) {
	s := Set{{Freq: 1}, {Freq: 2}, {Freq: 3}, {Freq: 4}}
	out := s.Without(2, 0, 2, 9)
	want := []float64{2, 4}
	got := out.Freqs()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("freq[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if len(s) != 4 || s[0].Freq != 1 {
		t.Fatal("Without modified its receiver")
	}
}

func TestSetWithDoesNotAlias(t *testing.T) {
	base := make(Set, 1, 4)
	base[0] = Sinusoid{Freq: 1}
	a := base.With(Sinusoid{Freq: 2})
	b := base.With(Sinusoid{Freq: 3})
	if a[1].Freq != 2 || b[1].Freq != 3 {
		t.Fatalf("append aliasing: a=%v b=%v", a, b)
	}
}

func TestSegmentsValidate(t *testing.T) {
	tests := []struct {
		name string
		segs Segments
		ok   bool
	}{
		{"whole", Whole(10), true},
		{"split", Segments{{0, 5}, {5, 10}}, true},
		{"empty table", Segments{}, false},
		{"past end", Segments{{0, 11}}, false},
		{"negative", Segments{{-1, 4}}, false},
		{"single point", Segments{{0, 9}, {9, 10}}, false},
		{"reversed", Segments{{5, 3}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.segs.Validate(10)
			if tc.ok && err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrBadSegment) {
				t.Fatalf("expected ErrBadSegment, got %v", err)
			}
		})
	}
}

func TestTrendClone(t *testing.T) {
	tr := Trend{Const: []float64{1}, Slope: []float64{2}}
	c := tr.Clone()
	c.Const[0] = 5
	if tr.Const[0] != 1 {
		t.Fatal("Clone shares memory")
	}
}

func TestSumSinesMatchesClosedForm(t *testing.T) {
	times := []float64{0, 0.1, 0.37, 1.5}
	set := Set{{Freq: 0.7, Ampl: 2, Phase: 0.3}, {Freq: 3.1, Ampl: 0.5, Phase: -1}}
	got := SumSines(times, set)
	for i, tm := range times {
		want := 2*math.Sin(2*math.Pi*0.7*tm+0.3) + 0.5*math.Sin(2*math.Pi*3.1*tm-1)
		if math.Abs(got[i]-want) > 1e-12 {
			t.Fatalf("SumSines[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestSumSinesDerivFirstAndSecond(t *testing.T) {
	times := []float64{0, 0.2, 0.9}
	s := Sinusoid{Freq: 1.3, Ampl: 0.8, Phase: 0.4}
	w := 2 * math.Pi * s.Freq
	d1 := SumSinesDeriv(times, Set{s}, 1)
	d2 := SumSinesDeriv(times, Set{s}, 2)
	for i, tm := range times {
		want1 := s.Ampl * w * math.Cos(w*tm+s.Phase)
		want2 := -s.Ampl * w * w * math.Sin(w*tm+s.Phase)
		if math.Abs(d1[i]-want1) > 1e-9 {
			t.Fatalf("d1[%d] = %v, want %v", i, d1[i], want1)
		}
		if math.Abs(d2[i]-want2) > 1e-9 {
			t.Fatalf("d2[%d] = %v, want %v", i, d2[i], want2)
		}
	}
}

func TestLinearCurvePerSegment(t *testing.T) {
	times := []float64{0, 1, 2, 3}
	segs := Segments{{0, 2}, {2, 4}}
	tr := Trend{Const: []float64{1, -1}, Slope: []float64{2, 0.5}}
	got := LinearCurve(times, tr, segs)
	want := []float64{1, 3, 0, 0.5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("curve[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestResidualTo(t *testing.T) {
	times := []float64{0, 0.3, 0.6}
	segs := Whole(3)
	tr := Trend{Const: []float64{1}, Slope: []float64{0}}
	set := Set{{Freq: 0.5, Ampl: 1}}
	y := LinearCurve(times, tr, segs)
	AddSines(y, times, set)
	r := ResidualTo(nil, y, times, tr, segs, set)
	for i, v := range r {
		if math.Abs(v) > 1e-12 {
			t.Fatalf("resid[%d] = %v, want 0", i, v)
		}
	}
}
