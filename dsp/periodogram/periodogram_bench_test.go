package periodogram

import (
	"math"
	"strconv"
	"testing"
)

func benchSeries(n int) (times, y []float64) {
	times = make([]float64, n)
	y = make([]float64, n)
	for i := range times {
		times[i] = 0.02*float64(i) + 0.005*math.Sin(float64(i))
		y[i] = math.Sin(2*math.Pi*3.3*times[i]) + 0.1*math.Cos(float64(i*i))
	}
	return times, y
}

func BenchmarkScargle(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			times, y := benchSeries(n)
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				_, _, _ = Scargle(times, y, 0, 5, 0)
			}
		})
	}
}

func BenchmarkFast(b *testing.B) {
	for _, n := range []int{1024, 4096, 16384} {
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			times, y := benchSeries(n)
			b.ReportAllocs()
			b.ResetTimer()
			for range b.N {
				_, _, _ = Fast(times, y, 0, 0, 0)
			}
		})
	}
}

func BenchmarkEvaluatorAt(b *testing.B) {
	times, y := benchSeries(4096)
	e, _ := NewEvaluator(times, y)
	b.ResetTimer()
	for range b.N {
		_, _ = e.At(3.3)
	}
}
