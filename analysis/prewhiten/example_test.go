package prewhiten_test

import (
	"fmt"

	"github.com/cwbudde/algo-lightcurve/analysis/prewhiten"
)

func ExampleNewSeries() {
	s, err := prewhiten.NewSeries([]float64{100, 100.5, 101, 102}, []float64{1, 2, 3, 4}, []float64{0.1}, nil)
	if err != nil {
		panic(err)
	}
	fmt.Println(s.T0(), s.Times(), s.Span())
	fmt.Printf("%.2f %.2f\n", s.Resolution(), s.Nyquist())
	// Output:
	// 100 [0 0.5 1 2] 2
	// 0.75 1.00
}
