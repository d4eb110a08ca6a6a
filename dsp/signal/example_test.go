package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

func ExampleSumSines() {
	set := signal.Set{{Freq: 0.25, Ampl: 1, Phase: 0}}
	x := signal.SumSines([]float64{0, 1, 2, 3}, set)

	fmt.Printf("%.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3])

	// Output:
	// 0 1 0 -1
}

func ExampleSet_Without() {
	s := signal.Set{{Freq: 1}, {Freq: 2}, {Freq: 3}}
	fmt.Println(s.Without(1).Freqs())

	// Output:
	// [1 3]
}
