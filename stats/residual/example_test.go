package residual_test

import (
	"fmt"

	"github.com/cwbudde/algo-lightcurve/stats/residual"
)

func ExampleCalculate() {
	s := residual.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f changes=%d d=%.1f\n", s.RMS, s.SignChanges, s.DFactor)

	// Output:
	// rms=1.0 changes=3 d=1.0
}
