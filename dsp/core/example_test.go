package core_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lightcurve/dsp/core"
)

func ExampleWrapPhase() {
	fmt.Printf("%.4f %.4f\n", core.WrapPhase(3*math.Pi/2), core.WrapPhase(-math.Pi))

	// Output:
	// -1.5708 3.1416
}

func ExampleEnsureLen() {
	buf := make([]float64, 2, 4)
	buf[0], buf[1] = 1, 2
	buf = core.EnsureLen(buf, 4)
	copy(buf[2:], []float64{3, 4})
	fmt.Println(buf)

	core.Zero(buf[:2])
	fmt.Println(buf)

	// Output:
	// [1 2 3 4]
	// [0 0 3 4]
}
