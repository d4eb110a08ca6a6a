// Package trend fits piecewise-linear baselines to segmented time series.
package trend

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

// ErrDegenerateSegment is returned when a segment has fewer than two points
// or no spread in time.
var ErrDegenerateSegment = errors.New("trend: degenerate segment")

// Fit returns the ordinary least-squares intercept and slope of y against
// times for every segment. Points outside all segments are ignored.
func Fit(times, y []float64, segs signal.Segments) (signal.Trend, error) {
	if len(times) != len(y) {
		return signal.Trend{}, fmt.Errorf("trend: times and y differ in length: %d != %d", len(times), len(y))
	}
	if err := segs.Validate(len(times)); err != nil {
		return signal.Trend{}, err
	}

	tr := signal.NewTrend(len(segs))
	for k, s := range segs {
		c, sl, err := FitSegment(times[s.Start:s.End], y[s.Start:s.End])
		if err != nil {
			return signal.Trend{}, fmt.Errorf("segment %d [%d, %d): %w", k, s.Start, s.End, err)
		}
		tr.Const[k] = c
		tr.Slope[k] = sl
	}
	return tr, nil
}

// FitSegment returns the least-squares line y = c + slope*t.
func FitSegment(times, y []float64) (c, slope float64, err error) {
	if len(times) < 2 || len(times) != len(y) {
		return 0, 0, ErrDegenerateSegment
	}
	if stat.Variance(times, nil) == 0 {
		return 0, 0, ErrDegenerateSegment
	}
	c, slope = stat.LinearRegression(times, y, nil, false)
	return c, slope, nil
}
