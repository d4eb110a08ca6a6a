package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-lightcurve/dsp/signal"
)

type lightCurve struct {
	times []float64
	flux  []float64
	errs  []float64
	segs  signal.Segments
}

func readLightCurveFile(path string, gap float64) (lightCurve, error) {
	f, err := os.Open(path)
	if err != nil {
		return lightCurve{}, fmt.Errorf("open light curve: %w", err)
	}
	defer f.Close()
	lc, err := readLightCurve(f, gap)
	if err != nil {
		return lightCurve{}, fmt.Errorf("%s: %w", path, err)
	}
	return lc, nil
}

// readLightCurve parses two or three numeric columns per line. Either every
// line carries an error column or none does.
func readLightCurve(r io.Reader, gap float64) (lightCurve, error) {
	var lc lightCurve
	sc := bufio.NewScanner(r)
	line, cols := 0, 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 || len(fields) > 3 {
			return lightCurve{}, fmt.Errorf("line %d: want 2 or 3 columns, got %d", line, len(fields))
		}
		if cols == 0 {
			cols = len(fields)
		} else if cols != len(fields) {
			return lightCurve{}, fmt.Errorf("line %d: want %d columns, got %d", line, cols, len(fields))
		}

		vals := make([]float64, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return lightCurve{}, fmt.Errorf("line %d: %w", line, err)
			}
			vals[i] = v
		}
		lc.times = append(lc.times, vals[0])
		lc.flux = append(lc.flux, vals[1])
		if cols == 3 {
			lc.errs = append(lc.errs, vals[2])
		}
	}
	if err := sc.Err(); err != nil {
		return lightCurve{}, err
	}
	lc.segs = splitSegments(lc.times, gap)
	return lc, nil
}

// splitSegments starts a new segment wherever consecutive times are more
// than gap apart. A non-positive gap gives one segment.
func splitSegments(times []float64, gap float64) signal.Segments {
	if gap <= 0 || len(times) == 0 {
		return signal.Whole(len(times))
	}
	var segs signal.Segments
	start := 0
	for i := 1; i < len(times); i++ {
		if times[i]-times[i-1] > gap {
			segs = append(segs, signal.Segment{Start: start, End: i})
			start = i
		}
	}
	return append(segs, signal.Segment{Start: start, End: len(times)})
}
