package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-lightcurve/dsp/signal"
	"github.com/cwbudde/algo-lightcurve/internal/testutil"
)

func TestReadLightCurve(t *testing.T) {
	in := "# time flux err\n0 1.0 0.1\n\n1 1.1 0.1\n2 0.9 0.2\n"
	lc, err := readLightCurve(strings.NewReader(in), 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, lc.times)
	assert.Equal(t, []float64{1.0, 1.1, 0.9}, lc.flux)
	assert.Equal(t, []float64{0.1, 0.1, 0.2}, lc.errs)
	assert.Equal(t, signal.Whole(3), lc.segs)

	lc, err = readLightCurve(strings.NewReader("0 1\n1 2\n"), 0)
	require.NoError(t, err)
	assert.Nil(t, lc.errs)
}

func TestReadLightCurveErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"one column", "0\n", "want 2 or 3 columns"},
		{"mixed columns", "0 1 0.1\n1 2\n", "line 2: want 3 columns"},
		{"not a number", "0 abc\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readLightCurve(strings.NewReader(tt.in), 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSplitSegments(t *testing.T) {
	times := []float64{0, 1, 2, 10, 11, 12, 30, 31}
	got := splitSegments(times, 5)
	assert.Equal(t, signal.Segments{{Start: 0, End: 3}, {Start: 3, End: 6}, {Start: 6, End: 8}}, got)
	assert.Equal(t, signal.Whole(8), splitSegments(times, 0))
}

func writeCurve(t *testing.T) string {
	t.Helper()
	truth := testutil.HarmonicSeries(3.3, 0.05, 6)
	lc := testutil.SyntheticLightCurve(truth, 800, 0.03, 1, 1e-3, 21)

	var b strings.Builder
	for i := range lc.Times {
		fmt.Fprintf(&b, "%.6f %.8f %.6f\n", lc.Times[i]+1000, lc.Flux[i], lc.FluxErr[i])
	}
	path := filepath.Join(t.TempDir(), "curve.dat")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunJSON(t *testing.T) {
	path := writeCurve(t)
	out, err := execute(t, "--period", "3.3", "--format", "json", "--log-level", "disabled", path)
	require.NoError(t, err)

	var doc reportDoc
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1000.0, doc.T0)
	assert.Equal(t, 3.3, doc.POrb)
	require.Len(t, doc.Stages, 5)

	var harmonics int
	for _, sr := range doc.Stages[4].Sinusoids {
		if sr.Harmonic > 0 {
			harmonics++
		}
	}
	assert.GreaterOrEqual(t, harmonics, 6)
}

func TestRunTable(t *testing.T) {
	path := writeCurve(t)
	out, err := execute(t, "--period", "3.3", "--log-level", "disabled", path)
	require.NoError(t, err)
	assert.Contains(t, out, "lock-harmonics")
	assert.Contains(t, out, "stage 7 model")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)

	_, err = execute(t, "--log-level", "disabled", filepath.Join(t.TempDir(), "missing.dat"))
	assert.ErrorContains(t, err, "open light curve")

	path := writeCurve(t)
	_, err = execute(t, "--log-level", "loud", path)
	assert.ErrorContains(t, err, "validate config")
}
