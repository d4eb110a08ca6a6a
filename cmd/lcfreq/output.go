package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-lightcurve/analysis/harmonic"
	"github.com/cwbudde/algo-lightcurve/analysis/pipeline"
	"github.com/cwbudde/algo-lightcurve/analysis/prewhiten"
)

type sinusoidRow struct {
	Freq     float64 `json:"freq"`
	FreqErr  float64 `json:"freq_err"`
	Ampl     float64 `json:"ampl"`
	AmplErr  float64 `json:"ampl_err"`
	Phase    float64 `json:"phase"`
	PhaseErr float64 `json:"phase_err"`
	SNR      float64 `json:"snr"`
	Harmonic int     `json:"harmonic,omitempty"`
}

type stageRow struct {
	Number     int           `json:"stage"`
	Name       string        `json:"name"`
	NParam     int           `json:"n_param"`
	BIC        float64       `json:"bic"`
	NoiseLevel float64       `json:"noise_level"`
	POrb       float64       `json:"p_orb,omitempty"`
	POrbErr    float64       `json:"p_orb_err,omitempty"`
	Const      []float64     `json:"const"`
	Slope      []float64     `json:"slope"`
	Sinusoids  []sinusoidRow `json:"sinusoids"`
}

type reportDoc struct {
	T0          float64    `json:"t0"`
	POrb        float64    `json:"p_orb,omitempty"`
	SNThreshold float64    `json:"sn_threshold"`
	Stages      []stageRow `json:"stages"`
}

func writeReport(w io.Writer, format string, s *prewhiten.Series, report pipeline.Report) error {
	doc := buildDoc(s, report)
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "table":
		return writeTable(w, doc)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func buildDoc(s *prewhiten.Series, report pipeline.Report) reportDoc {
	doc := reportDoc{T0: s.T0(), POrb: report.POrb, SNThreshold: report.SNThreshold}
	for _, st := range report.Stages {
		row := stageRow{
			Number:     st.Number,
			Name:       st.Name,
			NParam:     st.State.NParam,
			BIC:        st.State.BIC,
			NoiseLevel: st.State.NoiseLevel,
			POrb:       st.POrb,
			POrbErr:    st.POrbErr,
			Const:      st.Result.Trend.Const,
			Slope:      st.Result.Trend.Slope,
		}

		var harmN map[int]int
		if st.POrb > 0 {
			harmN = make(map[int]int)
			for _, m := range harmonic.FromPattern(st.Result.Sinusoids.Freqs(), st.POrb, harmonic.TightTolerance) {
				harmN[m.Index] = m.N
			}
		}
		for i, sin := range st.Result.Sinusoids {
			sr := sinusoidRow{Freq: sin.Freq, Ampl: sin.Ampl, Phase: sin.Phase, Harmonic: harmN[i]}
			if i < len(st.Errors.Freq) {
				sr.FreqErr, sr.AmplErr, sr.PhaseErr = st.Errors.Freq[i], st.Errors.Ampl[i], st.Errors.Phase[i]
			}
			if i < len(st.SNR) {
				sr.SNR = st.SNR[i]
			}
			row.Sinusoids = append(row.Sinusoids, sr)
		}
		doc.Stages = append(doc.Stages, row)
	}
	return doc
}

func writeTable(w io.Writer, doc reportDoc) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Stage\tName\tSinusoids\tParams\tBIC\tNoise\tP_orb\tP_orb err\n")
	fmt.Fprintf(tw, "-----\t----\t---------\t------\t---\t-----\t-----\t---------\n")
	for _, st := range doc.Stages {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.3f\t%.3g\t%.6f\t%.2g\n",
			st.Number, st.Name, len(st.Sinusoids), st.NParam, st.BIC, st.NoiseLevel, st.POrb, st.POrbErr)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write stage table: %w", err)
	}
	if len(doc.Stages) == 0 {
		return nil
	}

	final := doc.Stages[len(doc.Stages)-1]
	fmt.Fprintf(w, "\nstage %d model (t0 = %.6f, S/N threshold %.2f)\n\n", final.Number, doc.T0, doc.SNThreshold)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tFreq\tFreq err\tAmpl\tAmpl err\tPhase\tPhase err\tS/N\tHarmonic\n")
	fmt.Fprintf(tw, "-\t----\t--------\t----\t--------\t-----\t---------\t---\t--------\n")
	for i, sr := range final.Sinusoids {
		h := "-"
		if sr.Harmonic > 0 {
			h = fmt.Sprintf("%d", sr.Harmonic)
		}
		fmt.Fprintf(tw, "%d\t%.6f\t%.2g\t%.6f\t%.2g\t%.4f\t%.2g\t%.2f\t%s\n",
			i+1, sr.Freq, sr.FreqErr, sr.Ampl, sr.AmplErr, sr.Phase, sr.PhaseErr, sr.SNR, h)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write model table: %w", err)
	}
	return nil
}
