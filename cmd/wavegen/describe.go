package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-waveform/stats/frequency"
	timestats "github.com/cwbudde/algo-waveform/stats/time"
	"github.com/cwbudde/algo-waveform/store"
)

func runDescribe(e *env, args []string) error {
	fs := e.newFlagSet("describe", "-in FILE [-rate R]")
	in := fs.String("in", "", "curve, one value per line")
	rate := fs.Float64("rate", 3000, "sample rate of the curve in Hz")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "in", *in); err != nil {
		return err
	}

	curve, err := store.LoadValues(*in)
	if err != nil {
		return err
	}
	summary := timestats.Summarize(curve)

	var spectral *frequency.Stats
	if mag, err := frequency.Spectrum(curve); err != nil {
		e.log.Warn("spectrum skipped", "err", err)
	} else {
		st := frequency.Calculate(mag, *rate)
		spectral = &st
	}
	return printDescription(e.stdout, summary, spectral)
}

func printDescription(w io.Writer, s timestats.Summary, spectral *frequency.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		name  string
		value string
	}{
		{"samples", fmt.Sprintf("%d", s.Length)},
		{"start", fmt.Sprintf("%.6f", s.Start)},
		{"end", fmt.Sprintf("%.6f", s.End)},
		{"min", fmt.Sprintf("%.6f @ %d", s.Min, s.MinPos)},
		{"max", fmt.Sprintf("%.6f @ %d", s.Max, s.MaxPos)},
		{"mean", fmt.Sprintf("%.6f", s.Mean)},
		{"rms", fmt.Sprintf("%.6f", s.RMS)},
		{"max step", fmt.Sprintf("%.6f", s.MaxStep)},
		{"non-increasing", fmt.Sprintf("%t", s.NonIncreasing)},
		{"in [0,1]", fmt.Sprintf("%t", s.InBand(0, 1))},
	}
	if spectral != nil {
		rows = append(rows, []struct {
			name  string
			value string
		}{
			{"bins", fmt.Sprintf("%d", spectral.BinCount)},
			{"peak bin", fmt.Sprintf("%d", spectral.PeakBin)},
			{"centroid [Hz]", fmt.Sprintf("%.4f", spectral.Centroid)},
			{"rolloff [Hz]", fmt.Sprintf("%.4f", spectral.Rolloff)},
			{"flatness", fmt.Sprintf("%.4f", spectral.Flatness)},
		}...)
	}

	if _, err := fmt.Fprintf(tw, "Statistic\tValue\n---------\t-----\n"); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r.name, r.value); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return tw.Flush()
}
