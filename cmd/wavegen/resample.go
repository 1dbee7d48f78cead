package main

import (
	"github.com/cwbudde/algo-waveform/dsp/core"
	"github.com/cwbudde/algo-waveform/dsp/resample"
	"github.com/cwbudde/algo-waveform/store"
)

func runResample(e *env, args []string) error {
	fs := e.newFlagSet("resample", "-in FILE -tf T -rate R -out FILE")
	in := fs.String("in", "", "sparse curve, one value per line")
	tf := fs.Float64("tf", 1, "curve duration in seconds")
	rate := fs.Float64("rate", 3000, "output sample rate in Hz")
	out := fs.String("out", "", "output CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "in", *in); err != nil {
		return err
	}
	if err := requireFlag(fs, "out", *out); err != nil {
		return err
	}

	sparse, err := store.LoadValues(*in)
	if err != nil {
		return err
	}
	dense, err := resample.Curve(sparse, *tf, *rate)
	if err != nil {
		return err
	}
	times := core.Grid{Duration: *tf, SampleRate: *rate}.Times()
	if err := store.SaveCurve(*out, times, dense); err != nil {
		return err
	}
	e.log.Info("curve resampled", "path", *out, "in", len(sparse), "out", len(dense))
	return nil
}
