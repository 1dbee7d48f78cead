package main

import (
	"github.com/cwbudde/algo-waveform/dsp/core"
	"github.com/cwbudde/algo-waveform/dsp/feasibility"
	"github.com/cwbudde/algo-waveform/dsp/waveform"
	"github.com/cwbudde/algo-waveform/store"
)

func runSynth(e *env, args []string) error {
	fs := e.newFlagSet("synth", "-settings FILE -params FILE -out FILE")
	settingsPath := fs.String("settings", "", "settings file (key=value or .yaml)")
	paramsPath := fs.String("params", "", "coefficient file, one value per line")
	out := fs.String("out", "", "output CSV file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, f := range []struct{ name, value string }{
		{"settings", *settingsPath}, {"params", *paramsPath}, {"out", *out},
	} {
		if err := requireFlag(fs, f.name, f.value); err != nil {
			return err
		}
	}

	s, err := store.LoadSettings(*settingsPath)
	if err != nil {
		return err
	}
	params, err := store.LoadValues(*paramsPath)
	if err != nil {
		return err
	}

	verdict, err := feasibility.Default().Evaluate(params)
	if err != nil {
		return err
	}
	if verdict != feasibility.Feasible {
		e.log.Warn("coefficients fail the feasibility test", "verdict", verdict.String())
	}

	grid := core.Grid{Duration: s.TFinal, SampleRate: s.SampleRate}
	if err := grid.Validate(); err != nil {
		return err
	}
	wave, err := waveform.Synthesize(s.StartPoint, s.EndPoint, grid.Duration, grid.SampleRate, params)
	if err != nil {
		return err
	}
	if err := store.SaveCurve(*out, grid.Times(), wave); err != nil {
		return err
	}
	e.log.Info("curve written", "path", *out, "samples", len(wave))
	return nil
}
