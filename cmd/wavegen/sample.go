package main

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-waveform/dsp/sampler"
	"github.com/cwbudde/algo-waveform/store"
)

func runSample(e *env, args []string) error {
	fs := e.newFlagSet("sample", "-settings FILE [-mode uniform|normal] [-out FILE]")
	settingsPath := fs.String("settings", "", "settings file (key=value or .yaml)")
	mode := fs.String("mode", "uniform", "sampling strategy: uniform or normal")
	out := fs.String("out", "", "output file (default params_<stamp>.txt)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag(fs, "settings", *settingsPath); err != nil {
		return err
	}

	s, err := store.LoadSettings(*settingsPath)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}

	sets, err := drawSets(e, s, *mode)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("params_%s.txt", store.Stamp(time.Now()))
	}
	if err := store.SaveParamSets(path, sets); err != nil {
		return err
	}
	e.log.Info("parameter sets written", "path", path, "count", len(sets), "mode", *mode)
	return nil
}

func drawSets(e *env, s store.Settings, mode string) ([][]float64, error) {
	opts := []sampler.Option{
		sampler.WithMaxAttempts(s.MaxAttempts),
		sampler.WithLogger(e.log),
	}
	if s.Seed != 0 {
		opts = append(opts, sampler.WithSeed(s.Seed))
	}

	switch mode {
	case "uniform":
		return sampler.Uniform(s.MinBoundary, s.MaxBoundary, s.Count, opts...)
	case "normal":
		return sampler.Normal(s.MinBoundary, s.MaxBoundary, s.BaseParams, s.StdDev, s.Count, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errUsage, mode)
	}
}
