// Command wavegen samples, synthesizes, resamples and describes
// monotone-decay curves.
//
// Usage:
//
//	wavegen [global flags] <command> [flags]
//
// Commands:
//
//	sample    draw feasible coefficient vectors from a settings file
//	synth     synthesize a curve from a settings file and a coefficient file
//	resample  resample a sparse curve onto a dense grid
//	describe  print time and frequency statistics of a curve
//
// Examples:
//
//	wavegen sample -settings run.txt -mode normal -out params.txt
//	wavegen synth -settings run.yaml -params params.txt -out curve.csv
//	wavegen resample -in sparse.txt -tf 10 -rate 3000 -out dense.csv
//	wavegen -log-level debug describe -in sparse.txt -rate 3000
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cwbudde/algo-waveform/internal/logger"
)

var errUsage = errors.New("usage")

type command struct {
	name    string
	summary string
	run     func(env *env, args []string) error
}

// env carries the streams and logger shared by all commands.
type env struct {
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

var commands = []command{
	{"sample", "draw feasible coefficient vectors from a settings file", runSample},
	{"synth", "synthesize a curve from a settings file and a coefficient file", runSynth},
	{"resample", "resample a sparse curve onto a dense grid", runResample},
	{"describe", "print time and frequency statistics of a curve", runDescribe},
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("wavegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	level := fs.String("log-level", "info", "log level: debug, info, warn, error")
	format := fs.String("log-format", "text", "log format: text or json")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: wavegen [flags] <command> [command flags]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-9s %s\n", c.name, c.summary)
		}
		fmt.Fprintf(stderr, "\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	log, err := logger.ForFormat(*format, *level, stderr)
	if err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}
	for _, c := range commands {
		if c.name == rest[0] {
			return c.run(&env{stdout: stdout, stderr: stderr, log: log.With("command", c.name)}, rest[1:])
		}
	}
	fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
	fs.Usage()
	return errUsage
}

// newFlagSet returns a subcommand flag set that reports errors instead of exiting.
func (e *env) newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: wavegen %s %s\n\nFlags:\n", name, usage)
		fs.PrintDefaults()
	}
	return fs
}

func requireFlag(fs *flag.FlagSet, name, value string) error {
	if value == "" {
		fs.Usage()
		return fmt.Errorf("%w: -%s is required", errUsage, name)
	}
	return nil
}
