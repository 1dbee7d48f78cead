package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownSetting indicates a key outside the settings schema.
	ErrUnknownSetting = errors.New("store: unknown setting")
	// ErrMalformedSetting indicates a line or value that cannot be parsed.
	ErrMalformedSetting = errors.New("store: malformed setting")
	// ErrInvalidSettings indicates a parsed but inconsistent settings set.
	ErrInvalidSettings = errors.New("store: invalid settings")
)

// Settings is the fixed schema of a sampling/synthesis run.
type Settings struct {
	StartPoint  float64   `yaml:"startpoint"`
	EndPoint    float64   `yaml:"endpoint"`
	TFinal      float64   `yaml:"tf"`
	SampleRate  float64   `yaml:"sample_rate"`
	MinBoundary []float64 `yaml:"min_boundary"`
	MaxBoundary []float64 `yaml:"max_boundary"`
	BaseParams  []float64 `yaml:"base_params"`
	StdDev      float64   `yaml:"std_dev"`
	Count       int       `yaml:"params_set_size"`
	Seed        uint64    `yaml:"seed"`
	MaxAttempts int       `yaml:"max_attempts"`
}

// DefaultSettings returns the canonical unit curve configuration.
func DefaultSettings() Settings {
	return Settings{
		StartPoint: 1,
		EndPoint:   0,
		TFinal:     1,
		SampleRate: 3000,
		StdDev:     0.1,
		Count:      1,
	}
}

// Validate checks the fields every run needs.
func (s Settings) Validate() error {
	switch {
	case s.StartPoint == 0 || math.IsNaN(s.StartPoint) || math.IsInf(s.StartPoint, 0):
		return fmt.Errorf("%w: startpoint must be finite and non-zero", ErrInvalidSettings)
	case !(s.TFinal > 0) || math.IsInf(s.TFinal, 0):
		return fmt.Errorf("%w: tf must be > 0", ErrInvalidSettings)
	case !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0):
		return fmt.Errorf("%w: sample_rate must be > 0", ErrInvalidSettings)
	case len(s.MinBoundary) != len(s.MaxBoundary):
		return fmt.Errorf("%w: min_boundary has %d values, max_boundary has %d",
			ErrInvalidSettings, len(s.MinBoundary), len(s.MaxBoundary))
	case len(s.BaseParams) > 0 && len(s.BaseParams) != len(s.MinBoundary):
		return fmt.Errorf("%w: base_params has %d values, boundaries have %d",
			ErrInvalidSettings, len(s.BaseParams), len(s.MinBoundary))
	case s.Count < 0:
		return fmt.Errorf("%w: params_set_size must be >= 0", ErrInvalidSettings)
	case s.MaxAttempts < 0:
		return fmt.Errorf("%w: max_attempts must be >= 0", ErrInvalidSettings)
	}
	return nil
}

// LoadSettings reads a settings file. Files ending in .yaml or .yml are
// decoded as YAML, anything else as key=value lines.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("store: read settings %s: %w", path, err)
	}
	var s Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		s, err = ParseSettingsYAML(data)
	default:
		s, err = ParseSettings(data)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("store: parse settings %s: %w", path, err)
	}
	return s, nil
}

// ParseSettingsYAML decodes YAML settings on top of DefaultSettings.
// Unknown keys are rejected.
func ParseSettingsYAML(data []byte) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		if strings.Contains(err.Error(), "not found in type") {
			return Settings{}, fmt.Errorf("%w: %w", ErrUnknownSetting, err)
		}
		return Settings{}, fmt.Errorf("%w: %w", ErrMalformedSetting, err)
	}
	return s, nil
}

// ParseSettings parses key=value settings on top of DefaultSettings.
//
// A '#' starts a comment. Several pairs may share a line when separated by
// commas. Values are numbers (including inf and nan) or lists written as
// [a, b], (a, b) or array([a, b]).
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	sc := bufio.NewScanner(bytes.NewReader(data))
	n := 0
	for sc.Scan() {
		n++
		line, _, _ := strings.Cut(sc.Text(), "#")
		for _, pair := range splitTopLevel(line) {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return Settings{}, fmt.Errorf("%w: line %d: expected key=value, got %q", ErrMalformedSetting, n, pair)
			}
			key = strings.TrimSpace(key)
			if err := s.set(key, strings.TrimSpace(value)); err != nil {
				return Settings{}, fmt.Errorf("line %d: %w", n, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrMalformedSetting, err)
	}
	return s, nil
}

// SaveSettings writes s as key=value lines readable by ParseSettings.
func SaveSettings(path string, s Settings) error {
	return writeFile(path, func(w *bufio.Writer) error {
		lines := []struct {
			key   string
			value string
		}{
			{"startpoint", formatFloat(s.StartPoint)},
			{"endpoint", formatFloat(s.EndPoint)},
			{"tf", formatFloat(s.TFinal)},
			{"sample_rate", formatFloat(s.SampleRate)},
			{"min_boundary", formatList(s.MinBoundary)},
			{"max_boundary", formatList(s.MaxBoundary)},
			{"base_params", formatList(s.BaseParams)},
			{"std_dev", formatFloat(s.StdDev)},
			{"params_set_size", strconv.Itoa(s.Count)},
			{"seed", strconv.FormatUint(s.Seed, 10)},
			{"max_attempts", strconv.Itoa(s.MaxAttempts)},
		}
		for _, l := range lines {
			if _, err := fmt.Fprintf(w, "%s=%s\n", l.key, l.value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Settings) set(key, raw string) error {
	var err error
	switch key {
	case "startpoint":
		s.StartPoint, err = parseScalar(raw)
	case "endpoint":
		s.EndPoint, err = parseScalar(raw)
	case "tf":
		s.TFinal, err = parseScalar(raw)
	case "sample_rate":
		s.SampleRate, err = parseScalar(raw)
	case "std_dev":
		s.StdDev, err = parseScalar(raw)
	case "min_boundary":
		s.MinBoundary, err = parseList(raw)
	case "max_boundary":
		s.MaxBoundary, err = parseList(raw)
	case "base_params":
		s.BaseParams, err = parseList(raw)
	case "params_set_size":
		s.Count, err = cast.ToIntE(raw)
	case "max_attempts":
		s.MaxAttempts, err = cast.ToIntE(raw)
	case "seed":
		s.Seed, err = cast.ToUint64E(raw)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSetting, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedSetting, key, err)
	}
	return nil
}

func parseScalar(raw string) (float64, error) {
	if isList(raw) {
		return 0, fmt.Errorf("expected a number, got list %s", raw)
	}
	return cast.ToFloat64E(raw)
}

func parseList(raw string) ([]float64, error) {
	if !isList(raw) {
		return nil, fmt.Errorf("expected a list, got %q", raw)
	}
	inner := unwrapList(raw)
	if strings.TrimSpace(inner) == "" {
		return nil, nil
	}
	var out []float64
	for _, field := range strings.Split(inner, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := cast.ToFloat64E(field)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func isList(raw string) bool {
	inner := strings.TrimPrefix(raw, "array(")
	if inner != raw && !strings.HasSuffix(raw, ")") {
		return false
	}
	if inner != raw {
		inner = strings.TrimSuffix(inner, ")")
	}
	return (strings.HasPrefix(inner, "[") && strings.HasSuffix(inner, "]")) ||
		(strings.HasPrefix(inner, "(") && strings.HasSuffix(inner, ")"))
}

func unwrapList(raw string) string {
	if strings.HasPrefix(raw, "array(") {
		raw = strings.TrimSuffix(strings.TrimPrefix(raw, "array("), ")")
	}
	return raw[1 : len(raw)-1]
}

// splitTopLevel splits line at commas outside brackets and parentheses.
func splitTopLevel(line string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range line {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, line[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, line[start:])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatList(v []float64) string {
	fields := make([]string, len(v))
	for i, x := range v {
		fields[i] = formatFloat(x)
	}
	return "[" + strings.Join(fields, ", ") + "]"
}
