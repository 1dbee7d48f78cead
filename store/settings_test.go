package store

import (
	"bufio"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const legacySettings = `# sampling run
startpoint=1
endpoint=0   # normalized
tf=10, sample_rate=5000
min_boundary=array([-3., -3., -3., -4., -4., -4., -4.])
max_boundary=[3, 3, 3, 4, 4, 4, 4]
base_params=(-0.38430342, 2.47892757, -1.67234304, -5., 2.375123, 1.01905152, -0.84496258)

std_dev=0.05
params_set_size=20
seed=42
`

func TestParseSettingsLegacy(t *testing.T) {
	s, err := ParseSettings([]byte(legacySettings))
	require.NoError(t, err)

	require.Equal(t, 1.0, s.StartPoint)
	require.Equal(t, 0.0, s.EndPoint)
	require.Equal(t, 10.0, s.TFinal)
	require.Equal(t, 5000.0, s.SampleRate)
	require.Equal(t, []float64{-3, -3, -3, -4, -4, -4, -4}, s.MinBoundary)
	require.Equal(t, []float64{3, 3, 3, 4, 4, 4, 4}, s.MaxBoundary)
	require.Len(t, s.BaseParams, 7)
	require.InDelta(t, -0.84496258, s.BaseParams[6], 1e-12)
	require.Equal(t, 0.05, s.StdDev)
	require.Equal(t, 20, s.Count)
	require.Equal(t, uint64(42), s.Seed)
	require.Equal(t, 0, s.MaxAttempts)
	require.NoError(t, s.Validate())
}

func TestParseSettingsDefaults(t *testing.T) {
	s, err := ParseSettings([]byte("\n# nothing here\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), s)
}

func TestParseSettingsSpecialValues(t *testing.T) {
	s, err := ParseSettings([]byte("tf=inf\nendpoint=nan\nmin_boundary=[]\n"))
	require.NoError(t, err)
	require.True(t, math.IsInf(s.TFinal, 1))
	require.True(t, math.IsNaN(s.EndPoint))
	require.Nil(t, s.MinBoundary)
}

func TestParseSettingsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "unknown key", input: "colour=1\n", want: ErrUnknownSetting},
		{name: "no equals", input: "tf\n", want: ErrMalformedSetting},
		{name: "bad number", input: "tf=ten\n", want: ErrMalformedSetting},
		{name: "list for scalar", input: "tf=[1, 2]\n", want: ErrMalformedSetting},
		{name: "scalar for list", input: "min_boundary=1\n", want: ErrMalformedSetting},
		{name: "bad list item", input: "min_boundary=[1, x]\n", want: ErrMalformedSetting},
		{name: "code", input: "tf=__import__('os')\n", want: ErrMalformedSetting},
		{name: "fractional count", input: "params_set_size=2.5\n", want: ErrMalformedSetting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSettings([]byte(tt.input))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseSettingsYAML(t *testing.T) {
	s, err := ParseSettingsYAML([]byte(`
startpoint: 2
endpoint: 0.5
tf: 10
min_boundary: [-3, -3, -3]
max_boundary: [3, 3, 3]
params_set_size: 5
max_attempts: 1000
`))
	require.NoError(t, err)
	require.Equal(t, 2.0, s.StartPoint)
	require.Equal(t, 0.5, s.EndPoint)
	require.Equal(t, 3000.0, s.SampleRate)
	require.Equal(t, []float64{3, 3, 3}, s.MaxBoundary)
	require.Equal(t, 5, s.Count)
	require.Equal(t, 1000, s.MaxAttempts)
}

func TestParseSettingsYAMLErrors(t *testing.T) {
	_, err := ParseSettingsYAML([]byte("colour: red\n"))
	require.ErrorIs(t, err, ErrUnknownSetting)

	_, err = ParseSettingsYAML([]byte("tf: [1\n"))
	require.ErrorIs(t, err, ErrMalformedSetting)

	s, err := ParseSettingsYAML(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), s)
}

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want, err := ParseSettings([]byte(legacySettings))
	require.NoError(t, err)
	want.MaxAttempts = 500

	path := filepath.Join(dir, "run", "settings.txt")
	require.NoError(t, SaveSettings(path, want))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadSettingsByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, writeFile(path, func(w *bufio.Writer) error {
		_, err := w.WriteString("tf: 4\n")
		return err
	}))
	s, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, 4.0, s.TFinal)

	_, err = LoadSettings(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestSettingsValidate(t *testing.T) {
	valid := DefaultSettings()
	valid.MinBoundary = []float64{-1, -1}
	valid.MaxBoundary = []float64{1, 1}
	require.NoError(t, valid.Validate())

	mutations := map[string]func(*Settings){
		"zero start":    func(s *Settings) { s.StartPoint = 0 },
		"zero tf":       func(s *Settings) { s.TFinal = 0 },
		"nan rate":      func(s *Settings) { s.SampleRate = math.NaN() },
		"bound lengths": func(s *Settings) { s.MaxBoundary = []float64{1} },
		"base length":   func(s *Settings) { s.BaseParams = []float64{0} },
		"negative size": func(s *Settings) { s.Count = -1 },
		"negative cap":  func(s *Settings) { s.MaxAttempts = -1 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			s := valid
			s.MaxBoundary = append([]float64(nil), valid.MaxBoundary...)
			mutate(&s)
			require.ErrorIs(t, s.Validate(), ErrInvalidSettings)
		})
	}
}
