package store

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
)

const dirPerm = 0o755

// SaveParams writes one value per line with five decimals.
func SaveParams(path string, params []float64) error {
	return writeFile(path, func(w *bufio.Writer) error {
		for _, p := range params {
			if _, err := fmt.Fprintf(w, "%.5f\n", p); err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveParamSets writes one comma-separated vector per line with five decimals.
func SaveParamSets(path string, sets [][]float64) error {
	return writeFile(path, func(w *bufio.Writer) error {
		for _, params := range sets {
			fields := make([]string, len(params))
			for i, p := range params {
				fields[i] = fmt.Sprintf("%.5f", p)
			}
			if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadValues reads one floating-point value per line.
func LoadValues(path string) ([]float64, error) {
	var out []float64
	err := scanLines(path, func(line string, n int) error {
		v, err := cast.ToFloat64E(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, v)
		return nil
	})
	return out, err
}

// LoadParamSets reads the format written by SaveParamSets.
func LoadParamSets(path string) ([][]float64, error) {
	var out [][]float64
	err := scanLines(path, func(line string, n int) error {
		fields := strings.Split(line, ",")
		params := make([]float64, len(fields))
		for i, f := range fields {
			v, err := cast.ToFloat64E(strings.TrimSpace(f))
			if err != nil {
				return fmt.Errorf("line %d, field %d: %w", n, i+1, err)
			}
			params[i] = v
		}
		out = append(out, params)
		return nil
	})
	return out, err
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("store: create directory %s: %w", dir, err)
	}
	return nil
}

func writeFile(path string, fill func(*bufio.Writer) error) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("store: close %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("store: write %s: %w", path, err)
	}
	return nil
}

// scanLines calls fn for every non-blank, trimmed line with its 1-based number.
func scanLines(path string, fn func(line string, n int) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("store: open %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if err := fn(line, n); err != nil {
			return fmt.Errorf("store: %s: %w", path, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("store: read %s: %w", path, err)
	}
	return nil
}
