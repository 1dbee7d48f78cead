package store

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

// StampLayout formats run timestamps as 2006-01-02_15-04.
const StampLayout = "2006-01-02_15-04"

// Stamp formats t for use in file and directory names.
func Stamp(t time.Time) string {
	return t.Format(StampLayout)
}

// SaveCurve writes a "t,value" header followed by one row per sample.
// times and values must have equal length.
func SaveCurve(path string, times, values []float64) error {
	if len(times) != len(values) {
		return fmt.Errorf("store: curve has %d times and %d values", len(times), len(values))
	}
	return writeFile(path, func(w *bufio.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"t", "value"}); err != nil {
			return err
		}
		for i := range times {
			row := []string{
				strconv.FormatFloat(times[i], 'g', -1, 64),
				strconv.FormatFloat(values[i], 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}
