package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ParseOptions configures the delimited trace reader.
type ParseOptions struct {
	// Delimiter separates columns; defaults to ',' when zero.
	Delimiter rune
}

// ParseFile reads a delimited trace file whose first row is headers (time
// plus quantity names) and whose subsequent rows are floats.
// Duration is computed as time-prev_time (first row: duration=time) and the
// frequency column, if present, is converted MHz->Hz.
func ParseFile(path string, opts ParseOptions) ([]DataPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse reads a delimited trace from r. See ParseFile for the format.
func Parse(r io.Reader, opts ParseOptions) ([]DataPoint, error) {
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}

	reader := csv.NewReader(r)
	reader.Comma = delim
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("trace: parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("trace: empty trace file")
	}

	header := rows[0]
	if len(header) == 0 || header[0] != "time" {
		return nil, fmt.Errorf("trace: first column must be %q, got %q", "time", headerFirst(header))
	}

	points := make([]DataPoint, 0, len(rows)-1)
	prevTime := 0.0
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("trace: row %d has %d columns, want %d", i+2, len(row), len(header))
		}
		values := make([]float64, len(row))
		for c, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("trace: row %d column %q: %w", i+2, header[c], err)
			}
			values[c] = v
		}

		t := values[0]
		duration := t
		if i > 0 {
			duration = t - prevTime
		}
		prevTime = t

		data := make(map[string]float64, len(header)-1)
		for c := 1; c < len(header); c++ {
			data[header[c]] = values[c]
		}
		if freq, ok := data[QFrequency]; ok {
			data[QFrequency] = freq * 1e6
		}

		points = append(points, DataPoint{Time: t, Duration: duration, Data: data})
	}
	return points, nil
}

func headerFirst(header []string) string {
	if len(header) == 0 {
		return ""
	}
	return header[0]
}
