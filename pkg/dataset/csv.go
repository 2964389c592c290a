package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads a CSV dataset from path. See Read for the format.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read parses CSV with a header row. Every column except the last is an
// input; the last column is the target.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: header needs at least one input and one target column", ErrArity)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var samples []Sample
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv reports field-count mismatches here as well
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		vals := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, header[i], err)
			}
			vals[i] = v
		}
		n := len(vals) - 1
		samples = append(samples, Sample{X: vals[:n:n], Y: vals[n]})
	}

	ds, err := New(samples)
	if err != nil {
		return nil, err
	}
	ds.Header = header
	return ds, nil
}
