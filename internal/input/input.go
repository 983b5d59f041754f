// Package input reads (item, frequency) pairs from command-line arguments,
// CSV files and JSON files.
package input

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blackwell-systems/pareto/internal/pareto"
)

// Series is a pair of parallel item and frequency slices.
type Series struct {
	Items       []string
	Frequencies []float64
}

// Len returns the number of items.
func (s Series) Len() int {
	return len(s.Items)
}

// ParsePairs parses "label=frequency" arguments. The split happens on the
// last "=", so labels may themselves contain "=".
func ParsePairs(args []string) (Series, error) {
	var s Series
	for _, arg := range args {
		idx := strings.LastIndexByte(arg, '=')
		if idx <= 0 {
			return Series{}, fmt.Errorf("%w: %q is not label=frequency", pareto.ErrInvalidInput, arg)
		}

		label := strings.TrimSpace(arg[:idx])
		f, err := parseFrequency(arg[idx+1:])
		if err != nil {
			return Series{}, fmt.Errorf("%q: %w", arg, err)
		}

		s.Items = append(s.Items, label)
		s.Frequencies = append(s.Frequencies, f)
	}
	return s, nil
}

// CSVOptions controls ReadCSV.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// Header skips the first record. When nil the first record is skipped
	// only if its frequency column is not a number.
	Header *bool
}

// ReadCSV reads two-column records: label, frequency. Extra columns are
// ignored.
func ReadCSV(r io.Reader, opts CSVOptions) (Series, error) {
	cr := csv.NewReader(r)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var s Series
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Series{}, fmt.Errorf("%w: %v", pareto.ErrInvalidInput, err)
		}
		line++

		if len(rec) < 2 {
			return Series{}, fmt.Errorf("%w: record %d has %d fields, want 2",
				pareto.ErrInvalidInput, line, len(rec))
		}

		if line == 1 && isHeader(rec, opts.Header) {
			continue
		}

		f, err := parseFrequency(rec[1])
		if err != nil {
			return Series{}, fmt.Errorf("record %d: %w", line, err)
		}
		s.Items = append(s.Items, strings.TrimSpace(rec[0]))
		s.Frequencies = append(s.Frequencies, f)
	}
	return s, nil
}

func isHeader(rec []string, explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	_, err := parseFrequency(rec[1])
	return err != nil
}

// jsonRecord is one element of the array form.
type jsonRecord struct {
	Item      string   `json:"item"`
	Frequency *float64 `json:"frequency"`
}

// jsonColumns is the object form.
type jsonColumns struct {
	Items       []string  `json:"items"`
	Frequencies []float64 `json:"frequencies"`
}

// ReadJSON reads either an array of {"item", "frequency"} objects or an
// object with parallel "items" and "frequencies" arrays. Column lengths are
// not checked here; the table build reports a mismatch.
func ReadJSON(r io.Reader) (Series, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Series{}, fmt.Errorf("failed to read JSON: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var recs []jsonRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return Series{}, fmt.Errorf("%w: %v", pareto.ErrInvalidInput, err)
		}
		var s Series
		for i, rec := range recs {
			if rec.Frequency == nil {
				return Series{}, fmt.Errorf("%w: record %d has no frequency", pareto.ErrInvalidInput, i+1)
			}
			s.Items = append(s.Items, rec.Item)
			s.Frequencies = append(s.Frequencies, *rec.Frequency)
		}
		return s, nil
	}

	var cols jsonColumns
	if err := json.Unmarshal(data, &cols); err != nil {
		return Series{}, fmt.Errorf("%w: %v", pareto.ErrInvalidInput, err)
	}
	return Series{Items: cols.Items, Frequencies: cols.Frequencies}, nil
}

// ErrUnknownFormat is returned by Load for unsupported file extensions.
var ErrUnknownFormat = errors.New("unknown input format (want .csv, .tsv or .json)")

// Load reads a file, choosing the parser from its extension.
func Load(path string) (Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return Series{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, CSVOptions{})
	case ".tsv":
		return ReadCSV(f, CSVOptions{Comma: '\t'})
	case ".json":
		return ReadJSON(f)
	default:
		return Series{}, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

func parseFrequency(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: frequency %q is not a number", pareto.ErrInvalidInput, s)
	}
	return f, nil
}
