// Package loader reads the delimited input tables and turns their rows into
// typed domain records.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var ErrEmptyTable = errors.New("table has no header row")

// LoadError describes a table that could not be loaded. Row is the 1-based
// data row (header excluded); zero means the failure concerns the whole file.
type LoadError struct {
	Path  string
	Row   int
	Field string
	Err   error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s", e.Path)
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ReadTable reads a delimited file, drops its header row and returns the
// remaining non-blank rows with every field trimmed.
func ReadTable(path string, delimiter rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	return ReadTableFrom(f, path, delimiter)
}

func ReadTableFrom(r io.Reader, name string, delimiter rune) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Path: name, Err: ErrEmptyTable}
		}
		return nil, &LoadError{Path: name, Err: err}
	}

	rows := make([][]string, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: name, Row: len(rows) + 1, Err: err}
		}

		blank := true
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
			if record[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, record)
	}
	return rows, nil
}
