package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"csvdash/internal/dataset"
)

// File is one parsed delimited file: the header row plus every data row as
// a string-keyed raw record, in source order.
type File struct {
	Name    string
	Header  []string
	Records []dataset.RawRecord
}

// CanParse reports whether the filename looks like a supported delimited
// format.
func CanParse(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv")
}

// ParseFile reads a CSV/TSV from disk. The delimiter is sniffed from the
// file extension.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Parse(f, filepath.Base(path), Delimiter(path))
}

// Parse reads a delimited stream with a header row. Rows shorter than the
// header produce partial records; extra trailing fields are dropped. The
// parse is all-or-nothing: a malformed row fails the whole file with a
// single error, and the caller simply ends up with no dataset.
func Parse(r io.Reader, name string, delim rune) (*File, error) {
	cr := csv.NewReader(r)
	if delim != 0 {
		cr.Comma = delim
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: file is empty", name)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	out := &File{Name: name, Header: header}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(out.Records)+1, err)
		}
		row := make(dataset.RawRecord, len(header))
		for i, h := range header {
			if i >= len(rec) {
				break
			}
			row[h] = rec[i]
		}
		out.Records = append(out.Records, row)
	}
	return out, nil
}

// Delimiter sniffs the field delimiter from the filename extension.
func Delimiter(filename string) rune {
	if strings.HasSuffix(strings.ToLower(filename), ".tsv") {
		return '\t'
	}
	return ','
}
