// Package bulk pre-checks CSV payloads before they are forwarded to the
// remote import endpoint. The remote side does the real row validation;
// this layer only rejects files that would obviously fail, saving a
// round-trip.
package bulk

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyFile is returned when the CSV payload is empty
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrInvalidEncoding is returned when the payload is not valid UTF-8
	ErrInvalidEncoding = errors.New("invalid file encoding")

	// ErrMissingHeader is returned when the payload has no header row
	ErrMissingHeader = errors.New("CSV file missing header row")

	// ErrNoDataRows is returned when the payload has a header but no data
	ErrNoDataRows = errors.New("CSV file contains no data rows")
)

// HeaderError reports required columns absent from the header row.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("CSV file missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Precheck validates a CSV payload: non-empty, UTF-8, a header row, at
// least one data row, and all required columns present. Column matching
// is case-insensitive, the way the remote importer treats headers.
func Precheck(data []byte, requiredColumns []string) error {
	data = stripBOM(data)
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyFile
	}
	if !utf8.Valid(data) {
		return ErrInvalidEncoding
	}

	reader := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.ToLower(strings.TrimSpace(h))] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !present[strings.ToLower(col)] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &HeaderError{Missing: missing}
	}

	// Require at least one non-empty data row.
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return ErrNoDataRows
		}
		if err != nil {
			return fmt.Errorf("malformed CSV row: %w", err)
		}
		for _, field := range record {
			if strings.TrimSpace(field) != "" {
				return nil
			}
		}
	}
}

// stripBOM removes a leading UTF-8 byte order mark if present.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
