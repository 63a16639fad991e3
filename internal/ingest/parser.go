// Package ingest turns raw delimited exports into header-keyed records.
package ingest

import (
	"errors"
	"strings"

	"github.com/googlesheets-ru/championship-r7-2025/config"
)

// Record maps a header name to the raw string value found in one source
// line. A field whose token is missing from the line is simply absent from
// the map, which lets downstream code distinguish "no column value" from an
// empty string.
type Record map[string]string

// Has reports whether the field was present on the source line.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Document is the ordered parse output: the trimmed header row plus one
// record per non-blank data line.
type Document struct {
	Headers []string
	Records []Record
}

// ErrEmptyInput indicates the source text was empty or whitespace-only.
var ErrEmptyInput = errors.New("ingest: empty input")

// ErrNoDataRows indicates the source had no header row or no data rows.
var ErrNoDataRows = errors.New("ingest: need a header row and at least one data row")

// Parse splits source text into a header row and positional records.
//
// Lines are split on any mix of \r\n, \n, and \r; consecutive breaks collapse
// into one boundary. The first surviving line is the header row with each
// header trimmed. Blank (whitespace-only) lines produce no record. Tokens
// beyond the header count are dropped; a line shorter than the header leaves
// the trailing fields absent. An empty delimiter falls back to the default.
func Parse(text, delimiter string) (Document, error) {
	if delimiter == "" {
		delimiter = config.DefaultDelimiter
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, ErrEmptyInput
	}

	rawLines := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	lines := rawLines[:0]
	for _, ln := range rawLines {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) < 2 {
		return Document{}, ErrNoDataRows
	}

	headers := strings.Split(lines[0], delimiter)
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		tokens := strings.Split(line, delimiter)
		rec := make(Record, len(headers))
		for i, h := range headers {
			if i < len(tokens) {
				rec[h] = tokens[i]
			}
		}
		records = append(records, rec)
	}

	return Document{Headers: headers, Records: records}, nil
}
