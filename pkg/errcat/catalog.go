package errcat

import (
	"errors"
	"fmt"
	"strings"
)

// Code defines a canonical error code used across the report pipeline.
type Code string

const (
	// Validation & Input
	Validation Code = "VALIDATION"
	Parse      Code = "PARSE"

	// Resource & Limits
	Timeout       Code = "TIMEOUT"
	LimitExceeded Code = "LIMIT_EXCEEDED"

	// IO & Formats
	FetchFailed       Code = "FETCH_FAILED"
	RenderFailed      Code = "RENDER_FAILED"
	UnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	PermissionDenied  Code = "PERMISSION_DENIED"

	// Analysis
	AnalysisFailed Code = "ANALYSIS_FAILED"
)

// Entry documents a code's standard message, retry semantics, and next steps.
type Entry struct {
	Code      Code
	Message   string
	Retryable bool
	NextSteps []string
}

// catalog maps canonical codes to guidance. Messages can be overridden per error.
var catalog = map[Code]Entry{
	Validation: {Code: Validation, Message: "invalid inputs", Retryable: true, NextSteps: []string{"Correct the inputs and retry", "See ecomreport -h for flag formats"}},
	Parse:      {Code: Parse, Message: "failed to parse source text", Retryable: true, NextSteps: []string{"Check the delimiter flag", "Verify the export has a header row and data rows"}},

	Timeout:       {Code: Timeout, Message: "operation exceeded configured time limit", Retryable: true, NextSteps: []string{"Narrow the period or increase the timeout"}},
	LimitExceeded: {Code: LimitExceeded, Message: "operation exceeded configured limits", Retryable: true, NextSteps: []string{"Reduce the source size or raise max records/bytes"}},

	FetchFailed:       {Code: FetchFailed, Message: "failed to retrieve source", Retryable: true, NextSteps: []string{"Verify path or URL, permissions, and format"}},
	RenderFailed:      {Code: RenderFailed, Message: "failed to write report workbook", Retryable: false, NextSteps: []string{"Verify the output path is writable"}},
	UnsupportedFormat: {Code: UnsupportedFormat, Message: "unsupported source format", Retryable: false, NextSteps: []string{"Provide a .csv, .tsv, or .txt export"}},
	PermissionDenied:  {Code: PermissionDenied, Message: "insufficient permissions to access path", Retryable: false, NextSteps: []string{"Adjust permissions or choose an allowed directory"}},

	AnalysisFailed: {Code: AnalysisFailed, Message: "aggregation failed", Retryable: true, NextSteps: []string{"Verify the source columns match the expected schema"}},
}

// Error carries a canonical code alongside a detail message and an optional
// wrapped cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error renders "CODE: message | nextSteps: ..." so surfaces that only carry
// a string (logs, process exit) still expose operator guidance.
func (e *Error) Error() string {
	base := strings.TrimSpace(e.Message)
	entry, ok := catalog[e.Code]
	if !ok {
		if base == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", string(e.Code), base)
	}
	if base == "" {
		base = entry.Message
	}
	guidance := ""
	if len(entry.NextSteps) > 0 {
		guidance = " | nextSteps: " + strings.Join(entry.NextSteps, "; ")
	}
	return fmt.Sprintf("%s: %s%s", e.Code, base, guidance)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a catalogued error for a code and optional message override.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to a cause.
func Wrap(code Code, message string, err error) error {
	return &Error{Code: code, Message: message, Err: err}
}

// Wrapf formats details and returns a catalogued error for the code.
func Wrapf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the canonical code from err, or empty when uncatalogued.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Retryable reports whether the error's code is marked retryable in the
// catalog. Uncatalogued errors are not retryable.
func Retryable(err error) bool {
	entry, ok := catalog[CodeOf(err)]
	return ok && entry.Retryable
}
