package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a session ID is unknown or has expired
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSource is returned for a table source tag other than MANUAL or IMPORT
var ErrInvalidSource = errors.New("invalid table source")

// SchemaError rejects an imported table that lacks required columns.
// Missing lists every absent column in canonical order.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid table schema: missing required columns: %s", strings.Join(e.Missing, ", "))
}

// NoNumericDataError rejects an imported table whose columns are all text
type NoNumericDataError struct {
	Columns []string
}

func (e *NoNumericDataError) Error() string {
	return fmt.Sprintf("invalid table data: none of the %d columns holds numeric data", len(e.Columns))
}

// ParseError reports that an import source could not be read as a table at all.
// Line is the 1-based line of the failure when known, 0 otherwise.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid table file: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("invalid table file: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a record that lacks one of the ten base fields.
// Row is the 0-based data row of an imported table, or -1 for a manual entry.
type MissingFieldError struct {
	Row   int
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("invalid property record: missing field %q", e.Field)
	}
	return fmt.Sprintf("invalid property record at row %d: missing field %q", e.Row+1, e.Field)
}

// FieldTypeError reports a base field that is present but holds text where a
// number is required. Row follows the MissingFieldError convention.
type FieldTypeError struct {
	Row   int
	Field string
	Value string
}

func (e *FieldTypeError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("invalid property record: field %q is not a number: %q", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid property record at row %d: field %q is not a number: %q", e.Row+1, e.Field, e.Value)
}
