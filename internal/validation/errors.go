// =============================================================================
// Points Directory - Error Taxonomy
// =============================================================================
//
// Every failure of a run falls into one of four classes:
//
//   ErrMalformedRow        a required cell is missing or does not parse. Fatal.
//   ErrUnrecognizedRegion  a region has no identifier in the registry.
//                          Reported as a warning, never fatal.
//   ErrIO                  the input cannot be read or the output cannot be
//                          written. Fatal.
//   ErrTemplate            the page template cannot be parsed or executed.
//                          Fatal.
//
// Callers classify with errors.Is. Row-level detail travels in RowError and
// RegionWarning, which unwrap to the matching sentinel.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedRow       = errors.New("malformed row")
	ErrUnrecognizedRegion = errors.New("unrecognized region")
	ErrIO                 = errors.New("i/o failure")
	ErrTemplate           = errors.New("template failure")
)

// =============================================================================
// ROW ERRORS
// =============================================================================

// RowError describes a single malformed input row.
type RowError struct {
	// Row is the 1-based row number in the source sheet, header included.
	Row int

	// Column is the 1-based column number of the offending cell.
	Column int

	// Field is the logical field name of the column (e.g. "city").
	Field string

	// Value is the raw cell value, empty when the data node is missing.
	Value string

	// Message is a human-readable description of the problem.
	Message string
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("row %d, column %d (%s): %s", e.Row, e.Column, e.Field, e.Message)
	}
	return fmt.Sprintf("row %d, column %d (%s): %s (value: '%s')", e.Row, e.Column, e.Field, e.Message, e.Value)
}

// Unwrap classifies every RowError as ErrMalformedRow.
func (e *RowError) Unwrap() error { return ErrMalformedRow }

// =============================================================================
// REGION WARNINGS
// =============================================================================

// RegionWarning reports a region name that is not a known voivodeship.
type RegionWarning struct {
	// Region is the region name as it appeared in the input.
	Region string

	// Slug is the slug the lookup was attempted with.
	Slug string

	// FirstRow is the first row the region was seen on.
	FirstRow int

	// Records counts how many records carried this region.
	Records int
}

func (w *RegionWarning) Error() string {
	return fmt.Sprintf("region '%s' (slug '%s', first seen on row %d, %d record(s)) has no identifier",
		w.Region, w.Slug, w.FirstRow, w.Records)
}

func (w *RegionWarning) Unwrap() error { return ErrUnrecognizedRegion }

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors renders a list of errors or warnings, one per line.
func FormatErrors[E error](errs []E) string {
	if len(errs) == 0 {
		return "No errors."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%d problem(s):\n", len(errs)))
	for i, err := range errs {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}
