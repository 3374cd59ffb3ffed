package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrStatistics marks a failed statistical probe (unique count,
	// classification) on a named column. Fatal: the run produces no report.
	ErrStatistics = errors.New("statistics computation failed")

	// ErrColumnLookup marks a column that the table could not hand back.
	ErrColumnLookup = errors.New("column lookup failed")

	// ErrLoad marks a table that could not be materialized from its source.
	ErrLoad = errors.New("table load failed")

	// ErrUnsupportedOp marks a column operation the engine cannot perform
	// for the column's runtime value type.
	ErrUnsupportedOp = errors.New("operation unsupported for column type")
)

// NewStatisticsError identifies the offending column and the underlying cause.
func NewStatisticsError(column string, cause error) error {
	return fmt.Errorf("%w: column %q: %v", ErrStatistics, column, cause)
}

// NewColumnLookupError wraps a failed Table.Column call.
func NewColumnLookupError(column string, cause error) error {
	return fmt.Errorf("%w: %q: %v", ErrColumnLookup, column, cause)
}

// NewLoadError wraps a failed table load with its source path.
func NewLoadError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrLoad, path, cause)
}

// IsFatal reports whether an error aborts the whole summarization run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrStatistics) ||
		errors.Is(err, ErrColumnLookup) ||
		errors.Is(err, ErrLoad)
}
