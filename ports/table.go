package ports

import (
	"parqsum/domain/summary"
)

// Table provides read-only access to a fully materialized tabular dataset.
// Column order is significant and preserved from the source.
type Table interface {
	// ColumnNames returns the column names in source order.
	ColumnNames() []string

	// Column returns the named column. Lookup failure is fatal for a
	// summarization run.
	Column(name string) (Column, error)

	// Shape returns the row and column counts.
	Shape() (rows int, cols int)
}

// GroupCount is one group of a value-count breakdown. Value carries the
// runtime value: string for string-like columns (dictionary-coded values are
// already decoded), otherwise whatever the engine stores.
type GroupCount struct {
	Value any
	Count int64
}

// Column exposes the primitive statistical operations the summarization core
// consumes. Implementations own the numeric contracts: sample standard
// deviation uses N-1 degrees of freedom, Quantile uses the nearest-rank
// method, and ValueCounts excludes null groupings.
//
// Operations returning *float64 never fail; nil means the statistic is
// undefined for this column's data.
type Column interface {
	Name() string
	DType() summary.DType

	// Mean returns the arithmetic mean of the valid values, nil when there
	// are none.
	Mean() *float64

	// StdDev returns the sample standard deviation, nil when fewer than two
	// valid values exist.
	StdDev() *float64

	// Quantile returns the value at the rank nearest to the given fraction
	// of the sorted valid values, no interpolation. Nil when there are no
	// valid values.
	Quantile(fraction float64) *float64

	// UniqueCount returns the number of distinct valid values. A full scan.
	UniqueCount() (uint, error)

	// ValueCounts returns the grouped value breakdown sorted by count
	// descending, ties in the engine's stable first-seen order.
	ValueCounts() ([]GroupCount, error)
}
