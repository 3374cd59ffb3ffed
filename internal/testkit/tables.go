// Package testkit builds synthetic tables for tests.
package testkit

import (
	"fmt"

	"parqsum/adapters/table"
	"parqsum/domain/summary"
	"parqsum/ports"
)

// Table assembles columns into a table, panicking on builder misuse.
func Table(cols ...*table.Column) *table.Table {
	tbl := table.New()
	for _, c := range cols {
		if err := tbl.AddColumn(c); err != nil {
			panic(err)
		}
	}
	return tbl
}

// FloatColumn builds a numeric column from values (no nulls).
func FloatColumn(name string, dtype summary.DType, vals ...float64) *table.Column {
	values := make([]any, len(vals))
	for i, v := range vals {
		values[i] = v
	}
	return table.NewColumn(name, dtype, values)
}

// FloatColumnWithNulls builds a numeric column where nil entries are nulls.
func FloatColumnWithNulls(name string, dtype summary.DType, vals []*float64) *table.Column {
	values := make([]any, len(vals))
	for i, v := range vals {
		if v != nil {
			values[i] = *v
		}
	}
	return table.NewColumn(name, dtype, values)
}

// StringColumn builds a String column (no nulls).
func StringColumn(name string, vals ...string) *table.Column {
	values := make([]any, len(vals))
	for i, v := range vals {
		values[i] = v
	}
	return table.NewColumn(name, summary.DTypeString, values)
}

// BoolColumn builds an Other-typed column of booleans, the everyday case for
// the cardinality fallback.
func BoolColumn(name string, vals ...bool) *table.Column {
	values := make([]any, len(vals))
	for i, v := range vals {
		values[i] = v
	}
	return table.NewColumn(name, summary.DTypeOther, values)
}

// DistinctStrings returns n distinct values "prefix0".."prefixN-1", handy
// for high-cardinality columns.
func DistinctStrings(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// FlakyColumn wraps a column and forces failures on selected operations, to
// drive the fatal and degraded error paths. Groups, when set, replaces the
// breakdown result so tests can hand the caller arbitrary group counts.
type FlakyColumn struct {
	ports.Column
	FailUniqueCount bool
	FailValueCounts bool
	Groups          []ports.GroupCount
}

func (f *FlakyColumn) UniqueCount() (uint, error) {
	if f.FailUniqueCount {
		return 0, fmt.Errorf("forced unique count failure")
	}
	return f.Column.UniqueCount()
}

func (f *FlakyColumn) ValueCounts() ([]ports.GroupCount, error) {
	if f.FailValueCounts {
		return nil, fmt.Errorf("forced value counts failure")
	}
	if f.Groups != nil {
		return f.Groups, nil
	}
	return f.Column.ValueCounts()
}

// FlakyTable substitutes flaky columns by name over a base table.
type FlakyTable struct {
	ports.Table
	Flaky map[string]*FlakyColumn
}

func (t *FlakyTable) Column(name string) (ports.Column, error) {
	if c, ok := t.Flaky[name]; ok {
		return c, nil
	}
	return t.Table.Column(name)
}
