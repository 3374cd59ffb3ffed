// Package table implements the in-memory columnar engine behind the Table
// and Column ports. Loaders (parquet, excel, csv) materialize files into it;
// the summarization core only sees the port interfaces.
package table

import (
	"fmt"

	"parqsum/domain/core"
	"parqsum/ports"
)

// Table is an ordered collection of columns sharing one row count.
type Table struct {
	names   []string
	columns map[string]*Column
	rows    int
}

// New creates an empty table.
func New() *Table {
	return &Table{columns: make(map[string]*Column)}
}

// AddColumn appends a column. The first column fixes the table's row count;
// later columns must match it. Duplicate names are rejected.
func (t *Table) AddColumn(c *Column) error {
	if _, exists := t.columns[c.name]; exists {
		return fmt.Errorf("duplicate column %q", c.name)
	}
	if len(t.names) == 0 {
		t.rows = c.Len()
	} else if c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.name, c.Len(), t.rows)
	}
	t.names = append(t.names, c.name)
	t.columns[c.name] = c
	return nil
}

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Column returns the named column.
func (t *Table) Column(name string) (ports.Column, error) {
	c, ok := t.columns[name]
	if !ok {
		return nil, core.NewColumnLookupError(name, fmt.Errorf("no such column"))
	}
	return c, nil
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return t.rows, len(t.names)
}
