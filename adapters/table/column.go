package table

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/montanaflynn/stats"

	"parqsum/domain/core"
	"parqsum/domain/summary"
	"parqsum/ports"
)

// Column stores one column's values. A nil entry is a null. Numeric columns
// hold float64 values, string columns hold string values, dictionary-coded
// columns hold int codes resolved through dict, and Other columns hold
// whatever the loader produced.
type Column struct {
	name   string
	dtype  summary.DType
	values []any
	dict   []string
}

// NewColumn creates a plain column. The caller guarantees values match the
// declared type (float64 for numeric types, string for DTypeString).
func NewColumn(name string, dtype summary.DType, values []any) *Column {
	return &Column{name: name, dtype: dtype, values: values}
}

// NewCodedColumn creates a dictionary-coded column. Negative codes are
// treated as nulls.
func NewCodedColumn(name string, dtype summary.DType, codes []int, dict []string) *Column {
	values := make([]any, len(codes))
	for i, code := range codes {
		if code >= 0 {
			values[i] = code
		}
	}
	return &Column{name: name, dtype: dtype, values: values, dict: dict}
}

func (c *Column) Name() string         { return c.name }
func (c *Column) DType() summary.DType { return c.dtype }

// Len returns the row count including nulls.
func (c *Column) Len() int { return len(c.values) }

// validFloats collects the non-null float64 values.
func (c *Column) validFloats() []float64 {
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if f, ok := v.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}

// Mean returns the arithmetic mean of the valid values, nil when there are
// none.
func (c *Column) Mean() *float64 {
	valid := c.validFloats()
	if len(valid) == 0 {
		return nil
	}
	m, err := stats.Mean(valid)
	if err != nil {
		return nil
	}
	return &m
}

// StdDev returns the sample standard deviation (N-1 degrees of freedom).
// Undefined for fewer than two valid values.
func (c *Column) StdDev() *float64 {
	valid := c.validFloats()
	if len(valid) < 2 {
		return nil
	}
	sd, err := stats.StandardDeviationSample(valid)
	if err != nil {
		return nil
	}
	return &sd
}

// Quantile returns the value at the nearest rank to the given fraction of
// the sorted valid values. Rank = round(fraction * (n-1)), no interpolation.
func (c *Column) Quantile(fraction float64) *float64 {
	valid := c.validFloats()
	if len(valid) == 0 {
		return nil
	}
	sorted := make([]float64, len(valid))
	copy(sorted, valid)
	sort.Float64s(sorted)

	rank := int(math.Round(fraction * float64(len(sorted)-1)))
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	q := sorted[rank]
	return &q
}

// comparable reports whether every non-null value can be used as a map key.
// Other columns may hold mixed runtime types, so each value is checked.
func (c *Column) comparable() bool {
	for _, v := range c.values {
		if v == nil {
			continue
		}
		if !reflect.TypeOf(v).Comparable() {
			return false
		}
	}
	return true
}

// UniqueCount returns the number of distinct non-null values. Full scan.
func (c *Column) UniqueCount() (uint, error) {
	if !c.comparable() {
		return 0, fmt.Errorf("%w: %s values are not comparable", core.ErrUnsupportedOp, c.name)
	}
	seen := make(map[any]struct{})
	for _, v := range c.values {
		if v == nil {
			continue
		}
		seen[v] = struct{}{}
	}
	return uint(len(seen)), nil
}

// ValueCounts groups the non-null values and returns the groups sorted by
// count descending. Ties keep first-seen order, which is the engine's stable
// tie-break.
func (c *Column) ValueCounts() ([]ports.GroupCount, error) {
	if !c.comparable() {
		return nil, fmt.Errorf("%w: %s values are not comparable", core.ErrUnsupportedOp, c.name)
	}

	counts := make(map[any]int64)
	order := make([]any, 0)
	for _, v := range c.values {
		if v == nil {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	groups := make([]ports.GroupCount, 0, len(order))
	for _, v := range order {
		groups = append(groups, ports.GroupCount{Value: c.decode(v), Count: counts[v]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	return groups, nil
}

// decode resolves dictionary codes to their labels; every other value passes
// through unchanged.
func (c *Column) decode(v any) any {
	if c.dict == nil {
		return v
	}
	code, ok := v.(int)
	if !ok || code < 0 || code >= len(c.dict) {
		return v
	}
	return c.dict[code]
}
