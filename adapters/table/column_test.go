package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parqsum/domain/core"
	"parqsum/domain/summary"
)

func floatCol(name string, vals ...float64) *Column {
	values := make([]any, len(vals))
	for i, v := range vals {
		values[i] = v
	}
	return NewColumn(name, summary.DTypeFloat64, values)
}

func TestNumericStatistics(t *testing.T) {
	col := floatCol("x", 1, 2, 3, 4, 5)

	mean := col.Mean()
	require.NotNil(t, mean)
	assert.InDelta(t, 3.0, *mean, 1e-9)

	sd := col.StdDev()
	require.NotNil(t, sd)
	assert.InDelta(t, 1.5811388300841898, *sd, 1e-9)

	q25 := col.Quantile(0.25)
	require.NotNil(t, q25)
	assert.Equal(t, 2.0, *q25)

	q75 := col.Quantile(0.75)
	require.NotNil(t, q75)
	assert.Equal(t, 4.0, *q75)
}

func TestQuantileNearestRank(t *testing.T) {
	// rank = round(fraction * (n-1)), no interpolation
	col := floatCol("x", 1, 2, 3, 4)

	q25 := col.Quantile(0.25) // round(0.75) = 1 -> 2
	require.NotNil(t, q25)
	assert.Equal(t, 2.0, *q25)

	q75 := col.Quantile(0.75) // round(2.25) = 2 -> 3
	require.NotNil(t, q75)
	assert.Equal(t, 3.0, *q75)

	q0 := col.Quantile(0)
	require.NotNil(t, q0)
	assert.Equal(t, 1.0, *q0)

	q100 := col.Quantile(1)
	require.NotNil(t, q100)
	assert.Equal(t, 4.0, *q100)
}

func TestStatisticsUndefinedCases(t *testing.T) {
	empty := NewColumn("empty", summary.DTypeFloat64, []any{nil, nil, nil})
	assert.Nil(t, empty.Mean())
	assert.Nil(t, empty.StdDev())
	assert.Nil(t, empty.Quantile(0.25))
	assert.Nil(t, empty.Quantile(0.75))

	single := NewColumn("single", summary.DTypeFloat64, []any{nil, 7.5, nil})
	mean := single.Mean()
	require.NotNil(t, mean)
	assert.Equal(t, 7.5, *mean)
	// Sample standard deviation divides by N-1 and is undefined for N=1.
	assert.Nil(t, single.StdDev())
}

func TestStatisticsSkipNulls(t *testing.T) {
	col := NewColumn("x", summary.DTypeFloat64, []any{1.0, nil, 2.0, nil, 3.0})

	mean := col.Mean()
	require.NotNil(t, mean)
	assert.InDelta(t, 2.0, *mean, 1e-9)

	n, err := col.UniqueCount()
	require.NoError(t, err)
	assert.Equal(t, uint(3), n)
}

func TestValueCountsOrderAndTies(t *testing.T) {
	col := NewColumn("s", summary.DTypeString, []any{"a", "a", "b", "c"})

	groups, err := col.ValueCounts()
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, "a", groups[0].Value)
	assert.Equal(t, int64(2), groups[0].Count)
	// Ties keep first-seen order.
	assert.Equal(t, "b", groups[1].Value)
	assert.Equal(t, int64(1), groups[1].Count)
	assert.Equal(t, "c", groups[2].Value)
	assert.Equal(t, int64(1), groups[2].Count)
}

func TestValueCountsExcludeNulls(t *testing.T) {
	col := NewColumn("s", summary.DTypeString, []any{"a", nil, "a", nil, "b"})

	groups, err := col.ValueCounts()
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, int64(2), groups[0].Count)
	assert.Equal(t, int64(1), groups[1].Count)
}

func TestCodedColumnDecodesThroughDict(t *testing.T) {
	col := NewCodedColumn("level", summary.DTypeEnum,
		[]int{0, 1, 0, 2, -1, 0}, []string{"low", "mid", "high"})

	groups, err := col.ValueCounts()
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "low", groups[0].Value)
	assert.Equal(t, int64(3), groups[0].Count)

	n, err := col.UniqueCount()
	require.NoError(t, err)
	assert.Equal(t, uint(3), n)
}

func TestNonComparableValuesAreRejected(t *testing.T) {
	col := NewColumn("blob", summary.DTypeOther, []any{[]byte{1}, []byte{2}})

	_, err := col.UniqueCount()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedOp)

	_, err = col.ValueCounts()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedOp)
}

func TestMixedComparabilityIsRejected(t *testing.T) {
	// A comparable leading value must not mask non-comparable ones later in
	// the column.
	col := NewColumn("mixed", summary.DTypeOther, []any{true, nil, []byte{1}})

	_, err := col.UniqueCount()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedOp)

	_, err = col.ValueCounts()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnsupportedOp)
}

func TestTableShapeAndLookup(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn(floatCol("a", 1, 2, 3)))
	require.NoError(t, tbl.AddColumn(NewColumn("b", summary.DTypeString, []any{"x", "y", nil})))

	rows, cols := tbl.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, []string{"a", "b"}, tbl.ColumnNames())

	_, err := tbl.Column("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrColumnLookup)

	err = tbl.AddColumn(floatCol("a", 9))
	require.Error(t, err)

	err = tbl.AddColumn(floatCol("short", 1))
	require.Error(t, err)
}
