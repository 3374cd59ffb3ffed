package summary

// DType identifies the declared storage type of a column. The set is closed:
// adding a new underlying type forces a deliberate classification choice in
// Classify.
type DType string

const (
	DTypeUInt8   DType = "UInt8"
	DTypeUInt16  DType = "UInt16"
	DTypeUInt32  DType = "UInt32"
	DTypeUInt64  DType = "UInt64"
	DTypeInt8    DType = "Int8"
	DTypeInt16   DType = "Int16"
	DTypeInt32   DType = "Int32"
	DTypeInt64   DType = "Int64"
	DTypeFloat32 DType = "Float32"
	DTypeFloat64 DType = "Float64"

	DTypeString      DType = "String"
	DTypeCategorical DType = "Categorical"
	DTypeEnum        DType = "Enum"

	// DTypeOther covers every declared type outside the numeric and
	// string-like families. Columns of this type are classified by
	// cardinality.
	DTypeOther DType = "Other"
)

// IsNumeric reports whether the type belongs to the integer or float family,
// regardless of width or signedness.
func (d DType) IsNumeric() bool {
	switch d {
	case DTypeUInt8, DTypeUInt16, DTypeUInt32, DTypeUInt64,
		DTypeInt8, DTypeInt16, DTypeInt32, DTypeInt64,
		DTypeFloat32, DTypeFloat64:
		return true
	}
	return false
}

// IsStringLike reports whether values of this type carry (or decode to)
// string identity.
func (d DType) IsStringLike() bool {
	switch d {
	case DTypeString, DTypeCategorical, DTypeEnum:
		return true
	}
	return false
}

// DisplayCap is the hard upper bound on frequency table entries, independent
// of the configured categorical threshold.
const DisplayCap = 10

// DefaultCategoricalThreshold is the default maximum cardinality for a column
// of unrecognized type to still be summarized categorically.
const DefaultCategoricalThreshold uint = 10

// NumericalStats holds descriptive statistics for a numeric column. Each
// field is independently optional; nil means the statistic is undefined for
// the column (for example, no valid values). Nil is the only absence marker —
// never NaN or a sentinel value.
type NumericalStats struct {
	Mean   *float64
	StdDev *float64 // sample standard deviation, N-1 degrees of freedom
	Q25    *float64
	Q75    *float64
	IQR    *float64 // present iff both quartiles are present
}

// FrequencyEntry is one row of a categorical frequency table.
type FrequencyEntry struct {
	Value string
	Count uint32
}

// CategoricalStats holds the cardinality and ranked value breakdown of a
// categorical column. An empty FrequencyTable with a non-zero TotalUnique
// means the breakdown was unavailable or withheld; the count is still valid.
type CategoricalStats struct {
	FrequencyTable []FrequencyEntry // ordered by Count descending
	TotalUnique    uint
	ShowingTopN    bool
}

// ColumnSummary is the immutable per-column result. Exactly one of Numerical
// and Categorical is set. Summaries are ordered by the column's position in
// the source table and never mutated after construction.
type ColumnSummary struct {
	Name        string
	DataType    string
	Numerical   *NumericalStats
	Categorical *CategoricalStats
}
