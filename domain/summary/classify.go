package summary

import (
	"parqsum/domain/core"
)

// DecisionKind is the outcome of classifying a column.
type DecisionKind int

const (
	// DecisionNumerical selects the descriptive-statistics path.
	DecisionNumerical DecisionKind = iota
	// DecisionCategorical selects the frequency-table path.
	DecisionCategorical
	// DecisionCategoricalOverflow marks an unrecognized type whose
	// cardinality exceeds the threshold: only the unique count is reported,
	// no per-value breakdown.
	DecisionCategoricalOverflow
)

// Decision carries the classification outcome. UniqueCount is only
// meaningful when Probed is true, i.e. when the cardinality fallback ran.
type Decision struct {
	Kind        DecisionKind
	UniqueCount uint
	Probed      bool
}

// UniqueCountFn reports the number of distinct values in a column. It may
// require a full column scan and is only invoked when the declared type does
// not decide the classification on its own.
type UniqueCountFn func() (uint, error)

// Classify decides how a column of the given declared type is summarized.
//
// Numeric types never probe cardinality (the probe is a full scan and the
// answer would not change the decision). String-like types are always
// categorical. Every other type is classified by cardinality: at most
// threshold distinct values keeps the frequency-table path, more overflows
// to count-only reporting.
//
// A failed probe is fatal for the whole summarization: a partial report that
// silently skipped a column would be misleading.
func Classify(name string, dtype DType, uniqueCount UniqueCountFn, threshold uint) (Decision, error) {
	switch {
	case dtype.IsNumeric():
		return Decision{Kind: DecisionNumerical}, nil
	case dtype.IsStringLike():
		return Decision{Kind: DecisionCategorical}, nil
	}

	n, err := uniqueCount()
	if err != nil {
		return Decision{}, core.NewStatisticsError(name, err)
	}
	if n > threshold {
		return Decision{Kind: DecisionCategoricalOverflow, UniqueCount: n, Probed: true}, nil
	}
	return Decision{Kind: DecisionCategorical, UniqueCount: n, Probed: true}, nil
}
