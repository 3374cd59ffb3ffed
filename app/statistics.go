package app

import (
	"fmt"
	"math"

	"parqsum/domain/core"
	"parqsum/domain/summary"
	"parqsum/ports"
)

// ComputeNumerical builds descriptive statistics for a numeric column. It
// never fails: undefined statistics come back as nil fields, not errors.
func (s *SummarizerService) ComputeNumerical(col ports.Column) *summary.NumericalStats {
	st := &summary.NumericalStats{
		Mean:   col.Mean(),
		StdDev: col.StdDev(),
		Q25:    col.Quantile(0.25),
		Q75:    col.Quantile(0.75),
	}
	if st.Q25 != nil && st.Q75 != nil {
		iqr := *st.Q75 - *st.Q25
		st.IQR = &iqr
	}
	return st
}

// ComputeCategorical builds the bounded frequency table for a categorical
// column.
//
// The unique-count probe is fatal on failure. The value-count breakdown is
// not: if it fails, the column degrades to count-only reporting and the run
// continues, preserving the one-summary-per-column invariant.
func (s *SummarizerService) ComputeCategorical(col ports.Column) (*summary.CategoricalStats, error) {
	unique, err := col.UniqueCount()
	if err != nil {
		return nil, core.NewStatisticsError(col.Name(), err)
	}

	groups, err := col.ValueCounts()
	if err != nil {
		s.log.Warn("value counts unavailable for column %q, reporting count only: %v", col.Name(), err)
		return &summary.CategoricalStats{TotalUnique: unique, ShowingTopN: false}, nil
	}

	showing := unique > s.threshold
	limit := unique
	if showing {
		limit = minUint(summary.DisplayCap, unique)
	}
	// The display cap binds even when the truncation flag stays false
	// (configured threshold above the cap).
	if limit > summary.DisplayCap {
		limit = summary.DisplayCap
	}

	// Only the first limit groups are considered. A count outside uint32
	// range within that window is skipped and shortens the table; later
	// groups never backfill the slot.
	window := len(groups)
	if uint(window) > limit {
		window = int(limit)
	}
	entries := make([]summary.FrequencyEntry, 0, window)
	for _, g := range groups[:window] {
		if g.Count < 0 || g.Count > math.MaxUint32 {
			continue
		}
		entries = append(entries, summary.FrequencyEntry{
			Value: displayValue(g.Value),
			Count: uint32(g.Count),
		})
	}

	return &summary.CategoricalStats{
		FrequencyTable: entries,
		TotalUnique:    unique,
		ShowingTopN:    showing,
	}, nil
}

// displayValue renders a breakdown value for the report. Strings (including
// decoded dictionary labels) pass through unchanged, everything else gets
// the default stringification.
func displayValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func minUint(a, b uint) uint {
	if a < b {
		return a
	}
	return b
}
