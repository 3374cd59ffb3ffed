// Package report renders ordered column summaries into the final text
// document. Rendering is pure and deterministic: the same summaries always
// produce byte-identical output.
package report

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"parqsum/domain/summary"
)

const (
	header           = "📋 Column Analysis\n━━━━━━━━━━━━━━━━━━\n\n"
	completionMarker = "✅ Analysis complete!\n"
	notAvailableSlot = "N/A (no valid values)"
)

// Render produces the summary document for the given column summaries, in
// order. Blocks are numbered 1-based. No statistics are computed here beyond
// the displayed-subset percentages.
func Render(summaries []summary.ColumnSummary) string {
	var b strings.Builder
	b.WriteString(header)

	for i, cs := range summaries {
		fmt.Fprintf(&b, "%d. Column: '%s' (%s)\n", i+1, cs.Name, cs.DataType)

		switch {
		case cs.Numerical != nil:
			renderNumerical(&b, cs.Numerical)
		case cs.Categorical != nil:
			renderCategorical(&b, cs.Categorical)
		}
		b.WriteByte('\n')
	}

	b.WriteString(completionMarker)
	return b.String()
}

func renderNumerical(b *strings.Builder, st *summary.NumericalStats) {
	b.WriteString("   📈 Numerical Statistics:\n")

	if st.Mean != nil {
		fmt.Fprintf(b, "      Mean: %.6f\n", *st.Mean)
	} else {
		fmt.Fprintf(b, "      Mean: %s\n", notAvailableSlot)
	}

	if st.StdDev != nil {
		fmt.Fprintf(b, "      Std Dev: %.6f\n", *st.StdDev)
	} else {
		fmt.Fprintf(b, "      Std Dev: %s\n", notAvailableSlot)
	}

	// Quartiles print as a group: partial quartile data would be more
	// confusing than a single marker.
	if st.Q25 != nil && st.Q75 != nil && st.IQR != nil {
		fmt.Fprintf(b, "      Q1 (25%%): %.6f\n", *st.Q25)
		fmt.Fprintf(b, "      Q3 (75%%): %.6f\n", *st.Q75)
		fmt.Fprintf(b, "      IQR: %.6f\n", *st.IQR)
	} else {
		fmt.Fprintf(b, "      Quartiles: %s\n", notAvailableSlot)
	}
}

func renderCategorical(b *strings.Builder, st *summary.CategoricalStats) {
	if len(st.FrequencyTable) == 0 {
		fmt.Fprintf(b, "   📊 Categorical: %d unique values (too many to display)\n", st.TotalUnique)
		return
	}

	if st.ShowingTopN {
		fmt.Fprintf(b, "   📊 Categorical: %d total unique values (showing top %d):\n",
			st.TotalUnique, summary.DisplayCap)
	} else {
		fmt.Fprintf(b, "   📊 Categorical: %d unique values:\n", st.TotalUnique)
	}

	// Percentages are relative to the displayed subset, not the full
	// column. With a truncated table they exclude the long tail; that
	// approximation is intentional and documented.
	counts := make([]float64, len(st.FrequencyTable))
	for i, e := range st.FrequencyTable {
		counts[i] = float64(e.Count)
	}
	total := floats.Sum(counts)

	for i, e := range st.FrequencyTable {
		pct := 0.0
		if total > 0 {
			pct = counts[i] / total * 100
		}
		fmt.Fprintf(b, "      '%s': %d (%.1f%%)\n", e.Value, e.Count, pct)
	}
}
