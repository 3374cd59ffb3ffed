package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"parqsum/domain/core"
	"parqsum/domain/summary"
	"parqsum/internal/logging"
	"parqsum/ports"
)

// SummarizerService classifies and summarizes every column of a table,
// producing one ColumnSummary per column in table column order.
type SummarizerService struct {
	threshold uint
	log       *logging.Logger
}

// NewSummarizerService creates a summarizer with the given categorical
// threshold.
func NewSummarizerService(threshold uint, log *logging.Logger) *SummarizerService {
	if log == nil {
		log = logging.NewDefault()
	}
	return &SummarizerService{threshold: threshold, log: log}
}

// Summarize processes columns one at a time in table order. Any fatal error
// (column lookup, cardinality probe) aborts the whole run; no partial result
// is returned.
func (s *SummarizerService) Summarize(ctx context.Context, tbl ports.Table) ([]summary.ColumnSummary, error) {
	names := tbl.ColumnNames()
	summaries := make([]summary.ColumnSummary, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cs, err := s.summarizeColumn(tbl, name)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, cs)
	}
	return summaries, nil
}

// SummarizeParallel summarizes columns concurrently with at most workers
// in flight. Results land in an index-ordered buffer, so output order is
// table column order regardless of completion order. Semantics otherwise
// match Summarize: the first fatal error cancels the group and fails the
// run.
func (s *SummarizerService) SummarizeParallel(ctx context.Context, tbl ports.Table, workers int) ([]summary.ColumnSummary, error) {
	if workers < 1 {
		workers = 1
	}
	names := tbl.ColumnNames()
	summaries := make([]summary.ColumnSummary, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cs, err := s.summarizeColumn(tbl, name)
			if err != nil {
				return err
			}
			summaries[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// summarizeColumn runs the classifier and the matching statistics path for
// one column.
func (s *SummarizerService) summarizeColumn(tbl ports.Table, name string) (summary.ColumnSummary, error) {
	col, err := tbl.Column(name)
	if err != nil {
		if core.IsFatal(err) {
			return summary.ColumnSummary{}, err
		}
		return summary.ColumnSummary{}, core.NewColumnLookupError(name, err)
	}

	decision, err := summary.Classify(name, col.DType(), col.UniqueCount, s.threshold)
	if err != nil {
		return summary.ColumnSummary{}, err
	}

	cs := summary.ColumnSummary{
		Name:     name,
		DataType: string(col.DType()),
	}

	switch decision.Kind {
	case summary.DecisionNumerical:
		cs.Numerical = s.ComputeNumerical(col)
	case summary.DecisionCategorical:
		cat, err := s.ComputeCategorical(col)
		if err != nil {
			return summary.ColumnSummary{}, err
		}
		cs.Categorical = cat
	case summary.DecisionCategoricalOverflow:
		// Cardinality already exceeds what a frequency table can usefully
		// show; report the count alone.
		cs.Categorical = &summary.CategoricalStats{
			TotalUnique: decision.UniqueCount,
			ShowingTopN: false,
		}
	}
	return cs, nil
}
