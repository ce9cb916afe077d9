// Package concentration answers, per period, how many top categories are needed to
// reach a given fraction of the period total, and what that top group adds up to.
//
// The pipeline is Aggregate -> Cumulate -> Resolve; Analyze runs it end to end.
package concentration

import (
	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
)

// Analysis keeps every stage of a run so callers can inspect intermediate matrices.
type Analysis struct {
	Ranks      entity.RankMatrix
	Cumulative entity.CumulativeMatrix
	Result     entity.BucketResult
}

// Analyze validates the buckets, then aggregates, accumulates and resolves the dataset.
// An empty bucket list means the default Top 10/20/50% buckets.
func Analyze(req entity.AnalysisRequest) (Analysis, error) {
	fractions := req.Buckets
	labels := req.Labels
	if len(fractions) == 0 {
		fractions = entity.DefaultFractions
	}
	buckets, err := NewBuckets(fractions, labels)
	if err != nil {
		return Analysis{}, err
	}

	ranks, err := Aggregate(req.Dataset, req.Columns)
	if err != nil {
		return Analysis{}, err
	}
	cum := Cumulate(ranks)
	result, err := Resolve(cum, buckets)
	if err != nil {
		return Analysis{}, err
	}
	return Analysis{Ranks: ranks, Cumulative: cum, Result: result}, nil
}

// Summarize returns the total, category count and Herfindahl-Hirschman index of each period.
func Summarize(m entity.RankMatrix) []entity.PeriodSummary {
	totals := m.Totals()
	out := make([]entity.PeriodSummary, len(m.Periods))
	for p, period := range m.Periods {
		s := entity.PeriodSummary{Period: period, Total: totals[p], Categories: m.Categories[p]}
		if totals[p] != 0 {
			for _, v := range m.Values[p] {
				share := v / totals[p]
				s.HHI += share * share
			}
		}
		out[p] = s
	}
	return out
}
