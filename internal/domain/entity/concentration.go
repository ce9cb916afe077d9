package entity

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is a target fraction of a period total, e.g. 0.10 for "Top 10%".
type Bucket struct {
	Fraction float64 `json:"fraction"`
	Label    string  `json:"label"`
}

// DefaultFractions are the canonical buckets shown by the analyze command.
var DefaultFractions = []float64{0.10, 0.20, 0.50}

// DefaultBuckets returns the canonical Top 10/20/50% buckets.
func DefaultBuckets() []Bucket {
	buckets := make([]Bucket, len(DefaultFractions))
	for i, q := range DefaultFractions {
		buckets[i] = Bucket{Fraction: q, Label: BucketLabel(q)}
	}
	return buckets
}

// BucketLabel derives "Top {q*100}%" from a fraction.
// The percentage is rounded to 6 decimals before printing so 0.29 renders as "Top 29%".
func BucketLabel(q float64) string {
	pct := math.Round(q*100*1e6) / 1e6
	return "Top " + strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// RankMatrix holds, per period, the aggregated category values sorted ascending.
// Every period vector has the same length; shorter periods are zero-padded at rank 0..k-1.
type RankMatrix struct {
	Periods    []string    `json:"periods"`
	Values     [][]float64 `json:"values"`     // Values[period][rank]
	Categories []int       `json:"categories"` // distinct categories per period
}

// Ranks returns the number of rank positions (rows) of the matrix.
func (m RankMatrix) Ranks() int {
	if len(m.Values) == 0 {
		return 0
	}
	return len(m.Values[0])
}

// Totals returns the column sum of every period, summed in decimal.
func (m RankMatrix) Totals() []float64 {
	totals := make([]float64, len(m.Values))
	for p, col := range m.Values {
		sum := decimal.Zero
		for _, v := range col {
			sum = sum.Add(decimal.NewFromFloat(v))
		}
		totals[p] = sum.InexactFloat64()
	}
	return totals
}

// CumulativeMatrix is the running sum over rank of a RankMatrix.
type CumulativeMatrix struct {
	Periods []string    `json:"periods"`
	Values  [][]float64 `json:"values"` // Values[period][rank]
}

// Totals returns the last cumulative entry of every period.
func (m CumulativeMatrix) Totals() []float64 {
	totals := make([]float64, len(m.Values))
	for p, col := range m.Values {
		if len(col) > 0 {
			totals[p] = col[len(col)-1]
		}
	}
	return totals
}

// BucketResult carries the required value and the required category count
// for each bucket and period, indexed [bucket][period].
type BucketResult struct {
	Periods       []string    `json:"periods"`
	Buckets       []Bucket    `json:"buckets"`
	Totals        []float64   `json:"totals"`
	RequiredValue [][]float64 `json:"required_value"`
	RequiredCount [][]int     `json:"required_count"`
}

// PeriodValue is one point of a bucket series over time.
type PeriodValue struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// BucketSeries is the transposed, chart-ready view of one bucket.
type BucketSeries struct {
	Label  string        `json:"label"`
	Points []PeriodValue `json:"points"`
}

func (r BucketResult) bucketIndex(label string) int {
	for i, b := range r.Buckets {
		if b.Label == label {
			return i
		}
	}
	return -1
}

func (r BucketResult) periodIndex(period string) int {
	for i, p := range r.Periods {
		if p == period {
			return i
		}
	}
	return -1
}

// Value returns the required value for a bucket label and period.
func (r BucketResult) Value(label, period string) (float64, bool) {
	b, p := r.bucketIndex(label), r.periodIndex(period)
	if b < 0 || p < 0 {
		return 0, false
	}
	return r.RequiredValue[b][p], true
}

// Count returns the required category count for a bucket label and period.
func (r BucketResult) Count(label, period string) (int, bool) {
	b, p := r.bucketIndex(label), r.periodIndex(period)
	if b < 0 || p < 0 {
		return 0, false
	}
	return r.RequiredCount[b][p], true
}

// Series returns the required values transposed per period for the given labels.
// Unknown labels are skipped.
func (r BucketResult) Series(labels ...string) []BucketSeries {
	var series []BucketSeries
	for _, label := range labels {
		b := r.bucketIndex(label)
		if b < 0 {
			continue
		}
		s := BucketSeries{Label: label, Points: make([]PeriodValue, len(r.Periods))}
		for p, period := range r.Periods {
			s.Points[p] = PeriodValue{Period: period, Value: r.RequiredValue[b][p]}
		}
		series = append(series, s)
	}
	return series
}

// AnalysisRequest replaces the UI session state: everything the engine needs, explicitly.
type AnalysisRequest struct {
	Dataset Dataset
	Columns ColumnSelection
	Buckets []float64
	Labels  []string
}

// PeriodSummary complements a BucketResult with per-period figures.
type PeriodSummary struct {
	Period     string  `json:"period"`
	Total      float64 `json:"total"`
	Categories int     `json:"categories"`
	HHI        float64 `json:"hhi"`
}

// ConcentrationReport is what the analyze command renders and exports.
type ConcentrationReport struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"`
	Columns     ColumnSelection `json:"columns"`
	Currency    string          `json:"currency,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Result      BucketResult    `json:"result"`
	Periods     []PeriodSummary `json:"periods"`
}
