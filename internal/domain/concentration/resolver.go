package concentration

import (
	"math"
	"sync"

	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Resolve finds, for every bucket and period, the smallest group of top-ranked
// categories whose combined value reaches the bucket fraction of the period total.
//
// Each period is scanned from the highest rank down with topSum(r) = total - cum(r-1).
// The category count only grows when topSum changes, so zero-valued ranks are never
// counted. A period whose total is zero resolves every bucket to value 0 and count 0.
func Resolve(cm entity.CumulativeMatrix, buckets []entity.Bucket) (entity.BucketResult, error) {
	if err := ValidateBuckets(buckets); err != nil {
		return entity.BucketResult{}, err
	}

	nb, np := len(buckets), len(cm.Values)
	res := entity.BucketResult{
		Periods:       cm.Periods,
		Buckets:       append([]entity.Bucket(nil), buckets...),
		Totals:        cm.Totals(),
		RequiredValue: make([][]float64, nb),
		RequiredCount: make([][]int, nb),
	}
	for b := 0; b < nb; b++ {
		res.RequiredValue[b] = make([]float64, np)
		res.RequiredCount[b] = make([]int, np)
	}

	// Periods are independent; each goroutine writes only its own column.
	var wg sync.WaitGroup
	for p := range cm.Values {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			values, counts := resolvePeriod(cm.Values[p], buckets)
			for b := 0; b < nb; b++ {
				res.RequiredValue[b][p] = values[b]
				res.RequiredCount[b][p] = counts[b]
			}
		}(p)
	}
	wg.Wait()

	return res, nil
}

func resolvePeriod(cumValues []float64, buckets []entity.Bucket) ([]float64, []int) {
	values := make([]float64, len(buckets))
	counts := make([]int, len(buckets))
	if len(cumValues) == 0 {
		return values, counts
	}

	// Thresholds are compared in decimal: 0.55 * 100 must be exactly 55.
	cum := make([]decimal.Decimal, len(cumValues))
	for r, v := range cumValues {
		cum[r] = decimal.NewFromFloat(v)
	}
	total := cum[len(cum)-1]
	if total.IsZero() {
		return values, counts
	}

	targets := make([]decimal.Decimal, len(buckets))
	for i, b := range buckets {
		targets[i] = decimal.NewFromFloat(b.Fraction).Mul(total)
	}
	resolved := make([]bool, len(buckets))
	remaining := len(buckets)

	topSum := decimal.Zero
	count := 0
	for r := len(cum) - 1; r >= 0 && remaining > 0; r-- {
		below := decimal.Zero
		if r > 0 {
			below = cum[r-1]
		}
		next := total.Sub(below)
		if !next.Equal(topSum) {
			count++
			topSum = next
		}
		for i := range buckets {
			if !resolved[i] && topSum.GreaterThanOrEqual(targets[i]) {
				values[i], counts[i] = topSum.InexactFloat64(), count
				resolved[i] = true
				remaining--
			}
		}
	}

	// Only reachable with negative values: fall back to the whole period.
	for i := range buckets {
		if !resolved[i] {
			values[i], counts[i] = total.InexactFloat64(), count
		}
	}
	return values, counts
}

// ValidateBuckets rejects an empty list and any fraction outside (0, 1].
func ValidateBuckets(buckets []entity.Bucket) error {
	if len(buckets) == 0 {
		return ErrNoBuckets
	}
	for _, b := range buckets {
		if math.IsNaN(b.Fraction) || b.Fraction <= 0 || b.Fraction > 1 {
			return &BucketError{Fraction: b.Fraction}
		}
	}
	return nil
}

// NewBuckets pairs fractions with labels. Without labels they are derived from the fractions.
func NewBuckets(fractions []float64, labels []string) ([]entity.Bucket, error) {
	if len(labels) > 0 && len(labels) != len(fractions) {
		return nil, ErrLabelMismatch
	}
	buckets := make([]entity.Bucket, len(fractions))
	for i, q := range fractions {
		label := entity.BucketLabel(q)
		if len(labels) > 0 {
			label = labels[i]
		}
		buckets[i] = entity.Bucket{Fraction: q, Label: label}
	}
	if err := ValidateBuckets(buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}
