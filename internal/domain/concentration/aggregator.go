package concentration

import (
	"sort"
	"strings"

	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/diillson/investment-analyzer-go/internal/shared/parse"
	"github.com/shopspring/decimal"
)

// periodBucket accumulates the category sums of one period in first-appearance order.
type periodBucket struct {
	order []string
	sums  map[string]decimal.Decimal
}

// Aggregate groups the dataset by (category, period), sums the value column and
// ranks each period's sums ascending. Ties keep the order in which the categories
// first appear in the dataset.
func Aggregate(ds entity.Dataset, sel entity.ColumnSelection) (entity.RankMatrix, error) {
	timeIdx, catIdx, valIdx, err := resolveColumns(ds, sel)
	if err != nil {
		return entity.RankMatrix{}, err
	}

	buckets := map[string]*periodBucket{}
	var periods []string

	for i, row := range ds.Rows {
		period := strings.TrimSpace(cell(row, timeIdx))
		category := strings.TrimSpace(cell(row, catIdx))
		if parse.IsEmpty(period) || parse.IsEmpty(category) {
			continue
		}

		raw := cell(row, valIdx)
		value := decimal.Zero
		if !parse.IsEmpty(raw) {
			v, ok := parse.Number(raw)
			if !ok {
				return entity.RankMatrix{}, &ValueError{Column: sel.Value, Row: i + 1, Value: raw}
			}
			value = v
		}

		b, ok := buckets[period]
		if !ok {
			b = &periodBucket{sums: map[string]decimal.Decimal{}}
			buckets[period] = b
			periods = append(periods, period)
		}
		if _, seen := b.sums[category]; !seen {
			b.order = append(b.order, category)
		}
		b.sums[category] = b.sums[category].Add(value)
	}

	sortPeriods(periods)

	ranks := 0
	for _, b := range buckets {
		if len(b.order) > ranks {
			ranks = len(b.order)
		}
	}

	m := entity.RankMatrix{
		Periods:    periods,
		Values:     make([][]float64, len(periods)),
		Categories: make([]int, len(periods)),
	}
	for p, period := range periods {
		b := buckets[period]
		sums := make([]decimal.Decimal, len(b.order))
		for i, c := range b.order {
			sums[i] = b.sums[c]
		}
		sort.SliceStable(sums, func(i, j int) bool { return sums[i].LessThan(sums[j]) })

		// Zero padding goes below the smallest observed value.
		col := make([]float64, ranks)
		offset := ranks - len(sums)
		for i, s := range sums {
			col[offset+i] = s.InexactFloat64()
		}
		m.Values[p] = col
		m.Categories[p] = len(sums)
	}
	return m, nil
}

func resolveColumns(ds entity.Dataset, sel entity.ColumnSelection) (int, int, int, error) {
	idx := make([]int, 3)
	for i, name := range []string{sel.Time, sel.Category, sel.Value} {
		j, ok := ds.ColumnIndex(name)
		if !ok {
			return 0, 0, 0, &ColumnError{Column: name}
		}
		idx[i] = j
	}
	return idx[0], idx[1], idx[2], nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
