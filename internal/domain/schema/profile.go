package schema

import (
	"math"
	"sort"

	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/diillson/investment-analyzer-go/internal/shared/parse"
	"github.com/samber/lo"
)

// DefaultPreviewRows matches the preview size of the data overview page.
const DefaultPreviewRows = 30

const topValuesLimit = 5

// Profile builds the data overview report of ds.
func Profile(ds entity.Dataset, previewRows int) entity.DatasetProfile {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	schemas := Infer(ds)
	p := entity.DatasetProfile{
		Name:    ds.Name,
		Rows:    ds.Len(),
		Header:  ds.Columns,
		Columns: make([]entity.ColumnProfile, len(schemas)),
		Alerts:  Validate(schemas),
		Preview: ds.Head(previewRows),
	}

	for i, s := range schemas {
		values := ds.ColumnValues(i)
		present := lo.Reject(values, func(v string, _ int) bool { return parse.IsEmpty(v) })
		cp := entity.ColumnProfile{
			ColumnSchema: s,
			NonNull:      len(present),
			Missing:      len(values) - len(present),
		}
		switch s.Type {
		case entity.ColumnNumeric:
			cp.Min, cp.Max, cp.Mean = numericStats(present)
		case entity.ColumnCategorical:
			cp.TopValues = topValues(present, topValuesLimit)
		}
		p.Columns[i] = cp
	}
	return p
}

func numericStats(values []string) (min, max, mean float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	min, max = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range values {
		f, _ := parse.Float(v)
		min = math.Min(min, f)
		max = math.Max(max, f)
		sum += f
	}
	return min, max, sum / float64(len(values))
}

// topValues returns the n most frequent values, ties broken alphabetically.
func topValues(values []string, n int) []entity.ValueCount {
	counts := lo.CountValues(values)
	out := make([]entity.ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, entity.ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
