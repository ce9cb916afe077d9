// Package schema inspects a dataset: column type inference, data quality alerts,
// column suggestions for the concentration analysis and a profile report.
package schema

import (
	"fmt"
	"strings"

	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/diillson/investment-analyzer-go/internal/shared/parse"
	"github.com/samber/lo"
)

const (
	// CategoricalMaxUnique is the distinct-value limit below which a column is categorical.
	CategoricalMaxUnique = 20
	// NullAlertThreshold is the missing-value share above which Validate raises an alert.
	NullAlertThreshold = 0.2
)

// InferType classifies a column from its raw values.
func InferType(values []string) entity.ColumnType {
	present := lo.Reject(values, func(v string, _ int) bool { return parse.IsEmpty(v) })
	if len(present) > 0 {
		if lo.EveryBy(present, func(v string) bool { _, ok := parse.Number(v); return ok }) {
			return entity.ColumnNumeric
		}
		if lo.EveryBy(present, func(v string) bool { _, ok := parse.Time(v); return ok }) {
			return entity.ColumnTime
		}
	}
	if len(lo.Uniq(present)) < CategoricalMaxUnique {
		return entity.ColumnCategorical
	}
	return entity.ColumnText
}

// Infer returns one ColumnSchema per dataset column.
func Infer(ds entity.Dataset) []entity.ColumnSchema {
	out := make([]entity.ColumnSchema, len(ds.Columns))
	for i, name := range ds.Columns {
		values := ds.ColumnValues(i)
		present := lo.Reject(values, func(v string, _ int) bool { return parse.IsEmpty(v) })
		s := entity.ColumnSchema{
			Column: name,
			Type:   InferType(values),
			Unique: len(lo.Uniq(present)),
		}
		if len(values) > 0 {
			s.NullPct = float64(len(values)-len(present)) / float64(len(values))
		}
		out[i] = s
	}
	return out
}

// Validate returns a human-readable alert for every column with too many missing values.
func Validate(schemas []entity.ColumnSchema) []string {
	var alerts []string
	for _, s := range schemas {
		if s.NullPct > NullAlertThreshold {
			alerts = append(alerts, fmt.Sprintf("Column '%s' has high null percentage: %.1f%%", s.Column, s.NullPct*100))
		}
	}
	return alerts
}

// Suggest lists candidate time, categorical and numeric columns.
// A threshold <= 0 uses the default of 25 distinct values.
func Suggest(ds entity.Dataset, threshold int) entity.ColumnSuggestion {
	if threshold <= 0 {
		threshold = 25
	}
	schemas := Infer(ds)

	isTime := func(s entity.ColumnSchema) bool {
		name := strings.ToLower(s.Column)
		return strings.Contains(name, "date") ||
			strings.Contains(name, "year") ||
			strings.Contains(name, "month") ||
			s.Type == entity.ColumnTime
	}
	column := func(s entity.ColumnSchema, _ int) string { return s.Column }

	timeCols := lo.Filter(schemas, func(s entity.ColumnSchema, _ int) bool { return isTime(s) })
	categorical := lo.Filter(schemas, func(s entity.ColumnSchema, _ int) bool {
		return !isTime(s) && (s.Type != entity.ColumnNumeric || s.Unique < threshold)
	})
	numeric := lo.Filter(schemas, func(s entity.ColumnSchema, _ int) bool {
		return !isTime(s) && s.Type == entity.ColumnNumeric
	})

	return entity.ColumnSuggestion{
		Time:        lo.Map(timeCols, column),
		Categorical: lo.Map(categorical, column),
		Numeric:     lo.Map(numeric, column),
	}
}
