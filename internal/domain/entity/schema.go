package entity

import (
	"fmt"
	"strings"
)

// ColumnType is the semantic type inferred for a column.
type ColumnType string

const (
	ColumnTime        ColumnType = "time"
	ColumnCategorical ColumnType = "categorical"
	ColumnNumeric     ColumnType = "numeric"
	ColumnText        ColumnType = "text"
)

// ColumnSchema summarizes one column of a dataset.
type ColumnSchema struct {
	Column  string     `json:"column"`
	Type    ColumnType `json:"type"`
	NullPct float64    `json:"null_pct"`
	Unique  int        `json:"n_unique"`
}

// ColumnSuggestion lists the candidate columns for each role of the analysis.
type ColumnSuggestion struct {
	Time        []string `json:"time"`
	Categorical []string `json:"categorical"`
	Numeric     []string `json:"numeric"`
}

// ValueCount is a categorical value and how often it occurs.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ColumnProfile holds the statistics of one column in a DatasetProfile.
type ColumnProfile struct {
	ColumnSchema
	NonNull   int          `json:"non_null"`
	Missing   int          `json:"missing"`
	Min       float64      `json:"min,omitempty"`
	Max       float64      `json:"max,omitempty"`
	Mean      float64      `json:"mean,omitempty"`
	TopValues []ValueCount `json:"top_values,omitempty"`
}

// DatasetProfile is the data overview report of a dataset.
type DatasetProfile struct {
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Header  []string        `json:"header"`
	Columns []ColumnProfile `json:"columns"`
	Alerts  []string        `json:"alerts"`
	Preview [][]string      `json:"preview"`
}

// Markdown renders the profile as a markdown document.
func (p DatasetProfile) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Data Overview: %s\n\n", mdSafe(p.Name))
	fmt.Fprintf(&b, "- Rows: %d\n- Columns: %d\n\n", p.Rows, len(p.Columns))

	if len(p.Alerts) > 0 {
		b.WriteString("## Alerts\n\n")
		for _, a := range p.Alerts {
			fmt.Fprintf(&b, "- %s\n", mdSafe(a))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Columns\n\n")
	b.WriteString("| Column | Type | Non-null | Missing | Unique | Details |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, c := range p.Columns {
		fmt.Fprintf(&b, "| %s | %s | %d | %.1f%% | %d | %s |\n",
			mdSafe(c.Column), c.Type, c.NonNull, c.NullPct*100, c.Unique, mdSafe(c.details()))
	}

	if len(p.Preview) > 0 && len(p.Header) > 0 {
		b.WriteString("\n## Preview\n\n")
		b.WriteString("| " + strings.Join(mdSafeAll(p.Header), " | ") + " |\n")
		b.WriteString("|" + strings.Repeat("---|", len(p.Header)) + "\n")
		for _, row := range p.Preview {
			b.WriteString("| " + strings.Join(mdSafeAll(row), " | ") + " |\n")
		}
	}
	return b.String()
}

func (c ColumnProfile) details() string {
	switch c.Type {
	case ColumnNumeric:
		if c.NonNull == 0 {
			return ""
		}
		return fmt.Sprintf("min %.2f, max %.2f, mean %.2f", c.Min, c.Max, c.Mean)
	case ColumnCategorical:
		parts := make([]string, 0, len(c.TopValues))
		for _, v := range c.TopValues {
			parts = append(parts, fmt.Sprintf("%s (%d)", v.Value, v.Count))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func mdSafe(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}

func mdSafeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = mdSafe(v)
	}
	return out
}
