// Package parse converts raw dataset cells into numbers and dates.
package parse

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Matches "1,234" or "-1,234,567.89" style thousands grouping.
var groupedNumber = regexp.MustCompile(`^-?\d{1,3}(,\d{3})+(\.\d+)?$`)

// TimeLayouts are the date formats recognised in time and period columns.
var TimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01",
	"Jan 2006",
	"January 2006",
}

// Number parses a cell as a decimal. Empty cells are not numbers.
func Number(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	if groupedNumber.MatchString(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Float parses a cell as a float64.
func Float(s string) (float64, bool) {
	d, ok := Number(s)
	if !ok {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// Time parses a cell with the first matching layout of TimeLayouts.
func Time(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range TimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsEmpty reports whether a cell holds no value.
func IsEmpty(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "null", "n/a", "na":
		return true
	}
	return false
}
