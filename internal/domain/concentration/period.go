package concentration

import (
	"sort"

	"github.com/diillson/investment-analyzer-go/internal/shared/parse"
)

// sortPeriods orders period keys by their natural order: numeric when every key is a
// number, chronological when every key is a date, lexicographic otherwise.
func sortPeriods(periods []string) {
	if allMatch(periods, func(s string) bool { _, ok := parse.Number(s); return ok }) {
		sort.SliceStable(periods, func(i, j int) bool {
			a, _ := parse.Number(periods[i])
			b, _ := parse.Number(periods[j])
			return a.LessThan(b)
		})
		return
	}
	if allMatch(periods, func(s string) bool { _, ok := parse.Time(s); return ok }) {
		sort.SliceStable(periods, func(i, j int) bool {
			a, _ := parse.Time(periods[i])
			b, _ := parse.Time(periods[j])
			return a.Before(b)
		})
		return
	}
	sort.Strings(periods)
}

func allMatch(values []string, fn func(string) bool) bool {
	for _, v := range values {
		if !fn(v) {
			return false
		}
	}
	return true
}
