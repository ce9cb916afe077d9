package concentration

import (
	"github.com/diillson/investment-analyzer-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Cumulate returns the running sum over rank of every period of m.
// Sums are carried in decimal so the last entry equals the exact period total.
func Cumulate(m entity.RankMatrix) entity.CumulativeMatrix {
	out := entity.CumulativeMatrix{
		Periods: m.Periods,
		Values:  make([][]float64, len(m.Values)),
	}
	for p, col := range m.Values {
		cum := make([]float64, len(col))
		running := decimal.Zero
		for r, v := range col {
			running = running.Add(decimal.NewFromFloat(v))
			cum[r] = running.InexactFloat64()
		}
		out.Values[p] = cum
	}
	return out
}
