// Package format turns analysis figures into display strings.
package format

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Amount formats a value in the given ISO 4217 currency ("1,234.56 €", "$1,234.56").
// Without a currency, or with an unknown one, it falls back to two decimals.
func Amount(value float64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return fmt.Sprintf("%.2f", value)
	}
	if money.GetCurrency(code) == nil {
		return fmt.Sprintf("%.2f %s", value, code)
	}
	return money.NewFromFloat(value, code).Display()
}

// Share formats a fraction as a percentage.
func Share(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}
