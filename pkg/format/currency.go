// Package format renders numbers for people to read.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return printer.Sprint(amount)
	}
	if amount < 0 {
		return "-$" + printer.Sprintf("%.2f", math.Abs(amount))
	}
	return "$" + printer.Sprintf("%.2f", amount)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// Percent renders a percentage with two decimals, e.g. "12.50%".
func Percent(pct float64) string {
	return printer.Sprintf("%.2f%%", pct)
}

// Years renders a duration in years, dropping the fraction when it is whole.
func Years(years float64) string {
	if years == math.Trunc(years) {
		return printer.Sprintf("%d years", int(years))
	}
	return printer.Sprintf("%.2f years", years)
}
