package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCurrency formats a decimal as dollars and cents with thousands
// separators, e.g. "$12,617.85" or "-$40.00"
func FormatCurrency(amount decimal.Decimal) string {
	a := amount.Round(2)
	s := printer.Sprintf("%.2f", a.Abs().InexactFloat64())
	if a.IsNegative() {
		return "-$" + s
	}
	return "$" + s
}

// FormatPercentage formats a decimal as a percentage with two places
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// formatCare shows an exact care percentage next to its rounded value
func formatCare(pct decimal.Decimal, rounded int) string {
	return printer.Sprintf("%s%% (%d%%)", pct.StringFixed(2), rounded)
}
