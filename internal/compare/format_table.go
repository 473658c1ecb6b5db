package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/csacalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("CHILD SUPPORT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	sb.WriteString(fmt.Sprintf("Assessment Year: %s\n", compSet.Year))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Scenario File: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 24
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Payer",
		numWidth, "Annual",
		numWidth, "Monthly",
		numWidth, "To Carer"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&alt, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Annual Payment:   %s%s (%s%%)\n",
				tf.deltaSymbol(alt.PaymentDiffFromBase),
				output.FormatCurrency(alt.PaymentDiffFromBase.Abs()),
				alt.PaymentPctFromBase.StringFixed(1)))

			if !alt.PositionDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Parent A Pays:    %s%s a year\n",
					tf.deltaSymbol(alt.PositionDiffFromBase),
					output.FormatCurrency(alt.PositionDiffFromBase.Abs())))
			}

			if alt.PayerChanged {
				sb.WriteString(fmt.Sprintf("  Payer:            %s (was %s)\n", alt.Payer, compSet.BaseResult.Payer))
			}
			if alt.RateChanged {
				sb.WriteString(fmt.Sprintf("  Rate:             %s (was %s)\n", alt.RateApplied, compSet.BaseResult.RateApplied))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Highlights) > 0 {
		sb.WriteString("\nHIGHLIGHTS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, h := range compSet.Highlights {
			sb.WriteString(fmt.Sprintf("• %s\n", h))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %-*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.truncate(result.Payer, numWidth),
		numWidth, output.FormatCurrency(result.AnnualPayment),
		numWidth, output.FormatCurrency(result.MonthlyPayment),
		numWidth, output.FormatCurrency(result.PaymentToNPC))
}

// deltaSymbol returns a + or - sign for a change
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s %s | ", compSet.BaseScenarioName, output.FormatCurrency(compSet.BaseResult.AnnualPayment)))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.PaymentDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.PaymentDiffFromBase) + output.FormatCurrency(alt.PaymentDiffFromBase.Abs())
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
