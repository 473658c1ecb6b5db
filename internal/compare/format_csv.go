package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Formula",
		"Payer",
		"Receiver",
		"Annual Payment",
		"Monthly Payment",
		"Fortnightly Payment",
		"Payment to Carer",
		"Rate Applied",
		"Parent A Net Position",
		"Payment Diff from Base",
		"Payment % Change",
		"Position Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Formula.String(),
		result.Payer,
		result.Receiver,
		result.AnnualPayment.StringFixed(2),
		result.MonthlyPayment.StringFixed(2),
		result.FortnightlyPayment.StringFixed(2),
		result.PaymentToNPC.StringFixed(2),
		result.RateApplied,
		result.NetPositionA.StringFixed(2),
		result.PaymentDiffFromBase.StringFixed(2),
		result.PaymentPctFromBase.StringFixed(2),
		result.PositionDiffFromBase.StringFixed(2),
	}
}
