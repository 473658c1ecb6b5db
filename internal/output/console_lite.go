package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/domain"
)

// ConsoleLiteFormatter prints only who pays whom and how much
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	name := report.Scenario
	if name == "" {
		name = "Assessment"
	}
	fmt.Fprintf(&buf, "%s (%s)\n", name, report.Year)

	if res := report.Result; res != nil {
		switch res.Payer {
		case domain.PayerNA, domain.PayerNeither:
			fmt.Fprintln(&buf, "No payment between parents")
		default:
			fmt.Fprintf(&buf, "%s pays %s: %s/year, %s/month, %s/fortnight\n",
				res.Payer, res.Receiver,
				FormatCurrency(res.FinalPayment),
				FormatCurrency(res.MonthlyPayment),
				FormatCurrency(res.FortnightPayment))
		}
		if res.Formula == domain.FormulaStandard && res.PaymentToNPC.IsPositive() {
			fmt.Fprintf(&buf, "Paid to non-parent carer: %s/year\n", FormatCurrency(res.PaymentToNPC))
		}
		if res.RateApplied != "" && res.RateApplied != string(domain.RateNone) {
			fmt.Fprintf(&buf, "Rate applied: %s\n", res.RateApplied)
		}
		return buf.Bytes(), nil
	}

	if alt := report.alternate(); alt != nil {
		fmt.Fprintf(&buf, "%s: %s pays the carer %s/year\n", alt.Formula, alt.AvailableParty.Label(), FormatCurrency(alt.AnnualRate))
	}
	return buf.Bytes(), nil
}
