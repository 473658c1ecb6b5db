package output

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the full assessment, step by step
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer

	title := "CHILD SUPPORT ASSESSMENT"
	if report.Scenario != "" {
		title += ": " + report.Scenario
	}
	fmt.Fprintln(&buf, TitleStyle.Render(title))
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "Assessment year: %s\n", report.Year)

	res := report.Result
	if res != nil {
		fmt.Fprintf(&buf, "Formula:         %s\n", res.Formula)
		if res.Formula == domain.FormulaStandard {
			writeIncomes(&buf, res)
			writeCost(&buf, res)
			writeChildren(&buf, res)
			writeRates(&buf, res)
		}
	}
	if alt := report.alternate(); alt != nil {
		writeAlternate(&buf, alt)
	}
	if res != nil {
		writePayment(&buf, res)
	}

	return buf.Bytes(), nil
}

func row(w io.Writer, label string, values ...string) {
	cells := make([]string, 0, len(values)+1)
	cells = append(cells, LabelStyle.Render(label))
	for _, v := range values {
		cells = append(cells, ValueStyle.Render(v))
	}
	fmt.Fprintln(w, strings.Join(cells, ""))
}

// textRow prints a label followed by free text that may exceed a value cell
func textRow(w io.Writer, label, text string) {
	fmt.Fprintln(w, LabelStyle.Render(label)+text)
}

func section(w io.Writer, name string) {
	fmt.Fprintln(w, SectionStyle.Render(name))
}

func writeIncomes(w io.Writer, res *domain.CalculationResult) {
	section(w, "INCOMES")
	fmt.Fprintln(w, LabelStyle.Render("")+HeaderStyle.Render("Parent A")+HeaderStyle.Render("Parent B"))

	a, b := res.IncomeA, res.IncomeB
	row(w, "Adjusted taxable income", FormatCurrency(a.ATI), FormatCurrency(b.ATI))
	row(w, "Self-support amount", FormatCurrency(res.Constants.SSA), FormatCurrency(res.Constants.SSA))
	row(w, "Relevant dependents", FormatCurrency(a.RelevantDependentDed), FormatCurrency(b.RelevantDependentDed))
	row(w, "Multi-case allowance", FormatCurrency(a.MultiCaseAllowance), FormatCurrency(b.MultiCaseAllowance))
	row(w, "Child support income", FormatCurrency(a.CSI), FormatCurrency(b.CSI))
	row(w, "Income percentage", FormatPercentage(a.IncomePerc), FormatPercentage(b.IncomePerc))
	row(w, "Income support", yesNo(a.IncomeSupport), yesNo(b.IncomeSupport))
	row(w, "Combined child support income", FormatCurrency(res.CCSI))
}

func writeCost(w io.Writer, res *domain.CalculationResult) {
	section(w, "COST OF CHILDREN")
	if res.AssessableCount == 0 {
		fmt.Fprintln(w, NoteStyle.Render("No children under 18: nothing to assess"))
		return
	}
	row(w, "Assessable children", strconv.Itoa(res.AssessableCount))
	textRow(w, "Age group", res.AgeGroup)

	br := res.CostBracket
	upper := "and over"
	if br.MaxIncome != nil {
		upper = "to " + FormatCurrency(*br.MaxIncome)
	}
	textRow(w, "Income bracket", fmt.Sprintf("%s %s", FormatCurrency(br.MinIncome), upper))
	textRow(w, "Bracket", fmt.Sprintf("%s + %s", FormatCurrency(br.Fixed), FormatPercentage(br.Rate.Mul(decimal.NewFromInt(100)))))
	row(w, "Total cost", FormatCurrency(res.TotalCost))
	row(w, "Cost per child", FormatCurrency(res.CostPerChild))
}

func writeChildren(w io.Writer, res *domain.CalculationResult) {
	section(w, "CHILDREN")
	for _, c := range res.Children {
		label := fmt.Sprintf("%s (age %d)", c.Label, c.Age)
		switch {
		case c.Adult:
			fmt.Fprintf(w, "%s\n  %s\n", label, NoteStyle.Render("18 or over: not assessed"))
			continue
		case c.Turning18:
			label += " - turns 18 within the year"
		}
		fmt.Fprintln(w, label)
		fmt.Fprintln(w, LabelStyle.Render("")+HeaderStyle.Render("Parent A")+HeaderStyle.Render("Parent B")+HeaderStyle.Render("Carer"))
		row(w, "  Care", formatCare(c.CareA, c.RoundedCareA), formatCare(c.CareB, c.RoundedCareB), formatCare(c.CareNPC, c.RoundedCareNPC))
		row(w, "  Cost percentage", pct(c.CostPercA), pct(c.CostPercB), pct(c.CostPercNPC))
		row(w, "  Child support percentage", FormatPercentage(c.ChildSupportPercA), FormatPercentage(c.ChildSupportPercB))
		row(w, "  Standard liability", FormatCurrency(c.LiabilityA), FormatCurrency(c.LiabilityB))
		row(w, "  Payable to other parent", FormatCurrency(c.FinalLiabilityA), FormatCurrency(c.FinalLiabilityB))
		if c.LiabilityToNPCA.IsPositive() || c.LiabilityToNPCB.IsPositive() {
			row(w, "  Payable to carer", FormatCurrency(c.LiabilityToNPCA), FormatCurrency(c.LiabilityToNPCB))
		}
		if c.MultiCaseCapA != nil || c.MultiCaseCapB != nil {
			row(w, "  Multi-case cap", capText(c.MultiCaseCapA, c.MultiCaseCapAppliedA), capText(c.MultiCaseCapB, c.MultiCaseCapAppliedB))
		}
	}
}

func writeRates(w io.Writer, res *domain.CalculationResult) {
	section(w, "RATES AND LIMITS")
	textRow(w, "Statutory rate", res.RateApplied)
	if res.Rate.Kind == domain.RateFAR {
		row(w, "Fixed annual rate", FormatCurrency(res.FARA), FormatCurrency(res.FARB))
	}
	if res.Rate.Kind == domain.RateMAR {
		row(w, "Minimum annual rate", FormatCurrency(res.MARA), FormatCurrency(res.MARB))
	}
	if res.MultiCaseCapA || res.MultiCaseCapB {
		row(w, "Multi-case cap applied", yesNo(res.MultiCaseCapA), yesNo(res.MultiCaseCapB))
	}
	for _, note := range []string{res.MARCapNoteA, res.FARCapNoteA, res.MARCapNoteB, res.FARCapNoteB} {
		if note != "" {
			fmt.Fprintln(w, NoteStyle.Render(note))
		}
	}
}

func writeAlternate(w io.Writer, alt *domain.AlternateResult) {
	section(w, strings.ToUpper(alt.Formula.String()))
	textRow(w, "Assessed parent", alt.AvailableParty.Label())
	if alt.Country != "" {
		textRow(w, "Other parent lives in", alt.Country)
	}
	row(w, "Adjusted taxable income", FormatCurrency(alt.ATI))
	row(w, "Preliminary income", FormatCurrency(alt.PreliminaryCSI))
	row(w, "Multi-case allowance", FormatCurrency(alt.Allowance))
	row(w, "Child support income", FormatCurrency(alt.CSI))
	if alt.Formula == domain.Formula5 {
		row(w, "Doubled income", FormatCurrency(alt.AssessedIncome))
	}
	row(w, "Cost of children", FormatCurrency(alt.Cost))
	row(w, "Care", fmt.Sprintf("%d%%", alt.RoundedCare))
	row(w, "Cost percentage", pct(alt.CostPerc))
	row(w, "Less cost share", FormatCurrency(alt.CostShare))
	if alt.Formula == domain.Formula5 {
		row(w, "Rate before halving", FormatCurrency(alt.RateBefore))
		row(w, "Rate after halving", FormatCurrency(alt.RateAfter))
	}
	if alt.MultiCaseCap != nil {
		row(w, "Multi-case cap", capText(alt.MultiCaseCap, alt.CapApplied))
	}
	row(w, "Annual rate", FormatCurrency(alt.AnnualRate))
	row(w, "Monthly", FormatCurrency(alt.Monthly))
	row(w, "Fortnightly", FormatCurrency(alt.Fortnightly))
	if alt.PaymentCarer1 != nil && alt.PaymentCarer2 != nil {
		row(w, "Carer 1", FormatCurrency(*alt.PaymentCarer1))
		row(w, "Carer 2", FormatCurrency(*alt.PaymentCarer2))
	}
}

func writePayment(w io.Writer, res *domain.CalculationResult) {
	section(w, "PAYMENT")
	fmt.Fprintln(w, PaymentStyle.Render(PaymentSummary(res)))
	if !res.FinalPayment.IsZero() {
		row(w, "Monthly", FormatCurrency(res.MonthlyPayment))
		row(w, "Fortnightly", FormatCurrency(res.FortnightPayment))
	}
	if res.Formula == domain.FormulaStandard && res.PaymentToNPC.IsPositive() {
		row(w, "Paid to non-parent carer", FormatCurrency(res.PaymentToNPC))
		if res.PaymentToNPC1 != nil && res.PaymentToNPC2 != nil {
			row(w, "  Carer 1", FormatCurrency(*res.PaymentToNPC1))
			row(w, "  Carer 2", FormatCurrency(*res.PaymentToNPC2))
		}
	}
	textRow(w, "Parent A role", strings.ReplaceAll(string(res.PayerRole), "_", " "))
}

// PaymentSummary describes who pays whom in one sentence
func PaymentSummary(res *domain.CalculationResult) string {
	switch res.Payer {
	case domain.PayerNA:
		return "Both parents pay the minimum annual rate: no payment between parents"
	case domain.PayerNeither:
		return "No payment between parents"
	}
	return fmt.Sprintf("%s pays %s %s a year", res.Payer, res.Receiver, FormatCurrency(res.FinalPayment))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func pct(n int) string {
	return strconv.Itoa(n) + "%"
}

func capText(limit *decimal.Decimal, applied bool) string {
	if limit == nil {
		return "-"
	}
	if applied {
		return FormatCurrency(*limit) + "*"
	}
	return FormatCurrency(*limit)
}
