package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/csacalc/internal/domain"
)

// CSVFormatter writes one row per child followed by a totals row. Direct
// Formula 5 or 6 reports produce a single row.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{
	"Child", "Age", "Adult",
	"CareA", "CareB", "CareNPC",
	"CostPercA", "CostPercB",
	"ChildSupportPercA", "ChildSupportPercB",
	"LiabilityA", "LiabilityB",
	"FinalA", "FinalB",
	"ToNPCA", "ToNPCB",
	"FARA", "FARB", "MARA", "MARB",
}

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if report.Result == nil || report.Result.Formula != domain.FormulaStandard {
		if err := writeAlternateCSV(w, report); err != nil {
			return nil, err
		}
		w.Flush()
		return buf.Bytes(), w.Error()
	}

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	res := report.Result
	for _, ch := range res.Children {
		row := []string{
			ch.Label,
			strconv.Itoa(ch.Age),
			strconv.FormatBool(ch.Adult),
			ch.CareA.StringFixed(2),
			ch.CareB.StringFixed(2),
			ch.CareNPC.StringFixed(2),
			strconv.Itoa(ch.CostPercA),
			strconv.Itoa(ch.CostPercB),
			ch.ChildSupportPercA.StringFixed(2),
			ch.ChildSupportPercB.StringFixed(2),
			ch.LiabilityA.StringFixed(2),
			ch.LiabilityB.StringFixed(2),
			ch.FinalLiabilityA.StringFixed(2),
			ch.FinalLiabilityB.StringFixed(2),
			ch.LiabilityToNPCA.StringFixed(2),
			ch.LiabilityToNPCB.StringFixed(2),
			strconv.FormatBool(ch.FARAppliedA),
			strconv.FormatBool(ch.FARAppliedB),
			strconv.FormatBool(ch.MARAppliedA),
			strconv.FormatBool(ch.MARAppliedB),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	total := []string{
		"Total", "", "",
		"", "", "",
		"", "",
		res.IncomeA.IncomePerc.StringFixed(2),
		res.IncomeB.IncomePerc.StringFixed(2),
		res.StandardTotalA.StringFixed(2),
		res.StandardTotalB.StringFixed(2),
		res.FinalLiabilityA.StringFixed(2),
		res.FinalLiabilityB.StringFixed(2),
		"", "",
		res.FARA.StringFixed(2),
		res.FARB.StringFixed(2),
		res.MARA.StringFixed(2),
		res.MARB.StringFixed(2),
	}
	if err := w.Write(total); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"Payer", res.Payer, "Receiver", res.Receiver, "Annual", res.FinalPayment.StringFixed(2)}); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeAlternateCSV(w *csv.Writer, report *Report) error {
	header := []string{"Formula", "Party", "ATI", "CSI", "AssessedIncome", "Cost", "CostPerc", "RateBefore", "RateAfter", "AnnualRate", "Carer1", "Carer2"}
	if err := w.Write(header); err != nil {
		return err
	}
	alt := report.alternate()
	if alt == nil {
		return nil
	}
	carer1, carer2 := "", ""
	if alt.PaymentCarer1 != nil && alt.PaymentCarer2 != nil {
		carer1, carer2 = alt.PaymentCarer1.StringFixed(2), alt.PaymentCarer2.StringFixed(2)
	}
	return w.Write([]string{
		strconv.Itoa(int(alt.Formula)),
		string(alt.AvailableParty),
		alt.ATI.StringFixed(2),
		alt.CSI.StringFixed(2),
		alt.AssessedIncome.StringFixed(2),
		alt.Cost.StringFixed(2),
		strconv.Itoa(alt.CostPerc),
		alt.RateBefore.StringFixed(2),
		alt.RateAfter.StringFixed(2),
		alt.AnnualRate.StringFixed(2),
		carer1,
		carer2,
	})
}
