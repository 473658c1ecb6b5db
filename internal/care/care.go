// Package care converts time-share arrangements into rounded care
// percentages and the cost percentages that follow from them.
package care

import (
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Care thresholds that change how a parent is treated
const (
	RegularCare = 14 // below this a parent has less than regular care
	SharedCare  = 35 // receiving parents and carers need at least this
	PrimaryCare = 66 // FAR needs the other party to hold at least this
)

var (
	hundred = decimal.NewFromInt(100)
	fifty   = decimal.NewFromInt(50)

	// Tolerance is half a night per year, as a percentage of the year
	Tolerance = decimal.NewFromInt(50).Div(decimal.NewFromInt(365))
)

// ToPercentage converts a care amount in the given period to a percentage
// of that period. Percent amounts pass through unchanged.
func ToPercentage(amount decimal.Decimal, period domain.CarePeriod) decimal.Decimal {
	days := period.Days()
	if days == 0 {
		return amount
	}
	return amount.Div(decimal.NewFromInt(int64(days))).Mul(hundred)
}

// Round applies the statutory rounding: below 50 rounds down, 50 and above
// rounds up.
func Round(p decimal.Decimal) int {
	if p.LessThan(fifty) {
		return int(p.Floor().IntPart())
	}
	return int(p.Ceil().IntPart())
}

// CostPercentage maps a rounded care percentage onto the cost percentage
// table.
func CostPercentage(rounded int) int {
	switch {
	case rounded <= 13:
		return 0
	case rounded <= 34:
		return 24
	case rounded <= 47:
		return 25 + 2*(rounded-35)
	case rounded <= 52:
		return 50
	case rounded <= 65:
		return 51 + 2*(rounded-53)
	case rounded <= 86:
		return 76
	default:
		return 100
	}
}

// Percentages converts a set of care amounts in one period and returns their
// percentages together with the total.
func Percentages(period domain.CarePeriod, amounts ...decimal.Decimal) ([]decimal.Decimal, decimal.Decimal) {
	out := make([]decimal.Decimal, len(amounts))
	total := decimal.Zero
	for i, a := range amounts {
		out[i] = ToPercentage(a, period)
		total = total.Add(out[i])
	}
	return out, total
}

// Reconciles reports whether a total care percentage accounts for the whole
// period within half a night per year.
func Reconciles(total decimal.Decimal) bool {
	return total.Sub(hundred).Abs().LessThanOrEqual(Tolerance)
}

// MaxForPeriod returns the largest valid care amount for a period
func MaxForPeriod(period domain.CarePeriod) decimal.Decimal {
	if days := period.Days(); days > 0 {
		return decimal.NewFromInt(int64(days))
	}
	return hundred
}
