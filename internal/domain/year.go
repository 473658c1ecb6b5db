package domain

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// AssessmentYear identifies a statutory assessment year
type AssessmentYear int

func (y AssessmentYear) String() string {
	return strconv.Itoa(int(y))
}

// YearConstants are the statutory figures for one assessment year
type YearConstants struct {
	Year   AssessmentYear  `json:"year"`
	SSA    decimal.Decimal `json:"ssa"`
	MAR    decimal.Decimal `json:"mar"`
	FAR    decimal.Decimal `json:"far"`
	MaxPPS decimal.Decimal `json:"maxPPS"`
}

// CostBracket is one band of a cost-of-children table. A nil MaxIncome marks
// the unbounded top bracket.
type CostBracket struct {
	MinIncome decimal.Decimal  `json:"minIncome"`
	MaxIncome *decimal.Decimal `json:"maxIncome"`
	Fixed     decimal.Decimal  `json:"fixed"`
	Rate      decimal.Decimal  `json:"rate"`
}

// Contains reports whether income falls inside the bracket
func (b CostBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.MinIncome) {
		return false
	}
	return b.MaxIncome == nil || income.LessThanOrEqual(*b.MaxIncome)
}

// InBracket returns the part of income that falls inside the bracket
func (b CostBracket) InBracket(income decimal.Decimal) decimal.Decimal {
	top := income
	if b.MaxIncome != nil && top.GreaterThan(*b.MaxIncome) {
		top = *b.MaxIncome
	}
	return decimal.Max(decimal.Zero, top.Sub(b.MinIncome))
}

// Cost returns fixed + rate x (income - min), with income clamped to the bracket
func (b CostBracket) Cost(income decimal.Decimal) decimal.Decimal {
	return b.Fixed.Add(b.Rate.Mul(b.InBracket(income)))
}

// CostBracketInfo describes the bracket a cost was resolved from
type CostBracketInfo struct {
	MinIncome       decimal.Decimal  `json:"minIncome"`
	MaxIncome       *decimal.Decimal `json:"maxIncome"`
	Fixed           decimal.Decimal  `json:"fixed"`
	Rate            decimal.Decimal  `json:"rate"`
	IncomeInBracket decimal.Decimal  `json:"incomeInBracket"`
}
