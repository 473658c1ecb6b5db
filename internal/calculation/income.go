package calculation

import (
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Representative ages used to price relevant dependents
const (
	dependentAgeUnder13 = 6
	dependentAgeOver13  = 14
)

// partyIncome works one parent from adjusted taxable income through to child
// support income. ownAssessable is the number of assessable children in this
// case, needed for the multi-case allowance.
func (a *assessment) partyIncome(fin domain.PartyFinancials, ownAssessable int, support bool) (domain.PartyIncome, error) {
	prelim := decimal.Max(decimal.Zero, fin.Income.Sub(a.constants.SSA))

	deduction, err := a.relevantDependentDeduction(fin.RelevantDependents, prelim)
	if err != nil {
		return domain.PartyIncome{}, err
	}
	allowance, err := a.multiCaseAllowance(prelim, ownAssessable, fin.OtherCaseChildren)
	if err != nil {
		return domain.PartyIncome{}, err
	}

	capBase := decimal.Max(decimal.Zero, prelim.Sub(deduction))
	return domain.PartyIncome{
		ATI:                  fin.Income,
		PreliminaryCSI:       prelim,
		RelevantDependentDed: deduction,
		MultiCaseAllowance:   allowance,
		CapBaseCSI:           capBase,
		CSI:                  decimal.Max(decimal.Zero, capBase.Sub(allowance)),
		IncomeSupport:        support,
	}, nil
}

// relevantDependentDeduction prices a parent's dependents outside the case as
// zero-care children at the parent's own income.
func (a *assessment) relevantDependentDeduction(deps domain.RelevantDependents, income decimal.Decimal) (decimal.Decimal, error) {
	if deps.Total() == 0 {
		return decimal.Zero, nil
	}
	ages := make([]int, 0, deps.Total())
	for range deps.Under13 {
		ages = append(ages, dependentAgeUnder13)
	}
	for range deps.Over13 {
		ages = append(ages, dependentAgeOver13)
	}
	c, err := a.cost(ages, income)
	if err != nil {
		return decimal.Zero, err
	}
	return c.Total, nil
}

// incomePercentages fills in each parent's share of the combined income and
// returns the combined figure. Parent B's share is the complement of A's so
// the pair always sums to exactly 100.
func incomePercentages(incA, incB *domain.PartyIncome) decimal.Decimal {
	ccsi := incA.CSI.Add(incB.CSI)
	if !ccsi.IsPositive() {
		incA.IncomePerc = decimal.Zero
		incB.IncomePerc = decimal.Zero
		return ccsi
	}
	incA.IncomePerc = incA.CSI.Div(ccsi).Mul(hundred)
	incB.IncomePerc = hundred.Sub(incA.IncomePerc)
	return ccsi
}
