package calculation

import (
	"github.com/rgehrsitz/csacalc/internal/care"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// newChildResult converts a child's care into rounded and cost percentages
// and derives each parent's child support percentage.
func newChildResult(i int, c domain.Child, npcEnabled bool, incA, incB domain.PartyIncome, costPerChild decimal.Decimal) domain.ChildResult {
	careNPC := decimal.Zero
	if npcEnabled {
		careNPC = c.CareNPC
	}
	pct, _ := care.Percentages(c.Period, c.CareA, c.CareB, careNPC)

	r := domain.ChildResult{
		Label:     c.Label(i),
		Age:       c.Age,
		Adult:     c.IsAdult(),
		Turning18: c.Age == domain.AdultAge-1,
		CareA:     pct[0],
		CareB:     pct[1],
		CareNPC:   pct[2],
	}
	r.RoundedCareA = care.Round(pct[0])
	r.RoundedCareB = care.Round(pct[1])
	r.RoundedCareNPC = care.Round(pct[2])
	r.CostPercA = care.CostPercentage(r.RoundedCareA)
	r.CostPercB = care.CostPercentage(r.RoundedCareB)
	r.CostPercNPC = care.CostPercentage(r.RoundedCareNPC)

	if r.Adult {
		return r
	}
	r.CostPerChild = costPerChild
	r.ChildSupportPercA = incA.IncomePerc.Sub(decimal.NewFromInt(int64(r.CostPercA)))
	r.ChildSupportPercB = incB.IncomePerc.Sub(decimal.NewFromInt(int64(r.CostPercB)))
	return r
}

func withLiability(r domain.ChildResult, p domain.Party, raw, final, toNPC decimal.Decimal) domain.ChildResult {
	if p == domain.ParentB {
		r.LiabilityB = raw
	} else {
		r.LiabilityA = raw
	}
	return r.WithFinal(p, final, toNPC)
}

// assignLiability applies the standard formula to one child. Without a
// non-parent carer holding shared care, the parent with the higher positive
// percentage pays the other parent, provided the other parent has shared
// care. Otherwise the carer is paid as well, possibly alongside a parent with
// shared care and a negative percentage.
func assignLiability(r domain.ChildResult, npcEnabled bool) domain.ChildResult {
	if r.Adult {
		return r
	}
	owed := func(pct decimal.Decimal) decimal.Decimal {
		return pct.Div(hundred).Mul(r.CostPerChild)
	}
	csA, csB := r.ChildSupportPercA, r.ChildSupportPercB

	if !npcEnabled || r.RoundedCareNPC < care.SharedCare {
		switch {
		case csA.IsPositive() && csA.GreaterThan(csB) && r.RoundedCareB >= care.SharedCare:
			amt := owed(csA)
			return withLiability(r, domain.ParentA, amt, amt, decimal.Zero)
		case csB.IsPositive() && csB.GreaterThan(csA) && r.RoundedCareA >= care.SharedCare:
			amt := owed(csB)
			return withLiability(r, domain.ParentB, amt, amt, decimal.Zero)
		}
		return r
	}

	if csA.IsPositive() && csB.IsPositive() {
		r = withLiability(r, domain.ParentA, owed(csA), decimal.Zero, owed(csA))
		return withLiability(r, domain.ParentB, owed(csB), decimal.Zero, owed(csB))
	}

	for _, payer := range []domain.Party{domain.ParentA, domain.ParentB} {
		cs := r.ChildSupportPerc(payer)
		if !cs.IsPositive() {
			continue
		}
		raw := owed(cs)
		other := payer.Other()
		if r.RoundedCare(other) < care.SharedCare {
			return withLiability(r, payer, raw, decimal.Zero, raw)
		}
		// The other parent's negative percentage is met first; the carer
		// receives the rest.
		toParent := decimal.Min(owed(r.ChildSupportPerc(other).Abs()), raw)
		return withLiability(r, payer, raw, toParent, decimal.Max(decimal.Zero, raw.Sub(toParent)))
	}
	return r
}
