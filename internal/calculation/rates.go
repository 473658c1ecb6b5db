package calculation

import (
	"slices"

	"github.com/rgehrsitz/csacalc/internal/care"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// FAR is paid for at most this many children of a parent
const farChildLimit = 3

// marEligible reports whether parent p pays the minimum annual rate: income
// below the self-support amount, on income support, and less than regular
// care of every assessable child.
func marEligible(inc domain.PartyIncome, ssa decimal.Decimal, children []domain.ChildResult, p domain.Party) bool {
	if !inc.IncomeSupport || !inc.ATI.LessThan(ssa) {
		return false
	}
	assessable := 0
	for _, c := range children {
		if c.Adult {
			continue
		}
		assessable++
		if c.RoundedCare(p) >= care.RegularCare {
			return false
		}
	}
	return assessable > 0
}

// farEligible reports whether p pays the fixed annual rate for child c
func farEligible(inc domain.PartyIncome, maxPPS decimal.Decimal, c domain.ChildResult, p domain.Party, npcEnabled bool) bool {
	if c.Adult || inc.IncomeSupport || !inc.ATI.LessThan(maxPPS) {
		return false
	}
	if c.RoundedCare(p.Other()) >= care.PrimaryCare {
		return true
	}
	return npcEnabled && c.RoundedCareNPC >= care.PrimaryCare
}

// applyRates overrides standard liabilities with the statutory floor rates.
// MAR is checked first and, where it applies, FAR is not considered for that
// parent.
func (a *assessment) applyRates(children []domain.ChildResult, incomes map[domain.Party]domain.PartyIncome, npcEnabled bool) []domain.ChildResult {
	out := slices.Clone(children)
	for _, p := range []domain.Party{domain.ParentA, domain.ParentB} {
		inc := incomes[p]
		if marEligible(inc, a.constants.SSA, out, p) {
			idx := indexesWhere(out, func(c domain.ChildResult) bool { return !c.Adult })
			shares := splitEvenly(a.constants.MAR, len(idx))
			for k, i := range idx {
				out[i] = out[i].WithFinal(p, shares[k], decimal.Zero).WithRate(p, domain.RateMAR)
			}
			a.logger.Debugf("MAR applies to parent %s", p)
			continue
		}

		applied := 0
		for i, c := range out {
			if applied == farChildLimit {
				break
			}
			if !farEligible(inc, a.constants.MaxPPS, c, p, npcEnabled) {
				continue
			}
			out[i] = c.WithFinal(p, a.constants.FAR, decimal.Zero).WithRate(p, domain.RateFAR)
			applied++
		}
		if applied > 0 {
			a.logger.Debugf("FAR applies to parent %s for %d children", p, applied)
		}
	}
	return out
}

// redirectRates sends a statutory rate to the non-parent carer for any child
// whose carer holds shared care.
func redirectRates(children []domain.ChildResult, npcEnabled bool) []domain.ChildResult {
	if !npcEnabled {
		return children
	}
	out := slices.Clone(children)
	for i, c := range out {
		if c.RoundedCareNPC < care.SharedCare {
			continue
		}
		for _, p := range []domain.Party{domain.ParentA, domain.ParentB} {
			if c.RateApplied(p) {
				c = c.WithFinal(p, decimal.Zero, c.Final(p).Add(c.ToNPC(p)))
			}
		}
		out[i] = c
	}
	return out
}

// summarizeRates describes which rate applied across the case. FAR wins the
// summary when both kinds occur.
func summarizeRates(children []domain.ChildResult) domain.RateSummary {
	var far, mar [2]int
	for _, c := range children {
		for i, p := range []domain.Party{domain.ParentA, domain.ParentB} {
			if c.FARApplied(p) {
				far[i]++
			}
			if c.MARApplied(p) {
				mar[i]++
			}
		}
	}
	switch {
	case far[0] > 0 || far[1] > 0:
		s := domain.RateSummary{Kind: domain.RateFAR, PartyA: far[0] > 0, PartyB: far[1] > 0}
		if !s.Both() {
			s.FARChildren = far[0] + far[1]
		}
		return s
	case mar[0] > 0 || mar[1] > 0:
		return domain.RateSummary{Kind: domain.RateMAR, PartyA: mar[0] > 0, PartyB: mar[1] > 0}
	}
	return domain.RateSummary{Kind: domain.RateNone}
}

// rateTotal sums p's liability, wherever it is paid, over the children where
// the given rate applied.
func rateTotal(children []domain.ChildResult, p domain.Party, kind domain.RateKind) decimal.Decimal {
	total := decimal.Zero
	for _, c := range children {
		if rateApplies(c, p, kind) {
			total = total.Add(c.Final(p)).Add(c.ToNPC(p))
		}
	}
	return total
}

// rateFinal sums only what p pays the other parent under the given rate
func rateFinal(children []domain.ChildResult, p domain.Party, kind domain.RateKind) decimal.Decimal {
	total := decimal.Zero
	for _, c := range children {
		if rateApplies(c, p, kind) {
			total = total.Add(c.Final(p))
		}
	}
	return total
}

func rateApplies(c domain.ChildResult, p domain.Party, kind domain.RateKind) bool {
	return (kind == domain.RateFAR && c.FARApplied(p)) || (kind == domain.RateMAR && c.MARApplied(p))
}

// splitEvenly divides total into n cent-rounded shares. The last share takes
// the rounding remainder so the shares always sum to total.
func splitEvenly(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	shares := make([]decimal.Decimal, n)
	per := total.Div(decimal.NewFromInt(int64(n))).Round(2)
	rest := total
	for i := range n - 1 {
		shares[i] = per
		rest = rest.Sub(per)
	}
	shares[n-1] = rest
	return shares
}

func countAssessable(children []domain.ChildResult) int {
	n := 0
	for _, c := range children {
		if !c.Adult {
			n++
		}
	}
	return n
}
