package calculation

import (
	"fmt"
	"slices"

	"github.com/rgehrsitz/csacalc/internal/care"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// Statutory rates are limited to three cases (MAR) or three children (FAR)
// across all of a parent's cases.
const rateCaseLimit = 3

const marNegatedNote = "MAR liability negated: parent has at least 14% care of a child in this assessment"

// multiCaseAllowance prices each child in the parent's other cases as one of
// a group of same-aged children the size of the parent's whole family, and
// sums the results, rounded to the dollar.
func (a *assessment) multiCaseAllowance(income decimal.Decimal, ownAssessable int, others []domain.OtherCaseChild) (decimal.Decimal, error) {
	if !income.IsPositive() || len(others) == 0 {
		return decimal.Zero, nil
	}
	n := ownAssessable + len(others)
	total := decimal.Zero
	for _, oc := range others {
		per, err := a.soloCostPerChild(oc.Age, n, income)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(per)
	}
	return total.Round(0), nil
}

// multiCaseCap is the most p can pay for one child of this case when p also
// has children in other cases.
func (a *assessment) multiCaseCap(c domain.ChildResult, p domain.Party, n int, income decimal.Decimal) (decimal.Decimal, error) {
	solo, err := a.soloCostPerChild(c.Age, n, income)
	if err != nil {
		return decimal.Zero, err
	}
	share := decimal.NewFromInt(int64(100 - c.CostPerc(p)))
	return solo.Mul(share).Div(hundred).Round(0), nil
}

// applyMultiCaseCaps limits each child's liability for p to the multi-case
// cap, scaling the parent and carer portions down together. Children whose
// liability was set by a statutory rate are left alone; those rates have
// their own case limits.
func (a *assessment) applyMultiCaseCaps(children []domain.ChildResult, p domain.Party, inc domain.PartyIncome, others []domain.OtherCaseChild) ([]domain.ChildResult, bool, error) {
	if len(others) == 0 {
		return children, false, nil
	}
	n := countAssessable(children) + len(others)
	out := slices.Clone(children)
	applied := false
	for i, c := range out {
		if c.Adult || c.RateApplied(p) {
			continue
		}
		limit, err := a.multiCaseCap(c, p, n, inc.CapBaseCSI)
		if err != nil {
			return nil, false, err
		}
		total := c.Final(p).Add(c.ToNPC(p))
		if total.GreaterThan(limit) {
			final := c.Final(p).Mul(limit).Div(total).Round(0)
			c = c.WithFinal(p, final, limit.Sub(final))
			out[i] = c.WithCap(p, limit, true)
			applied = true
			continue
		}
		out[i] = c.WithCap(p, limit, false)
	}
	if applied {
		a.logger.Debugf("multi-case cap reduced liability of parent %s", p)
	}
	return out, applied, nil
}

// applyMARCap enforces the MAR case limit for p. MAR is negated outright when
// p has regular care of any assessable child; otherwise, when p has more than
// three cases in total, the per-case amount is scaled to 3/cases of MAR.
func (a *assessment) applyMARCap(children []domain.ChildResult, p domain.Party, others []domain.OtherCaseChild) ([]domain.ChildResult, string) {
	idx := indexesWhere(children, func(c domain.ChildResult) bool { return c.MARApplied(p) })
	if len(idx) == 0 {
		return children, ""
	}
	out := slices.Clone(children)

	for _, c := range out {
		if !c.Adult && c.RoundedCare(p) >= care.RegularCare {
			for _, i := range idx {
				out[i] = out[i].WithFinal(p, decimal.Zero, decimal.Zero)
			}
			return out, marNegatedNote
		}
	}

	cases := 1 + len(others)
	if cases <= rateCaseLimit {
		return children, ""
	}
	mar := a.constants.MAR
	perCase := mar.Mul(decimal.NewFromInt(rateCaseLimit)).Div(decimal.NewFromInt(int64(cases))).Round(0)
	shares := splitEvenly(perCase, len(idx))
	for k, i := range idx {
		out[i] = out[i].WithFinal(p, shares[k], decimal.Zero)
	}
	note := fmt.Sprintf("Liability capped due to 3-case limit: (3 × $%s) ÷ %d cases = $%s per case",
		mar.String(), cases, perCase.String())
	return out, note
}

// applyFARCap enforces the FAR child limit for p across all of p's cases
func (a *assessment) applyFARCap(children []domain.ChildResult, p domain.Party, others []domain.OtherCaseChild) ([]domain.ChildResult, string) {
	idx := indexesWhere(children, func(c domain.ChildResult) bool { return c.FARApplied(p) })
	count := len(idx) + len(others)
	if len(idx) == 0 || count <= rateCaseLimit {
		return children, ""
	}
	far := a.constants.FAR
	per := far.Mul(decimal.NewFromInt(rateCaseLimit)).Div(decimal.NewFromInt(int64(count))).Round(0)
	out := slices.Clone(children)
	for _, i := range idx {
		out[i] = out[i].WithFinal(p, per, decimal.Zero)
	}
	note := fmt.Sprintf("Liability capped due to 3-child limit: (3 × $%s) ÷ %d children = $%s per child",
		far.String(), count, per.String())
	return out, note
}

func indexesWhere(children []domain.ChildResult, keep func(domain.ChildResult) bool) []int {
	var idx []int
	for i, c := range children {
		if keep(c) {
			idx = append(idx, i)
		}
	}
	return idx
}
