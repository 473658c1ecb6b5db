package calculation

import (
	"github.com/rgehrsitz/csacalc/internal/care"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// AlternateInput describes an assessment where only one parent can be
// assessed and a non-parent carer looks after the children.
type AlternateInput struct {
	Party             domain.Party            `json:"party" validate:"required,oneof=A B"`
	Income            decimal.Decimal         `json:"income" validate:"gte=0"`
	CarePercentage    decimal.Decimal         `json:"carePercentage" validate:"gte=0,lte=100"`
	ChildAges         []int                   `json:"childAges" validate:"min=1,dive,gte=0,lte=25"`
	OtherCaseChildren []domain.OtherCaseChild `json:"otherCaseChildren,omitempty" validate:"max=10,dive"`
	SecondCarer       bool                    `json:"secondCarer,omitempty"`
	Carer1Share       decimal.Decimal         `json:"carer1Share" validate:"gte=0,lte=100"`
	Carer2Share       decimal.Decimal         `json:"carer2Share" validate:"gte=0,lte=100"`
	Country           string                  `json:"country,omitempty"`
}

// alternateInput builds the input for the parent who is still available
// from a full form. Their care is taken from the first assessable child.
func alternateInput(form *domain.FormState, absent *domain.AbsentParent) AlternateInput {
	p := absent.Party.Other()
	fin := form.Party(p)

	carePct := decimal.Zero
	if kids := form.AssessableChildren(); len(kids) > 0 {
		c := kids[0]
		amount := c.CareA
		if p == domain.ParentB {
			amount = c.CareB
		}
		carePct = care.ToPercentage(amount, c.Period)
	}

	return AlternateInput{
		Party:             p,
		Income:            fin.Income,
		CarePercentage:    carePct,
		ChildAges:         agesOf(form.Children),
		OtherCaseChildren: fin.OtherCaseChildren,
		SecondCarer:       form.NonParentCarer.SecondCarer,
		Carer1Share:       form.NonParentCarer.Carer1Share,
		Carer2Share:       form.NonParentCarer.Carer2Share,
		Country:           absent.Country,
	}
}

// alternate runs Formula 5 or Formula 6. Formula 5 prices the children at
// twice the available parent's income and halves the resulting rate;
// Formula 6 uses the income as it is.
func (a *assessment) alternate(f domain.Formula, in AlternateInput) (*domain.AlternateResult, error) {
	prelim := decimal.Max(decimal.Zero, in.Income.Sub(a.constants.SSA))
	_, assessable := ageGroupOf(in.ChildAges)

	allowance, err := a.multiCaseAllowance(prelim, assessable, in.OtherCaseChildren)
	if err != nil {
		return nil, err
	}
	csi := decimal.Max(decimal.Zero, prelim.Sub(allowance))

	income := csi
	if f == domain.Formula5 {
		income = csi.Mul(decimal.NewFromInt(2))
	}
	cost, err := a.cost(in.ChildAges, income)
	if err != nil {
		return nil, err
	}

	rounded := care.Round(in.CarePercentage)
	costPerc := care.CostPercentage(rounded)
	share := cost.Total.Mul(decimal.NewFromInt(int64(costPerc))).Div(hundred)
	before := cost.Total.Sub(share)
	after := before
	if f == domain.Formula5 {
		after = before.Mul(half)
	}

	res := &domain.AlternateResult{
		Formula:        f,
		Reason:         domain.AbsentOverseas,
		Country:        in.Country,
		AvailableParty: in.Party,
		ATI:            in.Income,
		PreliminaryCSI: prelim,
		Allowance:      allowance,
		CSI:            csi,
		AssessedIncome: income,
		Cost:           cost.Total,
		CostPerChild:   cost.PerChild(),
		RoundedCare:    rounded,
		CostPerc:       costPerc,
		CostShare:      share,
		RateBefore:     before,
		RateAfter:      after,
		AnnualRate:     after,
	}
	if f == domain.Formula6 {
		res.Reason = domain.AbsentDeceased
		res.Country = ""
	}

	if len(in.OtherCaseChildren) > 0 && assessable > 0 {
		limit, err := a.alternateCap(in, assessable, prelim, costPerc)
		if err != nil {
			return nil, err
		}
		res.MultiCaseCap = &limit
		if after.GreaterThan(limit) {
			res.AnnualRate = limit
			res.CapApplied = true
		}
	}

	res.Monthly = res.AnnualRate.Div(monthsPerYear)
	res.Fortnightly = res.AnnualRate.Div(fortnightsPerYear)
	if in.SecondCarer {
		c1, c2 := splitCarers(res.AnnualRate, in.Carer1Share)
		res.PaymentCarer1, res.PaymentCarer2 = &c1, &c2
	}
	return res, nil
}

// alternateCap sums the per-child multi-case caps of the assessable children
func (a *assessment) alternateCap(in AlternateInput, assessable int, income decimal.Decimal, costPerc int) (decimal.Decimal, error) {
	n := assessable + len(in.OtherCaseChildren)
	share := decimal.NewFromInt(int64(100 - costPerc))
	total := decimal.Zero
	for _, age := range in.ChildAges {
		if domain.AgeBandOf(age) == domain.BandAdult {
			continue
		}
		solo, err := a.soloCostPerChild(age, n, income)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(solo.Mul(share).Div(hundred).Round(0))
	}
	return total, nil
}

// alternateResult wraps an alternate outcome in a full result. The available
// parent pays the carer; there is no parent-to-parent payment.
func alternateResult(a *assessment, form *domain.FormState, alt *domain.AlternateResult, support bool) *domain.CalculationResult {
	res := &domain.CalculationResult{
		Formula:         alt.Formula,
		Constants:       a.constants,
		TotalCost:       alt.Cost,
		CostPerChild:    alt.CostPerChild,
		AssessableCount: len(form.AssessableChildren()),
		Rate:            domain.RateSummary{Kind: domain.RateNone},
		RateApplied:     domain.RateSummary{Kind: domain.RateNone}.String(),
		Alternate:       alt,
	}
	inc := domain.PartyIncome{
		ATI:                alt.ATI,
		PreliminaryCSI:     alt.PreliminaryCSI,
		MultiCaseAllowance: alt.Allowance,
		CapBaseCSI:         alt.PreliminaryCSI,
		CSI:                alt.CSI,
		IncomeSupport:      support,
	}
	if alt.CSI.IsPositive() {
		inc.IncomePerc = hundred
	}
	if alt.AvailableParty == domain.ParentB {
		res.IncomeB = inc
	} else {
		res.IncomeA = inc
	}
	res.CCSI = alt.CSI

	for i, c := range form.Children {
		r := domain.ChildResult{
			Label:     c.Label(i),
			Age:       c.Age,
			Adult:     c.IsAdult(),
			Turning18: c.Age == domain.AdultAge-1,
		}
		if !r.Adult {
			r.CostPerChild = alt.CostPerChild
		}
		res.Children = append(res.Children, r)
	}

	res.PaymentToNPC = alt.AnnualRate
	res.PaymentToNPC1, res.PaymentToNPC2 = alt.PaymentCarer1, alt.PaymentCarer2
	res.FinalPayment = alt.AnnualRate
	res.MonthlyPayment = alt.Monthly
	res.FortnightPayment = alt.Fortnightly
	if alt.AnnualRate.IsPositive() {
		res.Payer, res.Receiver = alt.AvailableParty.Label(), domain.ReceiverNPC
		if alt.AvailableParty == domain.ParentA {
			res.PayerRole = domain.RolePayingParent
		} else {
			res.PayerRole = domain.RoleReceivingParent
		}
	} else {
		res.Payer, res.Receiver = domain.PayerNeither, domain.PayerNeither
		res.PayerRole = domain.RoleNeither
	}
	return res
}
