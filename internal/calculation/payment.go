package calculation

import (
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	monthsPerYear     = decimal.NewFromInt(12)
	fortnightsPerYear = decimal.NewFromInt(26)
)

// resolvePayment nets the two parents' liabilities into a single payment and
// totals what is owed to any non-parent carer.
func resolvePayment(res *domain.CalculationResult, npc domain.NonParentCarerInfo) {
	var toNPCA, toNPCB decimal.Decimal
	res.FinalLiabilityA, res.FinalLiabilityB = decimal.Zero, decimal.Zero
	for _, c := range res.Children {
		res.FinalLiabilityA = res.FinalLiabilityA.Add(c.FinalLiabilityA)
		res.FinalLiabilityB = res.FinalLiabilityB.Add(c.FinalLiabilityB)
		toNPCA = toNPCA.Add(c.LiabilityToNPCA)
		toNPCB = toNPCB.Add(c.LiabilityToNPCB)
	}

	res.FARA = rateTotal(res.Children, domain.ParentA, domain.RateFAR)
	res.FARB = rateTotal(res.Children, domain.ParentB, domain.RateFAR)
	res.MARA = rateTotal(res.Children, domain.ParentA, domain.RateMAR)
	res.MARB = rateTotal(res.Children, domain.ParentB, domain.RateMAR)
	res.Rate = summarizeRates(res.Children)
	res.RateApplied = res.Rate.String()

	switch {
	case res.Rate.Kind == domain.RateMAR && res.Rate.Both():
		// Both parents on the minimum rate cancel out.
		res.Payer, res.Receiver = domain.PayerNA, domain.PayerNA
		res.FinalPayment = decimal.Zero
	case res.Rate.Kind == domain.RateFAR && res.Rate.Both():
		// Only the parent-to-parent share nets; carer amounts are paid apart.
		setNet(res, rateFinal(res.Children, domain.ParentA, domain.RateFAR).
			Sub(rateFinal(res.Children, domain.ParentB, domain.RateFAR)))
	default:
		setNet(res, res.FinalLiabilityA.Sub(res.FinalLiabilityB))
	}
	res.MonthlyPayment = res.FinalPayment.Div(monthsPerYear)
	res.FortnightPayment = res.FinalPayment.Div(fortnightsPerYear)

	res.PaymentToNPC = toNPCA.Add(toNPCB)
	if npc.Enabled && npc.SecondCarer && res.PaymentToNPC.IsPositive() {
		c1, c2 := splitCarers(res.PaymentToNPC, npc.Carer1Share)
		res.PaymentToNPC1, res.PaymentToNPC2 = &c1, &c2
	}
	res.PayerRole = payerRole(res.Payer, npc.Enabled, toNPCA, toNPCB)
}

func setNet(res *domain.CalculationResult, net decimal.Decimal) {
	switch net.Sign() {
	case 1:
		res.Payer, res.Receiver = domain.ParentA.Label(), domain.ParentB.Label()
	case -1:
		res.Payer, res.Receiver = domain.ParentB.Label(), domain.ParentA.Label()
	default:
		res.Payer, res.Receiver = domain.PayerNeither, domain.PayerNeither
	}
	res.FinalPayment = net.Abs()
}

// payerRole classifies Parent A's position. Payments to a carer take
// precedence over the parent-to-parent direction.
func payerRole(payer string, npcEnabled bool, toNPCA, toNPCB decimal.Decimal) domain.PayerRole {
	if npcEnabled && toNPCA.Add(toNPCB).IsPositive() {
		switch {
		case toNPCA.IsPositive() && toNPCB.IsPositive():
			return domain.RoleBothPaying
		case toNPCA.IsPositive():
			return domain.RolePayingParent
		default:
			return domain.RoleReceivingParent
		}
	}
	switch payer {
	case domain.ParentA.Label():
		return domain.RolePayingParent
	case domain.ParentB.Label():
		return domain.RoleReceivingParent
	}
	return domain.RoleNeither
}

// splitCarers divides an amount between two carers by the first carer's
// percentage share. The second carer receives the remainder so the parts sum
// exactly.
func splitCarers(total, share1 decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	c1 := total.Mul(share1).Div(hundred).Round(2)
	return c1, total.Sub(c1)
}
