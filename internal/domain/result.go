package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ChildResult is the per-child outcome of an assessment. Pipeline stages
// return modified copies rather than mutating a shared record.
type ChildResult struct {
	Label     string `json:"label"`
	Age       int    `json:"age"`
	Adult     bool   `json:"adult"`
	Turning18 bool   `json:"turning18"`

	CareA   decimal.Decimal `json:"careA"`
	CareB   decimal.Decimal `json:"careB"`
	CareNPC decimal.Decimal `json:"careNPC"`

	RoundedCareA   int `json:"roundedCareA"`
	RoundedCareB   int `json:"roundedCareB"`
	RoundedCareNPC int `json:"roundedCareNPC"`
	CostPercA      int `json:"costPercA"`
	CostPercB      int `json:"costPercB"`
	CostPercNPC    int `json:"costPercNPC"`

	ChildSupportPercA decimal.Decimal `json:"childSupportPercA"`
	ChildSupportPercB decimal.Decimal `json:"childSupportPercB"`
	CostPerChild      decimal.Decimal `json:"costPerChild"`

	// Standard-formula liabilities before rates and caps
	LiabilityA decimal.Decimal `json:"liabilityA"`
	LiabilityB decimal.Decimal `json:"liabilityB"`

	FinalLiabilityA decimal.Decimal `json:"finalLiabilityA"`
	FinalLiabilityB decimal.Decimal `json:"finalLiabilityB"`
	LiabilityToNPCA decimal.Decimal `json:"liabilityToNPCA"`
	LiabilityToNPCB decimal.Decimal `json:"liabilityToNPCB"`

	FARAppliedA bool `json:"farAppliedA"`
	FARAppliedB bool `json:"farAppliedB"`
	MARAppliedA bool `json:"marAppliedA"`
	MARAppliedB bool `json:"marAppliedB"`

	MultiCaseCapA        *decimal.Decimal `json:"multiCaseCapA,omitempty"`
	MultiCaseCapB        *decimal.Decimal `json:"multiCaseCapB,omitempty"`
	MultiCaseCapAppliedA bool             `json:"multiCaseCapAppliedA"`
	MultiCaseCapAppliedB bool             `json:"multiCaseCapAppliedB"`
}

// Final returns the parent-to-parent liability of p
func (c ChildResult) Final(p Party) decimal.Decimal {
	if p == ParentB {
		return c.FinalLiabilityB
	}
	return c.FinalLiabilityA
}

// ToNPC returns the liability of p to the non-parent carer
func (c ChildResult) ToNPC(p Party) decimal.Decimal {
	if p == ParentB {
		return c.LiabilityToNPCB
	}
	return c.LiabilityToNPCA
}

// RoundedCare returns the rounded care percentage of p
func (c ChildResult) RoundedCare(p Party) int {
	if p == ParentB {
		return c.RoundedCareB
	}
	return c.RoundedCareA
}

// CostPerc returns the cost percentage of p
func (c ChildResult) CostPerc(p Party) int {
	if p == ParentB {
		return c.CostPercB
	}
	return c.CostPercA
}

// ChildSupportPerc returns the child support percentage of p
func (c ChildResult) ChildSupportPerc(p Party) decimal.Decimal {
	if p == ParentB {
		return c.ChildSupportPercB
	}
	return c.ChildSupportPercA
}

// FARApplied reports whether the fixed annual rate overrode p's liability
func (c ChildResult) FARApplied(p Party) bool {
	if p == ParentB {
		return c.FARAppliedB
	}
	return c.FARAppliedA
}

// MARApplied reports whether the minimum annual rate overrode p's liability
func (c ChildResult) MARApplied(p Party) bool {
	if p == ParentB {
		return c.MARAppliedB
	}
	return c.MARAppliedA
}

// RateApplied reports whether any statutory rate overrode p's liability
func (c ChildResult) RateApplied(p Party) bool {
	return c.FARApplied(p) || c.MARApplied(p)
}

// WithFinal returns a copy with p's final and NPC liabilities replaced
func (c ChildResult) WithFinal(p Party, final, toNPC decimal.Decimal) ChildResult {
	if p == ParentB {
		c.FinalLiabilityB = final
		c.LiabilityToNPCB = toNPC
	} else {
		c.FinalLiabilityA = final
		c.LiabilityToNPCA = toNPC
	}
	return c
}

// WithCap returns a copy carrying p's multi-case cap and whether it bound
func (c ChildResult) WithCap(p Party, limit decimal.Decimal, applied bool) ChildResult {
	if p == ParentB {
		c.MultiCaseCapB = &limit
		c.MultiCaseCapAppliedB = applied
	} else {
		c.MultiCaseCapA = &limit
		c.MultiCaseCapAppliedA = applied
	}
	return c
}

// WithRate returns a copy flagging the statutory rate that set p's liability
func (c ChildResult) WithRate(p Party, kind RateKind) ChildResult {
	far, mar := kind == RateFAR, kind == RateMAR
	if p == ParentB {
		c.FARAppliedB, c.MARAppliedB = far, mar
	} else {
		c.FARAppliedA, c.MARAppliedA = far, mar
	}
	return c
}

// RateKind names a statutory rate
type RateKind string

const (
	RateNone RateKind = "None"
	RateFAR  RateKind = "FAR"
	RateMAR  RateKind = "MAR"
)

// RateSummary describes which statutory rate applied across the case.
// FAR takes precedence in the summary when both kinds occur.
type RateSummary struct {
	Kind        RateKind `json:"kind"`
	PartyA      bool     `json:"partyA"`
	PartyB      bool     `json:"partyB"`
	FARChildren int      `json:"farChildren,omitempty"`
}

// Both reports whether the summarised rate applied to both parents
func (r RateSummary) Both() bool {
	return r.Kind != RateNone && r.PartyA && r.PartyB
}

func (r RateSummary) String() string {
	if r.Kind == RateNone {
		return "None"
	}
	if r.Both() {
		return fmt.Sprintf("%s (Both Parents)", r.Kind)
	}
	party := ParentA
	if r.PartyB {
		party = ParentB
	}
	if r.Kind == RateFAR {
		noun := "child"
		if r.FARChildren != 1 {
			noun = "children"
		}
		return fmt.Sprintf("FAR (%s, %d %s)", party.Label(), r.FARChildren, noun)
	}
	return fmt.Sprintf("MAR (%s)", party.Label())
}

// PayerRole classifies the position of Parent A in the outcome
type PayerRole string

const (
	RoleBothPaying      PayerRole = "both_paying"
	RolePayingParent    PayerRole = "paying_parent"
	RoleReceivingParent PayerRole = "receiving_parent"
	RoleNeither         PayerRole = "neither"
)

// Payer labels used in results
const (
	PayerNeither = "Neither"
	PayerNA      = "N/A"
	ReceiverNPC  = "Non-parent carer"
)

// PartyIncome collects the income steps of one parent
type PartyIncome struct {
	ATI                  decimal.Decimal `json:"ati"`
	PreliminaryCSI       decimal.Decimal `json:"preliminaryCSI"`
	RelevantDependentDed decimal.Decimal `json:"relevantDependentDeduction"`
	MultiCaseAllowance   decimal.Decimal `json:"multiCaseAllowance"`
	CapBaseCSI           decimal.Decimal `json:"capBaseCSI"`
	CSI                  decimal.Decimal `json:"csi"`
	IncomePerc           decimal.Decimal `json:"incomePerc"`
	IncomeSupport        bool            `json:"incomeSupport"`
}

// Formula identifies the assessment formula that produced a result
type Formula int

const (
	FormulaStandard Formula = 1
	Formula5        Formula = 5
	Formula6        Formula = 6
)

func (f Formula) String() string {
	switch f {
	case FormulaStandard:
		return "Standard"
	case Formula5:
		return "Formula 5 (parent overseas)"
	case Formula6:
		return "Formula 6 (parent deceased)"
	default:
		return fmt.Sprintf("Formula(%d)", int(f))
	}
}

// AlternateResult is the outcome of a Formula 5 or Formula 6 assessment
type AlternateResult struct {
	Formula        Formula         `json:"formula"`
	Reason         AbsenceReason   `json:"reason"`
	Country        string          `json:"country,omitempty"`
	AvailableParty Party           `json:"availableParty"`
	ATI            decimal.Decimal `json:"ati"`
	PreliminaryCSI decimal.Decimal `json:"preliminaryCSI"`
	Allowance      decimal.Decimal `json:"multiCaseAllowance"`
	CSI            decimal.Decimal `json:"csi"`

	// AssessedIncome is the income the cost tables were read with: doubled
	// CSI under Formula 5, CSI as-is under Formula 6.
	AssessedIncome decimal.Decimal `json:"assessedIncome"`

	Cost          decimal.Decimal  `json:"cost"`
	CostPerChild  decimal.Decimal  `json:"costPerChild"`
	RoundedCare   int              `json:"roundedCare"`
	CostPerc      int              `json:"costPerc"`
	CostShare     decimal.Decimal  `json:"costShare"`
	RateBefore    decimal.Decimal  `json:"rateBeforeHalving"`
	RateAfter     decimal.Decimal  `json:"rateAfterHalving"`
	MultiCaseCap  *decimal.Decimal `json:"multiCaseCap,omitempty"`
	CapApplied    bool             `json:"capApplied"`
	AnnualRate    decimal.Decimal  `json:"annualRate"`
	Monthly       decimal.Decimal  `json:"monthly"`
	Fortnightly   decimal.Decimal  `json:"fortnightly"`
	PaymentCarer1 *decimal.Decimal `json:"paymentCarer1,omitempty"`
	PaymentCarer2 *decimal.Decimal `json:"paymentCarer2,omitempty"`
}

// CalculationResult is the complete outcome of one assessment
type CalculationResult struct {
	Formula   Formula         `json:"formula"`
	Constants YearConstants   `json:"constants"`
	IncomeA   PartyIncome     `json:"incomeA"`
	IncomeB   PartyIncome     `json:"incomeB"`
	CCSI      decimal.Decimal `json:"ccsi"`

	TotalCost       decimal.Decimal `json:"totalCost"`
	CostPerChild    decimal.Decimal `json:"costPerChild"`
	AgeGroup        string          `json:"ageGroup,omitempty"`
	AssessableCount int             `json:"assessableChildren"`
	CostBracket     CostBracketInfo `json:"costBracket"`
	Children        []ChildResult   `json:"children"`

	StandardTotalA  decimal.Decimal `json:"standardLiabilityA"`
	StandardTotalB  decimal.Decimal `json:"standardLiabilityB"`
	FinalLiabilityA decimal.Decimal `json:"finalLiabilityA"`
	FinalLiabilityB decimal.Decimal `json:"finalLiabilityB"`
	FARA            decimal.Decimal `json:"farA"`
	FARB            decimal.Decimal `json:"farB"`
	MARA            decimal.Decimal `json:"marA"`
	MARB            decimal.Decimal `json:"marB"`
	Rate            RateSummary     `json:"rate"`
	RateApplied     string          `json:"rateApplied"`
	MultiCaseCapA   bool            `json:"multiCaseCapAppliedA"`
	MultiCaseCapB   bool            `json:"multiCaseCapAppliedB"`
	MARCapNoteA     string          `json:"marCapExplanationA,omitempty"`
	MARCapNoteB     string          `json:"marCapExplanationB,omitempty"`
	FARCapNoteA     string          `json:"farCapExplanationA,omitempty"`
	FARCapNoteB     string          `json:"farCapExplanationB,omitempty"`

	Payer            string           `json:"payer"`
	Receiver         string           `json:"receiver"`
	PayerRole        PayerRole        `json:"payerRole"`
	FinalPayment     decimal.Decimal  `json:"finalPaymentAmount"`
	MonthlyPayment   decimal.Decimal  `json:"monthlyPayment"`
	FortnightPayment decimal.Decimal  `json:"fortnightlyPayment"`
	PaymentToNPC     decimal.Decimal  `json:"paymentToNPC"`
	PaymentToNPC1    *decimal.Decimal `json:"paymentToNPC1,omitempty"`
	PaymentToNPC2    *decimal.Decimal `json:"paymentToNPC2,omitempty"`

	Alternate *AlternateResult `json:"alternate,omitempty"`
}

// Income returns the income steps of p
func (r *CalculationResult) Income(p Party) PartyIncome {
	if p == ParentB {
		return r.IncomeB
	}
	return r.IncomeA
}
