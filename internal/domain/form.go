package domain

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Party identifies one of the two parents in a case
type Party string

const (
	ParentA Party = "A"
	ParentB Party = "B"
)

// Other returns the opposite parent
func (p Party) Other() Party {
	if p == ParentA {
		return ParentB
	}
	return ParentA
}

// Label returns "Parent A" or "Parent B"
func (p Party) Label() string {
	return "Parent " + string(p)
}

// ParseParty accepts "A" or "B" in either case
func ParseParty(s string) (Party, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ParentA, nil
	case "B":
		return ParentB, nil
	}
	return "", fmt.Errorf("invalid party %q, expected A or B", s)
}

// MaxOtherCaseChildren is the most other-case children accepted per parent
const MaxOtherCaseChildren = 10

// RelevantDependents counts a parent's dependents outside any case
type RelevantDependents struct {
	Under13 int `yaml:"under_13" json:"under13" validate:"gte=0"`
	Over13  int `yaml:"over_13" json:"over13" validate:"gte=0"`
}

// Total returns the number of dependents
func (d RelevantDependents) Total() int {
	return d.Under13 + d.Over13
}

// PartyFinancials holds one parent's income details
type PartyFinancials struct {
	Income                decimal.Decimal    `yaml:"income" json:"income" validate:"gte=0"`
	ReceivesIncomeSupport bool               `yaml:"income_support" json:"incomeSupport"`
	RelevantDependents    RelevantDependents `yaml:"relevant_dependents" json:"relevantDependents"`
	OtherCaseChildren     []OtherCaseChild   `yaml:"other_case_children,omitempty" json:"otherCaseChildren,omitempty" validate:"max=10,dive"`
}

// HasMultiCase reports whether the parent has children in other cases
func (p PartyFinancials) HasMultiCase() bool {
	return len(p.OtherCaseChildren) > 0
}

// AbsenceReason explains why a parent cannot be assessed
type AbsenceReason string

const (
	AbsentOverseas AbsenceReason = "overseas"
	AbsentDeceased AbsenceReason = "deceased"
)

// AbsentParent marks one parent as unavailable for assessment
type AbsentParent struct {
	Party   Party         `yaml:"party" json:"party" validate:"required,oneof=A B"`
	Reason  AbsenceReason `yaml:"reason" json:"reason" validate:"required,oneof=overseas deceased"`
	Country string        `yaml:"country,omitempty" json:"country,omitempty" validate:"required_if=Reason overseas"`
}

// NonParentCarerInfo describes an optional non-parent carer arrangement.
// Care held by non-parent carers is recorded per child in Child.CareNPC.
type NonParentCarerInfo struct {
	Enabled      bool            `yaml:"enabled" json:"enabled"`
	SecondCarer  bool            `yaml:"second_carer,omitempty" json:"secondCarer,omitempty"`
	Carer1Share  decimal.Decimal `yaml:"carer1_share,omitempty" json:"carer1Share" validate:"gte=0,lte=100"`
	Carer2Share  decimal.Decimal `yaml:"carer2_share,omitempty" json:"carer2Share" validate:"gte=0,lte=100"`
	AbsentParent *AbsentParent   `yaml:"absent_parent,omitempty" json:"absentParent,omitempty"`
}

// FormState is the complete input of one assessment
type FormState struct {
	ParentA        PartyFinancials    `yaml:"parent_a" json:"parentA"`
	ParentB        PartyFinancials    `yaml:"parent_b" json:"parentB"`
	Children       []Child            `yaml:"children" json:"children" validate:"dive"`
	NonParentCarer NonParentCarerInfo `yaml:"non_parent_carer,omitempty" json:"nonParentCarer"`
}

// Party returns the financials of the given parent
func (f *FormState) Party(p Party) PartyFinancials {
	if p == ParentB {
		return f.ParentB
	}
	return f.ParentA
}

// DeepCopy returns a copy that shares no slices with f
func (f *FormState) DeepCopy() *FormState {
	c := *f
	c.Children = slices.Clone(f.Children)
	c.ParentA.OtherCaseChildren = slices.Clone(f.ParentA.OtherCaseChildren)
	c.ParentB.OtherCaseChildren = slices.Clone(f.ParentB.OtherCaseChildren)
	if f.NonParentCarer.AbsentParent != nil {
		ap := *f.NonParentCarer.AbsentParent
		c.NonParentCarer.AbsentParent = &ap
	}
	return &c
}

// AssessableChildren returns the children under 18
func (f *FormState) AssessableChildren() []Child {
	out := make([]Child, 0, len(f.Children))
	for _, c := range f.Children {
		if !c.IsAdult() {
			out = append(out, c)
		}
	}
	return out
}

// Overrides force the income-support flags without changing the form
type Overrides struct {
	SupportA *bool `yaml:"support_a,omitempty" json:"supportA,omitempty"`
	SupportB *bool `yaml:"support_b,omitempty" json:"supportB,omitempty"`
}

// Support resolves the effective income-support flag for a parent
func (o *Overrides) Support(p Party, form *FormState) bool {
	if o != nil {
		if p == ParentA && o.SupportA != nil {
			return *o.SupportA
		}
		if p == ParentB && o.SupportB != nil {
			return *o.SupportB
		}
	}
	return form.Party(p).ReceivesIncomeSupport
}
