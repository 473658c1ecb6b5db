package transform

import (
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/care"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SetCare replaces the care arrangement of one child
type SetCare struct {
	Child  int
	CareA  decimal.Decimal
	CareB  decimal.Decimal
	NPC    decimal.Decimal
	Period domain.CarePeriod
}

func (sc *SetCare) Name() string {
	return "set_care"
}

func (sc *SetCare) Description() string {
	desc := fmt.Sprintf("Child %d cared for %s/%s by A/B per %s", sc.Child+1, sc.CareA, sc.CareB, sc.Period)
	if sc.NPC.IsPositive() {
		desc += fmt.Sprintf(" with %s by the carer", sc.NPC)
	}
	return desc
}

func (sc *SetCare) Validate(base *domain.FormState) error {
	if err := checkChild(sc.Name(), base, sc.Child); err != nil {
		return err
	}
	if !sc.Period.Valid() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("unknown care period %q", sc.Period), nil)
	}
	if sc.CareA.IsNegative() || sc.CareB.IsNegative() || sc.NPC.IsNegative() {
		return NewTransformError(sc.Name(), "validate", "care amounts must be non-negative", nil)
	}
	if sc.NPC.IsPositive() && !base.NonParentCarer.Enabled {
		return NewTransformError(sc.Name(), "validate", "carer care requires a non-parent carer", nil)
	}
	_, total := care.Percentages(sc.Period, sc.CareA, sc.CareB, sc.NPC)
	if !care.Reconciles(total) {
		return NewTransformError(sc.Name(), "validate",
			fmt.Sprintf("care totals %s%% of the period, expected 100%%", total.StringFixed(2)), nil)
	}
	return nil
}

func (sc *SetCare) Apply(base *domain.FormState) (*domain.FormState, error) {
	modified := base.DeepCopy()
	c := modified.Children[sc.Child]
	c.CareA, c.CareB, c.CareNPC, c.Period = sc.CareA, sc.CareB, sc.NPC, sc.Period
	modified.Children[sc.Child] = c
	return modified, nil
}

// SetAge changes the age of one child, e.g. to see the effect of a birthday
type SetAge struct {
	Child int
	Age   int
}

func (sa *SetAge) Name() string {
	return "set_age"
}

func (sa *SetAge) Description() string {
	return fmt.Sprintf("Child %d is aged %d", sa.Child+1, sa.Age)
}

func (sa *SetAge) Validate(base *domain.FormState) error {
	if err := checkChild(sa.Name(), base, sa.Child); err != nil {
		return err
	}
	if sa.Age < 0 || sa.Age > 25 {
		return NewTransformError(sa.Name(), "validate", fmt.Sprintf("age must be between 0 and 25, got %d", sa.Age), nil)
	}
	return nil
}

func (sa *SetAge) Apply(base *domain.FormState) (*domain.FormState, error) {
	modified := base.DeepCopy()
	modified.Children[sa.Child].Age = sa.Age
	return modified, nil
}
