package transform

import (
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SetIncome replaces a parent's adjusted taxable income
type SetIncome struct {
	Party  domain.Party
	Amount decimal.Decimal
}

func (si *SetIncome) Name() string {
	return "set_income"
}

func (si *SetIncome) Description() string {
	return fmt.Sprintf("Set %s's income to $%s", si.Party.Label(), si.Amount.StringFixed(0))
}

func (si *SetIncome) Validate(base *domain.FormState) error {
	if base == nil {
		return NewTransformError(si.Name(), "validate", "base form cannot be nil", nil)
	}
	if si.Amount.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("income must be non-negative, got %s", si.Amount), nil)
	}
	return nil
}

func (si *SetIncome) Apply(base *domain.FormState) (*domain.FormState, error) {
	modified := base.DeepCopy()
	fin := modified.Party(si.Party)
	fin.Income = si.Amount
	setParty(modified, si.Party, fin)
	return modified, nil
}

// ScaleIncome changes a parent's income by a percentage, e.g. 10 for a 10%
// raise or -20 for a 20% cut. The result is rounded to the dollar.
type ScaleIncome struct {
	Party   domain.Party
	Percent decimal.Decimal
}

func (sc *ScaleIncome) Name() string {
	return "scale_income"
}

func (sc *ScaleIncome) Description() string {
	return fmt.Sprintf("Change %s's income by %s%%", sc.Party.Label(), sc.Percent.String())
}

func (sc *ScaleIncome) Validate(base *domain.FormState) error {
	if base == nil {
		return NewTransformError(sc.Name(), "validate", "base form cannot be nil", nil)
	}
	if sc.Percent.LessThan(decimal.NewFromInt(-100)) {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("percent cannot be below -100, got %s", sc.Percent), nil)
	}
	return nil
}

func (sc *ScaleIncome) Apply(base *domain.FormState) (*domain.FormState, error) {
	modified := base.DeepCopy()
	fin := modified.Party(sc.Party)
	factor := decimal.NewFromInt(100).Add(sc.Percent).Div(decimal.NewFromInt(100))
	fin.Income = fin.Income.Mul(factor).Round(0)
	setParty(modified, sc.Party, fin)
	return modified, nil
}

// SetIncomeSupport sets whether a parent receives an income support payment
type SetIncomeSupport struct {
	Party domain.Party
	Value bool
}

func (ss *SetIncomeSupport) Name() string {
	return "set_support"
}

func (ss *SetIncomeSupport) Description() string {
	if ss.Value {
		return fmt.Sprintf("%s receives income support", ss.Party.Label())
	}
	return fmt.Sprintf("%s does not receive income support", ss.Party.Label())
}

func (ss *SetIncomeSupport) Validate(base *domain.FormState) error {
	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base form cannot be nil", nil)
	}
	return nil
}

func (ss *SetIncomeSupport) Apply(base *domain.FormState) (*domain.FormState, error) {
	modified := base.DeepCopy()
	fin := modified.Party(ss.Party)
	fin.ReceivesIncomeSupport = ss.Value
	setParty(modified, ss.Party, fin)
	return modified, nil
}

// SetDependents replaces a parent's relevant dependent counts
type SetDependents struct {
	Party   domain.Party
	Under13 int
	Over13  int
}

func (sd *SetDependents) Name() string {
	return "set_dependents"
}

func (sd *SetDependents) Description() string {
	return fmt.Sprintf("Set %s's relevant dependents to %d under 13 and %d aged 13+",
		sd.Party.Label(), sd.Under13, sd.Over13)
}

func (sd *SetDependents) Validate(base *domain.FormState) error {
	if base == nil {
		return NewTransformError(sd.Name(), "validate", "base form cannot be nil", nil)
	}
	if sd.Under13 < 0 || sd.Over13 < 0 {
		return NewTransformError(sd.Name(), "validate", "dependent counts must be non-negative", nil)
	}
	return nil
}

func (sd *SetDependents) Apply(base *domain.FormState) (*domain.FormState, error) {
	modified := base.DeepCopy()
	fin := modified.Party(sd.Party)
	fin.RelevantDependents = domain.RelevantDependents{Under13: sd.Under13, Over13: sd.Over13}
	setParty(modified, sd.Party, fin)
	return modified, nil
}
