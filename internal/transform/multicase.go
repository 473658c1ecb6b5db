package transform

import (
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/domain"
)

// AddOtherCaseChild records a child of one parent in another case
type AddOtherCaseChild struct {
	Party domain.Party
	ID    string
	Age   int
}

func (ao *AddOtherCaseChild) Name() string {
	return "add_other_case_child"
}

func (ao *AddOtherCaseChild) Description() string {
	return fmt.Sprintf("Add a child aged %d in another case of %s", ao.Age, ao.Party.Label())
}

func (ao *AddOtherCaseChild) Validate(base *domain.FormState) error {
	if base == nil {
		return NewTransformError(ao.Name(), "validate", "base form cannot be nil", nil)
	}
	if ao.Age < 0 || ao.Age > 25 {
		return NewTransformError(ao.Name(), "validate", fmt.Sprintf("age must be between 0 and 25, got %d", ao.Age), nil)
	}
	if n := len(base.Party(ao.Party).OtherCaseChildren); n >= domain.MaxOtherCaseChildren {
		return NewTransformError(ao.Name(), "validate",
			fmt.Sprintf("%s already has %d other-case children", ao.Party.Label(), n), nil)
	}
	return nil
}

func (ao *AddOtherCaseChild) Apply(base *domain.FormState) (*domain.FormState, error) {
	modified := base.DeepCopy()
	fin := modified.Party(ao.Party)
	fin.OtherCaseChildren = append(fin.OtherCaseChildren, domain.OtherCaseChild{ID: ao.ID, Age: ao.Age})
	setParty(modified, ao.Party, fin)
	return modified, nil
}

// ClearOtherCaseChildren removes all of a parent's other-case children
type ClearOtherCaseChildren struct {
	Party domain.Party
}

func (co *ClearOtherCaseChildren) Name() string {
	return "clear_other_cases"
}

func (co *ClearOtherCaseChildren) Description() string {
	return fmt.Sprintf("Remove %s's other cases", co.Party.Label())
}

func (co *ClearOtherCaseChildren) Validate(base *domain.FormState) error {
	if base == nil {
		return NewTransformError(co.Name(), "validate", "base form cannot be nil", nil)
	}
	return nil
}

func (co *ClearOtherCaseChildren) Apply(base *domain.FormState) (*domain.FormState, error) {
	modified := base.DeepCopy()
	fin := modified.Party(co.Party)
	fin.OtherCaseChildren = nil
	setParty(modified, co.Party, fin)
	return modified, nil
}
