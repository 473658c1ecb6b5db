package transform

import (
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/domain"
)

// ScenarioTransform defines the interface for all form transformations.
// Transforms are composable what-if edits: each one returns a modified copy of
// the form and never mutates its input.
type ScenarioTransform interface {
	// Apply transforms a base form and returns a new modified form.
	Apply(base *domain.FormState) (*domain.FormState, error)

	// Name returns a short identifier for this transform (e.g., "set_income").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks the transform parameters against a form without applying it.
	Validate(base *domain.FormState) error
}

// ApplyTransforms applies a sequence of transforms to a base form.
// Transforms are applied in order, with each transform receiving the output of the previous one.
func ApplyTransforms(base *domain.FormState, transforms []ScenarioTransform) (*domain.FormState, error) {
	if base == nil {
		return nil, fmt.Errorf("base form cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, transform := range transforms {
		if transform == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}

// setParty writes fin back into the given parent's slot of f
func setParty(f *domain.FormState, p domain.Party, fin domain.PartyFinancials) {
	if p == domain.ParentB {
		f.ParentB = fin
		return
	}
	f.ParentA = fin
}

func checkChild(name string, base *domain.FormState, index int) error {
	if base == nil {
		return NewTransformError(name, "validate", "base form cannot be nil", nil)
	}
	if index < 0 || index >= len(base.Children) {
		return NewTransformError(name, "validate",
			fmt.Sprintf("child %d not found (form has %d children)", index, len(base.Children)), nil)
	}
	return nil
}
