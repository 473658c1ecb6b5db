package calculation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rgehrsitz/csacalc/internal/care"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/tables"
	"github.com/shopspring/decimal"
)

var (
	validate = newValidator()

	shareTolerance = decimal.RequireFromString("0.01")
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Compare decimals numerically so gte/lte tags work on money fields.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// structErrors runs tag validation on s and copies each failure into verr
func structErrors(s any, verr *ValidationError) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	for _, fe := range fieldErrs {
		// Drop the root type name: "FormState.parentA.income" -> "parentA.income"
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		verr.add(path, fieldMessage(fe))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "needs at least " + fe.Param() + " entry"
	case "max":
		return "allows at most " + fe.Param() + " entries"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return fe.Error()
	}
}

// Validate checks a form before any calculation runs. It returns a
// *ValidationError listing every failing field, or nil.
func (e *Engine) Validate(form *domain.FormState) error {
	return validateForm(form, e.registry)
}

func validateForm(form *domain.FormState, reg *tables.Registry) error {
	verr := &ValidationError{}
	if err := structErrors(form, verr); err != nil {
		return err
	}

	if len(form.Children) == 0 {
		verr.add("children", "at least one child is required")
	}
	for i, c := range form.Children {
		checkChildCare(i, c, form.NonParentCarer.Enabled, verr)
	}

	npc := form.NonParentCarer
	if npc.Enabled && npc.SecondCarer {
		checkCarerShares("nonParentCarer.carerShares", npc.Carer1Share, npc.Carer2Share, verr)
	}
	if ap := npc.AbsentParent; npc.Enabled && ap != nil && ap.Reason == domain.AbsentOverseas {
		if reg.Jurisdiction(ap.Country) == tables.Excluded {
			verr.add("nonParentCarer.absentParent.country",
				fmt.Sprintf("%s is an excluded jurisdiction; no assessment can be made", ap.Country))
		}
	}
	return verr.errOrNil()
}

func checkChildCare(i int, c domain.Child, npcEnabled bool, verr *ValidationError) {
	if !c.Period.Valid() {
		// Reported by the tag check.
		return
	}
	prefix := fmt.Sprintf("children[%d]", i)
	limit := care.MaxForPeriod(c.Period)
	amounts := []struct {
		field  string
		amount decimal.Decimal
	}{
		{"careA", c.CareA},
		{"careB", c.CareB},
		{"careNPC", c.CareNPC},
	}
	for _, a := range amounts {
		if a.amount.GreaterThan(limit) {
			verr.add(prefix+"."+a.field, fmt.Sprintf("must be at most %s per %s", limit, c.Period))
		}
	}
	if c.CareNPC.IsPositive() && !npcEnabled {
		verr.add(prefix+".careNPC", "requires a non-parent carer")
	}

	_, total := care.Percentages(c.Period, c.CareA, c.CareB, c.CareNPC)
	if !care.Reconciles(total) {
		verr.add(prefix+".care", fmt.Sprintf("care must account for the whole %s, got %s%%", c.Period, total.StringFixed(2)))
	}
}

func checkCarerShares(field string, s1, s2 decimal.Decimal, verr *ValidationError) {
	if s1.Add(s2).Sub(hundred).Abs().GreaterThan(shareTolerance) {
		verr.add(field, "carer shares must total 100%")
	}
}

func validateAlternate(in AlternateInput) error {
	verr := &ValidationError{}
	if err := structErrors(in, verr); err != nil {
		return err
	}
	if in.SecondCarer {
		checkCarerShares("carerShares", in.Carer1Share, in.Carer2Share, verr)
	}
	return verr.errOrNil()
}
