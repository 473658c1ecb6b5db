// Package calculation implements the child support assessment: incomes,
// costs of children, per-child liabilities, statutory rates, multi-case
// limits, the alternate formulas and the final payment.
package calculation

import (
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/tables"
)

// Engine computes assessments from a set of year tables. It holds no
// per-calculation state and is safe for concurrent use.
type Engine struct {
	registry *tables.Registry
	Logger   Logger
}

// NewEngine creates an engine over the given tables
func NewEngine(reg *tables.Registry) *Engine {
	return &Engine{registry: reg, Logger: NopLogger{}}
}

// NewDefaultEngine creates an engine over the embedded tables
func NewDefaultEngine() (*Engine, error) {
	reg, err := tables.Default()
	if err != nil {
		return nil, err
	}
	return NewEngine(reg), nil
}

// SetLogger sets the logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Registry returns the tables the engine reads from
func (e *Engine) Registry() *tables.Registry {
	return e.registry
}

// integrity wraps a table failure as a data integrity error and logs it
func (e *Engine) integrity(err error) error {
	e.Logger.Errorf("table data: %v", err)
	return fmt.Errorf("%w: %w", ErrDataIntegrity, err)
}

// FormulaFor reports which formula a form is assessed under
func (e *Engine) FormulaFor(form *domain.FormState) domain.Formula {
	npc := form.NonParentCarer
	if !npc.Enabled || npc.AbsentParent == nil {
		return domain.FormulaStandard
	}
	switch npc.AbsentParent.Reason {
	case domain.AbsentDeceased:
		return domain.Formula6
	case domain.AbsentOverseas:
		if e.registry.Jurisdiction(npc.AbsentParent.Country) == tables.NonReciprocating {
			return domain.Formula5
		}
	}
	return domain.FormulaStandard
}

// Compute runs a complete assessment of form for the given year. overrides,
// which may be nil, force the income support flags without changing the form.
// Invalid input yields a *ValidationError; missing table data yields an error
// wrapping ErrDataIntegrity.
func (e *Engine) Compute(form domain.FormState, year domain.AssessmentYear, overrides *domain.Overrides) (*domain.CalculationResult, error) {
	if err := e.Validate(&form); err != nil {
		return nil, err
	}
	a, err := newAssessment(e.registry, year, e.Logger)
	if err != nil {
		return nil, e.integrity(err)
	}

	formula := e.FormulaFor(&form)
	e.Logger.Debugf("assessing %d children for %s under %s", len(form.Children), year, formula)

	var res *domain.CalculationResult
	if formula == domain.FormulaStandard {
		res, err = a.standard(&form, overrides)
	} else {
		absent := form.NonParentCarer.AbsentParent
		in := alternateInput(&form, absent)
		var alt *domain.AlternateResult
		alt, err = a.alternate(formula, in)
		if err == nil {
			res = alternateResult(a, &form, alt, overrides.Support(in.Party, &form))
		}
	}
	if err != nil {
		return nil, e.integrity(err)
	}
	return res, nil
}

func (e *Engine) calculateAlternate(f domain.Formula, in AlternateInput, year domain.AssessmentYear) (*domain.AlternateResult, error) {
	if err := validateAlternate(in); err != nil {
		return nil, err
	}
	a, err := newAssessment(e.registry, year, e.Logger)
	if err != nil {
		return nil, e.integrity(err)
	}
	res, err := a.alternate(f, in)
	if err != nil {
		return nil, e.integrity(err)
	}
	return res, nil
}

// standard runs the two-parent pipeline. Each stage returns a fresh slice of
// child results.
func (a *assessment) standard(form *domain.FormState, overrides *domain.Overrides) (*domain.CalculationResult, error) {
	assessable := form.AssessableChildren()
	npcEnabled := form.NonParentCarer.Enabled

	incA, err := a.partyIncome(form.ParentA, len(assessable), overrides.Support(domain.ParentA, form))
	if err != nil {
		return nil, fmt.Errorf("parent A income: %w", err)
	}
	incB, err := a.partyIncome(form.ParentB, len(assessable), overrides.Support(domain.ParentB, form))
	if err != nil {
		return nil, fmt.Errorf("parent B income: %w", err)
	}
	ccsi := incomePercentages(&incA, &incB)

	cost, err := a.cost(agesOf(form.Children), ccsi)
	if err != nil {
		return nil, fmt.Errorf("cost of children: %w", err)
	}

	children := make([]domain.ChildResult, len(form.Children))
	for i, c := range form.Children {
		r := newChildResult(i, c, npcEnabled, incA, incB, cost.PerChild())
		children[i] = assignLiability(r, npcEnabled)
	}

	res := &domain.CalculationResult{
		Formula:         domain.FormulaStandard,
		Constants:       a.constants,
		IncomeA:         incA,
		IncomeB:         incB,
		CCSI:            ccsi,
		TotalCost:       cost.Total,
		CostPerChild:    cost.PerChild(),
		AssessableCount: cost.Assessable,
		CostBracket:     cost.Bracket,
	}
	if cost.Assessable > 0 {
		res.AgeGroup = cost.Group.String()
	}
	for _, c := range children {
		res.StandardTotalA = res.StandardTotalA.Add(c.LiabilityA)
		res.StandardTotalB = res.StandardTotalB.Add(c.LiabilityB)
	}

	incomes := map[domain.Party]domain.PartyIncome{domain.ParentA: incA, domain.ParentB: incB}
	children = a.applyRates(children, incomes, npcEnabled)

	for _, p := range []domain.Party{domain.ParentA, domain.ParentB} {
		others := form.Party(p).OtherCaseChildren
		var capped bool
		children, capped, err = a.applyMultiCaseCaps(children, p, incomes[p], others)
		if err != nil {
			return nil, fmt.Errorf("multi-case cap for parent %s: %w", p, err)
		}

		var marNote, farNote string
		children, marNote = a.applyMARCap(children, p, others)
		children, farNote = a.applyFARCap(children, p, others)

		if p == domain.ParentA {
			res.MultiCaseCapA, res.MARCapNoteA, res.FARCapNoteA = capped, marNote, farNote
		} else {
			res.MultiCaseCapB, res.MARCapNoteB, res.FARCapNoteB = capped, marNote, farNote
		}
	}

	res.Children = redirectRates(children, npcEnabled)
	resolvePayment(res, form.NonParentCarer)
	return res, nil
}
