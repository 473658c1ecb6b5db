package calculation

import "github.com/rgehrsitz/csacalc/internal/domain"

// CalculateFormula5 assesses a parent whose co-parent lives in a jurisdiction
// without a reciprocal child support arrangement.
func (e *Engine) CalculateFormula5(in AlternateInput, year domain.AssessmentYear) (*domain.AlternateResult, error) {
	return e.calculateAlternate(domain.Formula5, in, year)
}
