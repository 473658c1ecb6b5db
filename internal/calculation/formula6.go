package calculation

import "github.com/rgehrsitz/csacalc/internal/domain"

// CalculateFormula6 assesses the surviving parent when the other parent has
// died.
func (e *Engine) CalculateFormula6(in AlternateInput, year domain.AssessmentYear) (*domain.AlternateResult, error) {
	return e.calculateAlternate(domain.Formula6, in, year)
}
