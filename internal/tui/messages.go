package tui

import "github.com/rgehrsitz/csacalc/internal/domain"

// CalculationCompleteMsg carries the outcome of a recalculation. Seq
// identifies the request so that results of superseded requests are dropped.
type CalculationCompleteMsg struct {
	Seq    int
	Result *domain.CalculationResult
	Err    error
}
