package breakeven

import (
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// SearchTarget defines which input the solver varies
type SearchTarget string

const (
	TargetIncome SearchTarget = "income" // A parent's adjusted taxable income
	TargetCare   SearchTarget = "care"   // A parent's nights of care a year
)

// SearchGoal defines what outcome to find
type SearchGoal string

const (
	// GoalBreakEven finds where the payment between the parents reaches zero
	// or changes direction.
	GoalBreakEven SearchGoal = "break_even"
	// GoalMatchPosition finds where Parent A's net position reaches a target
	GoalMatchPosition SearchGoal = "match_position"
)

// NightsPerYear bounds a care search
const NightsPerYear = 365

var defaultMaxIncome = decimal.NewFromInt(300000)

// Constraints define the search range and target
type Constraints struct {
	// Party whose income or care is varied (required)
	Party domain.Party `json:"party"`

	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`

	// TargetPosition is Parent A's net position to reach for the
	// match_position goal: positive when A pays, negative when A receives.
	TargetPosition *decimal.Decimal `json:"targetPosition,omitempty"`
}

// Request defines the parameters for a search
type Request struct {
	Scenario      *domain.Scenario      `json:"-"`
	Year          domain.AssessmentYear `json:"year"`
	Target        SearchTarget          `json:"target"`
	Goal          SearchGoal            `json:"goal"`
	Constraints   Constraints           `json:"constraints"`
	MaxIterations int                   `json:"-"`
	Tolerance     decimal.Decimal       `json:"-"` // Width of the final bracket
}

// Result contains the outcome of a search
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergenceInfo"`

	// Value is the first income (dollars) or care (nights) on the far side
	// of the target.
	Value decimal.Decimal `json:"value"`

	// Outcome at Value
	Payer         string                    `json:"payer"`
	AnnualPayment decimal.Decimal           `json:"annualPayment"`
	NetPositionA  decimal.Decimal           `json:"netPositionA"`
	RateApplied   string                    `json:"rateApplied"`
	Result        *domain.CalculationResult `json:"-"`

	// Comparison to the unchanged scenario
	BaseValue        decimal.Decimal `json:"baseValue"`
	BaseNetPositionA decimal.Decimal `json:"baseNetPositionA"`
	PositionDiff     decimal.Decimal `json:"positionDiffFromBase"`
}

// MultiResult holds one search per parent
type MultiResult struct {
	Results []Result `json:"results"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Width of the final income bracket in dollars
	MaxIterations int             // Maximum bisection steps
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1), // to the dollar
		MaxIterations: 60,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate(target SearchTarget, goal SearchGoal) error {
	if c.Party != domain.ParentA && c.Party != domain.ParentB {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "party must be A or B",
		}
	}

	switch target {
	case TargetIncome, TargetCare:
	default:
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "unsupported search target: " + string(target),
		}
	}

	switch goal {
	case GoalBreakEven:
	case GoalMatchPosition:
		if c.TargetPosition == nil {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "match_position requires a target position",
			}
		}
	default:
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "unsupported search goal: " + string(goal),
		}
	}

	if c.Min != nil && c.Min.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min cannot be negative",
		}
	}
	if c.Min != nil && c.Max != nil && c.Min.GreaterThanOrEqual(*c.Max) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min must be less than max",
		}
	}
	if target == TargetCare && c.Max != nil && c.Max.GreaterThan(decimal.NewFromInt(NightsPerYear)) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "care cannot exceed 365 nights",
		}
	}

	return nil
}

// bounds returns the search range for a target, rounded to whole units
func (c *Constraints) bounds(target SearchTarget) (decimal.Decimal, decimal.Decimal) {
	lo, hi := decimal.Zero, defaultMaxIncome
	if target == TargetCare {
		hi = decimal.NewFromInt(NightsPerYear)
	}
	if c.Min != nil {
		lo = c.Min.Round(0)
	}
	if c.Max != nil {
		hi = c.Max.Round(0)
	}
	return lo, hi
}

// goalPosition is the net position the search aims for
func (c *Constraints) goalPosition(goal SearchGoal) decimal.Decimal {
	if goal == GoalMatchPosition && c.TargetPosition != nil {
		return *c.TargetPosition
	}
	return decimal.Zero
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
