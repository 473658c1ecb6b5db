package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/calculation"
	"github.com/rgehrsitz/csacalc/internal/care"
	"github.com/rgehrsitz/csacalc/internal/compare"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/transform"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver searches for the income or care at which an assessment reaches a goal
type Solver struct {
	CalcEngine *calculation.Engine
	Metrics    *compare.MetricsCalculator
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Metrics:    compare.NewMetricsCalculator(),
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// probe is one evaluated point of the search
type probe struct {
	value   decimal.Decimal
	metrics compare.ComparisonResult
	gap     decimal.Decimal // net position minus the goal position
}

// Solve bisects the search range for the point where Parent A's net position
// crosses the goal. The net position is assumed to move one way across the
// range; when both ends fall on the same side of the goal the result reports
// failure rather than an error.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Scenario == nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "scenario cannot be nil"}
	}
	if err := req.Constraints.Validate(req.Target, req.Goal); err != nil {
		return nil, err
	}
	if req.Target == TargetCare && req.Scenario.Form.NonParentCarer.Enabled {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   "care search requires a case without a non-parent carer",
		}
	}

	// Apply defaults
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if req.Target == TargetCare {
		req.Tolerance = decimal.Max(req.Tolerance.Round(0), decimal.NewFromInt(1))
	}

	base, err := s.evaluateForm(req, &req.Scenario.Form)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate base scenario", Cause: err}
	}

	goal := req.Constraints.goalPosition(req.Goal)
	lower, upper := req.Constraints.bounds(req.Target)

	lo, err := s.probe(ctx, req, lower, goal)
	if err != nil {
		return nil, err
	}
	hi, err := s.probe(ctx, req, upper, goal)
	if err != nil {
		return nil, err
	}

	result := func(p probe, success bool, info string, iterations int) *Result {
		r := &Result{
			Request:          req,
			Success:          success,
			Iterations:       iterations,
			ConvergenceInfo:  info,
			Value:            p.value,
			Payer:            p.metrics.Payer,
			AnnualPayment:    p.metrics.AnnualPayment,
			NetPositionA:     p.metrics.NetPositionA,
			RateApplied:      p.metrics.RateApplied,
			Result:           p.metrics.Result,
			BaseValue:        baseValue(req),
			BaseNetPositionA: base.NetPositionA,
		}
		r.PositionDiff = r.NetPositionA.Sub(base.NetPositionA)
		return r
	}

	switch {
	case lo.gap.IsZero():
		return result(lo, true, "Goal met at the bottom of the range", 0), nil
	case lo.gap.Sign() == hi.gap.Sign():
		closest := lo
		if hi.gap.Abs().LessThan(lo.gap.Abs()) {
			closest = hi
		}
		return result(closest, false, fmt.Sprintf("Goal not reached between %s and %s",
			lower.String(), upper.String()), 0), nil
	}

	iterations := 0
	for hi.value.Sub(lo.value).GreaterThan(req.Tolerance) {
		if iterations >= req.MaxIterations {
			return result(hi, false, fmt.Sprintf("Did not converge within %d iterations", req.MaxIterations), iterations), nil
		}
		iterations++

		mid := lo.value.Add(hi.value).Div(two).Floor()
		if mid.Equal(lo.value) {
			break
		}
		p, err := s.probe(ctx, req, mid, goal)
		if err != nil {
			return nil, err
		}
		if p.gap.Sign() == lo.gap.Sign() {
			lo = p
		} else {
			hi = p
		}
	}

	return result(hi, true, fmt.Sprintf("Converged to within %s %s", req.Tolerance.String(), unit(req.Target)), iterations), nil
}

// probe assesses the scenario with the searched input set to v
func (s *Solver) probe(ctx context.Context, req Request, v, goal decimal.Decimal) (probe, error) {
	if err := ctx.Err(); err != nil {
		return probe{}, err
	}

	modified, err := transform.ApplyTransforms(&req.Scenario.Form, transformsFor(req, v))
	if err != nil {
		return probe{}, &BreakEvenError{
			Operation: "solve_" + string(req.Target),
			Message:   "failed to apply " + string(req.Target) + " transform",
			Cause:     err,
		}
	}
	metrics, err := s.evaluateForm(req, modified)
	if err != nil {
		return probe{}, &BreakEvenError{
			Operation: "solve_" + string(req.Target),
			Message:   fmt.Sprintf("failed to calculate at %s", v.String()),
			Cause:     err,
		}
	}
	return probe{value: v, metrics: metrics, gap: metrics.NetPositionA.Sub(goal)}, nil
}

func (s *Solver) evaluateForm(req Request, form *domain.FormState) (compare.ComparisonResult, error) {
	res, err := s.CalcEngine.Compute(*form, req.Year, req.Scenario.Overrides)
	if err != nil {
		return compare.ComparisonResult{}, err
	}
	return s.Metrics.CalculateMetrics(req.Scenario.Name, res), nil
}

// transformsFor sets the searched input to v. A care search gives the party
// v nights of every child and the other parent the rest of the year.
func transformsFor(req Request, v decimal.Decimal) []transform.ScenarioTransform {
	p := req.Constraints.Party
	if req.Target == TargetIncome {
		return []transform.ScenarioTransform{&transform.SetIncome{Party: p, Amount: v}}
	}

	rest := decimal.NewFromInt(NightsPerYear).Sub(v)
	careA, careB := v, rest
	if p == domain.ParentB {
		careA, careB = rest, v
	}
	out := make([]transform.ScenarioTransform, len(req.Scenario.Form.Children))
	for i := range out {
		out[i] = &transform.SetCare{Child: i, CareA: careA, CareB: careB, Period: domain.PeriodYear}
	}
	return out
}

// baseValue is the searched input as the scenario has it. For care this is
// the party's nights of the first child.
func baseValue(req Request) decimal.Decimal {
	form := &req.Scenario.Form
	p := req.Constraints.Party
	if req.Target == TargetIncome {
		return form.Party(p).Income
	}
	if len(form.Children) == 0 {
		return decimal.Zero
	}
	c := form.Children[0]
	amount := c.CareA
	if p == domain.ParentB {
		amount = c.CareB
	}
	return care.ToPercentage(amount, c.Period).
		Mul(decimal.NewFromInt(NightsPerYear)).
		Div(decimal.NewFromInt(100)).
		Round(0)
}

func unit(target SearchTarget) string {
	if target == TargetCare {
		return "nights"
	}
	return "dollars"
}
