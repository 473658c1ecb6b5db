package main

import (
	"fmt"
	"os"
	"strconv"

	calc "github.com/rgehrsitz/csacalc/internal/calculation"
	"github.com/rgehrsitz/csacalc/internal/care"
	"github.com/rgehrsitz/csacalc/internal/compare"
	"github.com/rgehrsitz/csacalc/internal/config"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/transform"
	"github.com/shopspring/decimal"
)

// Prints Parent A's position for every step of Parent A's nights of care,
// the other parent having the rest of the year, and the first night at which
// the direction of payment changes.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_care_sweep <scenario-file> [step-nights]")
		return
	}
	step := 7
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 1 {
			fmt.Println("step must be a positive number of nights")
			return
		}
		step = n
	}

	scenario, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	if scenario.Form.NonParentCarer.Enabled {
		fmt.Println("care sweep needs a case without a non-parent carer")
		return
	}
	engine, err := calc.NewDefaultEngine()
	if err != nil {
		panic(err)
	}
	year := scenario.Year
	if year == 0 {
		year = engine.Registry().Latest()
	}
	metrics := compare.NewMetricsCalculator()

	fmt.Println("Nights,CareA,RoundedA,CostPercA,Payer,Rate,Payment,NetPositionA")

	var points []sweepPoint
	for nights := 0; nights <= 365; nights += step {
		n := decimal.NewFromInt(int64(nights))
		form, err := transform.ApplyTransforms(&scenario.Form, careTransforms(&scenario.Form, n))
		if err != nil {
			panic(err)
		}
		res, err := engine.Compute(*form, year, scenario.Overrides)
		if err != nil {
			panic(err)
		}
		m := metrics.CalculateMetrics(scenario.Name, res)

		pct := care.ToPercentage(n, domain.PeriodYear)
		rounded := care.Round(pct)
		fmt.Printf("%d,%s,%d,%d,%s,%s,%s,%s\n",
			nights,
			pct.StringFixed(2),
			rounded,
			care.CostPercentage(rounded),
			m.Payer,
			m.RateApplied,
			m.AnnualPayment.StringFixed(2),
			m.NetPositionA.StringFixed(2),
		)
		points = append(points, sweepPoint{Nights: nights, Position: m.NetPositionA})
	}

	if p := firstCrossing(points); p != nil {
		fmt.Printf("\nPayment direction changes by %d nights (position %s)\n", p.Nights, p.Position.StringFixed(2))
	} else {
		fmt.Println("\nPayment direction does not change across the year")
	}
}

type sweepPoint struct {
	Nights   int
	Position decimal.Decimal
}

func careTransforms(form *domain.FormState, nights decimal.Decimal) []transform.ScenarioTransform {
	rest := decimal.NewFromInt(365).Sub(nights)
	out := make([]transform.ScenarioTransform, len(form.Children))
	for i := range out {
		out[i] = &transform.SetCare{Child: i, CareA: nights, CareB: rest, Period: domain.PeriodYear}
	}
	return out
}

// firstCrossing returns the first point whose position is zero or has the
// opposite sign to the one before it
func firstCrossing(points []sweepPoint) *sweepPoint {
	for i, p := range points {
		if p.Position.IsZero() {
			return &points[i]
		}
		if i > 0 && p.Position.Sign() != points[i-1].Position.Sign() {
			return &points[i]
		}
	}
	return nil
}
