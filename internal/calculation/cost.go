package calculation

import (
	"slices"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/tables"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// childCost is the cost of a group of children at one income
type childCost struct {
	Total      decimal.Decimal
	Assessable int
	Group      domain.AgeGroup
	Bracket    domain.CostBracketInfo
}

// PerChild splits the total evenly across the assessable children
func (c childCost) PerChild() decimal.Decimal {
	if c.Assessable == 0 {
		return decimal.Zero
	}
	return c.Total.Div(decimal.NewFromInt(int64(c.Assessable)))
}

// assessment binds the tables of one assessment year for the duration of a
// single calculation.
type assessment struct {
	reg       *tables.Registry
	year      domain.AssessmentYear
	constants domain.YearConstants
	logger    Logger
}

func newAssessment(reg *tables.Registry, year domain.AssessmentYear, logger Logger) (*assessment, error) {
	c, err := reg.Constants(year)
	if err != nil {
		return nil, err
	}
	return &assessment{reg: reg, year: year, constants: c, logger: logger}, nil
}

// ageGroupOf classifies the children under 18 among ages and counts them
func ageGroupOf(ages []int) (domain.AgeGroup, int) {
	var younger, older int
	for _, age := range ages {
		switch domain.AgeBandOf(age) {
		case domain.BandYounger:
			younger++
		case domain.BandOlder:
			older++
		}
	}
	switch {
	case younger > 0 && older > 0:
		return domain.Mixed, younger + older
	case older > 0:
		return domain.AllOlder, older
	default:
		return domain.AllYounger, younger
	}
}

// cost resolves the cost of the children with the given ages at income.
// Adults are ignored; with no assessable children the cost is zero.
func (a *assessment) cost(ages []int, income decimal.Decimal) (childCost, error) {
	group, n := ageGroupOf(ages)
	if n == 0 {
		return childCost{}, nil
	}
	brackets, err := a.reg.Brackets(a.year, group, domain.ChildCountOf(n))
	if err != nil {
		return childCost{}, err
	}
	b, err := tables.Lookup(brackets, income)
	if err != nil {
		return childCost{}, err
	}
	return childCost{
		Total:      b.Cost(income),
		Assessable: n,
		Group:      group,
		Bracket: domain.CostBracketInfo{
			MinIncome:       b.MinIncome,
			MaxIncome:       b.MaxIncome,
			Fixed:           b.Fixed,
			Rate:            b.Rate,
			IncomeInBracket: b.InBracket(income),
		},
	}, nil
}

// soloCostPerChild is the per-child cost of n children who are all the given
// age. The multi-case allowance and cap both price children this way.
func (a *assessment) soloCostPerChild(age, n int, income decimal.Decimal) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, nil
	}
	c, err := a.cost(slices.Repeat([]int{age}, n), income)
	if err != nil {
		return decimal.Zero, err
	}
	return c.PerChild(), nil
}

func agesOf(children []domain.Child) []int {
	ages := make([]int, len(children))
	for i, c := range children {
		ages[i] = c.Age
	}
	return ages
}
