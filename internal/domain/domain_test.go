package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParty(t *testing.T) {
	assert.Equal(t, ParentB, ParentA.Other())
	assert.Equal(t, ParentA, ParentB.Other())
	assert.Equal(t, "Parent A", ParentA.Label())
	assert.Equal(t, "Parent B", ParentB.Label())

	for _, in := range []string{"A", "a", " a "} {
		p, err := ParseParty(in)
		require.NoError(t, err, in)
		assert.Equal(t, ParentA, p)
	}
	p, err := ParseParty("b")
	require.NoError(t, err)
	assert.Equal(t, ParentB, p)

	_, err = ParseParty("C")
	assert.EqualError(t, err, `invalid party "C", expected A or B`)
}

func TestCarePeriod(t *testing.T) {
	tests := []struct {
		period CarePeriod
		days   int
		valid  bool
	}{
		{PeriodWeek, 7, true},
		{PeriodFortnight, 14, true},
		{PeriodYear, 365, true},
		{PeriodPercent, 0, true},
		{"month", 0, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			assert.Equal(t, tt.days, tt.period.Days())
			assert.Equal(t, tt.valid, tt.period.Valid())
		})
	}
}

func TestAgeKeys(t *testing.T) {
	assert.Equal(t, BandYounger, AgeBandOf(12))
	assert.Equal(t, BandOlder, AgeBandOf(13))
	assert.Equal(t, BandOlder, AgeBandOf(17))
	assert.Equal(t, BandAdult, AgeBandOf(18))

	assert.Equal(t, OneChild, ChildCountOf(1))
	assert.Equal(t, TwoChildren, ChildCountOf(2))
	assert.Equal(t, ThreePlusChildren, ChildCountOf(5))
	assert.Equal(t, "3+", ThreePlusChildren.String())
	assert.Equal(t, "mixed", Mixed.String())
	assert.Equal(t, "AgeGroup(9)", AgeGroup(9).String())
}

func TestChild(t *testing.T) {
	assert.Equal(t, "Sam", Child{ID: "Sam"}.Label(0))
	assert.Equal(t, "Child 2", Child{}.Label(1))
	assert.True(t, Child{Age: 18}.IsAdult())
	assert.False(t, Child{Age: 17}.IsAdult())
}

func TestFormState(t *testing.T) {
	form := &FormState{
		ParentA: PartyFinancials{
			Income:            decimal.NewFromInt(80000),
			OtherCaseChildren: []OtherCaseChild{{Age: 4}},
		},
		ParentB: PartyFinancials{Income: decimal.NewFromInt(60000), ReceivesIncomeSupport: true},
		Children: []Child{
			{ID: "one", Age: 10},
			{ID: "two", Age: 19},
		},
		NonParentCarer: NonParentCarerInfo{
			AbsentParent: &AbsentParent{Party: ParentB, Reason: AbsentOverseas, Country: "Japan"},
		},
	}

	assert.True(t, form.Party(ParentB).Income.Equal(decimal.NewFromInt(60000)))
	assert.True(t, form.Party(ParentA).HasMultiCase())
	assert.False(t, form.Party(ParentB).HasMultiCase())

	kids := form.AssessableChildren()
	require.Len(t, kids, 1)
	assert.Equal(t, "one", kids[0].ID)

	c := form.DeepCopy()
	c.Children[0].Age = 5
	c.ParentA.OtherCaseChildren[0].Age = 9
	c.NonParentCarer.AbsentParent.Country = "Iran"
	assert.Equal(t, 10, form.Children[0].Age)
	assert.Equal(t, 4, form.ParentA.OtherCaseChildren[0].Age)
	assert.Equal(t, "Japan", form.NonParentCarer.AbsentParent.Country)
}

func TestOverridesSupport(t *testing.T) {
	form := &FormState{ParentB: PartyFinancials{ReceivesIncomeSupport: true}}
	yes, no := true, false

	var none *Overrides
	assert.False(t, none.Support(ParentA, form))
	assert.True(t, none.Support(ParentB, form))

	o := &Overrides{SupportA: &yes, SupportB: &no}
	assert.True(t, o.Support(ParentA, form))
	assert.False(t, o.Support(ParentB, form))

	partial := &Overrides{SupportA: &no}
	assert.True(t, partial.Support(ParentB, form))
}

func TestRateSummaryString(t *testing.T) {
	tests := []struct {
		name string
		r    RateSummary
		want string
	}{
		{"none", RateSummary{Kind: RateNone}, "None"},
		{"mar a", RateSummary{Kind: RateMAR, PartyA: true}, "MAR (Parent A)"},
		{"mar both", RateSummary{Kind: RateMAR, PartyA: true, PartyB: true}, "MAR (Both Parents)"},
		{"far one", RateSummary{Kind: RateFAR, PartyB: true, FARChildren: 1}, "FAR (Parent B, 1 child)"},
		{"far many", RateSummary{Kind: RateFAR, PartyA: true, FARChildren: 3}, "FAR (Parent A, 3 children)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.String())
		})
	}
	assert.False(t, RateSummary{Kind: RateNone, PartyA: true, PartyB: true}.Both())
}

func TestFormulaString(t *testing.T) {
	assert.Equal(t, "Standard", FormulaStandard.String())
	assert.Equal(t, "Formula 5 (parent overseas)", Formula5.String())
	assert.Equal(t, "Formula 6 (parent deceased)", Formula6.String())
	assert.Equal(t, "Formula(2)", Formula(2).String())
}

func TestCostBracket(t *testing.T) {
	upper := decimal.NewFromInt(50000)
	b := CostBracket{
		MinIncome: decimal.NewFromInt(40000),
		MaxIncome: &upper,
		Fixed:     decimal.NewFromInt(1000),
		Rate:      decimal.RequireFromString("0.1"),
	}

	assert.True(t, b.Contains(decimal.NewFromInt(45000)))
	assert.False(t, b.Contains(decimal.NewFromInt(39999)))
	assert.False(t, b.Contains(decimal.NewFromInt(50001)))
	assert.True(t, b.Cost(decimal.NewFromInt(45000)).Equal(decimal.NewFromInt(1500)))
	assert.True(t, b.Cost(decimal.NewFromInt(90000)).Equal(decimal.NewFromInt(2000)))

	top := CostBracket{MinIncome: decimal.NewFromInt(50000)}
	assert.True(t, top.Contains(decimal.NewFromInt(1000000)))
	assert.Equal(t, "2026", AssessmentYear(2026).String())
}
