package calculation

import (
	"testing"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alternateIn(income int64, ages ...int) AlternateInput {
	return AlternateInput{Party: domain.ParentA, Income: d(income), ChildAges: ages}
}

func TestCalculateFormula6(t *testing.T) {
	engine := newTestEngine(t)

	res, err := engine.CalculateFormula6(alternateIn(80000, 10), year2026)
	require.NoError(t, err)

	assert.Equal(t, domain.Formula6, res.Formula)
	assert.Equal(t, domain.AbsentDeceased, res.Reason)
	assert.True(t, res.CSI.Equal(d(48954)))
	assert.True(t, res.AssessedIncome.Equal(res.CSI), "income is not doubled")
	assert.InDelta(t, 8274.75, f(res.AnnualRate), 0.001)
	assert.True(t, res.RateAfter.Equal(res.RateBefore), "rate is not halved")
	assert.InDelta(t, 8274.75/12, f(res.Monthly), 0.001)
	assert.Nil(t, res.MultiCaseCap)
}

func TestCalculateFormula5(t *testing.T) {
	engine := newTestEngine(t)

	in := alternateIn(80000, 10)
	in.Country = "Japan"
	res, err := engine.CalculateFormula5(in, year2026)
	require.NoError(t, err)

	assert.Equal(t, domain.Formula5, res.Formula)
	assert.Equal(t, "Japan", res.Country)
	assert.True(t, res.AssessedIncome.Equal(d(97908)))
	assert.InDelta(t, 15474.52, f(res.RateBefore), 0.001)
	assert.InDelta(t, 7737.26, f(res.AnnualRate), 0.001)
}

func TestFormula5_IsHalfOfFormula6AtDoubleIncome(t *testing.T) {
	engine := newTestEngine(t)
	ssa := d(31046)

	for _, income := range []int64{31046, 40000, 65000, 80000, 150000} {
		for _, carePct := range []int64{0, 20, 40, 60} {
			in := alternateIn(income, 4, 15)
			in.CarePercentage = d(carePct)
			f5, err := engine.CalculateFormula5(in, year2026)
			require.NoError(t, err)

			doubled := in
			doubled.Income = f5.CSI.Mul(d(2)).Add(ssa)
			f6, err := engine.CalculateFormula6(doubled, year2026)
			require.NoError(t, err)

			assert.True(t, f5.RateBefore.Equal(f6.AnnualRate), "income %d care %d", income, carePct)
			assert.True(t, f5.AnnualRate.Equal(f6.AnnualRate.Mul(decimal.NewFromFloat(0.5))), "income %d care %d", income, carePct)
		}
	}
}

func TestFormula6_MultiCaseCap(t *testing.T) {
	engine := newTestEngine(t)

	in := alternateIn(80000, 10)
	in.OtherCaseChildren = []domain.OtherCaseChild{{Age: 8}}
	res, err := engine.CalculateFormula6(in, year2026)
	require.NoError(t, err)

	assert.True(t, res.Allowance.Equal(d(5863)), "allowance = %s", res.Allowance)
	assert.True(t, res.CSI.Equal(d(43091)))
	assert.InDelta(t, 7325.47, f(res.RateAfter), 0.001)
	require.NotNil(t, res.MultiCaseCap)
	assert.True(t, res.MultiCaseCap.Equal(d(5863)))
	assert.True(t, res.CapApplied)
	assert.True(t, res.AnnualRate.Equal(d(5863)))
}

func TestAlternate_TwoCarerSplit(t *testing.T) {
	engine := newTestEngine(t)

	in := alternateIn(80000, 10)
	in.SecondCarer = true
	in.Carer1Share, in.Carer2Share = d(70), d(30)
	res, err := engine.CalculateFormula6(in, year2026)
	require.NoError(t, err)

	require.NotNil(t, res.PaymentCarer1)
	require.NotNil(t, res.PaymentCarer2)
	assert.True(t, res.PaymentCarer1.Add(*res.PaymentCarer2).Equal(res.AnnualRate))
	assert.InDelta(t, 5792.33, f(*res.PaymentCarer1), 0.001)
}

func TestAlternate_Validation(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name   string
		modify func(*AlternateInput)
		field  string
	}{
		{"negative income", func(in *AlternateInput) { in.Income = d(-5) }, "income"},
		{"care above 100", func(in *AlternateInput) { in.CarePercentage = d(120) }, "carePercentage"},
		{"no children", func(in *AlternateInput) { in.ChildAges = nil }, "childAges"},
		{"shares", func(in *AlternateInput) {
			in.SecondCarer = true
			in.Carer1Share, in.Carer2Share = d(50), d(20)
		}, "carerShares"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := alternateIn(80000, 10)
			tt.modify(&in)

			_, err := engine.CalculateFormula5(in, year2026)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	_, err := engine.CalculateFormula6(alternateIn(80000, 10), 2019)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}
