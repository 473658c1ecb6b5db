package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/csacalc/internal/calculation"
	"github.com/rgehrsitz/csacalc/internal/config"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompareEngine(t *testing.T) *CompareEngine {
	t.Helper()
	engine, err := calculation.NewDefaultEngine()
	require.NoError(t, err)
	return NewCompareEngine(engine)
}

func loadScenario(t *testing.T, name string) *domain.Scenario {
	t.Helper()
	scenario, err := config.NewInputParser().LoadFromFile("../../testdata/" + name)
	require.NoError(t, err)
	return scenario
}

func TestCompare_ScenarioAlternatives(t *testing.T) {
	ce := newTestCompareEngine(t)
	scenario := loadScenario(t, "basic.yaml")

	set, err := ce.Compare(context.Background(), scenario, scenario.Year, CompareOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Basic assessment", set.BaseScenarioName)
	assert.Equal(t, domain.AssessmentYear(2026), set.Year)
	require.NotNil(t, set.BaseResult)
	assert.Equal(t, "Parent A", set.BaseResult.Payer)
	assert.Equal(t, "7928.51", set.BaseResult.AnnualPayment.StringFixed(2))
	assert.True(t, set.BaseResult.NetPositionA.Equal(set.BaseResult.AnnualPayment))

	require.Len(t, set.AlternativeResults, 2)

	raise := set.AlternativeResults[0]
	assert.Equal(t, "A earns more", raise.ScenarioName)
	assert.Equal(t, []string{"set_income:party=A,amount=95000"}, raise.Transforms)
	assert.Contains(t, raise.Description, "Parent A")
	assert.True(t, raise.PaymentDiffFromBase.IsPositive())
	assert.True(t, raise.PositionDiffFromBase.IsPositive())
	assert.False(t, raise.PayerChanged)

	shared := set.AlternativeResults[1]
	assert.Equal(t, "Shared care", shared.ScenarioName)
	assert.True(t, shared.PaymentDiffFromBase.IsNegative())
	assert.Equal(t, "Parent A", shared.Payer)

	require.NotEmpty(t, set.Highlights)
	assert.Contains(t, set.Highlights[0], "Largest change: Shared care")
}

func TestCompare_CustomTransforms(t *testing.T) {
	ce := newTestCompareEngine(t)
	scenario := loadScenario(t, "basic.yaml")

	set, err := ce.Compare(context.Background(), scenario, 2026, CompareOptions{
		SkipFile: true,
		Transforms: []string{
			"set_income:party=A,amount=20000",
			"set_support:party=A,value=true",
		},
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)

	custom := set.AlternativeResults[0]
	assert.Equal(t, "custom", custom.ScenarioName)
	assert.Equal(t, "MAR (Parent A)", custom.RateApplied)
	assert.True(t, custom.AnnualPayment.Equal(decimal.NewFromInt(551)))
	assert.True(t, custom.RateChanged)
	assert.Contains(t, set.Highlights, "Rate changes: under custom the statutory rate is MAR (Parent A) (base: None)")
}

func TestCompare_Templates(t *testing.T) {
	ce := newTestCompareEngine(t)
	scenario := loadScenario(t, "basic.yaml")

	set, err := ce.Compare(context.Background(), scenario, 2026, CompareOptions{
		SkipFile:    true,
		Templates:   []string{"equal_care", "b_income_up_10"},
		Concurrency: 1,
	})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)

	assert.Equal(t, "equal_care", set.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "b_income_up_10", set.AlternativeResults[1].ScenarioName)
	assert.NotEmpty(t, set.AlternativeResults[0].Description)
	assert.True(t, set.AlternativeResults[0].PaymentDiffFromBase.IsNegative())
	assert.True(t, set.AlternativeResults[1].PaymentDiffFromBase.IsNegative())
}

func TestCompare_Errors(t *testing.T) {
	ce := newTestCompareEngine(t)
	scenario := loadScenario(t, "basic.yaml")
	ctx := context.Background()

	tests := []struct {
		name    string
		options CompareOptions
		wantErr string
	}{
		{"unknown template", CompareOptions{Templates: []string{"retire_early"}}, "template retire_early not found"},
		{"bad spec", CompareOptions{Transforms: []string{"set_income"}}, "expected 'name:params'"},
		{"failing transform", CompareOptions{Transforms: []string{"set_age:child=4,age=3"}}, "failed to apply custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ce.Compare(ctx, scenario, 2026, tt.options)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("nil scenario", func(t *testing.T) {
		_, err := ce.Compare(ctx, nil, 2026, CompareOptions{})
		assert.Error(t, err)
	})

	t.Run("invalid base", func(t *testing.T) {
		bad := *scenario
		bad.Alternatives = nil
		bad.Form.ParentA.Income = decimal.NewFromInt(-1)
		_, err := ce.Compare(ctx, &bad, 2026, CompareOptions{})
		require.Error(t, err)
		var verr *calculation.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := ce.Compare(cancelled, scenario, 2026, CompareOptions{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
