package compare

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func buildTestSet() *ComparisonSet {
	mc := NewMetricsCalculator()
	base := mc.CalculateMetrics("Base", &domain.CalculationResult{
		Formula:      domain.FormulaStandard,
		Payer:        "Parent A",
		Receiver:     "Parent B",
		FinalPayment: d("7928.51"),
		RateApplied:  "None",
	})
	alt := mc.CalculateMetrics("Shared care", &domain.CalculationResult{
		Formula:      domain.FormulaStandard,
		Payer:        "Parent B",
		Receiver:     "Parent A",
		FinalPayment: d("1000"),
		RateApplied:  "None",
	})
	alt.Description = "Child 1 cared for 3/4 by A/B per week"
	alt = mc.CalculateComparison(alt, base)

	set := &ComparisonSet{
		BaseScenarioName:   "Base",
		Year:               2026,
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{alt},
		ConfigPath:         "basic.yaml",
	}
	set.Highlights = GenerateHighlights(set)
	return set
}

func TestMetricsCalculator_NetPositionA(t *testing.T) {
	mc := NewMetricsCalculator()

	tests := []struct {
		name string
		res  *domain.CalculationResult
		want string
	}{
		{"A pays", &domain.CalculationResult{Payer: "Parent A", FinalPayment: d("100")}, "100"},
		{"B pays", &domain.CalculationResult{Payer: "Parent B", FinalPayment: d("100")}, "-100"},
		{"neither", &domain.CalculationResult{Payer: domain.PayerNeither}, "0"},
		{"A pays carer too", &domain.CalculationResult{
			Payer: "Parent B", FinalPayment: d("50"),
			Children: []domain.ChildResult{{LiabilityToNPCA: d("300")}, {LiabilityToNPCB: d("99")}},
		}, "250"},
		{"formula 5 for A", &domain.CalculationResult{
			Alternate: &domain.AlternateResult{AvailableParty: domain.ParentA, AnnualRate: d("7737.26")},
		}, "7737.26"},
		{"formula 6 for B", &domain.CalculationResult{
			Alternate: &domain.AlternateResult{AvailableParty: domain.ParentB, AnnualRate: d("5863")},
		}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mc.CalculateMetrics(tt.name, tt.res)
			assert.True(t, got.NetPositionA.Equal(d(tt.want)), "got %s", got.NetPositionA)
		})
	}
}

func TestMetricsCalculator_CalculateComparison(t *testing.T) {
	set := buildTestSet()
	alt := set.AlternativeResults[0]

	assert.True(t, alt.PaymentDiffFromBase.Equal(d("-6928.51")))
	assert.Equal(t, "-87.39", alt.PaymentPctFromBase.StringFixed(2))
	assert.True(t, alt.PositionDiffFromBase.Equal(d("-8928.51")))
	assert.True(t, alt.PayerChanged)
	assert.False(t, alt.RateChanged)
}

func TestMetricsCalculator_ZeroBase(t *testing.T) {
	mc := NewMetricsCalculator()
	base := mc.CalculateMetrics("Base", &domain.CalculationResult{Payer: domain.PayerNeither})
	alt := mc.CalculateMetrics("Alt", &domain.CalculationResult{Payer: "Parent A", FinalPayment: d("10")})

	got := mc.CalculateComparison(alt, base)
	assert.True(t, got.PaymentPctFromBase.IsZero())
	assert.True(t, got.PaymentDiffFromBase.Equal(d("10")))
}

func TestGenerateHighlights(t *testing.T) {
	set := buildTestSet()

	assert.Equal(t, []string{
		"Largest change: Shared care leaves Parent A paying $8928.51 less a year",
		"Payer changes: under Shared care the payer is Parent B (base: Parent A)",
	}, set.Highlights)

	empty := &ComparisonSet{BaseResult: set.BaseResult}
	assert.Empty(t, GenerateHighlights(empty))
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(buildTestSet())

	for _, want := range []string{
		"CHILD SUPPORT SCENARIO COMPARISON",
		"Base Scenario: Base",
		"Assessment Year: 2026",
		"Scenario File: basic.yaml",
		"Base (base)",
		"$7,928.51",
		"Shared care:",
		"Child 1 cared for 3/4 by A/B per week",
		"Annual Payment:   -$6,928.51 (-87.4%)",
		"Parent A Pays:    -$8,928.51 a year",
		"Payer:            Parent B (was Parent A)",
		"HIGHLIGHTS",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(buildTestSet())
	assert.Equal(t, "Base: Base $7,928.51 | Shared care: -$6,928.51", out)
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "a very ...", tf.truncate("a very long scenario name", 10))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(buildTestSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"Base", "base", "Standard", "Parent A", "Parent B", "7928.51"}, records[1][:6])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "-6928.51", records[2][11])
	assert.Equal(t, "-8928.51", records[2][13])
}

func TestJSONFormatter_Format(t *testing.T) {
	set := buildTestSet()

	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(set)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "Base", decoded["baseScenarioName"])
		assert.Len(t, decoded["alternativeResults"], 1)
		assert.Len(t, decoded["highlights"], 2)
	}
}

func TestJSONFormatter_Summary(t *testing.T) {
	set := buildTestSet()

	full, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, full, `"result":{`)

	out, err := (&JSONFormatter{Summary: true}).Format(set)
	require.NoError(t, err)
	assert.NotContains(t, out, `"result":`)
	assert.Contains(t, out, `"netPositionA"`)

	// The set itself keeps its results
	require.NotNil(t, set.BaseResult.Result)
	require.NotNil(t, set.AlternativeResults[0].Result)
}
