package care

import (
	"fmt"
	"testing"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCostPercentage_EveryInteger(t *testing.T) {
	expected := []int{
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // 0-9
		0, 0, 0, 0, 24, 24, 24, 24, 24, 24, // 10-19
		24, 24, 24, 24, 24, 24, 24, 24, 24, 24, // 20-29
		24, 24, 24, 24, 24, 25, 27, 29, 31, 33, // 30-39
		35, 37, 39, 41, 43, 45, 47, 49, 50, 50, // 40-49
		50, 50, 50, 51, 53, 55, 57, 59, 61, 63, // 50-59
		65, 67, 69, 71, 73, 75, 76, 76, 76, 76, // 60-69
		76, 76, 76, 76, 76, 76, 76, 76, 76, 76, // 70-79
		76, 76, 76, 76, 76, 76, 76, 100, 100, 100, // 80-89
		100, 100, 100, 100, 100, 100, 100, 100, 100, 100, // 90-99
		100,
	}
	for p, want := range expected {
		assert.Equal(t, want, CostPercentage(p), "care %d%%", p)
	}
}

func TestCostPercentage_Boundaries(t *testing.T) {
	tests := []struct {
		care, want int
	}{
		{13, 0}, {14, 24},
		{34, 24}, {35, 25},
		{47, 49}, {48, 50},
		{52, 50}, {53, 51},
		{65, 75}, {66, 76},
		{86, 76}, {87, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.care), func(t *testing.T) {
			assert.Equal(t, tt.want, CostPercentage(tt.care))
		})
	}
}

func TestCostPercentage_ComplementsToHundred(t *testing.T) {
	// Two parents sharing all care always account for the whole cost.
	for p := 0; p <= 100; p++ {
		a := CostPercentage(Round(decimal.NewFromInt(int64(p))))
		b := CostPercentage(Round(decimal.NewFromInt(int64(100 - p))))
		assert.Equal(t, 100, a+b, "split %d/%d", p, 100-p)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"13.99", 13},
		{"49.999", 49},
		{"50.0", 50},
		{"50.001", 51},
		{"79.45", 80},
		{"20.55", 20},
		{"100", 100},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Round(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestToPercentage(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		period domain.CarePeriod
		want   string
	}{
		{"week", 7, domain.PeriodWeek, "100"},
		{"fortnight", 7, domain.PeriodFortnight, "50"},
		{"year", 73, domain.PeriodYear, "20"},
		{"percent passes through", 35, domain.PeriodPercent, "35"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPercentage(decimal.NewFromInt(tt.amount), tt.period)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestReconciles(t *testing.T) {
	tests := []struct {
		name    string
		period  domain.CarePeriod
		amounts []float64
		want    bool
	}{
		{"full year", domain.PeriodYear, []float64{290, 75}, true},
		{"within half a night", domain.PeriodYear, []float64{290, 74.6}, true},
		{"one night short", domain.PeriodYear, []float64{290, 74}, false},
		{"one night over", domain.PeriodYear, []float64{291, 75}, false},
		{"fortnight with carer", domain.PeriodFortnight, []float64{4, 2, 8}, true},
		{"percent", domain.PeriodPercent, []float64{60, 40}, true},
		{"percent short", domain.PeriodPercent, []float64{60, 39}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amounts := make([]decimal.Decimal, len(tt.amounts))
			for i, a := range tt.amounts {
				amounts[i] = decimal.NewFromFloat(a)
			}
			_, total := Percentages(tt.period, amounts...)
			assert.Equal(t, tt.want, Reconciles(total))
		})
	}
}

func TestMaxForPeriod(t *testing.T) {
	assert.True(t, MaxForPeriod(domain.PeriodFortnight).Equal(decimal.NewFromInt(14)))
	assert.True(t, MaxForPeriod(domain.PeriodPercent).Equal(decimal.NewFromInt(100)))
}
