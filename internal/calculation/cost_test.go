package calculation

import (
	"testing"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssessment(t *testing.T) *assessment {
	t.Helper()
	reg, err := tables.Default()
	require.NoError(t, err)
	a, err := newAssessment(reg, year2026, NopLogger{})
	require.NoError(t, err)
	return a
}

func TestAgeGroupOf(t *testing.T) {
	tests := []struct {
		name  string
		ages  []int
		group domain.AgeGroup
		count int
	}{
		{"all younger", []int{0, 12}, domain.AllYounger, 2},
		{"all older", []int{13, 17}, domain.AllOlder, 2},
		{"mixed", []int{5, 13, 9}, domain.Mixed, 3},
		{"adults ignored", []int{18, 21, 4}, domain.AllYounger, 1},
		{"only adults", []int{18}, domain.AllYounger, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group, n := ageGroupOf(tt.ages)
			assert.Equal(t, tt.count, n)
			if n > 0 {
				assert.Equal(t, tt.group, group)
			}
		})
	}
}

func TestAssessmentCost(t *testing.T) {
	a := newTestAssessment(t)

	c, err := a.cost([]int{10}, d(77908))
	require.NoError(t, err)
	assert.InDelta(t, 12617.85, f(c.Total), 0.001)
	assert.True(t, c.Bracket.Fixed.Equal(d(7917)))
	assert.True(t, c.Bracket.IncomeInBracket.Equal(d(31339)))

	c, err = a.cost([]int{3, 14, 16, 19}, d(500000))
	require.NoError(t, err)
	assert.Equal(t, domain.Mixed, c.Group)
	assert.Equal(t, 3, c.Assessable)
	assert.True(t, c.Total.Equal(d(61005)), "top bracket is the table maximum")
	assert.True(t, c.PerChild().Equal(d(20335)))

	c, err = a.cost([]int{18, 20}, d(90000))
	require.NoError(t, err)
	assert.True(t, c.Total.IsZero())
	assert.True(t, c.PerChild().IsZero())
}

func TestMultiCaseAllowance(t *testing.T) {
	a := newTestAssessment(t)

	got, err := a.multiCaseAllowance(d(68954), 1, []domain.OtherCaseChild{{Age: 8}})
	require.NoError(t, err)
	assert.True(t, got.Equal(d(8163)), "got %s", got)

	got, err = a.multiCaseAllowance(d(0), 1, []domain.OtherCaseChild{{Age: 8}})
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "no allowance without income")

	got, err = a.multiCaseAllowance(d(68954), 1, nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestRelevantDependentDeduction(t *testing.T) {
	a := newTestAssessment(t)

	got, err := a.relevantDependentDeduction(domain.RelevantDependents{Under13: 1}, d(40000))
	require.NoError(t, err)
	// 17% of 40,000 for one younger child
	assert.True(t, got.Equal(d(6800)), "got %s", got)

	got, err = a.relevantDependentDeduction(domain.RelevantDependents{}, d(40000))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}
