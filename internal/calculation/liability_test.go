package calculation

import (
	"testing"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func standardChild(csA, csB float64, careA, careB, careNPC int) domain.ChildResult {
	return domain.ChildResult{
		CostPerChild:      d(10000),
		ChildSupportPercA: decimal.NewFromFloat(csA),
		ChildSupportPercB: decimal.NewFromFloat(csB),
		RoundedCareA:      careA,
		RoundedCareB:      careB,
		RoundedCareNPC:    careNPC,
	}
}

func TestAssignLiability(t *testing.T) {
	tests := []struct {
		name           string
		child          domain.ChildResult
		npc            bool
		finalA, finalB float64
		toNPCA, toNPCB float64
	}{
		{"A pays B", standardChild(30, -30, 0, 100, 0), false, 3000, 0, 0, 0},
		{"B pays A", standardChild(-12, 12, 60, 40, 0), false, 0, 1200, 0, 0},
		{"receiver below shared care", standardChild(-10, 10, 20, 80, 0), false, 0, 0, 0, 0},
		{"tie pays nothing", standardChild(0, 0, 50, 50, 0), false, 0, 0, 0, 0},
		{"carer below shared care is ignored", standardChild(20, -20, 10, 60, 30), true, 2000, 0, 0, 0},
		{"both pay the carer", standardChild(60, 40, 0, 0, 100), true, 0, 0, 6000, 4000},
		{"carer paid in full", standardChild(50, -10, 0, 20, 80), true, 0, 0, 5000, 0},
		{"other parent paid first", standardChild(50, -20, 0, 40, 60), true, 2000, 0, 3000, 0},
		{"other parent absorbs everything", standardChild(10, -40, 0, 60, 40), true, 1000, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assignLiability(tt.child, tt.npc)
			assert.InDelta(t, tt.finalA, f(got.FinalLiabilityA), 1e-9)
			assert.InDelta(t, tt.finalB, f(got.FinalLiabilityB), 1e-9)
			assert.InDelta(t, tt.toNPCA, f(got.LiabilityToNPCA), 1e-9)
			assert.InDelta(t, tt.toNPCB, f(got.LiabilityToNPCB), 1e-9)
		})
	}
}

func TestAssignLiability_AdultPaysNothing(t *testing.T) {
	c := standardChild(50, -50, 0, 100, 0)
	c.Adult = true

	got := assignLiability(c, false)
	assert.True(t, got.FinalLiabilityA.IsZero())
	assert.True(t, got.LiabilityA.IsZero())
}

func TestAssignLiability_DoesNotMutateInput(t *testing.T) {
	in := standardChild(30, -30, 0, 100, 0)
	_ = assignLiability(in, false)
	assert.True(t, in.FinalLiabilityA.IsZero())
}
