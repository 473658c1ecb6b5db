package compare

import (
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single assessment with the metrics used to
// compare it against the base
type ComparisonResult struct {
	ScenarioName string                    `json:"scenarioName"`
	Description  string                    `json:"description,omitempty"`
	Transforms   []string                  `json:"transforms,omitempty"`
	Result       *domain.CalculationResult `json:"result,omitempty"`

	// Key Metrics
	Formula            domain.Formula  `json:"formula"`
	Payer              string          `json:"payer"`
	Receiver           string          `json:"receiver"`
	AnnualPayment      decimal.Decimal `json:"annualPayment"`
	MonthlyPayment     decimal.Decimal `json:"monthlyPayment"`
	FortnightlyPayment decimal.Decimal `json:"fortnightlyPayment"`
	PaymentToNPC       decimal.Decimal `json:"paymentToNPC"`
	RateApplied        string          `json:"rateApplied"`

	// NetPositionA is what Parent A pays in a year, to the other parent or a
	// carer, less what Parent A receives. Negative when Parent A is paid.
	NetPositionA decimal.Decimal `json:"netPositionA"`

	// Comparison to Base
	PaymentDiffFromBase  decimal.Decimal `json:"paymentDiffFromBase"`
	PaymentPctFromBase   decimal.Decimal `json:"paymentPctFromBase"`
	PositionDiffFromBase decimal.Decimal `json:"positionDiffFromBase"`
	PayerChanged         bool            `json:"payerChanged"`
	RateChanged          bool            `json:"rateChanged"`
}

// ComparisonSet represents a base assessment and its alternatives
type ComparisonSet struct {
	BaseScenarioName   string                `json:"baseScenarioName"`
	Year               domain.AssessmentYear `json:"year"`
	BaseResult         *ComparisonResult     `json:"baseResult"`
	AlternativeResults []ComparisonResult    `json:"alternativeResults"`
	Highlights         []string              `json:"highlights"`
	ConfigPath         string                `json:"configPath,omitempty"`
}

// MetricsCalculator extracts key metrics from calculation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics of one result
func (mc *MetricsCalculator) CalculateMetrics(name string, res *domain.CalculationResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:       name,
		Result:             res,
		Formula:            res.Formula,
		Payer:              res.Payer,
		Receiver:           res.Receiver,
		AnnualPayment:      res.FinalPayment,
		MonthlyPayment:     res.MonthlyPayment,
		FortnightlyPayment: res.FortnightPayment,
		PaymentToNPC:       res.PaymentToNPC,
		RateApplied:        res.RateApplied,
		NetPositionA:       mc.netPositionA(res),
	}
}

// CalculateComparison computes comparison metrics between a result and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PaymentDiffFromBase = scenario.AnnualPayment.Sub(base.AnnualPayment)
	if !base.AnnualPayment.IsZero() {
		scenario.PaymentPctFromBase = scenario.PaymentDiffFromBase.
			Div(base.AnnualPayment).
			Mul(decimal.NewFromInt(100))
	}
	scenario.PositionDiffFromBase = scenario.NetPositionA.Sub(base.NetPositionA)
	scenario.PayerChanged = scenario.Payer != base.Payer
	scenario.RateChanged = scenario.RateApplied != base.RateApplied
	return scenario
}

// netPositionA signs the outcome from Parent A's side
func (mc *MetricsCalculator) netPositionA(res *domain.CalculationResult) decimal.Decimal {
	if res.Alternate != nil {
		if res.Alternate.AvailableParty == domain.ParentA {
			return res.Alternate.AnnualRate
		}
		return decimal.Zero
	}

	position := decimal.Zero
	switch res.Payer {
	case domain.ParentA.Label():
		position = res.FinalPayment
	case domain.ParentB.Label():
		position = res.FinalPayment.Neg()
	}
	for _, c := range res.Children {
		position = position.Add(c.LiabilityToNPCA)
	}
	return position
}

// GenerateHighlights summarises the notable differences between the base and
// its alternatives
func GenerateHighlights(compSet *ComparisonSet) []string {
	highlights := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return highlights
	}

	// Largest movement in Parent A's position
	var largest *ComparisonResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.PositionDiffFromBase.IsZero() {
			continue
		}
		if largest == nil || alt.PositionDiffFromBase.Abs().GreaterThan(largest.PositionDiffFromBase.Abs()) {
			largest = alt
		}
	}
	if largest != nil {
		direction := "more"
		if largest.PositionDiffFromBase.IsNegative() {
			direction = "less"
		}
		highlights = append(highlights, fmt.Sprintf("Largest change: %s leaves Parent A paying $%s %s a year",
			largest.ScenarioName, largest.PositionDiffFromBase.Abs().StringFixed(2), direction))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.PayerChanged {
			highlights = append(highlights, fmt.Sprintf("Payer changes: under %s the payer is %s (base: %s)",
				alt.ScenarioName, alt.Payer, compSet.BaseResult.Payer))
		}
		if alt.RateChanged {
			highlights = append(highlights, fmt.Sprintf("Rate changes: under %s the statutory rate is %s (base: %s)",
				alt.ScenarioName, alt.RateApplied, compSet.BaseResult.RateApplied))
		}
	}

	return highlights
}
