package breakeven

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/csacalc/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats search results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one search
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SEARCH RESULTS\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	sb.WriteString(fmt.Sprintf("Search Target:   %s of Parent %s\n", result.Request.Target, result.Request.Constraints.Party))
	sb.WriteString(fmt.Sprintf("Search Goal:     %s\n", tf.formatGoal(result.Request)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULT\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-16s %s\n", tf.valueLabel(result.Request.Target)+":", tf.formatValue(result.Request.Target, result.Value)))
	sb.WriteString(fmt.Sprintf("Payer:           %s\n", result.Payer))
	sb.WriteString(fmt.Sprintf("Annual Payment:  %s\n", output.FormatCurrency(result.AnnualPayment)))
	sb.WriteString(fmt.Sprintf("Rate Applied:    %s\n", result.RateApplied))
	sb.WriteString(fmt.Sprintf("A Net Position:  %s\n", output.FormatCurrency(result.NetPositionA)))
	sb.WriteString("\n")

	sb.WriteString("COMPARISON TO BASE SCENARIO\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Current Value:   %s\n", tf.formatValue(result.Request.Target, result.BaseValue)))
	sb.WriteString(fmt.Sprintf("A Net Position:  %s\n", output.FormatCurrency(result.BaseNetPositionA)))
	sb.WriteString(fmt.Sprintf("Position Change: %s%s\n", tf.deltaSymbol(result.PositionDiff), output.FormatCurrency(result.PositionDiff.Abs())))

	return sb.String()
}

// FormatMulti formats one search per parent as a summary table
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SEARCH BY PARENT\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("%-8s %-10s %14s %14s %-12s %10s\n",
		"Parent", "Status", "Value", "Current", "Payer", "Position"))
	sb.WriteString(strings.Repeat("-", 72) + "\n")

	for _, r := range result.Results {
		status := "found"
		if !r.Success {
			status = "not found"
		}
		sb.WriteString(fmt.Sprintf("%-8s %-10s %14s %14s %-12s %10s\n",
			r.Request.Constraints.Party,
			status,
			tf.formatValue(r.Request.Target, r.Value),
			tf.formatValue(r.Request.Target, r.BaseValue),
			r.Payer,
			output.FormatCurrency(r.NetPositionA)))
	}

	return sb.String()
}

func (tf *TableFormatter) formatGoal(req Request) string {
	if req.Goal == GoalMatchPosition && req.Constraints.TargetPosition != nil {
		return fmt.Sprintf("%s (%s)", req.Goal, output.FormatCurrency(*req.Constraints.TargetPosition))
	}
	return string(req.Goal)
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Found"
	}
	return "✗ Not found"
}

func (tf *TableFormatter) valueLabel(target SearchTarget) string {
	if target == TargetCare {
		return "Nights of Care"
	}
	return "Income"
}

func (tf *TableFormatter) formatValue(target SearchTarget, v decimal.Decimal) string {
	if target == TargetCare {
		return v.StringFixed(0) + " nights"
	}
	return output.FormatCurrency(v)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsNegative() {
		return "-"
	}
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// JSONFormatter formats search results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for a single search
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON output for one search per parent
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
