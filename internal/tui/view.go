package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/csacalc/internal/output"
	"github.com/rgehrsitz/csacalc/internal/tui/components"
)

// View renders the current state of the explorer
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleBarStyle.Render("CHILD SUPPORT EXPLORER"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s | assessment year %s", m.scenario.Name, m.year)))
	b.WriteString("\n\n")

	b.WriteString(m.renderInputs())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.current == nil:
		b.WriteString(subtitleStyle.Render("Calculating..."))
	default:
		b.WriteString(m.renderResult())
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return contentStyle.Render(b.String())
}

func (m Model) renderInputs() string {
	form := &m.scenario.Form
	lines := []string{
		labelStyle.Render("Parent A income support") + supportText(m.overrides.SupportA, form.ParentA.ReceivesIncomeSupport),
		labelStyle.Render("Parent B income support") + supportText(m.overrides.SupportB, form.ParentB.ReceivesIncomeSupport),
	}
	if m.loading && m.current != nil {
		lines = append(lines, subtitleStyle.Render("Recalculating..."))
	}
	return strings.Join(lines, "\n")
}

// supportText shows the effective flag and whether it comes from the form
func supportText(override *bool, fromForm bool) string {
	if override == nil {
		return yesNo(fromForm) + subtitleStyle.Render(" (form)")
	}
	return overrideStyle.Render(yesNo(*override) + " (override)")
}

func (m Model) renderResult() string {
	cur := m.current
	res := cur.Result

	payment := components.NewCard("Annual payment", output.FormatCurrency(cur.AnnualPayment)).
		WithDescription(fmt.Sprintf("%s a month", output.FormatCurrency(cur.MonthlyPayment)))
	if !cur.PaymentDiffFromBase.IsZero() {
		payment.WithChange(cur.PaymentDiffFromBase.IsPositive(), signed(cur.PaymentDiffFromBase))
	}

	position := components.NewCard("Parent A net position", output.FormatCurrency(cur.NetPositionA)).
		WithDescription("positive when Parent A pays")
	if !cur.PositionDiffFromBase.IsZero() {
		position.WithChange(cur.PositionDiffFromBase.IsPositive(), signed(cur.PositionDiffFromBase))
	}

	rate := components.NewCard("Rate applied", cur.RateApplied).
		WithDescription(res.Formula.String())

	lines := []string{
		output.PaymentStyle.Render(output.PaymentSummary(res)),
		"",
		components.Row([]*components.Card{payment, position, rate}, max(1, m.width/30)),
		"",
		components.NewCard("Parent A CSI", output.FormatCurrency(res.IncomeA.CSI)).RenderCompact(),
		components.NewCard("Parent B CSI", output.FormatCurrency(res.IncomeB.CSI)).RenderCompact(),
		components.NewCard("Cost of children", output.FormatCurrency(res.TotalCost)).RenderCompact(),
	}
	if res.PaymentToNPC.IsPositive() {
		lines = append(lines, components.NewCard("Paid to non-parent carer", output.FormatCurrency(res.PaymentToNPC)).RenderCompact())
	}
	if cur.PayerChanged {
		lines = append(lines, "", output.NoteStyle.Render(fmt.Sprintf("Payer changed from %s", m.base.Payer)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + output.FormatCurrency(d)
	}
	return output.FormatCurrency(d)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
