// Package tui implements the interactive explorer: a single screen showing
// the assessment of a loaded scenario, recalculated as the income support
// overrides and assessment year are changed.
package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/csacalc/internal/calculation"
	"github.com/rgehrsitz/csacalc/internal/compare"
	"github.com/rgehrsitz/csacalc/internal/domain"
)

// Model represents the explorer state
type Model struct {
	engine   *calculation.Engine
	metrics  *compare.MetricsCalculator
	scenario *domain.Scenario

	// Assessment inputs that can be changed from the keyboard
	years     []domain.AssessmentYear
	startYear domain.AssessmentYear
	year      domain.AssessmentYear
	overrides domain.Overrides

	// The loaded scenario's own outcome, kept to show changes against
	base    *compare.ComparisonResult
	current *compare.ComparisonResult

	seq     int
	loading bool
	err     error

	keys keyMap
	help help.Model

	width  int
	height int
}

// NewModel creates an explorer for a scenario. A zero year falls back to the
// scenario's year and then to the latest loaded table.
func NewModel(engine *calculation.Engine, scenario *domain.Scenario, year domain.AssessmentYear) Model {
	years := engine.Registry().Years()
	if year == 0 {
		year = scenario.Year
	}
	if year == 0 {
		year = engine.Registry().Latest()
	}

	m := Model{
		engine:    engine,
		metrics:   compare.NewMetricsCalculator(),
		scenario:  scenario,
		years:     years,
		startYear: year,
		year:      year,
		seq:       1,
		loading:   true,
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     80,
		height:    24,
	}
	m.overrides = m.initialOverrides()
	return m
}

// Init starts the first calculation (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return m.calculate()
}

// Year returns the assessment year currently shown
func (m Model) Year() domain.AssessmentYear {
	return m.year
}

// Overrides returns the income support overrides currently applied
func (m Model) Overrides() domain.Overrides {
	return m.overrides
}

// Result returns the latest calculation, or nil before the first completes
func (m Model) Result() *domain.CalculationResult {
	if m.current == nil {
		return nil
	}
	return m.current.Result
}

// Err returns the error of the latest calculation
func (m Model) Err() error {
	return m.err
}

func (m Model) initialOverrides() domain.Overrides {
	var ov domain.Overrides
	if m.scenario.Overrides != nil {
		ov.SupportA = clone(m.scenario.Overrides.SupportA)
		ov.SupportB = clone(m.scenario.Overrides.SupportB)
	}
	return ov
}

// calculate returns a command computing the assessment for the current
// inputs. The form is copied so the command shares nothing with the model.
func (m Model) calculate() tea.Cmd {
	engine := m.engine
	form := *m.scenario.Form.DeepCopy()
	year := m.year
	ov := domain.Overrides{SupportA: clone(m.overrides.SupportA), SupportB: clone(m.overrides.SupportB)}
	seq := m.seq

	return func() tea.Msg {
		res, err := engine.Compute(form, year, &ov)
		return CalculationCompleteMsg{Seq: seq, Result: res, Err: err}
	}
}

// recalculate marks a new request in flight and returns its command
func (m Model) recalculate() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	return m, m.calculate()
}

// stepYear moves to the adjacent loaded year. A year without tables moves to
// the nearest loaded one.
func (m Model) stepYear(delta int) domain.AssessmentYear {
	if len(m.years) == 0 {
		return m.year
	}
	i, found := slices.BinarySearch(m.years, m.year)
	switch {
	case found:
		i += delta
	case delta < 0:
		i--
	}
	i = max(0, min(i, len(m.years)-1))
	return m.years[i]
}

// cycleOverride steps an override through unset, forced on and forced off
func cycleOverride(v *bool) *bool {
	switch {
	case v == nil:
		t := true
		return &t
	case *v:
		f := false
		return &f
	default:
		return nil
	}
}

func clone(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
