package transform

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates a new, empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// careFor builds one SetCare per child of form
func careFor(form *domain.FormState, a, b int64, period domain.CarePeriod) []ScenarioTransform {
	out := make([]ScenarioTransform, len(form.Children))
	for i := range form.Children {
		out[i] = &SetCare{
			Child:  i,
			CareA:  decimal.NewFromInt(a),
			CareB:  decimal.NewFromInt(b),
			Period: period,
		}
	}
	return out
}

// CreateBuiltInTemplates creates a template registry with common what-if
// changes. Care templates cover every child of form.
func CreateBuiltInTemplates(form *domain.FormState) *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Care templates
	registry.Register(Template{
		Name:        "equal_care",
		Description: "Every child spends alternate weeks with each parent",
		Transforms:  careFor(form, 7, 7, domain.PeriodFortnight),
	})

	registry.Register(Template{
		Name:        "a_regular_care",
		Description: "Every child lives with Parent B and spends 4 nights a fortnight with Parent A",
		Transforms:  careFor(form, 4, 10, domain.PeriodFortnight),
	})

	registry.Register(Template{
		Name:        "b_regular_care",
		Description: "Every child lives with Parent A and spends 4 nights a fortnight with Parent B",
		Transforms:  careFor(form, 10, 4, domain.PeriodFortnight),
	})

	// Income templates
	for _, p := range []domain.Party{domain.ParentA, domain.ParentB} {
		prefix := strings.ToLower(string(p))
		registry.Register(Template{
			Name:        prefix + "_income_up_10",
			Description: fmt.Sprintf("%s's income rises by 10%%", p.Label()),
			Transforms: []ScenarioTransform{
				&ScaleIncome{Party: p, Percent: decimal.NewFromInt(10)},
			},
		})
		registry.Register(Template{
			Name:        prefix + "_income_down_10",
			Description: fmt.Sprintf("%s's income falls by 10%%", p.Label()),
			Transforms: []ScenarioTransform{
				&ScaleIncome{Party: p, Percent: decimal.NewFromInt(-10)},
			},
		})

		// Income support templates
		registry.Register(Template{
			Name:        prefix + "_on_support",
			Description: fmt.Sprintf("%s starts receiving income support", p.Label()),
			Transforms: []ScenarioTransform{
				&SetIncomeSupport{Party: p, Value: true},
			},
		})

		// Combination templates
		registry.Register(Template{
			Name:        prefix + "_loses_job",
			Description: fmt.Sprintf("%s has no income and receives income support", p.Label()),
			Transforms: []ScenarioTransform{
				&SetIncome{Party: p, Amount: decimal.Zero},
				&SetIncomeSupport{Party: p, Value: true},
			},
		})
	}

	return registry
}

// ApplyTemplate applies a template to a base form
func ApplyTemplate(base *domain.FormState, template Template) (*domain.FormState, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Care Arrangements", "Income", "Income Support", "Combination"}
	categories := make(map[string][]Template, len(order))

	for _, name := range sortedKeys(registry.templates) {
		template := registry.templates[name]
		switch {
		case strings.HasSuffix(name, "_care"):
			categories["Care Arrangements"] = append(categories["Care Arrangements"], template)
		case strings.Contains(name, "_income_"):
			categories["Income"] = append(categories["Income"], template)
		case strings.HasSuffix(name, "_on_support"):
			categories["Income Support"] = append(categories["Income Support"], template)
		default:
			categories["Combination"] = append(categories["Combination"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  csacalc compare scenario.yaml --with equal_care,a_income_up_10\n")
	sb.WriteString("  csacalc compare scenario.yaml --transform set_income:party=B,amount=70000\n")

	return sb.String()
}

func sortedKeys(m map[string]Template) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
