package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/csacalc/internal/calculation"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/transform"
	"golang.org/x/sync/errgroup"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string // Built-in template names to apply
	Transforms []string // Ad-hoc transform specs, combined into one alternative
	SkipFile   bool     // Ignore the alternatives listed in the scenario file

	// Concurrency bounds the number of assessments run at once; zero means
	// no limit.
	Concurrency int
}

// candidate is an alternative ready to be assessed
type candidate struct {
	name        string
	description string
	specs       []string
	transforms  []transform.ScenarioTransform
}

// Compare assesses a scenario and each of its alternatives for the given year
func (ce *CompareEngine) Compare(
	ctx context.Context,
	scenario *domain.Scenario,
	year domain.AssessmentYear,
	options CompareOptions,
) (*ComparisonSet, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario cannot be nil")
	}

	candidates, err := ce.candidates(scenario, options)
	if err != nil {
		return nil, err
	}

	baseRes, err := ce.CalcEngine.Compute(scenario.Form, year, scenario.Overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(scenario.Name, baseRes)
	baseResult.Description = scenario.Description

	alternatives := make([]ComparisonResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	if options.Concurrency > 0 {
		g.SetLimit(options.Concurrency)
	}
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			form, err := transform.ApplyTransforms(&scenario.Form, c.transforms)
			if err != nil {
				return fmt.Errorf("failed to apply %s: %w", c.name, err)
			}

			res, err := ce.CalcEngine.Compute(*form, year, scenario.Overrides)
			if err != nil {
				return fmt.Errorf("failed to calculate scenario %s: %w", c.name, err)
			}

			altResult := ce.MetricsCalculator.CalculateMetrics(c.name, res)
			altResult.Description = c.description
			altResult.Transforms = c.specs
			alternatives[i] = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   scenario.Name,
		Year:               baseRes.Constants.Year,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Highlights = GenerateHighlights(compSet)

	return compSet, nil
}

// candidates collects the alternatives in order: those from the scenario
// file, then templates, then the ad-hoc transforms
func (ce *CompareEngine) candidates(scenario *domain.Scenario, options CompareOptions) ([]candidate, error) {
	var out []candidate

	if !options.SkipFile {
		for _, alt := range scenario.Alternatives {
			transforms, err := ce.TransformRegistry.ParseTransformSpecs(alt.Transforms)
			if err != nil {
				return nil, fmt.Errorf("alternative %s: %w", alt.Name, err)
			}
			out = append(out, candidate{
				name:        alt.Name,
				description: describe(transforms),
				specs:       alt.Transforms,
				transforms:  transforms,
			})
		}
	}

	if len(options.Templates) > 0 {
		templates := transform.CreateBuiltInTemplates(&scenario.Form)
		for _, name := range options.Templates {
			template, ok := templates.Get(name)
			if !ok {
				return nil, fmt.Errorf("template %s not found", name)
			}
			out = append(out, candidate{
				name:        template.Name,
				description: template.Description,
				transforms:  template.Transforms,
			})
		}
	}

	if len(options.Transforms) > 0 {
		transforms, err := ce.TransformRegistry.ParseTransformSpecs(options.Transforms)
		if err != nil {
			return nil, err
		}
		out = append(out, candidate{
			name:        "custom",
			description: describe(transforms),
			specs:       options.Transforms,
			transforms:  transforms,
		})
	}

	return out, nil
}

func describe(transforms []transform.ScenarioTransform) string {
	desc := ""
	for i, t := range transforms {
		if i > 0 {
			desc += "; "
		}
		desc += t.Description()
	}
	return desc
}
