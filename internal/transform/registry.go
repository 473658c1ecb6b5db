package transform

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI
// flags and scenario files.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	// Income transforms
	registry.Register("set_income", createSetIncome)
	registry.Register("scale_income", createScaleIncome)
	registry.Register("set_support", createSetIncomeSupport)
	registry.Register("set_dependents", createSetDependents)

	// Care transforms
	registry.Register("set_care", createSetCare)
	registry.Register("set_age", createSetAge)

	// Multi-case transforms
	registry.Register("add_other_case_child", createAddOtherCaseChild)
	registry.Register("clear_other_cases", createClearOtherCaseChildren)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_income:party=A,amount=95000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses a list of specification strings in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]ScenarioTransform, error) {
	transforms := make([]ScenarioTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	return transforms, nil
}

// Parameter helpers

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func parseParty(transform string, params map[string]string) (domain.Party, error) {
	v, err := requireParam(transform, params, "party")
	if err != nil {
		return "", err
	}
	return domain.ParseParty(v)
}

func parseDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	v, err := requireParam(transform, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func parseInt(transform string, params map[string]string, key string) (int, error) {
	v, err := requireParam(transform, params, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func optionalInt(params map[string]string, key string) (int, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// Factory functions for each transform

func createSetIncome(params map[string]string) (ScenarioTransform, error) {
	party, err := parseParty("set_income", params)
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal("set_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetIncome{Party: party, Amount: amount}, nil
}

func createScaleIncome(params map[string]string) (ScenarioTransform, error) {
	party, err := parseParty("scale_income", params)
	if err != nil {
		return nil, err
	}
	percent, err := parseDecimal("scale_income", params, "percent")
	if err != nil {
		return nil, err
	}
	return &ScaleIncome{Party: party, Percent: percent}, nil
}

func createSetIncomeSupport(params map[string]string) (ScenarioTransform, error) {
	party, err := parseParty("set_support", params)
	if err != nil {
		return nil, err
	}
	v, err := requireParam("set_support", params, "value")
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("invalid value: %w", err)
	}
	return &SetIncomeSupport{Party: party, Value: value}, nil
}

func createSetDependents(params map[string]string) (ScenarioTransform, error) {
	party, err := parseParty("set_dependents", params)
	if err != nil {
		return nil, err
	}
	under, err := optionalInt(params, "under13")
	if err != nil {
		return nil, err
	}
	over, err := optionalInt(params, "over13")
	if err != nil {
		return nil, err
	}
	return &SetDependents{Party: party, Under13: under, Over13: over}, nil
}

func createSetCare(params map[string]string) (ScenarioTransform, error) {
	child, err := parseInt("set_care", params, "child")
	if err != nil {
		return nil, err
	}
	a, err := parseDecimal("set_care", params, "a")
	if err != nil {
		return nil, err
	}
	b, err := parseDecimal("set_care", params, "b")
	if err != nil {
		return nil, err
	}
	npc := decimal.Zero
	if _, ok := params["npc"]; ok {
		if npc, err = parseDecimal("set_care", params, "npc"); err != nil {
			return nil, err
		}
	}
	period := domain.PeriodYear
	if p, ok := params["period"]; ok {
		period = domain.CarePeriod(strings.ToLower(p))
	}
	return &SetCare{Child: child, CareA: a, CareB: b, NPC: npc, Period: period}, nil
}

func createSetAge(params map[string]string) (ScenarioTransform, error) {
	child, err := parseInt("set_age", params, "child")
	if err != nil {
		return nil, err
	}
	age, err := parseInt("set_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetAge{Child: child, Age: age}, nil
}

func createAddOtherCaseChild(params map[string]string) (ScenarioTransform, error) {
	party, err := parseParty("add_other_case_child", params)
	if err != nil {
		return nil, err
	}
	age, err := parseInt("add_other_case_child", params, "age")
	if err != nil {
		return nil, err
	}
	return &AddOtherCaseChild{Party: party, ID: params["id"], Age: age}, nil
}

func createClearOtherCaseChildren(params map[string]string) (ScenarioTransform, error) {
	party, err := parseParty("clear_other_cases", params)
	if err != nil {
		return nil, err
	}
	return &ClearOtherCaseChildren{Party: party}, nil
}
