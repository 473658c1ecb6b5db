package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a scenario from a YAML file. A scenario without a name
// is named after its file.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	scenario, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}
	if scenario.Name == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return scenario, nil
}

// Parse decodes scenario YAML, rejecting unknown keys, and validates it
func (ip *InputParser) Parse(data []byte) (*domain.Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var scenario domain.Scenario
	if err := dec.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return &scenario, nil
}

// ValidateScenario checks the shape of a scenario. Field-level checks of the
// form itself happen in the engine, which reports them all at once.
func (ip *InputParser) ValidateScenario(s *domain.Scenario) error {
	if s.Year < 0 {
		return fmt.Errorf("year cannot be negative")
	}
	if len(s.Form.Children) == 0 {
		return fmt.Errorf("form must include at least one child")
	}

	seen := make(map[string]bool, len(s.Alternatives))
	var errs []error
	for i, alt := range s.Alternatives {
		switch {
		case alt.Name == "":
			errs = append(errs, fmt.Errorf("alternative %d: name is required", i))
		case seen[alt.Name]:
			errs = append(errs, fmt.Errorf("alternative %q: duplicate name", alt.Name))
		case len(alt.Transforms) == 0:
			errs = append(errs, fmt.Errorf("alternative %q: at least one transform is required", alt.Name))
		}
		seen[alt.Name] = true
	}
	return errors.Join(errs...)
}
