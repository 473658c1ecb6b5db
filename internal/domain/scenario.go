package domain

// Scenario is one assessment as described in a scenario file, optionally with
// named what-if alternatives to compare against it.
type Scenario struct {
	Name         string         `yaml:"name" json:"name"`
	Description  string         `yaml:"description,omitempty" json:"description,omitempty"`
	Year         AssessmentYear `yaml:"year,omitempty" json:"year,omitempty"`
	Form         FormState      `yaml:"form" json:"form"`
	Overrides    *Overrides     `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	Alternatives []Alternative  `yaml:"alternatives,omitempty" json:"alternatives,omitempty"`
}

// Alternative is a named list of transform specs applied to the base form
type Alternative struct {
	Name       string   `yaml:"name" json:"name"`
	Transforms []string `yaml:"transforms" json:"transforms"`
}
