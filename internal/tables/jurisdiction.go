package tables

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// JurisdictionStatus classifies the country an absent parent lives in
type JurisdictionStatus string

const (
	Reciprocating    JurisdictionStatus = "reciprocating"
	Excluded         JurisdictionStatus = "excluded"
	NonReciprocating JurisdictionStatus = "non-reciprocating"
)

type jurisdictionLists struct {
	Reciprocating []string `yaml:"reciprocating"`
	Excluded      []string `yaml:"excluded"`
}

func loadJurisdictions() (jurisdictionLists, error) {
	var jl jurisdictionLists
	data, err := dataFS.ReadFile(jurisdictionFile)
	if err != nil {
		return jl, fmt.Errorf("failed to read embedded jurisdictions: %w", err)
	}
	if err := yaml.Unmarshal(data, &jl); err != nil {
		return jl, fmt.Errorf("failed to parse jurisdictions YAML: %w", err)
	}
	return jl, nil
}

// Jurisdiction classifies a country. Matching is case-insensitive and also
// accepts the part of a listed name before its first comma, so "Canada"
// matches "Canada, except Quebec". Blank and unlisted countries are
// non-reciprocating.
func (r *Registry) Jurisdiction(country string) JurisdictionStatus {
	name := strings.TrimSpace(country)
	if name == "" {
		return NonReciprocating
	}
	if listed(r.jurisdictions.Reciprocating, name) {
		return Reciprocating
	}
	if listed(r.jurisdictions.Excluded, name) {
		return Excluded
	}
	return NonReciprocating
}

func listed(list []string, name string) bool {
	for _, entry := range list {
		if strings.EqualFold(entry, name) {
			return true
		}
		if short, _, found := strings.Cut(entry, ","); found && strings.EqualFold(strings.TrimSpace(short), name) {
			return true
		}
	}
	return false
}
