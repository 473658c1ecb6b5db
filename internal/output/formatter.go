// Package output renders assessment results for people and programs.
package output

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/rgehrsitz/csacalc/internal/domain"
)

// Report is what a formatter renders: a full assessment, or the outcome of
// a direct Formula 5 or Formula 6 calculation.
type Report struct {
	Scenario  string                    `json:"scenario,omitempty"`
	Year      domain.AssessmentYear     `json:"year"`
	Result    *domain.CalculationResult `json:"result,omitempty"`
	Alternate *domain.AlternateResult   `json:"alternate,omitempty"`
}

// alternate returns the alternate formula outcome of the report, if any
func (r *Report) alternate() *domain.AlternateResult {
	if r.Alternate != nil {
		return r.Alternate
	}
	if r.Result != nil {
		return r.Result.Alternate
	}
	return nil
}

// Formatter renders a report in one output format
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function into a Formatter
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = []Formatter{
	ConsoleFormatter{},
	ConsoleLiteFormatter{},
	JSONFormatter{Pretty: true},
	CSVFormatter{},
}

var aliases = map[string]string{
	"verbose":         "console",
	"console-verbose": "console",
	"summary":         "console-lite",
	"text":            "console-lite",
}

// AvailableFormatterNames lists the registered formatter names
func AvailableFormatterNames() []string {
	names := make([]string, len(formatters))
	for i, f := range formatters {
		names[i] = f.Name()
	}
	return names
}

// AvailableFormatAliases lists the alternative names accepted by GetFormatterByName
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for alias := range aliases {
		names = append(names, alias)
	}
	slices.Sort(names)
	return names
}

// GetFormatterByName returns the formatter with the given name or alias, or nil
func GetFormatterByName(name string) Formatter {
	if target, ok := aliases[name]; ok {
		name = target
	}
	for _, f := range formatters {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// WriteFormatted renders report and writes it to a timestamped file in the
// working directory, returning the file name.
func WriteFormatted(f Formatter, report *Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("csa_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
