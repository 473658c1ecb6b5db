package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/output"
)

func (c *cli) calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate the assessment for a scenario file",
		Long: `Calculate the child support assessment for a scenario file.

Examples:
  csacalc calculate scenario.yaml
  csacalc calculate scenario.yaml --format json
  csacalc calculate scenario.yaml --support-a --year 2025
  csacalc calculate scenario.yaml --format csv --output
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			engine, err := c.newEngine(cmd)
			if err != nil {
				return err
			}

			formatName := c.format(cmd)
			f := output.GetFormatterByName(formatName)
			if f == nil {
				return unknownFormat(formatName)
			}

			overrides, err := overridesFromFlags(cmd, scenario.Overrides)
			if err != nil {
				return err
			}

			year := c.resolveYear(engine, scenario.Year)
			res, err := engine.Compute(scenario.Form, year, overrides)
			if err != nil {
				return err
			}
			report := &output.Report{Scenario: scenario.Name, Year: year, Result: res}

			if toFile, _ := cmd.Flags().GetBool("output"); toFile {
				filename, err := output.WriteFormatted(f, report, extensionFor(f))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format ("+strings.Join(formatChoices(), ", ")+")")
	cmd.Flags().Bool("support-a", false, "Treat Parent A as receiving income support")
	cmd.Flags().Bool("support-b", false, "Treat Parent B as receiving income support")
	cmd.Flags().BoolP("output", "o", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			engine, err := c.newEngine(cmd)
			if err != nil {
				return err
			}
			if err := engine.Validate(&scenario.Form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid\n", args[0])
			return nil
		},
	}
}

// overridesFromFlags layers --support-a and --support-b over the scenario's
// own overrides. Only flags given on the command line take effect.
func overridesFromFlags(cmd *cobra.Command, base *domain.Overrides) (*domain.Overrides, error) {
	ov := &domain.Overrides{}
	if base != nil {
		*ov = *base
	}
	for _, flag := range []struct {
		name   string
		target **bool
	}{
		{"support-a", &ov.SupportA},
		{"support-b", &ov.SupportB},
	} {
		if !cmd.Flags().Changed(flag.name) {
			continue
		}
		v, err := cmd.Flags().GetBool(flag.name)
		if err != nil {
			return nil, err
		}
		*flag.target = &v
	}
	return ov, nil
}

func formatChoices() []string {
	return append(output.AvailableFormatterNames(), output.AvailableFormatAliases()...)
}

func unknownFormat(name string) error {
	return fmt.Errorf("unknown output format: %s (valid: %s)", name, strings.Join(formatChoices(), ", "))
}

func extensionFor(f output.Formatter) string {
	switch f.Name() {
	case "json":
		return "json"
	case "csv":
		return "csv"
	}
	return "txt"
}
