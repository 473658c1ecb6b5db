package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/csacalc/internal/compare"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/transform"
)

func (c *cli) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a scenario against what-if alternatives",
		Long: `Compare a base scenario against the alternatives listed in the file, built-in
templates and ad-hoc transforms.

Examples:
  csacalc compare scenario.yaml
  csacalc compare scenario.yaml --with equal_care,b_income_up_10
  csacalc compare scenario.yaml --transform set_income:party=A,amount=95000 --skip-file
  csacalc compare scenario.yaml --with a_on_support --format csv
  csacalc compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				registry := transform.CreateBuiltInTemplates(&domain.FormState{})
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(registry))
				return nil
			}
			if len(args) == 0 {
				return errors.New("input file required for comparison (use --list-templates to see available templates)")
			}

			scenario, err := loadScenario(args[0])
			if err != nil {
				return err
			}
			engine, err := c.newEngine(cmd)
			if err != nil {
				return err
			}

			templatesStr, _ := cmd.Flags().GetString("with")
			transforms, _ := cmd.Flags().GetStringArray("transform")
			skipFile, _ := cmd.Flags().GetBool("skip-file")
			concurrency, _ := cmd.Flags().GetInt("concurrency")
			outputFormat, _ := cmd.Flags().GetString("format")
			summary, _ := cmd.Flags().GetBool("summary")

			options := compare.CompareOptions{
				Templates:   transform.ParseTemplateList(templatesStr),
				Transforms:  transforms,
				SkipFile:    skipFile,
				Concurrency: concurrency,
			}
			if skipFile && len(options.Templates) == 0 && len(options.Transforms) == 0 {
				return errors.New("nothing to compare: --skip-file needs --with or --transform")
			}

			year := c.resolveYear(engine, scenario.Year)
			compSet, err := compare.NewCompareEngine(engine).Compare(context.Background(), scenario, year, options)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = args[0]

			out := cmd.OutOrStdout()
			switch strings.ToLower(outputFormat) {
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, s)
			case "json":
				s, err := (&compare.JSONFormatter{Pretty: true, Summary: summary}).Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, s)
			case "compact":
				fmt.Fprintln(out, (&compare.TableFormatter{}).FormatCompact(compSet))
			case "table", "console", "":
				fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArrayP("transform", "t", nil, "Transform spec (name:key=value,...); repeat to combine into one alternative")
	cmd.Flags().Bool("skip-file", false, "Ignore the alternatives listed in the scenario file")
	cmd.Flags().Int("concurrency", 0, "Maximum assessments run at once (0 for no limit)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("summary", false, "Leave full calculation results out of JSON output")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	return cmd
}
