package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/csacalc/internal/breakeven"
	"github.com/rgehrsitz/csacalc/internal/domain"
)

func (c *cli) breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breakeven [input-file]",
		Short: "Find the income or care at which the payment changes",
		Long: `Search for the income or nights of care at which Parent A's net position
reaches zero (break_even) or a target amount (match_position). The other
parent's care is the rest of the year in a care search.

Examples:
  csacalc breakeven scenario.yaml --target care
  csacalc breakeven scenario.yaml --target income --party A --goal match_position --position 5000
  csacalc breakeven scenario.yaml --target income --min 20000 --max 150000 --format json
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

			target, _ := cmd.Flags().GetString("target")
			goal, _ := cmd.Flags().GetString("goal")
			partyStr, _ := cmd.Flags().GetString("party")
			outputFormat, _ := cmd.Flags().GetString("format")

			req := breakeven.Request{
				Scenario: scenario,
				Year:     c.resolveYear(engine, scenario.Year),
				Target:   breakeven.SearchTarget(strings.ToLower(target)),
				Goal:     breakeven.SearchGoal(strings.ToLower(goal)),
			}
			if req.Constraints.Min, err = optionalDecimalFlag(cmd, "min"); err != nil {
				return err
			}
			if req.Constraints.Max, err = optionalDecimalFlag(cmd, "max"); err != nil {
				return err
			}
			if req.Constraints.TargetPosition, err = optionalDecimalFlag(cmd, "position"); err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(engine)
			table := &breakeven.TableFormatter{}
			jsonFmt := &breakeven.JSONFormatter{Pretty: true}
			out := cmd.OutOrStdout()

			switch strings.ToLower(outputFormat) {
			case "table", "console", "", "json":
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, json)", outputFormat)
			}
			asJSON := strings.EqualFold(outputFormat, "json")

			if strings.EqualFold(partyStr, "both") {
				multi, err := solver.SolveBoth(context.Background(), req)
				if err != nil {
					return fmt.Errorf("break-even search failed: %w", err)
				}
				if asJSON {
					s, err := jsonFmt.FormatMulti(multi)
					if err != nil {
						return fmt.Errorf("failed to format JSON: %w", err)
					}
					fmt.Fprintln(out, s)
					return nil
				}
				fmt.Fprint(out, table.FormatMulti(multi))
				return nil
			}

			if req.Constraints.Party, err = domain.ParseParty(partyStr); err != nil {
				return err
			}
			result, err := solver.Solve(context.Background(), req)
			if err != nil {
				return fmt.Errorf("break-even search failed: %w", err)
			}
			if asJSON {
				s, err := jsonFmt.Format(result)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprint(out, table.Format(result))
			return nil
		},
	}

	cmd.Flags().String("target", string(breakeven.TargetCare), "Input to vary (income, care)")
	cmd.Flags().String("goal", string(breakeven.GoalBreakEven), "Search goal (break_even, match_position)")
	cmd.Flags().StringP("party", "p", "both", "Parent whose input is varied (A, B, both)")
	cmd.Flags().String("min", "", "Bottom of the search range (dollars or nights)")
	cmd.Flags().String("max", "", "Top of the search range (dollars or nights)")
	cmd.Flags().String("position", "", "Parent A net position to reach for match_position")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}

// optionalDecimalFlag returns nil when the flag was not given
func optionalDecimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	d, err := decimalFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
