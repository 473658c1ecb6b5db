package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/csacalc/internal/output"
)

func (c *cli) tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the loaded assessment years and their statutory constants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.newEngine(cmd)
			if err != nil {
				return err
			}
			reg := engine.Registry()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-6s %14s %10s %10s %12s\n", "Year", "Self-support", "MAR", "FAR", "Max PPS")
			fmt.Fprintln(out, strings.Repeat("-", 56))
			for _, year := range reg.Years() {
				k, err := reg.Constants(year)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-6s %14s %10s %10s %12s\n", year,
					output.FormatCurrency(k.SSA),
					output.FormatCurrency(k.MAR),
					output.FormatCurrency(k.FAR),
					output.FormatCurrency(k.MaxPPS))
			}
			return nil
		},
	}
}
