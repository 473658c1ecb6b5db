package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/csacalc/internal/tui"
)

func (c *cli) exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [input-file]",
		Short: "Explore a scenario interactively",
		Long: `Open an interactive view of a scenario's assessment. Income support for each
parent can be forced on or off and the assessment year changed; the result is
recalculated on every change.`,
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

			model := tui.NewModel(engine, scenario, c.resolveYear(engine, scenario.Year))

			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running explorer: %w", err)
			}
			return nil
		},
	}
}
