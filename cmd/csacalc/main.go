package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/csacalc/internal/calculation"
	"github.com/rgehrsitz/csacalc/internal/config"
	"github.com/rgehrsitz/csacalc/internal/domain"
	"github.com/rgehrsitz/csacalc/internal/tables"
)

// slogLogger implements calculation.Logger on top of log/slog
type slogLogger struct {
	l *slog.Logger
}

func (s slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cli holds the settings and persistent flags shared by every command
type cli struct {
	settings *config.Settings

	debug      bool
	tablesPath string
	year       int
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "csacalc",
		Short: "Child support assessment calculator",
		Long: `Calculates child support under the Australian assessment formula, including
the minimum and fixed annual rates, multi-case limits, non-parent carers and
the alternate formulas used when a parent is overseas or deceased.

Defaults can be set with CSACALC_YEAR, CSACALC_TABLES, CSACALC_FORMAT and
CSACALC_LOG_LEVEL; flags take precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadSettings()
			if err != nil {
				return err
			}
			c.settings = s
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "Enable debug output for detailed calculations")
	root.PersistentFlags().StringVar(&c.tablesPath, "tables", "", "Path to a replacement cost-of-children table file")
	root.PersistentFlags().IntVarP(&c.year, "year", "y", 0, "Assessment year (default: scenario year, then latest loaded)")

	root.AddCommand(c.calculateCmd())
	root.AddCommand(c.validateCmd())
	root.AddCommand(c.compareCmd())
	root.AddCommand(c.formula5Cmd())
	root.AddCommand(c.formula6Cmd())
	root.AddCommand(c.breakEvenCmd())
	root.AddCommand(c.tablesCmd())
	root.AddCommand(c.exploreCmd())
	root.AddCommand(versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "csacalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newLogger builds the process logger at the configured level
func (c *cli) newLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.settings.Level()
	if err != nil {
		return nil, err
	}
	if c.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// newEngine creates an engine over the embedded tables, or over the file
// named by --tables or CSACALC_TABLES
func (c *cli) newEngine(cmd *cobra.Command) (*calculation.Engine, error) {
	logger, err := c.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	path := c.tablesPath
	if path == "" {
		path = c.settings.Tables
	}

	var engine *calculation.Engine
	if path != "" {
		reg, err := tables.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load tables: %w", err)
		}
		logger.Debug("loaded tables", "path", path, "years", len(reg.Years()))
		engine = calculation.NewEngine(reg)
	} else {
		engine, err = calculation.NewDefaultEngine()
		if err != nil {
			return nil, err
		}
	}
	engine.SetLogger(slogLogger{l: logger})
	return engine, nil
}

// resolveYear picks the assessment year: the --year flag, then the scenario's
// own year, then CSACALC_YEAR, then the latest loaded table
func (c *cli) resolveYear(engine *calculation.Engine, scenarioYear domain.AssessmentYear) domain.AssessmentYear {
	switch {
	case c.year != 0:
		return domain.AssessmentYear(c.year)
	case scenarioYear != 0:
		return scenarioYear
	case c.settings.Year != 0:
		return domain.AssessmentYear(c.settings.Year)
	}
	return engine.Registry().Latest()
}

// format returns the --format flag, falling back to CSACALC_FORMAT
func (c *cli) format(cmd *cobra.Command) string {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return f
	}
	return c.settings.Format
}

func loadScenario(path string) (*domain.Scenario, error) {
	return config.NewInputParser().LoadFromFile(path)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
