package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/csacalc/internal/domain"
)

const basicScenario = "../../testdata/basic.yaml"

// clearEnv removes any CSACALC_ settings from the test environment
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"CSACALC_YEAR", "CSACALC_TABLES", "CSACALC_FORMAT", "CSACALC_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

// execute runs the root command with args and returns stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	clearEnv(t)
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "csacalc" {
		t.Errorf("Expected root command use to be 'csacalc', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Execute(t *testing.T) {
	out, err := execute(t)
	if err != nil {
		t.Errorf("Expected no error for root command execution, got %v", err)
	}
	if !strings.Contains(out, "Available Commands") {
		t.Errorf("Expected root command to show usage, got %q", out)
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"calculate",
		"validate",
		"compare",
		"formula5",
		"formula6",
		"breakeven",
		"tables",
		"explore",
		"version",
	}

	registered := make(map[string]*cobra.Command)
	for _, c := range newRootCmd().Commands() {
		registered[c.Name()] = c
	}

	for _, name := range expectedCommands {
		t.Run(name, func(t *testing.T) {
			c, ok := registered[name]
			if !ok {
				t.Fatalf("Expected command %s to be registered", name)
			}
			if c.Short == "" {
				t.Errorf("Expected command %s to have a short description", name)
			}
		})
	}
}

func TestCalculateCommand(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		out, err := execute(t, "calculate", basicScenario)
		if err != nil {
			t.Fatalf("calculate failed: %v", err)
		}
		for _, want := range []string{
			"CHILD SUPPORT ASSESSMENT: Basic assessment",
			"Assessment year: 2026",
			"Parent A pays Parent B $7,928.51 a year",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected output to contain %q", want)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, "calculate", basicScenario, "--format", "json")
		if err != nil {
			t.Fatalf("calculate failed: %v", err)
		}
		var report struct {
			Scenario string `json:"scenario"`
			Year     int    `json:"year"`
			Result   struct {
				Payer        string `json:"payer"`
				FinalPayment string `json:"finalPaymentAmount"`
			} `json:"result"`
		}
		if err := json.Unmarshal([]byte(out), &report); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if report.Scenario != "Basic assessment" || report.Year != 2026 {
			t.Errorf("unexpected report header: %+v", report)
		}
		if report.Result.Payer != "Parent A" {
			t.Errorf("Expected Parent A to pay, got %s", report.Result.Payer)
		}
		if !strings.HasPrefix(report.Result.FinalPayment, "7928.5") {
			t.Errorf("Expected payment of about 7928.51, got %s", report.Result.FinalPayment)
		}
	})

	t.Run("year flag", func(t *testing.T) {
		out, err := execute(t, "calculate", basicScenario, "--year", "2025", "-f", "summary")
		if err != nil {
			t.Fatalf("calculate failed: %v", err)
		}
		if !strings.Contains(out, "2025") {
			t.Errorf("Expected the 2025 assessment, got %q", out)
		}
	})

	t.Run("format from environment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CSACALC_FORMAT", "csv")
		cmd := newRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"calculate", basicScenario})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("calculate failed: %v", err)
		}
		if !strings.Contains(out.String(), ",") || strings.Contains(out.String(), "CHILD SUPPORT ASSESSMENT") {
			t.Errorf("Expected CSV output, got %q", out.String())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "calculate", basicScenario, "--format", "pdf")
		if err == nil || !strings.Contains(err.Error(), "unknown output format: pdf") {
			t.Errorf("Expected unknown format error, got %v", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "calculate", "does-not-exist.yaml")
		if err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("missing tables file", func(t *testing.T) {
		_, err := execute(t, "calculate", basicScenario, "--tables", "does-not-exist.yaml")
		if err == nil || !strings.Contains(err.Error(), "failed to load tables") {
			t.Errorf("Expected tables error, got %v", err)
		}
	})

	t.Run("output file", func(t *testing.T) {
		path, err := filepath.Abs(basicScenario)
		if err != nil {
			t.Fatal(err)
		}
		t.Chdir(t.TempDir())

		out, err := execute(t, "calculate", path, "--format", "json", "--output")
		if err != nil {
			t.Fatalf("calculate failed: %v", err)
		}
		name := strings.TrimSpace(strings.TrimPrefix(out, "Report written to "))
		if !strings.HasSuffix(name, ".json") {
			t.Fatalf("Expected a .json report, got %q", out)
		}
		data, err := os.ReadFile(name)
		if err != nil {
			t.Fatalf("report not written: %v", err)
		}
		if !json.Valid(data) {
			t.Error("Expected the report file to hold JSON")
		}
	})
}

func TestCalculateCommand_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("CSACALC_LOG_LEVEL", "loud")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"calculate", basicScenario})

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("Expected invalid log level error, got %v", err)
	}
}

func TestOverridesFromFlags(t *testing.T) {
	cmd := newRootCmd()
	calc, _, err := cmd.Find([]string{"calculate"})
	if err != nil {
		t.Fatal(err)
	}
	if err := calc.ParseFlags([]string{"--support-b=false"}); err != nil {
		t.Fatal(err)
	}

	yes := true
	ov, err := overridesFromFlags(calc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ov.SupportA != nil {
		t.Error("Expected no override for Parent A")
	}
	if ov.SupportB == nil || *ov.SupportB {
		t.Error("Expected Parent B forced off")
	}

	ov, err = overridesFromFlags(calc, &domain.Overrides{SupportA: &yes})
	if err != nil {
		t.Fatal(err)
	}
	if ov.SupportA == nil || !*ov.SupportA {
		t.Error("Expected the scenario override for Parent A to be kept")
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", basicScenario)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("Expected validation message, got %q", out)
	}
}

func TestCompareCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		out, err := execute(t, "compare", basicScenario, "--with", "equal_care")
		if err != nil {
			t.Fatalf("compare failed: %v", err)
		}
		for _, want := range []string{"CHILD SUPPORT SCENARIO COMPARISON", "Shared care", "equal_care"} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected output to contain %q", want)
			}
		}
	})

	t.Run("json summary", func(t *testing.T) {
		out, err := execute(t, "compare", basicScenario, "--skip-file", "--with", "equal_care",
			"--format", "json", "--summary")
		if err != nil {
			t.Fatalf("compare failed: %v", err)
		}
		if strings.Contains(out, `"result":`) {
			t.Error("Expected summary JSON without full results")
		}
		if !strings.Contains(out, `"netPositionA": "7928.5`) {
			t.Errorf("Expected base net position in output, got %q", out)
		}
	})

	t.Run("csv with transform", func(t *testing.T) {
		out, err := execute(t, "compare", basicScenario, "--skip-file",
			"--transform", "set_income:party=A,amount=95000", "--format", "csv")
		if err != nil {
			t.Fatalf("compare failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != 3 {
			t.Fatalf("Expected header, base and one alternative, got %d lines", len(lines))
		}
		if !strings.HasPrefix(lines[2], "custom,") {
			t.Errorf("Expected the ad-hoc alternative row, got %q", lines[2])
		}
	})

	t.Run("list templates", func(t *testing.T) {
		out, err := execute(t, "compare", "--list-templates")
		if err != nil {
			t.Fatalf("compare failed: %v", err)
		}
		if !strings.Contains(out, "equal_care") || !strings.Contains(out, "b_on_support") {
			t.Errorf("Expected template help, got %q", out)
		}
	})

	errorCases := []struct {
		name string
		args []string
		want string
	}{
		{"no file", []string{"compare"}, "input file required"},
		{"nothing to compare", []string{"compare", basicScenario, "--skip-file"}, "nothing to compare"},
		{"unknown template", []string{"compare", basicScenario, "--with", "move_abroad"}, "comparison failed"},
		{"unknown format", []string{"compare", basicScenario, "--format", "xml"}, "unknown output format: xml"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestFormula6Command(t *testing.T) {
	out, err := execute(t, "formula6", "--party", "b", "--income", "55000", "--ages", "4", "--care", "14", "--format", "json")
	if err != nil {
		t.Fatalf("formula6 failed: %v", err)
	}
	var report struct {
		Alternate struct {
			Formula        int    `json:"formula"`
			AvailableParty string `json:"availableParty"`
			RoundedCare    int    `json:"roundedCare"`
			CostPerc       int    `json:"costPerc"`
		} `json:"alternate"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	alt := report.Alternate
	if alt.Formula != 6 || alt.AvailableParty != "B" {
		t.Errorf("unexpected alternate result: %+v", alt)
	}
	if alt.RoundedCare != 14 || alt.CostPerc != 24 {
		t.Errorf("Expected 14%% care and a 24%% cost percentage, got %d and %d", alt.RoundedCare, alt.CostPerc)
	}
}

func TestFormula5Command(t *testing.T) {
	out, err := execute(t, "formula5", "--income", "70000", "--ages", "8,11", "--country", "Japan")
	if err != nil {
		t.Fatalf("formula5 failed: %v", err)
	}
	for _, want := range []string{"FORMULA 5 (PARENT OVERSEAS)", "Japan", "Rate after halving"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	errorCases := []struct {
		name string
		args []string
		want string
	}{
		{"bad party", []string{"formula5", "--party", "C", "--ages", "8"}, "invalid party"},
		{"bad income", []string{"formula5", "--income", "lots", "--ages", "8"}, "invalid --income value"},
		{"no children", []string{"formula5", "--income", "70000"}, "childAges"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestTablesCommand(t *testing.T) {
	out, err := execute(t, "tables")
	if err != nil {
		t.Fatalf("tables failed: %v", err)
	}
	for _, want := range []string{"2025", "2026", "$31,046.00", "$551.00", "$1,825.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "csacalc dev") {
		t.Errorf("Expected version line, got %q", out)
	}
}

func TestBreakEvenCommand(t *testing.T) {
	out, err := execute(t, "breakeven", basicScenario)
	if err != nil {
		t.Fatalf("breakeven failed: %v", err)
	}
	if !strings.Contains(out, "BREAK-EVEN SEARCH BY PARENT") {
		t.Errorf("Expected per-parent summary, got %q", out)
	}
	if strings.Contains(out, "not found") {
		t.Errorf("Expected both care searches to succeed, got %q", out)
	}

	out, err = execute(t, "breakeven", basicScenario, "--target", "income", "-p", "a",
		"--goal", "match_position", "--position", "5000")
	if err != nil {
		t.Fatalf("breakeven income failed: %v", err)
	}
	for _, want := range []string{"income of Parent A", "match_position ($5,000.00)", "✓ Found"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got %q", want, out)
		}
	}

	out, err = execute(t, "breakeven", basicScenario, "-p", "B", "-f", "json")
	if err != nil {
		t.Fatalf("breakeven json failed: %v", err)
	}
	if !strings.Contains(out, `"success": true`) || !strings.Contains(out, `"party": "B"`) {
		t.Errorf("Unexpected JSON output %q", out)
	}
}

func TestBreakEvenCommandErrors(t *testing.T) {
	errorCases := []struct {
		name string
		args []string
		want string
	}{
		{"bad party", []string{"breakeven", basicScenario, "-p", "C"}, "invalid party"},
		{"bad format", []string{"breakeven", basicScenario, "-f", "xml"}, "unknown output format"},
		{"bad min", []string{"breakeven", basicScenario, "--min", "low"}, "invalid --min value"},
		{"no position", []string{"breakeven", basicScenario, "-p", "A", "--goal", "match_position"}, "requires a target position"},
		{"no file", []string{"breakeven"}, "accepts 1 arg(s)"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, tc.args...)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
